// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual building blocks of the BuzzLink TUI.
package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/gt-buzzlink/buzzlink/internal/ui/styles"
	"github.com/gt-buzzlink/buzzlink/internal/util"
)

// =============================================================================
// HEADER COMPONENT - BuzzLink title bar
// =============================================================================

// DefaultSubtitle is shown next to the wordmark on wide terminals.
const DefaultSubtitle = "Georgia Tech Alumni Network"

// Header represents the title bar component
type Header struct {
	Subtitle string // Tagline next to the wordmark
	Endpoint string // Chat endpoint, shown on the right
	Width    int    // Available width
	theme    *styles.Theme
}

// NewHeader creates a new Header component with default values
func NewHeader(theme *styles.Theme) *Header {
	return &Header{
		Subtitle: DefaultSubtitle,
		Width:    80,
		theme:    theme,
	}
}

// SetWidth updates the header width
func (h *Header) SetWidth(width int) {
	h.Width = width
}

// SetEndpoint updates the endpoint shown on the right
func (h *Header) SetEndpoint(endpoint string) {
	h.Endpoint = endpoint
}

// Wordmark renders "Buzz" in gold followed by "Link" in navy.
func Wordmark(theme *styles.Theme) string {
	return theme.HeaderBuzz.Render("Buzz") + theme.HeaderLink.Render("Link")
}

// View renders the header
func (h *Header) View() string {
	// Header style pads two columns on each side
	inner := max(h.Width-4, 10)

	left := Wordmark(h.theme)
	if h.Subtitle != "" && h.theme.GetLayoutMode() != styles.LayoutNarrow {
		left += "  " + h.theme.HeaderSubtitle.Render(h.Subtitle)
	}

	right := ""
	if h.Endpoint != "" {
		room := inner - lipgloss.Width(left) - 2
		if room > 8 {
			right = h.theme.Timestamp.Render(util.TruncateWidth(h.Endpoint, room))
		}
	}

	gap := max(inner-lipgloss.Width(left)-lipgloss.Width(right), 1)
	line := left + strings.Repeat(" ", gap) + right

	return h.theme.Header.Width(h.Width).Render(line)
}
