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
// WELCOME BANNER
// =============================================================================

// WelcomeText introduces the assistant before the first query.
const WelcomeText = "Welcome to BuzzLink! Ask me to help you find Georgia Tech alumni by field, location, or company."

// InputPlaceholder is the hint shown in the empty input line.
const InputPlaceholder = "Ask about GT alumni by field, company, or location..."

// ExampleQueries are suggested first questions.
var ExampleQueries = []string{
	"Find alumni in software engineering",
	"Show me GT graduates at Google",
}

// Welcome is the intro banner shown while the transcript is empty.
type Welcome struct {
	Width int
	theme *styles.Theme
}

// NewWelcome creates a new welcome banner
func NewWelcome(theme *styles.Theme) *Welcome {
	return &Welcome{Width: 80, theme: theme}
}

// SetWidth updates the banner width
func (w *Welcome) SetWidth(width int) {
	w.Width = width
}

// View renders the banner
func (w *Welcome) View() string {
	inner := max(w.Width-6, 20)

	lines := []string{Wordmark(w.theme), ""}
	for _, l := range util.WrapWords(WelcomeText, inner) {
		lines = append(lines, w.theme.WelcomeInfo.Render(l))
	}
	lines = append(lines, "", w.theme.WelcomeInfo.Render("Try something like:"))
	for _, q := range ExampleQueries {
		lines = append(lines, "  "+w.theme.WelcomeExample.Render(util.TruncateWidth(`"`+q+`"`, inner-2)))
	}

	box := w.theme.WelcomeBox.Width(w.Width - 2).Render(strings.Join(lines, "\n"))
	return lipgloss.PlaceHorizontal(w.Width, lipgloss.Left, box)
}
