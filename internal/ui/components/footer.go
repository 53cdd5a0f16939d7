// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual building blocks of the BuzzLink TUI.
package components

import (
	"fmt"
	"time"

	"github.com/gt-buzzlink/buzzlink/internal/ui/styles"
)

// FooterText returns the copyright line for the given year.
func FooterText(year int) string {
	return fmt.Sprintf("© %d BuzzLink | Georgia Institute of Technology", year)
}

// Footer renders the copyright line centered under the chat.
type Footer struct {
	Width int
	Year  int
	theme *styles.Theme
}

// NewFooter creates a footer for the current year.
func NewFooter(theme *styles.Theme) *Footer {
	return &Footer{
		Width: 80,
		Year:  time.Now().Year(),
		theme: theme,
	}
}

// SetWidth updates the footer width
func (f *Footer) SetWidth(width int) {
	f.Width = width
}

// View renders the footer
func (f *Footer) View() string {
	return f.theme.Footer.Width(f.Width).Render(FooterText(f.Year))
}
