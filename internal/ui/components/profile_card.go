// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual building blocks of the BuzzLink TUI.
package components

import (
	"strings"

	"github.com/gt-buzzlink/buzzlink/internal/model"
	"github.com/gt-buzzlink/buzzlink/internal/ui/styles"
	"github.com/gt-buzzlink/buzzlink/internal/util"
	"github.com/muesli/termenv"
)

// =============================================================================
// PROFILE CARD COMPONENT
// =============================================================================

// ConnectLabel is the text of a card's outbound link.
const ConnectLabel = "Connect"

// minCardWidth keeps cards readable on very narrow terminals.
const minCardWidth = 24

// ProfileCard renders a single alumni profile.
//
// Terminals cannot show the picture, so the image URL is printed as a muted
// reference line. The Connect line only appears when the profile links
// somewhere real; with Hyperlinks enabled the label is emitted as an OSC 8
// link so supporting terminals make it clickable.
type ProfileCard struct {
	Profile    model.Profile
	Width      int  // Total width including the border
	Hyperlinks bool // Emit OSC 8 escape sequences for the Connect label
	theme      *styles.Theme
}

// NewProfileCard creates a card for p.
func NewProfileCard(p model.Profile, theme *styles.Theme) *ProfileCard {
	return &ProfileCard{
		Profile: p,
		Width:   60,
		theme:   theme,
	}
}

// SetWidth sets the card width
func (c *ProfileCard) SetWidth(width int) {
	c.Width = width
}

// SetHyperlinks toggles OSC 8 output for the Connect label.
func (c *ProfileCard) SetHyperlinks(enabled bool) {
	c.Hyperlinks = enabled
}

// contentWidth is the card width minus border and horizontal padding.
func (c *ProfileCard) contentWidth() int {
	return max(c.Width, minCardWidth) - 4
}

// View renders the card
func (c *ProfileCard) View() string {
	w := c.contentWidth()
	p := c.Profile

	lines := []string{
		c.theme.ProfileName.Render(util.TruncateWidth(p.Name, w)),
		c.theme.ProfileImage.Render(util.TruncateWidth("Image: "+p.ImageURL, w)),
		"",
	}
	for _, l := range util.WrapWords(p.Summary, w) {
		lines = append(lines, c.theme.ProfileSummary.Render(l))
	}

	if p.HasLink() {
		lines = append(lines, "", c.renderLink(w))
	}

	return c.theme.ProfileCard.Width(max(c.Width, minCardWidth) - 2).Render(strings.Join(lines, "\n"))
}

func (c *ProfileCard) renderLink(width int) string {
	url := c.Profile.LinkedInURL
	label := ConnectLabel
	if c.Hyperlinks {
		label = termenv.Hyperlink(url, ConnectLabel)
	}

	room := width - len(ConnectLabel) - 2
	if room < 8 {
		return c.theme.ProfileLink.Render(label)
	}
	return c.theme.ProfileLink.Render(label) + "  " +
		c.theme.Timestamp.Render(util.TruncateWidth(url, room))
}
