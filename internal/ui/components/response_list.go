// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual building blocks of the BuzzLink TUI.
package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/gt-buzzlink/buzzlink/internal/model"
	"github.com/gt-buzzlink/buzzlink/internal/ui/styles"
)

const (
	// CaptionPrefix precedes the query that produced a list of profiles.
	CaptionPrefix = "Showing results for: "

	// EmptyProfilesText replaces the cards when a reply has no profiles.
	EmptyProfilesText = "No profiles found matching your query."
)

// ResponseList renders the profiles of one reply: an optional caption
// followed by one card per profile in backend order.
type ResponseList struct {
	Query      string
	Profiles   []model.Profile
	Width      int
	Hyperlinks bool
	theme      *styles.Theme
}

// NewResponseList creates a list for the profiles returned for query.
// An empty query omits the caption.
func NewResponseList(query string, profiles []model.Profile, theme *styles.Theme) *ResponseList {
	return &ResponseList{
		Query:    query,
		Profiles: profiles,
		Width:    60,
		theme:    theme,
	}
}

// SetWidth sets the width of each card
func (r *ResponseList) SetWidth(width int) {
	r.Width = width
}

// SetHyperlinks toggles OSC 8 links on every card.
func (r *ResponseList) SetHyperlinks(enabled bool) {
	r.Hyperlinks = enabled
}

// Caption returns the caption line, or "" when there is no query.
func (r *ResponseList) Caption() string {
	q := strings.TrimSpace(r.Query)
	if q == "" {
		return ""
	}
	return CaptionPrefix + q
}

// View renders the list
func (r *ResponseList) View() string {
	var parts []string

	if caption := r.Caption(); caption != "" {
		parts = append(parts, r.theme.Caption.Render(caption))
	}

	if len(r.Profiles) == 0 {
		parts = append(parts, r.theme.EmptyState.Render(EmptyProfilesText))
		return lipgloss.JoinVertical(lipgloss.Left, parts...)
	}

	for _, p := range r.Profiles {
		card := NewProfileCard(p, r.theme)
		card.SetWidth(r.Width)
		card.SetHyperlinks(r.Hyperlinks)
		parts = append(parts, card.View())
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}
