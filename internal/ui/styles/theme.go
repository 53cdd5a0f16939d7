// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the BuzzLink TUI.
package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds all the styled components for the application.
// It detects the terminal's color capability and adjusts accordingly.
type Theme struct {
	// Terminal capabilities
	IsDark       bool
	HasTrueColor bool
	ColorProfile termenv.Profile

	// Layout dimensions
	Width  int
	Height int

	// ==========================================================================
	// HEADER AND FOOTER STYLES
	// ==========================================================================

	Header         lipgloss.Style
	HeaderBuzz     lipgloss.Style
	HeaderLink     lipgloss.Style
	HeaderSubtitle lipgloss.Style
	Footer         lipgloss.Style

	// ==========================================================================
	// MESSAGE BUBBLE STYLES
	// ==========================================================================

	UserBubble      lipgloss.Style
	AssistantBubble lipgloss.Style
	RoleLabel       lipgloss.Style
	Timestamp       lipgloss.Style

	// ==========================================================================
	// PROFILE CARD STYLES
	// ==========================================================================

	ProfileCard    lipgloss.Style
	ProfileName    lipgloss.Style
	ProfileImage   lipgloss.Style
	ProfileSummary lipgloss.Style
	ProfileLink    lipgloss.Style
	Caption        lipgloss.Style
	EmptyState     lipgloss.Style

	// ==========================================================================
	// INPUT AREA STYLES
	// ==========================================================================

	InputContainer   lipgloss.Style
	InputPrompt      lipgloss.Style
	InputPlaceholder lipgloss.Style

	// ==========================================================================
	// STATUS BAR STYLES
	// ==========================================================================

	StatusBar    lipgloss.Style
	StatusOnline lipgloss.Style
	StatusError  lipgloss.Style
	ShortcutKey  lipgloss.Style
	ShortcutDesc lipgloss.Style
	Spinner      lipgloss.Style
	ThinkingText lipgloss.Style

	// ==========================================================================
	// WELCOME STYLES
	// ==========================================================================

	WelcomeBox     lipgloss.Style
	WelcomeInfo    lipgloss.Style
	WelcomeExample lipgloss.Style

	// ==========================================================================
	// MISC
	// ==========================================================================

	ErrorStyle lipgloss.Style
	LinkStyle  lipgloss.Style
}

// NewTheme creates a new theme, detecting the terminal background.
func NewTheme() *Theme {
	return NewThemeWithMode("auto")
}

// NewThemeWithMode creates a theme for "dark", "light" or "auto".
// A forced mode overrides lipgloss's background detection so adaptive
// colors resolve consistently.
func NewThemeWithMode(mode string) *Theme {
	colorProfile := termenv.ColorProfile()

	var isDark bool
	switch strings.ToLower(mode) {
	case "dark":
		isDark = true
		lipgloss.SetHasDarkBackground(true)
	case "light":
		isDark = false
		lipgloss.SetHasDarkBackground(false)
	default:
		isDark = termenv.HasDarkBackground()
	}

	t := &Theme{
		IsDark:       isDark,
		HasTrueColor: colorProfile == termenv.TrueColor,
		ColorProfile: colorProfile,
	}
	t.initStyles()
	return t
}

// initStyles initializes all the lip gloss styles.
func (t *Theme) initStyles() {
	// Header
	t.Header = lipgloss.NewStyle().
		Background(SurfaceDim).
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(TechGold).
		Padding(0, 2)

	t.HeaderBuzz = lipgloss.NewStyle().
		Bold(true).
		Foreground(TechGold)

	t.HeaderLink = lipgloss.NewStyle().
		Bold(true).
		Foreground(Navy)

	t.HeaderSubtitle = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Italic(true)

	t.Footer = lipgloss.NewStyle().
		Foreground(TextMuted).
		Align(lipgloss.Center)

	// Message bubbles
	t.UserBubble = lipgloss.NewStyle().
		Foreground(UserBubbleFg).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(UserBubbleBorder).
		Padding(0, 2)

	t.AssistantBubble = lipgloss.NewStyle().
		Foreground(AssistantBubbleFg).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(AssistantBubbleBorder).
		Padding(0, 2)

	t.RoleLabel = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Bold(true)

	t.Timestamp = lipgloss.NewStyle().
		Foreground(TextMuted)

	// Profile cards
	t.ProfileCard = lipgloss.NewStyle().
		Background(CardBg).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(0, 1).
		MarginBottom(1)

	t.ProfileName = lipgloss.NewStyle().
		Foreground(Navy).
		Bold(true)

	t.ProfileImage = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	t.ProfileSummary = lipgloss.NewStyle().
		Foreground(TextPrimary)

	t.ProfileLink = lipgloss.NewStyle().
		Foreground(LinkColor).
		Underline(true)

	t.Caption = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Italic(true)

	t.EmptyState = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true).
		Padding(0, 2)

	// Input area
	t.InputContainer = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderTop(true).
		BorderForeground(Overlay).
		Padding(0, 1)

	t.InputPrompt = lipgloss.NewStyle().
		Foreground(TechGold).
		Bold(true)

	t.InputPlaceholder = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	// Status bar
	t.StatusBar = lipgloss.NewStyle().
		Background(SurfaceDim).
		Foreground(TextSecondary).
		Padding(0, 1)

	t.StatusOnline = lipgloss.NewStyle().
		Foreground(Emerald).
		Bold(true)

	t.StatusError = lipgloss.NewStyle().
		Foreground(Rose).
		Bold(true)

	t.ShortcutKey = lipgloss.NewStyle().
		Foreground(TechGold).
		Bold(true)

	t.ShortcutDesc = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.Spinner = lipgloss.NewStyle().
		Foreground(BuzzGold)

	t.ThinkingText = lipgloss.NewStyle().
		Foreground(TextSecondary)

	// Welcome
	t.WelcomeBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(TechGold).
		Padding(1, 2)

	t.WelcomeInfo = lipgloss.NewStyle().
		Foreground(TextSecondary)

	t.WelcomeExample = lipgloss.NewStyle().
		Foreground(Navy).
		Italic(true)

	t.ErrorStyle = lipgloss.NewStyle().
		Foreground(Rose).
		Bold(true)

	t.LinkStyle = t.ProfileLink
}

// SetSize updates the theme dimensions for responsive layouts.
func (t *Theme) SetSize(width, height int) {
	t.Width = width
	t.Height = height
}

// GetLayoutMode returns the current layout mode based on width.
func (t *Theme) GetLayoutMode() LayoutMode {
	if t.Width < 60 {
		return LayoutNarrow
	}
	if t.Width < 100 {
		return LayoutMedium
	}
	return LayoutWide
}

// ContentWidth returns the usable width for message bodies and cards.
func (t *Theme) ContentWidth() int {
	switch t.GetLayoutMode() {
	case LayoutNarrow:
		return max(t.Width-4, 20)
	case LayoutMedium:
		return t.Width - 8
	default:
		return min(t.Width-12, 100)
	}
}

// LayoutMode represents the current responsive layout mode.
type LayoutMode int

const (
	LayoutNarrow LayoutMode = iota // < 60 columns
	LayoutMedium                   // 60-100 columns
	LayoutWide                     // > 100 columns
)
