// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the BuzzLink TUI.
// All colors use Lip Gloss AdaptiveColor for automatic light/dark detection.
package styles

import "github.com/charmbracelet/lipgloss"

// =============================================================================
// BRAND COLORS (Georgia Tech)
// =============================================================================

// TechGold - "Buzz" half of the wordmark, accents
var TechGold = lipgloss.AdaptiveColor{Light: "#A4925A", Dark: "#B3A369"}

// BuzzGold - Brighter gold for highlights and the spinner
var BuzzGold = lipgloss.AdaptiveColor{Light: "#C99700", Dark: "#EAAA00"}

// Navy - "Link" half of the wordmark, user bubbles
var Navy = lipgloss.AdaptiveColor{Light: "#003057", Dark: "#5A8BB8"}

// NavyDeep - Darker navy for backgrounds
var NavyDeep = lipgloss.AdaptiveColor{Light: "#D6E2EE", Dark: "#002344"}

// =============================================================================
// SEMANTIC COLORS
// =============================================================================

// Rose - Errors and failed requests
var Rose = lipgloss.AdaptiveColor{Light: "#E11D48", Dark: "#FB7185"}

// Emerald - Connected / success states
var Emerald = lipgloss.AdaptiveColor{Light: "#059669", Dark: "#34D399"}

// LinkColor - Outbound links, underlined wherever it is used
var LinkColor = lipgloss.AdaptiveColor{Light: "#2563EB", Dark: "#60A5FA"}

// =============================================================================
// SURFACE COLORS
// =============================================================================

// SurfaceDim - Header, status bar and footer background
var SurfaceDim = lipgloss.AdaptiveColor{Light: "#F5F5F5", Dark: "#181825"}

// CardBg - Profile card background
var CardBg = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#232634"}

// Overlay - Borders and separators
var Overlay = lipgloss.AdaptiveColor{Light: "#E5E5E5", Dark: "#45475A"}

// =============================================================================
// TEXT COLORS
// =============================================================================

// TextPrimary - Main body text
var TextPrimary = lipgloss.AdaptiveColor{Light: "#1F2937", Dark: "#CDD6F4"}

// TextSecondary - Labels, less prominent text
var TextSecondary = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#A6ADC8"}

// TextMuted - Hints, timestamps, image references
var TextMuted = lipgloss.AdaptiveColor{Light: "#9CA3AF", Dark: "#6C7086"}

// =============================================================================
// MESSAGE BUBBLE COLORS
// =============================================================================

// User message bubble - navy
var UserBubbleFg = lipgloss.AdaptiveColor{Light: "#003057", Dark: "#E0ECF8"}
var UserBubbleBorder = Navy

// Assistant message bubble - gold
var AssistantBubbleFg = TextPrimary
var AssistantBubbleBorder = TechGold

// =============================================================================
// STATUS INDICATORS
// =============================================================================

// StatusIndicators are ASCII shapes shown next to colored status text, so
// status reads the same without color.
var StatusIndicators = struct {
	Success string
	Error   string
	Pending string
}{
	Success: "[OK]",
	Error:   "[X]",
	Pending: "[ ]",
}

// RenderSuccess renders a success message with its indicator.
func RenderSuccess(message string) string {
	return lipgloss.NewStyle().Foreground(Emerald).Bold(true).
		Render(StatusIndicators.Success + " " + message)
}

// RenderError renders an error message with its indicator.
func RenderError(message string) string {
	return lipgloss.NewStyle().Foreground(Rose).Bold(true).
		Render(StatusIndicators.Error + " " + message)
}

// RenderStatus renders a success or error line.
func RenderStatus(success bool, message string) string {
	if success {
		return RenderSuccess(message)
	}
	return RenderError(message)
}
