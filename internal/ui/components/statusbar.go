// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual building blocks of the BuzzLink TUI.
package components

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/gt-buzzlink/buzzlink/internal/chatapi"
	"github.com/gt-buzzlink/buzzlink/internal/ui/styles"
	"github.com/gt-buzzlink/buzzlink/internal/util"
)

// =============================================================================
// STATUS BAR COMPONENT
// =============================================================================

// Status represents the request state shown in the status bar
type Status int

const (
	StatusReady Status = iota
	StatusLoading
	StatusError
)

// ThinkingText is shown next to the spinner while a request is in flight.
const ThinkingText = "Searching alumni..."

// String returns the display string for the status
func (s Status) String() string {
	switch s {
	case StatusReady:
		return "Ready"
	case StatusLoading:
		return "Loading"
	case StatusError:
		return "Error"
	default:
		return "Unknown"
	}
}

// Icon returns the bracketed indicator for the status
func (s Status) Icon() string {
	switch s {
	case StatusReady:
		return styles.StatusIndicators.Success
	case StatusLoading:
		return styles.StatusIndicators.Pending
	case StatusError:
		return styles.StatusIndicators.Error
	default:
		return "?"
	}
}

// Shortcut is a key hint shown on the right of the status bar.
type Shortcut struct {
	Key  string
	Desc string
}

// DefaultShortcuts are the chat view's key bindings.
var DefaultShortcuts = []Shortcut{
	{"Enter", "send"},
	{"PgUp/PgDn", "scroll"},
	{"Ctrl+L", "clear"},
	{"Esc", "quit"},
}

// StatusBar represents the bottom status bar
type StatusBar struct {
	Endpoint      string
	Turns         int
	Status        Status
	ErrorText     string
	SpinnerView   string // current spinner frame while loading
	Width         int
	ShowShortcuts bool
	theme         *styles.Theme
}

// NewStatusBar creates a new StatusBar component
func NewStatusBar(theme *styles.Theme) *StatusBar {
	return &StatusBar{
		Status:        StatusReady,
		Width:         80,
		ShowShortcuts: true,
		theme:         theme,
	}
}

// SetWidth updates the bar width
func (s *StatusBar) SetWidth(width int) {
	s.Width = width
}

// SetEndpoint updates the displayed endpoint
func (s *StatusBar) SetEndpoint(endpoint string) {
	s.Endpoint = endpoint
}

// SetTurns updates the transcript length
func (s *StatusBar) SetTurns(n int) {
	s.Turns = n
}

// SetLoading switches between the loading and ready states.
// Leaving the loading state keeps a previously reported error.
func (s *StatusBar) SetLoading(loading bool, spinnerView string) {
	if loading {
		s.Status = StatusLoading
		s.SpinnerView = spinnerView
		return
	}
	s.SpinnerView = ""
	if s.Status == StatusLoading {
		s.Status = StatusReady
		if s.ErrorText != "" {
			s.Status = StatusError
		}
	}
}

// SetError records the last request failure. nil clears it.
// Only the failure class is kept; the error text never reaches the screen.
func (s *StatusBar) SetError(err error) {
	if err == nil {
		s.ErrorText = ""
		if s.Status == StatusError {
			s.Status = StatusReady
		}
		return
	}
	s.ErrorText = ErrorLabel(err)
	if s.Status != StatusLoading {
		s.Status = StatusError
	}
}

// View renders the status bar
func (s *StatusBar) View() string {
	inner := max(s.Width-2, 10)

	left := s.renderState()
	if s.Endpoint != "" {
		left += "  " + s.theme.ShortcutDesc.Render(s.Endpoint)
	}
	left += "  " + s.theme.ShortcutDesc.Render(turnCount(s.Turns))

	right := ""
	if s.ShowShortcuts && s.theme.GetLayoutMode() != styles.LayoutNarrow {
		right = s.renderShortcuts()
	}
	if lipgloss.Width(left)+lipgloss.Width(right)+1 > inner {
		right = ""
	}
	if lipgloss.Width(left) > inner {
		left = util.TruncateWidth(left, inner)
	}

	gap := max(inner-lipgloss.Width(left)-lipgloss.Width(right), 0)
	return s.theme.StatusBar.Width(s.Width).Render(left + strings.Repeat(" ", gap) + right)
}

// ErrorLabel names the class of a request failure for display.
func ErrorLabel(err error) string {
	var ce *chatapi.ClientError
	if !errors.As(err, &ce) {
		return "Request failed"
	}
	switch ce.Type {
	case chatapi.ErrTypeNetwork:
		return "Backend unavailable"
	case chatapi.ErrTypeTimeout:
		return "Request timed out"
	case chatapi.ErrTypeMalformedResponse:
		return "Unreadable reply"
	case chatapi.ErrTypeCanceled:
		return "Request canceled"
	default:
		return "Request failed"
	}
}

func (s *StatusBar) renderState() string {
	switch s.Status {
	case StatusLoading:
		return s.theme.Spinner.Render(s.SpinnerView) + " " + s.theme.ThinkingText.Render(ThinkingText)
	case StatusError:
		return s.theme.StatusError.Render(s.Status.Icon() + " " + util.TruncateRunes(s.ErrorText, 40))
	default:
		return s.theme.StatusOnline.Render(s.Status.Icon() + " " + s.Status.String())
	}
}

func (s *StatusBar) renderShortcuts() string {
	parts := make([]string, 0, len(DefaultShortcuts))
	for _, sc := range DefaultShortcuts {
		parts = append(parts, s.theme.ShortcutKey.Render(sc.Key)+" "+s.theme.ShortcutDesc.Render(sc.Desc))
	}
	return strings.Join(parts, "  ")
}

func turnCount(n int) string {
	if n == 1 {
		return "1 turn"
	}
	return fmt.Sprintf("%d turns", n)
}
