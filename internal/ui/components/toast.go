// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual building blocks of the BuzzLink TUI.
//
// Toasts are short notices that replace the footer line for a few seconds,
// such as "endpoint changed" after the config file is edited.
package components

import (
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/gt-buzzlink/buzzlink/internal/ui/styles"
	"github.com/gt-buzzlink/buzzlink/internal/util"
)

// ToastKind represents the type of toast notification.
type ToastKind int

const (
	// ToastStatus is an informational toast
	ToastStatus ToastKind = iota
	// ToastError reports something that went wrong
	ToastError
)

const (
	// StatusToastDuration is how long a status toast stays visible.
	StatusToastDuration = 4 * time.Second

	// ErrorToastDuration is longer so the message can be read.
	ErrorToastDuration = 8 * time.Second

	// toastTickInterval is how often expired toasts are pruned.
	toastTickInterval = 250 * time.Millisecond
)

// Toast is one notice.
type Toast struct {
	Message   string
	Kind      ToastKind
	CreatedAt time.Time
	Duration  time.Duration
}

// ExpiredAt reports whether the toast should be gone at now.
func (t Toast) ExpiredAt(now time.Time) bool {
	return now.Sub(t.CreatedAt) >= t.Duration
}

// ToastManager holds the visible toasts, newest first.
type ToastManager struct {
	mu        sync.Mutex
	toasts    []Toast
	maxToasts int
	now       func() time.Time
	theme     *styles.Theme
}

// NewToastManager creates an empty toast manager.
func NewToastManager(theme *styles.Theme) *ToastManager {
	return &ToastManager{
		maxToasts: 3,
		now:       time.Now,
		theme:     theme,
	}
}

// Add shows a toast.
func (m *ToastManager) Add(kind ToastKind, message string) {
	d := StatusToastDuration
	if kind == ToastError {
		d = ErrorToastDuration
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.toasts = append([]Toast{{
		Message:   message,
		Kind:      kind,
		CreatedAt: m.now(),
		Duration:  d,
	}}, m.toasts...)
	if len(m.toasts) > m.maxToasts {
		m.toasts = m.toasts[:m.maxToasts]
	}
}

// Prune drops expired toasts and reports whether any are left.
func (m *ToastManager) Prune() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	active := m.toasts[:0]
	for _, t := range m.toasts {
		if !t.ExpiredAt(now) {
			active = append(active, t)
		}
	}
	m.toasts = active
	return len(m.toasts) > 0
}

// Current returns the newest toast.
func (m *ToastManager) Current() (Toast, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.toasts) == 0 {
		return Toast{}, false
	}
	return m.toasts[0], true
}

// View renders the newest toast on one line, or "" when there is none.
func (m *ToastManager) View(width int) string {
	t, ok := m.Current()
	if !ok {
		return ""
	}

	style := lipgloss.NewStyle().Foreground(styles.Emerald).Bold(true)
	icon := styles.StatusIndicators.Success
	if t.Kind == ToastError {
		style = m.theme.ErrorStyle
		icon = styles.StatusIndicators.Error
	}
	text := util.TruncateWidth(icon+" "+t.Message, max(width-2, 1))
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(text))
}

// ToastTickMsg prunes expired toasts.
type ToastTickMsg struct {
	Time time.Time
}

// ToastTickCmd schedules the next prune.
func ToastTickCmd() tea.Cmd {
	return tea.Tick(toastTickInterval, func(t time.Time) tea.Msg {
		return ToastTickMsg{Time: t}
	})
}
