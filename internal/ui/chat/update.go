// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the Bubble Tea chat view for BuzzLink.
package chat

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/gt-buzzlink/buzzlink/internal/ui/components"
)

// Layout heights of the fixed rows around the viewport.
const (
	headerHeight    = 2 // wordmark + bottom border
	inputAreaHeight = 2 // top border + input line
	statusBarHeight = 1
	footerHeight    = 1
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case ReplyMsg:
		return m.handleReply(msg)

	case spinner.TickMsg:
		if !m.session.IsLoading() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		m.statusBar.SetLoading(true, m.spinner.View())
		m.updateViewport(false)
		return m, cmd

	case ConfigReloadedMsg:
		return m.handleConfigReloaded(msg)

	case ConfigErrorMsg:
		m.log.Warn("config reload failed", zap.Error(msg.Err))
		return m, m.showToast(components.ToastError, "Config reload failed: "+msg.Err.Error())

	case components.ToastTickMsg:
		if m.toasts.Prune() {
			return m, components.ToastTickCmd()
		}
		return m, nil
	}

	// Cursor blink and other input housekeeping
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// =============================================================================
// RESIZE
// =============================================================================

func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.theme.SetSize(m.width, m.height)

	m.viewport.Width = max(m.width, 1)
	m.viewport.Height = max(m.height-headerHeight-inputAreaHeight-statusBarHeight-footerHeight, 1)

	// input line: container padding (2) + prompt (2)
	m.input.Width = max(m.width-4-len(m.input.Prompt), 10)

	m.header.SetWidth(m.width)
	m.statusBar.SetWidth(m.width)
	m.welcome.SetWidth(min(m.width, 100))
	m.footer.SetWidth(m.width)

	m.ready = true
	m.updateViewport(true)
	return m, nil
}

// =============================================================================
// KEYS
// =============================================================================

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keyMap.Quit):
		m.session.Close()
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keyMap.PageUp):
		m.viewport.ViewUp()
		return m, nil

	case key.Matches(msg, m.keyMap.PageDown):
		m.viewport.ViewDown()
		return m, nil

	case key.Matches(msg, m.keyMap.Top):
		m.viewport.GotoTop()
		return m, nil

	case key.Matches(msg, m.keyMap.Bottom):
		m.viewport.GotoBottom()
		return m, nil
	}

	// Everything below edits or submits input, which is locked while loading.
	if m.session.IsLoading() {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keyMap.Clear):
		m.input.Reset()
		m.session.SetInput("")
		return m, nil

	case key.Matches(msg, m.keyMap.Submit):
		return m.submit()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.session.SetInput(m.input.Value())
	return m, cmd
}

// submit starts a request for the current input. Validation failures are
// silent no-ops.
func (m Model) submit() (tea.Model, tea.Cmd) {
	p, err := m.session.Begin(m.input.Value())
	if err != nil {
		m.log.Debug("submit ignored", zap.Error(err))
		return m, nil
	}

	m.input.Reset()
	m.input.Blur()
	m.statusBar.SetError(nil)
	m.statusBar.SetLoading(true, m.spinner.View())
	m.updateViewport(true)

	return m, tea.Batch(sendCmd(m.backend, p), m.spinner.Tick)
}

// =============================================================================
// REPLIES
// =============================================================================

func (m Model) handleReply(msg ReplyMsg) (tea.Model, tea.Cmd) {
	if msg.Pending == nil {
		return m, nil
	}
	if _, ok := msg.Pending.Resolve(msg.Reply, msg.Err); !ok {
		return m, nil
	}

	m.statusBar.SetError(m.session.LastError())
	m.statusBar.SetLoading(false, "")
	m.input.Focus()
	m.updateViewport(true)
	return m, textinput.Blink
}

// =============================================================================
// CONFIG RELOAD
// =============================================================================

func (m Model) handleConfigReloaded(msg ConfigReloadedMsg) (tea.Model, tea.Cmd) {
	eb, ok := m.backend.(endpointBackend)
	if !ok || msg.BaseURL == "" {
		return m, nil
	}

	before := m.endpoint
	eb.SetBaseURL(msg.BaseURL)
	m.setEndpoint(eb.Endpoint())
	if m.endpoint == before {
		return m, nil
	}
	m.log.Info("endpoint updated", zap.String("endpoint", m.endpoint))
	return m, m.showToast(components.ToastStatus, "Endpoint changed to "+m.endpoint)
}

// showToast adds a toast and starts the prune ticker if it was idle.
func (m Model) showToast(kind components.ToastKind, message string) tea.Cmd {
	_, running := m.toasts.Current()
	m.toasts.Add(kind, message)
	if running {
		return nil
	}
	return components.ToastTickCmd()
}
