// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the Bubble Tea chat view for BuzzLink.
//
// This file defines the Bubble Tea message types used by the chat view.
package chat

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/gt-buzzlink/buzzlink/internal/model"
	"github.com/gt-buzzlink/buzzlink/internal/session"
)

// =============================================================================
// REQUEST MESSAGES
// =============================================================================

// ReplyMsg delivers the backend result for one Pending submit.
type ReplyMsg struct {
	Pending *session.Pending
	Reply   *model.Reply
	Err     error
}

// sendCmd calls the backend for p and reports the result as a ReplyMsg.
func sendCmd(backend session.Backend, p *session.Pending) tea.Cmd {
	return func() tea.Msg {
		reply, err := backend.SendMessage(p.Context(), p.Query())
		return ReplyMsg{Pending: p, Reply: reply, Err: err}
	}
}

// =============================================================================
// CONFIG MESSAGES
// =============================================================================

// ConfigReloadedMsg is sent when the config file changes on disk.
type ConfigReloadedMsg struct {
	BaseURL string
}

// ConfigErrorMsg is sent when a changed config file fails to load.
type ConfigErrorMsg struct {
	Err error
}
