// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual building blocks of the BuzzLink TUI.
package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/gt-buzzlink/buzzlink/internal/model"
	"github.com/gt-buzzlink/buzzlink/internal/ui/styles"
	"github.com/gt-buzzlink/buzzlink/internal/util"
)

// =============================================================================
// MESSAGE BUBBLE COMPONENT
// =============================================================================

// MessageBubble renders one transcript turn.
// User turns sit on the right, assistant turns on the left.
type MessageBubble struct {
	Turn          model.Turn
	Width         int
	ShowTimestamp bool
	Markdown      *MarkdownRenderer // optional; nil renders plain wrapped text
	theme         *styles.Theme
}

// NewMessageBubble creates a new MessageBubble
func NewMessageBubble(turn model.Turn, theme *styles.Theme) *MessageBubble {
	return &MessageBubble{
		Turn:          turn,
		Width:         80,
		ShowTimestamp: true,
		theme:         theme,
	}
}

// SetWidth sets the bubble width
func (b *MessageBubble) SetWidth(width int) {
	b.Width = width
}

// SetMarkdown sets the renderer used for assistant text.
func (b *MessageBubble) SetMarkdown(r *MarkdownRenderer) {
	b.Markdown = r
}

// View renders the message bubble
func (b *MessageBubble) View() string {
	if b.Turn.Role == model.RoleUser {
		return b.renderUserBubble()
	}
	return b.renderAssistantBubble()
}

func (b *MessageBubble) header() string {
	label := b.theme.RoleLabel.Render(b.Turn.Role.DisplayName())
	if b.ShowTimestamp && !b.Turn.Timestamp.IsZero() {
		label += " " + b.theme.Timestamp.Render(b.Turn.Timestamp.Format("15:04"))
	}
	return label
}

// ==========================================================================
// USER BUBBLE - navy, right-aligned
// ==========================================================================

func (b *MessageBubble) renderUserBubble() string {
	// 80% of the row, as in the web client
	maxContent := max(b.Width*4/5-6, 10)
	lines := util.WrapWords(b.Turn.Text, maxContent)

	contentWidth := 0
	for _, l := range lines {
		contentWidth = max(contentWidth, util.StringWidth(l))
	}

	bubble := b.theme.UserBubble.Width(contentWidth + 4).Render(strings.Join(lines, "\n"))
	block := lipgloss.JoinVertical(lipgloss.Right, b.header(), bubble)

	return lipgloss.PlaceHorizontal(b.Width, lipgloss.Right, block)
}

// ==========================================================================
// ASSISTANT BUBBLE - full width, left-aligned
// ==========================================================================

func (b *MessageBubble) renderAssistantBubble() string {
	if b.Turn.Text == "" {
		return ""
	}
	inner := max(b.Width-6, 10)

	body := ""
	if b.Markdown != nil {
		if out, err := b.Markdown.Render(b.Turn.Text, inner); err == nil {
			body = out
		}
	}
	if body == "" {
		body = strings.Join(util.WrapWords(b.Turn.Text, inner), "\n")
	}

	bubble := b.theme.AssistantBubble.Width(b.Width - 2).Render(body)
	return lipgloss.JoinVertical(lipgloss.Left, b.header(), bubble)
}
