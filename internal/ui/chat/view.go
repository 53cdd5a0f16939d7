// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the Bubble Tea chat view for BuzzLink.
package chat

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/gt-buzzlink/buzzlink/internal/model"
	"github.com/gt-buzzlink/buzzlink/internal/ui/components"
)

// maxCardWidth keeps profile cards compact on wide terminals.
const maxCardWidth = 80

// View renders the chat view.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Loading..."
	}

	m.statusBar.SetTurns(m.session.Len())

	return lipgloss.JoinVertical(lipgloss.Left,
		m.header.View(),
		m.viewport.View(),
		m.renderInput(),
		m.statusBar.View(),
		m.renderFooter(),
	)
}

// renderFooter shows the newest toast in place of the copyright line.
func (m Model) renderFooter() string {
	if toast := m.toasts.View(m.width); toast != "" {
		return toast
	}
	return m.footer.View()
}

func (m Model) renderInput() string {
	return m.theme.InputContainer.Width(m.width).Render(m.input.View())
}

// updateViewport re-renders the transcript into the viewport.
func (m *Model) updateViewport(toBottom bool) {
	m.viewport.SetContent(m.renderTranscript())
	if toBottom {
		m.viewport.GotoBottom()
	}
}

// renderTranscript renders every turn in order. Assistant turns with
// profiles are followed by their response list, captioned with the query
// that produced them.
func (m Model) renderTranscript() string {
	turns := m.session.Turns()
	width := max(m.width, 20)

	var parts []string
	if len(turns) == 0 && m.showWelcome {
		parts = append(parts, m.welcome.View())
	}

	for i, turn := range turns {
		bubble := components.NewMessageBubble(turn, m.theme)
		bubble.SetWidth(width)
		if turn.Role == model.RoleAssistant {
			bubble.SetMarkdown(m.markdown)
		}
		if v := bubble.View(); v != "" {
			parts = append(parts, v)
		}

		if turn.Role == model.RoleAssistant && turn.HasProfiles() {
			query, _ := m.session.PrecedingUser(i)
			list := components.NewResponseList(query, turn.Profiles, m.theme)
			list.SetWidth(min(width-2, maxCardWidth))
			list.SetHyperlinks(m.hyperlinks)
			parts = append(parts, list.View())
		}
	}

	if m.session.IsLoading() {
		parts = append(parts,
			m.theme.Spinner.Render(m.spinner.View())+" "+m.theme.ThinkingText.Render(components.ThinkingText))
	}

	return strings.Join(parts, "\n\n")
}
