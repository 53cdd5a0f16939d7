// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual building blocks of the BuzzLink TUI.
package components

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
)

// bulletPrefix is the bullet the chat client puts in front of list items.
const bulletPrefix = "• "

// MarkdownRenderer renders assistant text with glamour.
// The underlying renderer is rebuilt only when the wrap width changes.
type MarkdownRenderer struct {
	mu       sync.Mutex
	style    string
	width    int
	renderer *glamour.TermRenderer
}

// NewMarkdownRenderer creates a renderer for "dark", "light", "notty" or
// "auto". "notty" emits no escape sequences.
func NewMarkdownRenderer(style string) *MarkdownRenderer {
	return &MarkdownRenderer{style: strings.ToLower(style)}
}

// Render renders text wrapped at width columns.
func (m *MarkdownRenderer) Render(text string, width int) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.renderer == nil || m.width != width {
		r, err := glamour.NewTermRenderer(m.styleOption(), glamour.WithWordWrap(width))
		if err != nil {
			return "", err
		}
		m.renderer = r
		m.width = width
	}

	out, err := m.renderer.Render(ToMarkdown(text))
	if err != nil {
		return "", err
	}
	return strings.Trim(out, "\n"), nil
}

func (m *MarkdownRenderer) styleOption() glamour.TermRendererOption {
	switch m.style {
	case "dark", "light", "notty":
		return glamour.WithStandardStyle(m.style)
	default:
		return glamour.WithAutoStyle()
	}
}

// ToMarkdown turns the plain reply layout into markdown: bullet lines become
// list items so they keep their own lines when rendered.
func ToMarkdown(text string) string {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		if rest, ok := strings.CutPrefix(l, bulletPrefix); ok {
			lines[i] = "- " + rest
		}
	}
	return strings.Join(lines, "\n")
}
