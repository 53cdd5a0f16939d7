// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// output.go - Rendering of replies in line mode.
package cli

import (
	"fmt"
	"io"

	"github.com/gt-buzzlink/buzzlink/internal/model"
	"github.com/gt-buzzlink/buzzlink/internal/ui/components"
	"github.com/gt-buzzlink/buzzlink/internal/ui/styles"
)

// maxCardWidth keeps profile cards compact on wide terminals.
const maxCardWidth = 80

// replyPrinter renders assistant turns for ask and chat.
type replyPrinter struct {
	w          io.Writer
	theme      *styles.Theme
	width      int
	markdown   *components.MarkdownRenderer // nil prints plain text
	hyperlinks bool
}

// newReplyPrinter sets up a printer for w. Markdown and links are only used
// when w is a terminal and plain is false.
func (a *App) newReplyPrinter(w io.Writer, plain bool) *replyPrinter {
	width := terminalWidth(w)
	theme := styles.NewThemeWithMode(a.cfg.UI.Theme)
	theme.SetSize(width, 0)

	p := &replyPrinter{w: w, theme: theme, width: width}
	if !plain && isTerminalWriter(w) {
		p.markdown = components.NewMarkdownRenderer(a.cfg.UI.Theme)
		p.hyperlinks = HyperlinksSupported()
	}
	return p
}

// renderText renders reply text, falling back to plain text if glamour fails.
func (p *replyPrinter) renderText(text string) string {
	if p.markdown == nil {
		return text
	}
	out, err := p.markdown.Render(text, p.width)
	if err != nil || out == "" {
		return text
	}
	return out
}

// Print writes the turn text followed by its profile list. With
// alwaysList the list is printed even when empty, showing the placeholder.
func (p *replyPrinter) Print(query string, turn model.Turn, alwaysList bool) {
	if turn.Text != "" {
		fmt.Fprintln(p.w, p.renderText(turn.Text))
	}
	if !turn.HasProfiles() && !alwaysList {
		return
	}

	list := components.NewResponseList(query, turn.Profiles, p.theme)
	list.SetWidth(min(p.width, maxCardWidth))
	list.SetHyperlinks(p.hyperlinks)
	fmt.Fprintln(p.w)
	fmt.Fprintln(p.w, list.View())
}
