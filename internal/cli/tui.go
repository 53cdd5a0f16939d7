// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// tui.go - Full-screen chat view.
//
// Command: tui (also the default when no command is given)
//
// Flags:
//
//	--alt-screen   Use the terminal's alternate screen (default from config)
//
// While the TUI runs, edits to the config file's endpoint are picked up
// without a restart unless --endpoint was given.
package cli

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gt-buzzlink/buzzlink/internal/config"
	"github.com/gt-buzzlink/buzzlink/internal/ui/chat"
	"github.com/gt-buzzlink/buzzlink/internal/ui/styles"
)

func (a *App) tuiCommand() *cobra.Command {
	var altScreen bool

	cmd := &cobra.Command{
		Use:         "tui",
		Short:       "Open the full-screen chat view",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{annotationLogToFile: "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			alt := a.cfg.UI.AltScreen
			if cmd.Flags().Changed("alt-screen") {
				alt = altScreen
			}
			return a.runTUI(cmd.Context(), alt)
		},
	}
	cmd.Flags().BoolVar(&altScreen, "alt-screen", true, "use the terminal's alternate screen")
	return cmd
}

// runTUI runs the Bubble Tea program until the user quits.
func (a *App) runTUI(ctx context.Context, altScreen bool) error {
	if !isTerminalReader(a.Stdin) || !isTerminalWriter(a.Stdout) {
		return &TTYRequiredError{Operation: "open the full-screen chat view"}
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	client := a.newClient()
	theme := styles.NewThemeWithMode(a.cfg.UI.Theme)
	model := chat.New(theme, chat.Options{
		Backend:        client,
		Endpoint:       client.Endpoint(),
		ShowWelcome:    a.cfg.UI.ShowWelcome,
		RenderMarkdown: a.cfg.UI.RenderMarkdown,
		MarkdownStyle:  a.cfg.UI.Theme,
		Hyperlinks:     HyperlinksSupported(),
		Logger:         a.log,
	})

	opts := []tea.ProgramOption{
		tea.WithContext(ctx),
		tea.WithInput(a.Stdin),
		tea.WithOutput(a.Stdout),
	}
	if altScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	p := tea.NewProgram(model, opts...)

	if a.cfgPath != "" && a.flags.endpoint == "" {
		a.watchConfig(ctx, p)
	}

	a.log.Info("tui started", zap.String("endpoint", client.Endpoint()))
	final, err := p.Run()
	if m, ok := final.(chat.Model); ok {
		m.Session().Close()
	}
	if err != nil && ctx.Err() == nil {
		return NewCommandError("tui", "run", "the chat view stopped unexpectedly", err)
	}
	return nil
}

// watchConfig forwards config file changes to the running program.
func (a *App) watchConfig(ctx context.Context, p *tea.Program) {
	err := config.Watch(ctx, a.cfgPath, func(cfg *config.Config, err error) {
		if err != nil {
			a.log.Warn("config reload failed", zap.String("path", a.cfgPath), zap.Error(err))
			p.Send(chat.ConfigErrorMsg{Err: err})
			return
		}
		p.Send(chat.ConfigReloadedMsg{BaseURL: cfg.Endpoint.URL})
	})
	if err != nil {
		a.log.Warn("config watch unavailable", zap.String("path", a.cfgPath), zap.Error(err))
	}
}
