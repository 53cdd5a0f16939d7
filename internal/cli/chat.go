// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// chat.go - Line-mode chat with history and slash commands.
//
// Command: chat
//
// Slash commands:
//
//	/help      Show the commands
//	/clear     Start a new conversation
//	/history   List the queries of this conversation
//	/quit      Leave (also /exit, exit, quit, Ctrl+D)
//
// History is kept in memory only; nothing is written to disk.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/gt-buzzlink/buzzlink/internal/model"
	"github.com/gt-buzzlink/buzzlink/internal/session"
	"github.com/gt-buzzlink/buzzlink/internal/ui/components"
)

// chatPrompt is shown before each line of input.
const chatPrompt = "buzzlink> "

func (a *App) chatCommand() *cobra.Command {
	var plain bool

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Chat in line mode",
		Long: `Chat with BuzzLink one line at a time. Arrow keys recall earlier queries.
Type /help for the available commands.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runChat(cmd.Context(), plain)
		},
	}
	cmd.Flags().BoolVar(&plain, "plain", false, "disable markdown rendering and links")
	return cmd
}

// =============================================================================
// INPUT
// =============================================================================

// lineReader reads one line of input per prompt.
type lineReader interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
	Close() error
}

// newLineReader uses liner on a terminal and a plain scanner otherwise.
func (a *App) newLineReader() lineReader {
	if isTerminalReader(a.Stdin) && isTerminalWriter(a.Stdout) {
		line := liner.NewLiner()
		line.SetCtrlCAborts(true)
		return line
	}
	return &scanReader{scanner: bufio.NewScanner(a.Stdin), out: a.Stdout}
}

// scanReader is the lineReader for piped input.
type scanReader struct {
	scanner *bufio.Scanner
	out     io.Writer
}

func (r *scanReader) Prompt(prompt string) (string, error) {
	fmt.Fprint(r.out, prompt)
	if !r.scanner.Scan() {
		fmt.Fprintln(r.out)
		if err := r.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return r.scanner.Text(), nil
}

func (r *scanReader) AppendHistory(string) {}

func (r *scanReader) Close() error { return nil }

// =============================================================================
// REPL
// =============================================================================

// chatREPL is the state of one line-mode conversation.
type chatREPL struct {
	app     *App
	session *session.Session
	printer *replyPrinter
}

func (a *App) runChat(ctx context.Context, plain bool) error {
	client := a.newClient()
	r := &chatREPL{
		app:     a,
		session: session.New(session.Config{Logger: a.log}),
		printer: a.newReplyPrinter(a.Stdout, plain),
	}
	defer func() { r.session.Close() }()

	in := a.newLineReader()
	defer in.Close()

	r.printBanner(client.Endpoint())

	for {
		line, err := in.Prompt(PromptStyle.Render(chatPrompt))
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}
		in.AppendHistory(input)

		if strings.HasPrefix(input, "/") {
			if quit := r.handleSlash(input); quit {
				return nil
			}
			continue
		}
		if strings.EqualFold(input, "exit") || strings.EqualFold(input, "quit") {
			return nil
		}

		// Ctrl+C cancels the request in flight, not the whole chat.
		reqCtx, stop := signal.NotifyContext(ctx, os.Interrupt)
		turn, err := r.session.Submit(reqCtx, client, input)
		canceled := reqCtx.Err() != nil && ctx.Err() == nil
		stop()

		if err != nil {
			if errors.Is(err, session.ErrClosed) {
				return nil
			}
			continue
		}
		r.printTurn(input, turn, canceled)
	}
}

func (r *chatREPL) printBanner(endpoint string) {
	out := r.app.Stdout
	fmt.Fprintln(out, components.Wordmark(r.printer.theme))
	fmt.Fprintln(out, components.WelcomeText)
	fmt.Fprintln(out, DimStyle.Render("Endpoint: "+endpoint))
	fmt.Fprintln(out, DimStyle.Render("Type /help for commands, /quit to leave."))
	fmt.Fprintln(out)
}

// printTurn prints the assistant turn. A canceled request is recorded as a
// failure, so its apology is printed after the marker.
func (r *chatREPL) printTurn(query string, turn model.Turn, canceled bool) {
	if canceled {
		fmt.Fprintln(r.app.Stdout, WarningStyle.Render("[Cancelled]"))
	}
	if r.session.LastError() != nil {
		fmt.Fprintln(r.app.Stdout, ErrorStyle.Render(turn.Text))
		fmt.Fprintln(r.app.Stdout)
		return
	}
	r.printer.Print(query, turn, false)
	fmt.Fprintln(r.app.Stdout)
}

// =============================================================================
// SLASH COMMANDS
// =============================================================================

// handleSlash runs a slash command and reports whether the chat should end.
func (r *chatREPL) handleSlash(input string) bool {
	out := r.app.Stdout
	name := strings.ToLower(strings.Fields(input)[0])

	switch name {
	case "/quit", "/exit", "/q":
		return true

	case "/help", "/?":
		fmt.Fprintln(out, TitleStyle.Render("Commands"))
		for _, c := range [][2]string{
			{"/help", "Show this help"},
			{"/clear", "Start a new conversation"},
			{"/history", "List the queries of this conversation"},
			{"/quit", "Leave the chat"},
		} {
			fmt.Fprintf(out, "  %s %s\n", LabelStyle.Render(c[0]), c[1])
		}

	case "/clear", "/new":
		r.session.Close()
		r.session = session.New(session.Config{Logger: r.app.log})
		fmt.Fprintln(out, SuccessStyle.Render("Started a new conversation."))

	case "/history":
		n := 0
		for _, t := range r.session.Turns() {
			if t.Role != model.RoleUser {
				continue
			}
			n++
			fmt.Fprintf(out, "  %d. %s\n", n, t.Text)
		}
		if n == 0 {
			fmt.Fprintln(out, DimStyle.Render("No queries yet."))
		}

	default:
		fmt.Fprintln(out, WarningStyle.Render("Unknown command: "+name+". Type /help for commands."))
	}

	fmt.Fprintln(out)
	return false
}
