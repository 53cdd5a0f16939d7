// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// ask.go - One-shot query command.
//
// Command: ask <query...>
//
// Examples:
//
//	buzzlink ask "Find alumni in software engineering"
//	buzzlink ask GT graduates at Google --json
//
// Exit Codes:
//
//	0   Reply received
//	2   Blank query
//	5   Backend unreachable or reply malformed
//	8   Request timed out
package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gt-buzzlink/buzzlink/internal/model"
	"github.com/gt-buzzlink/buzzlink/internal/session"
)

// askOptions holds the flags of the ask command.
type askOptions struct {
	json  bool
	plain bool
}

// askFailure is the JSON data of a failed ask: the text the views show.
type askFailure struct {
	Text string `json:"text"`
}

func (a *App) askCommand() *cobra.Command {
	var opts askOptions

	cmd := &cobra.Command{
		Use:   "ask <query...>",
		Short: "Send one query and print the reply",
		Long: `Send one query to the chat backend and print the reply text followed by
the matching alumni profiles. Words are joined with spaces, so quoting is
optional.`,
		Example: `  buzzlink ask "Find alumni in software engineering"
  buzzlink ask GT graduates at Google --json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runAsk(cmd.Context(), strings.Join(args, " "), opts)
		},
	}
	cmd.Flags().BoolVar(&opts.json, "json", false, "print the normalized reply as JSON")
	cmd.Flags().BoolVar(&opts.plain, "plain", false, "disable markdown rendering and links")
	return cmd
}

func (a *App) runAsk(ctx context.Context, query string, opts askOptions) error {
	if strings.TrimSpace(query) == "" {
		return NewValidationError("query", query, "must not be blank")
	}

	sess := session.New(session.Config{Logger: a.log})
	defer sess.Close()

	turn, err := sess.Submit(ctx, a.newClient(), query)
	if err != nil {
		return err
	}

	// The reply is the apology; the error itself goes to stderr and the exit code.
	if reqErr := sess.LastError(); reqErr != nil {
		if opts.json {
			_ = NewJSONErrorResponse("ask", reqErr, askFailure{Text: turn.Text}).Write(a.Stdout)
		} else {
			fmt.Fprintln(a.Stdout, ErrorStyle.Render(turn.Text))
		}
		return reqErr
	}

	if opts.json {
		reply := model.Reply{Text: turn.Text, Profiles: turn.Profiles}
		if reply.Profiles == nil {
			reply.Profiles = []model.Profile{}
		}
		return NewJSONResponse("ask", reply).Write(a.Stdout)
	}

	a.newReplyPrinter(a.Stdout, opts.plain).Print(query, turn, true)
	return nil
}
