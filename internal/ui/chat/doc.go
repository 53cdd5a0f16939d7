// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the Bubble Tea chat view for BuzzLink.
//
// The Model composes a session.Session with the UI components: a header,
// a scrollable viewport holding the transcript, a single-line text input
// and a status bar.
//
// # Request flow
//
// Pressing Enter calls session.Begin. Blank input and input typed while a
// request is in flight are dropped without feedback. A successful Begin
// returns a Pending; the view starts a tea.Cmd that calls the backend with
// the Pending's context and delivers a ReplyMsg. Update hands the result to
// Pending.Resolve, which appends the assistant turn or the apology.
//
// Quitting closes the session, which cancels the request context and makes
// any late ReplyMsg a no-op.
//
// # Key Bindings
//
//   - Enter: send the query
//   - PgUp/PgDn: scroll the transcript
//   - Ctrl+L: clear the input line
//   - Esc/Ctrl+C: quit
package chat
