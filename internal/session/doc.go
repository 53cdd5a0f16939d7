// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session holds the in-memory state of one BuzzLink conversation.
//
// A Session owns the transcript, the pending input text and the loading flag.
// A submit is split in two halves so that views can run the network call
// asynchronously:
//
//	Idle --Begin(text)--> Submitting --Pending.Resolve(reply, err)--> Idle
//
// Begin validates the input, appends the user turn and marks the session as
// loading. Resolve appends exactly one assistant turn (the reply, or a fixed
// apology when the request failed) and always releases the loading flag.
// A Pending resolved after Close is discarded.
//
// # Key Types
//
//   - Session: Transcript, input and loading state
//   - Pending: One in-flight submit
//   - Backend: Anything that can answer a chat message
//
// # Usage
//
//	sess := session.New(session.Config{Logger: log})
//	defer sess.Close()
//
//	turn, err := sess.Submit(ctx, client, "Find alumni in software engineering")
//	if errors.Is(err, session.ErrEmptyInput) {
//	    // nothing was sent
//	}
//
// Sessions are never persisted.
package session
