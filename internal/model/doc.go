// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for the BuzzLink transcript.
//
// This package defines the core domain types shared by the chat client,
// the session state machine and the renderers.
//
// # Key Types
//
//   - Turn: One entry in the transcript, authored by the user or the assistant
//   - Profile: A normalized alumni record shown as a card
//   - Reply: The normalized result of one exchange (text + profiles)
//   - Transcript: Ordered, append-only log of turns
//   - Role: Turn author enumeration (user, assistant)
//
// # Usage
//
//	var t model.Transcript
//	t.Append(model.NewUserTurn("Find alumni in software engineering"))
//	t.Append(model.NewAssistantTurn(reply.Text, reply.Profiles))
//	for _, turn := range t.Turns() {
//	    fmt.Println(turn.Role.DisplayName(), turn.Text)
//	}
package model
