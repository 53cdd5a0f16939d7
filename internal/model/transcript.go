// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for the BuzzLink transcript.
package model

// =============================================================================
// TRANSCRIPT TYPE
// =============================================================================

// Transcript is an ordered, append-only log of turns.
// Insertion order is display order; turns are never reordered, deduplicated
// or changed after Append. The zero value is an empty transcript.
//
// Transcript is not safe for concurrent use. It is owned by a single session.
type Transcript struct {
	turns []Turn
}

// Append adds a turn to the end of the transcript.
func (t *Transcript) Append(turn Turn) {
	turn.Profiles = cloneProfiles(turn.Profiles)
	t.turns = append(t.turns, turn)
}

// Len returns the number of turns.
func (t *Transcript) Len() int {
	return len(t.turns)
}

// Turns returns a copy of all turns in display order.
func (t *Transcript) Turns() []Turn {
	out := make([]Turn, len(t.turns))
	for i, turn := range t.turns {
		turn.Profiles = cloneProfiles(turn.Profiles)
		out[i] = turn
	}
	return out
}

// At returns the turn at index i.
func (t *Transcript) At(i int) (Turn, bool) {
	if i < 0 || i >= len(t.turns) {
		return Turn{}, false
	}
	turn := t.turns[i]
	turn.Profiles = cloneProfiles(turn.Profiles)
	return turn, true
}

// Last returns the most recent turn, or false if the transcript is empty.
func (t *Transcript) Last() (Turn, bool) {
	return t.At(len(t.turns) - 1)
}

// PrecedingUser returns the text of the closest user turn before index i.
// It is used to caption an assistant turn with the query that produced it.
func (t *Transcript) PrecedingUser(i int) (string, bool) {
	if i > len(t.turns) {
		i = len(t.turns)
	}
	for j := i - 1; j >= 0; j-- {
		if t.turns[j].Role == RoleUser {
			return t.turns[j].Text, true
		}
	}
	return "", false
}
