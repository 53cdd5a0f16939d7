// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for the BuzzLink transcript.
package model

import (
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// ROLE TYPE
// =============================================================================

// Role represents the author of a turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// DisplayName returns a human-readable name for the role.
func (r Role) DisplayName() string {
	switch r {
	case RoleUser:
		return "You"
	case RoleAssistant:
		return "BuzzLink"
	default:
		return string(r)
	}
}

// =============================================================================
// TURN TYPE
// =============================================================================

// Turn is a single entry in the transcript.
// Turns are values: once appended to a Transcript they are never modified.
type Turn struct {
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Text      string    `json:"text,omitempty"`
	Profiles  []Profile `json:"profiles,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// NewUserTurn creates a turn holding the user's query.
func NewUserTurn(text string) Turn {
	return Turn{
		ID:        uuid.NewString(),
		Role:      RoleUser,
		Text:      text,
		Timestamp: time.Now(),
	}
}

// NewAssistantTurn creates an assistant turn. profiles may be nil.
func NewAssistantTurn(text string, profiles []Profile) Turn {
	return Turn{
		ID:        uuid.NewString(),
		Role:      RoleAssistant,
		Text:      text,
		Profiles:  cloneProfiles(profiles),
		Timestamp: time.Now(),
	}
}

// HasProfiles reports whether the turn carries at least one profile.
func (t Turn) HasProfiles() bool {
	return len(t.Profiles) > 0
}

func cloneProfiles(p []Profile) []Profile {
	if p == nil {
		return nil
	}
	out := make([]Profile, len(p))
	copy(out, p)
	return out
}

// =============================================================================
// REPLY TYPE
// =============================================================================

// Reply is the normalized result of one exchange with the chat backend.
type Reply struct {
	Text     string    `json:"text"`
	Profiles []Profile `json:"profiles"`
}
