// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for the BuzzLink transcript.
package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// ROLE TESTS
// =============================================================================

func TestRole_DisplayName(t *testing.T) {
	tests := []struct {
		role Role
		want string
	}{
		{RoleUser, "You"},
		{RoleAssistant, "BuzzLink"},
		{Role("other"), "other"},
	}

	for _, tc := range tests {
		if got := tc.role.DisplayName(); got != tc.want {
			t.Errorf("Role(%q).DisplayName() = %q, want %q", tc.role, got, tc.want)
		}
	}
}

// =============================================================================
// PROFILE TESTS
// =============================================================================

func TestNewProfile_Fallbacks(t *testing.T) {
	tests := []struct {
		name string
		in   ProfileFields
		want Profile
	}{
		{
			name: "all fields present",
			in: ProfileFields{
				ID: "1", Name: "A. Lee", ImageURL: "https://img/a.png",
				Headline: "SWE", Summary: "Builds things", LinkedInURL: "https://linkedin.com/in/alee",
			},
			want: Profile{
				ID: "1", Name: "A. Lee", ImageURL: "https://img/a.png",
				Summary: "Builds things", LinkedInURL: "https://linkedin.com/in/alee",
			},
		},
		{
			name: "summary falls back to headline",
			in:   ProfileFields{ID: "2", Name: "B", Headline: "PM at Delta"},
			want: Profile{
				ID: "2", Name: "B", ImageURL: DefaultImageURL,
				Summary: "PM at Delta", LinkedInURL: DefaultLinkURL,
			},
		},
		{
			name: "nothing optional present",
			in:   ProfileFields{ID: "3", Name: "C"},
			want: Profile{
				ID: "3", Name: "C", ImageURL: DefaultImageURL,
				Summary: NoSummaryText, LinkedInURL: DefaultLinkURL,
			},
		},
		{
			name: "unknown marker is treated as missing",
			in:   ProfileFields{ID: "4", Name: "D", ImageURL: "Unknown", Summary: "unknown", Headline: "  "},
			want: Profile{
				ID: "4", Name: "D", ImageURL: DefaultImageURL,
				Summary: NoSummaryText, LinkedInURL: DefaultLinkURL,
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := NewProfile(tc.in, Fallbacks{})
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestNewProfile_IdentityAlwaysPresent(t *testing.T) {
	p := NewProfile(ProfileFields{}, Fallbacks{})

	assert.NotEmpty(t, p.ID)
	assert.Equal(t, UnknownName, p.Name)
	assert.False(t, p.HasLink())
}

func TestNewProfile_CustomFallbacks(t *testing.T) {
	fb := Fallbacks{ImageURL: "file:///placeholder.png", NoSummary: "n/a"}
	p := NewProfile(ProfileFields{ID: "x", Name: "X"}, fb)

	assert.Equal(t, "file:///placeholder.png", p.ImageURL)
	assert.Equal(t, "n/a", p.Summary)
	assert.Equal(t, DefaultLinkURL, p.LinkedInURL)
}

func TestNewProfile_ComposesUnicode(t *testing.T) {
	// "Zoë" with a combining diaeresis
	p := NewProfile(ProfileFields{ID: "z", Name: "Zoe\u0308"}, Fallbacks{})
	assert.Equal(t, "Zo\u00eb", p.Name)
}

func TestProfile_HasLink(t *testing.T) {
	assert.True(t, Profile{LinkedInURL: "https://linkedin.com/in/x"}.HasLink())
	assert.False(t, Profile{LinkedInURL: DefaultLinkURL}.HasLink())
	assert.False(t, Profile{}.HasLink())
}

// =============================================================================
// TURN TESTS
// =============================================================================

func TestNewTurns(t *testing.T) {
	u := NewUserTurn("hello")
	a := NewAssistantTurn("hi", []Profile{{ID: "1", Name: "A"}})

	assert.Equal(t, RoleUser, u.Role)
	assert.Equal(t, "hello", u.Text)
	assert.False(t, u.HasProfiles())
	assert.NotEmpty(t, u.ID)

	assert.Equal(t, RoleAssistant, a.Role)
	assert.True(t, a.HasProfiles())
	assert.NotEqual(t, u.ID, a.ID)
}

func TestNewAssistantTurn_CopiesProfiles(t *testing.T) {
	profiles := []Profile{{ID: "1", Name: "A"}}
	turn := NewAssistantTurn("x", profiles)

	profiles[0].Name = "mutated"
	assert.Equal(t, "A", turn.Profiles[0].Name)
}

// =============================================================================
// TRANSCRIPT TESTS
// =============================================================================

func TestTranscript_AppendOrder(t *testing.T) {
	var tr Transcript
	require.Equal(t, 0, tr.Len())
	_, ok := tr.Last()
	require.False(t, ok)

	tr.Append(NewUserTurn("one"))
	tr.Append(NewAssistantTurn("two", nil))
	tr.Append(NewUserTurn("three"))

	turns := tr.Turns()
	require.Len(t, turns, 3)
	assert.Equal(t, "one", turns[0].Text)
	assert.Equal(t, "two", turns[1].Text)
	assert.Equal(t, "three", turns[2].Text)

	last, ok := tr.Last()
	require.True(t, ok)
	assert.Equal(t, "three", last.Text)
}

func TestTranscript_TurnsAreCopies(t *testing.T) {
	var tr Transcript
	tr.Append(NewAssistantTurn("reply", []Profile{{ID: "1", Name: "A"}}))

	turns := tr.Turns()
	turns[0].Text = "changed"
	turns[0].Profiles[0].Name = "changed"

	again, _ := tr.At(0)
	assert.Equal(t, "reply", again.Text)
	assert.Equal(t, "A", again.Profiles[0].Name)
}

func TestTranscript_AtOutOfRange(t *testing.T) {
	var tr Transcript
	tr.Append(NewUserTurn("q"))

	_, ok := tr.At(-1)
	assert.False(t, ok)
	_, ok = tr.At(1)
	assert.False(t, ok)
}

func TestTranscript_PrecedingUser(t *testing.T) {
	var tr Transcript
	tr.Append(NewUserTurn("first query"))
	tr.Append(NewAssistantTurn("first reply", nil))
	tr.Append(NewUserTurn("second query"))
	tr.Append(NewAssistantTurn("second reply", nil))

	q, ok := tr.PrecedingUser(3)
	require.True(t, ok)
	assert.Equal(t, "second query", q)

	q, ok = tr.PrecedingUser(1)
	require.True(t, ok)
	assert.Equal(t, "first query", q)

	_, ok = tr.PrecedingUser(0)
	assert.False(t, ok)
}
