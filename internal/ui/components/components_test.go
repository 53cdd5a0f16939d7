// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual building blocks of the BuzzLink TUI.
package components

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/gt-buzzlink/buzzlink/internal/chatapi"
	"github.com/gt-buzzlink/buzzlink/internal/model"
	"github.com/gt-buzzlink/buzzlink/internal/ui/styles"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func wideTheme() *styles.Theme {
	theme := styles.NewTheme()
	theme.SetSize(120, 40)
	return theme
}

func linkedProfile(name string) model.Profile {
	return model.NewProfile(model.ProfileFields{
		ID:          name,
		Name:        name,
		Summary:     "Engineer",
		LinkedInURL: "https://linkedin.com/in/" + strings.ToLower(name),
	}, model.Fallbacks{})
}

// =============================================================================
// HEADER TESTS
// =============================================================================

func TestHeader_View(t *testing.T) {
	h := NewHeader(wideTheme())
	h.SetWidth(120)
	h.SetEndpoint("http://localhost:8000/chat")

	view := h.View()
	assert.Contains(t, view, "BuzzLink")
	assert.Contains(t, view, DefaultSubtitle)
	assert.Contains(t, view, "http://localhost:8000/chat")
}

func TestHeader_NarrowDropsSubtitle(t *testing.T) {
	theme := styles.NewTheme()
	theme.SetSize(40, 20)
	h := NewHeader(theme)
	h.SetWidth(40)

	view := h.View()
	assert.Contains(t, view, "BuzzLink")
	assert.NotContains(t, view, DefaultSubtitle)
}

// =============================================================================
// PROFILE CARD TESTS
// =============================================================================

func TestProfileCard_ShowsFields(t *testing.T) {
	p := linkedProfile("Alice")
	card := NewProfileCard(p, wideTheme())
	card.SetWidth(60)

	view := card.View()
	assert.Contains(t, view, "Alice")
	assert.Contains(t, view, "Image: "+model.DefaultImageURL)
	assert.Contains(t, view, "Engineer")
	assert.Contains(t, view, ConnectLabel)
	assert.Contains(t, view, "https://linkedin.com/in/alice")
}

func TestProfileCard_NoLinkHidesConnect(t *testing.T) {
	p := model.NewProfile(model.ProfileFields{ID: "1", Name: "Bob"}, model.Fallbacks{})
	require.False(t, p.HasLink())

	view := NewProfileCard(p, wideTheme()).View()
	assert.Contains(t, view, "Bob")
	assert.Contains(t, view, model.NoSummaryText)
	assert.NotContains(t, view, ConnectLabel)
}

func TestProfileCard_WrapsLongSummary(t *testing.T) {
	p := linkedProfile("Carol")
	p.Summary = strings.Repeat("alumni ", 30)

	card := NewProfileCard(p, wideTheme())
	card.SetWidth(40)

	for _, line := range strings.Split(card.View(), "\n") {
		assert.LessOrEqual(t, lipgloss.Width(line), 40)
	}
}

func TestProfileCard_Hyperlinks(t *testing.T) {
	card := NewProfileCard(linkedProfile("Dana"), wideTheme())
	card.SetHyperlinks(true)

	assert.Contains(t, card.View(), "]8;;https://linkedin.com/in/dana")
}

// =============================================================================
// RESPONSE LIST TESTS
// =============================================================================

func TestResponseList_Caption(t *testing.T) {
	theme := wideTheme()

	assert.Equal(t, CaptionPrefix+"GT grads at Google", NewResponseList("GT grads at Google", nil, theme).Caption())
	assert.Equal(t, "", NewResponseList("", nil, theme).Caption())
	assert.Equal(t, "", NewResponseList("   ", nil, theme).Caption())
}

func TestResponseList_Empty(t *testing.T) {
	view := NewResponseList("robotics in Atlanta", nil, wideTheme()).View()

	assert.Contains(t, view, "Showing results for: robotics in Atlanta")
	assert.Contains(t, view, EmptyProfilesText)
}

func TestResponseList_KeepsOrder(t *testing.T) {
	profiles := []model.Profile{linkedProfile("Zed"), linkedProfile("Amy"), linkedProfile("Max")}
	list := NewResponseList("q", profiles, wideTheme())
	list.SetWidth(50)

	view := list.View()
	zed := strings.Index(view, "Zed")
	amy := strings.Index(view, "Amy")
	maxIdx := strings.Index(view, "Max")

	require.True(t, zed >= 0 && amy >= 0 && maxIdx >= 0)
	assert.Less(t, zed, amy)
	assert.Less(t, amy, maxIdx)
	assert.NotContains(t, view, EmptyProfilesText)
}

// =============================================================================
// MESSAGE BUBBLE TESTS
// =============================================================================

func TestMessageBubble_User(t *testing.T) {
	b := NewMessageBubble(model.NewUserTurn("Find alumni at Delta"), wideTheme())
	b.SetWidth(100)

	view := b.View()
	assert.Contains(t, view, "You")
	assert.Contains(t, view, "Find alumni at Delta")
}

func TestMessageBubble_AssistantPlain(t *testing.T) {
	b := NewMessageBubble(model.NewAssistantTurn("3 matches", nil), wideTheme())
	b.ShowTimestamp = false

	view := b.View()
	assert.Contains(t, view, "BuzzLink")
	assert.Contains(t, view, "3 matches")
}

func TestMessageBubble_EmptyAssistantRendersNothing(t *testing.T) {
	b := NewMessageBubble(model.NewAssistantTurn("", []model.Profile{linkedProfile("A")}), wideTheme())
	assert.Equal(t, "", b.View())
}

// =============================================================================
// MARKDOWN TESTS
// =============================================================================

func TestToMarkdown(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain", "plain"},
		{"Key Highlights:\n• one\n• two", "Key Highlights:\n- one\n- two"},
		{"a • b", "a • b"},
		{"", ""},
	}

	for _, tc := range tests {
		if got := ToMarkdown(tc.in); got != tc.want {
			t.Errorf("ToMarkdown(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestMarkdownRenderer_Render(t *testing.T) {
	r := NewMarkdownRenderer("notty")

	out, err := r.Render("3 matches\n\nKey Highlights:\n• GT CS grads", 60)
	require.NoError(t, err)
	assert.Contains(t, out, "3 matches")
	assert.Contains(t, out, "GT CS grads")

	// width change rebuilds the renderer
	_, err = r.Render("again", 40)
	require.NoError(t, err)
	assert.Equal(t, 40, r.width)
}

// =============================================================================
// STATUS BAR TESTS
// =============================================================================

func TestStatus_StringAndIcon(t *testing.T) {
	tests := []struct {
		status Status
		name   string
		icon   string
	}{
		{StatusReady, "Ready", styles.StatusIndicators.Success},
		{StatusLoading, "Loading", styles.StatusIndicators.Pending},
		{StatusError, "Error", styles.StatusIndicators.Error},
		{Status(99), "Unknown", "?"},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.name, tc.status.String())
		assert.Equal(t, tc.icon, tc.status.Icon())
	}
}

func TestStatusBar_Transitions(t *testing.T) {
	s := NewStatusBar(wideTheme())
	assert.Equal(t, StatusReady, s.Status)

	s.SetLoading(true, "*")
	assert.Equal(t, StatusLoading, s.Status)

	// an error reported mid-flight surfaces once loading ends
	s.SetError(errors.New("connection refused"))
	assert.Equal(t, StatusLoading, s.Status)
	s.SetLoading(false, "")
	assert.Equal(t, StatusError, s.Status)

	s.SetError(nil)
	assert.Equal(t, StatusReady, s.Status)
	assert.Empty(t, s.ErrorText)
}

func TestStatusBar_View(t *testing.T) {
	s := NewStatusBar(wideTheme())
	s.SetWidth(120)
	s.SetEndpoint("http://localhost:8000/chat")
	s.SetTurns(4)

	view := s.View()
	assert.Contains(t, view, "Ready")
	assert.Contains(t, view, "localhost:8000")
	assert.Contains(t, view, "4 turns")
	assert.Contains(t, view, "Enter")

	s.SetLoading(true, ".")
	assert.Contains(t, s.View(), ThinkingText)

	s.SetLoading(false, "")
	s.SetError(errors.New("boom"))
	assert.Contains(t, s.View(), "Request failed")
	assert.NotContains(t, s.View(), "boom")
}

func TestStatusBar_ErrorShowsClassOnly(t *testing.T) {
	s := NewStatusBar(wideTheme())
	s.SetWidth(120)

	s.SetError(&chatapi.ClientError{
		Type:       chatapi.ErrTypeNetwork,
		Message:    "chat endpoint returned 500 Internal Server Error: qdrant key bad",
		StatusCode: 500,
	})
	view := s.View()
	assert.Contains(t, view, "Backend unavailable")
	assert.NotContains(t, view, "500")
	assert.NotContains(t, view, "qdrant")
}

func TestErrorLabel(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{chatapi.ErrNetwork, "Backend unavailable"},
		{chatapi.ErrTimeout, "Request timed out"},
		{chatapi.ErrMalformedResponse, "Unreadable reply"},
		{chatapi.ErrCanceled, "Request canceled"},
		{fmt.Errorf("wrapped: %w", chatapi.ErrTimeout), "Request timed out"},
		{errors.New("socket: secret detail"), "Request failed"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ErrorLabel(tt.err), tt.err.Error())
	}
}

func TestTurnCount(t *testing.T) {
	assert.Equal(t, "0 turns", turnCount(0))
	assert.Equal(t, "1 turn", turnCount(1))
	assert.Equal(t, "12 turns", turnCount(12))
}

// =============================================================================
// WELCOME / FOOTER TESTS
// =============================================================================

func TestWelcome_View(t *testing.T) {
	w := NewWelcome(wideTheme())
	w.SetWidth(100)

	view := w.View()
	assert.Contains(t, view, "BuzzLink")
	assert.Contains(t, view, "Welcome to BuzzLink!")
	for _, q := range ExampleQueries {
		assert.Contains(t, view, q)
	}
}

func TestFooterText(t *testing.T) {
	assert.Equal(t, "© 2025 BuzzLink | Georgia Institute of Technology", FooterText(2025))

	f := NewFooter(wideTheme())
	f.Year = 2024
	f.SetWidth(80)
	assert.Contains(t, f.View(), "© 2024 BuzzLink")
}

// =============================================================================
// TOAST TESTS
// =============================================================================

func TestToastManager_ExpiresByKind(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	m := NewToastManager(wideTheme())
	m.now = func() time.Time { return now }

	m.Add(ToastError, "reload failed")
	m.Add(ToastStatus, "endpoint changed")

	cur, ok := m.Current()
	require.True(t, ok)
	assert.Equal(t, "endpoint changed", cur.Message, "newest first")

	now = now.Add(StatusToastDuration)
	assert.True(t, m.Prune())
	cur, _ = m.Current()
	assert.Equal(t, "reload failed", cur.Message)

	now = now.Add(ErrorToastDuration)
	assert.False(t, m.Prune())
	assert.Empty(t, m.View(80))
}

func TestToastManager_CapsVisibleToasts(t *testing.T) {
	m := NewToastManager(wideTheme())
	for i := 0; i < 5; i++ {
		m.Add(ToastStatus, "notice")
	}
	assert.Len(t, m.toasts, m.maxToasts)
}

func TestToastManager_View(t *testing.T) {
	m := NewToastManager(wideTheme())
	m.Add(ToastError, "Config reload failed: " + strings.Repeat("x", 100))

	view := m.View(60)
	assert.Contains(t, view, styles.StatusIndicators.Error)
	assert.Contains(t, view, "Config reload failed")
	assert.LessOrEqual(t, lipgloss.Width(view), 60)
}
