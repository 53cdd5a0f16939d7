// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the Bubble Tea chat view for BuzzLink.
package chat

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gt-buzzlink/buzzlink/internal/chatapi"
	"github.com/gt-buzzlink/buzzlink/internal/model"
	"github.com/gt-buzzlink/buzzlink/internal/session"
	"github.com/gt-buzzlink/buzzlink/internal/ui/components"
	"github.com/gt-buzzlink/buzzlink/internal/ui/styles"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

type fakeBackend struct {
	mu      sync.Mutex
	reply   *model.Reply
	err     error
	queries []string
	baseURL string
}

func (f *fakeBackend) SendMessage(_ context.Context, text string) (*model.Reply, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, text)
	return f.reply, f.err
}

func (f *fakeBackend) SetBaseURL(u string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.baseURL = u
}

func (f *fakeBackend) Endpoint() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.baseURL + "/chat"
}

func newTestModel(t *testing.T, backend session.Backend) Model {
	t.Helper()
	m := New(styles.NewTheme(), Options{
		Backend:     backend,
		Endpoint:    "http://test/chat",
		ShowWelcome: true,
	})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return next.(Model)
}

func typeText(m Model, s string) Model {
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
	return next.(Model)
}

func press(m Model, k tea.KeyType) (Model, tea.Cmd) {
	next, cmd := m.Update(tea.KeyMsg{Type: k})
	return next.(Model), cmd
}

// findReply runs cmd and returns the ReplyMsg it produces, looking one level
// into batches.
func findReply(t *testing.T, cmd tea.Cmd) ReplyMsg {
	t.Helper()
	require.NotNil(t, cmd)

	switch msg := cmd().(type) {
	case ReplyMsg:
		return msg
	case tea.BatchMsg:
		for _, c := range msg {
			if c == nil {
				continue
			}
			if r, ok := c().(ReplyMsg); ok {
				return r
			}
		}
	}
	t.Fatal("command did not produce a ReplyMsg")
	return ReplyMsg{}
}

func sampleReply() *model.Reply {
	return &model.Reply{
		Text: "2 matches",
		Profiles: []model.Profile{
			model.NewProfile(model.ProfileFields{ID: "1", Name: "Ada Lee", Summary: "SWE at Google"}, model.Fallbacks{}),
			model.NewProfile(model.ProfileFields{ID: "2", Name: "Bo Chen", Summary: "PM at Google"}, model.Fallbacks{}),
		},
	}
}

// =============================================================================
// SUBMIT TESTS
// =============================================================================

func TestSubmit_Success(t *testing.T) {
	backend := &fakeBackend{reply: sampleReply()}
	m := newTestModel(t, backend)

	m = typeText(m, "GT grads at Google")
	assert.Equal(t, "GT grads at Google", m.Session().Input())

	m, cmd := press(m, tea.KeyEnter)
	require.NotNil(t, cmd)
	assert.True(t, m.Session().IsLoading())
	assert.Equal(t, 1, m.Session().Len())
	assert.Equal(t, "", m.input.Value())
	assert.Equal(t, components.StatusLoading, m.statusBar.Status)

	reply := findReply(t, cmd)
	next, _ := m.Update(reply)
	m = next.(Model)

	assert.False(t, m.Session().IsLoading())
	turns := m.Session().Turns()
	require.Len(t, turns, 2)
	assert.Equal(t, model.RoleUser, turns[0].Role)
	assert.Equal(t, "2 matches", turns[1].Text)
	assert.Len(t, turns[1].Profiles, 2)
	assert.Equal(t, []string{"GT grads at Google"}, backend.queries)

	view := m.View()
	assert.Contains(t, view, components.CaptionPrefix+"GT grads at Google")
	assert.Contains(t, view, "Ada Lee")
	assert.Contains(t, view, "Bo Chen")
	assert.Equal(t, components.StatusReady, m.statusBar.Status)
}

func TestSubmit_BlankInputIsNoop(t *testing.T) {
	m := newTestModel(t, &fakeBackend{reply: sampleReply()})

	m = typeText(m, "   ")
	m, cmd := press(m, tea.KeyEnter)

	assert.Nil(t, cmd)
	assert.Equal(t, 0, m.Session().Len())
	assert.False(t, m.Session().IsLoading())
}

func TestSubmit_InputLockedWhileLoading(t *testing.T) {
	backend := &fakeBackend{reply: sampleReply()}
	m := newTestModel(t, backend)

	m = typeText(m, "first")
	m, cmd := press(m, tea.KeyEnter)
	require.NotNil(t, cmd)

	m = typeText(m, "second")
	assert.Equal(t, "", m.input.Value())

	m, again := press(m, tea.KeyEnter)
	assert.Nil(t, again)
	assert.Equal(t, 1, m.Session().Len())

	next, _ := m.Update(findReply(t, cmd))
	m = next.(Model)
	assert.Equal(t, 2, m.Session().Len())
	assert.Equal(t, []string{"first"}, backend.queries)
}

func TestSubmit_FailureAppendsApology(t *testing.T) {
	m := newTestModel(t, &fakeBackend{err: errors.New("connection refused")})

	m = typeText(m, "robotics")
	m, cmd := press(m, tea.KeyEnter)

	next, _ := m.Update(findReply(t, cmd))
	m = next.(Model)

	turns := m.Session().Turns()
	require.Len(t, turns, 2)
	assert.Equal(t, session.ApologyText, turns[1].Text)
	assert.Empty(t, turns[1].Profiles)
	assert.Equal(t, components.StatusError, m.statusBar.Status)
	assert.Contains(t, m.View(), session.ApologyText)
	assert.NotContains(t, m.View(), "connection refused")
}

func TestSubmit_BackendErrorDetailStaysHidden(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"detail":"qdrant key bad"}`))
	}))
	t.Cleanup(srv.Close)

	cfg := chatapi.DefaultConfig()
	cfg.BaseURL = srv.URL
	cfg.Timeout = 2 * time.Second
	m := newTestModel(t, chatapi.NewClientWithConfig(cfg))

	m = typeText(m, "q")
	m, cmd := press(m, tea.KeyEnter)
	next, _ := m.Update(findReply(t, cmd))
	m = next.(Model)

	require.Error(t, m.Session().LastError())
	assert.Equal(t, components.StatusError, m.statusBar.Status)

	bar := m.statusBar.View()
	assert.Contains(t, bar, "Backend unavailable")
	assert.NotContains(t, bar, "500 Internal")
	assert.NotContains(t, bar, "qdrant")

	view := m.View()
	assert.Contains(t, view, session.ApologyText)
	assert.NotContains(t, view, "qdrant key bad")
}

func TestSubmit_ReplyWithoutProfilesHasNoList(t *testing.T) {
	m := newTestModel(t, &fakeBackend{reply: &model.Reply{Text: "nothing found"}})

	m = typeText(m, "astronauts")
	m, cmd := press(m, tea.KeyEnter)
	next, _ := m.Update(findReply(t, cmd))
	m = next.(Model)

	view := m.View()
	assert.Contains(t, view, "nothing found")
	assert.NotContains(t, view, components.CaptionPrefix)
	assert.NotContains(t, view, components.EmptyProfilesText)
}

// =============================================================================
// QUIT TESTS
// =============================================================================

func TestQuit_DiscardsInFlightReply(t *testing.T) {
	m := newTestModel(t, &fakeBackend{reply: sampleReply()})

	m = typeText(m, "query")
	m, reqCmd := press(m, tea.KeyEnter)
	require.NotNil(t, reqCmd)

	m, quitCmd := press(m, tea.KeyEsc)
	require.NotNil(t, quitCmd)
	assert.Equal(t, tea.QuitMsg{}, quitCmd())
	assert.True(t, m.Quitting())
	assert.True(t, m.Session().IsClosed())
	assert.Equal(t, "", m.View())

	next, _ := m.Update(findReply(t, reqCmd))
	m = next.(Model)
	assert.Equal(t, 1, m.Session().Len())
}

func TestQuit_CtrlC(t *testing.T) {
	m := newTestModel(t, &fakeBackend{})

	m, cmd := press(m, tea.KeyCtrlC)
	require.NotNil(t, cmd)
	assert.True(t, m.Session().IsClosed())
}

// =============================================================================
// INPUT / VIEW TESTS
// =============================================================================

func TestCtrlL_ClearsInput(t *testing.T) {
	m := newTestModel(t, &fakeBackend{})

	m = typeText(m, "draft")
	require.Equal(t, "draft", m.input.Value())

	m, _ = press(m, tea.KeyCtrlL)
	assert.Equal(t, "", m.input.Value())
	assert.Equal(t, "", m.Session().Input())
}

func TestView_WelcomeOnlyBeforeFirstQuery(t *testing.T) {
	m := newTestModel(t, &fakeBackend{reply: &model.Reply{Text: "ok"}})
	assert.Contains(t, m.View(), components.ExampleQueries[0])

	m = typeText(m, "hello")
	m, cmd := press(m, tea.KeyEnter)
	next, _ := m.Update(findReply(t, cmd))
	m = next.(Model)

	assert.NotContains(t, m.View(), components.ExampleQueries[0])
}

func TestView_BeforeResize(t *testing.T) {
	m := New(styles.NewTheme(), Options{Backend: &fakeBackend{}})
	assert.Equal(t, "Loading...", m.View())
}

// =============================================================================
// CONFIG RELOAD TESTS
// =============================================================================

func TestConfigReloaded_UpdatesEndpoint(t *testing.T) {
	backend := &fakeBackend{baseURL: "http://old"}
	m := newTestModel(t, backend)
	require.Equal(t, "http://test/chat", m.Endpoint())

	next, cmd := m.Update(ConfigReloadedMsg{BaseURL: "http://new:9000"})
	m = next.(Model)

	assert.Equal(t, "http://new:9000", backend.baseURL)
	assert.Equal(t, "http://new:9000/chat", m.Endpoint())
	assert.Equal(t, "http://new:9000/chat", m.statusBar.Endpoint)

	assert.NotNil(t, cmd, "a toast starts the prune ticker")
	assert.Contains(t, m.View(), "Endpoint changed to http://new:9000/chat")
	assert.NotContains(t, m.View(), "Georgia Institute of Technology", "the toast replaces the footer")
}

func TestConfigError_ShowsToast(t *testing.T) {
	m := newTestModel(t, &fakeBackend{})

	next, cmd := m.Update(ConfigErrorMsg{Err: errors.New("bad toml")})
	m = next.(Model)

	assert.NotNil(t, cmd)
	assert.Contains(t, m.View(), "Config reload failed: bad toml")

	// a second toast reuses the running ticker
	_, cmd = m.Update(ConfigErrorMsg{Err: errors.New("still bad")})
	assert.Nil(t, cmd)
}

func TestConfigReloaded_IgnoresEmptyURL(t *testing.T) {
	backend := &fakeBackend{baseURL: "http://old"}
	m := newTestModel(t, backend)

	next, _ := m.Update(ConfigReloadedMsg{})
	m = next.(Model)
	assert.Equal(t, "http://old", backend.baseURL)
	assert.Equal(t, "http://test/chat", m.Endpoint())
}

func TestNew_EndpointFromBackend(t *testing.T) {
	m := New(styles.NewTheme(), Options{Backend: &fakeBackend{baseURL: "http://api"}})
	assert.Equal(t, "http://api/chat", m.Endpoint())
}
