// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session holds the in-memory state of one BuzzLink conversation.
package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/gt-buzzlink/buzzlink/internal/model"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// fakeBackend answers with a fixed reply or error and records the messages it saw.
type fakeBackend struct {
	mu    sync.Mutex
	reply *model.Reply
	err   error
	seen  []string
}

func (f *fakeBackend) SendMessage(ctx context.Context, text string) (*model.Reply, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seen = append(f.seen, text)
	if f.err != nil {
		return nil, f.err
	}
	return f.reply, nil
}

// blockingBackend waits for the context to end.
type blockingBackend struct {
	started chan struct{}
}

func (b *blockingBackend) SendMessage(ctx context.Context, text string) (*model.Reply, error) {
	close(b.started)
	<-ctx.Done()
	return nil, ctx.Err()
}

func sampleReply() *model.Reply {
	return &model.Reply{
		Text: "3 matches",
		Profiles: []model.Profile{
			model.NewProfile(model.ProfileFields{ID: "1", Name: "A. Lee"}, model.DefaultFallbacks()),
		},
	}
}

// =============================================================================
// BEGIN TESTS
// =============================================================================

func TestNew_Idle(t *testing.T) {
	s := New(Config{})
	defer s.Close()

	assert.NotEmpty(t, s.ID())
	assert.Equal(t, StateIdle, s.State())
	assert.False(t, s.IsLoading())
	assert.Zero(t, s.Len())
	assert.NoError(t, s.LastError())
}

func TestBegin_AppendsUserTurn(t *testing.T) {
	s := New(Config{})
	defer s.Close()

	s.SetInput("Find alumni at Google")
	p, err := s.Begin(s.Input())
	require.NoError(t, err)

	assert.Equal(t, "Find alumni at Google", p.Query())
	assert.Equal(t, "", s.Input(), "input must be cleared")
	assert.True(t, s.IsLoading())
	assert.Equal(t, StateSubmitting, s.State())

	turns := s.Turns()
	require.Len(t, turns, 1)
	assert.Equal(t, model.RoleUser, turns[0].Role)
	assert.Equal(t, "Find alumni at Google", turns[0].Text)
}

func TestBegin_RejectsBlankInput(t *testing.T) {
	for _, text := range []string{"", " ", "\t\n  "} {
		s := New(Config{})
		s.SetInput(text)

		p, err := s.Begin(text)
		assert.ErrorIs(t, err, ErrEmptyInput)
		assert.Nil(t, p)
		assert.Zero(t, s.Len())
		assert.False(t, s.IsLoading())
		assert.Equal(t, text, s.Input(), "input is left alone")
		s.Close()
	}
}

func TestBegin_RejectsWhileLoading(t *testing.T) {
	s := New(Config{})
	defer s.Close()

	_, err := s.Begin("first")
	require.NoError(t, err)

	s.SetInput("second")
	p, err := s.Begin("second")
	assert.ErrorIs(t, err, ErrBusy)
	assert.Nil(t, p)
	assert.Equal(t, 1, s.Len())
	assert.Equal(t, "second", s.Input())
}

func TestBegin_AfterClose(t *testing.T) {
	s := New(Config{})
	s.Close()

	_, err := s.Begin("hello")
	assert.ErrorIs(t, err, ErrClosed)
	assert.Zero(t, s.Len())
}

// =============================================================================
// RESOLVE TESTS
// =============================================================================

func TestResolve_Success(t *testing.T) {
	s := New(Config{})
	defer s.Close()

	p, err := s.Begin("Find alumni in software engineering")
	require.NoError(t, err)

	turn, ok := p.Resolve(sampleReply(), nil)
	require.True(t, ok)

	assert.Equal(t, model.RoleAssistant, turn.Role)
	assert.Equal(t, "3 matches", turn.Text)
	require.Len(t, turn.Profiles, 1)
	assert.Equal(t, "A. Lee", turn.Profiles[0].Name)

	assert.False(t, s.IsLoading())
	assert.NoError(t, s.LastError())

	turns := s.Turns()
	require.Len(t, turns, 2)
	assert.Equal(t, model.RoleUser, turns[0].Role)
	assert.Equal(t, model.RoleAssistant, turns[1].Role)
}

func TestResolve_FailureAppendsApology(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	s := New(Config{Logger: zap.New(core)})
	defer s.Close()

	p, err := s.Begin("hello")
	require.NoError(t, err)

	boom := errors.New("connection refused")
	turn, ok := p.Resolve(nil, boom)
	require.True(t, ok)

	assert.Equal(t, ApologyText, turn.Text)
	assert.Empty(t, turn.Profiles)
	assert.False(t, s.IsLoading())
	assert.ErrorIs(t, s.LastError(), boom)
	assert.Equal(t, 2, s.Len())

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "chat request failed", logs.All()[0].Message)
}

func TestResolve_NilReplyTreatedAsFailure(t *testing.T) {
	s := New(Config{})
	defer s.Close()

	p, _ := s.Begin("hello")
	turn, ok := p.Resolve(nil, nil)
	require.True(t, ok)
	assert.Equal(t, ApologyText, turn.Text)
	assert.Error(t, s.LastError())
}

func TestResolve_Twice(t *testing.T) {
	s := New(Config{})
	defer s.Close()

	p, _ := s.Begin("hello")
	_, ok := p.Resolve(sampleReply(), nil)
	require.True(t, ok)

	_, ok = p.Resolve(sampleReply(), nil)
	assert.False(t, ok)
	assert.Equal(t, 2, s.Len())
}

func TestResolve_AfterCloseIsDiscarded(t *testing.T) {
	s := New(Config{})

	p, err := s.Begin("hello")
	require.NoError(t, err)

	s.Close()
	assert.Error(t, p.Context().Err(), "close must cancel the request context")

	_, ok := p.Resolve(sampleReply(), nil)
	assert.False(t, ok)
	assert.Equal(t, 1, s.Len(), "no assistant turn after close")
	assert.False(t, s.IsLoading())
}

func TestResolve_StalePendingDoesNotReleaseNewer(t *testing.T) {
	s := New(Config{})
	defer s.Close()

	first, _ := s.Begin("first")
	_, ok := first.Resolve(sampleReply(), nil)
	require.True(t, ok)

	second, err := s.Begin("second")
	require.NoError(t, err)

	_, ok = first.Resolve(sampleReply(), nil)
	assert.False(t, ok)
	assert.True(t, s.IsLoading(), "second request still in flight")

	_, ok = second.Resolve(sampleReply(), nil)
	assert.True(t, ok)
	assert.False(t, s.IsLoading())
}

func TestSubmitTurnPairs(t *testing.T) {
	s := New(Config{})
	defer s.Close()

	ok := &fakeBackend{reply: sampleReply()}
	failing := &fakeBackend{err: errors.New("500")}

	backends := []Backend{ok, failing, ok, failing}
	for i, b := range backends {
		_, err := s.Submit(context.Background(), b, "query")
		require.NoError(t, err)
		assert.Equal(t, 2*(i+1), s.Len())
	}

	for i, turn := range s.Turns() {
		if i%2 == 0 {
			assert.Equal(t, model.RoleUser, turn.Role)
		} else {
			assert.Equal(t, model.RoleAssistant, turn.Role)
		}
	}
}

// =============================================================================
// SUBMIT TESTS
// =============================================================================

func TestSubmit_Success(t *testing.T) {
	s := New(Config{})
	defer s.Close()

	backend := &fakeBackend{reply: sampleReply()}
	turn, err := s.Submit(context.Background(), backend, "Show me GT graduates at Google")
	require.NoError(t, err)

	assert.Equal(t, "3 matches", turn.Text)
	assert.Equal(t, []string{"Show me GT graduates at Google"}, backend.seen)
	assert.Equal(t, StateIdle, s.State())
}

func TestSubmit_EmptyInputSendsNothing(t *testing.T) {
	s := New(Config{})
	defer s.Close()

	backend := &fakeBackend{reply: sampleReply()}
	_, err := s.Submit(context.Background(), backend, "   ")
	assert.ErrorIs(t, err, ErrEmptyInput)
	assert.Empty(t, backend.seen)
	assert.Zero(t, s.Len())
}

func TestSubmit_CloseWhileInFlight(t *testing.T) {
	s := New(Config{})

	backend := &blockingBackend{started: make(chan struct{})}
	errCh := make(chan error, 1)
	go func() {
		_, err := s.Submit(context.Background(), backend, "hello")
		errCh <- err
	}()

	<-backend.started
	s.Close()

	select {
	case err := <-errCh:
		assert.ErrorIs(t, err, ErrClosed)
	case <-time.After(5 * time.Second):
		t.Fatal("Submit did not return after Close")
	}
	assert.Equal(t, 1, s.Len())
}

func TestSubmit_CallerContextCanceled(t *testing.T) {
	s := New(Config{})
	defer s.Close()

	backend := &blockingBackend{started: make(chan struct{})}
	ctx, cancel := context.WithCancel(context.Background())

	errCh := make(chan error, 1)
	go func() {
		_, err := s.Submit(ctx, backend, "hello")
		errCh <- err
	}()

	<-backend.started
	cancel()

	select {
	case err := <-errCh:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Submit did not return after cancel")
	}

	assert.ErrorIs(t, s.LastError(), context.Canceled)
	turns := s.Turns()
	require.Len(t, turns, 2)
	assert.Equal(t, ApologyText, turns[1].Text)
}

func TestClose_Idempotent(t *testing.T) {
	s := New(Config{})
	s.Close()
	s.Close()
	assert.True(t, s.IsClosed())
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "idle", StateIdle.String())
	assert.Equal(t, "submitting", StateSubmitting.String())
	assert.Equal(t, "unknown", State(42).String())
}
