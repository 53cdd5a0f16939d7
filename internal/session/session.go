// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session holds the in-memory state of one BuzzLink conversation.
package session

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/gt-buzzlink/buzzlink/internal/model"
)

// ApologyText is the assistant reply appended when a request fails.
const ApologyText = "Sorry, there was an error processing your request."

// Validation errors returned by Begin. Views treat them as a silent no-op.
var (
	ErrEmptyInput = errors.New("session: input is empty")
	ErrBusy       = errors.New("session: a request is already in flight")
	ErrClosed     = errors.New("session: closed")
)

// Backend answers one chat message.
type Backend interface {
	SendMessage(ctx context.Context, text string) (*model.Reply, error)
}

// =============================================================================
// STATE
// =============================================================================

// State is the submit state of a session.
type State int

const (
	StateIdle State = iota
	StateSubmitting
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSubmitting:
		return "submitting"
	default:
		return "unknown"
	}
}

// =============================================================================
// SESSION
// =============================================================================

// Config holds configuration for a session.
type Config struct {
	// Logger receives request failures (default: no-op)
	Logger *zap.Logger
}

// Session tracks one conversation. It is safe for concurrent use.
type Session struct {
	mu sync.Mutex

	id        string
	startTime time.Time

	transcript model.Transcript
	input      string
	current    *Pending
	lastErr    error
	closed     bool

	ctx    context.Context
	cancel context.CancelFunc

	log *zap.Logger
}

// New creates an idle session with an empty transcript.
func New(cfg Config) *Session {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	id := uuid.NewString()
	ctx, cancel := context.WithCancel(context.Background())
	return &Session{
		id:        id,
		startTime: time.Now(),
		ctx:       ctx,
		cancel:    cancel,
		log:       log.With(zap.String("session", id)),
	}
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// StartTime returns when the session was created.
func (s *Session) StartTime() time.Time {
	return s.startTime
}

// SetInput replaces the pending input text.
func (s *Session) SetInput(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.input = text
}

// Input returns the pending input text.
func (s *Session) Input() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.input
}

// IsLoading reports whether a request is in flight.
func (s *Session) IsLoading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current != nil
}

// State returns the current submit state.
func (s *Session) State() State {
	if s.IsLoading() {
		return StateSubmitting
	}
	return StateIdle
}

// Turns returns a copy of the transcript in display order.
func (s *Session) Turns() []model.Turn {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.transcript.Turns()
}

// Len returns the number of turns in the transcript.
func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.transcript.Len()
}

// PrecedingUser returns the user text that led to the turn at index i.
func (s *Session) PrecedingUser(i int) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.transcript.PrecedingUser(i)
}

// LastError returns the error of the most recently resolved request, or nil
// if it succeeded.
func (s *Session) LastError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// IsClosed reports whether Close was called.
func (s *Session) IsClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Close tears the session down. The in-flight request, if any, is canceled
// and its result will be discarded. Close is idempotent.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.cancel()
}

// =============================================================================
// SUBMIT
// =============================================================================

// Begin starts a submit of text. It appends the user turn, clears the pending
// input and marks the session as loading.
//
// Begin returns ErrEmptyInput for blank text and ErrBusy while another request
// is in flight; the session is unchanged in both cases.
func (s *Session) Begin(text string) (*Pending, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, ErrClosed
	}
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyInput
	}
	if s.current != nil {
		return nil, ErrBusy
	}

	ctx, cancel := context.WithCancel(s.ctx)
	p := &Pending{
		session: s,
		ctx:     ctx,
		cancel:  cancel,
		query:   text,
		started: time.Now(),
	}

	s.transcript.Append(model.NewUserTurn(text))
	s.input = ""
	s.current = p

	s.log.Debug("submit started", zap.Int("turns", s.transcript.Len()))
	return p, nil
}

// Submit runs a full request synchronously: Begin, backend.SendMessage and
// Resolve. It returns the assistant turn that was appended.
//
// A backend failure is not returned as an error; it is logged and answered
// with ApologyText (see LastError). Errors are validation errors from Begin,
// or ErrClosed if the session was closed while the request was in flight.
func (s *Session) Submit(ctx context.Context, backend Backend, text string) (model.Turn, error) {
	p, err := s.Begin(text)
	if err != nil {
		return model.Turn{}, err
	}

	reqCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	stop := context.AfterFunc(p.Context(), cancel)
	defer stop()

	reply, sendErr := backend.SendMessage(reqCtx, text)
	turn, ok := p.Resolve(reply, sendErr)
	if !ok {
		return model.Turn{}, ErrClosed
	}
	return turn, nil
}

// =============================================================================
// PENDING
// =============================================================================

// Pending is one in-flight submit created by Begin.
type Pending struct {
	session  *Session
	ctx      context.Context
	cancel   context.CancelFunc
	query    string
	started  time.Time
	resolved bool // guarded by session.mu
}

// Context is canceled when the session is closed. Use it for the request.
func (p *Pending) Context() context.Context {
	return p.ctx
}

// Query returns the submitted text.
func (p *Pending) Query() string {
	return p.query
}

// Resolve completes the submit with the backend result. On success the reply
// is appended as an assistant turn; on failure the error is logged and
// ApologyText is appended instead. The loading flag is released either way.
//
// Resolve returns false, and writes nothing, if the session was closed or
// the Pending was already resolved.
func (p *Pending) Resolve(reply *model.Reply, err error) (model.Turn, bool) {
	s := p.session
	s.mu.Lock()
	defer s.mu.Unlock()

	defer func() {
		if s.current == p {
			s.current = nil
		}
		p.cancel()
	}()

	if p.resolved || s.closed {
		s.log.Debug("discarding stale result", zap.Bool("closed", s.closed))
		return model.Turn{}, false
	}
	p.resolved = true

	if err == nil && reply == nil {
		err = errors.New("empty reply")
	}

	var turn model.Turn
	if err != nil {
		s.log.Warn("chat request failed",
			zap.Error(err),
			zap.String("query", p.query),
			zap.Duration("elapsed", time.Since(p.started)))
		turn = model.NewAssistantTurn(ApologyText, nil)
	} else {
		s.log.Debug("chat request succeeded",
			zap.Int("profiles", len(reply.Profiles)),
			zap.Duration("elapsed", time.Since(p.started)))
		turn = model.NewAssistantTurn(reply.Text, reply.Profiles)
	}

	s.lastErr = err
	s.transcript.Append(turn)
	return turn, true
}
