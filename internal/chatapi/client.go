// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chatapi provides the HTTP client for the BuzzLink chat endpoint.
package chatapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/gt-buzzlink/buzzlink/internal/model"
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// ClientError represents an error from the chat client.
type ClientError struct {
	Type       ErrorType
	Message    string
	StatusCode int // HTTP status for non-2xx responses, 0 otherwise
	Cause      error
}

func (e *ClientError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *ClientError) Unwrap() error {
	return e.Cause
}

// Is matches ClientErrors by type so sentinels work with errors.Is.
func (e *ClientError) Is(target error) bool {
	t, ok := target.(*ClientError)
	if !ok {
		return false
	}
	return t.Type == e.Type && t.StatusCode == 0 && t.Cause == nil
}

// ErrorType categorizes client errors for handling.
type ErrorType int

const (
	ErrTypeUnknown ErrorType = iota
	ErrTypeNetwork
	ErrTypeTimeout
	ErrTypeMalformedResponse
	ErrTypeCanceled
)

// String returns a short name for the error type.
func (t ErrorType) String() string {
	switch t {
	case ErrTypeNetwork:
		return "network"
	case ErrTypeTimeout:
		return "timeout"
	case ErrTypeMalformedResponse:
		return "malformed_response"
	case ErrTypeCanceled:
		return "canceled"
	default:
		return "unknown"
	}
}

// Sentinel errors for easy checking.
var (
	ErrNetwork           = &ClientError{Type: ErrTypeNetwork, Message: "chat endpoint unreachable"}
	ErrTimeout           = &ClientError{Type: ErrTypeTimeout, Message: "request timed out"}
	ErrMalformedResponse = &ClientError{Type: ErrTypeMalformedResponse, Message: "malformed response"}
	ErrCanceled          = &ClientError{Type: ErrTypeCanceled, Message: "request canceled"}
)

// IsNetwork reports whether err is a transport failure, timeout or non-2xx status.
func IsNetwork(err error) bool {
	var ce *ClientError
	if !errors.As(err, &ce) {
		return false
	}
	return ce.Type == ErrTypeNetwork || ce.Type == ErrTypeTimeout
}

// IsMalformed reports whether err is a decoding failure of the envelope or payload.
func IsMalformed(err error) bool {
	var ce *ClientError
	return errors.As(err, &ce) && ce.Type == ErrTypeMalformedResponse
}

// IsCanceled reports whether err comes from a canceled request context.
func IsCanceled(err error) bool {
	var ce *ClientError
	if errors.As(err, &ce) {
		return ce.Type == ErrTypeCanceled
	}
	return errors.Is(err, context.Canceled)
}

// =============================================================================
// CLIENT CONFIGURATION
// =============================================================================

const (
	DefaultBaseURL = "http://localhost:8000"
	DefaultPath    = "/chat"
	DefaultTimeout = 30 * time.Second

	// maxResponseBytes caps how much of a response body is read.
	maxResponseBytes = 4 << 20
)

// ClientConfig holds configuration options for the chat client.
type ClientConfig struct {
	// BaseURL is the backend base URL (default: http://localhost:8000)
	BaseURL string

	// Path of the chat endpoint (default: /chat)
	Path string

	// Timeout bounds one request including reading the body (default: 30s)
	Timeout time.Duration

	// UserAgent sent with every request (optional)
	UserAgent string

	// RequestsPerMinute caps outgoing requests; 0 means unlimited
	RequestsPerMinute int

	// Fallbacks applied to missing profile fields
	Fallbacks model.Fallbacks

	// Logger receives debug output about requests (default: no-op)
	Logger *zap.Logger

	// HTTPClient overrides the transport, mainly for tests (optional)
	HTTPClient *http.Client
}

// DefaultConfig returns the default client configuration.
func DefaultConfig() *ClientConfig {
	return &ClientConfig{
		BaseURL:   DefaultBaseURL,
		Path:      DefaultPath,
		Timeout:   DefaultTimeout,
		Fallbacks: model.DefaultFallbacks(),
	}
}

// =============================================================================
// CLIENT
// =============================================================================

// Client handles communication with the chat endpoint.
// It issues exactly one request per SendMessage call and never retries.
//
// The Client is safe for concurrent use.
type Client struct {
	mu         sync.RWMutex
	config     ClientConfig
	normalizer Normalizer
	httpClient *http.Client
	limiter    *rate.Limiter
	log        *zap.Logger
}

// NewClient creates a new chat client with default configuration.
func NewClient() *Client {
	return NewClientWithConfig(DefaultConfig())
}

// NewClientWithConfig creates a new chat client with custom configuration.
func NewClientWithConfig(config *ClientConfig) *Client {
	if config == nil {
		config = DefaultConfig()
	}
	cfg := *config

	// Fill in defaults for any zero values
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Path == "" {
		cfg.Path = DefaultPath
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	var limiter *rate.Limiter
	if cfg.RequestsPerMinute > 0 {
		limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(cfg.RequestsPerMinute)), 1)
	}

	return &Client{
		config:     cfg,
		normalizer: Normalizer{Fallbacks: cfg.Fallbacks},
		httpClient: httpClient,
		limiter:    limiter,
		log:        cfg.Logger,
	}
}

// BaseURL returns the current backend base URL.
func (c *Client) BaseURL() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.config.BaseURL
}

// SetBaseURL points the client at a different backend.
// Requests already in flight keep their original URL.
func (c *Client) SetBaseURL(baseURL string) {
	if baseURL == "" {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.config.BaseURL = baseURL
}

// Endpoint returns the full URL of the chat endpoint.
func (c *Client) Endpoint() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return joinURL(c.config.BaseURL, c.config.Path)
}

func joinURL(base, path string) string {
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(path, "/")
}

// =============================================================================
// CHAT OPERATIONS
// =============================================================================

// SendMessage posts text to the chat endpoint and returns the normalized reply.
// The caller is responsible for rejecting empty input.
func (c *Client) SendMessage(ctx context.Context, text string) (*model.Reply, error) {
	c.mu.RLock()
	endpoint := joinURL(c.config.BaseURL, c.config.Path)
	timeout := c.config.Timeout
	userAgent := c.config.UserAgent
	c.mu.RUnlock()

	body, err := json.Marshal(ChatRequest{Message: text})
	if err != nil {
		return nil, &ClientError{Type: ErrTypeUnknown, Message: "failed to marshal request", Cause: err}
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			if ctx.Err() != nil {
				return nil, classifyTransportError(ctx, err)
			}
			return nil, &ClientError{Type: ErrTypeTimeout, Message: "rate limit wait exceeds request timeout", Cause: err}
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, &ClientError{Type: ErrTypeNetwork, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if userAgent != "" {
		req.Header.Set("User-Agent", userAgent)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, classifyTransportError(ctx, err)
	}
	defer resp.Body.Close()

	c.log.Debug("chat response received",
		zap.String("endpoint", endpoint),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)))

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, classifyTransportError(ctx, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &ClientError{
			Type:       ErrTypeNetwork,
			Message:    fmt.Sprintf("chat endpoint returned %s%s", resp.Status, errorDetail(data)),
			StatusCode: resp.StatusCode,
		}
	}

	env, err := DecodeEnvelope(data)
	if err != nil {
		return nil, err
	}
	return c.normalizer.Normalize(env)
}

// CheckReachable verifies that the backend base URL answers at all.
// Any HTTP status counts as reachable; only transport failures are errors.
func (c *Client) CheckReachable(ctx context.Context) error {
	base := c.BaseURL()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base, nil)
	if err != nil {
		return &ClientError{Type: ErrTypeNetwork, Message: "failed to create request", Cause: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return classifyTransportError(ctx, err)
	}
	resp.Body.Close()
	return nil
}

// classifyTransportError maps a failed Do/Read into a ClientError.
func classifyTransportError(ctx context.Context, err error) error {
	switch {
	case errors.Is(ctx.Err(), context.Canceled) || errors.Is(err, context.Canceled):
		return &ClientError{Type: ErrTypeCanceled, Message: "request canceled", Cause: err}
	case errors.Is(ctx.Err(), context.DeadlineExceeded) || errors.Is(err, context.DeadlineExceeded):
		return &ClientError{Type: ErrTypeTimeout, Message: "request timed out", Cause: err}
	default:
		return &ClientError{Type: ErrTypeNetwork, Message: "chat endpoint unreachable", Cause: err}
	}
}

// errorDetail extracts a FastAPI-style {"detail": "..."} message, if any.
func errorDetail(body []byte) string {
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || payload.Detail == "" {
		return ""
	}
	return ": " + payload.Detail
}
