// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/advitiya-sood/RAG-chatbot-frontend-test/internal/model"
)

// QueryPath is the endpoint the widget posts questions to.
const QueryPath = "/api/query/advanced"

// DefaultTopK is the number of passages requested per question.
const DefaultTopK = 5

// RateLimitMessage is shown to the user when requests are throttled.
const RateLimitMessage = "You're chatting too fast! Please wait a moment."

// maxResponseBytes bounds how much of a response body is read.
const maxResponseBytes = 4 << 20

// =============================================================================
// ERROR TYPES
// =============================================================================

// Kind categorizes gateway errors for handling.
type Kind int

const (
	KindUnknown Kind = iota
	KindRateLimited
	KindUpstream
	KindUnreachable
	KindMalformed
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindRateLimited:
		return "rate_limited"
	case KindUpstream:
		return "upstream"
	case KindUnreachable:
		return "unreachable"
	case KindMalformed:
		return "malformed"
	default:
		return "unknown"
	}
}

// Error is returned by every failing Client call.
type Error struct {
	Kind    Kind
	Message string
	Status  int // HTTP status, 0 when no response was received
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches any *Error of the same kind, so the sentinels below work with
// errors.Is.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

// Sentinel errors for easy checking.
var (
	ErrRateLimited = &Error{Kind: KindRateLimited, Message: RateLimitMessage, Status: http.StatusTooManyRequests}
	ErrUpstream    = &Error{Kind: KindUpstream, Message: "API error"}
	ErrUnreachable = &Error{Kind: KindUnreachable, Message: "backend unreachable"}
	ErrMalformed   = &Error{Kind: KindMalformed, Message: "malformed answer"}
)

// KindOf returns the kind of err, or KindUnknown if err is not an *Error.
func KindOf(err error) Kind {
	var gwErr *Error
	if errors.As(err, &gwErr) {
		return gwErr.Kind
	}
	return KindUnknown
}

// IsRateLimited checks if an error is a rate limit error.
func IsRateLimited(err error) bool {
	return KindOf(err) == KindRateLimited
}

// IsUnreachable checks if an error means the backend could not be reached.
func IsUnreachable(err error) bool {
	return KindOf(err) == KindUnreachable
}

// =============================================================================
// CLIENT CONFIGURATION
// =============================================================================

// ClientConfig holds configuration options for the gateway client.
type ClientConfig struct {
	// BaseURL is the backend base URL (default: http://localhost:8000)
	BaseURL string

	// Timeout for a single question (default: 60s)
	Timeout time.Duration

	// TopK passages to retrieve (default: 5)
	TopK int

	// RateLimitPerMinute throttles questions on the client side (0 disables)
	RateLimitPerMinute int
}

// DefaultBaseURL is used when no base URL is configured.
const DefaultBaseURL = "http://localhost:8000"

// DefaultConfig returns the default client configuration.
func DefaultConfig() *ClientConfig {
	return &ClientConfig{
		BaseURL: DefaultBaseURL,
		Timeout: 60 * time.Second,
		TopK:    DefaultTopK,
	}
}

// =============================================================================
// CLIENT
// =============================================================================

// Client talks to the question-answering backend.
//
// The Client is safe for concurrent use; SetBaseURL and SetTimeout may be
// called while a question is in flight and take effect on the next call.
type Client struct {
	mu         sync.RWMutex
	config     ClientConfig
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewClient creates a new client with default configuration.
func NewClient() *Client {
	return NewClientWithConfig(DefaultConfig())
}

// NewClientWithConfig creates a new client with custom configuration.
func NewClientWithConfig(config *ClientConfig) *Client {
	if config == nil {
		config = DefaultConfig()
	}
	cfg := *config

	// Fill in defaults for any zero values
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.Timeout == 0 {
		cfg.Timeout = 60 * time.Second
	}
	if cfg.TopK == 0 {
		cfg.TopK = DefaultTopK
	}

	c := &Client{
		config:     cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
	if cfg.RateLimitPerMinute > 0 {
		c.limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(cfg.RateLimitPerMinute)), cfg.RateLimitPerMinute)
	}
	return c
}

// BaseURL returns the configured base URL.
func (c *Client) BaseURL() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.config.BaseURL
}

// SetBaseURL changes the backend base URL.
func (c *Client) SetBaseURL(baseURL string) {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c.mu.Lock()
	c.config.BaseURL = strings.TrimRight(baseURL, "/")
	c.mu.Unlock()
}

// SetTimeout changes the per-question timeout.
func (c *Client) SetTimeout(d time.Duration) {
	if d <= 0 {
		return
	}
	c.mu.Lock()
	c.config.Timeout = d
	c.httpClient = &http.Client{Timeout: d}
	c.mu.Unlock()
}

// =============================================================================
// QUERY OPERATIONS
// =============================================================================

// Ask sends a question with its history and returns the raw answer.
// The caller is expected to pass at most model.HistoryLimit entries.
func (c *Client) Ask(ctx context.Context, question string, history []model.HistoryEntry) (*Answer, error) {
	if c.limiter != nil && !c.limiter.Allow() {
		log.Printf("REQUEST_THROTTLED | reason=client_limit")
		return nil, &Error{Kind: KindRateLimited, Message: RateLimitMessage}
	}

	c.mu.RLock()
	baseURL := c.config.BaseURL
	topK := c.config.TopK
	httpClient := c.httpClient
	c.mu.RUnlock()

	if history == nil {
		history = []model.HistoryEntry{}
	}
	reqBody := QueryRequest{
		Question:            question,
		TopK:                topK,
		Summarize:           false,
		Stream:              false,
		ConversationHistory: history,
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, &Error{Kind: KindMalformed, Message: "failed to marshal request", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, baseURL+QueryPath, bytes.NewReader(body))
	if err != nil {
		return nil, &Error{Kind: KindUnreachable, Message: "failed to create request", Cause: err}
	}
	requestID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", requestID)

	start := time.Now()
	resp, err := httpClient.Do(req)
	if err != nil {
		log.Printf("REQUEST_FAILED | id=%s error=%v", requestID, err)
		return nil, &Error{Kind: KindUnreachable, Message: "backend unreachable", Cause: err}
	}
	defer drainAndClose(resp.Body)

	log.Printf("REQUEST_COMPLETE | id=%s status=%d latency=%v history=%d", requestID, resp.StatusCode, time.Since(start).Round(time.Millisecond), len(history))

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, &Error{Kind: KindRateLimited, Message: RateLimitMessage, Status: resp.StatusCode}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &Error{
			Kind:    KindUpstream,
			Message: "API error: " + statusReason(resp),
			Status:  resp.StatusCode,
		}
	}

	var result Answer
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&result); err != nil {
		return nil, &Error{Kind: KindMalformed, Message: "failed to decode response", Status: resp.StatusCode, Cause: err}
	}

	return &result, nil
}

// statusReason returns the reason phrase the server sent, falling back to
// the standard text for the code.
func statusReason(resp *http.Response) string {
	reason := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if reason == "" {
		reason = http.StatusText(resp.StatusCode)
	}
	return reason
}

// Helper to drain response body
func drainAndClose(r io.ReadCloser) {
	_, _ = io.Copy(io.Discard, io.LimitReader(r, maxResponseBytes))
	r.Close()
}
