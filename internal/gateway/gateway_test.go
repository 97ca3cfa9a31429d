// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/advitiya-sood/RAG-chatbot-frontend-test/internal/model"
)

// =============================================================================
// CONFIG TESTS
// =============================================================================

func TestNewClientWithConfig_FillsDefaults(t *testing.T) {
	c := NewClientWithConfig(&ClientConfig{BaseURL: "http://example.com/"})

	require.Equal(t, "http://example.com", c.BaseURL())
	require.Equal(t, DefaultTopK, c.config.TopK)
	require.Equal(t, 60*time.Second, c.config.Timeout)
	require.Nil(t, c.limiter)
}

func TestNewClient_Defaults(t *testing.T) {
	c := NewClient()
	require.Equal(t, DefaultBaseURL, c.BaseURL())

	c.SetBaseURL("")
	require.Equal(t, DefaultBaseURL, c.BaseURL())
	c.SetBaseURL("http://other:9000/")
	require.Equal(t, "http://other:9000", c.BaseURL())
}

// =============================================================================
// ASK TESTS
// =============================================================================

func TestAsk_SendsContract(t *testing.T) {
	var got map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, QueryPath, r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NotEmpty(t, r.Header.Get("X-Request-ID"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"answer": "You get 24 days.\n\nCitation:\n[1] Leave Policy",
			"sources": [{"preview": "Employees are entitled...", "score": 0.9}],
			"follow_up_questions": ["How do I apply?"]
		}`))
	}))
	defer server.Close()

	c := NewClientWithConfig(&ClientConfig{BaseURL: server.URL})
	history := []model.HistoryEntry{
		{Role: model.RoleUser, Content: "hi"},
		{Role: model.RoleAssistant, Content: "hello"},
	}
	answer, err := c.Ask(context.Background(), "What's the leave policy?", history)
	require.NoError(t, err)

	require.Equal(t, "What's the leave policy?", got["question"])
	require.Equal(t, float64(5), got["top_k"])
	require.Equal(t, false, got["summarize"])
	require.Equal(t, false, got["stream"])
	require.Equal(t, []any{
		map[string]any{"role": "user", "content": "hi"},
		map[string]any{"role": "assistant", "content": "hello"},
	}, got["conversation_history"])

	require.Equal(t, "You get 24 days.\n\nCitation:\n[1] Leave Policy", answer.Answer)
	require.Equal(t, []model.SourcePreview{{Preview: "Employees are entitled..."}}, answer.Sources)
	require.Equal(t, []string{"How do I apply?"}, answer.FollowUpQuestions)
}

func TestAsk_EmptyHistoryIsArray(t *testing.T) {
	var raw map[string]json.RawMessage
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&raw))
		_, _ = w.Write([]byte(`{"answer":"ok"}`))
	}))
	defer server.Close()

	c := NewClientWithConfig(&ClientConfig{BaseURL: server.URL})
	answer, err := c.Ask(context.Background(), "q", nil)
	require.NoError(t, err)
	require.Equal(t, "ok", answer.Answer)
	require.Nil(t, answer.Sources)
	require.Nil(t, answer.FollowUpQuestions)
	require.JSONEq(t, `[]`, string(raw["conversation_history"]))
}

func TestAsk_ErrorMapping(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		kind    Kind
		message string
	}{
		{"rate limited", http.StatusTooManyRequests, `{"detail":"slow down"}`, KindRateLimited, RateLimitMessage},
		{"server error", http.StatusInternalServerError, `oops`, KindUpstream, "API error: Internal Server Error"},
		{"bad gateway", http.StatusBadGateway, ``, KindUpstream, "API error: Bad Gateway"},
		{"not found", http.StatusNotFound, ``, KindUpstream, "API error: Not Found"},
		{"malformed body", http.StatusOK, `not json`, KindMalformed, "failed to decode response"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer server.Close()

			c := NewClientWithConfig(&ClientConfig{BaseURL: server.URL})
			_, err := c.Ask(context.Background(), "q", nil)
			require.Error(t, err)

			var gwErr *Error
			require.True(t, errors.As(err, &gwErr))
			require.Equal(t, tc.kind, gwErr.Kind)
			require.Equal(t, tc.status, gwErr.Status)
			require.Equal(t, tc.message, gwErr.Message)
		})
	}
}

func TestAsk_UpstreamUsesServerReason(t *testing.T) {
	tests := []struct {
		name       string
		statusLine string
		status     int
		message    string
	}{
		{"custom reason", "HTTP/1.1 502 Upstream Melted", 502, "API error: Upstream Melted"},
		{"non-standard code", "HTTP/1.1 599 Network Timeout", 599, "API error: Network Timeout"},
		{"missing reason", "HTTP/1.1 503", 503, "API error: Service Unavailable"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				conn, buf, err := w.(http.Hijacker).Hijack()
				require.NoError(t, err)
				defer conn.Close()
				_, _ = buf.WriteString(tc.statusLine + "\r\nContent-Length: 0\r\nConnection: close\r\n\r\n")
				_ = buf.Flush()
			}))
			defer server.Close()

			c := NewClientWithConfig(&ClientConfig{BaseURL: server.URL})
			_, err := c.Ask(context.Background(), "q", nil)

			var gwErr *Error
			require.ErrorAs(t, err, &gwErr)
			require.Equal(t, KindUpstream, gwErr.Kind)
			require.Equal(t, tc.status, gwErr.Status)
			require.Equal(t, tc.message, gwErr.Message)
		})
	}
}

func TestAsk_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	c := NewClientWithConfig(&ClientConfig{BaseURL: url})
	_, err := c.Ask(context.Background(), "q", nil)
	require.True(t, IsUnreachable(err))
	require.ErrorIs(t, err, ErrUnreachable)
}

func TestAsk_ContextCancelled(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewClientWithConfig(&ClientConfig{BaseURL: server.URL})
	_, err := c.Ask(ctx, "q", nil)
	require.True(t, IsUnreachable(err))
	require.ErrorIs(t, err, context.Canceled)
}

func TestAsk_ClientSideRateLimit(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		_, _ = w.Write([]byte(`{"answer":"ok"}`))
	}))
	defer server.Close()

	c := NewClientWithConfig(&ClientConfig{BaseURL: server.URL, RateLimitPerMinute: 1})
	_, err := c.Ask(context.Background(), "q", nil)
	require.NoError(t, err)

	_, err = c.Ask(context.Background(), "q", nil)
	require.True(t, IsRateLimited(err))
	require.Equal(t, 1, calls)
}

// =============================================================================
// ERROR TESTS
// =============================================================================

func TestError_IsMatchesKind(t *testing.T) {
	err := &Error{Kind: KindUpstream, Message: "API error: Bad Gateway", Status: 502}
	require.ErrorIs(t, err, ErrUpstream)
	require.NotErrorIs(t, err, ErrRateLimited)
	require.Equal(t, KindUnknown, KindOf(errors.New("plain")))
	require.Equal(t, "upstream", KindUpstream.String())
}

func TestError_MessageIncludesCause(t *testing.T) {
	err := &Error{Kind: KindUnreachable, Message: "backend unreachable", Cause: errors.New("dial tcp: refused")}
	require.Equal(t, "backend unreachable: dial tcp: refused", err.Error())
}
