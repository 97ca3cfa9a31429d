// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/advitiya-sood/RAG-chatbot-frontend-test/internal/config"
	"github.com/advitiya-sood/RAG-chatbot-frontend-test/internal/gateway"
	"github.com/advitiya-sood/RAG-chatbot-frontend-test/internal/model"
	"github.com/advitiya-sood/RAG-chatbot-frontend-test/internal/ui/styles"
	"github.com/advitiya-sood/RAG-chatbot-frontend-test/internal/widget"
)

// =============================================================================
// PARSE TESTS
// =============================================================================

func TestParseArgs(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		cmd   Command
		check func(t *testing.T, a Args)
	}{
		{"default tui", nil, CmdTUI, nil},
		{"global flags before command", []string{"--debug", "--open", "tui"}, CmdTUI, func(t *testing.T, a Args) {
			require.True(t, a.Debug)
			require.True(t, a.Open)
		}},
		{"ask joins words", []string{"ask", "how", "many", "leaves?"}, CmdAsk, func(t *testing.T, a Args) {
			require.Equal(t, "how many leaves?", a.Query)
		}},
		{"api url forms", []string{"--api-url=http://a:1", "ask", "q", "--no-color"}, CmdAsk, func(t *testing.T, a Args) {
			require.Equal(t, "http://a:1", a.APIURL)
			require.True(t, a.NoColor)
			require.Equal(t, "q", a.Query)
		}},
		{"api url separate", []string{"--api-url", "http://b:2", "repl"}, CmdRepl, func(t *testing.T, a Args) {
			require.Equal(t, "http://b:2", a.APIURL)
		}},
		{"chat alias", []string{"chat"}, CmdRepl, nil},
		{"config sub", []string{"config", "path"}, CmdConfig, func(t *testing.T, a Args) {
			require.Equal(t, "path", a.Subcommand)
		}},
		{"version flag", []string{"--version"}, CmdVersion, nil},
		{"help", []string{"-h"}, CmdHelp, nil},
		{"bare question", []string{"Who", "is", "HR?"}, CmdAsk, func(t *testing.T, a Args) {
			require.Equal(t, "Who is HR?", a.Query)
		}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cmd, args := ParseArgs(tc.args)
			require.Equal(t, tc.cmd, cmd)
			if tc.check != nil {
				tc.check(t, args)
			}
		})
	}
}

func TestArgParser(t *testing.T) {
	p := NewArgParser([]string{"show", "--json", "extra", "--limit", "5", "--name=x"}, "json")
	require.Equal(t, "show", p.Subcommand())
	require.True(t, p.BoolFlag("json"))
	require.Equal(t, "5", p.Flag("--limit"))
	require.Equal(t, "x", p.Flag("name"))
	require.Equal(t, "extra", p.Positional(1))
	require.Equal(t, "", p.Positional(9))
	require.Equal(t, "show extra", JoinPositionalArgs(p, 0))
}

func TestGetExitCode(t *testing.T) {
	require.Equal(t, ExitSuccess, GetExitCode(nil))
	require.Equal(t, ExitUsageError, GetExitCode(&UsageError{Message: "x"}))
	require.Equal(t, ExitConfigError, GetExitCode(config.ValidateErrors{{Field: "a", Message: "b"}}))
	wrapped := &CommandError{Command: "ask", Action: "query", Reason: "r", Err: &gateway.Error{Kind: gateway.KindUnreachable}}
	require.Equal(t, ExitNetworkError, GetExitCode(wrapped))
	require.Equal(t, ExitGeneralError, GetExitCode(io.ErrUnexpectedEOF))
}

// =============================================================================
// ASK TESTS
// =============================================================================

type memClipboard struct{ text string }

func (c *memClipboard) WriteAll(text string) error {
	c.text = text
	return nil
}

func backend(t *testing.T, answer string, status int) *gateway.Client {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if status != http.StatusOK {
			w.WriteHeader(status)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(gateway.Answer{
			Answer:            answer,
			Sources:           []model.SourcePreview{{Preview: "policy passage"}},
			FollowUpQuestions: []string{"How do I apply?"},
		}))
	}))
	t.Cleanup(server.Close)
	return gateway.NewClientWithConfig(&gateway.ClientConfig{BaseURL: server.URL})
}

func testEnv(asker widget.Asker, out io.Writer) Env {
	return Env{
		Config:    config.Default(),
		Asker:     asker,
		Clipboard: &memClipboard{},
		Out:       out,
		Theme:     styles.NewTheme("dark", true),
		Width:     70,
	}
}

func TestHandleAskCommand(t *testing.T) {
	var out bytes.Buffer
	env := testEnv(backend(t, "You get **24** days.\n\nCitation:\n[1] Leave Policy", http.StatusOK), &out)

	require.NoError(t, HandleAskCommand(env, Args{Query: "leave?"}))
	text := out.String()
	require.Contains(t, text, "You get 24 days.")
	require.Contains(t, text, "📎 Source")
	require.Contains(t, text, `"...policy passage..."`)
	require.Contains(t, text, "How do I apply?")
}

func TestHandleAskCommand_BackendDown(t *testing.T) {
	var out bytes.Buffer
	env := testEnv(backend(t, "", http.StatusInternalServerError), &out)

	err := HandleAskCommand(env, Args{Query: "leave?"})
	require.Error(t, err)
	require.Equal(t, ExitNetworkError, GetExitCode(err))
	require.Contains(t, out.String(), "trouble connecting")
}

func TestHandleAskCommand_Empty(t *testing.T) {
	err := HandleAskCommand(testEnv(nil, io.Discard), Args{Query: "  "})
	require.Equal(t, ExitUsageError, GetExitCode(err))
}

// =============================================================================
// REPL TESTS
// =============================================================================

type scriptReader struct {
	lines   []string
	history []string
}

func (s *scriptReader) Prompt(string) (string, error) {
	if len(s.lines) == 0 {
		return "", io.EOF
	}
	line := s.lines[0]
	s.lines = s.lines[1:]
	return line, nil
}

func (s *scriptReader) AppendHistory(item string) {
	s.history = append(s.history, item)
}

func TestRunRepl(t *testing.T) {
	var out bytes.Buffer
	clip := &memClipboard{}
	env := testEnv(backend(t, "Answer body\n\nCitation:\n[1] Doc", http.StatusOK), &out)
	env.Clipboard = clip

	in := &scriptReader{lines: []string{"", "first question", "/copy", "/source", "/1", "/9", "/bogus", "/quit", "never read"}}
	require.NoError(t, RunRepl(env, in))

	text := out.String()
	require.Contains(t, text, model.GreetingText[:20])
	require.Contains(t, text, "Try asking")
	require.Contains(t, text, "Answer body")
	require.Contains(t, text, "✓ Copied")
	require.Contains(t, text, "Passage Preview")
	require.Contains(t, text, "No suggestion 9")
	require.Contains(t, text, "Unknown command /bogus")
	require.Equal(t, "Answer body", clip.text)
	require.Equal(t, []string{"never read"}, in.lines)
	require.NotContains(t, in.history, "")
}

func TestSession_HRPhraseSkipsBackend(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer server.Close()

	s := NewSession(gateway.NewClientWithConfig(&gateway.ClientConfig{BaseURL: server.URL}), &memClipboard{})
	defer s.Close()

	reply, err := s.Ask(widget.HRPhrase)
	require.NoError(t, err)
	require.Equal(t, widget.HRReply, reply.Text)
	require.Zero(t, calls)
}

// =============================================================================
// CONFIG COMMAND TESTS
// =============================================================================

func TestHandleConfig(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("CHATWIDGET_CONFIG_DIR", dir)
	config.ResetGlobalForTesting()
	defer config.ResetGlobalForTesting()

	var out bytes.Buffer
	require.NoError(t, HandleConfig(&out, Args{Raw: []string{"init"}}))
	require.FileExists(t, filepath.Join(dir, "config.toml"))

	err := HandleConfig(&out, Args{Raw: []string{"init"}})
	require.ErrorContains(t, err, "already exists")
	require.NoError(t, HandleConfig(&out, Args{Raw: []string{"init", "--force"}}))

	out.Reset()
	require.NoError(t, HandleConfig(&out, Args{Raw: []string{"path"}}))
	require.Equal(t, filepath.Join(dir, "config.toml"), strings.TrimSpace(out.String()))

	out.Reset()
	require.NoError(t, HandleConfig(&out, Args{Raw: []string{"show", "--json"}}))
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))
	require.Contains(t, decoded, "api")

	err = HandleConfig(&out, Args{Raw: []string{"frobnicate"}})
	require.Equal(t, ExitUsageError, GetExitCode(err))
}

func TestVersionAndHelp(t *testing.T) {
	var out bytes.Buffer
	HandleVersion(&out)
	require.Contains(t, out.String(), Version)

	out.Reset()
	HandleHelp(&out)
	require.Contains(t, out.String(), "chatwidget ask")
}
