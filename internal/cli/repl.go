// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/peterh/liner"

	"github.com/advitiya-sood/RAG-chatbot-frontend-test/internal/config"
	"github.com/advitiya-sood/RAG-chatbot-frontend-test/internal/widget"
)

// =============================================================================
// INPUT HISTORY
// =============================================================================

// LineReader reads one line of user input.
type LineReader interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
}

// LineEditor provides input history and line editing for the repl.
type LineEditor struct {
	line        *liner.State
	historyFile string
}

// NewLineEditor creates a line editor with history from the config dir.
func NewLineEditor() *LineEditor {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)

	configDir, err := config.ConfigDir()
	if err != nil {
		configDir = os.TempDir()
	}
	e := &LineEditor{
		line:        line,
		historyFile: filepath.Join(configDir, "repl_history"),
	}
	e.loadHistory()
	return e
}

func (e *LineEditor) loadHistory() {
	if f, err := os.Open(e.historyFile); err == nil {
		e.line.ReadHistory(f)
		f.Close()
	}
}

// Prompt reads a line with the given prompt.
func (e *LineEditor) Prompt(prompt string) (string, error) {
	return e.line.Prompt(prompt)
}

// AppendHistory records item for arrow-key recall.
func (e *LineEditor) AppendHistory(item string) {
	e.line.AppendHistory(item)
}

// Close saves history (0600) and restores the terminal.
func (e *LineEditor) Close() {
	defer e.line.Close()
	if err := os.MkdirAll(filepath.Dir(e.historyFile), 0700); err != nil {
		return
	}
	f, err := os.OpenFile(e.historyFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return
	}
	defer f.Close()
	if _, err := e.line.WriteHistory(f); err != nil {
		log.Printf("REPL_HISTORY_SAVE_FAILED | error=%v", err)
	}
}

// =============================================================================
// REPL
// =============================================================================

const replHelp = `Commands:
  /1 .. /9     Ask a suggested question
  /source      Show the passage behind the last answer
  /copy        Copy the last answer without its citation
  /clear       Start over
  /help        Show this help
  /quit        Exit (also Ctrl+D)`

// HandleReplCommand runs the line-based chat on the terminal.
func HandleReplCommand(env Env, _ Args) error {
	editor := NewLineEditor()
	defer editor.Close()
	return RunRepl(env, editor)
}

// RunRepl runs the chat loop until EOF, Ctrl+C at the prompt or /quit.
func RunRepl(env Env, in LineReader) error {
	session := NewSession(env.Asker, env.Clipboard)
	defer session.Close()
	r := env.renderer()

	fmt.Fprintln(env.Out, r.Message(session.Greeting(), false))
	printChips(env, session)

	for {
		line, err := in.Prompt("> ")
		if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
			return nil
		}
		if err != nil {
			return err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		in.AppendHistory(line)

		if strings.HasPrefix(line, "/") {
			if quit := handleSlashCommand(env, session, line); quit {
				return nil
			}
			continue
		}
		ask(env, session, widget.ClampInput(line))
	}
}

func ask(env Env, session *Session, text string) {
	reply, err := session.Ask(text)
	if errors.Is(err, ErrNothingSent) {
		return
	}
	if err != nil {
		log.Printf("REPL_ASK_FAILED | error=%v", err)
	}
	fmt.Fprintln(env.Out, env.renderer().Message(reply, false))
	printChips(env, session)
}

func printChips(env Env, session *Session) {
	ctrl := session.Controller()
	label := "Suggested follow-ups"
	if ctrl.StarterQuestions() != nil {
		label = "Try asking"
	}
	if out := env.renderer().Suggestions(label, ctrl.Chips()); out != "" {
		fmt.Fprintln(env.Out, out)
	}
}

// handleSlashCommand runs a /command. It returns true to leave the loop.
func handleSlashCommand(env Env, session *Session, line string) bool {
	cmd := strings.ToLower(strings.Fields(line)[0])

	if n, err := strconv.Atoi(strings.TrimPrefix(cmd, "/")); err == nil {
		chips := session.Controller().Chips()
		if n < 1 || n > len(chips) {
			fmt.Fprintf(env.Out, "No suggestion %d\n", n)
			return false
		}
		ask(env, session, chips[n-1])
		return false
	}

	switch cmd {
	case "/quit", "/q", "/exit":
		return true
	case "/help", "/h":
		fmt.Fprintln(env.Out, replHelp)
	case "/clear", "/c":
		session.Clear()
		fmt.Fprintln(env.Out, env.renderer().Message(session.Greeting(), false))
		printChips(env, session)
	case "/copy":
		if err := session.CopyLast(); err != nil {
			fmt.Fprintf(env.Out, "Copy failed: %v\n", err)
		} else {
			fmt.Fprintln(env.Out, "✓ Copied")
		}
	case "/source":
		idx := session.LastAnswerIndex()
		msgs := session.Controller().Messages()
		if idx < 0 {
			return false
		}
		if preview, ok := msgs[idx].FirstSourcePreview(); ok {
			fmt.Fprintln(env.Out, env.Theme.PreviewTitle.Render("Passage Preview"))
			fmt.Fprintln(env.Out, env.Theme.PreviewText.Render(`"...`+preview+`..."`))
		} else {
			fmt.Fprintln(env.Out, "No source for the last answer")
		}
	default:
		fmt.Fprintf(env.Out, "Unknown command %s (try /help)\n", cmd)
	}
	return false
}
