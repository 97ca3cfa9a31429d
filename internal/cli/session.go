// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/advitiya-sood/RAG-chatbot-frontend-test/internal/model"
	"github.com/advitiya-sood/RAG-chatbot-frontend-test/internal/widget"
)

// ErrNothingSent is returned when the controller refused the text
// (blank input or an answer still pending).
var ErrNothingSent = errors.New("nothing to send")

// =============================================================================
// SESSION
// =============================================================================

// Session drives a widget.Controller without a Bubble Tea runtime. Every
// command is run inline, so Ask blocks until the reply is in the log.
type Session struct {
	ctrl *widget.Controller
}

// NewSession creates an open widget backed by asker.
func NewSession(asker widget.Asker, clipboard widget.Clipboard) *Session {
	return &Session{
		ctrl: widget.New(widget.Options{
			Asker:     asker,
			Clipboard: clipboard,
			Scheduler: blockingScheduler{},
			StartOpen: true,
		}),
	}
}

// Controller exposes the underlying controller.
func (s *Session) Controller() *widget.Controller {
	return s.ctrl
}

// Ask sends text and returns the reply. A failed request still yields the
// apology message; the gateway error is returned alongside it.
func (s *Session) Ask(text string) (model.Message, error) {
	cmd := s.ctrl.SendMessage(text)
	if cmd == nil {
		return model.Message{}, ErrNothingSent
	}

	msg := cmd()
	var askErr error
	if answer, ok := msg.(widget.AnswerMsg); ok {
		askErr = answer.Err
	}
	s.ctrl.Update(msg)

	msgs := s.ctrl.Messages()
	return msgs[len(msgs)-1], askErr
}

// Greeting returns the first message of the conversation.
func (s *Session) Greeting() model.Message {
	return s.ctrl.Messages()[0]
}

// LastAnswerIndex returns the index of the newest assistant message.
func (s *Session) LastAnswerIndex() int {
	msgs := s.ctrl.Messages()
	for i := len(msgs) - 1; i >= 0; i-- {
		if msgs[i].IsBot() {
			return i
		}
	}
	return -1
}

// CopyLast copies the newest answer. The indicator timer is not needed
// outside the TUI and is dropped.
func (s *Session) CopyLast() error {
	_, err := s.ctrl.CopyAnswer(s.LastAnswerIndex())
	return err
}

// Clear resets the conversation.
func (s *Session) Clear() {
	s.ctrl.ClearChat()
}

// Close cancels anything pending.
func (s *Session) Close() {
	s.ctrl.Shutdown()
}

// blockingScheduler sleeps inside the command instead of using a tea timer.
type blockingScheduler struct{}

func (blockingScheduler) After(d time.Duration, msg tea.Msg) tea.Cmd {
	return func() tea.Msg {
		time.Sleep(d)
		return msg
	}
}
