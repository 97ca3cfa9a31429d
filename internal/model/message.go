// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for conversations and messages.
package model

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/advitiya-sood/RAG-chatbot-frontend-test/internal/util"
)

// =============================================================================
// SENDER AND ROLE TYPES
// =============================================================================

// Sender identifies who authored a message in the visible log.
type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// String returns the string representation of the sender.
func (s Sender) String() string {
	return string(s)
}

// DisplayName returns a human-readable name for the sender.
func (s Sender) DisplayName() string {
	switch s {
	case SenderUser:
		return "You"
	case SenderBot:
		return "Assistant"
	default:
		return string(s)
	}
}

// Role is the speaker of a history entry as the backend understands it.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// =============================================================================
// MESSAGE TYPE
// =============================================================================

// SourcePreview is the passage excerpt attached to a cited answer.
// Only the preview is kept; other fields the backend returns are ignored.
type SourcePreview struct {
	Preview string `json:"preview"`
}

// Message is one entry in the visible conversation log.
// A Message is built completely before it is appended and is never changed
// afterwards.
type Message struct {
	// Identity
	ID     string    `json:"id"`
	Sender Sender    `json:"sender"`
	Time   time.Time `json:"time"`

	// Content
	Text              string          `json:"text"`
	Sources           []SourcePreview `json:"sources,omitempty"`
	FollowUpQuestions []string        `json:"followUpQuestions,omitempty"`
}

// NewUserMessage creates a user message stamped with the current time.
func NewUserMessage(text string) Message {
	return Message{
		ID:     generateID(),
		Sender: SenderUser,
		Time:   time.Now(),
		Text:   text,
	}
}

// NewBotMessage creates a bot message stamped with the current time.
// The slices are copied so the caller cannot mutate the message later.
func NewBotMessage(text string, sources []SourcePreview, followUps []string) Message {
	msg := Message{
		ID:     generateID(),
		Sender: SenderBot,
		Time:   time.Now(),
		Text:   text,
	}
	if len(sources) > 0 {
		msg.Sources = append([]SourcePreview(nil), sources...)
	}
	if len(followUps) > 0 {
		msg.FollowUpQuestions = append([]string(nil), followUps...)
	}
	return msg
}

// IsBot reports whether the message was authored by the assistant.
func (m Message) IsBot() bool {
	return m.Sender == SenderBot
}

// HasFollowUps reports whether the message carries suggestion chips.
func (m Message) HasFollowUps() bool {
	return len(m.FollowUpQuestions) > 0
}

// FirstSourcePreview returns the preview of sources[0], if any.
func (m Message) FirstSourcePreview() (string, bool) {
	if len(m.Sources) == 0 {
		return "", false
	}
	return m.Sources[0].Preview, true
}

// Clock returns the send time formatted as HH:MM.
func (m Message) Clock() string {
	return m.Time.Format("15:04")
}

// Preview returns a single-line preview of the message text.
func (m Message) Preview(maxLen int) string {
	content := strings.ReplaceAll(m.Text, "\n", " ")
	if maxLen <= 3 {
		return content
	}
	return util.TruncateRunes(content, maxLen)
}

// =============================================================================
// HISTORY ENTRY
// =============================================================================

// HistoryEntry is one turn of the rolling context sent to the backend.
type HistoryEntry struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// =============================================================================
// HELPERS
// =============================================================================

func generateID() string {
	return uuid.NewString()
}
