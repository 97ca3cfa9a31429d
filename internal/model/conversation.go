// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for conversations and messages.
package model

import (
	"errors"
	"time"
)

// HistoryLimit is the number of most recent history entries sent with a request.
const HistoryLimit = 6

// GreetingText is the first message of every fresh conversation.
const GreetingText = "Hello! I'm your Bhavna Corp AI assistant. Ask me anything about our company policies, leave, benefits, or team!"

// ErrRequestInFlight is returned by BeginRequest when a request is already pending.
var ErrRequestInFlight = errors.New("a request is already in flight")

// =============================================================================
// CONVERSATION TYPE
// =============================================================================

// Conversation holds the visible message log, the rolling backend history
// and the awaiting flag for a single widget.
//
// The log only grows, except on Reset, which brings it back to the greeting.
// History only grows when a full question/answer exchange completes.
// Conversation is not safe for concurrent use; the owner serialises access.
type Conversation struct {
	messages   []Message
	history    []HistoryEntry
	awaiting   bool
	generation uint64
	greeting   string
	updatedAt  time.Time
}

// NewConversation creates a conversation seeded with the default greeting.
func NewConversation() *Conversation {
	return NewConversationWithGreeting(GreetingText)
}

// NewConversationWithGreeting creates a conversation seeded with a custom greeting.
func NewConversationWithGreeting(greeting string) *Conversation {
	c := &Conversation{greeting: greeting}
	c.seed()
	return c
}

func (c *Conversation) seed() {
	c.messages = []Message{NewBotMessage(c.greeting, nil, nil)}
	c.history = nil
	c.awaiting = false
	c.updatedAt = time.Now()
}

// =============================================================================
// MESSAGE LOG
// =============================================================================

// Append pushes a message onto the log.
func (c *Conversation) Append(msg Message) {
	c.messages = append(c.messages, msg)
	c.updatedAt = time.Now()
}

// CompleteExchange appends the bot reply and records the question/answer
// pair in the history in one step.
func (c *Conversation) CompleteExchange(question string, reply Message) {
	c.Append(reply)
	c.history = append(c.history,
		HistoryEntry{Role: RoleUser, Content: question},
		HistoryEntry{Role: RoleAssistant, Content: reply.Text},
	)
}

// Messages returns a copy of the message log.
func (c *Conversation) Messages() []Message {
	out := make([]Message, len(c.messages))
	copy(out, c.messages)
	return out
}

// MessageAt returns the message at index i.
func (c *Conversation) MessageAt(i int) (Message, bool) {
	if i < 0 || i >= len(c.messages) {
		return Message{}, false
	}
	return c.messages[i], true
}

// Len returns the number of messages in the log.
func (c *Conversation) Len() int {
	return len(c.messages)
}

// LastMessage returns the most recent message.
func (c *Conversation) LastMessage() (Message, bool) {
	return c.MessageAt(len(c.messages) - 1)
}

// UpdatedAt returns when the log last changed.
func (c *Conversation) UpdatedAt() time.Time {
	return c.updatedAt
}

// =============================================================================
// HISTORY
// =============================================================================

// RecentHistory returns a copy of at most HistoryLimit trailing entries.
func (c *Conversation) RecentHistory() []HistoryEntry {
	start := 0
	if len(c.history) > HistoryLimit {
		start = len(c.history) - HistoryLimit
	}
	out := make([]HistoryEntry, len(c.history)-start)
	copy(out, c.history[start:])
	return out
}

// HistoryLen returns the total number of recorded history entries.
func (c *Conversation) HistoryLen() int {
	return len(c.history)
}

// =============================================================================
// REQUEST STATE
// =============================================================================

// BeginRequest moves the conversation from idle to awaiting.
func (c *Conversation) BeginRequest() error {
	if c.awaiting {
		return ErrRequestInFlight
	}
	c.awaiting = true
	return nil
}

// EndRequest moves the conversation back to idle.
func (c *Conversation) EndRequest() {
	c.awaiting = false
}

// Awaiting reports whether a backend request is pending.
func (c *Conversation) Awaiting() bool {
	return c.awaiting
}

// Generation identifies the current conversation epoch. It changes on every
// Reset so results that belong to a cleared conversation can be discarded.
func (c *Conversation) Generation() uint64 {
	return c.generation
}

// Reset restores the single greeting, clears the history, returns to idle
// and starts a new generation.
func (c *Conversation) Reset() {
	c.generation++
	c.seed()
}

// ShowStarterPrompts reports whether starter prompts should be offered:
// only the greeting is present and nothing is pending.
func (c *Conversation) ShowStarterPrompts() bool {
	return len(c.messages) == 1 && !c.awaiting
}
