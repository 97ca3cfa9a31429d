// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for conversations and messages.
//
// # Key Types
//
//   - Conversation: The widget's message log, rolling history and request state
//   - Message: One log entry with sender, text, timestamp, sources and follow-ups
//   - HistoryEntry: One role/content turn sent to the backend as context
//   - SourcePreview: The passage excerpt a citation points at
//
// # Usage
//
//	conv := model.NewConversation()
//	conv.Append(model.NewUserMessage("What's the leave policy?"))
//	if err := conv.BeginRequest(); err != nil {
//	    return err
//	}
//	history := conv.RecentHistory() // at most model.HistoryLimit entries
//	...
//	conv.CompleteExchange("What's the leave policy?", model.NewBotMessage(answer, sources, followUps))
//	conv.EndRequest()
package model
