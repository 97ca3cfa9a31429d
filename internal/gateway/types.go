// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package gateway

import "github.com/advitiya-sood/RAG-chatbot-frontend-test/internal/model"

// =============================================================================
// REQUEST TYPES
// =============================================================================

// QueryRequest is the request body for /api/query/advanced.
type QueryRequest struct {
	Question            string               `json:"question"`
	TopK                int                  `json:"top_k"`     // Passages to retrieve
	Summarize           bool                 `json:"summarize"` // Always false for the widget
	Stream              bool                 `json:"stream"`    // Always false for the widget
	ConversationHistory []model.HistoryEntry `json:"conversation_history"`
}

// =============================================================================
// RESPONSE TYPES
// =============================================================================

// Answer is the successful response from /api/query/advanced.
// It is returned as received; callers decide how to present follow-ups.
type Answer struct {
	Answer            string                `json:"answer"`
	Sources           []model.SourcePreview `json:"sources,omitempty"`
	FollowUpQuestions []string              `json:"follow_up_questions,omitempty"`
}
