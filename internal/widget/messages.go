// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package widget

import "github.com/advitiya-sood/RAG-chatbot-frontend-test/internal/gateway"

// =============================================================================
// CONTROLLER MESSAGES
// =============================================================================

// AnswerMsg carries the outcome of a backend question.
type AnswerMsg struct {
	Generation uint64
	Question   string
	Answer     *gateway.Answer
	Err        error
}

// HRReplyMsg fires when the HR hand-off delay has elapsed.
type HRReplyMsg struct {
	Generation uint64
}

// CopyExpiredMsg clears the copied indicator set by the matching copy.
type CopyExpiredMsg struct {
	Token uint64
}
