// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"log"
	"strings"

	"github.com/advitiya-sood/RAG-chatbot-frontend-test/internal/widget"
)

// HandleAskCommand asks a single question and prints the answer with its
// citation preview expanded.
//
// Examples:
//
//	chatwidget ask "How many casual leaves do I get?"
//	chatwidget --api-url http://rag.internal:8000 ask "Who is my HR SPOC?"
func HandleAskCommand(env Env, args Args) error {
	query := strings.TrimSpace(args.Query)
	if query == "" {
		return &UsageError{Message: "ask needs a question"}
	}
	if clamped := widget.ClampInput(query); clamped != query {
		log.Printf("ASK_TRUNCATED | limit=%d", widget.MaxInputChars)
		query = clamped
	}

	session := NewSession(env.Asker, env.Clipboard)
	defer session.Close()

	reply, err := session.Ask(query)
	if err == ErrNothingSent {
		return &UsageError{Message: "ask needs a question"}
	}

	r := env.renderer()
	fmt.Fprintln(env.Out, r.Message(reply, true))
	if err != nil {
		return &CommandError{Command: "ask", Action: "query", Reason: "backend request failed", Err: err}
	}

	if chips := session.Controller().FollowUps(); len(chips) > 0 {
		fmt.Fprintln(env.Out)
		fmt.Fprintln(env.Out, r.Suggestions("Suggested follow-ups", chips))
	}
	return nil
}
