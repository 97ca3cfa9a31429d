// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package gateway provides the HTTP client for the question-answering backend.
//
// The backend exposes a single endpoint, POST /api/query/advanced, which takes
// a question plus the rolling conversation history and returns an answer,
// optional source passages and optional follow-up questions.
//
// # Errors
//
// Every failure is returned as *Error with one of four kinds:
//
//   - KindRateLimited: HTTP 429, or the optional client-side limiter refused the call
//   - KindUpstream: any other non-2xx status
//   - KindUnreachable: transport failure, timeout or cancellation
//   - KindMalformed: a 2xx response whose body could not be decoded
//
// # Usage
//
//	client := gateway.NewClientWithConfig(&gateway.ClientConfig{BaseURL: "http://localhost:8000"})
//	answer, err := client.Ask(ctx, "What's the leave policy?", conv.RecentHistory())
//	if gateway.IsRateLimited(err) {
//	    ...
//	}
package gateway
