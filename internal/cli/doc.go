// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package cli implements the command-line entry points of the chat widget.

	chatwidget                 Start the widget (default)
	chatwidget ask "question"  Ask one question and print the answer
	chatwidget repl            Line-based chat for terminals without a TUI
	chatwidget config [show|path|init]
	chatwidget version
	chatwidget help

Global flags: --api-url URL, --debug, --open, --no-color.

ask and repl drive a widget.Controller synchronously through Session, so
the HR handoff, history window and failure apology behave exactly as in
the TUI.
*/
package cli
