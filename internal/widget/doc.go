// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package widget implements the chat widget controller.
//
// A Controller owns one conversation and everything around it: whether the
// widget is open, the input box, the "copied" indicator, the HR hand-off
// shortcut and the single in-flight backend request. It is headless; the
// Bubble Tea view in internal/ui/chat and the line-mode REPL in
// internal/cli both drive the same Controller.
//
// # Side Effects
//
// Operations that need to wait (a backend call, the HR reply delay, the
// copied-indicator timeout) return a tea.Cmd. The caller runs the command
// and hands the resulting message back to Controller.Update. Results from
// before a ClearChat carry an old generation number and are dropped.
//
// # Usage
//
//	ctrl := widget.New(widget.Options{Asker: gateway.NewClient()})
//	ctrl.Toggle()
//	cmd := ctrl.SendMessage("What's the leave policy?")
//	msg := cmd()
//	ctrl.Update(msg)
package widget
