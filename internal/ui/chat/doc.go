// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package chat provides the Bubble Tea model for the chat widget.

The model owns only presentation state (sizes, focus, the selected message
and chip). Conversation state lives in a widget.Controller, and every
command the controller returns is handed back to the Bubble Tea runtime
unchanged. Results come back through Update and are forwarded to the
controller before the view is rebuilt.

# Keys

	enter          send input, or the highlighted chip
	tab/shift+tab  cycle suggestion chips
	alt+up/down    select a message (shows its passage preview)
	ctrl+y         copy the selected answer, or the latest one
	ctrl+l         clear the conversation
	esc, ctrl+o    open or close the widget
	ctrl+c         quit

# Config reload

When created with a config update channel the model applies each reloaded
config: the backend URL and timeout on the gateway client, the theme and
the timestamp setting.
*/
package chat
