// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package components provides the rendering pieces of the chat widget.

Each component is a plain value with a View method (or a pure render
function) built on Lip Gloss. None of them hold state between frames; the
chat model rebuilds them on every render from the controller's state.

# Components

MessageBubble (message.go) - One log entry. Bot answers are parsed with
markup.Parse and rendered block by block; user text is shown as typed.

RenderBlocks / RenderSegments (blocks.go) - Paragraphs, bullet and numbered
lists, spacers and the citation box with its passage preview.

ChipRow (chips.go) - Starter and follow-up suggestion chips, laid out in
rows that fit the available width.

Header, Launcher, Footer (header.go) - Widget chrome.
*/
package components
