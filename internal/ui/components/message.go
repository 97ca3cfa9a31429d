// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/advitiya-sood/RAG-chatbot-frontend-test/internal/markup"
	"github.com/advitiya-sood/RAG-chatbot-frontend-test/internal/model"
	"github.com/advitiya-sood/RAG-chatbot-frontend-test/internal/ui/styles"
)

// =============================================================================
// MESSAGE BUBBLE COMPONENT
// =============================================================================

const (
	CopyLabel   = "⎘ Copy"
	CopiedLabel = "✓ Copied"
)

// MessageBubble renders one conversation entry.
type MessageBubble struct {
	Message       model.Message
	Width         int
	ShowTimestamp bool
	// Selected draws the bubble with the selection border and expands the
	// citation's passage preview.
	Selected bool
	// Copied swaps the copy button for the confirmation label.
	Copied bool
	theme  *styles.Theme
}

// NewMessageBubble creates a bubble with default width and timestamps on.
func NewMessageBubble(msg model.Message, theme *styles.Theme) *MessageBubble {
	return &MessageBubble{
		Message:       msg,
		Width:         80,
		ShowTimestamp: true,
		theme:         theme,
	}
}

// SetWidth sets the available width for the bubble row.
func (b *MessageBubble) SetWidth(width int) {
	b.Width = width
}

// View renders the bubble aligned to its sender's side.
func (b *MessageBubble) View() string {
	if b.Message.IsBot() {
		return b.renderBotBubble()
	}
	return b.renderUserBubble()
}

// maxBubbleWidth leaves room on the opposite side so the two senders stay
// visually distinct.
func (b *MessageBubble) maxBubbleWidth() int {
	w := b.Width * 4 / 5
	if w < 20 {
		w = b.Width
	}
	return w
}

func (b *MessageBubble) renderUserBubble() string {
	style := b.theme.UserBubble
	if b.Selected {
		style = style.BorderForeground(b.theme.SelectedBorder)
	}
	inner := b.maxBubbleWidth() - style.GetHorizontalFrameSize()
	if inner < 1 {
		inner = 1
	}
	text := b.Message.Text
	if lipgloss.Width(text) > inner {
		text = wrap(text, inner)
	}
	bubble := style.Render(text)

	rows := []string{bubble}
	if b.ShowTimestamp {
		rows = append(rows, b.theme.Meta.Render(b.Message.Clock()))
	}
	block := lipgloss.JoinVertical(lipgloss.Right, rows...)
	return lipgloss.PlaceHorizontal(b.Width, lipgloss.Right, block)
}

func (b *MessageBubble) renderBotBubble() string {
	style := b.theme.BotBubble
	if b.Selected {
		style = style.BorderForeground(b.theme.SelectedBorder)
	}
	inner := b.maxBubbleWidth() - style.GetHorizontalFrameSize()
	if inner < 10 {
		inner = 10
	}

	blocks := markup.Parse(b.Message.Text, b.Message.Sources)
	body := RenderBlocks(b.theme, blocks, BlockOptions{Width: inner, ShowPreview: b.Selected})
	bubble := style.Render(strings.TrimRight(body, "\n"))

	return lipgloss.JoinVertical(lipgloss.Left, bubble, b.metaLine())
}

// metaLine is the row under a bot bubble: timestamp then copy button.
func (b *MessageBubble) metaLine() string {
	var parts []string
	if b.ShowTimestamp {
		parts = append(parts, b.theme.Meta.Render(b.Message.Clock()))
	}
	if b.Copied {
		parts = append(parts, b.theme.CopiedButton.Render(CopiedLabel))
	} else {
		parts = append(parts, b.theme.CopyButton.Render(CopyLabel))
	}
	return strings.Join(parts, "  ")
}

// =============================================================================
// TYPING INDICATOR
// =============================================================================

// TypingIndicator renders the placeholder bubble shown while an answer is
// pending. frame is the current spinner frame.
func TypingIndicator(theme *styles.Theme, frame string) string {
	return theme.BotBubble.Render(theme.Typing.Render(frame + " typing"))
}
