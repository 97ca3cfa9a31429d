// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/require"

	"github.com/advitiya-sood/RAG-chatbot-frontend-test/internal/markup"
	"github.com/advitiya-sood/RAG-chatbot-frontend-test/internal/model"
	"github.com/advitiya-sood/RAG-chatbot-frontend-test/internal/ui/styles"
)

func plainTheme() *styles.Theme {
	return styles.NewTheme("dark", true)
}

// =============================================================================
// BLOCK TESTS
// =============================================================================

func TestRenderSegments_PlainPassThrough(t *testing.T) {
	theme := plainTheme()
	segs := markup.FormatInline("Use **bold** and `code` here")
	require.Equal(t, "Use bold and code here", RenderSegments(theme, segs))
}

func TestRenderBlocks_Lists(t *testing.T) {
	theme := plainTheme()
	blocks := markup.Parse("Steps:\n1. Apply\n2. Wait\n- note", nil)

	out := RenderBlocks(theme, blocks, BlockOptions{Width: 40})
	require.Contains(t, out, "Steps:")
	require.Contains(t, out, "1. Apply")
	require.Contains(t, out, "2. Wait")
	require.Contains(t, out, "• note")
}

func TestRenderBlocks_CitationPreview(t *testing.T) {
	theme := plainTheme()
	sources := []model.SourcePreview{{Preview: "twenty days of paid leave"}}
	blocks := markup.Parse("Answer.\n\nCitation:\n[1] Leave Policy", sources)

	collapsed := RenderBlocks(theme, blocks, BlockOptions{Width: 60})
	require.Contains(t, collapsed, "📎 Source")
	require.Contains(t, collapsed, "Leave Policy")
	require.NotContains(t, collapsed, "[1]")
	require.NotContains(t, collapsed, "Passage Preview")

	expanded := RenderBlocks(theme, blocks, BlockOptions{Width: 60, ShowPreview: true})
	require.Contains(t, expanded, "Passage Preview")
	require.Contains(t, expanded, `"...twenty days of paid leave..."`)
}

func TestRenderBlocks_CitationEmptyPreviewHidden(t *testing.T) {
	theme := plainTheme()
	blocks := markup.Parse("Citation:\n[1] Leave Policy", []model.SourcePreview{{Preview: ""}})

	out := RenderBlocks(theme, blocks, BlockOptions{Width: 60, ShowPreview: true})
	require.Contains(t, out, "Leave Policy")
	require.NotContains(t, out, "Passage Preview")
	require.NotContains(t, out, `"......"`)
}

func TestRenderBlocks_CitationWithoutBody(t *testing.T) {
	theme := plainTheme()
	blocks := markup.Parse("Citation:", nil)

	out := RenderBlocks(theme, blocks, BlockOptions{Width: 40, ShowPreview: true})
	require.Contains(t, out, "📎 Source")
	require.NotContains(t, out, "Passage Preview")
}

func TestRenderBlocks_WrapsToWidth(t *testing.T) {
	theme := plainTheme()
	blocks := markup.Parse(strings.Repeat("word ", 30), nil)

	out := RenderBlocks(theme, blocks, BlockOptions{Width: 20})
	for _, line := range strings.Split(out, "\n") {
		require.LessOrEqual(t, lipgloss.Width(line), 20)
	}
}

// =============================================================================
// MESSAGE BUBBLE TESTS
// =============================================================================

func TestMessageBubble_User(t *testing.T) {
	theme := plainTheme()
	b := NewMessageBubble(model.NewUserMessage("How many leave days?"), theme)
	b.SetWidth(60)

	out := b.View()
	require.Contains(t, out, "How many leave days?")
	require.NotContains(t, out, CopyLabel)
}

func TestMessageBubble_BotCopyStates(t *testing.T) {
	theme := plainTheme()
	msg := model.NewBotMessage("You get **20** days.", nil, nil)
	b := NewMessageBubble(msg, theme)
	b.SetWidth(60)

	out := b.View()
	require.Contains(t, out, "You get 20 days.")
	require.Contains(t, out, CopyLabel)
	require.Contains(t, out, msg.Clock())

	b.Copied = true
	require.Contains(t, b.View(), CopiedLabel)
	require.NotContains(t, b.View(), CopyLabel)
}

func TestMessageBubble_HideTimestamp(t *testing.T) {
	theme := plainTheme()
	msg := model.NewBotMessage("Hi", nil, nil)
	b := NewMessageBubble(msg, theme)
	b.ShowTimestamp = false
	require.NotContains(t, b.View(), msg.Clock())
}

func TestMessageBubble_SelectedShowsPreview(t *testing.T) {
	theme := plainTheme()
	msg := model.NewBotMessage("See below.\nCitation:\n[2] Handbook",
		[]model.SourcePreview{{Preview: "the handbook says"}}, nil)
	b := NewMessageBubble(msg, theme)
	b.SetWidth(70)

	require.NotContains(t, b.View(), "Passage Preview")
	b.Selected = true
	require.Contains(t, b.View(), "Passage Preview")
}

// =============================================================================
// CHROME TESTS
// =============================================================================

func TestHeader_View(t *testing.T) {
	theme := plainTheme()
	h := NewHeader(theme)
	h.SetWidth(80)

	out := h.View()
	require.Contains(t, out, DefaultTitle)
	require.Contains(t, out, OnlineLabel)
	require.Contains(t, out, "esc close")

	h.SetWidth(30)
	require.NotContains(t, h.View(), "esc close")
}

func TestChipRow_Wraps(t *testing.T) {
	theme := plainTheme()
	row := NewChipRow(theme, "Try asking", []string{"What is the leave policy?", "How do I apply?", "Who is HR?"})
	row.Width = 30
	row.Selected = 1

	out := row.View()
	require.Contains(t, out, "Try asking")
	require.Contains(t, out, "How do I apply?")
	for _, line := range strings.Split(out, "\n") {
		require.LessOrEqual(t, lipgloss.Width(line), 30)
	}
}

func TestChipRow_Empty(t *testing.T) {
	require.Empty(t, NewChipRow(plainTheme(), "Try asking", nil).View())
}

func TestLauncherAndFooter(t *testing.T) {
	theme := plainTheme()
	require.Contains(t, Launcher(theme, 40), LauncherLabel)
	require.Contains(t, Footer(theme, 60), FooterText)
}
