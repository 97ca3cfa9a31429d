// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"strings"

	"github.com/advitiya-sood/RAG-chatbot-frontend-test/internal/markup"
	"github.com/advitiya-sood/RAG-chatbot-frontend-test/internal/model"
	"github.com/advitiya-sood/RAG-chatbot-frontend-test/internal/ui/components"
	"github.com/advitiya-sood/RAG-chatbot-frontend-test/internal/ui/styles"
	"github.com/advitiya-sood/RAG-chatbot-frontend-test/internal/util"
)

// =============================================================================
// LINE RENDERER
// =============================================================================

// Renderer prints messages for line-based output.
type Renderer struct {
	Theme          *styles.Theme
	Width          int
	ShowTimestamps bool
}

// NewRenderer creates a renderer for width columns.
func NewRenderer(theme *styles.Theme, width int) *Renderer {
	return &Renderer{Theme: theme, Width: width, ShowTimestamps: true}
}

// Message renders one log entry with a sender line above it.
func (r *Renderer) Message(msg model.Message, showPreview bool) string {
	label := msg.Sender.DisplayName()
	if r.ShowTimestamps {
		label += " " + r.Theme.Meta.Render(msg.Clock())
	}
	header := r.Theme.HeaderTitle.Render(label)

	if !msg.IsBot() {
		return header + "\n" + strings.Join(util.WrapWidth(msg.Text, r.Width), "\n")
	}
	blocks := markup.Parse(msg.Text, msg.Sources)
	body := components.RenderBlocks(r.Theme, blocks, components.BlockOptions{
		Width:       r.Width,
		ShowPreview: showPreview,
	})
	return header + "\n" + body
}

// Suggestions renders chips as a numbered list usable with /N.
func (r *Renderer) Suggestions(label string, chips []string) string {
	if len(chips) == 0 {
		return ""
	}
	lines := []string{r.Theme.ChipLabel.Render(label + ":")}
	for i, chip := range chips {
		lines = append(lines, fmt.Sprintf("  %s %s", r.Theme.ListMarker.Render(fmt.Sprintf("/%d", i+1)), chip))
	}
	return strings.Join(lines, "\n")
}
