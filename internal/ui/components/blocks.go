// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/advitiya-sood/RAG-chatbot-frontend-test/internal/markup"
	"github.com/advitiya-sood/RAG-chatbot-frontend-test/internal/ui/styles"
)

// =============================================================================
// INLINE SEGMENTS
// =============================================================================

// RenderSegments styles each segment according to its Bold/Italic/Code bits.
func RenderSegments(theme *styles.Theme, segs markup.Segments) string {
	var b strings.Builder
	for _, seg := range segs {
		if seg.Style == markup.Plain {
			b.WriteString(seg.Text)
			continue
		}
		b.WriteString(segmentStyle(theme, seg.Style).Render(seg.Text))
	}
	return b.String()
}

func segmentStyle(theme *styles.Theme, s markup.Style) lipgloss.Style {
	style := lipgloss.NewStyle()
	if s.Has(markup.Code) {
		style = style.Inherit(theme.Code)
	}
	if s.Has(markup.Bold) {
		style = style.Bold(true)
	}
	if s.Has(markup.Italic) {
		style = style.Italic(true)
	}
	return style
}

// =============================================================================
// BLOCKS
// =============================================================================

// BlockOptions controls how answer blocks are drawn.
type BlockOptions struct {
	Width int
	// ShowPreview expands the citation's passage preview.
	ShowPreview bool
}

// RenderBlocks draws blocks top to bottom in the order given.
func RenderBlocks(theme *styles.Theme, blocks []markup.Block, opts BlockOptions) string {
	width := opts.Width
	if width < 10 {
		width = 10
	}
	lines := make([]string, 0, len(blocks))
	for _, block := range blocks {
		switch block.Kind {
		case markup.KindParagraph:
			lines = append(lines, wrap(RenderSegments(theme, block.Segments), width))
		case markup.KindBulletList:
			lines = append(lines, renderList(theme, block.Items, width, func(int) string { return "• " }))
		case markup.KindNumberedList:
			lines = append(lines, renderList(theme, block.Items, width, func(i int) string { return fmt.Sprintf("%d. ", i+1) }))
		case markup.KindSpacer:
			lines = append(lines, "")
		case markup.KindCitation:
			lines = append(lines, renderCitation(theme, block.Citation, width, opts.ShowPreview))
		}
	}
	return strings.Join(lines, "\n")
}

func renderList(theme *styles.Theme, items []markup.Segments, width int, marker func(int) string) string {
	rows := make([]string, 0, len(items))
	for i, item := range items {
		m := marker(i)
		bodyWidth := width - lipgloss.Width(m)
		if bodyWidth < 1 {
			bodyWidth = 1
		}
		body := wrap(RenderSegments(theme, item), bodyWidth)
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, theme.ListMarker.Render(m), body))
	}
	return strings.Join(rows, "\n")
}

func renderCitation(theme *styles.Theme, c *markup.Citation, width int, showPreview bool) string {
	if c == nil {
		return ""
	}
	inner := width - 2
	if inner < 1 {
		inner = 1
	}
	parts := []string{theme.CitationLabel.Render("📎 " + c.Label)}
	if c.HasBody {
		parts = append(parts, wrap(theme.CitationText.Render(c.Text), inner))
		if c.HasPreview && showPreview {
			parts = append(parts,
				theme.PreviewTitle.Render("Passage Preview"),
				wrap(theme.PreviewText.Render(`"...`+c.Preview+`..."`), inner),
			)
		}
	}
	return theme.CitationBox.Render(strings.Join(parts, "\n"))
}

// wrap word-wraps styled text to width columns.
func wrap(s string, width int) string {
	return lipgloss.NewStyle().Width(width).Render(s)
}
