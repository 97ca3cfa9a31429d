// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/advitiya-sood/RAG-chatbot-frontend-test/internal/ui/styles"
	"github.com/advitiya-sood/RAG-chatbot-frontend-test/internal/util"
)

// =============================================================================
// SUGGESTION CHIPS
// =============================================================================

// ChipRow lays out suggestion chips, wrapping onto new rows as needed.
type ChipRow struct {
	Label string
	Chips []string
	// Selected is the highlighted chip index, or -1 for none.
	Selected int
	Width    int
	theme    *styles.Theme
}

// NewChipRow creates a row with nothing selected.
func NewChipRow(theme *styles.Theme, label string, chips []string) *ChipRow {
	return &ChipRow{Label: label, Chips: chips, Selected: -1, Width: 80, theme: theme}
}

// View renders the label followed by the chips. Empty when there are none.
func (r *ChipRow) View() string {
	if len(r.Chips) == 0 {
		return ""
	}
	maxChip := r.Width - r.theme.Chip.GetHorizontalFrameSize()
	if maxChip < 4 {
		maxChip = 4
	}

	var rows []string
	var line []string
	lineWidth := 0
	for i, text := range r.Chips {
		style := r.theme.Chip
		if i == r.Selected {
			style = r.theme.ChipSelected
		}
		chip := style.Render(util.TruncateWidth(text, maxChip))
		w := lipgloss.Width(chip)
		if lineWidth > 0 && lineWidth+1+w > r.Width {
			rows = append(rows, joinChips(line))
			line, lineWidth = nil, 0
		}
		if lineWidth > 0 {
			line = append(line, " ")
			lineWidth++
		}
		line = append(line, chip)
		lineWidth += w
	}
	if len(line) > 0 {
		rows = append(rows, joinChips(line))
	}

	if r.Label != "" {
		rows = append([]string{r.theme.ChipLabel.Render(r.Label)}, rows...)
	}
	return strings.Join(rows, "\n")
}

// joinChips places bordered chips side by side.
func joinChips(parts []string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}
