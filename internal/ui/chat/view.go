// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/advitiya-sood/RAG-chatbot-frontend-test/internal/ui/components"
	"github.com/advitiya-sood/RAG-chatbot-frontend-test/internal/util"
	"github.com/advitiya-sood/RAG-chatbot-frontend-test/internal/widget"
)

const (
	SendLabel    = "Send"
	SendingLabel = "…"
	// warnAt is the input length above which the counter turns red.
	warnAt = widget.MaxInputChars * 85 / 100
)

// =============================================================================
// MAIN RENDER
// =============================================================================

// View renders the launcher while closed and the full widget while open.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}
	if !m.ctrl.IsOpen() {
		return lipgloss.PlaceVertical(m.height, lipgloss.Bottom, components.Launcher(m.theme, m.width))
	}

	inner := m.innerWidth()
	header := components.NewHeader(m.theme)
	header.SetWidth(inner)

	sections := []string{header.View(), m.viewport.View()}
	if chips := m.renderChips(); chips != "" {
		sections = append(sections, chips)
	}
	if m.status != "" {
		sections = append(sections, m.theme.CharCountWarning.Render(m.status))
	}
	sections = append(sections,
		m.renderInput(),
		components.Footer(m.theme, inner),
		m.help.View(m.keyMap),
	)
	return m.theme.Frame.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

// innerWidth is the width inside the frame border.
func (m Model) innerWidth() int {
	w := m.width - m.theme.Frame.GetHorizontalFrameSize()
	if w < 20 {
		w = 20
	}
	return w
}

// =============================================================================
// SECTIONS
// =============================================================================

func (m Model) renderChips() string {
	chips := m.ctrl.Chips()
	if len(chips) == 0 {
		return ""
	}
	label := "Suggested follow-ups"
	if m.ctrl.StarterQuestions() != nil {
		label = "Try asking"
	}
	row := components.NewChipRow(m.theme, label, chips)
	row.Width = m.innerWidth()
	row.Selected = m.chipIndex
	return row.View()
}

// renderInput draws the input line with its counter and send button.
func (m Model) renderInput() string {
	count := util.RuneLen(m.ctrl.Input())
	counterStyle := m.theme.CharCount
	if count > warnAt {
		counterStyle = m.theme.CharCountWarning
	}
	counter := counterStyle.Render(fmt.Sprintf("%d/%d", count, widget.MaxInputChars))

	label, sendStyle := SendLabel, m.theme.SendDisabled
	if m.ctrl.Awaiting() {
		label = SendingLabel
	} else if m.ctrl.CanSend() {
		sendStyle = m.theme.SendEnabled
	}
	send := sendStyle.Render(label)

	right := counter + " " + send
	inputWidth := m.innerWidth() - lipgloss.Width(right) - 1
	if inputWidth < 5 {
		inputWidth = 5
	}
	ti := m.input
	ti.Width = inputWidth - lipgloss.Width(ti.Prompt) - 1
	field := lipgloss.NewStyle().Width(inputWidth).Render(ti.View())

	return m.theme.InputContainer.Width(m.innerWidth()).Render(
		lipgloss.JoinHorizontal(lipgloss.Center, field, " ", right),
	)
}

// renderMessages draws the log plus the typing indicator.
func (m Model) renderMessages() string {
	msgs := m.ctrl.Messages()
	copied, hasCopied := m.ctrl.CopiedIndex()

	parts := make([]string, 0, len(msgs)+1)
	for i, msg := range msgs {
		b := components.NewMessageBubble(msg, m.theme)
		b.SetWidth(m.viewport.Width)
		b.ShowTimestamp = m.showTimestamps
		b.Selected = m.selectedID != "" && msg.ID == m.selectedID
		b.Copied = hasCopied && i == copied
		parts = append(parts, b.View())
	}
	if m.ctrl.Awaiting() {
		parts = append(parts, components.TypingIndicator(m.theme, m.spinner.View()))
	}
	return strings.Join(parts, "\n\n")
}

// =============================================================================
// LAYOUT
// =============================================================================

// layout sizes the viewport to whatever the fixed sections leave over.
func (m *Model) layout() {
	if m.width == 0 || m.height == 0 {
		return
	}
	inner := m.innerWidth()
	m.viewport.Width = inner

	fixed := 1 + // header
		lipgloss.Height(m.renderInput()) +
		1 + // footer
		1 + // help
		m.theme.Frame.GetVerticalFrameSize()
	if chips := m.renderChips(); chips != "" {
		fixed += lipgloss.Height(chips)
	}
	if m.status != "" {
		fixed++
	}
	h := m.height - fixed
	if h < 3 {
		h = 3
	}
	m.viewport.Height = h
}

// refresh re-renders the log and follows new messages.
func (m *Model) refresh() {
	m.layout()
	m.refreshContent(true)
}

// refreshContent rebuilds the viewport. With follow set it jumps to the
// bottom when the log grew or the typing indicator toggled.
func (m *Model) refreshContent(follow bool) {
	m.viewport.SetContent(m.renderMessages())

	count, awaiting := len(m.ctrl.Messages()), m.ctrl.Awaiting()
	if follow && (count != m.lastCount || awaiting != m.lastAwaiting) {
		m.viewport.GotoBottom()
	}
	m.lastCount, m.lastAwaiting = count, awaiting
}
