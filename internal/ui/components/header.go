// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/advitiya-sood/RAG-chatbot-frontend-test/internal/ui/styles"
)

// =============================================================================
// HEADER COMPONENT
// =============================================================================

const (
	DefaultTitle  = "Bhavna Corp Assistant"
	OnlineLabel   = "● Online"
	FooterText    = "Powered by comprehensive company documentation"
	LauncherLabel = "💬 Chat"
)

// Header is the widget title bar.
type Header struct {
	Title string
	Width int
	theme *styles.Theme
}

// NewHeader creates a header with the default title.
func NewHeader(theme *styles.Theme) *Header {
	return &Header{Title: DefaultTitle, Width: 80, theme: theme}
}

// SetWidth updates the header width.
func (h *Header) SetWidth(width int) {
	h.Width = width
}

// View renders title and status on the left, button hints on the right.
func (h *Header) View() string {
	left := h.theme.HeaderTitle.Render(h.Title) + "  " + h.theme.HeaderOnline.Render(OnlineLabel)
	right := h.theme.HeaderButtons.Render("ctrl+l clear · esc close")

	inner := h.Width - h.theme.Header.GetHorizontalFrameSize()
	gap := inner - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		// Too narrow for hints.
		return h.theme.Header.Width(h.Width).Render(left)
	}
	return h.theme.Header.Width(h.Width).Render(left + strings.Repeat(" ", gap) + right)
}

// =============================================================================
// LAUNCHER AND FOOTER
// =============================================================================

// Launcher renders the collapsed widget button, right-aligned in width.
func Launcher(theme *styles.Theme, width int) string {
	btn := theme.Launcher.Render(LauncherLabel)
	hint := theme.Help.Render("esc to open · ctrl+c to quit")
	block := lipgloss.JoinVertical(lipgloss.Right, btn, hint)
	return lipgloss.PlaceHorizontal(width, lipgloss.Right, block)
}

// Footer renders the attribution line centred in width.
func Footer(theme *styles.Theme, width int) string {
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, theme.Footer.Render(FooterText))
}
