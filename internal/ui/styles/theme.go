// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds all the styled components for the widget.
// It detects the terminal's color capability and adjusts accordingly.
type Theme struct {
	// Terminal capabilities
	Mode         string
	IsDark       bool
	ColorProfile termenv.Profile

	// Launcher and frame
	Launcher lipgloss.Style
	Frame    lipgloss.Style

	// Header
	Header        lipgloss.Style
	HeaderTitle   lipgloss.Style
	HeaderOnline  lipgloss.Style
	HeaderButtons lipgloss.Style

	// Messages
	UserBubble     lipgloss.Style
	BotBubble      lipgloss.Style
	SelectedBorder lipgloss.Color
	Meta           lipgloss.Style
	CopyButton     lipgloss.Style
	CopiedButton   lipgloss.Style
	Typing         lipgloss.Style

	// Answer blocks
	Bold            lipgloss.Style
	Italic          lipgloss.Style
	Code            lipgloss.Style
	ListMarker      lipgloss.Style
	CitationBox     lipgloss.Style
	CitationLabel   lipgloss.Style
	CitationText    lipgloss.Style
	PreviewTitle    lipgloss.Style
	PreviewText     lipgloss.Style

	// Suggestions
	ChipLabel    lipgloss.Style
	Chip         lipgloss.Style
	ChipSelected lipgloss.Style

	// Input area
	InputContainer   lipgloss.Style
	CharCount        lipgloss.Style
	CharCountWarning lipgloss.Style
	SendEnabled      lipgloss.Style
	SendDisabled     lipgloss.Style

	// Footer
	Footer lipgloss.Style
	Help   lipgloss.Style
}

// NewTheme creates a theme for mode ("dark", "light" or "auto").
// With noColor all colors are stripped.
func NewTheme(mode string, noColor bool) *Theme {
	profile := termenv.ColorProfile()
	if noColor {
		profile = termenv.Ascii
	}
	lipgloss.SetColorProfile(profile)

	mode = strings.ToLower(mode)
	var isDark bool
	switch mode {
	case "dark":
		isDark = true
	case "light":
		isDark = false
	default:
		mode = "auto"
		isDark = termenv.HasDarkBackground()
	}
	lipgloss.SetHasDarkBackground(isDark)

	t := &Theme{
		Mode:         mode,
		IsDark:       isDark,
		ColorProfile: profile,
	}
	t.initStyles()
	return t
}

// initStyles initializes all the lip gloss styles.
func (t *Theme) initStyles() {
	t.Launcher = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextInverse).
		Background(Purple).
		Padding(0, 2)

	t.Frame = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Purple)

	// Header
	t.Header = lipgloss.NewStyle().
		Background(SurfaceDim).
		Padding(0, 1)

	t.HeaderTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(Purple)

	t.HeaderOnline = lipgloss.NewStyle().
		Foreground(Emerald)

	t.HeaderButtons = lipgloss.NewStyle().
		Foreground(TextSecondary)

	// Message bubbles
	t.UserBubble = lipgloss.NewStyle().
		Foreground(UserBubbleFg).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(UserBubbleBorder).
		Padding(0, 1)

	t.BotBubble = lipgloss.NewStyle().
		Foreground(BotBubbleFg).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(BotBubbleBorder).
		Padding(0, 1)

	t.SelectedBorder = lipgloss.Color(SelectionBorder.Dark)
	if !t.IsDark {
		t.SelectedBorder = lipgloss.Color(SelectionBorder.Light)
	}

	t.Meta = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.CopyButton = lipgloss.NewStyle().
		Foreground(TextSecondary)

	t.CopiedButton = lipgloss.NewStyle().
		Foreground(Emerald).
		Bold(true)

	t.Typing = lipgloss.NewStyle().
		Foreground(Purple)

	// Answer blocks
	t.Bold = lipgloss.NewStyle().Bold(true)
	t.Italic = lipgloss.NewStyle().Italic(true)
	t.Code = lipgloss.NewStyle().
		Foreground(Amber).
		Background(CodeBg)

	t.ListMarker = lipgloss.NewStyle().
		Foreground(Purple)

	t.CitationBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderLeft(true).
		BorderForeground(Amber).
		PaddingLeft(1)

	t.CitationLabel = lipgloss.NewStyle().
		Bold(true).
		Foreground(Amber)

	t.CitationText = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Italic(true)

	t.PreviewTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextSecondary)

	t.PreviewText = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	// Suggestions
	t.ChipLabel = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.Chip = lipgloss.NewStyle().
		Foreground(Cyan).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(0, 1)

	t.ChipSelected = t.Chip.
		BorderForeground(Cyan).
		Bold(true)

	// Input area
	t.InputContainer = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderTop(true).
		BorderForeground(Overlay)

	t.CharCount = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.CharCountWarning = lipgloss.NewStyle().
		Foreground(Rose).
		Bold(true)

	t.SendEnabled = lipgloss.NewStyle().
		Foreground(TextInverse).
		Background(Purple).
		Padding(0, 1)

	t.SendDisabled = lipgloss.NewStyle().
		Foreground(TextMuted).
		Background(Overlay).
		Padding(0, 1)

	// Footer
	t.Footer = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	t.Help = lipgloss.NewStyle().
		Foreground(TextMuted)
}
