// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"github.com/charmbracelet/bubbles/key"
)

// =============================================================================
// KEY MAP DEFINITION
// =============================================================================

// KeyMap defines all keyboard bindings for the widget.
type KeyMap struct {
	Submit     key.Binding
	NextChip   key.Binding
	PrevChip   key.Binding
	SelectUp   key.Binding
	SelectDown key.Binding
	Copy       key.Binding
	Clear      key.Binding
	Toggle     key.Binding
	PageUp     key.Binding
	PageDown   key.Binding
	Quit       key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "send"),
		),
		NextChip: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next suggestion"),
		),
		PrevChip: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("S-tab", "prev suggestion"),
		),
		SelectUp: key.NewBinding(
			key.WithKeys("alt+up"),
			key.WithHelp("M-up", "select previous"),
		),
		SelectDown: key.NewBinding(
			key.WithKeys("alt+down"),
			key.WithHelp("M-down", "select next"),
		),
		Copy: key.NewBinding(
			key.WithKeys("ctrl+y"),
			key.WithHelp("C-y", "copy answer"),
		),
		Clear: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("C-l", "clear chat"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("esc", "ctrl+o"),
			key.WithHelp("esc", "open/close"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("PgUp", "scroll up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("PgDn", "scroll down"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("C-c", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.NextChip, k.Copy, k.Clear, k.Toggle}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Submit, k.NextChip, k.PrevChip},
		{k.SelectUp, k.SelectDown, k.PageUp, k.PageDown},
		{k.Copy, k.Clear, k.Toggle, k.Quit},
	}
}
