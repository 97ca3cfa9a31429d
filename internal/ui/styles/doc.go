// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the chat widget.
//
// Colors are lipgloss.AdaptiveColor values so the same palette works on
// dark and light terminals. NewTheme detects the background with termenv,
// or forces it when the config names a theme, and builds every
// lipgloss.Style the widget renders with.
//
//	theme := styles.NewTheme(cfg.UI.Theme, cfg.UI.NoColor)
//	fmt.Println(theme.HeaderTitle.Render("Bhavna Corp Assistant"))
package styles
