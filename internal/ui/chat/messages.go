// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/advitiya-sood/RAG-chatbot-frontend-test/internal/config"
)

// =============================================================================
// CONFIG MESSAGES
// =============================================================================

// ConfigReloadedMsg carries a config that was edited on disk.
type ConfigReloadedMsg struct {
	Config *config.Config
}

// WaitForConfig blocks until the next reloaded config arrives. It yields
// nothing once the channel is closed.
func WaitForConfig(updates <-chan *config.Config) tea.Cmd {
	if updates == nil {
		return nil
	}
	return func() tea.Msg {
		cfg, ok := <-updates
		if !ok {
			return nil
		}
		return ConfigReloadedMsg{Config: cfg}
	}
}

// =============================================================================
// STATUS MESSAGES
// =============================================================================

// StatusMsg shows a transient line above the input, e.g. a copy failure.
type StatusMsg struct {
	Text string
}
