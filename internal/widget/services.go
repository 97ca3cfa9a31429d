// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package widget

import (
	"context"
	"sync"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/advitiya-sood/RAG-chatbot-frontend-test/internal/gateway"
	"github.com/advitiya-sood/RAG-chatbot-frontend-test/internal/model"
)

// =============================================================================
// COLLABORATORS
// =============================================================================

// Asker answers questions. *gateway.Client satisfies it.
type Asker interface {
	Ask(ctx context.Context, question string, history []model.HistoryEntry) (*gateway.Answer, error)
}

// Clipboard receives copied answers.
type Clipboard interface {
	WriteAll(text string) error
}

// Scheduler produces a command that delivers msg after d.
type Scheduler interface {
	After(d time.Duration, msg tea.Msg) tea.Cmd
}

// SystemClipboard writes to the OS clipboard.
type SystemClipboard struct{}

// WriteAll copies text to the system clipboard.
func (SystemClipboard) WriteAll(text string) error {
	return clipboard.WriteAll(text)
}

// TickScheduler delays messages with tea.Tick.
type TickScheduler struct{}

// After returns a tea.Tick command that yields msg once d has elapsed.
func (TickScheduler) After(d time.Duration, msg tea.Msg) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return msg
	})
}

// =============================================================================
// CANCEL FUNCTION MANAGEMENT (THREAD-SAFE)
// =============================================================================

// cancelManager guards the cancel function of the in-flight request. The
// request goroutine and the update loop may both touch it.
type cancelManager struct {
	mu         sync.Mutex
	cancelFunc context.CancelFunc
}

func newCancelManager() *cancelManager {
	return &cancelManager{}
}

// set replaces the stored cancel function, cancelling the previous one.
func (cm *cancelManager) set(fn context.CancelFunc) {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	if cm.cancelFunc != nil {
		cm.cancelFunc()
	}
	cm.cancelFunc = fn
}

// clear cancels the context (if present) and removes the cancel function.
// Safe to call multiple times or with no cancel function set.
func (cm *cancelManager) clear() {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	if cm.cancelFunc != nil {
		cm.cancelFunc()
		cm.cancelFunc = nil
	}
}

// active reports whether a cancel function is stored.
func (cm *cancelManager) active() bool {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	return cm.cancelFunc != nil
}
