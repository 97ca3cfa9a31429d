// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/advitiya-sood/RAG-chatbot-frontend-test/internal/config"
	"github.com/advitiya-sood/RAG-chatbot-frontend-test/internal/gateway"
	"github.com/advitiya-sood/RAG-chatbot-frontend-test/internal/model"
	"github.com/advitiya-sood/RAG-chatbot-frontend-test/internal/ui/components"
	"github.com/advitiya-sood/RAG-chatbot-frontend-test/internal/ui/styles"
	"github.com/advitiya-sood/RAG-chatbot-frontend-test/internal/widget"
)

// =============================================================================
// FAKES
// =============================================================================

type stubAsker struct {
	mu        sync.Mutex
	questions []string
	answer    *gateway.Answer
	err       error
}

func (a *stubAsker) Ask(_ context.Context, question string, _ []model.HistoryEntry) (*gateway.Answer, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.questions = append(a.questions, question)
	return a.answer, a.err
}

type memClipboard struct{ text string }

func (c *memClipboard) WriteAll(text string) error {
	c.text = text
	return nil
}

// immediateScheduler delivers scheduled messages without waiting.
type immediateScheduler struct{}

func (immediateScheduler) After(_ time.Duration, msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}

type harness struct {
	m     tea.Model
	asker *stubAsker
	clip  *memClipboard
}

func newHarness(t *testing.T, answer *gateway.Answer) *harness {
	t.Helper()
	asker := &stubAsker{answer: answer}
	clip := &memClipboard{}
	ctrl := widget.New(widget.Options{
		Asker:     asker,
		Clipboard: clip,
		Scheduler: immediateScheduler{},
		StartOpen: true,
	})
	m := New(styles.NewTheme("dark", true), Options{Controller: ctrl, ShowTimestamps: true})
	h := &harness{m: m, asker: asker, clip: clip}
	h.send(tea.WindowSizeMsg{Width: 90, Height: 40})
	return h
}

func (h *harness) ctrl() *widget.Controller {
	return h.m.(Model).Controller()
}

// send feeds msg to the model and runs the resulting commands.
func (h *harness) send(msg tea.Msg) {
	var cmd tea.Cmd
	h.m, cmd = h.m.Update(msg)
	h.run(cmd)
}

// run executes cmd and feeds widget results back in. Commands that block
// (spinner ticks, cursor blinks) are abandoned after a short wait.
func (h *harness) run(cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()

	var msg tea.Msg
	select {
	case msg = <-done:
	case <-time.After(50 * time.Millisecond):
		return
	}

	switch msg := msg.(type) {
	case tea.BatchMsg:
		for _, c := range msg {
			h.run(c)
		}
	case widget.AnswerMsg, widget.HRReplyMsg, widget.CopyExpiredMsg, ConfigReloadedMsg:
		h.send(msg)
	}
}

func (h *harness) typeText(s string) {
	h.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

// =============================================================================
// TESTS
// =============================================================================

func TestModel_SendAndRenderAnswer(t *testing.T) {
	h := newHarness(t, &gateway.Answer{
		Answer:            "You get **20** days.\n\nCitation:\n[1] Leave Policy",
		Sources:           []model.SourcePreview{{Preview: "twenty days"}},
		FollowUpQuestions: []string{"Can I carry leave over?"},
	})

	h.typeText("How much leave?")
	require.Contains(t, h.m.View(), "15/200")

	h.send(tea.KeyMsg{Type: tea.KeyEnter})

	require.Equal(t, []string{"How much leave?"}, h.asker.questions)
	msgs := h.ctrl().Messages()
	require.Len(t, msgs, 3)
	require.False(t, h.ctrl().Awaiting())

	view := h.m.View()
	require.Contains(t, view, "You get 20 days.")
	require.Contains(t, view, "📎 Source")
	require.Contains(t, view, "Can I carry leave over?")
	require.Contains(t, view, "0/200")
}

func TestModel_ToggleShowsLauncher(t *testing.T) {
	h := newHarness(t, &gateway.Answer{Answer: "ok"})

	h.send(tea.KeyMsg{Type: tea.KeyEsc})
	require.False(t, h.ctrl().IsOpen())
	require.Contains(t, h.m.View(), components.LauncherLabel)

	// Typing while closed does nothing.
	h.typeText("hello")
	require.Empty(t, h.ctrl().Input())

	h.send(tea.KeyMsg{Type: tea.KeyCtrlO})
	require.True(t, h.ctrl().IsOpen())
	require.Contains(t, h.m.View(), components.DefaultTitle)
}

func TestModel_StarterChipViaTab(t *testing.T) {
	h := newHarness(t, &gateway.Answer{Answer: "Policy answer"})
	require.Contains(t, h.m.View(), "Try asking")

	h.send(tea.KeyMsg{Type: tea.KeyTab})
	h.send(tea.KeyMsg{Type: tea.KeyEnter})

	require.Equal(t, []string{widget.StarterQuestions[0]}, h.asker.questions)
	require.NotContains(t, h.m.View(), "Try asking")
}

func TestModel_ShiftTabWrapsToLastChip(t *testing.T) {
	h := newHarness(t, &gateway.Answer{Answer: "Policy answer"})

	h.send(tea.KeyMsg{Type: tea.KeyShiftTab})
	h.send(tea.KeyMsg{Type: tea.KeyEnter})

	last := widget.StarterQuestions[len(widget.StarterQuestions)-1]
	require.Equal(t, []string{last}, h.asker.questions)
}

func TestModel_CopyLatestAnswer(t *testing.T) {
	h := newHarness(t, &gateway.Answer{Answer: "Body text\n\nCitation:\n[1] Doc"})
	h.typeText("q")
	h.send(tea.KeyMsg{Type: tea.KeyEnter})

	var cmd tea.Cmd
	h.m, cmd = h.m.Update(tea.KeyMsg{Type: tea.KeyCtrlY})
	require.NotNil(t, cmd)
	require.Equal(t, "Body text", h.clip.text)
	require.Contains(t, h.m.View(), components.CopiedLabel)

	// Expiry flips the button back.
	h.run(cmd)
	_, on := h.ctrl().CopiedIndex()
	require.False(t, on)
}

func TestModel_CopyWithoutAnswerUsesGreeting(t *testing.T) {
	h := newHarness(t, nil)
	h.send(tea.KeyMsg{Type: tea.KeyCtrlY})
	require.Equal(t, model.GreetingText, h.clip.text)
}

func TestModel_SelectionShowsPreview(t *testing.T) {
	h := newHarness(t, &gateway.Answer{
		Answer:  "See below.\nCitation:\n[1] Handbook",
		Sources: []model.SourcePreview{{Preview: "handbook passage"}},
	})
	h.typeText("q")
	h.send(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotContains(t, h.m.View(), "Passage Preview")

	h.send(tea.KeyMsg{Type: tea.KeyUp, Alt: true})
	require.Contains(t, h.m.View(), "Passage Preview")

	h.send(tea.KeyMsg{Type: tea.KeyDown, Alt: true})
	require.NotContains(t, h.m.View(), "Passage Preview")
}

func TestModel_SelectionFollowsMessageNotPosition(t *testing.T) {
	h := newHarness(t, &gateway.Answer{
		Answer:  "See below.\nCitation:\n[1] Handbook",
		Sources: []model.SourcePreview{{Preview: "handbook passage"}},
	})
	h.typeText("q")
	h.send(tea.KeyMsg{Type: tea.KeyEnter})
	h.send(tea.KeyMsg{Type: tea.KeyUp, Alt: true})
	require.Contains(t, h.m.View(), "Passage Preview")

	// A new exchange lands at the same position after the log is reset.
	h.ctrl().ClearChat()
	h.run(h.ctrl().SendMessage("again"))
	h.send(tea.WindowSizeMsg{Width: 90, Height: 40})
	require.Len(t, h.ctrl().Messages(), 3)
	require.NotContains(t, h.m.View(), "Passage Preview")

	h.send(tea.KeyMsg{Type: tea.KeyCtrlY})
	require.Equal(t, "See below.\nCitation:\n[1] Handbook", h.clip.text)
}

func TestModel_ClearResets(t *testing.T) {
	h := newHarness(t, &gateway.Answer{Answer: "ok"})
	h.typeText("q")
	h.send(tea.KeyMsg{Type: tea.KeyEnter})
	require.Len(t, h.ctrl().Messages(), 3)

	h.send(tea.KeyMsg{Type: tea.KeyCtrlL})
	require.Len(t, h.ctrl().Messages(), 1)
	require.Contains(t, h.m.View(), "Try asking")
}

func TestModel_HRPhrase(t *testing.T) {
	h := newHarness(t, &gateway.Answer{Answer: "unused"})
	h.typeText(widget.HRPhrase)
	h.send(tea.KeyMsg{Type: tea.KeyEnter})

	require.Empty(t, h.asker.questions)
	last := h.ctrl().Messages()[2]
	require.Equal(t, widget.HRReply, last.Text)
}

func TestModel_ErrorShowsApology(t *testing.T) {
	h := newHarness(t, nil)
	h.asker.err = &gateway.Error{Kind: gateway.KindUnreachable, Message: "down"}
	h.typeText("q")
	h.send(tea.KeyMsg{Type: tea.KeyEnter})

	require.Contains(t, h.m.View(), "trouble connecting")
}

func TestModel_CounterWarnsNearLimit(t *testing.T) {
	h := newHarness(t, nil)
	h.typeText(strings.Repeat("a", 250))
	require.Len(t, h.ctrl().Input(), widget.MaxInputChars)
	require.Contains(t, h.m.View(), "200/200")
}

func TestModel_QuitShutsDown(t *testing.T) {
	h := newHarness(t, nil)
	_, cmd := h.m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	require.Equal(t, tea.QuitMsg{}, cmd())
	require.Nil(t, h.ctrl().SendMessage("after quit"))
}

func TestModel_ConfigReload(t *testing.T) {
	config.ResetGlobalForTesting()
	defer config.ResetGlobalForTesting()

	client := gateway.NewClientWithConfig(gateway.DefaultConfig())
	updates := make(chan *config.Config, 1)
	ctrl := widget.New(widget.Options{Asker: &stubAsker{}, StartOpen: true, Scheduler: immediateScheduler{}})
	m := New(styles.NewTheme("dark", true), Options{
		Controller:    ctrl,
		Client:        client,
		ConfigUpdates: updates,
	})

	cfg := config.Default()
	cfg.API.BaseURL = "http://reloaded:9000"
	cfg.UI.ShowTimestamps = false
	updates <- cfg

	msg := WaitForConfig(updates)()
	next, cmd := m.Update(msg)
	require.NotNil(t, cmd)
	require.Equal(t, "http://reloaded:9000", client.BaseURL())
	require.False(t, next.(Model).showTimestamps)
	require.Equal(t, "http://reloaded:9000", config.Global().API.BaseURL)

	close(updates)
	require.Nil(t, cmd())
}
