// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"log"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/advitiya-sood/RAG-chatbot-frontend-test/internal/config"
	"github.com/advitiya-sood/RAG-chatbot-frontend-test/internal/gateway"
	"github.com/advitiya-sood/RAG-chatbot-frontend-test/internal/model"
	"github.com/advitiya-sood/RAG-chatbot-frontend-test/internal/ui/styles"
	"github.com/advitiya-sood/RAG-chatbot-frontend-test/internal/widget"
)

// Placeholder is shown in the empty input.
const Placeholder = "Ask about policies, leave..."

// =============================================================================
// CHAT MODEL
// =============================================================================

// Options wires a Model to its collaborators.
type Options struct {
	// Controller holds the conversation. Required.
	Controller *widget.Controller
	// Client, when set, receives backend settings from reloaded configs.
	Client *gateway.Client
	// ConfigUpdates delivers configs reloaded from disk.
	ConfigUpdates <-chan *config.Config
	// ShowTimestamps shows HH:MM under each message.
	ShowTimestamps bool
	// NoColor is kept when the theme is rebuilt on reload.
	NoColor bool
	// Override re-applies command-line flags to reloaded configs.
	Override func(*config.Config)
}

// Model is the Bubble Tea model for the widget.
type Model struct {
	ctrl   *widget.Controller
	client *gateway.Client

	theme   *styles.Theme
	noColor bool

	width  int
	height int

	viewport viewport.Model
	input    textinput.Model
	spinner  spinner.Model
	help     help.Model
	keyMap   KeyMap

	showTimestamps bool

	// selectedID is the ID of the highlighted message, empty for none.
	selectedID string
	// chipIndex is the highlighted suggestion chip, -1 for none.
	chipIndex int
	status    string

	configUpdates <-chan *config.Config
	override      func(*config.Config)

	// lastCount and lastAwaiting detect log growth so the viewport only
	// follows the bottom when something new arrived.
	lastCount    int
	lastAwaiting bool
}

// New creates the widget model.
func New(theme *styles.Theme, opts Options) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = Placeholder
	ti.CharLimit = widget.MaxInputChars
	ti.Focus()

	vp := viewport.New(60, 10)
	vp.SetContent("")

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := Model{
		ctrl:           opts.Controller,
		client:         opts.Client,
		theme:          theme,
		noColor:        opts.NoColor,
		viewport:       vp,
		input:          ti,
		spinner:        sp,
		help:           help.New(),
		keyMap:         DefaultKeyMap(),
		showTimestamps: opts.ShowTimestamps,
		chipIndex:      -1,
		configUpdates:  opts.ConfigUpdates,
		override:       opts.Override,
	}
	m.refresh()
	return m
}

// Controller returns the controller backing the model.
func (m Model) Controller() *widget.Controller {
	return m.ctrl
}

// =============================================================================
// BUBBLE TEA INTERFACE
// =============================================================================

// Init starts the cursor blink and the config watcher.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, WaitForConfig(m.configUpdates))
}

// Update handles a message and returns the updated model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		// Let the tick loop die while idle; sending restarts it.
		if !m.ctrl.Awaiting() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		m.refresh()
		return m, cmd

	case ConfigReloadedMsg:
		m.applyConfig(msg.Config)
		return m, WaitForConfig(m.configUpdates)

	case StatusMsg:
		m.status = msg.Text
		return m, nil

	case widget.AnswerMsg, widget.HRReplyMsg, widget.CopyExpiredMsg:
		if m.ctrl.Update(msg) {
			m.chipIndex = -1
			m.syncInput()
			m.refresh()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// =============================================================================
// KEY HANDLING
// =============================================================================

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keys := m.keyMap

	if matches(msg, keys.Quit) {
		m.ctrl.Shutdown()
		return m, tea.Quit
	}

	if !m.ctrl.IsOpen() {
		// Any of the open keys brings the widget up; everything else is
		// ignored while collapsed.
		if matches(msg, keys.Toggle) || matches(msg, keys.Submit) {
			m.ctrl.Toggle()
			m.syncInput()
			m.refresh()
		}
		return m, nil
	}

	switch {
	case matches(msg, keys.Toggle):
		m.ctrl.Toggle()
		m.input.Blur()
		return m, nil

	case matches(msg, keys.Submit):
		return m.submit()

	case matches(msg, keys.NextChip):
		m.cycleChip(1)
		return m, nil

	case matches(msg, keys.PrevChip):
		m.cycleChip(-1)
		return m, nil

	case matches(msg, keys.SelectUp):
		m.moveSelection(-1)
		return m, nil

	case matches(msg, keys.SelectDown):
		m.moveSelection(1)
		return m, nil

	case matches(msg, keys.Copy):
		return m.copySelected()

	case matches(msg, keys.Clear):
		m.ctrl.ClearChat()
		m.selectedID, m.chipIndex, m.status = "", -1, ""
		m.input.SetValue("")
		m.ctrl.SetInput("")
		m.syncInput()
		m.refresh()
		return m, nil

	case matches(msg, keys.PageUp), matches(msg, keys.PageDown):
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	if m.ctrl.Awaiting() {
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.ctrl.SetInput(m.input.Value())
	if clamped := m.ctrl.Input(); clamped != m.input.Value() {
		m.input.SetValue(clamped)
	}
	m.chipIndex = -1
	m.status = ""
	m.layout()
	return m, cmd
}

// submit sends the highlighted chip if there is one, otherwise the typed
// text.
func (m Model) submit() (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	chips := m.ctrl.Chips()
	if m.chipIndex >= 0 && m.chipIndex < len(chips) {
		cmd = m.ctrl.ClickChip(chips[m.chipIndex])
	} else {
		cmd = m.ctrl.SubmitInput()
	}
	if cmd == nil {
		return m, nil
	}

	m.input.SetValue("")
	m.chipIndex, m.selectedID, m.status = -1, "", ""
	m.syncInput()
	m.refresh()

	if m.ctrl.Awaiting() {
		return m, tea.Batch(cmd, m.spinner.Tick)
	}
	return m, cmd
}

func (m *Model) cycleChip(step int) {
	chips := m.ctrl.Chips()
	if len(chips) == 0 {
		m.chipIndex = -1
		return
	}
	next := m.chipIndex + step
	switch {
	case m.chipIndex < 0 && step < 0:
		next = len(chips) - 1
	case next >= len(chips), next < 0:
		next = -1
	}
	m.chipIndex = next
	m.layout()
}

func (m *Model) moveSelection(step int) {
	msgs := m.ctrl.Messages()
	n := len(msgs)
	if n == 0 {
		return
	}
	current := m.selectedIndex(msgs)
	next := current + step
	switch {
	case current < 0 && step < 0:
		next = n - 1
	case current < 0:
		next = -1
	case next >= n:
		next = -1
	case next < 0:
		next = 0
	}
	m.selectedID = ""
	if next >= 0 {
		m.selectedID = msgs[next].ID
	}
	m.refreshContent(false)
}

// selectedIndex returns the position of the selected message in msgs, or -1
// when nothing is selected or the message is no longer in the log.
func (m Model) selectedIndex(msgs []model.Message) int {
	if m.selectedID == "" {
		return -1
	}
	for i, msg := range msgs {
		if msg.ID == m.selectedID {
			return i
		}
	}
	return -1
}

// copySelected copies the selected answer, or the latest answer when no
// answer is selected.
func (m Model) copySelected() (tea.Model, tea.Cmd) {
	index := m.copyTarget()
	if index < 0 {
		return m, nil
	}
	cmd, err := m.ctrl.CopyAnswer(index)
	if err != nil {
		log.Printf("COPY_REJECTED | index=%d error=%v", index, err)
		m.status = "Copy failed: " + err.Error()
		return m, nil
	}
	m.refreshContent(false)
	return m, cmd
}

func (m Model) copyTarget() int {
	msgs := m.ctrl.Messages()
	if i := m.selectedIndex(msgs); i >= 0 && msgs[i].IsBot() {
		return i
	}
	for i := len(msgs) - 1; i >= 0; i-- {
		if msgs[i].IsBot() {
			return i
		}
	}
	return -1
}

// =============================================================================
// CONFIG RELOAD
// =============================================================================

func (m *Model) applyConfig(cfg *config.Config) {
	if cfg == nil {
		return
	}
	if m.override != nil {
		m.override(cfg)
	}
	if m.client != nil {
		m.client.SetBaseURL(cfg.API.BaseURL)
		m.client.SetTimeout(cfg.API.Timeout())
	}
	m.theme = styles.NewTheme(cfg.UI.Theme, m.noColor || cfg.UI.NoColor)
	m.showTimestamps = cfg.UI.ShowTimestamps
	config.SetGlobal(cfg)
	log.Printf("CONFIG_APPLIED | base_url=%s theme=%s", cfg.API.BaseURL, cfg.UI.Theme)
	m.refresh()
}

// =============================================================================
// HELPERS
// =============================================================================

func matches(msg tea.KeyMsg, b key.Binding) bool {
	return key.Matches(msg, b)
}

// syncInput focuses the input only while sending is possible.
func (m *Model) syncInput() {
	if m.ctrl.IsOpen() && !m.ctrl.Awaiting() {
		m.input.Focus()
	} else {
		m.input.Blur()
	}
}
