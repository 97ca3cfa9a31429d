// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package widget

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/text/unicode/norm"

	"github.com/advitiya-sood/RAG-chatbot-frontend-test/internal/gateway"
	"github.com/advitiya-sood/RAG-chatbot-frontend-test/internal/markup"
	"github.com/advitiya-sood/RAG-chatbot-frontend-test/internal/model"
)

// =============================================================================
// CONSTANTS
// =============================================================================

const (
	// MaxInputChars is the longest question the input box accepts.
	MaxInputChars = 200

	// HRPhrase is the escape hatch that skips the backend entirely.
	HRPhrase = "I am not satisfied with responses and wanted to speak to HR"

	// HRReply is the canned answer to HRPhrase.
	HRReply = "Sure, you can reach out to respective location HR SPOC and discuss your concerns"

	// HRReplyDelay is how long the canned HR answer takes to appear.
	HRReplyDelay = 500 * time.Millisecond

	// CopiedIndicatorDuration is how long the copied indicator stays on.
	CopiedIndicatorDuration = 2000 * time.Millisecond

	// ApologyText replaces any failed answer except rate limiting.
	ApologyText = "Sorry, I'm having trouble connecting to the server. Please try again in a moment."
)

// StarterQuestions are offered on a fresh conversation.
var StarterQuestions = []string{
	"What's the leave policy?",
	"Tell me about employee benefits",
	"Who is the CEO of Bhavna Corp?",
}

// Errors returned by CopyAnswer.
var (
	ErrNoSuchMessage = errors.New("no message at that index")
	ErrNotCopyable   = errors.New("only assistant answers can be copied")
)

// =============================================================================
// STATE
// =============================================================================

// State is the controller's externally visible state.
type State int

const (
	StateClosed State = iota
	StateOpenIdle
	StateOpenAwaiting
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpenIdle:
		return "open-idle"
	case StateOpenAwaiting:
		return "open-awaiting"
	default:
		return "unknown"
	}
}

// =============================================================================
// CONTROLLER
// =============================================================================

// Options configures a Controller. Zero values fall back to defaults.
type Options struct {
	Asker     Asker
	Clipboard Clipboard
	Scheduler Scheduler
	// StartOpen opens the widget immediately.
	StartOpen bool
	// Greeting overrides model.GreetingText.
	Greeting string
}

// Controller is the widget's state machine. Each Controller is independent;
// it is not safe for concurrent use and is meant to be driven from a single
// update loop.
type Controller struct {
	conv      *model.Conversation
	asker     Asker
	clipboard Clipboard
	scheduler Scheduler

	open  bool
	input string

	copiedIndex int
	copyToken   uint64

	cancelMgr *cancelManager
	shutdown  bool
}

// New creates a controller with a fresh conversation.
func New(opts Options) *Controller {
	if opts.Asker == nil {
		opts.Asker = gateway.NewClient()
	}
	if opts.Clipboard == nil {
		opts.Clipboard = SystemClipboard{}
	}
	if opts.Scheduler == nil {
		opts.Scheduler = TickScheduler{}
	}
	conv := model.NewConversation()
	if opts.Greeting != "" {
		conv = model.NewConversationWithGreeting(opts.Greeting)
	}
	return &Controller{
		conv:        conv,
		asker:       opts.Asker,
		clipboard:   opts.Clipboard,
		scheduler:   opts.Scheduler,
		open:        opts.StartOpen,
		copiedIndex: -1,
		cancelMgr:   newCancelManager(),
	}
}

// State returns closed, open-idle or open-awaiting.
func (c *Controller) State() State {
	switch {
	case !c.open:
		return StateClosed
	case c.conv.Awaiting():
		return StateOpenAwaiting
	default:
		return StateOpenIdle
	}
}

// IsOpen reports whether the widget is open.
func (c *Controller) IsOpen() bool { return c.open }

// Awaiting reports whether a backend answer is pending.
func (c *Controller) Awaiting() bool { return c.conv.Awaiting() }

// Messages returns a copy of the message log.
func (c *Controller) Messages() []model.Message { return c.conv.Messages() }

// Generation returns the current conversation generation.
func (c *Controller) Generation() uint64 { return c.conv.Generation() }

// Toggle opens or closes the widget. A pending request keeps running.
func (c *Controller) Toggle() {
	c.open = !c.open
	log.Printf("WIDGET_TOGGLE | open=%v awaiting=%v", c.open, c.conv.Awaiting())
}

// =============================================================================
// INPUT
// =============================================================================

// SetInput replaces the input text, truncated to MaxInputChars runes.
func (c *Controller) SetInput(s string) {
	c.input = ClampInput(s)
}

// Input returns the current input text.
func (c *Controller) Input() string { return c.input }

// CanSend reports whether the send action is enabled.
func (c *Controller) CanSend() bool {
	return c.open && !c.shutdown && !c.conv.Awaiting() && strings.TrimSpace(c.input) != ""
}

// ClampInput truncates s to MaxInputChars runes without otherwise changing
// it. A cut that would separate a combining mark from its base character
// backs off to before that character.
func ClampInput(s string) string {
	n := 0
	for i := range s {
		if n < MaxInputChars {
			n++
			continue
		}
		if norm.NFC.FirstBoundaryInString(s[i:]) == 0 {
			return s[:i]
		}
		if b := norm.NFC.LastBoundary([]byte(s[:i])); b >= 0 {
			return s[:b]
		}
		return s[:i]
	}
	return s
}

// =============================================================================
// SENDING
// =============================================================================

// SubmitInput sends the current input text.
func (c *Controller) SubmitInput() tea.Cmd {
	return c.SendMessage(c.input)
}

// ClickChip sends a starter or follow-up question.
func (c *Controller) ClickChip(question string) tea.Cmd {
	return c.SendMessage(question)
}

// SendMessage appends text as a user message and starts answering it.
//
// Blank text, a closed widget and a pending answer make it a no-op. The HR
// phrase is answered locally after HRReplyDelay without touching the
// backend, the history or the awaiting state. Anything else enters the
// awaiting state and returns the command that asks the backend.
func (c *Controller) SendMessage(text string) tea.Cmd {
	if c.shutdown || !c.open || c.conv.Awaiting() || strings.TrimSpace(text) == "" {
		return nil
	}

	c.conv.Append(model.NewUserMessage(text))
	c.input = ""
	gen := c.conv.Generation()

	if text == HRPhrase {
		log.Printf("HR_HANDOFF | generation=%d", gen)
		return c.scheduler.After(HRReplyDelay, HRReplyMsg{Generation: gen})
	}

	if err := c.conv.BeginRequest(); err != nil {
		return nil
	}

	history := c.conv.RecentHistory()
	ctx, cancel := context.WithCancel(context.Background())
	c.cancelMgr.set(cancel)

	log.Printf("QUESTION_SENT | generation=%d history=%d", gen, len(history))
	asker := c.asker
	return func() tea.Msg {
		answer, err := asker.Ask(ctx, text, history)
		return AnswerMsg{Generation: gen, Question: text, Answer: answer, Err: err}
	}
}

// =============================================================================
// UPDATE
// =============================================================================

// Update applies a message produced by one of the controller's commands.
// It returns true when the message changed visible state.
func (c *Controller) Update(msg tea.Msg) bool {
	if c.shutdown {
		return false
	}
	switch msg := msg.(type) {
	case AnswerMsg:
		return c.applyAnswer(msg)
	case HRReplyMsg:
		if msg.Generation != c.conv.Generation() {
			log.Printf("HR_REPLY_DROPPED | generation=%d current=%d", msg.Generation, c.conv.Generation())
			return false
		}
		c.conv.Append(model.NewBotMessage(HRReply, nil, nil))
		return true
	case CopyExpiredMsg:
		if msg.Token != c.copyToken || c.copiedIndex < 0 {
			return false
		}
		c.copiedIndex = -1
		return true
	}
	return false
}

func (c *Controller) applyAnswer(msg AnswerMsg) bool {
	if msg.Generation != c.conv.Generation() {
		log.Printf("ANSWER_DROPPED | generation=%d current=%d", msg.Generation, c.conv.Generation())
		return false
	}
	if !c.cancelMgr.active() {
		log.Printf("ANSWER_DROPPED | generation=%d reason=no_request_in_flight", msg.Generation)
		return false
	}
	defer func() {
		c.conv.EndRequest()
		c.cancelMgr.clear()
	}()

	if msg.Err != nil || msg.Answer == nil {
		err := msg.Err
		if err == nil {
			err = gateway.ErrMalformed
		}
		log.Printf("ANSWER_FAILED | kind=%s error=%v", gateway.KindOf(err), err)
		c.conv.Append(model.NewBotMessage(FailureText(err), nil, nil))
		return true
	}

	reply := model.NewBotMessage(msg.Answer.Answer, msg.Answer.Sources, WithHRFollowUp(msg.Answer.FollowUpQuestions))
	c.conv.CompleteExchange(msg.Question, reply)
	log.Printf("ANSWER_APPLIED | generation=%d sources=%d follow_ups=%d", msg.Generation, len(reply.Sources), len(reply.FollowUpQuestions))
	return true
}

// FailureText is the bot message shown for a failed question.
func FailureText(err error) string {
	if gateway.IsRateLimited(err) {
		return gateway.RateLimitMessage
	}
	return ApologyText
}

// WithHRFollowUp returns a copy of followUps with HRPhrase appended if absent.
func WithHRFollowUp(followUps []string) []string {
	out := make([]string, 0, len(followUps)+1)
	out = append(out, followUps...)
	for _, q := range out {
		if q == HRPhrase {
			return out
		}
	}
	return append(out, HRPhrase)
}

// =============================================================================
// SUGGESTIONS
// =============================================================================

// StarterQuestions returns the starter prompts while the conversation is fresh.
func (c *Controller) StarterQuestions() []string {
	if !c.conv.ShowStarterPrompts() {
		return nil
	}
	return append([]string(nil), StarterQuestions...)
}

// FollowUps returns the chips of the last message if it is an answer with
// follow-ups. Earlier messages never show chips.
func (c *Controller) FollowUps() []string {
	last, ok := c.conv.LastMessage()
	if !ok || !last.IsBot() || !last.HasFollowUps() {
		return nil
	}
	return append([]string(nil), last.FollowUpQuestions...)
}

// Chips returns whichever suggestion set is currently offered.
func (c *Controller) Chips() []string {
	if starters := c.StarterQuestions(); starters != nil {
		return starters
	}
	return c.FollowUps()
}

// =============================================================================
// COPY
// =============================================================================

// CopyAnswer copies the answer at index without its citation section and
// turns on the copied indicator for that index. The returned command turns
// it off again after CopiedIndicatorDuration.
func (c *Controller) CopyAnswer(index int) (tea.Cmd, error) {
	msg, ok := c.conv.MessageAt(index)
	if !ok {
		return nil, ErrNoSuchMessage
	}
	if !msg.IsBot() {
		return nil, ErrNotCopyable
	}
	if err := c.clipboard.WriteAll(markup.CopyText(msg.Text)); err != nil {
		log.Printf("COPY_FAILED | index=%d error=%v", index, err)
		return nil, err
	}
	c.copyToken++
	c.copiedIndex = index
	log.Printf("ANSWER_COPIED | index=%d preview=%q", index, msg.Preview(40))
	return c.scheduler.After(CopiedIndicatorDuration, CopyExpiredMsg{Token: c.copyToken}), nil
}

// CopiedIndex returns the index whose copied indicator is on.
func (c *Controller) CopiedIndex() (int, bool) {
	return c.copiedIndex, c.copiedIndex >= 0
}

// =============================================================================
// CLEAR AND TEARDOWN
// =============================================================================

// ClearChat resets the conversation to the greeting. A pending answer is
// cancelled and a pending HR reply will not appear.
func (c *Controller) ClearChat() {
	c.cancelMgr.clear()
	c.conv.Reset()
	c.copiedIndex = -1
	log.Printf("CHAT_CLEARED | generation=%d", c.conv.Generation())
}

// Shutdown cancels pending work. The controller ignores all later messages.
func (c *Controller) Shutdown() {
	c.cancelMgr.clear()
	c.shutdown = true
}
