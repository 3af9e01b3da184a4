// Package chat is the conversation screen: transcript, quiz cards, mode
// tabs and the message input.
package chat

import (
	"context"
	"strings"
	"unicode"

	"charm.land/bubbles/v2/spinner"
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"

	"github.com/learnbuddy/learnbuddy/internal/convo"
	"github.com/learnbuddy/learnbuddy/internal/quiz"
	"github.com/learnbuddy/learnbuddy/internal/router"
	"github.com/learnbuddy/learnbuddy/internal/screen"
	"github.com/learnbuddy/learnbuddy/internal/ui/components"
	"github.com/learnbuddy/learnbuddy/internal/ui/layout"
)

// Conversation is the state machine behind the screen.
type Conversation interface {
	Submit(ctx context.Context, input string) <-chan struct{}
	Answer(ctx context.Context, letter rune) <-chan struct{}
	SwitchMode(ctx context.Context, m convo.Mode) <-chan struct{}
	Clear()
	Mode() convo.Mode
	SessionHandle() string
	Busy() bool
}

// ReportFactory builds the report screen for the open quiz session, which
// may be empty.
type ReportFactory func(sessionID string) screen.Screen

// Screen is the chat screen.
type Screen struct {
	conv   Conversation
	ctx    context.Context
	report ReportFactory

	input    components.ChatInput
	viewport viewport.Model
	spinner  spinner.Model

	entries  []entry
	thinking bool

	width, height int
}

var _ screen.Screen = (*Screen)(nil)

// New creates the chat screen. report may be nil to disable reports.
func New(ctx context.Context, conv Conversation, report ReportFactory) *Screen {
	vp := viewport.New()
	vp.SoftWrap = true

	s := &Screen{
		conv:     conv,
		ctx:      ctx,
		report:   report,
		input:    components.NewChatInput(placeholder(conv.Mode())),
		viewport: vp,
		spinner:  spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
	return s
}

func (s *Screen) Title() string {
	return s.conv.Mode().Label()
}

func (s *Screen) Init() tea.Cmd {
	return s.input.Init()
}

// KeyHints implements screen.KeyHintProvider.
func (s *Screen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "Enter", Description: "Send"},
		{Key: "Tab", Description: "Mode"},
	}
	if s.activeQuestion() != nil {
		hints = append(hints, layout.KeyHint{Key: "A-D", Description: "Answer"})
	}
	hints = append(hints,
		layout.KeyHint{Key: "PgUp/PgDn", Description: "Scroll"},
		layout.KeyHint{Key: "Ctrl+L", Description: "Clear"},
	)
	if s.report != nil {
		hints = append(hints, layout.KeyHint{Key: "Ctrl+R", Description: "Report"})
	}
	return append(hints, layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case EventMsg:
		return s, s.HandleEvent(msg.Event)

	case spinner.TickMsg:
		if !s.thinking {
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		s.refresh(false)
		return s, cmd

	case tea.MouseWheelMsg:
		var cmd tea.Cmd
		s.viewport, cmd = s.viewport.Update(msg)
		return s, cmd

	case tea.KeyPressMsg:
		return s, s.handleKey(msg)
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *Screen) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "enter":
		return s.submit()
	case "tab":
		s.switchMode(s.conv.Mode().Next())
		return nil
	case "ctrl+l":
		s.conv.Clear()
		return nil
	case "ctrl+r":
		if s.report == nil {
			return nil
		}
		next := s.report(s.conv.SessionHandle())
		return func() tea.Msg { return router.PushScreenMsg{Screen: next} }
	case "pgup":
		s.viewport.PageUp()
		return nil
	case "pgdown":
		s.viewport.PageDown()
		return nil
	case "up":
		s.viewport.ScrollUp(1)
		return nil
	case "down":
		s.viewport.ScrollDown(1)
		return nil
	}

	if letter, ok := s.answerKey(msg); ok {
		s.answer(letter)
		return nil
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return cmd
}

// answerKey maps a key to an option letter when an open question is on
// screen and the learner has not started typing.
func (s *Screen) answerKey(msg tea.KeyPressMsg) (rune, bool) {
	q := s.activeQuestion()
	if q == nil || s.input.Value() != "" || len(msg.Text) != 1 {
		return 0, false
	}
	r := unicode.ToUpper(rune(msg.Text[0]))
	if r >= '1' && r <= '4' {
		r = 'A' + (r - '1')
	}
	if _, ok := q.question.Option(r); !ok {
		return 0, false
	}
	return r, true
}

func (s *Screen) submit() tea.Cmd {
	if s.conv.Busy() || strings.TrimSpace(s.input.Value()) == "" {
		return nil
	}
	text := s.input.Take()

	// Typing the letter of an open question counts as choosing it.
	if q := s.activeQuestion(); q != nil {
		t := strings.ToUpper(strings.TrimSpace(text))
		if len(t) == 1 {
			if _, ok := q.question.Option(rune(t[0])); ok {
				q.chosen = rune(t[0])
			}
		}
	}
	s.conv.Submit(s.ctx, text)
	return nil
}

func (s *Screen) answer(letter rune) {
	if s.conv.Busy() {
		return
	}
	if q := s.activeQuestion(); q != nil {
		q.chosen = letter
	}
	s.conv.Answer(s.ctx, letter)
	s.refresh(true)
}

func (s *Screen) switchMode(m convo.Mode) {
	hadSession := s.conv.SessionHandle() != ""
	s.conv.SwitchMode(s.ctx, m)
	s.input.SetPlaceholder(placeholder(m))
	if hadSession && s.conv.SessionHandle() == "" {
		s.entries = append(s.entries, entry{kind: entrySystem, text: "Quiz session closed."})
	}
	s.refresh(true)
}

// HandleEvent applies a conversation event to the transcript. The app
// calls it directly so events land even while another screen is on top.
func (s *Screen) HandleEvent(ev convo.Event) tea.Cmd {
	var cmd tea.Cmd
	switch ev.Kind {
	case convo.EventUser:
		s.entries = append(s.entries, entry{kind: entryUser, text: ev.Text})
	case convo.EventThinking:
		s.thinking = true
		cmd = s.spinner.Tick
	case convo.EventBot:
		s.thinking = false
		s.entries = append(s.entries, entry{kind: entryBot, text: ev.Text})
	case convo.EventQuiz:
		s.thinking = false
		s.appendUnit(ev.Unit)
	case convo.EventSession:
		s.entries = append(s.entries, entry{kind: entrySystem, text: "Quiz session started: " + ev.Text})
	case convo.EventError:
		s.thinking = false
		s.entries = append(s.entries, entry{kind: entryError, text: ev.Text})
	case convo.EventRecommendations:
		s.entries = append(s.entries, entry{kind: entryTopics, topics: ev.Topics})
	case convo.EventCleared:
		s.entries = nil
		s.thinking = false
	}
	s.refresh(true)
	return cmd
}

func (s *Screen) appendUnit(u quiz.Unit) {
	switch u := u.(type) {
	case *quiz.Question:
		s.entries = append(s.entries, entry{kind: entryQuestion, question: u})
	case *quiz.Feedback:
		s.entries = append(s.entries, entry{kind: entryFeedback, feedback: u})
		if u.Next != nil {
			s.entries = append(s.entries, entry{kind: entryQuestion, question: u.Next})
		}
	case *quiz.Passthrough:
		s.entries = append(s.entries, entry{kind: entryBot, text: u.Text})
	}
}

// activeQuestion returns the question awaiting an answer: the latest
// transcript entry apart from system notices, unanswered, while practicing
// and idle.
func (s *Screen) activeQuestion() *entry {
	if s.thinking || s.conv.Mode() != convo.ModePractice {
		return nil
	}
	for i := len(s.entries) - 1; i >= 0; i-- {
		e := &s.entries[i]
		if e.kind == entrySystem {
			continue
		}
		if e.kind != entryQuestion || e.chosen != 0 {
			return nil
		}
		return e
	}
	return nil
}

func placeholder(m convo.Mode) string {
	switch m {
	case convo.ModePractice:
		return "Name a topic to practice, or answer the question..."
	case convo.ModeRecommendations:
		return "Ask a question..."
	default:
		return "Ask me anything..."
	}
}
