package chat

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/learnbuddy/learnbuddy/internal/buddyapi"
	"github.com/learnbuddy/learnbuddy/internal/convo"
	"github.com/learnbuddy/learnbuddy/internal/quiz"
	"github.com/learnbuddy/learnbuddy/internal/router"
	"github.com/learnbuddy/learnbuddy/internal/screen"
)

// fakeConv records calls instead of talking to a backend.
type fakeConv struct {
	mode      convo.Mode
	session   string
	busy      bool
	submitted []string
	answered  []rune
	switched  []convo.Mode
	cleared   int
}

func closedCh() <-chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}

func (f *fakeConv) Submit(_ context.Context, input string) <-chan struct{} {
	f.submitted = append(f.submitted, input)
	return closedCh()
}

func (f *fakeConv) Answer(_ context.Context, letter rune) <-chan struct{} {
	f.answered = append(f.answered, letter)
	return closedCh()
}

func (f *fakeConv) SwitchMode(_ context.Context, m convo.Mode) <-chan struct{} {
	f.mode = m
	if m != convo.ModePractice {
		f.session = ""
	}
	f.switched = append(f.switched, m)
	return closedCh()
}

func (f *fakeConv) Clear() { f.cleared++ }
func (f *fakeConv) Mode() convo.Mode { return f.mode }
func (f *fakeConv) SessionHandle() string { return f.session }
func (f *fakeConv) Busy() bool { return f.busy }

type stubScreen struct{ session string }

func (s *stubScreen) Init() tea.Cmd { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string { return "report" }
func (s *stubScreen) Title() string { return "Report" }

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func ctrlKey(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Mod: tea.ModCtrl}
}

func newTestScreen(mode convo.Mode) (*Screen, *fakeConv) {
	conv := &fakeConv{mode: mode}
	s := New(context.Background(), conv, func(id string) screen.Screen { return &stubScreen{session: id} })
	s.View(80, 30)
	return s, conv
}

func typeText(s *Screen, text string) {
	for _, r := range text {
		s.Update(keyPress(r))
	}
}

func sampleQuestion() *quiz.Question {
	return &quiz.Question{
		Number: 1, Total: 5, Body: "Which gas do plants absorb?",
		Options: []quiz.Option{{Letter: 'A', Text: "Oxygen"}, {Letter: 'B', Text: "Carbon dioxide"}, {Letter: 'C', Text: "Nitrogen"}},
	}
}

func TestWelcomeShownWhenEmpty(t *testing.T) {
	s, _ := newTestScreen(convo.ModeAsk)
	if !strings.Contains(s.View(80, 30), "Welcome to Learning Buddy") {
		t.Error("expected the welcome panel on an empty transcript")
	}
}

func TestEnterSubmitsAndClearsInput(t *testing.T) {
	s, conv := newTestScreen(convo.ModeAsk)
	typeText(s, "what is osmosis")
	s.Update(specialKey(tea.KeyEnter))

	if len(conv.submitted) != 1 || conv.submitted[0] != "what is osmosis" {
		t.Fatalf("unexpected submissions: %v", conv.submitted)
	}
	if s.input.Value() != "" {
		t.Errorf("input should be cleared, got %q", s.input.Value())
	}
}

func TestEnterIgnoredWhileBusy(t *testing.T) {
	s, conv := newTestScreen(convo.ModeAsk)
	conv.busy = true
	typeText(s, "hello")
	s.Update(specialKey(tea.KeyEnter))

	if len(conv.submitted) != 0 {
		t.Fatalf("should not submit while busy: %v", conv.submitted)
	}
	if s.input.Value() != "hello" {
		t.Errorf("input should be kept while busy, got %q", s.input.Value())
	}
}

func TestEnterIgnoresBlankInput(t *testing.T) {
	s, conv := newTestScreen(convo.ModeAsk)
	typeText(s, "   ")
	s.Update(specialKey(tea.KeyEnter))
	if len(conv.submitted) != 0 {
		t.Fatalf("blank input should not be submitted: %v", conv.submitted)
	}
}

func TestTabCyclesModeAndClosesSession(t *testing.T) {
	s, conv := newTestScreen(convo.ModePractice)
	conv.session = "abc123"

	s.Update(specialKey(tea.KeyTab))

	if conv.mode != convo.ModeRecommendations {
		t.Fatalf("expected recommendations mode, got %s", conv.mode)
	}
	last := s.entries[len(s.entries)-1]
	if last.kind != entrySystem || last.text != "Quiz session closed." {
		t.Errorf("expected session closed notice, got %+v", last)
	}
	if s.Title() != "Recommendations" {
		t.Errorf("title = %q", s.Title())
	}
}

func TestEventsBuildTranscript(t *testing.T) {
	s, _ := newTestScreen(convo.ModeAsk)

	s.Update(EventMsg{convo.Event{Kind: convo.EventUser, Text: "hi"}})
	_, cmd := s.Update(EventMsg{convo.Event{Kind: convo.EventThinking}})
	if cmd == nil || !s.thinking {
		t.Fatal("thinking should start the spinner")
	}
	if !strings.Contains(s.View(80, 30), "Thinking") {
		t.Error("expected thinking indicator")
	}

	s.Update(EventMsg{convo.Event{Kind: convo.EventBot, Text: "Hello there"}})
	if s.thinking {
		t.Error("reply should stop thinking")
	}
	if len(s.entries) != 2 || s.entries[0].kind != entryUser || s.entries[1].kind != entryBot {
		t.Fatalf("unexpected entries: %+v", s.entries)
	}
	if !strings.Contains(s.View(80, 30), "Hello there") {
		t.Error("reply should be rendered")
	}
}

func TestErrorEventRendered(t *testing.T) {
	s, _ := newTestScreen(convo.ModeAsk)
	s.Update(EventMsg{convo.Event{Kind: convo.EventThinking}})
	s.Update(EventMsg{convo.Event{Kind: convo.EventError, Text: "Error: connection refused"}})

	if s.thinking {
		t.Error("error should stop thinking")
	}
	if !strings.Contains(s.View(80, 30), "connection refused") {
		t.Error("error should be rendered")
	}
}

func TestLetterKeyAnswersOpenQuestion(t *testing.T) {
	s, conv := newTestScreen(convo.ModePractice)
	s.Update(EventMsg{convo.Event{Kind: convo.EventQuiz, Unit: sampleQuestion()}})

	if s.activeQuestion() == nil {
		t.Fatal("expected an open question")
	}
	s.Update(keyPress('b'))

	if len(conv.answered) != 1 || conv.answered[0] != 'B' {
		t.Fatalf("expected answer B, got %q", conv.answered)
	}
	if s.entries[0].chosen != 'B' {
		t.Errorf("question should record the choice, got %q", s.entries[0].chosen)
	}
	if s.activeQuestion() != nil {
		t.Error("answered question should no longer be open")
	}
}

func TestNumberKeyAnswers(t *testing.T) {
	s, conv := newTestScreen(convo.ModePractice)
	s.Update(EventMsg{convo.Event{Kind: convo.EventQuiz, Unit: sampleQuestion()}})
	s.Update(keyPress('3'))

	if len(conv.answered) != 1 || conv.answered[0] != 'C' {
		t.Fatalf("expected answer C, got %q", conv.answered)
	}
}

func TestLetterWithoutOptionIsTyped(t *testing.T) {
	s, conv := newTestScreen(convo.ModePractice)
	s.Update(EventMsg{convo.Event{Kind: convo.EventQuiz, Unit: sampleQuestion()}})
	s.Update(keyPress('d')) // only A-C exist

	if len(conv.answered) != 0 {
		t.Fatalf("D is not an option: %q", conv.answered)
	}
	if s.input.Value() != "d" {
		t.Errorf("key should go to the input, got %q", s.input.Value())
	}
}

func TestLetterKeysTypeOutsidePractice(t *testing.T) {
	s, conv := newTestScreen(convo.ModeAsk)
	s.Update(EventMsg{convo.Event{Kind: convo.EventQuiz, Unit: sampleQuestion()}})
	s.Update(keyPress('a'))

	if len(conv.answered) != 0 {
		t.Fatal("letters should not answer outside practice mode")
	}
	if s.input.Value() != "a" {
		t.Errorf("input = %q", s.input.Value())
	}
}

func TestFeedbackChainsNextQuestion(t *testing.T) {
	s, _ := newTestScreen(convo.ModePractice)
	fb := &quiz.Feedback{Correct: true, Explanation: "Plants take in CO2.", Next: &quiz.Question{
		Number: 2, Total: 5, Body: "Where does photosynthesis happen?",
		Options: []quiz.Option{{Letter: 'A', Text: "Roots"}, {Letter: 'B', Text: "Chloroplasts"}},
	}}
	s.Update(EventMsg{convo.Event{Kind: convo.EventQuiz, Unit: fb}})

	if len(s.entries) != 2 || s.entries[0].kind != entryFeedback || s.entries[1].kind != entryQuestion {
		t.Fatalf("unexpected entries: %+v", s.entries)
	}
	q := s.activeQuestion()
	if q == nil || q.question.Number != 2 {
		t.Fatalf("next question should be open: %+v", q)
	}
	view := s.View(80, 30)
	if !strings.Contains(view, "Correct!") || !strings.Contains(view, "Chloroplasts") {
		t.Errorf("feedback and next question should render:\n%s", view)
	}
}

func TestPassthroughRendersAsReply(t *testing.T) {
	s, _ := newTestScreen(convo.ModePractice)
	s.Update(EventMsg{convo.Event{Kind: convo.EventQuiz, Unit: &quiz.Passthrough{Text: "Quiz complete!"}}})
	if len(s.entries) != 1 || s.entries[0].kind != entryBot {
		t.Fatalf("unexpected entries: %+v", s.entries)
	}
}

func TestRecommendationsRendered(t *testing.T) {
	s, _ := newTestScreen(convo.ModeRecommendations)
	s.Update(EventMsg{convo.Event{Kind: convo.EventRecommendations, Topics: []buddyapi.Topic{
		{Topic: "Fractions", Accuracy: 40, CorrectCount: 2, IncorrectCount: 3},
	}}})
	view := s.View(80, 30)
	if !strings.Contains(view, "Fractions") || !strings.Contains(view, "40%") {
		t.Errorf("expected topic row:\n%s", view)
	}

	s.Update(EventMsg{convo.Event{Kind: convo.EventRecommendations}})
	if !strings.Contains(s.View(80, 30), "No quiz results yet") {
		t.Error("expected empty recommendations hint")
	}
}

func TestClear(t *testing.T) {
	s, conv := newTestScreen(convo.ModeAsk)
	s.Update(EventMsg{convo.Event{Kind: convo.EventUser, Text: "hi"}})

	s.Update(ctrlKey('l'))
	if conv.cleared != 1 {
		t.Fatal("ctrl+l should clear the conversation")
	}
	s.Update(EventMsg{convo.Event{Kind: convo.EventCleared}})
	if len(s.entries) != 0 {
		t.Error("transcript should be empty")
	}
	if !strings.Contains(s.View(80, 30), "Welcome to Learning Buddy") {
		t.Error("welcome panel should return")
	}
}

func TestReportKeyPushesScreen(t *testing.T) {
	s, conv := newTestScreen(convo.ModePractice)
	conv.session = "sess-42"

	_, cmd := s.Update(ctrlKey('r'))
	if cmd == nil {
		t.Fatal("expected a command")
	}
	push, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatalf("expected PushScreenMsg, got %T", cmd())
	}
	if push.Screen.(*stubScreen).session != "sess-42" {
		t.Errorf("report should receive the open session")
	}
}

func TestSessionEventAnnounced(t *testing.T) {
	s, _ := newTestScreen(convo.ModePractice)
	s.Update(EventMsg{convo.Event{Kind: convo.EventSession, Text: "abcdefgh..."}})
	if !strings.Contains(s.View(80, 30), "Quiz session started: abcdefgh...") {
		t.Error("expected session notice")
	}
}

func TestQuestionAnswerableAfterSessionNotice(t *testing.T) {
	s, conv := newTestScreen(convo.ModePractice)
	s.Update(EventMsg{convo.Event{Kind: convo.EventUser, Text: "photosynthesis"}})
	s.Update(EventMsg{convo.Event{Kind: convo.EventThinking}})
	s.Update(EventMsg{convo.Event{Kind: convo.EventQuiz, Unit: sampleQuestion()}})
	s.Update(EventMsg{convo.Event{Kind: convo.EventSession, Text: "abcdefgh..."}})

	s.Update(keyPress('b'))

	if len(conv.answered) != 1 || conv.answered[0] != 'B' {
		t.Fatalf("expected answer B, got %q (input %q)", conv.answered, s.input.Value())
	}
	if s.input.Value() != "" {
		t.Errorf("answer key should not be typed, input = %q", s.input.Value())
	}
}

// scriptedChat replies in order and reports each message it receives.
type scriptedChat struct {
	mu      sync.Mutex
	replies []*buddyapi.ChatResponse
	got     chan string
}

func (c *scriptedChat) Chat(_ context.Context, req buddyapi.ChatRequest) (*buddyapi.ChatResponse, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.got <- req.Message
	resp := c.replies[0]
	c.replies = c.replies[1:]
	return resp, nil
}

// eventLog collects controller events for replay on the UI goroutine.
type eventLog struct {
	mu     sync.Mutex
	events []convo.Event
}

func (l *eventLog) sink(ev convo.Event) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, ev)
}

func (l *eventLog) drain() []convo.Event {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := l.events
	l.events = nil
	return out
}

func TestFirstQuestionOfNewQuizAnswerable(t *testing.T) {
	backend := &scriptedChat{
		got: make(chan string, 4),
		replies: []*buddyapi.ChatResponse{
			{Response: "Question 1 of 5: Which gas do plants absorb?A. OxygenB. Carbon dioxideC. Nitrogen", SessionID: "sess-0123456789"},
			{Response: "✅ Correct! Plants take in CO2.", SessionID: "sess-0123456789"},
		},
	}
	log := &eventLog{}
	ctrl := convo.New(backend, nil, log.sink, convo.Config{Mode: convo.ModePractice})
	s := New(context.Background(), ctrl, nil)
	s.View(80, 30)

	<-ctrl.Submit(context.Background(), "photosynthesis")
	<-backend.got
	for _, ev := range log.drain() {
		s.Update(EventMsg{ev})
	}

	if s.activeQuestion() == nil {
		t.Fatal("first question of a new quiz should be open")
	}
	s.Update(keyPress('b'))

	select {
	case msg := <-backend.got:
		if msg != "session:sess-0123456789 answer:B" {
			t.Errorf("sent %q", msg)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("answer key was not sent, input = %q", s.input.Value())
	}
}
