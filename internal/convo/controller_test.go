package convo

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/learnbuddy/learnbuddy/internal/buddyapi"
	"github.com/learnbuddy/learnbuddy/internal/quiz"
)

// fakeChat records every request and replies from a queue. When gate is
// set, each call blocks until the gate yields a value.
type fakeChat struct {
	mu       sync.Mutex
	requests []string
	replies  []*buddyapi.ChatResponse
	err      error
	gate     chan struct{}
}

func (f *fakeChat) Chat(ctx context.Context, req buddyapi.ChatRequest) (*buddyapi.ChatResponse, error) {
	f.mu.Lock()
	f.requests = append(f.requests, req.Message)
	gate := f.gate
	f.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, &buddyapi.NetworkError{Op: "POST /chat", Err: ctx.Err()}
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	if len(f.replies) == 0 {
		return &buddyapi.ChatResponse{Response: "ok"}, nil
	}
	r := f.replies[0]
	f.replies = f.replies[1:]
	return r, nil
}

func (f *fakeChat) sent() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.requests...)
}

type fakeRecs struct {
	topics []buddyapi.Topic
	err    error
	calls  int
}

func (f *fakeRecs) Recommendations(context.Context) ([]buddyapi.Topic, error) {
	f.calls++
	return f.topics, f.err
}

type recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *recorder) sink(ev Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func (r *recorder) kinds() []EventKind {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]EventKind, len(r.events))
	for i, ev := range r.events {
		out[i] = ev.Kind
	}
	return out
}

func (r *recorder) last() Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.events[len(r.events)-1]
}

func wait(t *testing.T, done <-chan struct{}) {
	t.Helper()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for request to settle")
	}
}

func newController(chat ChatService, recs RecommendationService, mode Mode) (*Controller, *recorder) {
	rec := &recorder{}
	return New(chat, recs, rec.sink, Config{Mode: mode}), rec
}

func TestFrame(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		mode    Mode
		session string
		want    string
	}{
		{"practice answer", "B", ModePractice, "abc123", "session:abc123 answer:B"},
		{"practice topic", "photosynthesis", ModePractice, "", "Generate practice: photosynthesis"},
		{"ask unchanged", "What is X?", ModeAsk, "", "What is X?"},
		{"explicit generate with session", "Generate practice: cells", ModePractice, "abc123", "Generate practice: cells"},
		{"generate prefix ignores case", "GENERATE 3 questions on atoms", ModePractice, "", "GENERATE 3 questions on atoms"},
		{"recommendations unchanged", "anything", ModeRecommendations, "", "anything"},
		{"input trimmed", "  B  ", ModePractice, "abc123", "session:abc123 answer:B"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := Frame(tt.input, tt.mode, tt.session)
			assert.Equal(t, tt.want, env.Text)
			assert.Equal(t, tt.mode, env.Mode)
			assert.Equal(t, tt.session, env.SessionHandle)
		})
	}
}

func TestSubmit_EchoesBeforeNetwork(t *testing.T) {
	chat := &fakeChat{gate: make(chan struct{})}
	c, rec := newController(chat, nil, ModeAsk)

	done := c.Submit(context.Background(), "What is X?")

	// The echo is delivered synchronously, before the backend answers.
	assert.Equal(t, []EventKind{EventUser, EventThinking}, rec.kinds())
	assert.Equal(t, "What is X?", rec.events[0].Text)

	close(chat.gate)
	wait(t, done)

	assert.Equal(t, []EventKind{EventUser, EventThinking, EventBot}, rec.kinds())
	assert.Equal(t, "ok", rec.last().Text)
}

func TestSubmit_EmptyInputIgnored(t *testing.T) {
	chat := &fakeChat{}
	c, rec := newController(chat, nil, ModeAsk)

	for _, in := range []string{"", "   ", "\n\t"} {
		wait(t, c.Submit(context.Background(), in))
	}

	assert.Empty(t, chat.sent())
	assert.Empty(t, rec.kinds())
	assert.False(t, c.Busy())
}

func TestSubmit_BusyRejectsSecondSend(t *testing.T) {
	chat := &fakeChat{gate: make(chan struct{})}
	c, rec := newController(chat, nil, ModeAsk)

	first := c.Submit(context.Background(), "one")
	assert.True(t, c.Busy())

	second := c.Submit(context.Background(), "two")
	wait(t, second)
	assert.True(t, c.Busy(), "ignored submit must not settle the request in flight")

	close(chat.gate)
	wait(t, first)

	assert.False(t, c.Busy())
	assert.Equal(t, []string{"one"}, chat.sent())
	assert.Equal(t, []EventKind{EventUser, EventThinking, EventBot}, rec.kinds())
}

func TestSubmit_PracticeOpensSession(t *testing.T) {
	chat := &fakeChat{replies: []*buddyapi.ChatResponse{
		{Response: "Question 1 of 5: What is H2O?A. WaterB. Salt", SessionID: "abc123def456"},
		{Response: "✅ Correct! Water it is."},
	}}
	c, rec := newController(chat, nil, ModePractice)

	wait(t, c.Submit(context.Background(), "chemistry"))

	assert.Equal(t, "abc123def456", c.SessionHandle())
	require.Equal(t, []EventKind{EventUser, EventThinking, EventSession, EventQuiz}, rec.kinds())
	assert.Equal(t, "abc123de...", rec.events[2].Text)
	q, ok := rec.events[3].Unit.(*quiz.Question)
	require.True(t, ok, "expected *quiz.Question, got %T", rec.events[3].Unit)
	assert.Equal(t, "What is H2O?", q.Body)

	wait(t, c.Answer(context.Background(), 'A'))

	assert.Equal(t, []string{
		"Generate practice: chemistry",
		"session:abc123def456 answer:A",
	}, chat.sent())
	fb, ok := rec.last().Unit.(*quiz.Feedback)
	require.True(t, ok)
	assert.True(t, fb.Correct)
	assert.Equal(t, "abc123def456", c.SessionHandle())
}

func TestSubmit_SameSessionNotAnnouncedTwice(t *testing.T) {
	chat := &fakeChat{replies: []*buddyapi.ChatResponse{
		{Response: "Question 1 of 5: Q?A. xB. y", SessionID: "abc123"},
		{Response: "❌ Incorrect. Nope.", SessionID: "abc123"},
	}}
	c, rec := newController(chat, nil, ModePractice)

	wait(t, c.Submit(context.Background(), "topic"))
	wait(t, c.Submit(context.Background(), "B"))

	sessions := 0
	for _, k := range rec.kinds() {
		if k == EventSession {
			sessions++
		}
	}
	assert.Equal(t, 1, sessions)
}

func TestSubmit_PracticeNonQuizReplyPassesThrough(t *testing.T) {
	chat := &fakeChat{replies: []*buddyapi.ChatResponse{{Response: "Quiz complete! You scored 4/5."}}}
	c, rec := newController(chat, nil, ModePractice)

	wait(t, c.Submit(context.Background(), "done"))

	p, ok := rec.last().Unit.(*quiz.Passthrough)
	require.True(t, ok)
	assert.Equal(t, "Quiz complete! You scored 4/5.", p.Text)
}

func TestSubmit_Failure(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"backend", &buddyapi.BackendError{Status: 200, Message: "Session not found"}, "Session not found"},
		{"network", &buddyapi.NetworkError{Op: "POST /chat", Err: errors.New("connection refused")}, "Error: POST /chat: connection refused"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chat := &fakeChat{err: tt.err}
			c, rec := newController(chat, nil, ModePractice)

			wait(t, c.Submit(context.Background(), "topic"))

			assert.False(t, c.Busy())
			assert.Empty(t, c.SessionHandle())
			ev := rec.last()
			assert.Equal(t, EventError, ev.Kind)
			assert.Equal(t, tt.want, ev.Text)
			assert.ErrorIs(t, ev.Err, tt.err)
			assert.Len(t, chat.sent(), 1, "failures are not retried")
		})
	}
}

func TestSubmit_Timeout(t *testing.T) {
	chat := &fakeChat{gate: make(chan struct{})}
	rec := &recorder{}
	c := New(chat, nil, rec.sink, Config{RequestTimeout: 20 * time.Millisecond})

	wait(t, c.Submit(context.Background(), "hello"))

	assert.False(t, c.Busy())
	ev := rec.last()
	assert.Equal(t, EventError, ev.Kind)
	assert.ErrorIs(t, ev.Err, context.DeadlineExceeded)
}

func TestSubmit_ModeChangedInFlight(t *testing.T) {
	chat := &fakeChat{
		gate:    make(chan struct{}),
		replies: []*buddyapi.ChatResponse{{Response: "Question 1 of 5: Q?A. xB. y", SessionID: "abc123"}},
	}
	c, rec := newController(chat, nil, ModePractice)

	done := c.Submit(context.Background(), "topic")
	wait(t, c.SwitchMode(context.Background(), ModeAsk))
	close(chat.gate)
	wait(t, done)

	// The reply is still shown as a quiz, but the abandoned session is not adopted.
	assert.Equal(t, EventQuiz, rec.last().Kind)
	assert.Empty(t, c.SessionHandle())
}

func TestSwitchMode_SessionScoping(t *testing.T) {
	chat := &fakeChat{replies: []*buddyapi.ChatResponse{{Response: "Question 1 of 5: Q?A. xB. y", SessionID: "abc123"}}}
	c, _ := newController(chat, &fakeRecs{}, ModePractice)

	wait(t, c.Submit(context.Background(), "topic"))
	require.Equal(t, "abc123", c.SessionHandle())

	wait(t, c.SwitchMode(context.Background(), ModePractice))
	assert.Equal(t, "abc123", c.SessionHandle())

	wait(t, c.SwitchMode(context.Background(), ModeAsk))
	assert.Empty(t, c.SessionHandle())
	assert.Equal(t, ModeAsk, c.Mode())
}

func TestSwitchMode_Recommendations(t *testing.T) {
	recs := &fakeRecs{topics: []buddyapi.Topic{{Topic: "fractions", Accuracy: 40}}}
	c, rec := newController(&fakeChat{}, recs, ModeAsk)

	wait(t, c.SwitchMode(context.Background(), ModeRecommendations))

	assert.Equal(t, 1, recs.calls)
	ev := rec.last()
	assert.Equal(t, EventRecommendations, ev.Kind)
	assert.Equal(t, recs.topics, ev.Topics)
	assert.False(t, c.Busy())
}

func TestSwitchMode_RecommendationsError(t *testing.T) {
	recs := &fakeRecs{err: &buddyapi.BackendError{Message: "database unavailable"}}
	c, rec := newController(&fakeChat{}, recs, ModeAsk)

	wait(t, c.SwitchMode(context.Background(), ModeRecommendations))

	ev := rec.last()
	assert.Equal(t, EventError, ev.Kind)
	assert.Equal(t, "database unavailable", ev.Text)
}

func TestSwitchMode_RecommendationsUnavailable(t *testing.T) {
	c, rec := newController(&fakeChat{}, nil, ModeAsk)

	wait(t, c.SwitchMode(context.Background(), ModeRecommendations))
	assert.Equal(t, EventError, rec.last().Kind)
}

func TestClear(t *testing.T) {
	chat := &fakeChat{replies: []*buddyapi.ChatResponse{{Response: "Question 1 of 5: Q?A. xB. y", SessionID: "abc123"}}}
	c, rec := newController(chat, nil, ModePractice)

	wait(t, c.Submit(context.Background(), "topic"))
	c.Clear()

	assert.Empty(t, c.SessionHandle())
	assert.Equal(t, ModePractice, c.Mode())
	assert.Equal(t, EventCleared, rec.last().Kind)

	wait(t, c.Submit(context.Background(), "biology"))
	assert.Equal(t, "Generate practice: biology", chat.sent()[1])
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("Practice")
	require.NoError(t, err)
	assert.Equal(t, ModePractice, m)

	m, err = ParseMode("")
	require.NoError(t, err)
	assert.Equal(t, ModeAsk, m)

	_, err = ParseMode("quiz")
	assert.Error(t, err)
}

func TestMode_Next(t *testing.T) {
	assert.Equal(t, ModePractice, ModeAsk.Next())
	assert.Equal(t, ModeRecommendations, ModePractice.Next())
	assert.Equal(t, ModeAsk, ModeRecommendations.Next())
}

func TestSessionLabel(t *testing.T) {
	assert.Equal(t, "abcdefgh...", SessionLabel("abcdefghijkl"))
	assert.Equal(t, "abc...", SessionLabel("abc"))
}
