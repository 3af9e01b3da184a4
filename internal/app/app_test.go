package app

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/learnbuddy/learnbuddy/internal/buddyapi"
	"github.com/learnbuddy/learnbuddy/internal/convo"
	"github.com/learnbuddy/learnbuddy/internal/router"
	"github.com/learnbuddy/learnbuddy/internal/screens/report"
)

type stubBackend struct{}

func (stubBackend) Chat(context.Context, buddyapi.ChatRequest) (*buddyapi.ChatResponse, error) {
	return &buddyapi.ChatResponse{Response: "ok"}, nil
}

func (stubBackend) Recommendations(context.Context) ([]buddyapi.Topic, error) {
	return nil, nil
}

func (stubBackend) Report(context.Context, buddyapi.ReportRequest) (*buddyapi.ReportResponse, error) {
	return &buddyapi.ReportResponse{Success: true}, nil
}

func newTestModel(t *testing.T, skipSplash bool) AppModel {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return newAppModel(ctx, Options{
		Chat:       stubBackend{},
		Recs:       stubBackend{},
		Reporter:   stubBackend{},
		SkipSplash: skipSplash,
	})
}

func resize(m AppModel, w, h int) AppModel {
	updated, _ := m.Update(tea.WindowSizeMsg{Width: w, Height: h})
	return updated.(AppModel)
}

func TestSplashHandsOverToChat(t *testing.T) {
	m := newTestModel(t, false)
	if m.router.Active() == m.chat {
		t.Fatal("splash should be shown first")
	}

	_, cmd := m.Update(tea.KeyPressMsg{Code: 'x', Text: "x"})
	if cmd == nil {
		t.Fatal("expected a transition command")
	}
	m.Update(cmd())
	if m.router.Active() != m.chat {
		t.Error("chat should replace the splash")
	}
}

func TestEventsReachChatUnderReport(t *testing.T) {
	m := resize(newTestModel(t, true), 100, 30)

	m.router.Push(report.New(context.Background(), stubBackend{}, "", report.Defaults{}))
	if m.router.Depth() != 2 {
		t.Fatal("report should be on top")
	}

	_, cmd := m.Update(eventsMsg{{Kind: convo.EventBot, Text: "late reply"}})
	if cmd == nil {
		t.Error("event handling should re-arm the event wait")
	}

	m.Update(router.PopScreenMsg{})
	if !strings.Contains(m.render(), "late reply") {
		t.Error("reply should be in the transcript after returning to chat")
	}
}

func TestEscPopsOnlyAboveRoot(t *testing.T) {
	m := newTestModel(t, true)

	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd != nil {
		t.Error("esc on the root screen should do nothing")
	}

	m.router.Push(report.New(context.Background(), stubBackend{}, "", report.Defaults{}))
	_, cmd = m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("esc should pop the report")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg")
	}
}

func TestViewShowsModeAndHints(t *testing.T) {
	m := resize(newTestModel(t, true), 100, 30)
	view := m.render()
	for _, want := range []string{"Learning Buddy", "Ask Question", "Ctrl+R"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestTooSmall(t *testing.T) {
	m := resize(newTestModel(t, true), 40, 10)
	if strings.Contains(m.render(), "Ask Question") {
		t.Error("small terminals should show the size warning instead")
	}
}

func TestEmitFromUpdateNeverBlocks(t *testing.T) {
	m := newTestModel(t, true)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for range 200 {
			m.Update(tea.KeyPressMsg{Code: 'l', Mod: tea.ModCtrl})
		}
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Update blocked while emitting events")
	}

	msg := m.events.wait(context.Background())()
	evs, ok := msg.(eventsMsg)
	if !ok {
		t.Fatalf("expected eventsMsg, got %T", msg)
	}
	if len(evs) != 200 {
		t.Fatalf("expected 200 queued events, got %d", len(evs))
	}
	for _, ev := range evs {
		if ev.Kind != convo.EventCleared {
			t.Fatalf("unexpected event %v", ev.Kind)
		}
	}
}

func TestEventQueueWaitStopsOnCancel(t *testing.T) {
	q := newEventQueue()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if msg := q.wait(ctx)(); msg != nil {
		t.Errorf("expected nil after cancel, got %v", msg)
	}
}
