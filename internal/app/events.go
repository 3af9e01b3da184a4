package app

import (
	"context"
	"sync"

	tea "charm.land/bubbletea/v2"

	"github.com/learnbuddy/learnbuddy/internal/convo"
)

// eventsMsg carries controller events in emission order.
type eventsMsg []convo.Event

// eventQueue hands controller events to the UI. Push never blocks: the
// controller emits from inside Update (Submit, Clear) as well as from its
// request goroutines.
type eventQueue struct {
	mu      sync.Mutex
	pending []convo.Event
	ready   chan struct{}
}

func newEventQueue() *eventQueue {
	return &eventQueue{ready: make(chan struct{}, 1)}
}

func (q *eventQueue) push(ev convo.Event) {
	q.mu.Lock()
	q.pending = append(q.pending, ev)
	q.mu.Unlock()

	select {
	case q.ready <- struct{}{}:
	default:
	}
}

func (q *eventQueue) take() []convo.Event {
	q.mu.Lock()
	defer q.mu.Unlock()
	evs := q.pending
	q.pending = nil
	return evs
}

// wait returns a command that blocks until events are queued and delivers
// all of them as one eventsMsg.
func (q *eventQueue) wait(ctx context.Context) tea.Cmd {
	return func() tea.Msg {
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-q.ready:
			}
			if evs := q.take(); len(evs) > 0 {
				return eventsMsg(evs)
			}
		}
	}
}
