package convo

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/learnbuddy/learnbuddy/internal/buddyapi"
	"github.com/learnbuddy/learnbuddy/internal/quiz"
)

// ChatService sends a framed message to the chat backend.
type ChatService interface {
	Chat(ctx context.Context, req buddyapi.ChatRequest) (*buddyapi.ChatResponse, error)
}

// RecommendationService fetches per-topic performance.
type RecommendationService interface {
	Recommendations(ctx context.Context) ([]buddyapi.Topic, error)
}

// Config holds optional Controller settings.
type Config struct {
	// Mode is the initial mode. Defaults to ModeAsk.
	Mode Mode

	// RequestTimeout bounds each backend call. Zero means no timeout.
	RequestTimeout time.Duration

	Logger *zap.Logger
}

// Controller owns the conversation state: the active mode, the open quiz
// session and whether a chat request is in flight. It decides how each
// message is framed and turns replies into display events.
//
// Events are delivered to the sink in order. The sink must not block
// indefinitely, but it may call the Controller's accessors.
type Controller struct {
	chat    ChatService
	recs    RecommendationService
	sink    Sink
	timeout time.Duration
	logger  *zap.Logger

	mu      sync.Mutex
	mode    Mode
	session string
	busy    bool

	// emitMu keeps a request's state change and its events together so a
	// following Submit cannot interleave its echo ahead of them.
	emitMu sync.Mutex
}

// New creates a Controller. recs may be nil when recommendations are not
// available; switching to that mode then reports an error.
func New(chat ChatService, recs RecommendationService, sink Sink, cfg Config) *Controller {
	if cfg.Mode == "" {
		cfg.Mode = ModeAsk
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if sink == nil {
		sink = func(Event) {}
	}
	return &Controller{
		chat:    chat,
		recs:    recs,
		sink:    sink,
		timeout: cfg.RequestTimeout,
		logger:  cfg.Logger,
		mode:    cfg.Mode,
	}
}

// Mode returns the active mode.
func (c *Controller) Mode() Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

// SessionHandle returns the open quiz session token, or "" when none.
func (c *Controller) SessionHandle() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session
}

// Busy reports whether a chat request is in flight.
func (c *Controller) Busy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.busy
}

// Submit frames input for the current mode and sends it to the chat
// service. Blank input and input arriving while a request is in flight are
// ignored. The returned channel is closed once the request has settled and
// its events have been delivered.
func (c *Controller) Submit(ctx context.Context, input string) <-chan struct{} {
	input = strings.TrimSpace(input)
	if input == "" {
		return closed()
	}

	c.mu.Lock()
	if c.busy {
		c.mu.Unlock()
		c.logger.Debug("submit ignored while busy")
		return closed()
	}
	c.busy = true
	env := Frame(input, c.mode, c.session)
	c.mu.Unlock()

	c.emitMu.Lock()
	c.sink(Event{Kind: EventUser, Text: input})
	c.sink(Event{Kind: EventThinking})
	c.emitMu.Unlock()

	done := make(chan struct{})
	go func() {
		defer close(done)
		c.send(ctx, env)
	}()
	return done
}

// Answer submits an option letter, as if the learner had typed it.
func (c *Controller) Answer(ctx context.Context, letter rune) <-chan struct{} {
	return c.Submit(ctx, string(letter))
}

func (c *Controller) send(ctx context.Context, env Envelope) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	start := time.Now()
	resp, err := c.chat.Chat(ctx, buddyapi.ChatRequest{Message: env.Text})

	c.emitMu.Lock()
	defer c.emitMu.Unlock()

	c.mu.Lock()
	c.busy = false
	if err != nil {
		c.mu.Unlock()
		c.logger.Warn("chat request failed",
			zap.String("mode", string(env.Mode)),
			zap.Duration("latency", time.Since(start)),
			zap.Error(err))
		c.sink(Event{Kind: EventError, Text: buddyapi.UserMessage(err), Err: err})
		return
	}

	// A session only opens if the learner is still practicing.
	var newSession string
	if env.Mode == ModePractice && c.mode == ModePractice &&
		resp.SessionID != "" && resp.SessionID != c.session {
		c.session = resp.SessionID
		newSession = resp.SessionID
	}
	c.mu.Unlock()

	c.logger.Debug("chat reply",
		zap.String("mode", string(env.Mode)),
		zap.Int("length", len(resp.Response)),
		zap.Duration("latency", time.Since(start)))

	if env.Mode != ModePractice {
		c.sink(Event{Kind: EventBot, Text: resp.Response})
		return
	}
	// The session notice goes first so the question stays the latest
	// entry and can be answered.
	if newSession != "" {
		c.sink(Event{Kind: EventSession, Text: SessionLabel(newSession)})
	}
	c.sink(Event{Kind: EventQuiz, Unit: quiz.Parse(resp.Response)})
}

// SwitchMode changes the active mode. Leaving practice abandons the open
// quiz session. Entering recommendations starts a one-shot fetch whose
// completion is signalled on the returned channel.
func (c *Controller) SwitchMode(ctx context.Context, m Mode) <-chan struct{} {
	c.mu.Lock()
	c.mode = m
	if m != ModePractice {
		c.session = ""
	}
	c.mu.Unlock()

	if m != ModeRecommendations {
		return closed()
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		c.fetchRecommendations(ctx)
	}()
	return done
}

func (c *Controller) fetchRecommendations(ctx context.Context) {
	if c.recs == nil {
		c.emit(Event{Kind: EventError, Text: "Error: recommendations are not available"})
		return
	}

	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	topics, err := c.recs.Recommendations(ctx)
	if err != nil {
		c.logger.Warn("recommendations request failed", zap.Error(err))
		c.emit(Event{Kind: EventError, Text: buddyapi.UserMessage(err), Err: err})
		return
	}
	c.emit(Event{Kind: EventRecommendations, Topics: topics})
}

// Clear abandons the quiz session and asks the view to reset. The mode is
// kept.
func (c *Controller) Clear() {
	c.mu.Lock()
	c.session = ""
	c.mu.Unlock()

	c.emit(Event{Kind: EventCleared})
}

func (c *Controller) emit(ev Event) {
	c.emitMu.Lock()
	defer c.emitMu.Unlock()
	c.sink(ev)
}

func (c *Controller) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout > 0 {
		return context.WithTimeout(ctx, c.timeout)
	}
	return context.WithCancel(ctx)
}

func closed() <-chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}
