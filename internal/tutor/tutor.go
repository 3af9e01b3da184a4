// Package tutor is the local Learning Buddy backend: it answers questions,
// writes practice quizzes, grades answers and ranks topics for review.
//
// Service speaks the same contract as the remote chat service, so it can
// sit behind the HTTP server or be handed to the conversation controller
// directly.
package tutor

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"github.com/learnbuddy/learnbuddy/internal/buddyapi"
	"github.com/learnbuddy/learnbuddy/internal/llm"
	"github.com/learnbuddy/learnbuddy/internal/quiz"
	"github.com/learnbuddy/learnbuddy/internal/store"
)

// Messages returned to the learner as chat errors.
const (
	msgNoMessage     = "No message provided"
	msgNoTopic       = `Tell me what to practice, e.g. "Generate practice: fractions".`
	msgNoSession     = "Quiz session not found or expired. Start a new practice quiz."
	msgBadLetter     = "Please answer with the letter of an option (A-D)."
	msgNoProvider    = "No LLM provider is configured for the tutor."
	msgTimeout       = "The tutor took too long to answer. Please try again."
	msgMalformedQuiz = "The tutor produced a malformed quiz. Please try again."
)

// Service is the tutor backend.
type Service struct {
	provider llm.Provider
	quizzes  store.QuizRepo
	cfg      Config
	logger   *zap.Logger

	sessions *cache.Cache
	newID    func() string
}

// New creates a tutor. provider may be nil, in which case questions and
// quiz generation fail with a configuration error while grading and
// recommendations keep working from the store.
func New(provider llm.Provider, quizzes store.QuizRepo, cfg Config, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = DefaultConfig().SessionTTL
	}
	return &Service{
		provider: provider,
		quizzes:  quizzes,
		cfg:      cfg,
		logger:   logger,
		sessions: cache.New(cfg.SessionTTL, cfg.SessionTTL/6),
		newID:    uuid.NewString,
	}
}

// Chat handles one chat message. Failures the learner should see come back
// as *buddyapi.BackendError carrying an HTTP status.
func (s *Service) Chat(ctx context.Context, req buddyapi.ChatRequest) (*buddyapi.ChatResponse, error) {
	msg := strings.TrimSpace(req.Message)
	if msg == "" {
		return nil, &buddyapi.BackendError{Status: http.StatusBadRequest, Message: msgNoMessage}
	}

	in := ParseIntent(msg)
	switch in.Kind {
	case IntentGenerate:
		return s.generate(ctx, in.Topic)
	case IntentAnswer:
		return s.answer(ctx, in.SessionID, in.Answer)
	default:
		return s.ask(ctx, in.Text)
	}
}

// Recommendations ranks the learner's topics, weakest accuracy first.
func (s *Service) Recommendations(ctx context.Context) ([]buddyapi.Topic, error) {
	stats, err := s.quizzes.TopicStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("topic stats: %w", err)
	}
	topics := make([]buddyapi.Topic, len(stats))
	for i, st := range stats {
		topics[i] = buddyapi.Topic{
			Topic:          st.Topic,
			Accuracy:       st.Accuracy(),
			CorrectCount:   st.Correct,
			IncorrectCount: st.Incorrect,
		}
	}
	return topics, nil
}

func (s *Service) ask(ctx context.Context, question string) (*buddyapi.ChatResponse, error) {
	if s.provider == nil {
		return nil, &buddyapi.BackendError{Status: http.StatusServiceUnavailable, Message: msgNoProvider}
	}

	ctx, cancel := s.withTimeout(llm.WithPurpose(ctx, llm.PurposeAsk))
	defer cancel()

	resp, err := s.provider.Generate(ctx, llm.Request{
		System:      askPrompt,
		Messages:    llm.UserMessage(question),
		MaxTokens:   s.cfg.AskMaxTokens,
		Temperature: s.cfg.Temperature,
	})
	if err != nil {
		return nil, s.llmFailure("ask", err)
	}
	text := resp.Text()
	if text == "" {
		return nil, s.llmFailure("ask", &llm.ErrInvalidResponse{Err: errors.New("empty answer")})
	}
	return &buddyapi.ChatResponse{Response: text}, nil
}

// quizOutput is the raw LLM response before it becomes a session.
type quizOutput struct {
	Topic     string `json:"topic"`
	Questions []struct {
		Question    string   `json:"question"`
		Options     []string `json:"options"`
		Answer      string   `json:"answer"`
		Explanation string   `json:"explanation"`
	} `json:"questions"`
}

func (s *Service) generate(ctx context.Context, topic string) (*buddyapi.ChatResponse, error) {
	if topic == "" {
		return nil, &buddyapi.BackendError{Status: http.StatusBadRequest, Message: msgNoTopic}
	}
	if s.provider == nil {
		return nil, &buddyapi.BackendError{Status: http.StatusServiceUnavailable, Message: msgNoProvider}
	}

	genCtx, cancel := s.withTimeout(llm.WithPurpose(ctx, llm.PurposePractice))
	defer cancel()

	resp, err := s.provider.Generate(genCtx, llm.Request{
		System:      fmt.Sprintf(practicePrompt, QuestionsPerQuiz),
		Messages:    llm.UserMessage(buildPracticeMessage(topic)),
		Schema:      QuizSchema,
		MaxTokens:   s.cfg.PracticeMaxTokens,
		Temperature: s.cfg.Temperature,
	})
	if err != nil {
		return nil, s.llmFailure("practice", err)
	}

	var out quizOutput
	if err := resp.Decode(&out); err != nil {
		return nil, s.llmFailure("practice", err)
	}
	if len(out.Questions) == 0 {
		return nil, s.llmFailure("practice", &llm.ErrInvalidResponse{Content: resp.Content, Err: errors.New("no questions")})
	}

	sess := &store.QuizSession{ID: s.newID(), Topic: strings.TrimSpace(out.Topic)}
	if sess.Topic == "" {
		sess.Topic = topic
	}
	for _, q := range out.Questions {
		sess.Questions = append(sess.Questions, store.QuestionRecord{
			Body:        strings.TrimSpace(q.Question),
			Options:     q.Options,
			Answer:      strings.ToUpper(q.Answer),
			Explanation: strings.TrimSpace(q.Explanation),
		})
	}
	if err := s.quizzes.CreateSession(ctx, sess); err != nil {
		return nil, fmt.Errorf("store quiz: %w", err)
	}

	st := &quizState{id: sess.ID, topic: sess.Topic, questions: sess.Questions}
	s.sessions.SetDefault(sess.ID, st)
	s.logger.Info("quiz generated",
		zap.String("session_id", sess.ID),
		zap.String("topic", sess.Topic),
		zap.Int("questions", len(sess.Questions)))

	return &buddyapi.ChatResponse{
		Response:  quiz.Format(st.question(0)),
		SessionID: sess.ID,
	}, nil
}

func (s *Service) answer(ctx context.Context, sessionID, answer string) (*buddyapi.ChatResponse, error) {
	st, err := s.session(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if st == nil {
		return nil, &buddyapi.BackendError{Status: http.StatusNotFound, Message: msgNoSession}
	}

	st.mu.Lock()
	defer st.mu.Unlock()

	if st.done() {
		return &buddyapi.ChatResponse{Response: st.finishedText(), SessionID: st.id}, nil
	}

	q := st.questions[st.current]
	letter := normalizeAnswer(answer)
	if letter == 0 || int(letter-'A') >= len(q.Options) {
		return nil, &buddyapi.BackendError{Status: http.StatusBadRequest, Message: msgBadLetter}
	}

	correct := string(letter) == q.Answer
	if err := s.quizzes.RecordAnswer(ctx, &store.AnswerRecord{
		SessionID:  st.id,
		QuestionID: q.ID,
		Topic:      st.topic,
		Answer:     string(letter),
		Correct:    correct,
	}); err != nil {
		return nil, fmt.Errorf("record answer: %w", err)
	}

	st.current++
	if correct {
		st.correct++
	}
	s.sessions.SetDefault(st.id, st)

	fb := &quiz.Feedback{Correct: correct, Explanation: q.Explanation}
	if !correct {
		fb.Explanation = strings.TrimSpace(fmt.Sprintf("The correct answer is %s. %s", q.Answer, q.Explanation))
	}
	if st.done() {
		fb.Explanation += "\n\n" + st.scoreText()
	} else {
		fb.Next = st.question(st.current)
	}

	s.logger.Debug("answer graded",
		zap.String("session_id", st.id),
		zap.Int("position", q.Position),
		zap.Bool("correct", correct))

	return &buddyapi.ChatResponse{Response: quiz.Format(fb), SessionID: st.id}, nil
}

// session returns the live state for id, reloading it from the store when
// it has dropped out of memory. It returns nil for unknown sessions.
func (s *Service) session(ctx context.Context, id string) (*quizState, error) {
	if v, ok := s.sessions.Get(id); ok {
		return v.(*quizState), nil
	}

	sess, err := s.quizzes.Session(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if sess == nil {
		return nil, nil
	}
	answers, err := s.quizzes.Answers(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load answers: %w", err)
	}

	st := &quizState{id: sess.ID, topic: sess.Topic, questions: sess.Questions}
	for _, a := range answers {
		st.current++
		if a.Correct {
			st.correct++
		}
	}
	if st.current > len(st.questions) {
		st.current = len(st.questions)
	}

	// Another request may have restored it first; keep whichever is cached.
	if err := s.sessions.Add(id, st, cache.DefaultExpiration); err != nil {
		if v, ok := s.sessions.Get(id); ok {
			return v.(*quizState), nil
		}
	}
	return st, nil
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.cfg.Timeout > 0 {
		return context.WithTimeout(ctx, s.cfg.Timeout)
	}
	return context.WithCancel(ctx)
}

// llmFailure logs err and converts it to the error shown to the learner.
func (s *Service) llmFailure(op string, err error) error {
	s.logger.Warn("tutor llm call failed", zap.String("op", op), zap.Error(err))

	var inv *llm.ErrInvalidResponse
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return &buddyapi.BackendError{Status: http.StatusGatewayTimeout, Message: msgTimeout}
	case errors.As(err, &inv) && op == "practice":
		return &buddyapi.BackendError{Status: http.StatusBadGateway, Message: msgMalformedQuiz}
	default:
		return &buddyapi.BackendError{Status: http.StatusBadGateway, Message: "Tutor error: " + err.Error()}
	}
}

// quizState tracks one learner's progress through a quiz.
type quizState struct {
	mu sync.Mutex

	id        string
	topic     string
	questions []store.QuestionRecord
	current   int // index of the next question to answer
	correct   int
}

func (q *quizState) done() bool { return q.current >= len(q.questions) }

func (q *quizState) question(i int) *quiz.Question {
	rec := q.questions[i]
	out := &quiz.Question{Number: i + 1, Total: len(q.questions), Body: rec.Body}
	for j, opt := range rec.Options {
		out.Options = append(out.Options, quiz.Option{Letter: rune('A' + j), Text: opt})
	}
	return out
}

func (q *quizState) scoreText() string {
	return fmt.Sprintf("Quiz complete! You scored %d/%d on %s.", q.correct, len(q.questions), q.topic)
}

func (q *quizState) finishedText() string {
	return q.scoreText() + ` Send "generate" with a topic to start another quiz.`
}
