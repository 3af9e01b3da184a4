package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit   int    // max results (0 = unlimited)
	Purpose string // only events with this purpose ("" = all)
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMRequestEvent is a stored LLM request.
type LLMRequestEvent struct {
	ID        int
	Timestamp time.Time
	LLMRequestEventData
}

// UsageStat aggregates LLM requests by purpose or by model.
type UsageStat struct {
	Key          string // purpose or model
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int
}

// EventRepo records and reads the LLM request log.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns events newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEvent, error)

	// GetLLMEvent returns one event, or nil if it does not exist.
	GetLLMEvent(ctx context.Context, id int) (*LLMRequestEvent, error)

	LLMUsageByPurpose(ctx context.Context) ([]UsageStat, error)
	LLMUsageByModel(ctx context.Context) ([]UsageStat, error)
}

// QuizSession is a generated practice quiz.
type QuizSession struct {
	ID        string
	Topic     string
	CreatedAt time.Time
	Questions []QuestionRecord
}

// QuestionRecord is one stored multiple-choice question. Options are in
// letter order starting at A; Answer is the correct letter.
type QuestionRecord struct {
	ID          int
	SessionID   string
	Position    int // 1-based
	Topic       string
	Body        string
	Options     []string
	Answer      string
	Explanation string
}

// AnswerRecord is one graded learner answer.
type AnswerRecord struct {
	ID         int
	SessionID  string
	QuestionID int
	Topic      string
	Answer     string
	Correct    bool
	AnsweredAt time.Time
}

// TopicStat is the learner's record on one topic.
type TopicStat struct {
	Topic     string
	Correct   int
	Incorrect int
}

// Accuracy returns the percentage of correct answers, 0-100.
func (t TopicStat) Accuracy() float64 {
	total := t.Correct + t.Incorrect
	if total == 0 {
		return 0
	}
	return float64(t.Correct) * 100 / float64(total)
}

// SessionSummary describes progress through one quiz.
type SessionSummary struct {
	SessionID string
	Topic     string
	CreatedAt time.Time
	Questions int
	Answered  int
	Correct   int

	// LastAnswerAt is zero until the first answer is recorded.
	LastAnswerAt time.Time
}

// QuizRepo stores generated quizzes and graded answers.
type QuizRepo interface {
	// CreateSession stores a session and its questions in one transaction.
	// Question IDs are filled in on success.
	CreateSession(ctx context.Context, sess *QuizSession) error

	// Session loads a session with its questions, or nil if unknown.
	Session(ctx context.Context, id string) (*QuizSession, error)

	// RecordAnswer appends a graded answer.
	RecordAnswer(ctx context.Context, ans *AnswerRecord) error

	// Answers returns a session's answers in the order given.
	Answers(ctx context.Context, sessionID string) ([]AnswerRecord, error)

	// TopicStats returns per-topic results, weakest accuracy first.
	TopicStats(ctx context.Context) ([]TopicStat, error)

	// Summary reports progress through a session, or nil if unknown.
	Summary(ctx context.Context, sessionID string) (*SessionSummary, error)

	// Sessions summarizes every session created at or after since, oldest
	// first.
	Sessions(ctx context.Context, since time.Time) ([]SessionSummary, error)
}
