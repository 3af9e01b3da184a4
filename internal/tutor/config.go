package tutor

import "time"

// QuestionsPerQuiz is the fixed length of a generated practice quiz.
const QuestionsPerQuiz = 5

// Config holds tutor settings.
type Config struct {
	AskMaxTokens      int
	PracticeMaxTokens int
	Temperature       float64

	// SessionTTL is how long an idle quiz stays in memory. Sessions that
	// fall out of memory are reloaded from the store.
	SessionTTL time.Duration

	// Timeout bounds each LLM call, retries included. Zero means no limit
	// beyond the caller's context.
	Timeout time.Duration
}

// DefaultConfig returns sensible defaults for the tutor.
func DefaultConfig() Config {
	return Config{
		AskMaxTokens:      1024,
		PracticeMaxTokens: 2048,
		Temperature:       0.7,
		SessionTTL:        time.Hour,
	}
}
