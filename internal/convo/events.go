package convo

import (
	"github.com/learnbuddy/learnbuddy/internal/buddyapi"
	"github.com/learnbuddy/learnbuddy/internal/quiz"
)

// EventKind identifies what a display event carries.
type EventKind int

const (
	// EventUser echoes the learner's message. Text is set.
	EventUser EventKind = iota
	// EventThinking marks the start of a request.
	EventThinking
	// EventBot is a verbatim reply outside practice mode. Text is set.
	EventBot
	// EventQuiz is a parsed practice reply. Unit is set.
	EventQuiz
	// EventSession announces a new quiz session. Text is the short label.
	EventSession
	// EventError reports a failed request. Text is the message, Err the cause.
	EventError
	// EventRecommendations carries fetched topics.
	EventRecommendations
	// EventCleared tells the view to drop its transcript and show the welcome panel.
	EventCleared
)

func (k EventKind) String() string {
	switch k {
	case EventUser:
		return "user"
	case EventThinking:
		return "thinking"
	case EventBot:
		return "bot"
	case EventQuiz:
		return "quiz"
	case EventSession:
		return "session"
	case EventError:
		return "error"
	case EventRecommendations:
		return "recommendations"
	case EventCleared:
		return "cleared"
	default:
		return "unknown"
	}
}

// Event is a display event produced by the Controller.
type Event struct {
	Kind   EventKind
	Text   string
	Unit   quiz.Unit
	Topics []buddyapi.Topic
	Err    error
}

// Sink receives display events in the order they occur.
type Sink func(Event)

// sessionLabelLen is how much of a session token is shown to the learner.
const sessionLabelLen = 8

// SessionLabel shortens a session token for display.
func SessionLabel(token string) string {
	if len(token) > sessionLabelLen {
		token = token[:sessionLabelLen]
	}
	return token + "..."
}
