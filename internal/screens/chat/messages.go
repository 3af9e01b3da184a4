package chat

import (
	"github.com/learnbuddy/learnbuddy/internal/buddyapi"
	"github.com/learnbuddy/learnbuddy/internal/convo"
	"github.com/learnbuddy/learnbuddy/internal/quiz"
)

// EventMsg delivers a conversation event to the chat screen.
type EventMsg struct {
	Event convo.Event
}

type entryKind int

const (
	entryUser entryKind = iota
	entryBot
	entryQuestion
	entryFeedback
	entrySystem
	entryError
	entryTopics
)

// entry is one item of the transcript.
type entry struct {
	kind     entryKind
	text     string
	question *quiz.Question
	chosen   rune // answer given to question, 0 while open
	feedback *quiz.Feedback
	topics   []buddyapi.Topic
}
