package tutor

import (
	"strings"
)

// IntentKind classifies an incoming chat message.
type IntentKind int

const (
	IntentAsk IntentKind = iota
	IntentGenerate
	IntentAnswer
)

// Intent is a parsed chat message.
type Intent struct {
	Kind IntentKind

	// Topic is set for IntentGenerate and Text for IntentAsk.
	Topic string
	Text  string

	// SessionID and Answer are set for IntentAnswer.
	SessionID string
	Answer    string
}

const (
	sessionPrefix  = "session:"
	answerMarker   = "answer:"
	generatePhrase = "generate practice:"
	generateWord   = "generate"
)

// ParseIntent reads the framing the client applies in practice mode:
// "session:<id> answer:<X>" answers an open quiz and "Generate practice:
// <topic>" (or any message starting with "generate") asks for a new one.
// Anything else is a question.
func ParseIntent(message string) Intent {
	msg := strings.TrimSpace(message)
	lower := strings.ToLower(msg)

	if strings.HasPrefix(lower, sessionPrefix) {
		if in, ok := parseAnswer(msg); ok {
			return in
		}
	}

	if strings.HasPrefix(lower, generatePhrase) {
		return Intent{Kind: IntentGenerate, Topic: strings.TrimSpace(msg[len(generatePhrase):])}
	}
	if strings.HasPrefix(lower, generateWord) {
		return Intent{Kind: IntentGenerate, Topic: topicFromRequest(msg[len(generateWord):])}
	}

	return Intent{Kind: IntentAsk, Text: msg}
}

func parseAnswer(msg string) (Intent, bool) {
	rest := msg[len(sessionPrefix):]
	idx := strings.Index(strings.ToLower(rest), answerMarker)
	if idx < 0 {
		return Intent{}, false
	}
	id := strings.TrimSpace(rest[:idx])
	if id == "" {
		return Intent{}, false
	}
	return Intent{
		Kind:      IntentAnswer,
		SessionID: id,
		Answer:    strings.TrimSpace(rest[idx+len(answerMarker):]),
	}, true
}

// topicFromRequest turns the tail of a free-form "generate ..." request
// into a topic, dropping filler such as "questions on".
func topicFromRequest(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimLeft(s, ":")
	lower := strings.ToLower(s)
	for _, filler := range []string{"practice questions on ", "practice questions about ", "questions on ", "questions about ", "practice on ", "practice ", "a quiz on ", "quiz on "} {
		if i := strings.Index(lower, filler); i >= 0 {
			return strings.TrimSpace(s[i+len(filler):])
		}
	}
	return strings.TrimSpace(s)
}

// normalizeAnswer extracts an option letter from learner input such as
// "b", "B.", "(c)" or "D) Iron". It returns 0 when no letter is found.
func normalizeAnswer(answer string) rune {
	answer = strings.TrimSpace(answer)
	answer = strings.TrimLeft(answer, "([ ")
	if answer == "" {
		return 0
	}
	r := rune(strings.ToUpper(answer[:1])[0])
	if r < 'A' || r > 'Z' {
		return 0
	}
	// A bare word like "Water" is not a letter choice.
	if len(answer) > 1 {
		switch answer[1] {
		case '.', ')', ']', ' ', ':':
		default:
			return 0
		}
	}
	return r
}
