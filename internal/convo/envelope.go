package convo

import (
	"fmt"
	"strings"
)

const generatePrefix = "generate"

// Envelope is one outgoing chat message after mode framing.
type Envelope struct {
	Text          string
	Mode          Mode
	SessionHandle string
}

// Frame builds the envelope for input in the given mode. In practice mode a
// message is an answer when a quiz session is open and a topic request
// otherwise, unless the learner typed an explicit "generate ..." request.
func Frame(input string, mode Mode, session string) Envelope {
	input = strings.TrimSpace(input)
	explicit := strings.HasPrefix(strings.ToLower(input), generatePrefix)

	text := input
	switch {
	case mode == ModePractice && session != "" && !explicit:
		text = fmt.Sprintf("session:%s answer:%s", session, input)
	case mode == ModePractice && !explicit:
		text = "Generate practice: " + input
	}

	return Envelope{Text: text, Mode: mode, SessionHandle: session}
}
