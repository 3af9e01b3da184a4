package convo

import (
	"fmt"
	"strings"
)

// Mode selects how a message is framed and how the reply is shown.
type Mode string

const (
	ModeAsk             Mode = "ask"
	ModePractice        Mode = "practice"
	ModeRecommendations Mode = "recommendations"
)

var modeLabels = map[Mode]string{
	ModeAsk:             "Ask Question",
	ModePractice:        "Practice Quiz",
	ModeRecommendations: "Recommendations",
}

// Modes returns every mode in display order.
func Modes() []Mode {
	return []Mode{ModeAsk, ModePractice, ModeRecommendations}
}

// ParseMode maps a user-supplied name to a Mode. Matching ignores case.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case ModeAsk, ModePractice, ModeRecommendations:
		return m, nil
	case "":
		return ModeAsk, nil
	default:
		return "", fmt.Errorf("unknown mode %q (want ask, practice or recommendations)", s)
	}
}

// Label returns the human-readable name of the mode.
func (m Mode) Label() string {
	if l, ok := modeLabels[m]; ok {
		return l
	}
	return string(m)
}

// Next returns the mode after m in display order, wrapping around.
func (m Mode) Next() Mode {
	modes := Modes()
	for i, candidate := range modes {
		if candidate == m {
			return modes[(i+1)%len(modes)]
		}
	}
	return ModeAsk
}
