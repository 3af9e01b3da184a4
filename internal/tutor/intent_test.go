package tutor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseIntent(t *testing.T) {
	tests := []struct {
		name string
		msg  string
		want Intent
	}{
		{"plain question", "What is osmosis?", Intent{Kind: IntentAsk, Text: "What is osmosis?"}},
		{"framed practice", "Generate practice: cell biology", Intent{Kind: IntentGenerate, Topic: "cell biology"}},
		{"framed practice lower case", "generate PRACTICE:  Fractions ", Intent{Kind: IntentGenerate, Topic: "Fractions"}},
		{"free generate", "generate questions on the French Revolution", Intent{Kind: IntentGenerate, Topic: "the French Revolution"}},
		{"bare generate", "Generate", Intent{Kind: IntentGenerate, Topic: ""}},
		{"answer", "session:abc-123 answer:B", Intent{Kind: IntentAnswer, SessionID: "abc-123", Answer: "B"}},
		{"answer with spaces", "session: abc answer: the second one", Intent{Kind: IntentAnswer, SessionID: "abc", Answer: "the second one"}},
		{"session without answer", "session:abc", Intent{Kind: IntentAsk, Text: "session:abc"}},
		{"session without id", "session: answer:B", Intent{Kind: IntentAsk, Text: "session: answer:B"}},
		{"generate mid sentence", "Can you generate a quiz?", Intent{Kind: IntentAsk, Text: "Can you generate a quiz?"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseIntent(tt.msg))
		})
	}
}

func TestNormalizeAnswer(t *testing.T) {
	tests := []struct {
		in   string
		want rune
	}{
		{"B", 'B'},
		{"b", 'B'},
		{" c. ", 'C'},
		{"(d)", 'D'},
		{"A) Water", 'A'},
		{"Water", 0},
		{"", 0},
		{"42", 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, normalizeAnswer(tt.in), "normalizeAnswer(%q)", tt.in)
	}
}
