package components

import (
	"strings"
	"testing"

	"charm.land/lipgloss/v2"

	"github.com/learnbuddy/learnbuddy/internal/quiz"
)

func TestAccuracyBarWidth(t *testing.T) {
	tests := []struct {
		name     string
		accuracy float64
		want     string
	}{
		{"empty", 0, "0%"},
		{"partial", 42, "42%"},
		{"full", 100, "100%"},
		{"clamped", 140, "140%"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bar := AccuracyBar{Label: "Fractions", LabelWidth: 12, Accuracy: tt.accuracy, Width: 50}
			view := bar.View()
			if got := lipgloss.Width(view); got != 50 {
				t.Errorf("width = %d, want 50", got)
			}
			if !strings.Contains(view, tt.want) {
				t.Errorf("view missing %q: %q", tt.want, view)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"short", 10, "short"},
		{"photosynthesis", 6, "photo…"},
		{"ab", 1, "a"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.n); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
		}
	}
}

func TestQuizCardMarksChoice(t *testing.T) {
	q := &quiz.Question{
		Number: 2, Total: 5, Body: "What is 3/4 as a decimal?",
		Options: []quiz.Option{{Letter: 'A', Text: "0.34"}, {Letter: 'B', Text: "0.75"}},
	}

	open := QuizCard{Question: q, Active: true}.View(60)
	if !strings.Contains(open, "Question 2 of 5") || !strings.Contains(open, "Press A/B to answer") {
		t.Errorf("open card missing header or hint:\n%s", open)
	}

	answered := QuizCard{Question: q, Chosen: 'B'}.View(60)
	if !strings.Contains(answered, "▸ B)") {
		t.Errorf("chosen option should be marked:\n%s", answered)
	}
	if strings.Contains(answered, "to answer") {
		t.Error("answered card should not prompt")
	}
}

func TestFeedbackLine(t *testing.T) {
	if got := FeedbackLine(&quiz.Feedback{Correct: true}, 40); !strings.Contains(got, "Correct!") {
		t.Errorf("got %q", got)
	}
	got := FeedbackLine(&quiz.Feedback{Explanation: "The answer is B."}, 60)
	if !strings.Contains(got, "Incorrect.") || !strings.Contains(got, "The answer is B.") {
		t.Errorf("got %q", got)
	}
}

func TestModeBar(t *testing.T) {
	view := ModeBar{Labels: []string{"Ask", "Practice"}, Active: 1}.View()
	if !strings.Contains(view, "Ask") || !strings.Contains(view, "Practice") {
		t.Errorf("got %q", view)
	}
}

func TestChatInputTake(t *testing.T) {
	in := NewChatInput("type here")
	in.Model.SetValue("hello")
	if got := in.Take(); got != "hello" {
		t.Errorf("Take() = %q", got)
	}
	if in.Value() != "" {
		t.Error("Take should clear the input")
	}
}
