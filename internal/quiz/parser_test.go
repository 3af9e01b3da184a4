package quiz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Question(t *testing.T) {
	u := Parse("Question 2 of 5: What is H2O?A. WaterB. SaltC. SugarD. Iron")

	q, ok := u.(*Question)
	require.True(t, ok, "expected *Question, got %T", u)
	assert.Equal(t, &Question{
		Number: 2,
		Total:  5,
		Body:   "What is H2O?",
		Options: []Option{
			{Letter: 'A', Text: "Water"},
			{Letter: 'B', Text: "Salt"},
			{Letter: 'C', Text: "Sugar"},
			{Letter: 'D', Text: "Iron"},
		},
	}, q)
}

func TestParse_QuestionMultiline(t *testing.T) {
	text := "Question 4 of 10: Which planet is largest?\nA. Mars\nB. Jupiter\nC. Venus\nD. Earth\n"

	q, ok := Parse(text).(*Question)
	require.True(t, ok)
	assert.Equal(t, 4, q.Number)
	assert.Equal(t, 10, q.Total)
	assert.Equal(t, "Which planet is largest?", q.Body)
	assert.Equal(t, []rune{'A', 'B', 'C', 'D'}, q.Letters())
	assert.Equal(t, "Jupiter", q.Options[1].Text)
}

func TestParse_AnswerMarkerEndsOptions(t *testing.T) {
	q, ok := Parse("Question 1 of 3: 2 + 2 = ?A. 3B. 4ANSWER: B").(*Question)
	require.True(t, ok)
	assert.Equal(t, []Option{
		{Letter: 'A', Text: "3"},
		{Letter: 'B', Text: "4"},
	}, q.Options)
}

func TestParse_OptionsInLetterOrder(t *testing.T) {
	// "C." inside option A is not taken as a marker because B comes first.
	q, ok := Parse("Question 1 of 5: Which vitamin? A. Vitamin C. B. Iron").(*Question)
	require.True(t, ok)
	assert.Equal(t, []Option{
		{Letter: 'A', Text: "Vitamin C."},
		{Letter: 'B', Text: "Iron"},
	}, q.Options)
}

func TestParse_MissingLetterSkipped(t *testing.T) {
	q, ok := Parse("Question 1 of 5: Pick one. A. x C. y D. z").(*Question)
	require.True(t, ok)
	assert.Equal(t, []Option{
		{Letter: 'A', Text: "x"},
		{Letter: 'C', Text: "y"},
		{Letter: 'D', Text: "z"},
	}, q.Options)
	_, hasB := q.Option('B')
	assert.False(t, hasB)
}

func TestParse_MissingHeaderFallsBack(t *testing.T) {
	tests := []struct {
		name string
		text string
		body string
	}{
		{"no numbers", "Question: pick one A. x B. y", "Question: pick one"},
		{"word total", "Question 2 of five: pick A. x B. y", "Question 2 of five: pick"},
		{"missing colon", "Question 2 of 5 pick A. x B. y", "Question 2 of 5 pick"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, ok := Parse(tt.text).(*Question)
			require.True(t, ok)
			assert.Equal(t, defaultNumber, q.Number)
			assert.Equal(t, defaultTotal, q.Total)
			assert.Equal(t, tt.body, q.Body)
			assert.Len(t, q.Options, 2)
		})
	}
}

func TestParse_LaterHeaderWins(t *testing.T) {
	q, ok := Parse("Question time! Question 3 of 4: Capital of France?A. ParisB. Rome").(*Question)
	require.True(t, ok)
	assert.Equal(t, 3, q.Number)
	assert.Equal(t, 4, q.Total)
	assert.Equal(t, "Capital of France?", q.Body)
}

func TestParse_Passthrough(t *testing.T) {
	inputs := []string{
		"",
		"Hello! How can I help?",
		"Question everything.",
		"A. B. C.",
	}

	for _, in := range inputs {
		u := Parse(in)
		p, ok := u.(*Passthrough)
		require.True(t, ok, "input %q: expected *Passthrough, got %T", in, u)
		assert.Equal(t, in, p.Text)
	}
}

func TestParse_PassthroughIdempotent(t *testing.T) {
	inputs := []string{
		"Photosynthesis converts light into chemical energy.",
		"  padded text  ",
		"Question why A is first",
	}
	for _, in := range inputs {
		first, ok := Parse(in).(*Passthrough)
		require.True(t, ok, "input %q", in)
		assert.Equal(t, first, Parse(first.Text))
	}
}

func TestParse_OptionsBeforeHeader(t *testing.T) {
	// The only "A." sits before the header, so no option block follows the body.
	u := Parse("A. note. Question 1 of 5: what now?")
	_, ok := u.(*Passthrough)
	assert.True(t, ok, "expected *Passthrough, got %T", u)
}

func TestParse_FeedbackCorrect(t *testing.T) {
	u := Parse("✅ Correct! Water is H2O because...")

	fb, ok := u.(*Feedback)
	require.True(t, ok, "expected *Feedback, got %T", u)
	assert.True(t, fb.Correct)
	assert.Equal(t, "Water is H2O because...", fb.Explanation)
	assert.Nil(t, fb.Next)
}

func TestParse_FeedbackIncorrectWithNext(t *testing.T) {
	text := "❌ Incorrect. The answer is B. Plants absorb carbon dioxide.\n\n" +
		"Question 3 of 5: Which gas do plants release?\nA. Oxygen\nB. Methane\nC. Argon\nD. Neon"

	fb, ok := Parse(text).(*Feedback)
	require.True(t, ok)
	assert.False(t, fb.Correct)
	assert.Equal(t, "The answer is B. Plants absorb carbon dioxide.", fb.Explanation)
	require.NotNil(t, fb.Next)
	assert.Equal(t, 3, fb.Next.Number)
	assert.Equal(t, 5, fb.Next.Total)
	assert.Equal(t, "Which gas do plants release?", fb.Next.Body)
	assert.Equal(t, []rune{'A', 'B', 'C', 'D'}, fb.Next.Letters())
	assert.Equal(t, "Oxygen", fb.Next.Options[0].Text)
}

func TestParse_FeedbackSuccessTakesPrecedence(t *testing.T) {
	fb, ok := Parse("❌ was wrong before, now ✅ Correct! Nice.").(*Feedback)
	require.True(t, ok)
	assert.True(t, fb.Correct)
	assert.Equal(t, "Nice.", fb.Explanation)
}

func TestParse_FeedbackQuestionWordWithoutHeader(t *testing.T) {
	fb, ok := Parse("❌ Incorrect. Question marks matter here.").(*Feedback)
	require.True(t, ok)
	assert.Equal(t, "Question marks matter here.", fb.Explanation)
	assert.Nil(t, fb.Next)
}

func TestParse_FeedbackHeaderWithoutOptions(t *testing.T) {
	text := "✅ Correct! Well done.\n\nQuestion 5 of 5: no options follow"
	fb, ok := Parse(text).(*Feedback)
	require.True(t, ok)
	assert.Nil(t, fb.Next)
	assert.Equal(t, "Well done.\n\nQuestion 5 of 5: no options follow", fb.Explanation)
}

func TestParse_FeedbackAbbreviatedMarker(t *testing.T) {
	fb, ok := Parse("✅ Great job").(*Feedback)
	require.True(t, ok)
	assert.Equal(t, "Great job", fb.Explanation)
}

func TestParse_FeedbackNextIsQuestionOnly(t *testing.T) {
	// A second feedback marker in the tail must not nest a Feedback.
	text := "✅ Correct! Yes.\nQuestion 2 of 5: Pick ❌ A. x B. y"
	fb, ok := Parse(text).(*Feedback)
	require.True(t, ok)
	assert.Nil(t, fb.Next)
}

func TestFormat_RoundTrip(t *testing.T) {
	next := &Question{
		Number: 3,
		Total:  5,
		Body:   "What is the chemical symbol for gold?",
		Options: []Option{
			{Letter: 'A', Text: "Ag"},
			{Letter: 'B', Text: "Au"},
			{Letter: 'C', Text: "Gd"},
			{Letter: 'D', Text: "Go"},
		},
	}

	units := []Unit{
		next,
		&Feedback{Correct: true, Explanation: "Gold comes from the Latin aurum.", Next: next},
		&Feedback{Correct: false, Explanation: "The correct answer is B."},
		&Passthrough{Text: "Just chatting."},
	}

	for _, u := range units {
		t.Run(string(u.Kind()), func(t *testing.T) {
			assert.Equal(t, u, Parse(Format(u)))
		})
	}
}

func TestQuestion_Option(t *testing.T) {
	q := &Question{Options: []Option{{Letter: 'A', Text: "x"}, {Letter: 'B', Text: "y"}}}

	o, ok := q.Option('B')
	assert.True(t, ok)
	assert.Equal(t, "y", o.Text)

	_, ok = q.Option('D')
	assert.False(t, ok)
}
