package quiz

// Unit is one structured piece of a quiz transcript: a question, feedback on
// an answer, or text that did not look like a quiz at all.
//
// The concrete types are *Question, *Feedback and *Passthrough.
type Unit interface {
	// Kind names the unit for logging and display decisions.
	Kind() Kind

	unit()
}

// Kind identifies the concrete type of a Unit.
type Kind string

const (
	KindQuestion    Kind = "question"
	KindFeedback    Kind = "feedback"
	KindPassthrough Kind = "passthrough"
)

// Option is a single lettered answer choice.
type Option struct {
	// Letter is the option tag, 'A' through 'D'.
	Letter rune

	// Text is the option text with surrounding whitespace removed.
	Text string
}

// Question is a multiple-choice question from the transcript.
type Question struct {
	// Number is the 1-based position of this question in the quiz.
	Number int

	// Total is the announced number of questions in the quiz.
	Total int

	// Body is the question prompt.
	Body string

	// Options holds the choices in source order.
	Options []Option
}

func (*Question) Kind() Kind { return KindQuestion }
func (*Question) unit()      {}

// Letters returns the option letters in source order.
func (q *Question) Letters() []rune {
	letters := make([]rune, len(q.Options))
	for i, o := range q.Options {
		letters[i] = o.Letter
	}
	return letters
}

// Option returns the option tagged with letter, if present.
func (q *Question) Option(letter rune) (Option, bool) {
	for _, o := range q.Options {
		if o.Letter == letter {
			return o, true
		}
	}
	return Option{}, false
}

// Feedback is the backend's verdict on a submitted answer. Quizzes are a
// linear chain, so at most one follow-up question rides along.
type Feedback struct {
	Correct     bool
	Explanation string

	// Next is the following question when the backend concatenated it onto
	// the feedback text. Nil otherwise.
	Next *Question
}

func (*Feedback) Kind() Kind { return KindFeedback }
func (*Feedback) unit()      {}

// Passthrough carries text that is not quiz-shaped, unchanged.
type Passthrough struct {
	Text string
}

func (*Passthrough) Kind() Kind { return KindPassthrough }
func (*Passthrough) unit()      {}
