package quiz

import (
	"strconv"
	"strings"
)

// Markers of the backend's transcript format:
//
//	Question <N> of <M>:<body>A. <opt>B. <opt>[C. <opt>][D. <opt>][ANSWER: <letter>]
//
// Feedback starts with "✅ Correct!" or "❌ Incorrect." and may be followed
// directly by the next "Question N of M:" block.
const (
	questionWord  = "Question"
	firstOption   = "A."
	answerMarker  = "ANSWER:"
	successMarker = "✅"
	failureMarker = "❌"
	successPhrase = "✅ Correct!"
	failurePhrase = "❌ Incorrect."
)

// Used when the text looks like a quiz but carries no "Question N of M:" header.
const (
	defaultNumber = 1
	defaultTotal  = 5
)

var optionLetters = []rune{'A', 'B', 'C', 'D'}

// Parse converts a transcript produced by the tutor backend into a Unit.
// It never fails: text that does not follow the format comes back as a
// *Passthrough holding the input unchanged.
func Parse(text string) Unit {
	if strings.Contains(text, successMarker) || strings.Contains(text, failureMarker) {
		return parseFeedback(text)
	}
	if !IsQuizShaped(text) {
		return &Passthrough{Text: text}
	}
	if q := parseQuestion(text); q != nil {
		return q
	}
	return &Passthrough{Text: text}
}

// IsQuizShaped reports whether text passes the cheap quiz heuristic: it
// mentions "Question" and has an "A." option marker.
func IsQuizShaped(text string) bool {
	return strings.Contains(text, questionWord) && strings.Contains(text, firstOption)
}

func parseFeedback(text string) *Feedback {
	fb := &Feedback{Correct: strings.Contains(text, successMarker)}

	phrase, marker := failurePhrase, failureMarker
	if fb.Correct {
		phrase, marker = successPhrase, successMarker
	}
	explanation := textAfter(text, phrase, marker)

	if strings.Contains(explanation, questionWord) {
		if h, ok := findHeader(explanation); ok {
			// The chained block starts at the header, so it keeps its
			// "Question " prefix.
			if next, ok := Parse(explanation[h.start:]).(*Question); ok {
				fb.Explanation = strings.TrimSpace(explanation[:h.start])
				fb.Next = next
				return fb
			}
		}
	}

	fb.Explanation = strings.TrimSpace(explanation)
	return fb
}

// textAfter returns the text following phrase, or following the bare marker
// when the backend abbreviated the phrase.
func textAfter(text, phrase, marker string) string {
	if i := strings.Index(text, phrase); i >= 0 {
		return text[i+len(phrase):]
	}
	if i := strings.Index(text, marker); i >= 0 {
		return text[i+len(marker):]
	}
	return text
}

// parseQuestion returns nil when no option block follows the body.
func parseQuestion(text string) *Question {
	q := &Question{Number: defaultNumber, Total: defaultTotal}

	bodyStart := 0
	if h, ok := findHeader(text); ok {
		q.Number, q.Total = h.number, h.total
		bodyStart = h.end
	}

	i := strings.Index(text[bodyStart:], firstOption)
	if i < 0 {
		return nil
	}
	optStart := bodyStart + i

	q.Body = strings.TrimSpace(text[bodyStart:optStart])
	q.Options = scanOptions(text[optStart:])
	return q
}

type optionMark struct {
	letter rune
	pos    int
}

// scanOptions reads the option block, which must begin with "A.". The first
// pass locates the letter markers in A–D order, stopping at "ANSWER:"; the
// second slices the text between them.
func scanOptions(block string) []Option {
	if i := strings.Index(block, answerMarker); i >= 0 {
		block = block[:i]
	}

	marks := []optionMark{{letter: optionLetters[0], pos: 0}}
	cursor := len(firstOption)
	for _, letter := range optionLetters[1:] {
		marker := string(letter) + "."
		i := strings.Index(block[cursor:], marker)
		if i < 0 {
			continue
		}
		marks = append(marks, optionMark{letter: letter, pos: cursor + i})
		cursor += i + len(marker)
	}

	options := make([]Option, 0, len(marks))
	for k, m := range marks {
		stop := len(block)
		if k+1 < len(marks) {
			stop = marks[k+1].pos
		}
		options = append(options, Option{
			Letter: m.letter,
			Text:   strings.TrimSpace(block[m.pos+2 : stop]),
		})
	}
	return options
}

// header is a located "Question <N> of <M>:" marker. start is the offset of
// "Question", end the offset just past the colon.
type header struct {
	start, end    int
	number, total int
}

// findHeader returns the first well-formed header in text.
func findHeader(text string) (header, bool) {
	offset := 0
	for {
		i := strings.Index(text[offset:], questionWord)
		if i < 0 {
			return header{}, false
		}
		start := offset + i
		if h, ok := readHeader(text, start); ok {
			return h, true
		}
		offset = start + len(questionWord)
	}
}

func readHeader(text string, start int) (header, bool) {
	h := header{start: start}
	pos := start + len(questionWord)

	var ok bool
	if pos, ok = skipBlanks(text, pos); !ok {
		return h, false
	}
	if h.number, pos, ok = readNumber(text, pos); !ok {
		return h, false
	}
	if pos, ok = skipBlanks(text, pos); !ok {
		return h, false
	}
	if !strings.HasPrefix(text[pos:], "of") {
		return h, false
	}
	if pos, ok = skipBlanks(text, pos+len("of")); !ok {
		return h, false
	}
	if h.total, pos, ok = readNumber(text, pos); !ok {
		return h, false
	}
	if pos >= len(text) || text[pos] != ':' {
		return h, false
	}
	h.end = pos + 1
	return h, true
}

// skipBlanks advances past at least one space or tab.
func skipBlanks(text string, pos int) (int, bool) {
	i := pos
	for i < len(text) && (text[i] == ' ' || text[i] == '\t') {
		i++
	}
	return i, i > pos
}

func readNumber(text string, pos int) (int, int, bool) {
	i := pos
	for i < len(text) && text[i] >= '0' && text[i] <= '9' {
		i++
	}
	if i == pos {
		return 0, pos, false
	}
	n, err := strconv.Atoi(text[pos:i])
	if err != nil {
		return 0, pos, false
	}
	return n, i, true
}
