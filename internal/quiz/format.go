package quiz

import (
	"fmt"
	"strings"
)

// Format renders u in the transcript format that Parse reads. The local
// tutor backend uses it for every practice reply.
func Format(u Unit) string {
	var b strings.Builder
	writeUnit(&b, u)
	return b.String()
}

func writeUnit(b *strings.Builder, u Unit) {
	switch u := u.(type) {
	case *Question:
		writeQuestion(b, u)
	case *Feedback:
		if u.Correct {
			b.WriteString(successPhrase)
		} else {
			b.WriteString(failurePhrase)
		}
		if u.Explanation != "" {
			b.WriteString(" ")
			b.WriteString(u.Explanation)
		}
		if u.Next != nil {
			b.WriteString("\n\n")
			writeQuestion(b, u.Next)
		}
	case *Passthrough:
		b.WriteString(u.Text)
	}
}

func writeQuestion(b *strings.Builder, q *Question) {
	fmt.Fprintf(b, "%s %d of %d: %s\n", questionWord, q.Number, q.Total, q.Body)
	for _, o := range q.Options {
		fmt.Fprintf(b, "%c. %s\n", o.Letter, o.Text)
	}
}
