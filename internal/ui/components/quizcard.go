package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/learnbuddy/learnbuddy/internal/quiz"
	"github.com/learnbuddy/learnbuddy/internal/ui/theme"
)

// QuizCard renders a multiple-choice question. Once the learner has
// answered, Chosen holds their letter and the option is marked.
type QuizCard struct {
	Question *quiz.Question
	Chosen   rune
	Active   bool // accepting an answer
}

// View renders the card at the given width.
func (c QuizCard) View(width int) string {
	q := c.Question
	inner := max(width-4, 10) // border and padding

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).
		Render(fmt.Sprintf("Question %d of %d", q.Number, q.Total)))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Width(inner).Render(q.Body))
	b.WriteString("\n\n")

	for _, opt := range q.Options {
		line := fmt.Sprintf("%c)  %s", opt.Letter, opt.Text)
		style := theme.Unselected
		switch {
		case c.Chosen == opt.Letter:
			style = theme.Selected
			line = "▸ " + line
		case c.Chosen != 0:
			style = lipgloss.NewStyle().Foreground(theme.TextDim)
			line = "  " + line
		default:
			line = "  " + line
		}
		b.WriteString(style.Width(inner).Render(line))
		b.WriteString("\n")
	}

	if c.Active {
		letters := make([]string, len(q.Options))
		for i, l := range q.Letters() {
			letters[i] = string(l)
		}
		b.WriteString("\n")
		b.WriteString(theme.Hint.Render("Press " + strings.Join(letters, "/") + " to answer"))
	}

	style := theme.QuizCard
	if !c.Active {
		style = theme.Card
	}
	return style.Width(width).Render(strings.TrimRight(b.String(), "\n"))
}

// FeedbackLine renders the verdict line of a feedback unit.
func FeedbackLine(fb *quiz.Feedback, width int) string {
	verdict := theme.Correct.Render("✅ Correct!")
	if !fb.Correct {
		verdict = theme.Incorrect.Render("❌ Incorrect.")
	}
	if fb.Explanation == "" {
		return verdict
	}
	return lipgloss.NewStyle().Width(width).Render(verdict + " " + fb.Explanation)
}
