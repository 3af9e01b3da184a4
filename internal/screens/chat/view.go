package chat

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/learnbuddy/learnbuddy/internal/buddyapi"
	"github.com/learnbuddy/learnbuddy/internal/convo"
	"github.com/learnbuddy/learnbuddy/internal/ui/components"
	"github.com/learnbuddy/learnbuddy/internal/ui/theme"
)

const (
	modeBarHeight = 2 // tabs plus a blank line
	inputHeight   = 3 // status line, rule, input
	maxTopics     = 8
)

func (s *Screen) View(width, height int) string {
	if width != s.width || height != s.height {
		s.width, s.height = width, height
		s.viewport.SetWidth(width)
		s.viewport.SetHeight(max(height-modeBarHeight-inputHeight, 1))
		s.input.SetWidth(max(width-4, 10))
		s.refresh(true)
	}

	modes := convo.Modes()
	labels := make([]string, len(modes))
	active := 0
	for i, m := range modes {
		labels[i] = m.Label()
		if m == s.conv.Mode() {
			active = i
		}
	}
	bar := components.ModeBar{Labels: labels, Active: active}.View()

	status := ""
	if s.thinking {
		status = s.spinner.View() + theme.SystemLine.Render(" Thinking...")
	} else if q := s.activeQuestion(); q != nil {
		status = theme.Hint.Render("Press a letter to answer, or type your answer")
	}
	rule := lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", width))

	return strings.Join([]string{
		bar,
		"",
		s.viewport.View(),
		status,
		rule,
		s.input.View(),
	}, "\n")
}

// refresh re-renders the transcript into the viewport.
func (s *Screen) refresh(toBottom bool) {
	if s.width == 0 {
		return
	}
	s.viewport.SetContent(s.renderTranscript(s.width))
	if toBottom {
		s.viewport.GotoBottom()
	}
}

func (s *Screen) renderTranscript(width int) string {
	if len(s.entries) == 0 {
		return renderWelcome(width)
	}

	blocks := make([]string, 0, len(s.entries))
	for i := range s.entries {
		blocks = append(blocks, s.renderEntry(&s.entries[i], width))
	}
	return strings.Join(blocks, "\n\n")
}

func (s *Screen) renderEntry(e *entry, width int) string {
	wrap := lipgloss.NewStyle().Width(width - 2)
	switch e.kind {
	case entryUser:
		return theme.UserLabel.Render("You") + "\n" + wrap.Render(e.text)
	case entryBot:
		return theme.BotLabel.Render("Buddy") + "\n" + wrap.Render(e.text)
	case entryQuestion:
		card := components.QuizCard{
			Question: e.question,
			Chosen:   e.chosen,
			Active:   e == s.activeQuestion(),
		}
		return card.View(min(width-2, 76))
	case entryFeedback:
		return components.FeedbackLine(e.feedback, width-2)
	case entrySystem:
		return theme.SystemLine.Render("· " + e.text)
	case entryError:
		return theme.ErrorLine.Width(width - 2).Render(e.text)
	case entryTopics:
		return renderTopics(e.topics, width)
	}
	return ""
}

func renderTopics(topics []buddyapi.Topic, width int) string {
	var b strings.Builder
	b.WriteString(theme.BotLabel.Render("Recommendations"))
	b.WriteString("\n")
	if len(topics) == 0 {
		b.WriteString(theme.Hint.Render("No quiz results yet. Take a practice quiz to get recommendations."))
		return b.String()
	}

	b.WriteString(theme.Body.Render("Topics to review, weakest first:"))
	b.WriteString("\n")
	labelWidth := 0
	for _, t := range topics[:min(len(topics), maxTopics)] {
		labelWidth = max(labelWidth, lipgloss.Width(t.Topic))
	}
	labelWidth = min(labelWidth, width/3)

	for i, t := range topics {
		if i == maxTopics {
			fmt.Fprintf(&b, "\n%s", theme.Hint.Render(fmt.Sprintf("and %d more", len(topics)-maxTopics)))
			break
		}
		bar := components.AccuracyBar{
			Label:      t.Topic,
			LabelWidth: labelWidth,
			Accuracy:   t.Accuracy,
			Width:      min(width-2, 70),
		}
		b.WriteString("\n")
		b.WriteString(bar.View())
		b.WriteString(theme.Hint.Render(fmt.Sprintf("  %d✓ %d✗", t.CorrectCount, t.IncorrectCount)))
	}
	return b.String()
}

func renderWelcome(width int) string {
	body := strings.Join([]string{
		theme.Title.Render("Welcome to Learning Buddy"),
		"",
		theme.Body.Render("Ask a question, practice with a quiz, or see what to review next."),
		"",
		theme.Selected.Render("Ask Question") + theme.Hint.Render("     What is photosynthesis?"),
		theme.Selected.Render("Practice Quiz") + theme.Hint.Render("    Type a topic, e.g. fractions"),
		theme.Selected.Render("Recommendations") + theme.Hint.Render("  Your weakest topics"),
		"",
		theme.Hint.Render("Press Tab to switch modes."),
	}, "\n")
	return lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(theme.Card.Render(body))
}
