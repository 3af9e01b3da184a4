// Package slack posts learning session reports to a Slack channel.
package slack

import (
	"fmt"
	"strings"
	"time"

	slackapi "github.com/slack-go/slack"

	"github.com/learnbuddy/learnbuddy/internal/store"
)

// Report is one learner's session summary.
type Report struct {
	UserName     string
	Date         time.Time
	Duration     time.Duration
	QuizzesTaken int
	Correct      int
	Total        int
	Topics       []TopicScore
}

// TopicScore is the learner's accuracy on one topic, 0-100.
type TopicScore struct {
	Name     string
	Accuracy float64
}

// Accuracy returns the overall score as a percentage.
func (r Report) Accuracy() float64 {
	if r.Total == 0 {
		return 0
	}
	return float64(r.Correct) * 100 / float64(r.Total)
}

// BuildReport summarizes sessions for user. Topic scores come from stats,
// restricted to the topics the sessions covered. The report ends at the
// last recorded answer, or at now when nothing was answered.
func BuildReport(user string, sessions []store.SessionSummary, stats []store.TopicStat, now time.Time) Report {
	r := Report{UserName: user, Date: now, QuizzesTaken: len(sessions)}
	if len(sessions) == 0 {
		return r
	}

	start := sessions[0].CreatedAt
	var end time.Time
	covered := make(map[string]bool)
	for _, s := range sessions {
		r.Correct += s.Correct
		r.Total += s.Answered
		covered[s.Topic] = true
		if s.CreatedAt.Before(start) {
			start = s.CreatedAt
		}
		if s.LastAnswerAt.After(end) {
			end = s.LastAnswerAt
		}
	}
	if end.IsZero() {
		end = now
	}
	r.Date = end
	if d := end.Sub(start); d > 0 {
		r.Duration = d
	}

	for _, st := range stats {
		if covered[st.Topic] {
			r.Topics = append(r.Topics, TopicScore{Name: st.Topic, Accuracy: st.Accuracy()})
		}
	}
	return r
}

const reportTitle = "Learning Buddy Session Report"

func mrkdwn(s string) *slackapi.TextBlockObject {
	return slackapi.NewTextBlockObject(slackapi.MarkdownType, s, false, false)
}

// Blocks lays out r as Slack blocks.
func Blocks(r Report) []slackapi.Block {
	blocks := []slackapi.Block{
		slackapi.NewHeaderBlock(slackapi.NewTextBlockObject(slackapi.PlainTextType, "📚 "+reportTitle, true, false)),
		slackapi.NewSectionBlock(nil, []*slackapi.TextBlockObject{
			mrkdwn("*Session Date:*\n" + r.Date.Format("January 02, 2006 at 03:04 PM")),
			mrkdwn(fmt.Sprintf("*Duration:*\n%d minutes", int(r.Duration.Round(time.Minute).Minutes()))),
		}, nil),
		slackapi.NewSectionBlock(nil, []*slackapi.TextBlockObject{
			mrkdwn(fmt.Sprintf("*Quizzes Taken:*\n%d", r.QuizzesTaken)),
			mrkdwn(fmt.Sprintf("*Overall Score:*\n%d/%d (%.1f%%)", r.Correct, r.Total, r.Accuracy())),
		}, nil),
		slackapi.NewDividerBlock(),
		slackapi.NewSectionBlock(mrkdwn("*Topic Performance:*"), nil, nil),
		slackapi.NewSectionBlock(mrkdwn(topicList(r.Topics)), nil, nil),
	}
	if r.UserName != "" {
		blocks = append(blocks, slackapi.NewContextBlock("", mrkdwn(fmt.Sprintf("Report for: *%s*", r.UserName))))
	}
	return blocks
}

func topicList(topics []TopicScore) string {
	if len(topics) == 0 {
		return "_No topic data available_"
	}
	lines := make([]string, len(topics))
	for i, t := range topics {
		lines[i] = fmt.Sprintf("• %s: %.0f%% accuracy", t.Name, t.Accuracy)
	}
	return strings.Join(lines, "\n")
}
