// Package report is the screen for sending a session summary to Slack.
package report

import (
	"context"
	"strings"

	"charm.land/bubbles/v2/spinner"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/learnbuddy/learnbuddy/internal/buddyapi"
	"github.com/learnbuddy/learnbuddy/internal/convo"
	"github.com/learnbuddy/learnbuddy/internal/router"
	"github.com/learnbuddy/learnbuddy/internal/screen"
	"github.com/learnbuddy/learnbuddy/internal/ui/layout"
	"github.com/learnbuddy/learnbuddy/internal/ui/theme"
)

// Reporter sends report requests to the backend.
type Reporter interface {
	Report(ctx context.Context, req buddyapi.ReportRequest) (*buddyapi.ReportResponse, error)
}

// Defaults pre-fills the form.
type Defaults struct {
	UserName string
	Channel  string
}

const (
	fieldName = iota
	fieldChannel
	fieldCount
)

type doneMsg struct {
	resp *buddyapi.ReportResponse
	err  error
}

// Screen asks for a name and channel, then posts the report.
type Screen struct {
	ctx       context.Context
	reporter  Reporter
	sessionID string

	fields  [fieldCount]textinput.Model
	focus   int
	spinner spinner.Model

	sending bool
	sent    bool
	result  string
	failed  bool
}

var _ screen.Screen = (*Screen)(nil)

// New creates the report screen for sessionID, which may be empty to
// report on everything practiced today.
func New(ctx context.Context, reporter Reporter, sessionID string, d Defaults) *Screen {
	name := textinput.New()
	name.Prompt = "Name     › "
	name.Placeholder = "Learner"
	name.CharLimit = 64
	name.SetValue(d.UserName)
	name.Focus()

	channel := textinput.New()
	channel.Prompt = "Channel  › "
	channel.Placeholder = "default channel"
	channel.CharLimit = 80
	channel.SetValue(d.Channel)

	return &Screen{
		ctx:       ctx,
		reporter:  reporter,
		sessionID: sessionID,
		fields:    [fieldCount]textinput.Model{name, channel},
		spinner:   spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
}

func (s *Screen) Title() string {
	return "Session Report"
}

func (s *Screen) Init() tea.Cmd {
	return textinput.Blink
}

// KeyHints implements screen.KeyHintProvider.
func (s *Screen) KeyHints() []layout.KeyHint {
	if s.sent {
		return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
	}
	return []layout.KeyHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "Enter", Description: "Send"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case doneMsg:
		s.sending = false
		s.sent = true
		switch {
		case msg.err != nil:
			s.failed = true
			s.result = "Report failed: " + msg.err.Error()
		case !msg.resp.Success:
			s.failed = true
			s.result = msg.resp.Message
			if s.result == "" {
				s.result = "The report was not sent."
			}
		default:
			s.result = msg.resp.Message
			if s.result == "" {
				s.result = "Report sent."
			}
		}
		return s, nil

	case spinner.TickMsg:
		if !s.sending {
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd

	case tea.KeyPressMsg:
		return s, s.handleKey(msg)
	}

	return s, nil
}

func (s *Screen) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		return func() tea.Msg { return router.PopScreenMsg{} }
	}
	if s.sending || s.sent {
		return nil
	}

	switch msg.String() {
	case "tab", "down":
		return s.setFocus((s.focus + 1) % fieldCount)
	case "shift+tab", "up":
		return s.setFocus((s.focus + fieldCount - 1) % fieldCount)
	case "enter":
		return s.send()
	}

	var cmd tea.Cmd
	s.fields[s.focus], cmd = s.fields[s.focus].Update(msg)
	return cmd
}

func (s *Screen) setFocus(i int) tea.Cmd {
	s.fields[s.focus].Blur()
	s.focus = i
	return s.fields[s.focus].Focus()
}

func (s *Screen) send() tea.Cmd {
	req := buddyapi.ReportRequest{
		SessionID: s.sessionID,
		UserName:  strings.TrimSpace(s.fields[fieldName].Value()),
		Channel:   strings.TrimSpace(s.fields[fieldChannel].Value()),
	}
	if req.UserName == "" {
		req.UserName = "Learner"
	}
	s.sending = true

	ctx, reporter := s.ctx, s.reporter
	return tea.Batch(s.spinner.Tick, func() tea.Msg {
		resp, err := reporter.Report(ctx, req)
		return doneMsg{resp: resp, err: err}
	})
}

func (s *Screen) View(width, height int) string {
	inner := min(max(width-8, 30), 64)

	scope := "Covers everything you practiced today."
	if s.sessionID != "" {
		scope = "Covers quiz session " + convo.SessionLabel(s.sessionID)
	}

	lines := []string{
		theme.Title.Render("Send a session report to Slack"),
		theme.Subtitle.Render(scope),
		"",
	}
	for i := range s.fields {
		s.fields[i].SetWidth(inner - lipgloss.Width(s.fields[i].Prompt))
		lines = append(lines, s.fields[i].View())
	}
	lines = append(lines, "")

	switch {
	case s.sending:
		lines = append(lines, s.spinner.View()+theme.SystemLine.Render(" Sending report..."))
	case s.sent && s.failed:
		lines = append(lines, theme.Incorrect.Render("✗ ")+theme.ErrorLine.Render(s.result))
	case s.sent:
		lines = append(lines, theme.Correct.Render("✓ ")+theme.Body.Render(s.result))
	default:
		lines = append(lines, theme.Hint.Render("Leave the channel empty to use the server default."))
	}

	card := theme.Card.Width(inner + 4).Render(strings.Join(lines, "\n"))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}
