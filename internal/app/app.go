// Package app wires the conversation controller to the terminal UI.
package app

import (
	"context"
	"fmt"
	"os"
	"time"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/learnbuddy/learnbuddy/internal/convo"
	"github.com/learnbuddy/learnbuddy/internal/router"
	"github.com/learnbuddy/learnbuddy/internal/screen"
	"github.com/learnbuddy/learnbuddy/internal/screens/chat"
	"github.com/learnbuddy/learnbuddy/internal/screens/report"
	"github.com/learnbuddy/learnbuddy/internal/screens/welcome"
	"github.com/learnbuddy/learnbuddy/internal/ui/layout"
)

// Options configures Run.
type Options struct {
	Chat convo.ChatService
	Recs convo.RecommendationService

	// Reporter sends session reports. Nil hides the report screen.
	Reporter report.Reporter

	Mode    convo.Mode
	Timeout time.Duration

	// User and Channel pre-fill the report form.
	User    string
	Channel string

	// SkipSplash opens the chat directly.
	SkipSplash bool

	Logger *zap.Logger
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	chat   *chat.Screen
	conv   *convo.Controller
	events *eventQueue
	ctx    context.Context

	width  int
	height int
}

func newAppModel(ctx context.Context, opts Options) AppModel {
	events := newEventQueue()
	conv := convo.New(opts.Chat, opts.Recs, events.push, convo.Config{
		Mode:           opts.Mode,
		RequestTimeout: opts.Timeout,
		Logger:         opts.Logger,
	})

	var reports chat.ReportFactory
	if opts.Reporter != nil {
		defaults := report.Defaults{UserName: opts.User, Channel: opts.Channel}
		reports = func(sessionID string) screen.Screen {
			return report.New(ctx, opts.Reporter, sessionID, defaults)
		}
	}
	chatScreen := chat.New(ctx, conv, reports)

	var initial screen.Screen = chatScreen
	if !opts.SkipSplash {
		initial = welcome.New(func() screen.Screen { return chatScreen })
	}

	return AppModel{
		router: router.New(initial),
		chat:   chatScreen,
		conv:   conv,
		events: events,
		ctx:    ctx,
	}
}

func (m AppModel) Init() tea.Cmd {
	return tea.Batch(m.router.Active().Init(), m.events.wait(m.ctx))
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case eventsMsg:
		// The transcript keeps growing while the report screen is open.
		cmds := make([]tea.Cmd, 0, len(msg)+1)
		for _, ev := range msg {
			cmds = append(cmds, m.chat.HandleEvent(ev))
		}
		return m, tea.Batch(append(cmds, m.events.wait(m.ctx))...)

	case spinner.TickMsg:
		if m.router.Active() != screen.Screen(m.chat) {
			_, cmd := m.chat.Update(msg)
			return m, tea.Batch(cmd, m.router.Update(msg))
		}

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true
	return v
}

func (m AppModel) render() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	status := ""
	if s := m.conv.SessionHandle(); s != "" {
		status = "Session " + convo.SessionLabel(s)
	}
	header := layout.RenderHeader(title, status, m.width)

	footerHints := []layout.KeyHint{{Key: "Ctrl+C", Description: "Quit"}}
	if p, ok := active.(screen.KeyHintProvider); ok {
		footerHints = p.KeyHints()
	} else if m.router.Depth() > 1 {
		footerHints = []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := max(m.height-headerHeight-footerHeight, 0)

	content := m.router.View(m.width, contentHeight)
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

// Run starts the Bubble Tea program and blocks until the learner quits.
func Run(ctx context.Context, opts Options) error {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(newAppModel(ctx, opts), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
