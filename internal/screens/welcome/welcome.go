// Package welcome is the splash screen shown before the chat opens.
package welcome

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/learnbuddy/learnbuddy/internal/router"
	"github.com/learnbuddy/learnbuddy/internal/screen"
	"github.com/learnbuddy/learnbuddy/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	phase1End    = 500 * time.Millisecond
	phase2End    = 1500 * time.Millisecond
	totalDur     = 4500 * time.Millisecond
)

// Tagline is shown under the banner once the animation reaches it.
const Tagline = "Ask, practice, and see what to review next."

var bookFrames = []string{
	`    ______ ______
  _/      Y      \_
 // ~~ ~~ | ~~ ~  \\
//  ~ ~~  | ~~ ~~  \\
//________.|.________\\
'----------'-'----------'`,
	`    ______ ______
  _/      Y   ⁄  \_
 // ~~ ~~ | ~⁄ ~  \\
//  ~ ~~  | ⁄~ ~~  \\
//________.|.________\\
'----------'-'----------'`,
}

// glints cycle beside the book once it is open
var glints = []string{"✦", "·"}

type tickMsg time.Time

// WelcomeScreen shows a short splash animation, then hands over to the
// screen produced by next on the first key press.
type WelcomeScreen struct {
	next         func() screen.Screen
	elapsed      time.Duration
	tickCount    int
	transitioned bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen that replaces itself with next().
func New(next func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{next: next}
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case tickMsg:
		if w.transitioned {
			return w, nil
		}
		if w.elapsed < totalDur {
			w.elapsed += tickInterval
		}
		w.tickCount++
		return w, tick()

	case tea.KeyPressMsg:
		return w, w.transition()
	}

	return w, nil
}

func (w *WelcomeScreen) transition() tea.Cmd {
	if w.transitioned {
		return nil
	}
	w.transitioned = true
	next := w.next()
	return func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
}

func (w *WelcomeScreen) View(width, height int) string {
	bookStyle := lipgloss.NewStyle().Foreground(theme.Accent)

	frame := bookFrames[0]
	if w.elapsed >= phase1End && w.elapsed < phase2End {
		// Page turn while the banner is still hidden.
		frame = bookFrames[w.tickCount%len(bookFrames)]
	}
	book := bookStyle.Render(frame)

	if w.elapsed >= phase1End {
		glint := lipgloss.NewStyle().Foreground(theme.Secondary).Render(glints[w.tickCount%len(glints)])
		lines := strings.Split(book, "\n")
		lines[0] = glint + "  " + lines[0] + "  " + glint
		book = strings.Join(lines, "\n")
	}

	sections := []string{book}

	if w.elapsed >= phase2End {
		sections = append(sections,
			"",
			RenderBanner(width),
			lipgloss.NewStyle().Foreground(theme.TextDim).Render("L E A R N I N G"),
			"",
			lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(Tagline),
			"",
			lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Render("press any key to start"),
		)
	}

	content := lipgloss.JoinVertical(lipgloss.Center, sections...)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
