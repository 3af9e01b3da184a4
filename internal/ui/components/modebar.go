package components

import (
	"strings"

	"github.com/learnbuddy/learnbuddy/internal/ui/theme"
)

// ModeBar renders the conversation modes as tabs with one highlighted.
type ModeBar struct {
	Labels []string
	Active int
}

// View renders the tabs on one line.
func (m ModeBar) View() string {
	tabs := make([]string, len(m.Labels))
	for i, l := range m.Labels {
		if i == m.Active {
			tabs[i] = theme.TabActive.Render(l)
		} else {
			tabs[i] = theme.TabInactive.Render(l)
		}
	}
	return strings.Join(tabs, " ")
}
