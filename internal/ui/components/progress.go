package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/learnbuddy/learnbuddy/internal/ui/theme"
)

// AccuracyBar is a labelled horizontal bar for a topic's accuracy.
type AccuracyBar struct {
	Label      string
	LabelWidth int     // pads labels so bars line up; 0 disables padding
	Accuracy   float64 // 0-100
	Width      int
}

// View renders the bar with its percentage.
func (p AccuracyBar) View() string {
	label := p.Label
	if p.LabelWidth > 0 {
		label = truncate(label, p.LabelWidth)
		label += strings.Repeat(" ", p.LabelWidth-lipgloss.Width(label))
	}
	result := lipgloss.NewStyle().Foreground(theme.Text).Render(label) + "  "

	const percentWidth = 6 // "  100%"
	barWidth := p.Width - lipgloss.Width(result) - percentWidth
	if barWidth < 4 {
		barWidth = 4
	}

	filled := int(float64(barWidth) * p.Accuracy / 100)
	filled = max(0, min(filled, barWidth))

	fill := theme.Success
	switch {
	case p.Accuracy < 50:
		fill = theme.Error
	case p.Accuracy < 75:
		fill = theme.Accent
	}

	result += lipgloss.NewStyle().Background(fill).Render(strings.Repeat(" ", filled))
	result += lipgloss.NewStyle().Background(theme.Border).Render(strings.Repeat(" ", barWidth-filled))
	result += lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("  %3.0f%%", p.Accuracy))

	return result
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}
