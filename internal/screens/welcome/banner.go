package welcome

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/learnbuddy/learnbuddy/internal/ui/theme"
)

var bannerRows = []string{
	"██████╗ ██╗   ██╗██████╗ ██████╗ ██╗   ██╗",
	"██╔══██╗██║   ██║██╔══██╗██╔══██╗╚██╗ ██╔╝",
	"██████╔╝██║   ██║██║  ██║██║  ██║ ╚████╔╝ ",
	"██╔══██╗██║   ██║██║  ██║██║  ██║  ╚██╔╝  ",
	"██████╔╝╚██████╔╝██████╔╝██████╔╝   ██║   ",
	"╚═════╝  ╚═════╝ ╚═════╝ ╚═════╝    ╚═╝   ",
}

const bannerCompact = "L E A R N I N G   B U D D Y"

// bannerMinWidth is the narrowest terminal that fits the block banner.
const bannerMinWidth = 46

// RenderBanner returns the BUDDY banner, shaded from primary to secondary.
// Narrow terminals get a single spaced-out line instead.
func RenderBanner(width int) string {
	if width < bannerMinWidth {
		return lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(bannerCompact)
	}

	top := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	bottom := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)
	lines := make([]string, len(bannerRows))
	for i, row := range bannerRows {
		if i < len(bannerRows)/2 {
			lines[i] = top.Render(row)
		} else {
			lines[i] = bottom.Render(row)
		}
	}
	return strings.Join(lines, "\n")
}
