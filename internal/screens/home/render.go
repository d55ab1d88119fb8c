package home

import (
	"fmt"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/toeicz/internal/stats"
	"github.com/abhisek/toeicz/internal/ui/theme"
)

// Block-letter title (same art as welcome/banner.go).
const titleFull = `████████╗ ██████╗ ███████╗██╗ ██████╗███████╗
╚══██╔══╝██╔═══██╗██╔════╝██║██╔════╝╚══███╔╝
   ██║   ██║   ██║█████╗  ██║██║       ███╔╝
   ██║   ██║   ██║██╔══╝  ██║██║      ███╔╝
   ██║   ╚██████╔╝███████╗██║╚██████╗███████╗
   ╚═╝    ╚═════╝ ╚══════╝╚═╝ ╚═════╝╚══════╝`

const titleCompact = "T · O · E · I · C · Z"

// renderTitle returns the styled title block or compact fallback.
func renderTitle(cw int, compact bool) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Highlight).
		Bold(true)

	art := titleFull
	if compact {
		art = titleCompact
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(style.Render(art))
}

// renderStatsBar renders the practice totals in a bordered box matching content width.
func renderStatsBar(t stats.Totals, cw int, compact bool) string {
	practiced := lipgloss.NewStyle().Foreground(theme.Highlight).Bold(true)
	accuracy := lipgloss.NewStyle().Foreground(theme.Success).Bold(true)
	streak := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)

	var text string
	if compact {
		text = fmt.Sprintf("%s %s %s",
			practiced.Render(fmt.Sprintf("✎%d", t.TotalPracticed)),
			accuracy.Render(fmt.Sprintf("✓%d%%", t.Accuracy)),
			streak.Render(fmt.Sprintf("★%d", t.StreakDays)),
		)
	} else {
		text = fmt.Sprintf("%s  %s  %s",
			practiced.Render(fmt.Sprintf("✎ %d PRACTICED", t.TotalPracticed)),
			accuracy.Render(fmt.Sprintf("✓ %d%% ACCURACY", t.Accuracy)),
			streak.Render(fmt.Sprintf("★ %d DAY STREAK", t.StreakDays)),
		)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Secondary).
		Width(cw - 2). // account for border chars
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(text)
}

// renderSectionLabel renders a dim heading above a group of menu items.
func renderSectionLabel(label string, cw int) string {
	return lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Bold(true).
		Width(cw).
		Render(label)
}
