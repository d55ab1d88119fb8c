package calendar

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/toeicz/internal/history"
	"github.com/abhisek/toeicz/internal/router"
	"github.com/abhisek/toeicz/internal/screen"
	sessionscreen "github.com/abhisek/toeicz/internal/screens/session"
	"github.com/abhisek/toeicz/internal/stats"
	"github.com/abhisek/toeicz/internal/ui/components"
	"github.com/abhisek/toeicz/internal/ui/layout"
	"github.com/abhisek/toeicz/internal/ui/theme"
)

type historyLoadedMsg struct {
	Record history.Record
	Err    error
}

// CalendarScreen shows a month of practice days and lets the learner
// open any past session for review.
type CalendarScreen struct {
	deps   screen.Deps
	rec    history.Record
	loaded bool
	errMsg string

	today  string
	year   int
	month  time.Month
	cursor string

	// Day panel
	panel    bool
	panelSel int

	// Go-to-month input
	input    *components.TextInput
	inputErr string
}

var _ screen.Screen = (*CalendarScreen)(nil)
var _ screen.KeyHintProvider = (*CalendarScreen)(nil)
var _ screen.BackInterceptor = (*CalendarScreen)(nil)

// New creates a CalendarScreen focused on today.
func New(deps screen.Deps) *CalendarScreen {
	c := &CalendarScreen{deps: deps}
	c.today = deps.Engine.Today()
	c.jumpTo(c.today)
	return c
}

func (c *CalendarScreen) Init() tea.Cmd {
	return c.load()
}

func (c *CalendarScreen) load() tea.Cmd {
	engine := c.deps.Engine
	return func() tea.Msg {
		rec, err := engine.History(context.Background())
		return historyLoadedMsg{Record: rec, Err: err}
	}
}

func (c *CalendarScreen) Title() string {
	return "Practice Calendar"
}

func (c *CalendarScreen) InterceptsBack() bool {
	return c.panel || c.input != nil
}

func (c *CalendarScreen) KeyHints() []layout.KeyHint {
	switch {
	case c.input != nil:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Go"},
			{Key: "Esc", Description: "Cancel"},
		}
	case c.panel:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Session"},
			{Key: "Enter", Description: "Review"},
			{Key: "Esc", Description: "Close"},
		}
	}
	return []layout.KeyHint{
		{Key: "←→↑↓", Description: "Day"},
		{Key: "[ ]", Description: "Month"},
		{Key: "T", Description: "Today"},
		{Key: "G", Description: "Go to"},
		{Key: "Enter", Description: "Sessions"},
		{Key: "Esc", Description: "Back"},
	}
}

// jumpTo moves the cursor to date and shows its month.
func (c *CalendarScreen) jumpTo(date string) {
	t, err := history.ParseDateKey(date)
	if err != nil {
		return
	}
	c.cursor = date
	c.year, c.month = t.Year(), t.Month()
}

func (c *CalendarScreen) moveDays(n int) {
	if next, err := history.AddDays(c.cursor, n); err == nil {
		c.jumpTo(next)
	}
}

// moveMonths shifts the visible month, keeping the cursor's day where
// the target month has it.
func (c *CalendarScreen) moveMonths(n int) {
	t, err := history.ParseDateKey(c.cursor)
	if err != nil {
		return
	}
	first := time.Date(c.year, c.month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, n, 0)
	last := first.AddDate(0, 1, -1).Day()
	day := min(t.Day(), last)
	c.jumpTo(history.DateKey(time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, time.UTC)))
}

func (c *CalendarScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		c.loaded = true
		if msg.Err != nil {
			c.errMsg = msg.Err.Error()
			return c, nil
		}
		c.errMsg = ""
		c.rec = msg.Record
		c.today = c.deps.Engine.Today()
		c.clampPanel()
		return c, nil

	case screen.HistoryChangedMsg:
		return c, c.load()

	case tea.KeyMsg:
		if c.input != nil {
			return c.updateInput(msg)
		}
		if c.panel {
			return c.updatePanel(msg)
		}
		return c.updateGrid(msg)
	}

	if c.input != nil {
		var cmd tea.Cmd
		*c.input, cmd = c.input.Update(msg)
		return c, cmd
	}
	return c, nil
}

func (c *CalendarScreen) updateGrid(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return c, func() tea.Msg { return router.PopScreenMsg{} }
	case "left", "h":
		c.moveDays(-1)
	case "right", "l":
		c.moveDays(1)
	case "up", "k":
		c.moveDays(-7)
	case "down", "j":
		c.moveDays(7)
	case "[":
		c.moveMonths(-1)
	case "]":
		c.moveMonths(1)
	case "t", "T":
		c.jumpTo(c.today)
	case "g", "G":
		ti := components.NewTextInput("YYYY-MM", 7, components.DateChars)
		c.input = &ti
		c.inputErr = ""
		return c, ti.Init()
	case "enter":
		c.panel = true
		c.panelSel = 0
	}
	return c, nil
}

func (c *CalendarScreen) updatePanel(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	lines := stats.DayReview(c.rec, c.cursor)
	switch msg.String() {
	case "esc":
		c.panel = false
	case "up", "k":
		if c.panelSel > 0 {
			c.panelSel--
		}
	case "down", "j":
		if c.panelSel < len(lines)-1 {
			c.panelSel++
		}
	case "enter":
		if len(lines) == 0 {
			return c, nil
		}
		review := sessionscreen.NewReview(c.deps, c.cursor, lines[c.panelSel].Index)
		return c, func() tea.Msg { return router.PushScreenMsg{Screen: review} }
	}
	return c, nil
}

func (c *CalendarScreen) updateInput(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "esc":
		c.input = nil
		return c, nil
	case "enter":
		t, err := time.Parse("2006-01", strings.TrimSpace(c.input.Value()))
		if err != nil {
			c.input.Submit(false)
			c.inputErr = "Enter a month as YYYY-MM, e.g. 2026-09."
			return c, nil
		}
		c.input = nil
		c.jumpTo(history.DateKey(t))
		return c, nil
	}

	var cmd tea.Cmd
	*c.input, cmd = c.input.Update(msg)
	c.inputErr = ""
	return c, cmd
}

func (c *CalendarScreen) clampPanel() {
	if n := len(c.rec[c.cursor]); c.panelSel >= n {
		c.panelSel = max(0, n-1)
	}
}

func (c *CalendarScreen) View(width, height int) string {
	if c.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", c.errMsg))
	}
	if !c.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}

	center := func(s string) string { return lipgloss.PlaceHorizontal(width, lipgloss.Center, s) }

	var b strings.Builder
	b.WriteString("\n")
	month := time.Date(c.year, c.month, 1, 0, 0, 0, 0, time.UTC).Format("January 2006")
	b.WriteString(center(theme.Title.Render("◀  " + month + "  ▶")))
	b.WriteString("\n\n")
	b.WriteString(center(c.renderGrid()))
	b.WriteString("\n")
	b.WriteString(center(renderLegend()))
	b.WriteString("\n\n")

	switch {
	case c.input != nil:
		b.WriteString(center("Go to month: " + c.input.View()))
		if c.inputErr != "" {
			b.WriteString("\n")
			b.WriteString(center(theme.Warning.Render(c.inputErr)))
		}
	case c.panel:
		b.WriteString(center(c.renderPanel()))
	default:
		b.WriteString(center(c.renderDayLine()))
	}
	return b.String()
}

const cellWidth = 4

func (c *CalendarScreen) renderGrid() string {
	var b strings.Builder
	header := lipgloss.NewStyle().Foreground(theme.TextDim).Width(cellWidth).Align(lipgloss.Center)
	for _, d := range []string{"Su", "Mo", "Tu", "We", "Th", "Fr", "Sa"} {
		b.WriteString(header.Render(d))
	}
	b.WriteString("\n")

	cells := stats.MonthGrid(c.year, c.month, c.rec, c.today)
	for i, cell := range cells {
		b.WriteString(c.renderCell(cell))
		if i%7 == 6 && i < len(cells)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (c *CalendarScreen) renderCell(cell stats.Cell) string {
	label := fmt.Sprintf("%2d", cell.Day)
	if cell.HasPractice {
		label += "•"
	} else {
		label += " "
	}

	var style lipgloss.Style
	switch {
	case cell.Date == c.cursor:
		style = theme.DayCursor
	case !cell.InMonth:
		style = theme.DayOtherMonth
	case cell.IsToday:
		style = theme.DayToday
	case cell.HasPractice:
		style = theme.DayPracticed
	default:
		style = theme.DayNormal
	}
	return style.Width(cellWidth).Align(lipgloss.Center).Render(label)
}

func renderLegend() string {
	return theme.DayPracticed.Render("•") + lipgloss.NewStyle().Foreground(theme.TextDim).Render(" practiced   ") +
		theme.DayToday.Render("today")
}

func (c *CalendarScreen) renderDayLine() string {
	n := len(c.rec[c.cursor])
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)
	if n == 0 {
		return dim.Render(c.cursor + " · no practice")
	}
	word := "sessions"
	if n == 1 {
		word = "session"
	}
	return lipgloss.NewStyle().Foreground(theme.Text).Render(fmt.Sprintf("%s · %d %s", c.cursor, n, word)) +
		dim.Render("  (Enter to review)")
}

func (c *CalendarScreen) renderPanel() string {
	lines := stats.DayReview(c.rec, c.cursor)
	cw := 58

	var b strings.Builder
	b.WriteString(theme.Subtitle.Render(c.cursor))
	b.WriteString("\n")
	if len(lines) == 0 {
		b.WriteString(theme.Hint.Render("No practice on this day."))
		return components.Card(b.String(), cw)
	}

	loc := c.deps.Engine.Location()
	for i, l := range lines {
		prefix := "  "
		style := theme.Unselected
		if i == c.panelSel {
			prefix = "▸ "
			style = theme.Selected
		}
		b.WriteString(style.Render(fmt.Sprintf("%s%s  %-28s %2d/%-2d (%d%%)",
			prefix, l.Time.In(loc).Format("15:04"), l.PartName, l.Correct, l.Total,
			history.Percent(l.Correct, l.Total))))
		if i < len(lines)-1 {
			b.WriteString("\n")
		}
	}
	return components.Card(b.String(), cw)
}
