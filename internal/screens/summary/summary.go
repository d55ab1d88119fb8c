package summary

import (
	"fmt"
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/toeicz/internal/questionbank"
	"github.com/abhisek/toeicz/internal/router"
	"github.com/abhisek/toeicz/internal/screen"
	"github.com/abhisek/toeicz/internal/session"
	"github.com/abhisek/toeicz/internal/ui/components"
	"github.com/abhisek/toeicz/internal/ui/layout"
	"github.com/abhisek/toeicz/internal/ui/theme"
)

// SummaryScreen displays the results of a finished run.
type SummaryScreen struct {
	summary *session.Summary
	retry   func() screen.Screen
	buttons components.ButtonRow
	offset  int
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a SummaryScreen. retry builds a fresh practice screen for
// the same part.
func New(summary *session.Summary, retry func() screen.Screen) *SummaryScreen {
	s := &SummaryScreen{summary: summary, retry: retry}
	s.buttons = components.NewButtonRow(
		components.NewButton("Practice again", true, s.retryCmd),
		components.NewButton("Home", false, homeCmd),
	)
	return s
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Results"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "←→ Enter", Description: "Choose"},
		{Key: "R", Description: "Retry"},
		{Key: "↑↓", Description: "Scroll"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *SummaryScreen) retryCmd() tea.Cmd {
	if s.retry == nil {
		return popCmd()
	}
	next := s.retry()
	return func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
}

func homeCmd() tea.Cmd {
	return func() tea.Msg { return router.PopToRootMsg{} }
}

func popCmd() tea.Cmd {
	return func() tea.Msg { return router.PopScreenMsg{} }
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	switch kmsg.String() {
	case "r", "R":
		return s, s.retryCmd()
	case "esc", "q":
		return s, popCmd()
	case "up", "k":
		if s.offset > 0 {
			s.offset--
		}
		return s, nil
	case "down", "j":
		if s.summary != nil && s.offset < len(s.summary.Lines)-1 {
			s.offset++
		}
		return s, nil
	}

	var cmd tea.Cmd
	s.buttons, cmd = s.buttons.Update(msg)
	return s, cmd
}

func (s *SummaryScreen) View(width, height int) string {
	sum := s.summary
	if sum == nil {
		return ""
	}
	center := func(str string) string { return lipgloss.PlaceHorizontal(width, lipgloss.Center, str) }

	var b strings.Builder
	b.WriteString("\n")
	title := "Practice complete!"
	if sum.Mode == session.ModeReview {
		title = "Review complete!"
	}
	b.WriteString(center(theme.Title.Render(title)))
	b.WriteString("\n")
	b.WriteString(center(theme.Subtitle.Render(sum.Part.DisplayName())))
	b.WriteString("\n\n")

	score := lipgloss.NewStyle().Foreground(tierColor(sum.Tier)).Bold(true).
		Render(fmt.Sprintf("%d / %d  (%d%%)", sum.Correct, sum.Total, sum.Percent))
	b.WriteString(center(score))
	b.WriteString("\n")
	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Text).Render(sum.Tier.Message())))
	b.WriteString("\n")
	if sum.Elapsed > 0 {
		b.WriteString(center(theme.Hint.Render("Time: " + sum.Elapsed.String())))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(center(s.buttons.View()))
	b.WriteString("\n\n")

	bw := max(20, min(width-8, 72))
	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", bw))
	b.WriteString(center(divider))
	b.WriteString("\n")

	used := lipgloss.Height(b.String())
	var lines []string
	for _, l := range sum.Lines[min(s.offset, len(sum.Lines)):] {
		lines = append(lines, renderLine(l, bw))
	}
	detail := strings.Join(lines, "\n")
	if room := height - used; room > 0 && lipgloss.Height(detail) > room {
		detail = strings.Join(strings.Split(detail, "\n")[:room], "\n")
	}
	b.WriteString(center(detail))
	return b.String()
}

// renderLine shows one answered question. Wrong answers list both the
// chosen and the correct option.
func renderLine(l session.ResultLine, bw int) string {
	q, a := l.Question, l.Answer
	mark := theme.Correct.Render("✓")
	if !a.IsCorrect {
		mark = theme.Incorrect.Render("✗")
	}

	text := lipgloss.NewStyle().Foreground(theme.Text).Width(bw - 6).
		Render(fmt.Sprintf("%d. %s", l.Number, q.Question))
	out := mark + "  " + text

	dim := lipgloss.NewStyle().Foreground(theme.TextDim).Width(bw - 3).PaddingLeft(3)
	if !a.IsCorrect {
		out += "\n" + dim.Render(fmt.Sprintf("Your answer: %s   Correct: %s",
			option(q, a.Selected), option(q, a.Correct)))
	}
	if q.Explanation != "" {
		out += "\n" + dim.Render(q.Explanation)
	}
	return lipgloss.NewStyle().Width(bw).Render(out)
}

func option(q questionbank.Question, i int) string {
	if i < 0 || i >= len(q.Options) {
		return questionbank.Letter(i)
	}
	return questionbank.Letter(i) + ". " + q.Options[i]
}

func tierColor(t session.ScoreTier) color.Color {
	switch t {
	case session.TierPerfect:
		return theme.Highlight
	case session.TierGreat:
		return theme.Success
	case session.TierGood:
		return theme.Secondary
	default:
		return theme.Accent
	}
}
