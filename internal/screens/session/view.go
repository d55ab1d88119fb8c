package session

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/toeicz/internal/narration"
	"github.com/abhisek/toeicz/internal/questionbank"
	sess "github.com/abhisek/toeicz/internal/session"
	"github.com/abhisek/toeicz/internal/ui/components"
	"github.com/abhisek/toeicz/internal/ui/theme"
)

// blockWidth is the width of the centered question block.
func blockWidth(width int) int {
	return max(20, min(width-8, 72))
}

func centered(width int, s string) string {
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, s)
}

// renderQuestionView renders the active question display.
func (s *SessionScreen) renderQuestionView(width int) string {
	state := s.state
	q, idx, ok := state.Current()
	if !ok {
		return ""
	}
	bw := blockWidth(width)

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centered(width, s.renderInfoLine(bw, idx)))
	b.WriteString("\n")
	if state.Warning != "" {
		b.WriteString(centered(width, theme.Warning.Width(bw).Render("! "+state.Warning)))
		b.WriteString("\n")
	}
	b.WriteString(centered(width, lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", bw))))
	b.WriteString("\n\n")

	if q.Type != "" {
		b.WriteString(centered(width, lipgloss.NewStyle().Foreground(theme.Secondary).Width(bw).Render("["+q.Type+"]")))
		b.WriteString("\n\n")
	}

	if state.Part.IsAudio() {
		b.WriteString(centered(width, s.renderAudioPlayer(bw)))
	} else {
		b.WriteString(centered(width, renderReading(q, bw)))
	}
	b.WriteString("\n\n")

	b.WriteString(centered(width, lipgloss.NewStyle().Width(bw).Render(s.choice.View())))
	return b.String()
}

func (s *SessionScreen) renderInfoLine(bw, idx int) string {
	state := s.state
	left := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("Q %d/%d", idx+1, len(state.Questions)))
	right := lipgloss.NewStyle().
		Foreground(theme.Success).
		Render(fmt.Sprintf("✓ %d", state.CorrectCount()))

	barWidth := bw - lipgloss.Width(left) - lipgloss.Width(right) - 4
	bar := components.NewProgressBar("", idx, len(state.Questions), barWidth)
	return left + "  " + bar.View() + "  " + right
}

// renderReading shows the passage and question of a reading part.
func renderReading(q questionbank.Question, bw int) string {
	var parts []string
	if q.Context != "" {
		parts = append(parts, components.Card(
			lipgloss.NewStyle().Foreground(theme.Text).Render(q.Context), bw))
	}
	parts = append(parts, lipgloss.NewStyle().
		Width(bw).
		Foreground(theme.Text).
		Bold(true).
		Render(q.Question))
	return strings.Join(parts, "\n\n")
}

// renderAudioPlayer replaces the hidden script of a listening question.
func (s *SessionScreen) renderAudioPlayer(bw int) string {
	n := s.deps.Narrator

	status := "Press P to play the audio, then choose an answer"
	speed := ""
	if n != nil {
		if n.State() == narration.Speaking {
			status = "Playing... press P to stop"
		}
		speed = fmt.Sprintf("Speed: %s (R to change)", n.Rate())
		if n.Backend() == "none" {
			speed += "  ·  no text-to-speech program found"
		}
	}

	lines := []string{
		lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render("♪ Listening question"),
		lipgloss.NewStyle().Foreground(theme.Text).Render(status),
	}
	if speed != "" {
		lines = append(lines, theme.Hint.Render(speed))
	}
	return components.Card(strings.Join(lines, "\n"), bw)
}

// renderFeedback shows the verdict, transcript and explanation.
func (s *SessionScreen) renderFeedback(width int) string {
	state := s.state
	q := state.Questions[len(state.Answers)-1]
	a := s.last
	bw := blockWidth(width)

	var b strings.Builder
	b.WriteString("\n")
	if a.IsCorrect {
		b.WriteString(centered(width, theme.Correct.Render("✓ Correct!")))
	} else {
		b.WriteString(centered(width, theme.Incorrect.Render("✗ Incorrect")))
	}
	b.WriteString("\n\n")

	if state.Part.IsAudio() {
		var script []string
		if q.Context != "" {
			script = append(script, q.Context)
		}
		script = append(script, "Q: "+q.Question)
		transcript := lipgloss.NewStyle().Foreground(theme.Success).Bold(true).Render("Transcript") + "\n" +
			lipgloss.NewStyle().Foreground(theme.TextDim).Render(strings.Join(script, "\n"))
		b.WriteString(centered(width, components.Card(transcript, bw)))
		b.WriteString("\n\n")
	}

	b.WriteString(centered(width, lipgloss.NewStyle().Width(bw).Render(s.choice.View())))
	b.WriteString("\n")

	answer := fmt.Sprintf("Answer: %s. %s", questionbank.Letter(a.Correct), optionText(q, a.Correct))
	b.WriteString(centered(width, lipgloss.NewStyle().Width(bw).Foreground(theme.Text).Bold(true).Render(answer)))
	b.WriteString("\n")
	if q.Explanation != "" {
		b.WriteString(centered(width, lipgloss.NewStyle().Width(bw).Foreground(theme.Text).Render(q.Explanation)))
		b.WriteString("\n")
	}

	next := "press any key for the next question"
	if sess.IsComplete(state) {
		next = "press any key to see your results"
	}
	b.WriteString("\n")
	b.WriteString(centered(width, theme.Hint.Render(next)))
	return b.String()
}

func optionText(q questionbank.Question, i int) string {
	if i < 0 || i >= len(q.Options) {
		return ""
	}
	return q.Options[i]
}

func renderLoading(width, height int, msg string) string {
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.TextDim).
		Render(msg)
}

func renderError(width, height int, msg string) string {
	body := theme.Incorrect.Render("Something went wrong") + "\n\n" +
		lipgloss.NewStyle().Foreground(theme.Text).Width(min(width-8, 70)).Render(msg) + "\n\n" +
		theme.Hint.Render("press any key to go back")
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(body)
}

func renderQuitConfirm(width, height int) string {
	body := theme.Warning.Render("Quit this practice?") + "\n\n" +
		lipgloss.NewStyle().Foreground(theme.Text).Render("Answers so far will not be saved.") + "\n\n" +
		theme.Hint.Render("Y to quit  ·  N to keep going")
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(body)
}
