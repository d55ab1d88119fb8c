package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/toeicz/internal/questionbank"
	"github.com/abhisek/toeicz/internal/router"
	"github.com/abhisek/toeicz/internal/screen"
	"github.com/abhisek/toeicz/internal/screens/home"
	sessionscreen "github.com/abhisek/toeicz/internal/screens/session"
	"github.com/abhisek/toeicz/internal/screens/welcome"
	"github.com/abhisek/toeicz/internal/stats"
	"github.com/abhisek/toeicz/internal/ui/layout"
)

// Options configures the TUI.
type Options struct {
	Deps screen.Deps

	// Part opens a practice run for this part straight away when valid.
	Part questionbank.Part

	// SkipWelcome starts on the home screen without the splash.
	SkipWelcome bool
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	deps   screen.Deps
	router *router.Router
	totals stats.Totals
	start  tea.Cmd
	width  int
	height int
}

// newAppModel builds the screen stack for opts.
func newAppModel(opts Options) AppModel {
	deps := opts.Deps
	homeFactory := func() screen.Screen { return home.New(deps) }

	m := AppModel{deps: deps}
	switch {
	case opts.Part.Valid():
		hs := homeFactory()
		m.router = router.New(hs)
		m.start = tea.Batch(hs.Init(), m.router.Push(sessionscreen.New(deps, opts.Part)))
	case opts.SkipWelcome:
		m.router = router.New(homeFactory())
		m.start = m.router.Active().Init()
	default:
		m.router = router.New(welcome.New(homeFactory))
		m.start = m.router.Active().Init()
	}
	return m
}

func (m AppModel) Init() tea.Cmd {
	return tea.Batch(m.start, m.deps.LoadTotals())
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case screen.TotalsMsg:
		m.totals = msg.Totals
		return m, m.router.Update(msg)

	case screen.HistoryChangedMsg:
		return m, tea.Batch(m.router.Update(msg), m.deps.LoadTotals())

	case screen.SpeechDoneMsg:
		if m.deps.Narrator != nil {
			m.deps.Narrator.Complete(msg.Event)
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			if m.deps.Narrator != nil {
				m.deps.Narrator.Stop()
			}
			return m, tea.Quit
		case "esc":
			if bi, ok := m.router.Active().(screen.BackInterceptor); ok && bi.InterceptsBack() {
				break
			}
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
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.totals.TotalPracticed, m.totals.Accuracy, m.totals.StreakDays, m.width)
	footer := layout.RenderFooter(m.footerHints(active), m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	var hints []layout.KeyHint
	if p, ok := active.(screen.KeyHintProvider); ok {
		hints = p.KeyHints()
	} else if m.router.Depth() > 1 {
		hints = []layout.KeyHint{{Key: "Esc", Description: "Back"}}
	}
	return append(hints, layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if opts.Deps.Narrator != nil {
		opts.Deps.Narrator.Stop()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
