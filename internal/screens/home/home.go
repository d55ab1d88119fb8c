package home

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/toeicz/internal/questionbank"
	"github.com/abhisek/toeicz/internal/router"
	"github.com/abhisek/toeicz/internal/screen"
	"github.com/abhisek/toeicz/internal/screens/calendar"
	sessionscreen "github.com/abhisek/toeicz/internal/screens/session"
	"github.com/abhisek/toeicz/internal/stats"
	"github.com/abhisek/toeicz/internal/ui/components"
	"github.com/abhisek/toeicz/internal/ui/layout"
)

// HomeScreen is the part picker shown at the root of the stack.
type HomeScreen struct {
	deps   screen.Deps
	menu   components.Menu
	totals stats.Totals
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(deps screen.Deps) *HomeScreen {
	var items []components.MenuItem
	for _, p := range questionbank.AllParts() {
		items = append(items, components.MenuItem{
			Label:    p.DisplayName(),
			Hint:     partHint(deps, p),
			Shortcut: fmt.Sprint(int(p)),
			Action: func() tea.Cmd {
				return func() tea.Msg {
					return router.PushScreenMsg{Screen: sessionscreen.New(deps, p)}
				}
			},
			Disabled: deps.Engine != nil && deps.Engine.Bank().Count(p) == 0,
		})
	}
	items = append(items,
		components.MenuItem{Label: "Practice Calendar", Shortcut: "c", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: calendar.New(deps)}
			}
		}},
		components.MenuItem{Label: "Exit", Shortcut: "q", Action: func() tea.Cmd {
			return tea.Quit
		}},
	)

	return &HomeScreen{
		deps: deps,
		menu: components.NewMenu(items),
	}
}

// partHint marks listening parts and shows how many questions the bank holds.
func partHint(deps screen.Deps, p questionbank.Part) string {
	kind := "reading"
	if p.IsAudio() {
		kind = "♪ listening"
	}
	if deps.Engine == nil {
		return kind
	}
	return fmt.Sprintf("%s · %d", kind, deps.Engine.Bank().Count(p))
}

func (h *HomeScreen) Init() tea.Cmd {
	return h.deps.LoadTotals()
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if m, ok := msg.(screen.TotalsMsg); ok {
		h.totals = m.Totals
		return h, nil
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	// height is the content area; add back header (3) + footer (3)
	compact := layout.IsCompact(width, height+6)

	cw := components.ContentWidth(width)

	var sections []string
	sections = append(sections, renderTitle(cw, compact))
	sections = append(sections, renderStatsBar(h.totals, cw, compact))
	sections = append(sections, renderSectionLabel("Choose a part to practice", cw))
	sections = append(sections, lipgloss.NewStyle().Width(cw).Render(strings.TrimRight(h.menu.View(), "\n")))

	sep := "\n\n"
	if compact {
		sep = "\n"
	}
	return components.Frame(strings.Join(sections, sep), width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓ Enter", Description: "Select"},
		{Key: "1-7", Description: "Part"},
		{Key: "C", Description: "Calendar"},
		{Key: "Q", Description: "Quit"},
	}
}
