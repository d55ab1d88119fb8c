package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/toeicz/internal/narration"
	"github.com/abhisek/toeicz/internal/stats"
	"github.com/abhisek/toeicz/internal/ui/layout"
)

// Screen defines the interface for all application screens.
type Screen interface {
	// Init returns an initial command when the screen is first created.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface that screens can implement
// to provide custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// BackInterceptor is implemented by screens that handle Esc themselves
// while InterceptsBack returns true, e.g. to confirm quitting or close
// a panel.
type BackInterceptor interface {
	InterceptsBack() bool
}

// HistoryChangedMsg is broadcast to every screen after a session is saved.
type HistoryChangedMsg struct{}

// TotalsMsg is broadcast to every screen when the header totals are recomputed.
type TotalsMsg struct {
	Totals stats.Totals
}

// SpeechDoneMsg carries the end of an utterance back to the event loop.
type SpeechDoneMsg struct {
	Event narration.Event
}
