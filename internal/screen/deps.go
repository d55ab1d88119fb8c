package screen

import (
	"context"
	"log/slog"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/toeicz/internal/narration"
	"github.com/abhisek/toeicz/internal/session"
	"github.com/abhisek/toeicz/internal/stats"
)

// Deps are the services screens share.
type Deps struct {
	Engine   *session.Engine
	Narrator *narration.Narrator
	Logger   *slog.Logger
}

// LoadTotals recomputes the header totals from the stored history.
// A load failure is logged and produces no message.
func (d Deps) LoadTotals() tea.Cmd {
	engine, logger := d.Engine, d.Logger
	if engine == nil {
		return nil
	}
	return func() tea.Msg {
		rec, err := engine.History(context.Background())
		if err != nil {
			if logger != nil {
				logger.Warn("load history for totals", "error", err)
			}
			return nil
		}
		return TotalsMsg{Totals: stats.Compute(rec, engine.Today())}
	}
}
