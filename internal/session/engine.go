package session

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/abhisek/toeicz/internal/history"
	"github.com/abhisek/toeicz/internal/questionbank"
)

// HistoryStore is the persistence the engine needs.
type HistoryStore interface {
	Load(ctx context.Context) (history.Record, error)
	Append(ctx context.Context, dateKey string, s history.Session) error
}

// Engine binds the pure session operations to a bank, a history store
// and a clock.
type Engine struct {
	bank    *questionbank.Bank
	store   HistoryStore
	size    int
	loc     *time.Location
	now     func() time.Time
	shuffle ShuffleFunc
	logger  *slog.Logger
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithSize sets the number of questions per run.
func WithSize(n int) EngineOption {
	return func(e *Engine) {
		if n > 0 {
			e.size = n
		}
	}
}

// WithLocation sets the time zone that defines a calendar day.
func WithLocation(loc *time.Location) EngineOption {
	return func(e *Engine) {
		if loc != nil {
			e.loc = loc
		}
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) EngineOption {
	return func(e *Engine) { e.now = now }
}

// WithShuffle replaces rand.Shuffle.
func WithShuffle(fn ShuffleFunc) EngineOption {
	return func(e *Engine) { e.shuffle = fn }
}

// WithLogger sets the engine logger.
func WithLogger(l *slog.Logger) EngineOption {
	return func(e *Engine) { e.logger = l }
}

// NewEngine creates an Engine.
func NewEngine(bank *questionbank.Bank, store HistoryStore, opts ...EngineOption) *Engine {
	e := &Engine{
		bank:    bank,
		store:   store,
		size:    DefaultSize,
		loc:     time.Local,
		now:     time.Now,
		shuffle: rand.Shuffle,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Bank returns the question bank the engine draws from.
func (e *Engine) Bank() *questionbank.Bank { return e.bank }

// Now returns the engine clock's current time in its location.
func (e *Engine) Now() time.Time { return e.now().In(e.loc) }

// Today returns the current date key.
func (e *Engine) Today() string { return history.Today(e.now(), e.loc) }

// Location returns the engine's time zone.
func (e *Engine) Location() *time.Location { return e.loc }

// History loads the stored record.
func (e *Engine) History(ctx context.Context) (history.Record, error) {
	return e.store.Load(ctx)
}

// Start begins a practice run for part, excluding questions already
// practiced today.
func (e *Engine) Start(ctx context.Context, part questionbank.Part) (*State, error) {
	rec, err := e.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	state, err := start(part, e.bank, rec, e.Today(), e.size, e.shuffle)
	if err != nil {
		return nil, err
	}
	state.StartTime = e.now()

	e.logger.Debug("session started",
		"id", state.ID, "part", int(part), "selected", len(state.Questions), "available", state.Available)
	return state, nil
}

// Review begins a replay of the index-th session recorded on date.
func (e *Engine) Review(ctx context.Context, date string, index int) (*State, error) {
	rec, err := e.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	state, err := StartReview(rec, date, index, e.bank)
	if err != nil {
		return nil, err
	}
	state.StartTime = e.now()

	e.logger.Debug("review started", "id", state.ID, "date", date, "index", index, "questions", len(state.Questions))
	return state, nil
}

// Finish persists a completed run under today's date and returns the
// stored record.
func (e *Engine) Finish(ctx context.Context, state *State) (history.Session, error) {
	now := e.now()
	s, err := Finish(state, now)
	if err != nil {
		return history.Session{}, err
	}

	date := history.Today(now, e.loc)
	if err := e.store.Append(ctx, date, s); err != nil {
		return history.Session{}, fmt.Errorf("finish session %s: %w", state.ID, err)
	}
	state.FinishTime = now

	e.logger.Debug("session saved",
		"id", state.ID, "date", date, "part", int(s.Part), "correct", s.Correct(), "total", len(s.Questions))
	return s, nil
}
