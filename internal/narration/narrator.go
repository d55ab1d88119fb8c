package narration

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
)

// ErrNothingToSay is returned by Start for an empty script.
var ErrNothingToSay = errors.New("nothing to narrate")

// State is the playback state of a Narrator.
type State int

const (
	Idle State = iota
	Speaking
)

func (s State) String() string {
	if s == Speaking {
		return "speaking"
	}
	return "idle"
}

// Event reports the end of an utterance.
type Event struct {
	ID       string
	Err      error
	Canceled bool
}

// Narrator tracks at most one active utterance. It is not safe for
// concurrent use; the wait function returned by Start is the only part
// meant to run on another goroutine.
type Narrator struct {
	backend Backend
	rate    Rate
	state   State
	active  string
	cancel  context.CancelFunc
	logger  *slog.Logger
}

// New creates an idle Narrator.
func New(backend Backend, rate Rate, logger *slog.Logger) *Narrator {
	if logger == nil {
		logger = slog.Default()
	}
	if rate <= 0 {
		rate = RateNormal
	}
	return &Narrator{backend: backend, rate: rate, logger: logger}
}

func (n *Narrator) State() State    { return n.state }
func (n *Narrator) Rate() Rate      { return n.rate }
func (n *Narrator) Active() string  { return n.active }
func (n *Narrator) Backend() string { return n.backend.Name() }

// SetRate changes the rate used by later utterances.
func (n *Narrator) SetRate(r Rate) { n.rate = r }

// Start cancels any current utterance and begins text. The returned
// function blocks until playback finishes and reports the outcome; the
// caller feeds that Event back through Complete.
func (n *Narrator) Start(text string) (func() Event, error) {
	if text == "" {
		return nil, ErrNothingToSay
	}
	n.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	id := uuid.NewString()
	n.active = id
	n.cancel = cancel
	n.state = Speaking

	backend, rate := n.backend, n.rate
	return func() Event {
		err := backend.Speak(ctx, text, rate)
		ev := Event{ID: id, Canceled: ctx.Err() != nil}
		if !ev.Canceled {
			ev.Err = err
		}
		return ev
	}, nil
}

// Stop cancels the active utterance, if any.
func (n *Narrator) Stop() {
	if n.cancel != nil {
		n.cancel()
	}
	n.cancel = nil
	n.active = ""
	n.state = Idle
}

// Complete applies a finished utterance. Events for anything but the
// active utterance are stale and ignored; Complete reports whether ev
// was applied.
func (n *Narrator) Complete(ev Event) bool {
	if n.state != Speaking || ev.ID != n.active {
		return false
	}
	if ev.Err != nil {
		n.logger.Warn("speech failed", "backend", n.backend.Name(), "error", ev.Err)
	}
	n.Stop()
	return true
}
