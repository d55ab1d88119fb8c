package app

import (
	"context"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/toeicz/internal/history"
	"github.com/abhisek/toeicz/internal/narration"
	"github.com/abhisek/toeicz/internal/questionbank"
	"github.com/abhisek/toeicz/internal/router"
	"github.com/abhisek/toeicz/internal/screen"
	"github.com/abhisek/toeicz/internal/screens/home"
	sessionscreen "github.com/abhisek/toeicz/internal/screens/session"
	"github.com/abhisek/toeicz/internal/screens/welcome"
	"github.com/abhisek/toeicz/internal/session"
	"github.com/abhisek/toeicz/internal/stats"
)

type memStore struct {
	rec history.Record
}

func (m *memStore) Load(context.Context) (history.Record, error) {
	return m.rec, nil
}

func (m *memStore) Append(_ context.Context, date string, s history.Session) error {
	m.rec[date] = append(m.rec[date], s)
	return nil
}

func testDeps() screen.Deps {
	bank := questionbank.NewBank("test", map[questionbank.Part][]questionbank.Question{
		questionbank.PartIncompleteSentences: {
			{ID: "1", Question: "He _____ late.", Options: []string{"is", "are", "am", "be"}},
		},
	})
	store := &memStore{rec: history.Record{
		"2026-10-13": {{Part: questionbank.PartIncompleteSentences, Questions: []history.QuestionResult{{ID: "1", IsCorrect: true}}}},
	}}
	clock := time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)
	engine := session.NewEngine(bank, store,
		session.WithLocation(time.UTC),
		session.WithClock(func() time.Time { return clock }))
	return screen.Deps{
		Engine:   engine,
		Narrator: narration.New(narration.NewNopBackend(nil), narration.RateNormal, nil),
	}
}

// step applies msg and returns the updated model and command.
func step(t *testing.T, m AppModel, msg tea.Msg) (AppModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(AppModel), cmd
}

func TestNewAppModel_StartScreens(t *testing.T) {
	deps := testDeps()

	m := newAppModel(Options{Deps: deps})
	if _, ok := m.router.Active().(*welcome.WelcomeScreen); !ok {
		t.Errorf("default start = %T, want welcome", m.router.Active())
	}

	m = newAppModel(Options{Deps: deps, SkipWelcome: true})
	if _, ok := m.router.Active().(*home.HomeScreen); !ok {
		t.Errorf("SkipWelcome start = %T, want home", m.router.Active())
	}

	m = newAppModel(Options{Deps: deps, Part: questionbank.PartIncompleteSentences})
	if _, ok := m.router.Active().(*sessionscreen.SessionScreen); !ok {
		t.Errorf("Part start = %T, want practice screen", m.router.Active())
	}
	if m.router.Depth() != 2 {
		t.Errorf("Part start depth = %d, want 2 (home below practice)", m.router.Depth())
	}
}

func TestAppModel_TotalsUpdateHeader(t *testing.T) {
	m := newAppModel(Options{Deps: testDeps(), SkipWelcome: true})
	msg := m.deps.LoadTotals()()
	totals, ok := msg.(screen.TotalsMsg)
	if !ok {
		t.Fatalf("LoadTotals produced %T", msg)
	}
	want := stats.Totals{TotalPracticed: 1, TotalCorrect: 1, Accuracy: 100, StreakDays: 1}
	if totals.Totals != want {
		t.Errorf("totals = %+v, want %+v", totals.Totals, want)
	}

	m, _ = step(t, m, totals)
	if m.totals != want {
		t.Errorf("model totals = %+v", m.totals)
	}
}

func TestAppModel_EscPopsPlainScreens(t *testing.T) {
	m := newAppModel(Options{Deps: testDeps(), SkipWelcome: true})
	m, _ = step(t, m, router.PushScreenMsg{Screen: sessionscreen.New(m.deps, questionbank.PartIncompleteSentences)})
	m, _ = step(t, m, router.ReplaceScreenMsg{Screen: home.New(m.deps)})

	_, cmd := step(t, m, tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected a pop command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg")
	}
}

func TestAppModel_EscForwardedToInterceptor(t *testing.T) {
	m := newAppModel(Options{Deps: testDeps(), Part: questionbank.PartIncompleteSentences})
	active := m.router.Active()
	m, _ = step(t, m, active.Init()())

	m, cmd := step(t, m, tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd != nil {
		if _, ok := cmd().(router.PopScreenMsg); ok {
			t.Fatal("Esc on the practice screen should ask before leaving")
		}
	}
	if m.router.Depth() != 2 {
		t.Errorf("depth = %d, want 2", m.router.Depth())
	}
}

func TestAppModel_SpeechDone(t *testing.T) {
	m := newAppModel(Options{Deps: testDeps(), SkipWelcome: true})
	n := m.deps.Narrator

	wait, err := n.Start("Question: where is the lobby?")
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	m, _ = step(t, m, screen.SpeechDoneMsg{Event: wait()})
	if n.State() != narration.Idle {
		t.Errorf("narrator state = %v, want idle", n.State())
	}
}

func TestAppModel_CtrlCStopsSpeech(t *testing.T) {
	m := newAppModel(Options{Deps: testDeps(), SkipWelcome: true})
	if _, err := m.deps.Narrator.Start("hello"); err != nil {
		t.Fatalf("Start: %v", err)
	}

	_, cmd := step(t, m, tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	if cmd == nil {
		t.Fatal("expected quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected QuitMsg")
	}
	if m.deps.Narrator.State() != narration.Idle {
		t.Error("quitting should stop speech")
	}
}
