package session

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/toeicz/internal/history"
	"github.com/abhisek/toeicz/internal/questionbank"
	"github.com/abhisek/toeicz/internal/router"
	"github.com/abhisek/toeicz/internal/screen"
	"github.com/abhisek/toeicz/internal/screens/notice"
	"github.com/abhisek/toeicz/internal/screens/summary"
	sess "github.com/abhisek/toeicz/internal/session"
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

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

// testDeps builds an engine over n Part 5 questions whose answer is
// always option A, with no shuffling.
func testDeps(n, size int) (screen.Deps, *memStore) {
	qs := make([]questionbank.Question, n)
	for i := range qs {
		qs[i] = questionbank.Question{
			ID:       questionbank.QuestionID(fmt.Sprintf("q%d", i+1)),
			Type:     "grammar",
			Question: fmt.Sprintf("Question %d _____.", i+1),
			Options:  []string{"right", "wrong", "also wrong", "nope"},
			Answer:   0,
		}
	}
	bank := questionbank.NewBank("test", map[questionbank.Part][]questionbank.Question{
		questionbank.PartIncompleteSentences: qs,
	})
	store := &memStore{rec: history.Record{}}
	clock := time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)
	engine := sess.NewEngine(bank, store,
		sess.WithSize(size),
		sess.WithLocation(time.UTC),
		sess.WithClock(func() time.Time { return clock }),
		sess.WithShuffle(func(int, func(i, j int)) {}),
	)
	return screen.Deps{Engine: engine}, store
}

// started returns a screen with its init command already applied.
func started(t *testing.T, deps screen.Deps) *SessionScreen {
	t.Helper()
	s := New(deps, questionbank.PartIncompleteSentences)
	msg := s.Init()()
	s.Update(msg)
	if s.state == nil {
		t.Fatalf("session did not start: %q", s.errMsg)
	}
	return s
}

func TestSessionScreen_Title(t *testing.T) {
	deps, _ := testDeps(3, 3)
	s := New(deps, questionbank.PartIncompleteSentences)
	if got := s.Title(); got != "Part 5 Incomplete Sentences" {
		t.Errorf("Title = %q", got)
	}
	if !s.InterceptsBack() {
		t.Error("expected the practice screen to intercept Esc")
	}
}

func TestSessionScreen_LoadingView(t *testing.T) {
	deps, _ := testDeps(3, 3)
	s := New(deps, questionbank.PartIncompleteSentences)
	if !strings.Contains(s.View(80, 24), "Picking questions") {
		t.Error("expected loading view before init")
	}
}

func TestSessionScreen_AnswerShowsFeedback(t *testing.T) {
	deps, _ := testDeps(3, 3)
	s := started(t, deps)

	s.Update(keyPress('b'))
	if !s.feedback {
		t.Fatal("expected feedback after answering")
	}
	if s.last.IsCorrect || s.last.Selected != 1 {
		t.Errorf("last answer = %+v, want wrong choice B", s.last)
	}
	if len(s.state.Answers) != 1 {
		t.Errorf("answers = %d, want 1", len(s.state.Answers))
	}

	s.Update(keyPress('x'))
	if s.feedback {
		t.Error("any key should leave feedback")
	}
	if _, idx, _ := s.state.Current(); idx != 1 {
		t.Errorf("current index = %d, want 1", idx)
	}
}

func TestSessionScreen_QuitConfirm(t *testing.T) {
	deps, store := testDeps(3, 3)
	s := started(t, deps)

	s.Update(specialKey(tea.KeyEscape))
	if !s.quitConfirm {
		t.Fatal("expected quit confirmation on Esc")
	}

	s.Update(keyPress('n'))
	if s.quitConfirm {
		t.Fatal("n should dismiss the confirmation")
	}

	s.Update(specialKey(tea.KeyEscape))
	_, cmd := s.Update(keyPress('y'))
	if cmd == nil {
		t.Fatal("expected a pop command on y")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg")
	}
	if len(store.rec) != 0 {
		t.Error("an abandoned run must not be saved")
	}
}

func TestSessionScreen_CompleteRunSaves(t *testing.T) {
	deps, store := testDeps(2, 2)
	s := started(t, deps)

	s.Update(keyPress('a'))
	s.Update(keyPress(' '))
	s.Update(keyPress('a'))
	_, cmd := s.Update(specialKey(tea.KeyEnter))
	if cmd == nil || !s.saving {
		t.Fatal("expected a save command after the last question")
	}

	_, cmd = s.Update(cmd())
	if cmd == nil {
		t.Fatal("expected follow-up commands after saving")
	}
	if got := len(store.rec["2026-10-14"]); got != 1 {
		t.Fatalf("saved sessions = %d, want 1", got)
	}
	if got := store.rec["2026-10-14"][0].Correct(); got != 2 {
		t.Errorf("saved correct = %d, want 2", got)
	}

	batch, ok := cmd().(tea.BatchMsg)
	if !ok {
		t.Fatalf("expected a batch, got %T", cmd())
	}
	var replaced bool
	for _, c := range batch {
		if m, ok := c().(router.ReplaceScreenMsg); ok {
			_, replaced = m.Screen.(*summary.SummaryScreen)
		}
	}
	if !replaced {
		t.Error("expected the results screen to replace the practice screen")
	}
}

func TestSessionScreen_EmptyBankNotice(t *testing.T) {
	deps, _ := testDeps(1, 1)
	first := started(t, deps)
	first.Update(keyPress('a'))
	_, cmd := first.Update(keyPress(' '))
	first.Update(cmd())

	s := New(deps, questionbank.PartIncompleteSentences)
	_, cmd = s.Update(s.Init()())
	if cmd == nil {
		t.Fatal("expected a replace command when nothing is left")
	}
	m, ok := cmd().(router.ReplaceScreenMsg)
	if !ok {
		t.Fatal("expected ReplaceScreenMsg")
	}
	if _, ok := m.Screen.(*notice.NoticeScreen); !ok {
		t.Errorf("replacement = %T, want notice", m.Screen)
	}
}

func TestSessionScreen_ReviewMissingSession(t *testing.T) {
	deps, _ := testDeps(3, 3)
	s := NewReview(deps, "2026-10-01", 0)
	_, cmd := s.Update(s.Init()())
	if cmd == nil {
		t.Fatal("expected a notice for a missing session")
	}
	if _, ok := cmd().(router.ReplaceScreenMsg); !ok {
		t.Error("expected ReplaceScreenMsg")
	}
}

func TestSessionScreen_KeyHints(t *testing.T) {
	deps, _ := testDeps(3, 3)
	s := started(t, deps)
	for _, h := range s.KeyHints() {
		if h.Key == "P" {
			t.Error("reading parts should not offer playback")
		}
	}
}
