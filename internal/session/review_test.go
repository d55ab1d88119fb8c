package session

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/abhisek/toeicz/internal/questionbank"
)

func TestStartReview(t *testing.T) {
	part := questionbank.PartIncompleteSentences
	rec := practicedRecord(part, "2026-10-12", "p5-003", "p5-001", "gone-1")

	state, err := StartReview(rec, "2026-10-12", 0, testBank(5))
	if err != nil {
		t.Fatalf("StartReview: %v", err)
	}
	if state.Mode != ModeReview {
		t.Errorf("mode = %v, want review", state.Mode)
	}
	if state.Part != part {
		t.Errorf("part = %d, want %d", state.Part, part)
	}
	if len(state.Questions) != 2 || state.Questions[0].ID != "p5-003" || state.Questions[1].ID != "p5-001" {
		t.Errorf("questions = %v, want [p5-003 p5-001] in recorded order", state.Questions)
	}
	if !strings.Contains(state.Warning, "1 question") {
		t.Errorf("warning = %q, want missing-question notice", state.Warning)
	}
	if state.ReviewDate != "2026-10-12" || state.ReviewIndex != 0 {
		t.Errorf("review location = %s #%d", state.ReviewDate, state.ReviewIndex)
	}
}

func TestStartReview_Errors(t *testing.T) {
	part := questionbank.PartIncompleteSentences
	rec := practicedRecord(part, "2026-10-12", "gone-1", "gone-2")

	if _, err := StartReview(rec, "2026-10-12", 0, testBank(3)); !errors.Is(err, ErrNoReviewData) {
		t.Errorf("unresolvable: err = %v, want ErrNoReviewData", err)
	}
	if _, err := StartReview(rec, "2026-10-12", 1, testBank(3)); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("bad index: err = %v, want ErrSessionNotFound", err)
	}
	if _, err := StartReview(rec, "2026-10-01", 0, testBank(3)); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("bad date: err = %v, want ErrSessionNotFound", err)
	}
}

func TestEngine_ReviewIsPersisted(t *testing.T) {
	part := questionbank.PartIncompleteSentences
	store := &memStore{rec: practicedRecord(part, "2026-10-12", "p5-001", "p5-002")}
	now := time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)
	e := NewEngine(testBank(5), store, WithLocation(time.UTC), WithClock(func() time.Time { return now }))

	state, err := e.Review(context.Background(), "2026-10-12", 0)
	if err != nil {
		t.Fatalf("Review: %v", err)
	}
	for i := range state.Questions {
		RecordAnswer(state, i, 0)
	}
	if _, err := e.Finish(context.Background(), state); err != nil {
		t.Fatalf("Finish: %v", err)
	}
	if store.appends != 1 {
		t.Errorf("appends = %d, want 1", store.appends)
	}
	if got := len(store.rec[testToday]); got != 1 {
		t.Errorf("sessions today = %d, want 1", got)
	}
	if got := len(store.rec["2026-10-12"]); got != 1 {
		t.Errorf("reviewed day must be untouched, has %d sessions", got)
	}
}
