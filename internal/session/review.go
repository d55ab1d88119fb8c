package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/toeicz/internal/history"
	"github.com/abhisek/toeicz/internal/questionbank"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrNoReviewData    = errors.New("no question data for this session")
)

// StartReview replays the questions of a recorded session. Questions no
// longer present in the bank are skipped; if none resolve the review
// fails with ErrNoReviewData.
func StartReview(rec history.Record, date string, index int, bank *questionbank.Bank) (*State, error) {
	sessions := rec[date]
	if index < 0 || index >= len(sessions) {
		return nil, fmt.Errorf("%w: %s #%d", ErrSessionNotFound, date, index+1)
	}
	past := sessions[index]

	questions := make([]questionbank.Question, 0, len(past.Questions))
	for _, r := range past.Questions {
		if q, ok := bank.Lookup(past.Part, r.ID); ok {
			questions = append(questions, q)
		}
	}
	if len(questions) == 0 {
		return nil, fmt.Errorf("%w: %s #%d", ErrNoReviewData, date, index+1)
	}

	state := &State{
		ID:          uuid.New().String(),
		Part:        past.Part,
		Mode:        ModeReview,
		Questions:   questions,
		Available:   len(questions),
		StartTime:   time.Now(),
		ReviewDate:  date,
		ReviewIndex: index,
	}
	if missing := len(past.Questions) - len(questions); missing > 0 {
		state.Warning = fmt.Sprintf("%d question(s) from this session are no longer in the bank.", missing)
	}
	return state, nil
}
