package session

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/toeicz/internal/history"
	"github.com/abhisek/toeicz/internal/questionbank"
)

var (
	ErrEmptyBank       = errors.New("no unseen questions left for this part today")
	ErrInvalidPart     = errors.New("invalid part")
	ErrAlreadyAnswered = errors.New("question already answered")
	ErrOutOfOrder      = errors.New("answer recorded out of order")
	ErrInvalidOption   = errors.New("option index out of range")
	ErrIncomplete      = errors.New("session not complete")
)

// ShuffleFunc has the signature of rand.Shuffle.
type ShuffleFunc func(n int, swap func(i, j int))

// Start selects today's questions for part: every question of the part
// not yet practiced today, shuffled, truncated to DefaultSize. It fails
// with ErrEmptyBank when nothing unseen is left.
func Start(part questionbank.Part, bank *questionbank.Bank, rec history.Record, today string) (*State, error) {
	return start(part, bank, rec, today, DefaultSize, rand.Shuffle)
}

func start(part questionbank.Part, bank *questionbank.Bank, rec history.Record, today string, size int, shuffle ShuffleFunc) (*State, error) {
	if !part.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidPart, part)
	}

	practiced := history.PracticedIDs(rec, today, part)
	selected, available := Select(bank.Questions(part), practiced, size, shuffle)
	if available == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyBank, part.DisplayName())
	}

	state := &State{
		ID:        uuid.New().String(),
		Part:      part,
		Mode:      ModePractice,
		Questions: selected,
		Available: available,
		StartTime: time.Now(),
	}
	if available < size {
		state.Warning = fmt.Sprintf("Only %d unseen questions left for %s today. The set resets tomorrow.",
			available, part.DisplayName())
	}
	return state, nil
}

// Select filters out practiced questions, shuffles the rest with an
// unbiased Fisher-Yates shuffle and keeps the first size of them. It
// returns the selection and how many questions were available.
func Select(candidates []questionbank.Question, practiced map[questionbank.QuestionID]bool, size int, shuffle ShuffleFunc) ([]questionbank.Question, int) {
	available := make([]questionbank.Question, 0, len(candidates))
	for _, q := range candidates {
		if !practiced[q.ID] {
			available = append(available, q)
		}
	}

	shuffle(len(available), func(i, j int) {
		available[i], available[j] = available[j], available[i]
	})

	n := min(size, len(available))
	return available[:n], len(available)
}

// RecordAnswer records the option chosen for question index. Questions
// must be answered in order, each exactly once.
func RecordAnswer(state *State, index, selected int) (Answer, error) {
	if index < len(state.Answers) {
		return Answer{}, fmt.Errorf("%w: question %d", ErrAlreadyAnswered, index+1)
	}
	if index != len(state.Answers) || index >= len(state.Questions) {
		return Answer{}, fmt.Errorf("%w: question %d", ErrOutOfOrder, index+1)
	}

	q := state.Questions[index]
	if selected < 0 || selected >= len(q.Options) {
		return Answer{}, fmt.Errorf("%w: %d of %d", ErrInvalidOption, selected, len(q.Options))
	}

	a := Answer{
		QuestionID: q.ID,
		Selected:   selected,
		Correct:    q.Answer,
		IsCorrect:  selected == q.Answer,
	}
	state.Answers = append(state.Answers, a)
	return a, nil
}

// IsComplete reports whether every selected question has been answered.
func IsComplete(state *State) bool {
	return state.Phase() == PhaseComplete
}

// Finish builds the persisted form of a completed run.
func Finish(state *State, now time.Time) (history.Session, error) {
	if !IsComplete(state) {
		return history.Session{}, fmt.Errorf("%w: %d of %d answered", ErrIncomplete, len(state.Answers), len(state.Questions))
	}

	results := make([]history.QuestionResult, len(state.Questions))
	for i, q := range state.Questions {
		results[i] = history.QuestionResult{
			ID:        q.ID,
			IsCorrect: state.Answers[i].IsCorrect,
		}
	}

	return history.Session{
		Part:      state.Part,
		Timestamp: now.UnixMilli(),
		Questions: results,
	}, nil
}
