package session

import (
	"time"

	"github.com/abhisek/toeicz/internal/questionbank"
)

// DefaultSize is the number of questions in a practice run.
const DefaultSize = 10

// Phase is the lifecycle phase of a run.
type Phase int

const (
	PhaseNotStarted Phase = iota // No questions selected yet
	PhaseInProgress              // Some questions still unanswered
	PhaseComplete                // Every selected question answered
)

func (p Phase) String() string {
	switch p {
	case PhaseNotStarted:
		return "not-started"
	case PhaseInProgress:
		return "in-progress"
	case PhaseComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// Mode distinguishes fresh practice from replaying a past session.
type Mode int

const (
	ModePractice Mode = iota
	ModeReview
)

// Answer records the learner's choice for one question.
type Answer struct {
	QuestionID questionbank.QuestionID
	Selected   int
	Correct    int
	IsCorrect  bool
}

// State is the runtime state of one practice run. The UI holds the
// current State and passes it back into each operation.
type State struct {
	// ID identifies this run in logs.
	ID string

	Part questionbank.Part
	Mode Mode

	// Questions is the selected subset in presentation order.
	Questions []questionbank.Question

	// Answers holds one entry per answered question, in the same order.
	Answers []Answer

	// Warning is set when fewer than a full run of unseen questions remained.
	Warning string

	// Available is the number of unseen questions the run was drawn from.
	Available int

	StartTime time.Time

	// FinishTime is set once the run has been saved.
	FinishTime time.Time

	// ReviewDate and ReviewIndex locate the replayed session in ModeReview.
	ReviewDate  string
	ReviewIndex int
}

// Phase derives the lifecycle phase from the answers recorded so far.
func (s *State) Phase() Phase {
	switch {
	case s == nil || len(s.Questions) == 0:
		return PhaseNotStarted
	case len(s.Answers) >= len(s.Questions):
		return PhaseComplete
	default:
		return PhaseInProgress
	}
}

// Current returns the next unanswered question, or false when complete.
func (s *State) Current() (questionbank.Question, int, bool) {
	i := len(s.Answers)
	if i >= len(s.Questions) {
		return questionbank.Question{}, i, false
	}
	return s.Questions[i], i, true
}

// CorrectCount returns the number of correct answers so far.
func (s *State) CorrectCount() int {
	n := 0
	for _, a := range s.Answers {
		if a.IsCorrect {
			n++
		}
	}
	return n
}
