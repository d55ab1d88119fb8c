package session

import (
	"time"

	"github.com/abhisek/toeicz/internal/history"
	"github.com/abhisek/toeicz/internal/questionbank"
)

// ScoreTier buckets a run's score for the results message.
type ScoreTier string

const (
	TierPerfect        ScoreTier = "perfect"
	TierGreat          ScoreTier = "great"
	TierGood           ScoreTier = "good"
	TierKeepPracticing ScoreTier = "keep-practicing"
)

// Message returns the encouragement shown with the score.
func (t ScoreTier) Message() string {
	switch t {
	case TierPerfect:
		return "Perfect score! Outstanding!"
	case TierGreat:
		return "Great job, keep it up!"
	case TierGood:
		return "Not bad, keep pushing!"
	default:
		return "Needs more practice. You can do it!"
	}
}

// ResultLine pairs a question with the answer given.
type ResultLine struct {
	Number   int
	Question questionbank.Question
	Answer   Answer
}

// Summary holds the data displayed on the results screen.
type Summary struct {
	Part    questionbank.Part
	Mode    Mode
	Total   int
	Correct int
	Percent int
	Tier    ScoreTier
	Lines   []ResultLine

	// Elapsed is the time from start to save, zero for unsaved runs.
	Elapsed time.Duration
}

// BuildSummary creates a Summary from the answers recorded so far.
func BuildSummary(state *State) *Summary {
	sum := &Summary{
		Part:  state.Part,
		Mode:  state.Mode,
		Total: len(state.Answers),
	}

	for i, a := range state.Answers {
		if a.IsCorrect {
			sum.Correct++
		}
		sum.Lines = append(sum.Lines, ResultLine{
			Number:   i + 1,
			Question: state.Questions[i],
			Answer:   a,
		})
	}

	sum.Percent = history.Percent(sum.Correct, sum.Total)
	sum.Tier = scoreTier(sum.Correct, sum.Total)
	if !state.StartTime.IsZero() && state.FinishTime.After(state.StartTime) {
		sum.Elapsed = state.FinishTime.Sub(state.StartTime).Round(time.Second)
	}
	return sum
}

// scoreTier compares the exact ratio, so 79.9% is never promoted to great.
func scoreTier(correct, total int) ScoreTier {
	switch {
	case total > 0 && correct == total:
		return TierPerfect
	case correct*100 >= 80*total && total > 0:
		return TierGreat
	case correct*100 >= 60*total && total > 0:
		return TierGood
	default:
		return TierKeepPracticing
	}
}
