// Package stats derives aggregate practice figures from the history record.
package stats

import (
	"sort"

	"github.com/abhisek/toeicz/internal/history"
	"github.com/abhisek/toeicz/internal/questionbank"
)

// Totals is the header summary shown on every screen.
type Totals struct {
	TotalPracticed int
	TotalCorrect   int
	Accuracy       int
	StreakDays     int
}

// Compute aggregates every recorded answer and the current streak.
func Compute(rec history.Record, today string) Totals {
	var t Totals
	for _, sessions := range rec {
		for _, s := range sessions {
			t.TotalPracticed += len(s.Questions)
			t.TotalCorrect += s.Correct()
		}
	}
	t.Accuracy = history.Percent(t.TotalCorrect, t.TotalPracticed)
	t.StreakDays = Streak(rec, today)
	return t
}

// Streak counts consecutive practice days ending today or yesterday.
// Days with no sessions, days after today and unparsable keys do not count.
func Streak(rec history.Record, today string) int {
	if _, err := history.ParseDateKey(today); err != nil {
		return 0
	}

	// Keys are YYYY-MM-DD, so lexical order is chronological.
	var dates []string
	for date, sessions := range rec {
		if len(sessions) == 0 || date > today {
			continue
		}
		if _, err := history.ParseDateKey(date); err != nil {
			continue
		}
		dates = append(dates, date)
	}
	if len(dates) == 0 {
		return 0
	}
	sort.Sort(sort.Reverse(sort.StringSlice(dates)))

	yesterday, _ := history.AddDays(today, -1)
	if dates[0] != today && dates[0] != yesterday {
		return 0
	}

	streak := 0
	expected := dates[0]
	for _, d := range dates {
		if d != expected {
			break
		}
		streak++
		expected, _ = history.AddDays(expected, -1)
	}
	return streak
}

// PartStats is the per-part breakdown printed by the stats command.
type PartStats struct {
	Part     questionbank.Part
	Sessions int
	Answered int
	Correct  int
	Accuracy int
}

// ByPart returns a breakdown for every part, including unpracticed ones.
func ByPart(rec history.Record) []PartStats {
	parts := questionbank.AllParts()
	out := make([]PartStats, len(parts))
	idx := make(map[questionbank.Part]int, len(parts))
	for i, p := range parts {
		out[i].Part = p
		idx[p] = i
	}

	for _, sessions := range rec {
		for _, s := range sessions {
			i, ok := idx[s.Part]
			if !ok {
				continue
			}
			out[i].Sessions++
			out[i].Answered += len(s.Questions)
			out[i].Correct += s.Correct()
		}
	}
	for i := range out {
		out[i].Accuracy = history.Percent(out[i].Correct, out[i].Answered)
	}
	return out
}
