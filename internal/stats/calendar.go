package stats

import (
	"time"

	"github.com/abhisek/toeicz/internal/history"
	"github.com/abhisek/toeicz/internal/questionbank"
)

// GridCells is the size of a month grid: six Sunday-first weeks.
const GridCells = 42

// Cell is one day of a month grid.
type Cell struct {
	Date        string
	Day         int
	InMonth     bool
	HasPractice bool
	IsToday     bool
}

// MonthGrid lays out month as 42 cells starting on the Sunday on or
// before the 1st. Days of the neighbouring months fill the leading and
// trailing cells and never carry practice or today flags.
func MonthGrid(year int, month time.Month, rec history.Record, today string) []Cell {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	start := first.AddDate(0, 0, -int(first.Weekday()))

	cells := make([]Cell, GridCells)
	for i := range cells {
		d := start.AddDate(0, 0, i)
		key := history.DateKey(d)
		c := Cell{
			Date:    key,
			Day:     d.Day(),
			InMonth: d.Month() == first.Month() && d.Year() == first.Year(),
		}
		if c.InMonth {
			c.HasPractice = len(rec[key]) > 0
			c.IsToday = key == today
		}
		cells[i] = c
	}
	return cells
}

// SessionLine summarises one recorded session for the day review.
type SessionLine struct {
	Index    int
	Part     questionbank.Part
	PartName string
	Correct  int
	Total    int
	Time     time.Time
}

// DayReview lists the sessions recorded on date in the order they were saved.
func DayReview(rec history.Record, date string) []SessionLine {
	sessions := rec[date]
	lines := make([]SessionLine, 0, len(sessions))
	for i, s := range sessions {
		lines = append(lines, SessionLine{
			Index:    i,
			Part:     s.Part,
			PartName: s.Part.DisplayName(),
			Correct:  s.Correct(),
			Total:    len(s.Questions),
			Time:     s.Time(),
		})
	}
	return lines
}
