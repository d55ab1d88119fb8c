package stats

import (
	"testing"
	"time"

	"github.com/abhisek/toeicz/internal/history"
	"github.com/abhisek/toeicz/internal/questionbank"
)

func TestMonthGrid_October2026(t *testing.T) {
	// 2026-10-01 is a Thursday, so four September days lead.
	rec := days("2026-10-14", "2026-10-02", "2026-09-30", "2026-11-01")
	cells := MonthGrid(2026, time.October, rec, today)

	if len(cells) != GridCells {
		t.Fatalf("len = %d, want %d", len(cells), GridCells)
	}
	if cells[0].Date != "2026-09-27" || cells[0].InMonth {
		t.Errorf("first cell = %+v, want out-of-month 2026-09-27", cells[0])
	}
	if cells[4].Date != "2026-10-01" || !cells[4].InMonth || cells[4].Day != 1 {
		t.Errorf("cell 4 = %+v, want 2026-10-01", cells[4])
	}
	if cells[41].Date != "2026-11-07" || cells[41].InMonth {
		t.Errorf("last cell = %+v, want out-of-month 2026-11-07", cells[41])
	}

	inMonth, practiced := 0, 0
	for _, c := range cells {
		if c.InMonth {
			inMonth++
		}
		if c.HasPractice {
			practiced++
		}
	}
	if inMonth != 31 {
		t.Errorf("in-month cells = %d, want 31", inMonth)
	}
	if practiced != 2 {
		t.Errorf("practice cells = %d, want 2 (other-month days are never flagged)", practiced)
	}

	todayCell := cells[4+13]
	if todayCell.Date != today || !todayCell.IsToday || !todayCell.HasPractice {
		t.Errorf("today cell = %+v", todayCell)
	}
}

func TestMonthGrid_StartsOnSunday(t *testing.T) {
	// 2026-02-01 is a Sunday: no leading days.
	cells := MonthGrid(2026, time.February, history.Record{}, today)
	if cells[0].Date != "2026-02-01" || !cells[0].InMonth {
		t.Errorf("first cell = %+v, want 2026-02-01", cells[0])
	}
	for i, c := range cells {
		if c.IsToday {
			t.Errorf("cell %d flagged as today", i)
		}
	}
}

func TestDayReview(t *testing.T) {
	rec := history.Record{
		"2026-10-14": {
			session(questionbank.PartPhotographs, true, false, true),
			session(questionbank.PartTextCompletion, false),
		},
	}

	lines := DayReview(rec, "2026-10-14")
	if len(lines) != 2 {
		t.Fatalf("lines = %d, want 2", len(lines))
	}
	if l := lines[0]; l.Index != 0 || l.PartName != "Part 1 Photographs" || l.Correct != 2 || l.Total != 3 {
		t.Errorf("line 0 = %+v", l)
	}
	if l := lines[1]; l.Index != 1 || l.Part != questionbank.PartTextCompletion || l.Correct != 0 || l.Total != 1 {
		t.Errorf("line 1 = %+v", l)
	}

	if got := DayReview(rec, "2026-10-01"); len(got) != 0 {
		t.Errorf("empty day = %v, want no lines", got)
	}
}
