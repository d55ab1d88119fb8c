package history

import (
	"errors"
	"testing"
	"time"

	"github.com/abhisek/toeicz/internal/questionbank"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name      string
		blob      string
		wantErr   bool
		wantDays  int
		wantFirst string
	}{
		{"empty object", `{}`, false, 0, ""},
		{"null", `null`, false, 0, ""},
		{"numeric and string ids", `{"2026-10-13":[{"part":1,"timestamp":1,"questions":[{"id":3,"isCorrect":true},{"id":"p1-4","isCorrect":false}]}]}`, false, 1, "3"},
		{"not json", `{"2026-10-13":`, true, 0, ""},
		{"array root", `[]`, true, 0, ""},
		{"sessions not array", `{"2026-10-13":{"part":1}}`, true, 0, ""},
		{"bad date key", `{"yesterday":[]}`, true, 0, ""},
		{"part out of range", `{"2026-10-13":[{"part":9,"timestamp":1,"questions":[]}]}`, true, 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := Decode([]byte(tt.blob))
			if tt.wantErr {
				if !errors.Is(err, ErrMalformed) {
					t.Fatalf("Decode error = %v, want ErrMalformed", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if rec == nil {
				t.Fatal("expected non-nil record")
			}
			if len(rec) != tt.wantDays {
				t.Errorf("days = %d, want %d", len(rec), tt.wantDays)
			}
			if tt.wantFirst != "" {
				got := rec["2026-10-13"][0].Questions[0].ID
				if got != questionbank.QuestionID(tt.wantFirst) {
					t.Errorf("first id = %q, want %q", got, tt.wantFirst)
				}
			}
		})
	}
}

func TestEncodeDecode(t *testing.T) {
	rec := Record{
		"2026-10-14": {
			{Part: 5, Timestamp: 1760400000000, Questions: []QuestionResult{{ID: "p5-001", IsCorrect: true}}},
		},
	}
	data, err := Encode(rec)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	want := `{"2026-10-14":[{"part":5,"timestamp":1760400000000,"questions":[{"id":"p5-001","isCorrect":true}]}]}`
	if string(data) != want {
		t.Errorf("Encode = %s\nwant   %s", data, want)
	}
}

func TestPercent(t *testing.T) {
	tests := []struct {
		correct, total, want int
	}{
		{0, 0, 0},
		{0, 10, 0},
		{10, 10, 100},
		{1, 3, 33},
		{2, 3, 67},
		{1, 8, 13}, // 12.5 rounds up
		{1, 200, 1}, // 0.5 rounds up
	}
	for _, tt := range tests {
		if got := Percent(tt.correct, tt.total); got != tt.want {
			t.Errorf("Percent(%d, %d) = %d, want %d", tt.correct, tt.total, got, tt.want)
		}
	}
}

func TestSessionCorrect(t *testing.T) {
	s := Session{Questions: []QuestionResult{{ID: "a", IsCorrect: true}, {ID: "b"}, {ID: "c", IsCorrect: true}}}
	if s.Correct() != 2 {
		t.Errorf("Correct() = %d, want 2", s.Correct())
	}
}

func TestRecordDates(t *testing.T) {
	rec := Record{
		"2026-10-14": {{Part: 1}},
		"2026-09-30": {{Part: 2}},
		"2026-10-01": {{Part: 3}},
	}
	got := rec.Dates()
	want := []string{"2026-09-30", "2026-10-01", "2026-10-14"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Dates() = %v, want %v", got, want)
		}
	}
}

func TestDateKeys(t *testing.T) {
	loc := time.FixedZone("UTC+9", 9*3600)
	// 2026-10-13 20:00 UTC is already 2026-10-14 in UTC+9.
	now := time.Date(2026, 10, 13, 20, 0, 0, 0, time.UTC)
	if got := Today(now, loc); got != "2026-10-14" {
		t.Errorf("Today = %q, want 2026-10-14", got)
	}
	if got := Today(now, time.UTC); got != "2026-10-13" {
		t.Errorf("Today(UTC) = %q, want 2026-10-13", got)
	}

	tests := []struct {
		key  string
		n    int
		want string
	}{
		{"2026-10-14", -1, "2026-10-13"},
		{"2026-03-01", -1, "2026-02-28"},
		{"2024-03-01", -1, "2024-02-29"},
		{"2026-12-31", 1, "2027-01-01"},
	}
	for _, tt := range tests {
		got, err := AddDays(tt.key, tt.n)
		if err != nil {
			t.Fatalf("AddDays(%q): %v", tt.key, err)
		}
		if got != tt.want {
			t.Errorf("AddDays(%q, %d) = %q, want %q", tt.key, tt.n, got, tt.want)
		}
	}

	if _, err := AddDays("2026/10/14", 1); err == nil {
		t.Error("expected error for malformed key")
	}
}
