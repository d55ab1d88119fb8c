package history

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/abhisek/toeicz/internal/questionbank"
)

// ErrMalformed reports a stored history blob whose shape does not decode.
var ErrMalformed = errors.New("malformed history")

// QuestionResult is one answered question within a stored session.
type QuestionResult struct {
	ID        questionbank.QuestionID `json:"id"`
	IsCorrect bool                    `json:"isCorrect"`
}

// Session is one completed practice run. Timestamp is epoch milliseconds.
type Session struct {
	Part      questionbank.Part `json:"part"`
	Timestamp int64             `json:"timestamp"`
	Questions []QuestionResult  `json:"questions"`
}

// Time returns the session timestamp as a time.Time.
func (s Session) Time() time.Time {
	return time.UnixMilli(s.Timestamp)
}

// Correct returns the number of correctly answered questions.
func (s Session) Correct() int {
	n := 0
	for _, q := range s.Questions {
		if q.IsCorrect {
			n++
		}
	}
	return n
}

// Record maps a YYYY-MM-DD date key to that day's sessions in completion order.
type Record map[string][]Session

// Dates returns the record's date keys in ascending order.
func (r Record) Dates() []string {
	dates := make([]string, 0, len(r))
	for d := range r {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	return dates
}

// Decode parses a stored history blob. Any shape mismatch is reported as
// ErrMalformed; callers that must never fail fall back to an empty Record.
func Decode(data []byte) (Record, error) {
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	if rec == nil {
		return Record{}, nil
	}
	for date, sessions := range rec {
		if _, err := ParseDateKey(date); err != nil {
			return nil, fmt.Errorf("%w: date key %q", ErrMalformed, date)
		}
		for i, s := range sessions {
			if !s.Part.Valid() {
				return nil, fmt.Errorf("%w: %s session %d has part %d", ErrMalformed, date, i, s.Part)
			}
		}
	}
	return rec, nil
}

// Encode serializes a record in the stored blob format.
func Encode(r Record) ([]byte, error) {
	if r == nil {
		r = Record{}
	}
	return json.Marshal(r)
}

// Percent returns round(100*correct/total) with halves rounded up, or 0
// when total is 0.
func Percent(correct, total int) int {
	if total <= 0 {
		return 0
	}
	return (200*correct + total) / (2 * total)
}
