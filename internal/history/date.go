package history

import (
	"fmt"
	"time"
)

// DateLayout is the layout of record date keys.
const DateLayout = "2006-01-02"

// DateKey returns the record key for the calendar day of t in t's location.
// Callers convert t to the user's zone first.
func DateKey(t time.Time) string {
	return t.Format(DateLayout)
}

// Today returns the date key for now in loc (time.Local if loc is nil).
func Today(now time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return DateKey(now.In(loc))
}

// ParseDateKey parses a YYYY-MM-DD key as midnight UTC. UTC keeps day
// arithmetic free of DST shifts; the key itself already names a local day.
func ParseDateKey(key string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, key, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date key %q: %w", key, err)
	}
	return t, nil
}

// AddDays returns the key n calendar days after key (n may be negative).
func AddDays(key string, n int) (string, error) {
	t, err := ParseDateKey(key)
	if err != nil {
		return "", err
	}
	return DateKey(t.AddDate(0, 0, n)), nil
}
