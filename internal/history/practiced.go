package history

import "github.com/abhisek/toeicz/internal/questionbank"

// PracticedIDs returns the IDs of questions already practiced for part on
// the given day. It is recomputed on every call; the record only grows by
// append, but rebuilding is cheap and leaves nothing to invalidate.
func PracticedIDs(rec Record, dateKey string, part questionbank.Part) map[questionbank.QuestionID]bool {
	ids := make(map[questionbank.QuestionID]bool)
	for _, s := range rec[dateKey] {
		if s.Part != part {
			continue
		}
		for _, q := range s.Questions {
			ids[q.ID] = true
		}
	}
	return ids
}
