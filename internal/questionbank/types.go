package questionbank

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Part is one of the seven TOEIC question categories.
type Part int

const (
	PartPhotographs Part = iota + 1
	PartQuestionResponse
	PartConversations
	PartTalks
	PartIncompleteSentences
	PartTextCompletion
	PartReadingComprehension
)

// MinPart and MaxPart bound the valid part numbers.
const (
	MinPart = PartPhotographs
	MaxPart = PartReadingComprehension
)

// AllParts returns all parts in display order.
func AllParts() []Part {
	return []Part{
		PartPhotographs,
		PartQuestionResponse,
		PartConversations,
		PartTalks,
		PartIncompleteSentences,
		PartTextCompletion,
		PartReadingComprehension,
	}
}

// Valid reports whether p is in 1..7.
func (p Part) Valid() bool {
	return p >= MinPart && p <= MaxPart
}

// IsAudio reports whether questions in this part are listened to rather than read.
func (p Part) IsAudio() bool {
	return p >= PartPhotographs && p <= PartTalks
}

// Name returns the short display name, e.g. "Photographs".
func (p Part) Name() string {
	switch p {
	case PartPhotographs:
		return "Photographs"
	case PartQuestionResponse:
		return "Question-Response"
	case PartConversations:
		return "Conversations"
	case PartTalks:
		return "Talks"
	case PartIncompleteSentences:
		return "Incomplete Sentences"
	case PartTextCompletion:
		return "Text Completion"
	case PartReadingComprehension:
		return "Reading Comprehension"
	default:
		return "Unknown"
	}
}

// DisplayName returns "Part N Name".
func (p Part) DisplayName() string {
	return fmt.Sprintf("Part %d %s", int(p), p.Name())
}

// QuestionID identifies a question within its part. In JSON it may be
// written as a string or an integer; both decode to the same ID.
type QuestionID string

func (id *QuestionID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = QuestionID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("question id must be a string or number: %w", err)
	}
	if _, err := strconv.ParseInt(n.String(), 10, 64); err != nil {
		return fmt.Errorf("question id %s is not an integer", n)
	}
	*id = QuestionID(n.String())
	return nil
}

// Question is a single multiple-choice item.
type Question struct {
	ID          QuestionID `json:"id"`
	Type        string     `json:"type"`
	Context     string     `json:"context,omitempty"`
	Question    string     `json:"question"`
	Options     []string   `json:"options"`
	Answer      int        `json:"answer"`
	Explanation string     `json:"explanation"`
}

// OptionLetters labels options in presentation order.
var OptionLetters = []string{"A", "B", "C", "D"}

// Letter returns the option letter for index i, or "?" if out of range.
func Letter(i int) string {
	if i < 0 || i >= len(OptionLetters) {
		return "?"
	}
	return OptionLetters[i]
}

// Bank is the read-only question bank keyed by part.
type Bank struct {
	Version string
	parts   map[Part][]Question
	byID    map[Part]map[QuestionID]int
}

// NewBank builds a bank from per-part question lists. The slices are
// copied; the caller may reuse them.
func NewBank(version string, parts map[Part][]Question) *Bank {
	b := &Bank{
		Version: version,
		parts:   make(map[Part][]Question, len(parts)),
		byID:    make(map[Part]map[QuestionID]int, len(parts)),
	}
	for p, qs := range parts {
		cp := make([]Question, len(qs))
		copy(cp, qs)
		b.parts[p] = cp

		idx := make(map[QuestionID]int, len(cp))
		for i, q := range cp {
			idx[q.ID] = i
		}
		b.byID[p] = idx
	}
	return b
}

// Questions returns the questions of a part in bank order. The returned
// slice must not be modified.
func (b *Bank) Questions(p Part) []Question {
	return b.parts[p]
}

// Lookup finds a question by part and ID.
func (b *Bank) Lookup(p Part, id QuestionID) (Question, bool) {
	i, ok := b.byID[p][id]
	if !ok {
		return Question{}, false
	}
	return b.parts[p][i], true
}

// Count returns the number of questions in a part.
func (b *Bank) Count(p Part) int {
	return len(b.parts[p])
}
