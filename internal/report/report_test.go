package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/toeicz/internal/history"
	"github.com/abhisek/toeicz/internal/questionbank"
)

func testRecord() history.Record {
	// 2026-10-14T08:00Z and 09:00Z.
	return history.Record{
		"2026-10-14": {
			{Part: questionbank.PartPhotographs, Timestamp: 1791964800000, Questions: []history.QuestionResult{
				{ID: "p1-001", IsCorrect: true}, {ID: "p1-002", IsCorrect: false},
			}},
			{Part: questionbank.PartIncompleteSentences, Timestamp: 1791968400000, Questions: []history.QuestionResult{
				{ID: "p5-001", IsCorrect: true},
			}},
		},
		"2026-10-12": {
			{Part: questionbank.PartTalks, Timestamp: 1791763200000, Questions: []history.QuestionResult{
				{ID: "p4-001", IsCorrect: false},
			}},
		},
	}
}

func TestMarkdown(t *testing.T) {
	var buf bytes.Buffer
	err := Markdown(&buf, testRecord(), Options{Today: "2026-10-14", Location: time.UTC})
	require.NoError(t, err)
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "# TOEIC Practice History\n"))
	assert.Contains(t, out, "- Questions practiced: 4\n")
	assert.Contains(t, out, "- Accuracy: 50%\n")
	assert.Contains(t, out, "- Streak: 1 day(s)\n")
	assert.Contains(t, out, "| 08:00 | Part 1 Photographs | 1/2 (50%) |")
	assert.Contains(t, out, "| 09:00 | Part 5 Incomplete Sentences | 1/1 (100%) |")

	assert.Less(t, strings.Index(out, "## 2026-10-12"), strings.Index(out, "## 2026-10-14"),
		"days must be in ascending order")
}

func TestMarkdown_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Markdown(&buf, history.Record{}, Options{Today: "2026-10-14"}))
	assert.Contains(t, buf.String(), "No practice recorded yet.")
}

func TestHTML(t *testing.T) {
	var buf bytes.Buffer
	err := HTML(&buf, testRecord(), Options{Title: "My History", Today: "2026-10-14", Location: time.UTC})
	require.NoError(t, err)
	out := buf.String()

	assert.Contains(t, out, "<title>My History</title>")
	assert.Contains(t, out, "<h1>My History</h1>")
	assert.Contains(t, out, "<table>")
	assert.Contains(t, out, "<td>Part 4 Talks</td>")
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"md": FormatMarkdown, "Markdown": FormatMarkdown, "HTML": FormatHTML} {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseFormat("pdf")
	assert.Error(t, err)
}
