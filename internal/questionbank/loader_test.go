package questionbank

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultBank(t *testing.T) {
	bank, err := Default()
	require.NoError(t, err)

	assert.Equal(t, "v1.0.0", bank.Version)
	for _, p := range AllParts() {
		assert.NotZero(t, bank.Count(p), "part %d should have questions", p)
	}
	assert.GreaterOrEqual(t, bank.Count(PartIncompleteSentences), 10)
}

func TestParse_NumericIDs(t *testing.T) {
	doc := `{"version":"v1.2.0","parts":{"5":[
		{"id":7,"type":"t","question":"q","options":["a","b","c"],"answer":2,"explanation":"e"}
	]}}`

	bank, err := Parse([]byte(doc))
	require.NoError(t, err)

	q, ok := bank.Lookup(PartIncompleteSentences, "7")
	require.True(t, ok)
	assert.Equal(t, QuestionID("7"), q.ID)
	assert.Equal(t, 2, q.Answer)
}

func TestParse_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr error
	}{
		{
			name:    "not json",
			doc:     `{`,
			wantErr: ErrInvalidBank,
		},
		{
			name:    "missing version",
			doc:     `{"parts":{}}`,
			wantErr: ErrInvalidBank,
		},
		{
			name:    "major version 2",
			doc:     `{"version":"v2.0.0","parts":{}}`,
			wantErr: ErrUnsupportedVersion,
		},
		{
			name:    "not semver",
			doc:     `{"version":"latest","parts":{}}`,
			wantErr: ErrUnsupportedVersion,
		},
		{
			name:    "part out of range",
			doc:     `{"version":"v1.0.0","parts":{"8":[]}}`,
			wantErr: ErrInvalidBank,
		},
		{
			name: "too few options",
			doc: `{"version":"v1.0.0","parts":{"5":[
				{"id":"a","type":"t","question":"q","options":["a","b"],"answer":0,"explanation":"e"}]}}`,
			wantErr: ErrInvalidBank,
		},
		{
			name: "answer beyond options",
			doc: `{"version":"v1.0.0","parts":{"5":[
				{"id":"a","type":"t","question":"q","options":["a","b","c"],"answer":3,"explanation":"e"}]}}`,
			wantErr: ErrInvalidBank,
		},
		{
			name: "duplicate id",
			doc: `{"version":"v1.0.0","parts":{"5":[
				{"id":"a","type":"t","question":"q","options":["a","b","c"],"answer":0,"explanation":"e"},
				{"id":"a","type":"t","question":"q2","options":["a","b","c"],"answer":1,"explanation":"e"}]}}`,
			wantErr: ErrInvalidBank,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v, want %v", err, tt.wantErr)
		})
	}
}

func TestLoad(t *testing.T) {
	t.Run("empty path uses sample", func(t *testing.T) {
		bank, err := Load("")
		require.NoError(t, err)
		assert.NotZero(t, bank.Count(PartPhotographs))
	})

	t.Run("file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bank.json")
		doc := `{"version":"v1.0.0","parts":{"6":[
			{"id":"x","type":"t","question":"q","options":["a","b","c","d"],"answer":3,"explanation":"e"}]}}`
		require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

		bank, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, 1, bank.Count(PartTextCompletion))
		assert.Zero(t, bank.Count(PartPhotographs))
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
		assert.Error(t, err)
	})
}

func TestPart(t *testing.T) {
	tests := []struct {
		part  Part
		valid bool
		audio bool
	}{
		{0, false, false},
		{PartPhotographs, true, true},
		{PartTalks, true, true},
		{PartIncompleteSentences, true, false},
		{PartReadingComprehension, true, false},
		{8, false, false},
	}
	for _, tt := range tests {
		if got := tt.part.Valid(); got != tt.valid {
			t.Errorf("Part(%d).Valid() = %v, want %v", tt.part, got, tt.valid)
		}
		if got := tt.part.IsAudio(); got != tt.audio {
			t.Errorf("Part(%d).IsAudio() = %v, want %v", tt.part, got, tt.audio)
		}
	}

	if got := PartTalks.DisplayName(); got != "Part 4 Talks" {
		t.Errorf("DisplayName() = %q", got)
	}
}

func TestLetter(t *testing.T) {
	if Letter(0) != "A" || Letter(3) != "D" {
		t.Errorf("unexpected letters %q %q", Letter(0), Letter(3))
	}
	if Letter(4) != "?" || Letter(-1) != "?" {
		t.Error("out-of-range index should map to ?")
	}
}
