package questionbank

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"

	"golang.org/x/mod/semver"
)

// SupportedMajor is the bank format major version this build reads.
const SupportedMajor = "v1"

//go:embed data/sample_bank.json
var sampleBank []byte

var (
	ErrUnsupportedVersion = errors.New("unsupported question bank version")
	ErrInvalidBank        = errors.New("invalid question bank")
)

// document is the on-disk shape of a question bank.
type document struct {
	Version string                `json:"version"`
	Parts   map[string][]Question `json:"parts"`
}

// Parse decodes and validates a question bank document.
func Parse(data []byte) (*Bank, error) {
	if err := validateSchema(data); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidBank, err)
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: decode: %w", ErrInvalidBank, err)
	}

	if !semver.IsValid(doc.Version) || semver.Major(doc.Version) != SupportedMajor {
		return nil, fmt.Errorf("%w: %q (want %s.x.y)", ErrUnsupportedVersion, doc.Version, SupportedMajor)
	}

	parts := make(map[Part][]Question, len(doc.Parts))
	for key, qs := range doc.Parts {
		n, err := strconv.Atoi(key)
		if err != nil || !Part(n).Valid() {
			return nil, fmt.Errorf("%w: part key %q", ErrInvalidBank, key)
		}
		parts[Part(n)] = qs
	}

	if err := validateParts(parts); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidBank, err)
	}

	return NewBank(doc.Version, parts), nil
}

// LoadFile reads and parses a bank from path.
func LoadFile(path string) (*Bank, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read question bank: %w", err)
	}
	return Parse(data)
}

// Default returns the sample bank compiled into the binary.
func Default() (*Bank, error) {
	return Parse(sampleBank)
}

// Load returns the bank at path, or the built-in sample bank when path is empty.
func Load(path string) (*Bank, error) {
	if path == "" {
		return Default()
	}
	return LoadFile(path)
}

// validateParts performs the checks JSON Schema cannot express.
func validateParts(parts map[Part][]Question) error {
	keys := make([]int, 0, len(parts))
	for p := range parts {
		keys = append(keys, int(p))
	}
	sort.Ints(keys)

	var errs []error
	for _, k := range keys {
		p := Part(k)
		seen := make(map[QuestionID]bool, len(parts[p]))
		for i, q := range parts[p] {
			if q.ID == "" {
				errs = append(errs, fmt.Errorf("part %d question %d: empty id", k, i))
				continue
			}
			if seen[q.ID] {
				errs = append(errs, fmt.Errorf("part %d: duplicate id %q", k, q.ID))
			}
			seen[q.ID] = true
			if q.Answer < 0 || q.Answer >= len(q.Options) {
				errs = append(errs, fmt.Errorf("part %d question %q: answer %d out of range for %d options",
					k, q.ID, q.Answer, len(q.Options)))
			}
		}
	}
	return errors.Join(errs...)
}
