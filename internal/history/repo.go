package history

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/abhisek/toeicz/internal/store"
)

// DefaultKey is the storage key of the history blob.
const DefaultKey = "toeic-history"

// Repo persists the history record as a single JSON blob in a KV store.
type Repo struct {
	kv     store.KV
	key    string
	logger *slog.Logger
}

// Option configures a Repo.
type Option func(*Repo)

// WithKey overrides the storage key.
func WithKey(key string) Option {
	return func(r *Repo) { r.key = key }
}

// WithLogger sets the logger used to report recovered corruption.
func WithLogger(l *slog.Logger) Option {
	return func(r *Repo) { r.logger = l }
}

// NewRepo creates a Repo over kv.
func NewRepo(kv store.KV, opts ...Option) *Repo {
	r := &Repo{
		kv:     kv,
		key:    DefaultKey,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Load returns the stored record. A missing or malformed blob yields an
// empty record; only storage failures are returned as errors.
func (r *Repo) Load(ctx context.Context) (Record, error) {
	data, found, err := r.kv.Get(ctx, r.key)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}
	if !found {
		return Record{}, nil
	}
	return r.decodeSoft(data), nil
}

// Append adds s to the sessions of dateKey and writes the whole record
// back in one transaction.
func (r *Repo) Append(ctx context.Context, dateKey string, s Session) error {
	if _, err := ParseDateKey(dateKey); err != nil {
		return err
	}
	if !s.Part.Valid() {
		return fmt.Errorf("append session: invalid part %d", s.Part)
	}

	err := r.kv.Update(ctx, r.key, func(old []byte, found bool) ([]byte, error) {
		rec := Record{}
		if found {
			rec = r.decodeSoft(old)
		}
		rec[dateKey] = append(rec[dateKey], s)
		return Encode(rec)
	})
	if err != nil {
		return fmt.Errorf("append session: %w", err)
	}
	return nil
}

// Reset replaces the stored record with an empty one.
func (r *Repo) Reset(ctx context.Context) error {
	data, err := Encode(Record{})
	if err != nil {
		return err
	}
	if err := r.kv.Put(ctx, r.key, data); err != nil {
		return fmt.Errorf("reset history: %w", err)
	}
	return nil
}

func (r *Repo) decodeSoft(data []byte) Record {
	rec, err := Decode(data)
	if err != nil {
		r.logger.Warn("history blob unreadable, starting empty", "key", r.key, "bytes", len(data), "error", err)
		return Record{}
	}
	return rec
}
