package store

import (
	"context"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

const kvTable = "kv"

// KV is a durable string-keyed blob store.
type KV interface {
	// Get returns the value stored under key. found is false if the key
	// has never been written.
	Get(ctx context.Context, key string) (value []byte, found bool, err error)

	// Put stores value under key, replacing any previous value.
	Put(ctx context.Context, key string, value []byte) error

	// Update reads the value under key, passes it to fn and writes fn's
	// result back, all inside one transaction. If fn returns an error
	// nothing is written.
	Update(ctx context.Context, key string, fn func(old []byte, found bool) ([]byte, error)) error
}

type kvRepo struct {
	drv *entsql.Driver
}

func (r *kvRepo) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return get(ctx, r.drv, key)
}

func (r *kvRepo) Put(ctx context.Context, key string, value []byte) error {
	return put(ctx, r.drv, key, value)
}

func (r *kvRepo) Update(ctx context.Context, key string, fn func(old []byte, found bool) ([]byte, error)) error {
	tx, err := r.drv.Tx(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	old, found, err := get(ctx, tx, key)
	if err != nil {
		tx.Rollback()
		return err
	}

	next, err := fn(old, found)
	if err != nil {
		tx.Rollback()
		return err
	}

	if err := put(ctx, tx, key, next); err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func get(ctx context.Context, q dialect.ExecQuerier, key string) ([]byte, bool, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Select("value").
		From(entsql.Table(kvTable)).
		Where(entsql.EQ("key", key)).
		Query()

	rows := &entsql.Rows{}
	if err := q.Query(ctx, query, args, rows); err != nil {
		return nil, false, fmt.Errorf("query %s: %w", key, err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, false, fmt.Errorf("query %s: %w", key, err)
		}
		return nil, false, nil
	}

	var value string
	if err := rows.Scan(&value); err != nil {
		return nil, false, fmt.Errorf("scan %s: %w", key, err)
	}
	return []byte(value), true, nil
}

func put(ctx context.Context, q dialect.ExecQuerier, key string, value []byte) error {
	query, args := entsql.Dialect(dialect.SQLite).
		Insert(kvTable).
		Columns("key", "value", "updated_at").
		Values(key, string(value), time.Now().UnixMilli()).
		OnConflict(
			entsql.ConflictColumns("key"),
			entsql.ResolveWithNewValues(),
		).
		Query()

	if err := q.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("put %s: %w", key, err)
	}
	return nil
}
