package kvstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

const (
	selectEntryQuery = `SELECT entry_value FROM kv_entries WHERE entry_key = ?`
	upsertEntryQuery = `INSERT INTO kv_entries (entry_key, entry_value, updated_at) VALUES (?, ?, ?)
ON CONFLICT (entry_key) DO UPDATE SET entry_value = excluded.entry_value, updated_at = excluded.updated_at`
	deleteEntryQuery = `DELETE FROM kv_entries WHERE entry_key = ?`
)

// SQLStore keeps entries in the kv_entries table. The same statements run on
// PostgreSQL and SQLite; placeholders are rebound for the driver in use.
type SQLStore struct {
	db  *sqlx.DB
	now func() time.Time
}

// NewSQLStore builds a store over a migrated database handle.
func NewSQLStore(db *sqlx.DB) *SQLStore {
	return &SQLStore{db: db, now: time.Now}
}

func (s *SQLStore) Get(ctx context.Context, key string) (string, error) {
	var value string
	if err := s.db.GetContext(ctx, &value, s.db.Rebind(selectEntryQuery), key); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("get entry %s: %w", key, err)
	}
	return value, nil
}

func (s *SQLStore) Set(ctx context.Context, key, value string) error {
	if _, err := s.db.ExecContext(ctx, s.db.Rebind(upsertEntryQuery), key, value, s.now().UnixMilli()); err != nil {
		return fmt.Errorf("set entry %s: %w", key, err)
	}
	return nil
}

func (s *SQLStore) Remove(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, s.db.Rebind(deleteEntryQuery), key); err != nil {
		return fmt.Errorf("remove entry %s: %w", key, err)
	}
	return nil
}
