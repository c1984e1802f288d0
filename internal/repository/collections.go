package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/douradinams/Douradinams/pkg/kvstore"
)

// Storage keys. They are part of the persisted data contract and never change.
const (
	StudentsKey = "school_pass_students_db"
	SchoolsKey  = "school_pass_schools_db"
	StaffKey    = "school_pass_staff_db"
	SettingsKey = "school_pass_settings_db"

	corruptSuffix = ".corrupt"
)

// ErrRecordNotFound is returned by lookups that match nothing.
var ErrRecordNotFound = errors.New("record not found")

// Collections is the state shared by the record repositories: one key-value
// store and one lock serialising every read-modify-write across collections.
type Collections struct {
	kv     kvstore.Store
	mu     sync.Mutex
	logger *zap.Logger
}

// NewCollections wraps a key-value store.
func NewCollections(kv kvstore.Store, logger *zap.Logger) *Collections {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Collections{kv: kv, logger: logger}
}

func (c *Collections) fetch(ctx context.Context, key string) (string, bool, error) {
	raw, err := c.kv.Get(ctx, key)
	if errors.Is(err, kvstore.ErrNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read %s: %w", key, err)
	}
	return raw, true, nil
}

// decode unmarshals raw into dst. Malformed content is logged, copied to
// key+".corrupt" and reported as false so callers fall back to the
// absent-key behaviour without re-seeding.
func (c *Collections) decode(ctx context.Context, key, raw string, dst interface{}) bool {
	err := json.Unmarshal([]byte(raw), dst)
	if err == nil {
		return true
	}
	c.logger.Warn("malformed collection, falling back to empty",
		zap.String("key", key),
		zap.Int("bytes", len(raw)),
		zap.Error(err),
	)
	if backupErr := c.kv.Set(ctx, key+corruptSuffix, raw); backupErr != nil {
		c.logger.Error("back up malformed collection", zap.String("key", key), zap.Error(backupErr))
	}
	return false
}

func (c *Collections) writeJSON(ctx context.Context, key string, value interface{}) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := c.kv.Set(ctx, key, string(payload)); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

// loadSeeded reads a collection, persisting seed when the key is absent.
func loadSeeded[T any](ctx context.Context, c *Collections, key string, seed []T) ([]T, error) {
	raw, found, err := c.fetch(ctx, key)
	if err != nil {
		return nil, err
	}
	if !found {
		items := append([]T(nil), seed...)
		if err := c.writeJSON(ctx, key, items); err != nil {
			return nil, err
		}
		return items, nil
	}

	var items []T
	if !c.decode(ctx, key, raw, &items) || items == nil {
		return []T{}, nil
	}
	return items, nil
}

// load reads a collection; absent or malformed yields an empty slice.
func load[T any](ctx context.Context, c *Collections, key string) ([]T, error) {
	raw, found, err := c.fetch(ctx, key)
	if err != nil {
		return nil, err
	}
	var items []T
	if !found || !c.decode(ctx, key, raw, &items) || items == nil {
		return []T{}, nil
	}
	return items, nil
}
