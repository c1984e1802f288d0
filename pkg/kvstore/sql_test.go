package kvstore

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSQLMock(t *testing.T) (*SQLStore, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	store := NewSQLStore(sqlx.NewDb(db, "sqlmock"))
	store.now = func() time.Time { return time.UnixMilli(1700000000000) }
	return store, mock, func() { db.Close() }
}

func TestSQLStoreGet(t *testing.T) {
	store, mock, cleanup := newSQLMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(selectEntryQuery)).
		WithArgs("school_pass_students_db").
		WillReturnRows(sqlmock.NewRows([]string{"entry_value"}).AddRow(`[]`))

	value, err := store.Get(context.Background(), "school_pass_students_db")
	require.NoError(t, err)
	assert.Equal(t, "[]", value)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLStoreGetMissing(t *testing.T) {
	store, mock, cleanup := newSQLMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(selectEntryQuery)).
		WithArgs("absent").
		WillReturnRows(sqlmock.NewRows([]string{"entry_value"}))

	_, err := store.Get(context.Background(), "absent")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLStoreSetUpserts(t *testing.T) {
	store, mock, cleanup := newSQLMock(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO kv_entries (entry_key, entry_value, updated_at) VALUES (?, ?, ?)")).
		WithArgs("k", "v", int64(1700000000000)).
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, store.Set(context.Background(), "k", "v"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLStoreSetSurfacesErrors(t *testing.T) {
	store, mock, cleanup := newSQLMock(t)
	defer cleanup()

	mock.ExpectExec("INSERT INTO kv_entries").WillReturnError(errors.New("database or disk is full"))

	err := store.Set(context.Background(), "k", "v")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk is full")
}

func TestSQLStoreRemove(t *testing.T) {
	store, mock, cleanup := newSQLMock(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta(deleteEntryQuery)).
		WithArgs("k").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, store.Remove(context.Background(), "k"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
