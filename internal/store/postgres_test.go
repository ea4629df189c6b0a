package store

import (
	"context"
	"database/sql"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupPostgresStore(t *testing.T) (*PostgresStore, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPostgresStore(db), mock
}

func TestPostgresStore_Get(t *testing.T) {
	s, mock := setupPostgresStore(t)
	ctx := context.Background()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT value FROM kv_records WHERE key = $1`)).
		WithArgs("device:d1").
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow(`{"id":"d1"}`))

	v, err := s.Get(ctx, "device:d1")
	require.NoError(t, err)
	assert.Equal(t, `{"id":"d1"}`, v)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_GetAbsent(t *testing.T) {
	s, mock := setupPostgresStore(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT value FROM kv_records WHERE key = $1`)).
		WithArgs("device:missing").
		WillReturnError(sql.ErrNoRows)

	_, err := s.Get(context.Background(), "device:missing")
	assert.Equal(t, ErrNotFound, err)
}

func TestPostgresStore_SetUpserts(t *testing.T) {
	s, mock := setupPostgresStore(t)

	mock.ExpectExec(regexp.QuoteMeta(
		`INSERT INTO kv_records (key, value) VALUES ($1, $2)
		 ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`)).
		WithArgs("check:2025:10:d1", "payload").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, s.Set(context.Background(), "check:2025:10:d1", "payload"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_DeleteAbsentIsNoError(t *testing.T) {
	s, mock := setupPostgresStore(t)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM kv_records WHERE key = $1`)).
		WithArgs("device:gone").
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, s.Delete(context.Background(), "device:gone"))
}

func TestPostgresStore_MGetPreservesInputOrder(t *testing.T) {
	s, mock := setupPostgresStore(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT key, value FROM kv_records WHERE key = ANY($1)`)).
		WithArgs(pq.Array([]string{"k:2", "k:missing", "k:1"})).
		WillReturnRows(sqlmock.NewRows([]string{"key", "value"}).
			AddRow("k:1", "one").
			AddRow("k:2", "two"))

	values, err := s.MGet(context.Background(), "k:2", "k:missing", "k:1")
	require.NoError(t, err)
	assert.Equal(t, []string{"two", "one"}, values)
}

func TestPostgresStore_ScanPrefixEscapesPattern(t *testing.T) {
	s, mock := setupPostgresStore(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT key, value FROM kv_records WHERE key LIKE $1 ESCAPE '\'`)).
		WithArgs(`check:2025:10:%`).
		WillReturnRows(sqlmock.NewRows([]string{"key", "value"}).
			AddRow("check:2025:10:d1", "a"))

	entries, err := s.ScanPrefix(context.Background(), "check:2025:10:")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "check:2025:10:d1", entries[0].Key)
}

func TestPostgresStore_StorageErrorPropagates(t *testing.T) {
	s, mock := setupPostgresStore(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT value FROM kv_records WHERE key = $1`)).
		WithArgs("device:d1").
		WillReturnError(sql.ErrConnDone)

	_, err := s.Get(context.Background(), "device:d1")
	require.Error(t, err)
	assert.ErrorIs(t, err, sql.ErrConnDone)
}
