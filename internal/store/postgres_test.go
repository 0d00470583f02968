package store

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPostgresMock(t *testing.T) (*SQLStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	s, err := NewSQLStore(db, DriverPostgres)
	require.NoError(t, err)
	return s, mock
}

func TestPostgres_GetUsesPositionalPlaceholders(t *testing.T) {
	s, mock := newPostgresMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT value FROM records WHERE key = $1`)).
		WithArgs(KeySessionUser).
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow([]byte(`{"id":"1"}`)))

	v, err := s.Get(context.Background(), KeySessionUser)
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"id":"1"}`), v)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_GetNoRows(t *testing.T) {
	s, mock := newPostgresMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT value FROM records WHERE key = $1`)).
		WithArgs("absent").
		WillReturnError(sql.ErrNoRows)

	v, err := s.Get(context.Background(), "absent")
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestPostgres_UpdateCommits(t *testing.T) {
	s, mock := newPostgresMock(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO records (key, value) VALUES ($1, $2)`)).
		WithArgs(KeyPickupRequests, []byte("[]")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM records WHERE key = $1`)).
		WithArgs(KeySessionUser).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := s.Update(context.Background(), func(ctx context.Context, kv KV) error {
		if err := kv.Set(ctx, KeyPickupRequests, []byte("[]")); err != nil {
			return err
		}
		return kv.Delete(ctx, KeySessionUser)
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_UpdateRollsBackOnWriteError(t *testing.T) {
	s, mock := newPostgresMock(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO records`)).
		WillReturnError(errors.New("conn reset"))
	mock.ExpectRollback()

	err := s.Update(context.Background(), func(ctx context.Context, kv KV) error {
		return kv.Set(ctx, KeyRegisteredUsers, []byte("[]"))
	})
	require.ErrorContains(t, err, "failed to set record[registered-users]")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_ListScansRows(t *testing.T) {
	s, mock := newPostgresMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT key, value FROM records`)).
		WillReturnRows(sqlmock.NewRows([]string{"key", "value"}).
			AddRow("a", []byte{1}).
			AddRow("b", []byte{2}))

	m, err := s.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string][]byte{"a": {1}, "b": {2}}, m)
}

func TestPostgres_ListRowError(t *testing.T) {
	s, mock := newPostgresMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT key, value FROM records`)).
		WillReturnRows(sqlmock.NewRows([]string{"key", "value"}).
			AddRow("a", []byte{1}).
			RowError(0, errors.New("bad row")))

	_, err := s.List(context.Background())
	require.ErrorContains(t, err, "failed to iterate record rows")
}
