package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pashaarshad/smart-recycle-nexus-99/internal/dbx"
	"github.com/pashaarshad/smart-recycle-nexus-99/internal/filex"
	"github.com/pashaarshad/smart-recycle-nexus-99/internal/store/migrations"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

// dialect holds the driver specifics of one SQL backend.
type dialect struct {
	sqlDriver string
	goose     string
	dir       string

	get   string
	set   string
	del   string
	list  string
	clear string
}

var dialects = map[string]dialect{
	DriverSQLite: {
		sqlDriver: "sqlite",
		goose:     "sqlite3",
		dir:       "sqlite",
		get:       `SELECT value FROM records WHERE key = ?`,
		set: `INSERT INTO records (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		del:   `DELETE FROM records WHERE key = ?`,
		list:  `SELECT key, value FROM records`,
		clear: `DELETE FROM records`,
	},
	DriverPostgres: {
		sqlDriver: "pgx",
		goose:     "postgres",
		dir:       "postgres",
		get:       `SELECT value FROM records WHERE key = $1`,
		set: `INSERT INTO records (key, value) VALUES ($1, $2)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		del:   `DELETE FROM records WHERE key = $1`,
		list:  `SELECT key, value FROM records`,
		clear: `DELETE FROM records`,
	},
}

// SQLStore keeps records in a single `records(key, value)` table.
type SQLStore struct {
	db *sql.DB
	d  dialect
	mu sync.Mutex
}

// NewSQLStore wraps an already migrated database.
func NewSQLStore(db *sql.DB, driver string) (*SQLStore, error) {
	d, ok := dialects[driver]
	if !ok {
		return nil, fmt.Errorf("unknown sql driver %q", driver)
	}
	return &SQLStore{db: db, d: d}, nil
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations applies the embedded migrations of the given driver.
func RunMigrations(ctx context.Context, db *sql.DB, driver string) error {
	d, ok := dialects[driver]
	if !ok {
		return fmt.Errorf("unknown sql driver %q", driver)
	}

	goose.SetBaseFS(migrations.Migrations)
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect(d.goose); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	return gooseUpContext(ctx, db, d.dir)
}

func openSQL(ctx context.Context, driver, dsn string) (*SQLStore, error) {
	d := dialects[driver]

	if driver == DriverSQLite && isSQLiteFile(dsn) {
		if err := filex.EnsureParentDir(dsn); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open(d.sqlDriver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}
	if driver == DriverSQLite {
		// single process, single writer; also keeps ":memory:" on one connection
		db.SetMaxOpenConns(1)
	}

	if err := RunMigrations(ctx, db, driver); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate %s: %w", driver, err)
	}
	return &SQLStore{db: db, d: d}, nil
}

// isSQLiteFile reports whether dsn is a plain file path rather than an
// in-memory database or a file: URI.
func isSQLiteFile(dsn string) bool {
	return dsn != "" && !strings.HasPrefix(dsn, ":memory:") && !strings.HasPrefix(dsn, "file:")
}

func (s *SQLStore) repo(db dbx.DBTX) *recordRepository {
	return &recordRepository{db: db, d: s.d}
}

func (s *SQLStore) Get(ctx context.Context, key string) ([]byte, error) {
	return s.repo(s.db).Get(ctx, key)
}

func (s *SQLStore) Set(ctx context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.repo(s.db).Set(ctx, key, value)
}

func (s *SQLStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.repo(s.db).Delete(ctx, key)
}

func (s *SQLStore) List(ctx context.Context) (map[string][]byte, error) {
	return s.repo(s.db).List(ctx)
}

func (s *SQLStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.repo(s.db).Clear(ctx)
}

// Update runs fn inside a database transaction while holding the writer lock.
func (s *SQLStore) Update(ctx context.Context, fn func(ctx context.Context, kv KV) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return fn(ctx, s.repo(tx))
	})
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}

// recordRepository runs the dialect queries on a *sql.DB or *sql.Tx.
type recordRepository struct {
	db dbx.DBTX
	d  dialect
}

func (r *recordRepository) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := r.db.QueryRowContext(ctx, r.d.get, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get record[%s]: %w", key, err)
	}
	return value, nil
}

func (r *recordRepository) Set(ctx context.Context, key string, value []byte) error {
	if _, err := r.db.ExecContext(ctx, r.d.set, key, value); err != nil {
		return fmt.Errorf("failed to set record[%s]: %w", key, err)
	}
	return nil
}

func (r *recordRepository) Delete(ctx context.Context, key string) error {
	if _, err := r.db.ExecContext(ctx, r.d.del, key); err != nil {
		return fmt.Errorf("failed to delete record[%s]: %w", key, err)
	}
	return nil
}

func (r *recordRepository) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, r.d.clear); err != nil {
		return fmt.Errorf("failed to clear records: %w", err)
	}
	return nil
}

func (r *recordRepository) List(ctx context.Context) (map[string][]byte, error) {
	rows, err := r.db.QueryContext(ctx, r.d.list)
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}
	defer rows.Close()

	result := make(map[string][]byte)
	for rows.Next() {
		var key string
		var value []byte
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("failed to scan record row: %w", err)
		}
		result[key] = value
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate record rows: %w", err)
	}
	return result, nil
}
