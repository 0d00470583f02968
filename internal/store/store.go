// Package store is the persistent key/value layer every component reads and
// writes through.
//
// Three logical keys are used (see records.go): the current session user, the
// registered-user directory and the pickup-request list. Values are JSON.
//
// Backends:
//   - SQLStore on SQLite (modernc.org/sqlite) or PostgreSQL (pgx stdlib),
//     schema managed by goose;
//   - MemoryStore, for tests and throwaway sessions.
//
// Writers go through Store.Update, which is a single-writer critical section:
// read-modify-write sequences inside one Update can not interleave with any
// other Update, and their writes are applied atomically.
package store

import (
	"context"
	"fmt"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// KV is the minimal key/value surface. Get returns (nil, nil) for a missing key.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Store is a KV with listing, bulk clearing and serialized transactional updates.
//
// fn passed to Update must only use the KV it receives; calling back into the
// Store from inside fn is not supported.
type Store interface {
	KV
	List(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error
	Update(ctx context.Context, fn func(ctx context.Context, kv KV) error) error
	Close() error
}

// Open returns the backend selected by driver. SQL backends are migrated
// before they are returned.
func Open(ctx context.Context, driver, dsn string) (Store, error) {
	switch driver {
	case DriverMemory:
		return NewMemoryStore(), nil
	case DriverSQLite, DriverPostgres:
		return openSQL(ctx, driver, dsn)
	default:
		return nil, fmt.Errorf("unknown store driver %q", driver)
	}
}
