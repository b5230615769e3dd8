package kvstore

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/herdbook/herdbook/migrations"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresStore implements Store on a single Postgres table (kv_state).
type PostgresStore struct {
	db    db
	close func()

	// serial guards db when it is a single connection or transaction,
	// neither of which may be used from two goroutines at once.
	serial *sync.Mutex
}

// NewPostgres wraps an existing connection or transaction. The caller owns
// it; Close is a no-op. Calls are serialized.
func NewPostgres(db db) *PostgresStore {
	return &PostgresStore{db: db, close: func() {}, serial: &sync.Mutex{}}
}

func (s *PostgresStore) lock() func() {
	if s.serial == nil {
		return func() {}
	}
	s.serial.Lock()
	return s.serial.Unlock
}

// OpenPostgres connects to databaseURL, verifies the connection and applies
// all pending migrations. Close releases the pool.
func OpenPostgres(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	// New does not open connections; Ping does.
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("kvstore.OpenPostgres: create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("kvstore.OpenPostgres: ping: %w", err)
	}
	if err := MigratePostgres(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}
	return &PostgresStore{db: pool, close: pool.Close}, nil
}

// MigratePostgres applies the embedded Postgres migrations through the pool.
func MigratePostgres(ctx context.Context, pool *pgxpool.Pool) error {
	// goose needs database/sql, not a pgx pool.
	sqlDB := stdlib.OpenDBFromPool(pool)
	defer sqlDB.Close()

	provider, err := goose.NewProvider(goose.DialectPostgres, sqlDB, migrations.Postgres())
	if err != nil {
		return fmt.Errorf("kvstore.MigratePostgres: create goose provider: %w", err)
	}
	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("kvstore.MigratePostgres: run migrations: %w", err)
	}
	return nil
}

// Driver returns DriverPostgres.
func (s *PostgresStore) Driver() Driver { return DriverPostgres }

// Get returns the payload stored under key.
func (s *PostgresStore) Get(ctx context.Context, key string) ([]byte, error) {
	defer s.lock()()

	const q = `SELECT payload FROM kv_state WHERE bucket = @bucket`

	var payload []byte
	err := s.db.QueryRow(ctx, q, pgx.NamedArgs{"bucket": key}).Scan(&payload)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("kvstore.PostgresStore.Get: %w", err)
	}
	return payload, nil
}

// Put upserts the payload for key.
func (s *PostgresStore) Put(ctx context.Context, key string, value []byte) error {
	defer s.lock()()

	const q = `
		INSERT INTO kv_state (bucket, payload)
		VALUES (@bucket, @payload)
		ON CONFLICT (bucket) DO UPDATE
		SET payload    = EXCLUDED.payload,
		    updated_at = now()`

	if _, err := s.db.Exec(ctx, q, pgx.NamedArgs{"bucket": key, "payload": value}); err != nil {
		return fmt.Errorf("kvstore.PostgresStore.Put: %w", err)
	}
	return nil
}

// Delete removes key.
func (s *PostgresStore) Delete(ctx context.Context, key string) error {
	defer s.lock()()

	const q = `DELETE FROM kv_state WHERE bucket = @bucket`

	if _, err := s.db.Exec(ctx, q, pgx.NamedArgs{"bucket": key}); err != nil {
		return fmt.Errorf("kvstore.PostgresStore.Delete: %w", err)
	}
	return nil
}

// Keys lists keys starting with prefix.
func (s *PostgresStore) Keys(ctx context.Context, prefix string) ([]string, error) {
	defer s.lock()()

	const q = `
		SELECT bucket
		FROM kv_state
		WHERE starts_with(bucket, @prefix)
		ORDER BY bucket`

	rows, err := s.db.Query(ctx, q, pgx.NamedArgs{"prefix": prefix})
	if err != nil {
		return nil, fmt.Errorf("kvstore.PostgresStore.Keys: %w", err)
	}
	keys, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("kvstore.PostgresStore.Keys: rows: %w", err)
	}
	if keys == nil {
		keys = []string{}
	}
	return keys, nil
}

// Close releases the pool when the store opened it.
func (s *PostgresStore) Close() error {
	s.close()
	return nil
}
