// Package kvstore persists independently keyed blobs. The farm collections
// and the launch helper's saved URL live here, one blob per key.
// Each driver (memory, sqlite, postgres, s3) implements Store.
package kvstore

import (
	"context"
	"errors"
)

// Driver identifies a concrete Store implementation.
type Driver string

const (
	// DriverMemory keeps blobs in process memory. Used in tests.
	DriverMemory Driver = "memory"
	// DriverSQLite stores blobs in a single SQLite table.
	DriverSQLite Driver = "sqlite"
	// DriverPostgres stores blobs in a single Postgres table.
	DriverPostgres Driver = "postgres"
	// DriverS3 stores one object per key in an S3 (or MinIO) bucket.
	DriverS3 Driver = "s3"
)

// ErrNotFound is returned by Get when no blob is stored under the key.
var ErrNotFound = errors.New("kvstore: key not found")

// Store is a minimal key/value blob store.
// Put overwrites; Delete of a missing key is not an error.
type Store interface {
	// Get returns the blob stored under key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Put stores value under key, replacing any previous value.
	Put(ctx context.Context, key string, value []byte) error

	// Delete removes key. Missing keys are ignored.
	Delete(ctx context.Context, key string) error

	// Keys lists stored keys starting with prefix, in lexical order.
	Keys(ctx context.Context, prefix string) ([]string, error)

	// Driver reports which backend serves the store.
	Driver() Driver

	// Close releases any connections held by the store.
	Close() error
}
