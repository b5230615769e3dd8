package kvstore

import (
	"context"
	"fmt"
)

// Config selects and parameterizes a Store driver.
type Config struct {
	Driver      Driver
	SQLitePath  string
	DatabaseURL string
	S3          S3Config
}

// Open returns the Store named by cfg.Driver. An empty driver means sqlite.
func Open(ctx context.Context, cfg Config) (Store, error) {
	switch cfg.Driver {
	case DriverSQLite, "":
		s, err := OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		return s, nil
	case DriverPostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("kvstore.Open: database url required for %s driver", DriverPostgres)
		}
		s, err := OpenPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		return s, nil
	case DriverS3:
		s, err := OpenS3(ctx, cfg.S3)
		if err != nil {
			return nil, err
		}
		return s, nil
	case DriverMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("kvstore.Open: unknown driver %q", cfg.Driver)
	}
}
