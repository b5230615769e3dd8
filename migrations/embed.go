// Package migrations embeds the SQL migration files so they can be used
// by the goose programmatic API in tests, server bootstrap and herdctl.
package migrations

import (
	"embed"
	"io/fs"
)

// files holds all *.sql migration files embedded at compile time, one
// directory per SQL dialect.
//
//go:embed postgres/*.sql sqlite/*.sql
var files embed.FS

// Postgres returns the migrations for the Postgres kv store, rooted so they
// can be passed straight to goose.NewProvider.
func Postgres() fs.FS {
	return sub("postgres")
}

// SQLite returns the migrations for the SQLite kv store.
func SQLite() fs.FS {
	return sub("sqlite")
}

func sub(dir string) fs.FS {
	f, err := fs.Sub(files, dir)
	if err != nil {
		// Only reachable if the embed directive and dir disagree.
		panic("migrations: " + err.Error())
	}
	return f
}
