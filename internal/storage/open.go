package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3"
	_ "modernc.org/sqlite"
)

// Driver names accepted by Open.
const (
	DriverCGO    = "sqlite3" // github.com/mattn/go-sqlite3
	DriverPureGo = "sqlite"  // modernc.org/sqlite
)

// dsn builds the connection string for path. The two drivers spell their
// connection pragmas differently.
func dsn(driver, path string) (string, error) {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	switch driver {
	case DriverCGO:
		return path + sep + "_busy_timeout=5000&_foreign_keys=on", nil
	case DriverPureGo:
		return path + sep + "_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)", nil
	}
	return "", fmt.Errorf("unknown sqlite driver %q (use %s or %s)", driver, DriverCGO, DriverPureGo)
}

// Open opens the database at path with the given driver, creating its
// directory, and applies all pending migrations.
func Open(ctx context.Context, driver, path, journalMode string) (*sql.DB, error) {
	source, err := dsn(driver, path)
	if err != nil {
		return nil, err
	}

	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open(driver, source)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if path == ":memory:" {
		// Every connection would get its own empty database.
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := NewMigrationRunner(db).WithJournalMode(journalMode).Run(); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return db, nil
}
