// Package sqlite implements the store driver on modernc.org/sqlite,
// a pure-Go build with no cgo dependency.
package sqlite

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"

	// Import the pure-Go SQLite driver.
	_ "modernc.org/sqlite"

	"github.com/parkjy76/haruplan/internal/profile"
	"github.com/parkjy76/haruplan/store"
)

// DB wraps a SQLite connection implementing store.Driver.
type DB struct {
	db      *sql.DB
	profile *profile.Profile
}

// NewDB opens (creating if needed) the SQLite database named by the
// profile DSN.
func NewDB(profile *profile.Profile) (store.Driver, error) {
	if profile.DSN == "" {
		return nil, errors.New("dsn required")
	}

	sqliteDB, err := sql.Open("sqlite", profile.DSN+"?_pragma=busy_timeout(10000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open db with dsn: %s", profile.DSN)
	}

	// A single writer keeps WAL mode simple.
	sqliteDB.SetMaxOpenConns(1)

	return &DB{db: sqliteDB, profile: profile}, nil
}

func (d *DB) GetDB() *sql.DB {
	return d.db
}

func (d *DB) Close() error {
	return d.db.Close()
}

const schema = `
CREATE TABLE IF NOT EXISTS event (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	uid TEXT NOT NULL UNIQUE,
	title TEXT NOT NULL,
	event_ts INTEGER NOT NULL,
	notified INTEGER NOT NULL DEFAULT 0,
	created_ts INTEGER NOT NULL DEFAULT (strftime('%s', 'now')),
	updated_ts INTEGER NOT NULL DEFAULT (strftime('%s', 'now'))
);

CREATE INDEX IF NOT EXISTS idx_event_event_ts ON event (event_ts);

CREATE TABLE IF NOT EXISTS chat_memory (
	id INTEGER PRIMARY KEY CHECK (id = 1),
	payload TEXT NOT NULL,
	updated_ts INTEGER NOT NULL DEFAULT (strftime('%s', 'now'))
);
`

// Migrate creates the schema. Idempotent.
func (d *DB) Migrate(ctx context.Context) error {
	if _, err := d.db.ExecContext(ctx, schema); err != nil {
		return errors.Wrap(err, "failed to apply schema")
	}
	return nil
}
