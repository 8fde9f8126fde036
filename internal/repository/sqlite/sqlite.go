// Package sqlite implements the repository interfaces using SQLite as the storage backend.
// The driver is modernc.org/sqlite, so no cgo toolchain is required.
//
// The three tables mirror the domain model:
//
//	books          (id, title UNIQUE)
//	users          (id, email UNIQUE)
//	book_requests  (id, user_id → users, book_id → books, timestamp, UNIQUE(user_id, book_id))
//
// Every uniqueness rule lives in the schema, so get-or-create operations are a
// single INSERT ... ON CONFLICT DO NOTHING followed by a SELECT. Two concurrent
// callers can never produce duplicate rows.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	// Registers the "sqlite" driver with database/sql.
	_ "modernc.org/sqlite"
)

// MemoryPath opens a private in-memory database. Useful for tests.
const MemoryPath = ":memory:"

// connPragmas are applied by the driver to every pooled connection.
// foreign_keys is per-connection in SQLite, so a one-off PRAGMA Exec would only
// cover whichever connection happened to run it.
const connPragmas = "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"

// DB wraps a sql.DB connection pool and provides repository methods.
// A single *DB satisfies every interface in the repository package.
type DB struct {
	conn *sql.DB
}

// New opens (or creates) the database at dbPath and runs migrations.
//
// dbPath examples:
//   - "data/bookrequests.db" → file-based database (persistent)
//   - ":memory:"             → in-memory database (lost on close)
func New(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite", dbPath+"?"+connPragmas)
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}

	// Each connection to ":memory:" is its own empty database, so the pool
	// must never grow past one connection.
	if dbPath == MemoryPath {
		conn.SetMaxOpenConns(1)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: pinging database: %w", err)
	}

	// WAL mode lets readers proceed while a write is in progress.
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: setting WAL mode: %w", err)
	}

	db := &DB{conn: conn}

	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: running migrations: %w", err)
	}

	return db, nil
}

// Close closes the database connection pool.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Ping checks that the database is reachable. Used by the health endpoint.
func (db *DB) Ping(ctx context.Context) error {
	if err := db.conn.PingContext(ctx); err != nil {
		return fmt.Errorf("sqlite: ping: %w", err)
	}
	return nil
}

// migrate creates the schema. CREATE ... IF NOT EXISTS makes it safe to run on
// every start-up against an existing file.
func (db *DB) migrate() error {
	_, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS books (
			id    INTEGER PRIMARY KEY AUTOINCREMENT,
			title TEXT NOT NULL UNIQUE
		);
		CREATE INDEX IF NOT EXISTS idx_books_upper_title ON books(upper(title));
	`)
	if err != nil {
		return fmt.Errorf("creating books table: %w", err)
	}

	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS users (
			id    INTEGER PRIMARY KEY AUTOINCREMENT,
			email TEXT NOT NULL UNIQUE
		);
	`)
	if err != nil {
		return fmt.Errorf("creating users table: %w", err)
	}

	// No ON DELETE CASCADE: removing a book or user is an administrative
	// action outside this service.
	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS book_requests (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id   INTEGER NOT NULL REFERENCES users(id),
			book_id   INTEGER NOT NULL REFERENCES books(id),
			timestamp DATETIME NOT NULL
		);
		CREATE UNIQUE INDEX IF NOT EXISTS idx_book_requests_user_book ON book_requests(user_id, book_id);
	`)
	if err != nil {
		return fmt.Errorf("creating book_requests table: %w", err)
	}

	return nil
}
