package sqlite

import (
	"context"
	"path/filepath"
	"testing"
)

// newTestDB returns a fresh in-memory database that is closed when the test ends.
func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := New(MemoryPath)
	if err != nil {
		t.Fatalf("failed to create test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// seedBooks inserts titles and fails the test on error.
func seedBooks(t *testing.T, db *DB, titles ...string) {
	t.Helper()
	if _, err := db.InsertBooks(context.Background(), titles); err != nil {
		t.Fatalf("failed to seed books: %v", err)
	}
}

func TestNew_FileDatabaseSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "books.db")

	db, err := New(path)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	seedBooks(t, db, "Great Book Title 1")
	if err := db.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	// Migrations must be idempotent against an existing file.
	reopened, err := New(path)
	if err != nil {
		t.Fatalf("New() on existing file error = %v", err)
	}
	defer reopened.Close()

	books, err := reopened.ListBooks(context.Background())
	if err != nil {
		t.Fatalf("ListBooks() error = %v", err)
	}
	if len(books) != 1 || books[0].Title != "Great Book Title 1" {
		t.Errorf("ListBooks() after reopen = %+v, want one seeded book", books)
	}
}

func TestPing(t *testing.T) {
	db := newTestDB(t)
	if err := db.Ping(context.Background()); err != nil {
		t.Errorf("Ping() error = %v", err)
	}
}

func TestPing_Closed(t *testing.T) {
	db, err := New(MemoryPath)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	db.Close()

	if err := db.Ping(context.Background()); err == nil {
		t.Error("Ping() on closed database should fail")
	}
}
