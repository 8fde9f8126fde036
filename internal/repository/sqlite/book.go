package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/sakif/book-requests/internal/apperror"
	"github.com/sakif/book-requests/internal/model"
	"github.com/sakif/book-requests/internal/repository"
)

var _ repository.BookRepository = (*DB)(nil)

// FindByTitle returns the book whose title matches case-insensitively.
// upper() only folds ASCII letters, which matches how titles are seeded.
func (db *DB) FindByTitle(ctx context.Context, title string) (*model.Book, error) {
	var b model.Book
	err := db.conn.QueryRowContext(ctx,
		`SELECT id, title FROM books WHERE upper(title) = upper(?) ORDER BY id LIMIT 1`,
		title,
	).Scan(&b.ID, &b.Title)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("book", title)
		}
		return nil, fmt.Errorf("sqlite: finding book %q: %w", title, err)
	}
	return &b, nil
}

// ListBooks returns the whole catalog ordered by id.
func (db *DB) ListBooks(ctx context.Context) ([]model.Book, error) {
	rows, err := db.conn.QueryContext(ctx, `SELECT id, title FROM books ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing books: %w", err)
	}
	defer rows.Close()

	books := []model.Book{}
	for rows.Next() {
		var b model.Book
		if err := rows.Scan(&b.ID, &b.Title); err != nil {
			return nil, fmt.Errorf("sqlite: scanning book row: %w", err)
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating books: %w", err)
	}
	return books, nil
}

// InsertBooks adds every title not already present, in one transaction.
// Blank titles are skipped. Returns the number of rows inserted.
func (db *DB) InsertBooks(ctx context.Context, titles []string) (int, error) {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("sqlite: beginning book insert: %w", err)
	}
	defer tx.Rollback() // no-op after Commit

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO books (title) VALUES (?) ON CONFLICT(title) DO NOTHING`)
	if err != nil {
		return 0, fmt.Errorf("sqlite: preparing book insert: %w", err)
	}
	defer stmt.Close()

	inserted := 0
	for _, title := range titles {
		title = strings.TrimSpace(title)
		if title == "" {
			continue
		}
		res, err := stmt.ExecContext(ctx, title)
		if err != nil {
			return 0, fmt.Errorf("sqlite: inserting book %q: %w", title, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("sqlite: checking rows affected: %w", err)
		}
		inserted += int(n)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("sqlite: committing book insert: %w", err)
	}
	return inserted, nil
}
