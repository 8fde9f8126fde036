package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/sakif/book-requests/internal/apperror"
	"github.com/sakif/book-requests/internal/model"
	"github.com/sakif/book-requests/internal/repository"
)

var _ repository.RequestRepository = (*DB)(nil)

// viewQuery joins a request with its requester and book. LEFT JOINs keep a
// request visible even if an administrator removed the row it points at.
const viewQuery = `
	SELECT COALESCE(u.email, ''), COALESCE(b.title, ''), r.id, r.timestamp
	FROM book_requests r
	LEFT JOIN users u ON u.id = r.user_id
	LEFT JOIN books b ON b.id = r.book_id`

// GetOrCreateRequest returns the request for the (userID, bookID) pair, inserting a
// new one stamped with now when none exists.
//
// The insert is guarded by the UNIQUE(user_id, book_id) index, so created is
// decided by the database rather than by a racy read-then-write. The row is
// always read back, which means a first call and every repeat return exactly
// the same id and timestamp.
func (db *DB) GetOrCreateRequest(ctx context.Context, userID, bookID int64, now time.Time) (*model.BookRequest, bool, error) {
	res, err := db.conn.ExecContext(ctx,
		`INSERT INTO book_requests (user_id, book_id, timestamp)
		 VALUES (?, ?, ?)
		 ON CONFLICT(user_id, book_id) DO NOTHING`,
		userID,
		bookID,
		now.UTC(),
	)
	if err != nil {
		return nil, false, fmt.Errorf("sqlite: inserting book request (user=%d, book=%d): %w", userID, bookID, err)
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return nil, false, fmt.Errorf("sqlite: checking rows affected: %w", err)
	}

	var req model.BookRequest
	err = db.conn.QueryRowContext(ctx,
		`SELECT id, user_id, book_id, timestamp
		 FROM book_requests
		 WHERE user_id = ? AND book_id = ?`,
		userID,
		bookID,
	).Scan(&req.ID, &req.UserID, &req.BookID, &req.Timestamp)
	if err != nil {
		return nil, false, fmt.Errorf("sqlite: reading book request (user=%d, book=%d): %w", userID, bookID, err)
	}
	req.Timestamp = req.Timestamp.UTC()

	return &req, rowsAffected == 1, nil
}

// GetRequestView returns a single request enriched with its email and title.
// Returns apperror.ErrNotFound if no request has that id.
func (db *DB) GetRequestView(ctx context.Context, id int64) (*model.RequestView, error) {
	var v model.RequestView
	err := db.conn.QueryRowContext(ctx, viewQuery+` WHERE r.id = ?`, id).
		Scan(&v.Email, &v.Title, &v.ID, &v.Timestamp)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("book request", strconv.FormatInt(id, 10))
		}
		return nil, fmt.Errorf("sqlite: getting book request %d: %w", id, err)
	}
	v.Timestamp = v.Timestamp.UTC()
	return &v, nil
}

// ListRequestViewsByUser returns every request made by userID, oldest first.
// The title is resolved per row through the join.
func (db *DB) ListRequestViewsByUser(ctx context.Context, userID int64) ([]model.RequestView, error) {
	rows, err := db.conn.QueryContext(ctx, viewQuery+` WHERE r.user_id = ? ORDER BY r.id`, userID)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing book requests for user %d: %w", userID, err)
	}
	defer rows.Close()

	views := []model.RequestView{}
	for rows.Next() {
		var v model.RequestView
		if err := rows.Scan(&v.Email, &v.Title, &v.ID, &v.Timestamp); err != nil {
			return nil, fmt.Errorf("sqlite: scanning book request row: %w", err)
		}
		v.Timestamp = v.Timestamp.UTC()
		views = append(views, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating book requests: %w", err)
	}
	return views, nil
}

// DeleteRequest removes a request by id. RowsAffected == 0 means it never existed.
func (db *DB) DeleteRequest(ctx context.Context, id int64) error {
	result, err := db.conn.ExecContext(ctx, `DELETE FROM book_requests WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("sqlite: deleting book request %d: %w", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("book request", strconv.FormatInt(id, 10))
	}
	return nil
}
