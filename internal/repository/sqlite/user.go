package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/sakif/book-requests/internal/apperror"
	"github.com/sakif/book-requests/internal/model"
	"github.com/sakif/book-requests/internal/repository"
)

// compile-time check that *DB implements repository.UserRepository
var _ repository.UserRepository = (*DB)(nil)

// GetUserByEmail retrieves a user by exact email match.
// Returns apperror.ErrNotFound if no user has that email.
func (db *DB) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	var u model.User
	err := db.conn.QueryRowContext(ctx,
		`SELECT id, email FROM users WHERE email = ?`,
		email,
	).Scan(&u.ID, &u.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("user", email)
		}
		return nil, fmt.Errorf("sqlite: getting user %q: %w", email, err)
	}
	return &u, nil
}

// GetOrCreateUser returns the user with this email, creating it first if needed.
//
// The UNIQUE constraint on email does the existence check: the INSERT is a
// no-op when the row is already there, and the SELECT afterwards returns
// whichever row won.
func (db *DB) GetOrCreateUser(ctx context.Context, email string) (*model.User, error) {
	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO users (email) VALUES (?) ON CONFLICT(email) DO NOTHING`,
		email,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: inserting user %q: %w", email, err)
	}
	return db.GetUserByEmail(ctx, email)
}
