// Package repository declares the storage interfaces the service layer depends on.
// The sqlite subpackage implements all of them on a single *sqlite.DB.
package repository

import (
	"context"
	"time"

	"github.com/sakif/book-requests/internal/model"
)

type BookRepository interface {
	// FindByTitle matches title case-insensitively.
	FindByTitle(ctx context.Context, title string) (*model.Book, error)
	ListBooks(ctx context.Context) ([]model.Book, error)
	// InsertBooks adds the titles that are not already in the catalog and
	// reports how many rows were inserted.
	InsertBooks(ctx context.Context, titles []string) (int, error)
}

type UserRepository interface {
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	GetOrCreateUser(ctx context.Context, email string) (*model.User, error)
}

type RequestRepository interface {
	// GetOrCreateRequest returns the request for (userID, bookID), inserting one
	// stamped with now if none exists. created is true only for the insert.
	GetOrCreateRequest(ctx context.Context, userID, bookID int64, now time.Time) (req *model.BookRequest, created bool, err error)
	GetRequestView(ctx context.Context, id int64) (*model.RequestView, error)
	ListRequestViewsByUser(ctx context.Context, userID int64) ([]model.RequestView, error)
	DeleteRequest(ctx context.Context, id int64) error
}
