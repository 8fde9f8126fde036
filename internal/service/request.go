// Package service contains the business logic layer of the application.
//
// The layering follows the usual three tiers:
//
//	Handler (HTTP layer)     → parses requests, writes responses
//	Service (business layer) → normalises input, enforces rules, orchestrates
//	Repository (data layer)  → reads/writes to the database
//
// Services receive repository interfaces, never a concrete *sqlite.DB, so unit
// tests can swap in in-memory fakes (see request_test.go).
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/sakif/book-requests/internal/apperror"
	"github.com/sakif/book-requests/internal/model"
	"github.com/sakif/book-requests/internal/repository"
)

// BookUnavailableMessage is reported when a title is not in the catalog.
const BookUnavailableMessage = "We do not currently have this book available"

// RequestService handles creating, reading, and deleting book requests.
type RequestService struct {
	books    repository.BookRepository
	users    repository.UserRepository
	requests repository.RequestRepository
	now      func() time.Time
	logger   *slog.Logger
}

// NewRequestService creates a new RequestService. A single *sqlite.DB can be
// passed for all three repositories.
func NewRequestService(
	books repository.BookRepository,
	users repository.UserRepository,
	requests repository.RequestRepository,
	logger *slog.Logger,
) *RequestService {
	return &RequestService{
		books:    books,
		users:    users,
		requests: requests,
		now:      time.Now,
		logger:   logger,
	}
}

// Create records that email wants the book called title.
//
// The book is looked up first. An unknown title returns apperror.ErrUnavailable
// and writes nothing, not even the user row. Otherwise the user and the
// request are fetched or created. created reports whether this call inserted
// the request; repeat calls return the original id and timestamp.
func (s *RequestService) Create(ctx context.Context, email, title string) (*model.RequestView, bool, error) {
	email = normaliseEmail(email)
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, false, apperror.ValidationFailed("title", "'title' should be non-empty")
	}

	book, err := s.books.FindByTitle(ctx, title)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			s.logger.Info("book request for unknown title", slog.String("title", title))
			return nil, false, apperror.Unavailable(BookUnavailableMessage)
		}
		return nil, false, fmt.Errorf("finding book: %w", err)
	}

	user, err := s.users.GetOrCreateUser(ctx, email)
	if err != nil {
		s.logger.Error("failed to get or create user",
			slog.String("email", email),
			slog.String("error", err.Error()),
		)
		return nil, false, fmt.Errorf("getting user: %w", err)
	}

	req, created, err := s.requests.GetOrCreateRequest(ctx, user.ID, book.ID, s.now())
	if err != nil {
		s.logger.Error("failed to get or create book request",
			slog.Int64("userID", user.ID),
			slog.Int64("bookID", book.ID),
			slog.String("error", err.Error()),
		)
		return nil, false, fmt.Errorf("creating book request: %w", err)
	}

	if created {
		s.logger.Info("book request created",
			slog.Int64("id", req.ID),
			slog.String("email", user.Email),
			slog.String("title", book.Title),
		)
	}

	return &model.RequestView{
		Email:     user.Email,
		Title:     book.Title,
		ID:        req.ID,
		Timestamp: req.Timestamp,
	}, created, nil
}

// Get returns a single request. Returns apperror.ErrNotFound for unknown ids.
func (s *RequestService) Get(ctx context.Context, id int64) (*model.RequestView, error) {
	return s.requests.GetRequestView(ctx, id)
}

// ListByEmail returns every request made by email. An email that has never
// requested anything yields an empty list, not an error.
func (s *RequestService) ListByEmail(ctx context.Context, email string) ([]model.RequestView, error) {
	email = normaliseEmail(email)

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return []model.RequestView{}, nil
		}
		return nil, fmt.Errorf("getting user: %w", err)
	}

	views, err := s.requests.ListRequestViewsByUser(ctx, user.ID)
	if err != nil {
		s.logger.Error("failed to list book requests",
			slog.String("email", email),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("listing book requests: %w", err)
	}
	return views, nil
}

// Delete removes a request. Returns apperror.ErrNotFound for unknown ids.
func (s *RequestService) Delete(ctx context.Context, id int64) error {
	if err := s.requests.DeleteRequest(ctx, id); err != nil {
		return err
	}

	s.logger.Info("book request deleted", slog.Int64("id", id))
	return nil
}

// normaliseEmail folds case so that Fake@Email.com and fake@email.com are the
// same requester.
func normaliseEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
