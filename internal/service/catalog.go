package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sakif/book-requests/internal/apperror"
	"github.com/sakif/book-requests/internal/model"
	"github.com/sakif/book-requests/internal/repository"
)

// CatalogService manages the set of books that can be requested.
type CatalogService struct {
	books  repository.BookRepository
	logger *slog.Logger
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(books repository.BookRepository, logger *slog.Logger) *CatalogService {
	return &CatalogService{books: books, logger: logger}
}

// Seed adds every title that is not already in the catalog and returns how
// many were inserted. Titles are trimmed; a blank title fails the whole call
// before anything is written.
func (s *CatalogService) Seed(ctx context.Context, titles []string) (int, error) {
	cleaned := make([]string, 0, len(titles))
	for i, title := range titles {
		title = strings.TrimSpace(title)
		if title == "" {
			return 0, apperror.ValidationFailed("title", fmt.Sprintf("title #%d is blank", i+1))
		}
		cleaned = append(cleaned, title)
	}

	inserted, err := s.books.InsertBooks(ctx, cleaned)
	if err != nil {
		s.logger.Error("failed to seed catalog", slog.String("error", err.Error()))
		return 0, fmt.Errorf("seeding catalog: %w", err)
	}

	s.logger.Info("catalog seeded",
		slog.Int("submitted", len(cleaned)),
		slog.Int("inserted", inserted),
	)
	return inserted, nil
}

// List returns every book in the catalog ordered by id.
func (s *CatalogService) List(ctx context.Context) ([]model.Book, error) {
	books, err := s.books.ListBooks(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing catalog: %w", err)
	}
	return books, nil
}
