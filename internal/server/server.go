// Package server sets up the HTTP server, router, and all route definitions.
//
// This is the composition root: New opens the database, builds the services
// and handlers, and wires them to routes. Nothing else in the codebase
// constructs dependencies.
//
//	sqlite.DB → RequestService / CatalogService → handlers → chi router
//
// The single *sqlite.DB is passed explicitly to every repository consumer and
// closed when the server stops; there is no package-level database state.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/sakif/book-requests/internal/catalog"
	"github.com/sakif/book-requests/internal/handler"
	"github.com/sakif/book-requests/internal/middleware"
	sqliteRepo "github.com/sakif/book-requests/internal/repository/sqlite"
	"github.com/sakif/book-requests/internal/service"
	"github.com/sakif/book-requests/internal/validation"
)

// ShutdownTimeout is how long in-flight requests get to finish on SIGINT/SIGTERM.
const ShutdownTimeout = 30 * time.Second

// Config holds server configuration.
type Config struct {
	Port     int
	DBPath   string
	SeedFile string // optional YAML catalog loaded before serving
}

// Server represents the HTTP server and all its dependencies.
// The Server owns the database connection and closes it on shutdown.
type Server struct {
	router *chi.Mux
	config Config
	logger *slog.Logger
	db     *sqliteRepo.DB
}

// New opens the database, seeds the catalog if a seed file is configured,
// and registers every route.
func New(cfg Config, logger *slog.Logger) (*Server, error) {
	db, err := sqliteRepo.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		db:     db,
	}

	if cfg.SeedFile != "" {
		if err := s.seed(context.Background()); err != nil {
			db.Close()
			return nil, err
		}
	}

	s.setupRoutes()
	return s, nil
}

// seed loads the configured catalog file into the books table.
func (s *Server) seed(ctx context.Context) error {
	titles, err := catalog.Load(s.config.SeedFile)
	if err != nil {
		return fmt.Errorf("loading seed file: %w", err)
	}
	svc := service.NewCatalogService(s.db, s.logger)
	if _, err := svc.Seed(ctx, titles); err != nil {
		return fmt.Errorf("seeding catalog: %w", err)
	}
	return nil
}

// setupRoutes configures all middleware and route handlers.
//
// ROUTE STRUCTURE:
// GET    /health         → database reachability
// GET    /books          → catalog listing
// POST   /request        → create (or fetch existing) book request
// GET    /request        → list the caller's requests (email in body)
// GET    /request/{id}   → single request
// DELETE /request/{id}   → delete request
//
// MIDDLEWARE ORDER:
// 1. RequestID: tags the request (xid) before anything logs
// 2. RealIP: extracts real client IP from proxy headers
// 3. Logger: one structured line per request
// 4. Recoverer: turns panics into 500s
// 5. StripSlashes: /request/ routes the same as /request
func (s *Server) setupRoutes() {
	s.router.Use(middleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(middleware.Logger(s.logger))
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(chimiddleware.StripSlashes)

	requestService := service.NewRequestService(s.db, s.db, s.db, s.logger)
	catalogService := service.NewCatalogService(s.db, s.logger)

	requestHandler := handler.NewRequestHandler(requestService, validation.New(), s.logger)
	catalogHandler := handler.NewCatalogHandler(catalogService, s.logger)
	healthHandler := handler.NewHealthHandler(s.db, s.logger)

	s.router.Get("/health", healthHandler.HandleHealth)
	s.router.Get("/books", catalogHandler.HandleList)

	s.router.Route("/request", func(r chi.Router) {
		r.Post("/", requestHandler.HandleCreate)
		r.Get("/", requestHandler.HandleList)
		r.Get("/{id:[0-9]+}", requestHandler.HandleGet)
		r.Delete("/{id:[0-9]+}", requestHandler.HandleDelete)
	})
}

// Handler exposes the fully wired router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Close releases the database. Start calls it on the way out.
func (s *Server) Close() error {
	return s.db.Close()
}

// Start serves HTTP until SIGINT or SIGTERM, then drains in-flight requests
// for up to ShutdownTimeout and closes the database.
func (s *Server) Start() error {
	defer s.Close()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Port),
			slog.String("url", fmt.Sprintf("http://localhost:%d", s.config.Port)),
			slog.String("database", s.config.DBPath),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
