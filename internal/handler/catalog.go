package handler

import (
	"log/slog"
	"net/http"

	"github.com/sakif/book-requests/internal/service"
)

// CatalogHandler exposes the read-only book catalog.
type CatalogHandler struct {
	svc    *service.CatalogService
	logger *slog.Logger
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(svc *service.CatalogService, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{svc: svc, logger: logger}
}

// HandleList returns every book that can be requested.
//
// HTTP: GET /books
func (h *CatalogHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	books, err := h.svc.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list catalog", slog.String("error", err.Error()))
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, books)
}
