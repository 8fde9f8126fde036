// Package handler contains the HTTP handlers for the book request API.
//
// Handlers are the glue between HTTP and the service layer. Each one:
//  1. reads and validates the JSON body (internal/validation)
//  2. calls the service
//  3. writes the result with writeJSON or writeError
//
// No handler touches the database directly.
package handler

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/sakif/book-requests/internal/apperror"
	"github.com/sakif/book-requests/internal/service"
	"github.com/sakif/book-requests/internal/validation"
)

// MaxBodyBytes caps how much of a request body is read.
const MaxBodyBytes = 64 << 10

// RequestHandler serves the /request endpoints.
type RequestHandler struct {
	svc       *service.RequestService
	validator *validation.Validator
	logger    *slog.Logger
}

// NewRequestHandler creates a new RequestHandler.
func NewRequestHandler(svc *service.RequestService, v *validation.Validator, logger *slog.Logger) *RequestHandler {
	return &RequestHandler{
		svc:       svc,
		validator: v,
		logger:    logger,
	}
}

// HandleCreate asks for a book on behalf of an email address.
//
// HTTP: POST /request
// REQUEST BODY: {"email": "fake@email.com", "title": "Great Book Title 1"}
//
// 201 when the request is new, 200 when the same (email, title) pair was
// already requested (same id and timestamp as before), 204 when the title is
// not in the catalog.
func (h *RequestHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	if err != nil {
		writeError(w, err)
		return
	}

	payload, err := h.validator.DecodeAddRequest(body)
	if err != nil {
		h.logger.Debug("rejected create request body", slog.String("error", err.Error()))
		writeError(w, err)
		return
	}

	view, created, err := h.svc.Create(r.Context(), payload.Email, payload.Title)
	if err != nil {
		writeError(w, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	writeJSON(w, status, view)
}

// HandleList returns every request made by the email in the body.
//
// HTTP: GET /request
// REQUEST BODY: {"email": "fake@email.com"}
//
// The email is required even though this is a GET, so requests cannot be
// enumerated without knowing who made them.
func (h *RequestHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	if err != nil {
		writeError(w, err)
		return
	}

	payload, err := h.validator.DecodeEmailOnly(body)
	if err != nil {
		writeError(w, err)
		return
	}

	views, err := h.svc.ListByEmail(r.Context(), payload.Email)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, views)
}

// HandleGet returns a single request.
//
// HTTP: GET /request/{id}
// REQUEST BODY: {"email": "fake@email.com"}
func (h *RequestHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	if err != nil {
		writeError(w, err)
		return
	}

	if _, err := h.validator.DecodeEmailOnly(body); err != nil {
		writeError(w, err)
		return
	}

	id, err := requestID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	view, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// HandleDelete removes a request.
//
// HTTP: DELETE /request/{id}
// REQUEST BODY: {"email": "fake@email.com"}
//
// Responds 200 with an empty JSON object; a second delete of the same id is a 404.
func (h *RequestHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	if err != nil {
		writeError(w, err)
		return
	}

	if _, err := h.validator.DecodeEmailOnly(body); err != nil {
		writeError(w, err)
		return
	}

	id, err := requestID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, struct{}{})
}

// readBody reads at most MaxBodyBytes of the request body.
func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	if r.Body == nil {
		return nil, nil
	}
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, apperror.BadRequest("request body too large")
		}
		return nil, apperror.BadRequest(validation.MissingBodyMessage)
	}
	return body, nil
}

// requestID parses the {id} URL parameter. The route only matches digits, so
// the only failure left is an id too large for int64, which cannot exist.
func requestID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, apperror.NotFound("book request", raw)
	}
	return id, nil
}
