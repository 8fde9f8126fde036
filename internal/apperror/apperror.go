// Package apperror defines the application's error taxonomy.
//
// Every layer below the HTTP handlers reports failures with these errors.
// The handler layer maps each sentinel to a status code with errors.Is,
// so services and repositories never need to know about HTTP.
package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrBadRequest  = errors.New("bad request")
	ErrNotFound    = errors.New("not found")
	ErrValidation  = errors.New("Validation Error")
	ErrUnavailable = errors.New("unavailable")
)

type AppError struct {
	Err     error  // actual error
	Message string // Human-readable error message
	Field   string // Optional: field causing the error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// BadRequest is returned when the request carries no usable JSON body.
func BadRequest(message string) *AppError {
	return &AppError{
		Err:     ErrBadRequest,
		Message: message,
	}
}

func NotFound(resource, id string) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s not found with id %s", resource, id),
	}
}

func ValidationFailed(field, message string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: message,
		Field:   field,
	}
}

// Unavailable reports that a referenced catalog entry does not exist.
// HTTP handlers map this to 204 No Content.
func Unavailable(message string) *AppError {
	return &AppError{
		Err:     ErrUnavailable,
		Message: message,
	}
}
