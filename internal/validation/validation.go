// Package validation checks inbound JSON bodies before they reach the service layer.
//
// Two payload shapes exist:
//
//	AddRequest: {"email": "...", "title": "..."}   (POST /request)
//	EmailOnly:  {"email": "..."}                   (GET and DELETE /request)
//
// Validation happens in two passes. The structural pass works on the decoded
// JSON object and reports a missing body, a missing field, or a field with the
// wrong JSON type. The content pass runs go-playground/validator over the typed
// struct and checks the email pattern and non-empty strings.
//
// Every failure is an *apperror.AppError whose message names the failing
// constraint, so clients can tell exactly what to fix.
package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/sakif/book-requests/internal/apperror"
)

// MissingBodyMessage is returned when a request has no usable JSON object.
const MissingBodyMessage = "the request does not contain a json"

// emailPattern accepts the usual local-part punctuation and requires at least
// one dotted domain label followed by a 2-22 letter top-level domain.
var emailPattern = regexp.MustCompile(`(?i)^[a-z0-9._%+!$&*=^|~#{}/\-]+@([a-z0-9\-]+\.)+[a-z]{2,22}$`)

// AddRequest is the body of POST /request.
type AddRequest struct {
	Email string `json:"email" validate:"required,bookemail"`
	Title string `json:"title" validate:"required"`
}

// EmailOnly is the body of GET /request and DELETE /request/{id}.
type EmailOnly struct {
	Email string `json:"email" validate:"required,bookemail"`
}

// Validator decodes and validates request bodies.
// It is safe for concurrent use; build one at startup and share it.
type Validator struct {
	v *validator.Validate
}

// New creates a Validator with the custom "bookemail" rule registered.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report JSON field names ("email") instead of Go field names ("Email").
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// RegisterValidation only fails for an empty tag or a nil func.
	_ = v.RegisterValidation("bookemail", func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	})

	return &Validator{v: v}
}

// DecodeAddRequest validates body against the add-request schema.
func (v *Validator) DecodeAddRequest(body []byte) (*AddRequest, error) {
	var req AddRequest
	if err := v.decode(body, &req, "email", "title"); err != nil {
		return nil, err
	}
	return &req, nil
}

// DecodeEmailOnly validates body against the email-only schema.
func (v *Validator) DecodeEmailOnly(body []byte) (*EmailOnly, error) {
	var req EmailOnly
	if err := v.decode(body, &req, "email"); err != nil {
		return nil, err
	}
	return &req, nil
}

// decode runs the structural pass over the raw JSON, fills dst, then runs the
// content pass. required lists the string fields in the order they are checked.
func (v *Validator) decode(body []byte, dst any, required ...string) error {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return apperror.BadRequest(MissingBodyMessage)
	}

	var raw any
	if err := json.Unmarshal(body, &raw); err != nil || raw == nil {
		return apperror.BadRequest(MissingBodyMessage)
	}

	obj, ok := raw.(map[string]any)
	if !ok {
		return apperror.ValidationFailed("", fmt.Sprintf("%s is not of type 'object'", body))
	}
	// An empty object carries nothing to validate; treat it like a missing body.
	if len(obj) == 0 {
		return apperror.BadRequest(MissingBodyMessage)
	}

	for _, field := range required {
		value, present := obj[field]
		if !present {
			return apperror.ValidationFailed(field, fmt.Sprintf("'%s' is a required property", field))
		}
		if _, isString := value.(string); !isString {
			return apperror.ValidationFailed(field, fmt.Sprintf("%s is not of type 'string'", render(value)))
		}
	}

	if err := json.Unmarshal(body, dst); err != nil {
		return apperror.BadRequest(MissingBodyMessage)
	}

	if err := v.v.Struct(dst); err != nil {
		return translate(err)
	}
	return nil
}

// translate turns the first validator failure into an AppError.
func translate(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("validating body: %w", err)
	}

	fe := verrs[0]
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return apperror.ValidationFailed(field, fmt.Sprintf("'%s' should be non-empty", field))
	case "bookemail":
		return apperror.ValidationFailed(field, fmt.Sprintf("'%v' does not match the email pattern", fe.Value()))
	default:
		return apperror.ValidationFailed(field, fmt.Sprintf("'%s' failed the '%s' rule", field, fe.Tag()))
	}
}

// render prints a decoded JSON value the way it appeared on the wire.
func render(value any) string {
	b, err := json.Marshal(value)
	if err != nil {
		return fmt.Sprintf("%v", value)
	}
	return string(b)
}
