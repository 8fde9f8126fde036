package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/book-requests/internal/apperror"
)

func TestDecodeAddRequest_Valid(t *testing.T) {
	v := New()

	req, err := v.DecodeAddRequest([]byte(`{"title":"Great Book Title 1","email":"fake@email.com"}`))
	require.NoError(t, err)
	assert.Equal(t, "fake@email.com", req.Email)
	assert.Equal(t, "Great Book Title 1", req.Title)
}

func TestDecodeAddRequest_IgnoresUnknownFields(t *testing.T) {
	v := New()

	req, err := v.DecodeAddRequest([]byte(`{"title":"t","email":"a@b.co","note":123}`))
	require.NoError(t, err)
	assert.Equal(t, "t", req.Title)
}

func TestDecodeAddRequest_Failures(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		wantErr     error
		wantField   string
		wantMessage string
	}{
		{
			name:        "empty body",
			body:        ``,
			wantErr:     apperror.ErrBadRequest,
			wantMessage: MissingBodyMessage,
		},
		{
			name:        "whitespace body",
			body:        "  \n\t",
			wantErr:     apperror.ErrBadRequest,
			wantMessage: MissingBodyMessage,
		},
		{
			name:        "invalid json",
			body:        `{"email":`,
			wantErr:     apperror.ErrBadRequest,
			wantMessage: MissingBodyMessage,
		},
		{
			name:        "json null",
			body:        `null`,
			wantErr:     apperror.ErrBadRequest,
			wantMessage: MissingBodyMessage,
		},
		{
			name:        "empty object",
			body:        `{}`,
			wantErr:     apperror.ErrBadRequest,
			wantMessage: MissingBodyMessage,
		},
		{
			name:        "array instead of object",
			body:        `["fake@email.com"]`,
			wantErr:     apperror.ErrValidation,
			wantMessage: `["fake@email.com"] is not of type 'object'`,
		},
		{
			name:        "unrelated fields report email first",
			body:        `{"testing":"this"}`,
			wantErr:     apperror.ErrValidation,
			wantField:   "email",
			wantMessage: "'email' is a required property",
		},
		{
			name:        "missing title",
			body:        `{"email":"fake@email.com"}`,
			wantErr:     apperror.ErrValidation,
			wantField:   "title",
			wantMessage: "'title' is a required property",
		},
		{
			name:        "malformed email",
			body:        `{"title":"this","email":"what?"}`,
			wantErr:     apperror.ErrValidation,
			wantField:   "email",
			wantMessage: "'what?' does not match the email pattern",
		},
		{
			name:        "number title",
			body:        `{"title":1.5253,"email":"fake@email.com"}`,
			wantErr:     apperror.ErrValidation,
			wantField:   "title",
			wantMessage: "1.5253 is not of type 'string'",
		},
		{
			name:        "null email",
			body:        `{"title":"this","email":null}`,
			wantErr:     apperror.ErrValidation,
			wantField:   "email",
			wantMessage: "null is not of type 'string'",
		},
		{
			name:        "empty title",
			body:        `{"title":"","email":"fake@email.com"}`,
			wantErr:     apperror.ErrValidation,
			wantField:   "title",
			wantMessage: "'title' should be non-empty",
		},
		{
			name:        "empty email",
			body:        `{"title":"this","email":""}`,
			wantErr:     apperror.ErrValidation,
			wantField:   "email",
			wantMessage: "'email' should be non-empty",
		},
	}

	v := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := v.DecodeAddRequest([]byte(tt.body))
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), "error = %v, want %v", err, tt.wantErr)

			var appErr *apperror.AppError
			require.True(t, errors.As(err, &appErr))
			assert.Equal(t, tt.wantMessage, appErr.Message)
			if tt.wantField != "" {
				assert.Equal(t, tt.wantField, appErr.Field)
			}
		})
	}
}

func TestDecodeEmailOnly(t *testing.T) {
	v := New()

	t.Run("valid", func(t *testing.T) {
		req, err := v.DecodeEmailOnly([]byte(`{"email":"fake@email.com"}`))
		require.NoError(t, err)
		assert.Equal(t, "fake@email.com", req.Email)
	})

	t.Run("title is not required", func(t *testing.T) {
		_, err := v.DecodeEmailOnly([]byte(`{"email":"reader@library.org","title":5}`))
		assert.NoError(t, err)
	})

	t.Run("missing email", func(t *testing.T) {
		_, err := v.DecodeEmailOnly([]byte(`{"mail":"fake@email.com"}`))
		assert.ErrorIs(t, err, apperror.ErrValidation)
	})

	t.Run("missing body", func(t *testing.T) {
		_, err := v.DecodeEmailOnly(nil)
		assert.ErrorIs(t, err, apperror.ErrBadRequest)
	})
}

func TestEmailPattern(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		{"fake@email.com", true},
		{"first.last+books@mail.example.co.uk", true},
		{"Fake@Email.COM", true},
		{"o'brien@example.com", false},
		{"what?", false},
		{"missing-domain@", false},
		{"no-tld@example", false},
		{"two@@example.com", false},
		{" padded@example.com ", false},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			assert.Equal(t, tt.want, emailPattern.MatchString(tt.email))
		})
	}
}
