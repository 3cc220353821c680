package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  *AppError
		want int
	}{
		{"input", NewInputError("bad input", nil), http.StatusBadRequest},
		{"not found", NewNotFoundError("missing", nil), http.StatusBadRequest},
		{"conflict", NewConflictError("taken", nil), http.StatusBadRequest},
		{"authentication", NewAuthenticationError("log in", nil), http.StatusUnauthorized},
		{"forbidden", NewForbiddenError("not yours", nil), http.StatusForbidden},
		{"database", NewDatabaseError("db down", nil), http.StatusInternalServerError},
		{"config", NewConfigError("missing secret", nil), http.StatusInternalServerError},
		{"internal", NewInternalError("boom", nil), http.StatusInternalServerError},
		{"unknown", NewAppError(UnknownError, "?", nil), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.err.StatusCode())
		})
	}
}

func TestCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  *AppError
		want string
	}{
		{"input", NewInputError("bad input", nil), CodeBadUserInput},
		{"not found", NewNotFoundError("missing", nil), CodeBadUserInput},
		{"conflict", NewConflictError("taken", nil), CodeBadUserInput},
		{"authentication", NewAuthenticationError("log in", nil), CodeUnauthenticated},
		{"forbidden", NewForbiddenError("not yours", nil), CodeForbidden},
		{"database", NewDatabaseError("db down", nil), CodeInternal},
		{"internal", NewInternalError("boom", nil), CodeInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.err.Code())
			assert.Equal(t, map[string]interface{}{"code": tt.want}, tt.err.Extensions())
		})
	}
}

func TestErrorMessageAndUnwrap(t *testing.T) {
	t.Parallel()

	cause := errors.New("connection refused")
	err := NewDatabaseError("failed to fetch user", cause)

	assert.Equal(t, "failed to fetch user: connection refused", err.Error())
	assert.Equal(t, cause, errors.Unwrap(err))

	bare := NewInputError("Title is required", nil)
	assert.Equal(t, "Title is required", bare.Error())
}

func TestToResponseOmitsCause(t *testing.T) {
	t.Parallel()

	err := NewInternalError("internal server error", errors.New("secret detail"))
	assert.Equal(t, ErrorResponse{Error: "internal server error"}, err.ToResponse())
}

func TestKindPredicatesSeeThroughWrapping(t *testing.T) {
	t.Parallel()

	wrapped := fmt.Errorf("resolver: %w", NewForbiddenError("You can only view your own todos", nil))

	assert.True(t, IsForbiddenError(wrapped))
	assert.False(t, IsAuthenticationError(wrapped))
	assert.False(t, IsInputError(wrapped))
	assert.False(t, IsNotFoundError(wrapped))
	assert.False(t, IsConflictError(wrapped))
}

func TestFromError(t *testing.T) {
	t.Parallel()

	appErr := NewNotFoundError("Todo not found", nil)
	got, ok := FromError(fmt.Errorf("wrap: %w", appErr))
	require.True(t, ok)
	assert.Equal(t, appErr, got)

	_, ok = FromError(errors.New("plain"))
	assert.False(t, ok)

	_, ok = FromError(nil)
	assert.False(t, ok)
}
