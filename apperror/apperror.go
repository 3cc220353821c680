// Package apperror defines the application's error taxonomy.
// Every failure that crosses the API boundary is one of a small set of kinds,
// so that a client can branch on "log in" vs "not yours" vs "fix your input"
// without parsing message strings. This plays the role that Apollo Server's
// error classes (UserInputError, AuthenticationError, ForbiddenError) play in
// a Node GraphQL stack: the kind travels with the error and is rendered into
// the response in a uniform way.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorType enumerates the categories of application errors.
type ErrorType int

const (
	// UnknownError is for unclassified errors.
	UnknownError ErrorType = iota
	// InputError is a user-correctable failure: validation, duplicates,
	// bad credentials. Never logged as a server fault.
	InputError
	// AuthenticationError means no valid identity was presented for an
	// operation that requires one.
	AuthenticationError
	// ForbiddenError means an identity was presented but it does not own
	// the resource it tried to touch.
	ForbiddenError
	// NotFoundError means the requested resource does not exist. It is a
	// flavor of input error but kept distinct so existence checks can run
	// before ownership checks.
	NotFoundError
	// ConflictError means a uniqueness constraint was violated, e.g. a
	// username is already taken.
	ConflictError
	// DatabaseError represents a failure in the persistence layer.
	DatabaseError
	// ConfigError represents invalid or missing process configuration.
	ConfigError
	// InternalError is a generic server fault.
	InternalError
	// MigrationError represents a failure while migrating the schema.
	MigrationError
)

// AppError carries an error kind, a client-safe message, and optionally the
// underlying cause. The cause is for logs only and never rendered to clients.
type AppError struct {
	Type    ErrorType
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap exposes the underlying cause to errors.Is / errors.As.
func (e *AppError) Unwrap() error {
	return e.Err
}

// StatusCode maps the error kind to an HTTP status code. The GraphQL endpoint
// answers 200 with an error list, but plain HTTP surfaces (panic recovery,
// unreadable request bodies) still need a status.
func (e *AppError) StatusCode() int {
	switch e.Type {
	case InputError, ConflictError, NotFoundError:
		return http.StatusBadRequest
	case AuthenticationError:
		return http.StatusUnauthorized
	case ForbiddenError:
		return http.StatusForbidden
	case DatabaseError, ConfigError, InternalError, MigrationError:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// GraphQL error-extension codes, following the Apollo Server conventions so
// existing clients keep working against this implementation.
const (
	CodeBadUserInput    = "BAD_USER_INPUT"
	CodeUnauthenticated = "UNAUTHENTICATED"
	CodeForbidden       = "FORBIDDEN"
	CodeInternal        = "INTERNAL_SERVER_ERROR"
)

// Code returns the GraphQL extensions code for the error kind. Input-shaped
// kinds (validation, conflict, not-found) all collapse to BAD_USER_INPUT;
// server faults collapse to INTERNAL_SERVER_ERROR without detail.
func (e *AppError) Code() string {
	switch e.Type {
	case InputError, ConflictError, NotFoundError:
		return CodeBadUserInput
	case AuthenticationError:
		return CodeUnauthenticated
	case ForbiddenError:
		return CodeForbidden
	default:
		return CodeInternal
	}
}

// Extensions implements the gqlerrors.ExtendedError interface from
// graphql-go, so that when a resolver returns an *AppError the formatted
// GraphQL error carries {"code": ...} in its extensions map.
func (e *AppError) Extensions() map[string]interface{} {
	return map[string]interface{}{"code": e.Code()}
}

// NewAppError is the generic constructor; the typed constructors below are
// preferred at call sites.
func NewAppError(errType ErrorType, message string, underlying error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Err:     underlying,
	}
}

// NewInputError creates a user-correctable input error.
func NewInputError(message string, underlying error) *AppError {
	return NewAppError(InputError, message, underlying)
}

// NewAuthenticationError creates an authentication-required error.
func NewAuthenticationError(message string, underlying error) *AppError {
	return NewAppError(AuthenticationError, message, underlying)
}

// NewForbiddenError creates an authorization (not-the-owner) error.
func NewForbiddenError(message string, underlying error) *AppError {
	return NewAppError(ForbiddenError, message, underlying)
}

// NewNotFoundError creates a missing-resource error.
func NewNotFoundError(message string, underlying error) *AppError {
	return NewAppError(NotFoundError, message, underlying)
}

// NewConflictError creates a uniqueness-violation error.
func NewConflictError(message string, underlying error) *AppError {
	return NewAppError(ConflictError, message, underlying)
}

// NewDatabaseError creates a persistence-layer error.
func NewDatabaseError(message string, underlying error) *AppError {
	return NewAppError(DatabaseError, message, underlying)
}

// NewConfigError creates a configuration error.
func NewConfigError(message string, underlying error) *AppError {
	return NewAppError(ConfigError, message, underlying)
}

// NewInternalError creates a generic server fault.
func NewInternalError(message string, underlying error) *AppError {
	return NewAppError(InternalError, message, underlying)
}

// NewMigrationError creates a schema-migration error.
func NewMigrationError(message string, underlying error) *AppError {
	return NewAppError(MigrationError, message, underlying)
}

// ErrorResponse is the JSON error payload for the non-GraphQL surfaces
// (panic recovery, transport-level failures).
type ErrorResponse struct {
	Error string `json:"error"`
}

// ToResponse renders only the client-safe message, never the cause.
func (e *AppError) ToResponse() ErrorResponse {
	return ErrorResponse{Error: e.Message}
}

// FromError converts err to an *AppError if it is one (possibly wrapped).
func FromError(err error) (*AppError, bool) {
	if err == nil {
		return nil, false
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

func isType(err error, t ErrorType) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Type == t
}

// IsInputError reports whether err is a user-correctable input error.
func IsInputError(err error) bool { return isType(err, InputError) }

// IsAuthenticationError reports whether err is an authentication-required error.
func IsAuthenticationError(err error) bool { return isType(err, AuthenticationError) }

// IsForbiddenError reports whether err is an ownership (forbidden) error.
func IsForbiddenError(err error) bool { return isType(err, ForbiddenError) }

// IsNotFoundError reports whether err is a missing-resource error.
func IsNotFoundError(err error) bool { return isType(err, NotFoundError) }

// IsConflictError reports whether err is a uniqueness-violation error.
func IsConflictError(err error) bool { return isType(err, ConflictError) }
