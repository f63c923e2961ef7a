package graph

import (
	"errors"
	"log"

	"github.com/milobedini/milife-backend/modules/auth"
	"github.com/milobedini/milife-backend/modules/tasks"
)

// Error codes surfaced to clients via the extensions.code field.
const (
	CodeUnauthenticated    = "UNAUTHENTICATED"
	CodeNotFound           = "NOT_FOUND"
	CodeConflict           = "CONFLICT"
	CodeBadUserInput       = "BAD_USER_INPUT"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeInternal           = "INTERNAL_SERVER_ERROR"
)

// gqlError is a resolver error carrying a machine-readable code. The
// GraphQL engine copies Extensions() into the response error object.
type gqlError struct {
	message string
	code    string
}

func (e *gqlError) Error() string {
	return e.message
}

func (e *gqlError) Extensions() map[string]any {
	return map[string]any{
		"code": e.code,
	}
}

// errUnauthenticated rejects user-scoped operations without an identity.
var errUnauthenticated = &gqlError{message: "not authenticated", code: CodeUnauthenticated}

// translate maps service errors to coded resolver errors. Unmapped errors
// are logged and replaced with an opaque internal error.
func translate(err error) error {
	switch {
	case errors.Is(err, auth.ErrUserNotFound),
		errors.Is(err, tasks.ErrTaskNotFound),
		errors.Is(err, tasks.ErrNotInList),
		errors.Is(err, tasks.ErrCompletionNotFound):
		return &gqlError{message: err.Error(), code: CodeNotFound}

	case errors.Is(err, auth.ErrEmailExists),
		errors.Is(err, tasks.ErrAlreadyAdded):
		return &gqlError{message: err.Error(), code: CodeConflict}

	case errors.Is(err, tasks.ErrInvalidDate),
		errors.Is(err, auth.ErrInvalidEmail),
		errors.Is(err, auth.ErrPasswordTooLong):
		return &gqlError{message: err.Error(), code: CodeBadUserInput}

	case errors.Is(err, auth.ErrInvalidPassword):
		return &gqlError{message: err.Error(), code: CodeInvalidCredentials}

	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken):
		return &gqlError{message: err.Error(), code: CodeUnauthenticated}

	default:
		log.Printf("[graph] Internal error: %v", err)
		return &gqlError{message: "internal server error", code: CodeInternal}
	}
}
