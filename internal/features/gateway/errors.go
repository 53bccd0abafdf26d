package gateway

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// ApiError is the only error type the gateway surfaces to callers. Message
// is safe to return verbatim; storage internals never reach it for 5xx.
type ApiError struct {
	Status  int
	Message string
}

func (e *ApiError) Error() string {
	return e.Message
}

func NewApiError(status int, message string) *ApiError {
	return &ApiError{Status: status, Message: message}
}

var (
	ErrUnauthorized     = NewApiError(401, "Unauthorized")
	ErrResourceNotFound = NewApiError(404, "Resource not found")
	ErrRecordNotFound   = NewApiError(404, "Not found")
	ErrMethodNotAllowed = NewApiError(405, "Method not allowed")
)

const pgUndefinedColumnCode = "42703"

// classifyStorageError maps storage failures onto the caller-facing
// taxonomy: missing rows are 404, errors caused by malformed caller input
// (filtering on a column that does not exist) are 400, everything else is a
// generic 500 with the detail kept server-side.
func classifyStorageError(err error) *ApiError {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrRecordNotFound
	}

	var pgError *pgconn.PgError
	if errors.As(err, &pgError) && pgError.Code == pgUndefinedColumnCode {
		return NewApiError(400, "Unknown filter column")
	}

	// sqlite wording, used by the test databases
	if strings.Contains(err.Error(), "no such column") {
		return NewApiError(400, "Unknown filter column")
	}

	return NewApiError(500, "Internal server error")
}
