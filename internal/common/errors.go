package common

import (
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/labstack/echo/v4"
)

// ErrNotFound signals that a referenced record does not exist.
var ErrNotFound = errors.New("record not found")

// ValidationError is a caller mistake: missing or malformed input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ConflictError is a uniqueness violation: duplicate arn or a field key
// that already exists. Kept distinct from generic store failures so the
// UI can show an "already exists" message.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// TranslateStoreError maps the store's own constraint signals onto the
// error taxonomy. Uniqueness is detected from the constraint violation
// itself rather than a racy pre-check.
func TranslateStoreError(err error, conflictMsg, referenceMsg string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return &ConflictError{Message: conflictMsg}
		case pgForeignKeyViolation:
			return &ValidationError{Message: referenceMsg}
		}
	}
	return err
}

// ErrorResponse is the standardized error envelope returned by every
// handler.
type ErrorResponse struct {
	Error struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details,omitempty"`
	} `json:"error"`
}

// CreateErrorResponse creates a standardized error response
func CreateErrorResponse(code string, message string, details map[string]string) *ErrorResponse {
	var resp ErrorResponse
	resp.Error.Code = code
	resp.Error.Message = message
	resp.Error.Details = details
	return &resp
}

// SendError maps a service error onto the HTTP status contract:
// ValidationError 400, NotFound 404, ConflictError 409, anything else
// 500. fallback is the message used for untyped store errors.
func SendError(c echo.Context, err error, fallback string) error {
	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return c.JSON(http.StatusBadRequest, CreateErrorResponse("VALIDATION_ERROR", validationErr.Message, nil))
	}
	var conflictErr *ConflictError
	if errors.As(err, &conflictErr) {
		return c.JSON(http.StatusConflict, CreateErrorResponse("CONFLICT", conflictErr.Message, nil))
	}
	if errors.Is(err, ErrNotFound) {
		return c.JSON(http.StatusNotFound, CreateErrorResponse("NOT_FOUND", "Record not found", nil))
	}
	return c.JSON(http.StatusInternalServerError, CreateErrorResponse("SERVER_ERROR", fallback, nil))
}
