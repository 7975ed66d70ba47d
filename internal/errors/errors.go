package errors

import (
	"errors"
	"net/http"

	"github.com/go-sql-driver/mysql"
)

var (
	// ErrEventNotFound is returned when an event is not found.
	ErrEventNotFound = errors.New("event not found")
	// ErrUserNotFound is returned when a user is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrNotOrganizer is returned when the caller is not the event's organizer.
	ErrNotOrganizer = errors.New("only the event organizer may perform this action")
	// ErrDuplicateSignup is returned when a (user, event) pairing already exists.
	ErrDuplicateSignup = errors.New("already signed up for this event")
	// ErrSignupNotFound is returned when a (user, event) pairing does not exist.
	ErrSignupNotFound = errors.New("signup not found")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrEventNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "EVENT_NOT_FOUND")
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	case errors.Is(err, ErrNotOrganizer):
		return NewHTTPError(http.StatusForbidden, err.Error(), "NOT_ORGANIZER")
	case errors.Is(err, ErrDuplicateSignup):
		return NewHTTPError(http.StatusConflict, err.Error(), "DUPLICATE_SIGNUP")
	case errors.Is(err, ErrSignupNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "SIGNUP_NOT_FOUND")
	default:
		if httpErr := classifyStoreError(err); httpErr != nil {
			return httpErr
		}
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}

// MySQL server error numbers used for constraint classification.
const (
	mysqlErrDuplicateEntry = 1062
	mysqlErrColumnNoNull   = 1048
	mysqlErrDataTooLong    = 1406
)

// classifyStoreError pattern-matches provider error codes so unique-key and
// not-null violations surface as Conflict/BadRequest instead of opaque 500s.
func classifyStoreError(err error) *HTTPError {
	var mysqlErr *mysql.MySQLError
	if !errors.As(err, &mysqlErr) {
		return nil
	}
	switch mysqlErr.Number {
	case mysqlErrDuplicateEntry:
		return NewHTTPError(http.StatusConflict, "resource already exists", "DUPLICATE_ENTRY")
	case mysqlErrColumnNoNull:
		return NewHTTPError(http.StatusBadRequest, "missing required field", "MISSING_FIELD")
	case mysqlErrDataTooLong:
		return NewHTTPError(http.StatusBadRequest, "field value too long", "FIELD_TOO_LONG")
	default:
		return nil
	}
}

// IsDuplicateEntry reports whether err is a MySQL unique-constraint violation.
func IsDuplicateEntry(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlErrDuplicateEntry
}
