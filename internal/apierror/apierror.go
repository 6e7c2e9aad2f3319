// Package apierror provides standardized error response structures for the API.
// Services return *Error values tagged with a Kind; handlers translate the Kind
// into an HTTP status. Anything that is not an *Error is treated as internal and
// never leaks its details to the client.
package apierror

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Kind classifies a domain failure.
type Kind int

const (
	KindNotFound Kind = iota + 1
	KindValidation
	KindConflict
)

// Status maps the kind to its HTTP status code.
func (k Kind) Status() int {
	switch k {
	case KindNotFound:
		return http.StatusNotFound
	case KindValidation:
		return http.StatusBadRequest
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindValidation:
		return "validation"
	case KindConflict:
		return "conflict"
	default:
		return "internal"
	}
}

// Error is a domain error whose message is safe to show to clients.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

func newError(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func NotFound(format string, args ...any) *Error {
	return newError(KindNotFound, format, args...)
}

func Validation(format string, args ...any) *Error {
	return newError(KindValidation, format, args...)
}

func Conflict(format string, args ...any) *Error {
	return newError(KindConflict, format, args...)
}

// As extracts a domain *Error from err's chain.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// IsKind reports whether err carries a domain error of the given kind.
func IsKind(err error, kind Kind) bool {
	e, ok := As(err)
	return ok && e.Kind == kind
}

// APIError is the canonical error envelope for all 4xx/5xx HTTP responses.
type APIError struct {
	Timestamp time.Time `json:"timestamp"`
	Status    int       `json:"status"`
	Error     string    `json:"error"`
	Message   string    `json:"message"`
	Path      string    `json:"path"`
}

func New(status int, msg, path string) *APIError {
	return &APIError{
		Timestamp: time.Now(),
		Status:    status,
		Error:     http.StatusText(status),
		Message:   msg,
		Path:      path,
	}
}

// ValidationError wraps per-field validation messages keyed by JSON field name.
type ValidationError struct {
	APIError
	ValidationErrors map[string]string `json:"validationErrors"`
}

func NewValidation(path string, fields map[string]string) *ValidationError {
	return &ValidationError{
		APIError:         *New(http.StatusBadRequest, "Validation failed", path),
		ValidationErrors: fields,
	}
}

// Internal is the message every unexpected failure is reported with.
const Internal = "An unexpected error occurred"
