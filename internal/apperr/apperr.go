package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error independently of the layer that produced it.
type Kind string

const (
	// KindNotFound means the entity is absent or not owned by the caller.
	KindNotFound Kind = "NOT_FOUND"
	// KindValidation means the input was malformed; Fields carries per-field detail.
	KindValidation Kind = "VALIDATION"
	// KindUnauthorized means no usable identity was supplied.
	KindUnauthorized Kind = "UNAUTHORIZED"
	// KindForbidden means the identity lacks the required privilege.
	KindForbidden Kind = "FORBIDDEN"
	// KindConflict means a uniqueness rule was violated.
	KindConflict Kind = "CONFLICT"
	// KindBusinessRule means well-formed input violated a domain rule.
	KindBusinessRule Kind = "BUSINESS_RULE"
	// KindExternalService means a dependency failed; detail stays server-side.
	KindExternalService Kind = "EXTERNAL_SERVICE"
	// KindPersistence means an unexpected storage failure.
	KindPersistence Kind = "PERSISTENCE"
)

// Error is the typed error carried across repository and service boundaries.
// Message is safe to return to clients; Err is the underlying cause and is
// only ever logged.
type Error struct {
	Kind    Kind
	Message string
	Fields  map[string]string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates an error of the given kind.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap creates an error of the given kind around an underlying cause.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// NotFound builds a NotFound error.
func NotFound(message string) *Error {
	return New(KindNotFound, message)
}

// Validation builds a Validation error with field-level detail.
func Validation(message string, fields map[string]string) *Error {
	return &Error{Kind: KindValidation, Message: message, Fields: fields}
}

// Conflict builds a Conflict error.
func Conflict(message string) *Error {
	return New(KindConflict, message)
}

// Forbidden builds a Forbidden error.
func Forbidden(message string) *Error {
	return New(KindForbidden, message)
}

// Unauthorized builds an Unauthorized error.
func Unauthorized(message string) *Error {
	return New(KindUnauthorized, message)
}

// BusinessRule builds a BusinessRule error.
func BusinessRule(message string) *Error {
	return New(KindBusinessRule, message)
}

// Persistence wraps an unexpected storage failure. The client-facing message
// is generic; the cause is preserved for logging.
func Persistence(operation string, err error) *Error {
	return &Error{Kind: KindPersistence, Message: "persistence failure in " + operation, Err: err}
}

// KindOf extracts the Kind from an error chain, defaulting to Persistence.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindPersistence
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// ErrorResponse is the standardized client-facing error body.
type ErrorResponse struct {
	Error  string            `json:"error"`
	Code   string            `json:"code"`
	Fields map[string]string `json:"fields,omitempty"`
}

// HTTPStatus maps an error kind to a protocol status code.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindNotFound:
		return http.StatusNotFound
	case KindValidation, KindBusinessRule:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindConflict:
		return http.StatusConflict
	case KindExternalService:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// ToResponse converts an error to its safe client-facing body. Raw storage
// error text never leaks: unexpected errors collapse to a generic message.
func ToResponse(err error) ErrorResponse {
	var e *Error
	if errors.As(err, &e) {
		resp := ErrorResponse{Error: e.Message, Code: string(e.Kind), Fields: e.Fields}
		if e.Kind == KindPersistence || e.Kind == KindExternalService {
			resp.Error = "internal server error"
		}
		return resp
	}
	return ErrorResponse{Error: "internal server error", Code: string(KindPersistence)}
}
