package errors

import (
	stderrors "errors"
	"net/http"
)

// Kind classifies an error by how the caller should react to it.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindNotFound
	KindConflict
	KindUnavailable
)

// HTTPStatus maps a Kind to its response status.
func (k Kind) HTTPStatus() int {
	switch k {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// Error is a classified application error. Message is safe to show to API
// callers; Err, when set, is the underlying cause.
type Error struct {
	Kind     Kind
	Message  string
	Required []string
	Details  map[string]interface{}
	Err      error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// WithDetail attaches a detail entry and returns e.
func (e *Error) WithDetail(key string, value interface{}) *Error {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// Wrap records the underlying cause and returns e.
func (e *Error) Wrap(err error) *Error {
	e.Err = err
	return e
}

func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

func Unavailable(message string) *Error {
	return &Error{Kind: KindUnavailable, Message: message}
}

func Internal(message string, err error) *Error {
	return &Error{Kind: KindInternal, Message: message, Err: err}
}

// MissingFields is the validation error for absent required fields.
// required is the full list for the operation, missing the subset not supplied.
func MissingFields(required, missing []string) *Error {
	e := &Error{Kind: KindValidation, Message: "Missing required fields", Required: required}
	return e.WithDetail("missing", missing)
}

// As extracts an *Error from err's chain.
func As(err error) (*Error, bool) {
	var e *Error
	if stderrors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// KindOf reports the Kind of err; unclassified errors are internal.
func KindOf(err error) Kind {
	if e, ok := As(err); ok {
		return e.Kind
	}
	return KindInternal
}

// Is reports whether err carries the given Kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
