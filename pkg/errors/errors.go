package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Domain errors - Sentinel errors for use with errors.Is()
var (
	ErrNotFound       = errors.New("resource not found")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrBadRequest     = errors.New("bad request")
	ErrInternalServer = errors.New("internal server error")
	ErrConfiguration  = errors.New("configuration error")
	ErrNetwork        = errors.New("network error")
	ErrHTTP           = errors.New("http error")
	ErrValidation     = errors.New("validation error")
)

// Custom error type with context
type AppError struct {
	Code    string
	Message string
	Status  int
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Constructors
func NotFound(msg string) *AppError {
	return &AppError{Code: "NOT_FOUND", Message: msg, Status: http.StatusNotFound, Err: ErrNotFound}
}

func Unauthorized(msg string) *AppError {
	return &AppError{Code: "UNAUTHORIZED", Message: msg, Status: http.StatusUnauthorized, Err: ErrUnauthorized}
}

func BadRequest(msg string) *AppError {
	return &AppError{Code: "BAD_REQUEST", Message: msg, Status: http.StatusBadRequest, Err: ErrBadRequest}
}

func InternalServer(msg string, err error) *AppError {
	return &AppError{Code: "INTERNAL_SERVER_ERROR", Message: msg, Status: http.StatusInternalServerError, Err: err}
}

// Configuration reports a missing or unusable setting detected before any I/O.
func Configuration(msg string) *AppError {
	return &AppError{Code: "CONFIGURATION", Message: msg, Err: ErrConfiguration}
}

// Network wraps a transport failure: DNS, timeout, connection reset.
func Network(msg string, err error) *AppError {
	return &AppError{Code: "NETWORK", Message: msg, Err: fmt.Errorf("%w: %v", ErrNetwork, err)}
}

// HTTP reports a non-2xx response. A 404 also matches ErrNotFound.
func HTTP(status int, msg string) *AppError {
	err := ErrHTTP
	if status == http.StatusNotFound {
		err = fmt.Errorf("%w: %w", ErrHTTP, ErrNotFound)
	}
	return &AppError{Code: "HTTP", Message: msg, Status: status, Err: err}
}

// Validation reports a client-side precondition failure.
func Validation(msg string) *AppError {
	return &AppError{Code: "VALIDATION", Message: msg, Status: http.StatusBadRequest, Err: ErrValidation}
}

// Message returns the human-readable part of err, or fallback when err
// carries none.
func Message(err error, fallback string) string {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Message != "" {
		return appErr.Message
	}
	return fallback
}

// StatusOf returns the HTTP status recorded on err, or 0.
func StatusOf(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Status
	}
	return 0
}
