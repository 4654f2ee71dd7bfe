package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorCode represents a unique error code
type ErrorCode int

// Common error codes
const (
	ErrNotFound ErrorCode = iota + 1000
	ErrValidation
	ErrDuplicateKey
	ErrStoreUnavailable
	ErrInternal
)

// AppError represents an application error
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Field   string    `json:"field,omitempty"`
	Err     error     `json:"-"`
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

// StatusCode maps the error taxonomy onto HTTP status codes. The error
// middleware picks this up via an interface assertion.
func (e *AppError) StatusCode() int {
	switch e.Code {
	case ErrNotFound:
		return http.StatusNotFound
	case ErrValidation, ErrDuplicateKey:
		return http.StatusBadRequest
	case ErrStoreUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// Error constructors
func NotFound(resource string, err error) *AppError {
	return &AppError{
		Code:    ErrNotFound,
		Message: fmt.Sprintf("%s not found", resource),
		Err:     err,
	}
}

func Validation(message string, err error) *AppError {
	return &AppError{
		Code:    ErrValidation,
		Message: message,
		Err:     err,
	}
}

// DuplicateKey reports an alternate-key collision. field names the colliding
// key when it could be derived from the store error, empty otherwise.
func DuplicateKey(field string, err error) *AppError {
	msg := "duplicate key"
	if field != "" {
		msg = fmt.Sprintf("a patient with this %s already exists", field)
	}
	return &AppError{
		Code:    ErrDuplicateKey,
		Message: msg,
		Field:   field,
		Err:     err,
	}
}

func StoreUnavailable(err error) *AppError {
	return &AppError{
		Code:    ErrStoreUnavailable,
		Message: "record store unavailable",
		Err:     err,
	}
}

func Internal(err error) *AppError {
	return &AppError{
		Code:    ErrInternal,
		Message: "internal server error",
		Err:     err,
	}
}

// IsNotFound reports whether err is an AppError carrying the not-found code.
func IsNotFound(err error) bool {
	return hasCode(err, ErrNotFound)
}

// IsDuplicateKey reports whether err is an AppError carrying the duplicate-key code.
func IsDuplicateKey(err error) bool {
	return hasCode(err, ErrDuplicateKey)
}

// IsValidation reports whether err is an AppError carrying the validation code.
func IsValidation(err error) bool {
	return hasCode(err, ErrValidation)
}

func hasCode(err error, code ErrorCode) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}
