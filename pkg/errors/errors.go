package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Type classifies an application error for translation at the API boundary.
type Type int

const (
	TypeValidation Type = iota + 1
	TypeAuthentication
	TypeUnauthorized
	TypeNotFound
	TypeConflict
	TypeInternal
)

// AppError represents an application error
type AppError struct {
	Type    Type              `json:"-"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
	Err     error             `json:"-"`
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

// StatusCode maps the error type to its HTTP status.
func (e *AppError) StatusCode() int {
	switch e.Type {
	case TypeValidation, TypeAuthentication, TypeConflict:
		return http.StatusBadRequest
	case TypeUnauthorized:
		return http.StatusUnauthorized
	case TypeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Error constructors
func Validation(message string) *AppError {
	return &AppError{Type: TypeValidation, Message: message}
}

// FieldValidation reports a validation failure on a single named field.
func FieldValidation(field, message string) *AppError {
	return &AppError{
		Type:    TypeValidation,
		Message: message,
		Details: map[string]string{field: message},
	}
}

func Authentication(message string) *AppError {
	return &AppError{Type: TypeAuthentication, Message: message}
}

func Unauthorized(message string) *AppError {
	return &AppError{Type: TypeUnauthorized, Message: message}
}

func NotFound(message string) *AppError {
	return &AppError{Type: TypeNotFound, Message: message}
}

func Conflict(message string) *AppError {
	return &AppError{Type: TypeConflict, Message: message}
}

func Internal(err error) *AppError {
	return &AppError{Type: TypeInternal, Message: "Internal server error", Err: err}
}

// As unwraps err into an *AppError, or nil if it is not one.
func As(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// IsType reports whether err is an AppError of the given type.
func IsType(err error, t Type) bool {
	if appErr := As(err); appErr != nil {
		return appErr.Type == t
	}
	return false
}
