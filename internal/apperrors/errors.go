package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnbalanced indicates a journal entry whose debits and credits differ by more
// than the posting tolerance.
var ErrUnbalanced = errors.New("entry debits and credits do not balance")

// ErrUnresolvedAccount indicates that a semantic account role could not be mapped
// to a concrete account and could not be auto-created.
var ErrUnresolvedAccount = errors.New("account role could not be resolved")

// AppError wraps a lower-level error with a status-like code and a message.
type AppError struct {
	Code    int
	Message string
	Err     error
}

// NewAppError constructs an AppError wrapping err.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
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
