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

// ErrForbidden indicates that the caller is not allowed to perform the operation.
var ErrForbidden = errors.New("forbidden")

// ErrBookUnavailable indicates that a book has no copies left to borrow.
var ErrBookUnavailable = errors.New("book is not available")

// ErrAlreadyReturned indicates that a borrowing was already returned.
var ErrAlreadyReturned = errors.New("borrowing already returned")

// NewValidationError returns an error whose Error() is exactly msg while still
// matching ErrValidation under errors.Is. Handlers surface the message verbatim.
func NewValidationError(msg string) error {
	return &validationError{msg: msg}
}

type validationError struct {
	msg string
}

func (e *validationError) Error() string { return e.msg }

func (e *validationError) Unwrap() error { return ErrValidation }

// AppError wraps a lower level failure with an HTTP-ish status code and a message.
// Repositories use it to report infrastructure failures without leaking SQL details.
type AppError struct {
	Code    int
	Message string
	Err     error
}

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
