package businessflow

import (
	"errors"
	"fmt"
)

// Business flow error constants
var (
	// Registration errors
	ErrInvalidEmail       = errors.New("invalid email format")
	ErrEmailAlreadyExists = errors.New("email already registered")

	// Broadcast errors
	ErrEmptyMessage = errors.New("broadcast message is empty")

	// Admin authentication errors. A single sentinel covers unknown username
	// and wrong password so responses never reveal which field was wrong.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Infrastructure errors
	ErrStoreUnavailable = errors.New("store unavailable")
	ErrMailDispatch     = errors.New("mail dispatch failed")
)

type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func IsInvalidEmail(err error) bool {
	return errors.Is(err, ErrInvalidEmail)
}

func IsEmailAlreadyExists(err error) bool {
	return errors.Is(err, ErrEmailAlreadyExists)
}

func IsEmptyMessage(err error) bool {
	return errors.Is(err, ErrEmptyMessage)
}

func IsInvalidCredentials(err error) bool {
	return errors.Is(err, ErrInvalidCredentials)
}

func IsStoreUnavailable(err error) bool {
	return errors.Is(err, ErrStoreUnavailable)
}

func IsMailDispatch(err error) bool {
	return errors.Is(err, ErrMailDispatch)
}
