package service

import (
	"errors"
	"fmt"
)

var (
	ErrEmailTaken          = errors.New("a user with this email already exists")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrUnauthorized        = errors.New("authorization required")
	ErrPublicationNotFound = errors.New("publication not found")
)

// ValidationError is returned when user input is rejected before anything
// reaches the store. Err is one of the validators package sentinels.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func invalid(field string, err error) error {
	return &ValidationError{Field: field, Err: err}
}
