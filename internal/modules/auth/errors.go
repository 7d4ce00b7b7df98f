package auth

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrNotFound           = errors.New("account not found")
	ErrValidation         = errors.New("validation error")
)

// FieldError carries per-field validation failures. It matches ErrValidation.
type FieldError struct {
	Fields map[string]string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("validation failed: %v", e.Fields)
}

func (e *FieldError) Unwrap() error { return ErrValidation }
