package application

import (
	"errors"

	"github.com/ipdr-analysis/auth-server/pkg/helpers"
)

var (
	ErrValidation         = errors.New("validation failed")
	ErrConflict           = errors.New("username or email already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrAccountLocked      = errors.New("account is locked due to too many failed attempts")
	ErrAccountDeactivated = errors.New("account is deactivated")
	ErrWeakPassword       = errors.New("password is too weak")
	ErrInvalidToken       = errors.New("invalid token")
	ErrStoreFailure       = errors.New("credential store failure")
	ErrLogWrite           = errors.New("audit log write failed")
)

// FieldError is a ValidationError bound to one input field.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string { return e.Message }
func (e *FieldError) Unwrap() error { return ErrValidation }

// WeakPasswordError carries the policy feedback the caller needs to fix the password.
type WeakPasswordError struct {
	Strength helpers.PasswordStrength
}

func (e *WeakPasswordError) Error() string { return ErrWeakPassword.Error() }
func (e *WeakPasswordError) Unwrap() error { return ErrWeakPassword }
