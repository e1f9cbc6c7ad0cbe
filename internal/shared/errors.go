package shared

import "errors"

var (
	// ErrNotFound indicates a referenced record is absent.
	ErrNotFound = errors.New("resource not found")
	// ErrDuplicate indicates a uniqueness violation (document, email, bank id).
	ErrDuplicate = errors.New("duplicate entry")
	// ErrValidation indicates user-correctable invalid input.
	ErrValidation = errors.New("validation failed")
	// ErrConflict indicates a lost optimistic-lock race; the caller may retry.
	ErrConflict = errors.New("concurrent update conflict")
)
