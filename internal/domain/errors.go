package domain

import (
	"errors"
	"fmt"
)

// Error message string constants - single source of truth for error messages.
// Handlers surface these in the "error" field of JSON bodies.
const (
	ErrMsgNotFound          = "not found"
	ErrMsgCustomerNotFound  = "Customer not found"
	ErrMsgItemNotFound      = "item not found"
	ErrMsgInsufficientFunds = "insufficient funds"
	ErrMsgOutOfStock        = "item out of stock"
	ErrMsgInvalidInput      = "invalid input"
	ErrMsgConflict          = "conflict"
	ErrMsgUsernameTaken     = "username already exists"
	ErrMsgStore             = "database error"
)

// Error kinds. Wrap with fmt.Errorf("%w: details", domain.ErrXxx) for context
// and match with errors.Is.
var (
	ErrNotFound          = errors.New(ErrMsgNotFound)
	ErrInsufficientFunds = errors.New(ErrMsgInsufficientFunds)
	ErrOutOfStock        = errors.New(ErrMsgOutOfStock)
	ErrInvalidInput      = errors.New(ErrMsgInvalidInput)
	ErrConflict          = errors.New(ErrMsgConflict)
	ErrStore             = errors.New(ErrMsgStore)

	ErrCustomerNotFound = &kindError{msg: ErrMsgCustomerNotFound, kind: ErrNotFound}
	ErrItemNotFound     = &kindError{msg: ErrMsgItemNotFound, kind: ErrNotFound}
	ErrUsernameTaken    = &kindError{msg: ErrMsgUsernameTaken, kind: ErrConflict}
)

// kindError is a specific error that still matches its broader kind.
type kindError struct {
	msg  string
	kind error
}

func (e *kindError) Error() string { return e.msg }

func (e *kindError) Unwrap() error { return e.kind }

// InvalidInput builds an ErrInvalidInput carrying a field-level reason.
func InvalidInput(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}
