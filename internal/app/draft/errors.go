package draft

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation is wrapped by every ValidationError
	ErrValidation = errors.New("validation failed")

	// ErrVariantNotFound is returned when no variant carries the given local id
	ErrVariantNotFound = errors.New("variant not found")

	// ErrImageIndex is returned when an image index is out of range
	ErrImageIndex = errors.New("image index out of range")
)

// ValidationError is a local, synchronous rejection of an operator action.
// It never reaches the network and leaves the draft unchanged.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

func invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// QuotaWarning reports files dropped because an image list was full.
// It is a soft outcome: the accepted files are still added.
type QuotaWarning struct {
	Remaining int // free slots before the add
	Rejected  int
}

func (w *QuotaWarning) Message() string {
	return fmt.Sprintf("Only %d more images allowed.", w.Remaining)
}
