package service

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound         = errors.New("product not found")
	ErrValidation       = errors.New("validation failed")
	ErrCreationFailed   = errors.New("failed to create product")
	ErrStoreUnavailable = errors.New("product store unavailable")
)

// ValidationError names the offending input field. It matches ErrValidation
// under errors.Is.
type ValidationError struct {
	Field   string
	Missing bool
}

func (e *ValidationError) Error() string {
	if e.Missing {
		return "Missing required field: " + e.Field
	}
	return "Invalid value for field: " + e.Field
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func storeError(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrStoreUnavailable, op, err)
}
