package config

import (
	"errors"
	"fmt"
)

// ErrNotFound marks a referenced configuration file that does not exist.
var ErrNotFound = errors.New("configuration not found")

// ValidationError marks a document that parsed but fails validation.
type ValidationError struct {
	File   string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid configuration %s: %s", e.File, e.Reason)
}

func validationErrorf(file, format string, args ...any) *ValidationError {
	return &ValidationError{File: file, Reason: fmt.Sprintf(format, args...)}
}
