// Package apperrors defines the error kinds surfaced by usecases so handlers
// can map them onto HTTP status codes.
package apperrors

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks empty or malformed caller input (400).
	ErrValidation = errors.New("validation error")
	// ErrNotFound marks a missing entity (404).
	ErrNotFound = errors.New("not found")
	// ErrUnauthorized marks a failed credential or token check (401).
	ErrUnauthorized = errors.New("unauthorized")
	// ErrConflict marks a uniqueness violation such as a taken username (400).
	ErrConflict = errors.New("conflict")
)

func Validationf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrValidation}, args...)...)
}

func NotFoundf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrNotFound}, args...)...)
}

func Conflictf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrConflict}, args...)...)
}

// Message strips the sentinel prefix for client-facing error bodies.
func Message(err error) string {
	for _, sentinel := range []error{ErrValidation, ErrNotFound, ErrUnauthorized, ErrConflict} {
		if errors.Is(err, sentinel) {
			msg := err.Error()
			prefix := sentinel.Error() + ": "
			if len(msg) > len(prefix) && msg[:len(prefix)] == prefix {
				return msg[len(prefix):]
			}
			return msg
		}
	}
	return err.Error()
}
