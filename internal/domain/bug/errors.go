package bug

import (
	"errors"
	"strings"
)

// ErrNotFound reports that no bug exists under the requested id.
var ErrNotFound = errors.New("bug not found")

// ValidationError carries the per-field messages from a failed
// Validate. It is client-correctable: the HTTP layer maps it to 400
// and never to 500.
type ValidationError struct {
	FieldErrors map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.FieldErrors) == 0 {
		return "validation failed"
	}

	parts := make([]string, 0, len(e.FieldErrors))
	for _, field := range fieldOrder {
		if msg, ok := e.FieldErrors[field]; ok {
			parts = append(parts, msg)
		}
	}
	return strings.Join(parts, "; ")
}

// PrimaryError returns the single message shown next to a form:
// the first violation in field order.
func (e *ValidationError) PrimaryError() string {
	for _, field := range fieldOrder {
		if msg, ok := e.FieldErrors[field]; ok {
			return msg
		}
	}
	return "validation failed"
}
