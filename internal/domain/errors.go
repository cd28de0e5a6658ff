package domain

import (
	"errors"
	"strings"
)

// ValidationError reports a single invalid input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// ValidationErrors collects every failing field of one query.
type ValidationErrors []*ValidationError

func (v ValidationErrors) Error() string {
	parts := make([]string, 0, len(v))
	for _, e := range v {
		parts = append(parts, e.Error())
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Fields returns field -> message, the shape the HTTP layer reports.
func (v ValidationErrors) Fields() map[string]string {
	out := make(map[string]string, len(v))
	for _, e := range v {
		out[e.Field] = e.Message
	}
	return out
}

// IsValidation reports whether err is (or wraps) a validation failure.
func IsValidation(err error) bool {
	var many ValidationErrors
	if errors.As(err, &many) {
		return true
	}
	var one *ValidationError
	return errors.As(err, &one)
}
