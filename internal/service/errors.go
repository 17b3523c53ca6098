package service

import (
	"errors"
	"strings"
)

// ErrInvalidForm is returned when a request fails validation before any
// pricing runs.
var ErrInvalidForm = errors.New("invalid form")

// FieldViolation names one field that failed validation.
type FieldViolation struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
}

// ValidationError carries every violation found in a request. It matches
// ErrInvalidForm with errors.Is.
type ValidationError struct {
	Violations []FieldViolation
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		parts[i] = v.Field + ":" + v.Rule
	}
	return "invalid form: " + strings.Join(parts, ", ")
}

func (e *ValidationError) Unwrap() error { return ErrInvalidForm }
