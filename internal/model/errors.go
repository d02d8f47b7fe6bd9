package model

import (
	"errors"
	"strings"
)

// FieldError describes a single rejected field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors is returned when one or more fields violate their constraints.
type ValidationErrors []FieldError

func (e *ValidationErrors) Add(field, message string) {
	*e = append(*e, FieldError{Field: field, Message: message})
}

// Merge appends the field errors of err if it is a ValidationErrors.
func (e *ValidationErrors) Merge(err error) {
	var v ValidationErrors
	if errors.As(err, &v) {
		*e = append(*e, v...)
	}
}

// OrNil returns nil for an empty list so callers can return it as an error.
func (e ValidationErrors) OrNil() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

func (e ValidationErrors) Error() string {
	parts := make([]string, 0, len(e))
	for _, fe := range e {
		parts = append(parts, fe.Field+" "+fe.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}
