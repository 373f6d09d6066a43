package domain

import (
	"errors"
	"fmt"
)

// ErrMissingField is wrapped by a FieldError when a required value is empty.
var ErrMissingField = errors.New("required value is missing")

// FieldError reports which raw field failed coercion and why.
type FieldError struct {
	Field string
	Value string
	Err   error
}

func (e *FieldError) Error() string {
	if errors.Is(e.Err, ErrMissingField) {
		return fmt.Sprintf("field %s: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("field %s: invalid value %q: %v", e.Field, e.Value, e.Err)
}

func (e *FieldError) Unwrap() error { return e.Err }

func missing(field string) *FieldError {
	return &FieldError{Field: field, Err: ErrMissingField}
}
