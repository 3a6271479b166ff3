package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrValidation is matched with errors.Is for any field-level failure.
var ErrValidation = errors.New("validation error")

// ValidationError provides programmatic access to field-level validation
// failures. errors.As(err, &verr) exposes verr.Fields.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return fmt.Sprintf("%s: %s", ErrValidation.Error(), strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}
