// Package service implements the front desk operations on top of the
// store interfaces.  Every time-dependent decision reads a clock.Clock.
package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrNotFound means the id, plate or unit matched no record.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyCheckedOut is returned for a second check-out of the same
	// visit.  The stored check-out time is left unchanged.
	ErrAlreadyCheckedOut = errors.New("visitor already checked out")

	// ErrStorageUnavailable wraps backing store failures.  Callers should
	// treat it as transient.
	ErrStorageUnavailable = errors.New("storage unavailable")
)

// ValidationError lists the request fields that were missing or malformed.
// Nothing is written when it is returned.
type ValidationError struct {
	FieldErrors map[string]string
}

func (v *ValidationError) Error() string {
	if v == nil || len(v.FieldErrors) == 0 {
		return "validation failed"
	}
	fields := make([]string, 0, len(v.FieldErrors))
	for f := range v.FieldErrors {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+" "+v.FieldErrors[f])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (v *ValidationError) add(field, message string) {
	if v.FieldErrors == nil {
		v.FieldErrors = make(map[string]string)
	}
	v.FieldErrors[field] = message
}

func invalidField(field, message string) *ValidationError {
	v := &ValidationError{}
	v.add(field, message)
	return v
}

// storageError tags a store failure as ErrStorageUnavailable while keeping
// the cause in the chain.  Context cancellation passes through untouched.
func storageError(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return fmt.Errorf("%s: %w: %w", op, ErrStorageUnavailable, err)
}
