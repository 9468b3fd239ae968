package booking

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"studiobook/internal/domain"
)

var (
	ErrValidation        = errors.New("validation error")
	ErrNotAvailable      = errors.New("booking not available")
	ErrNotFound          = errors.New("reservation not found")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrUnknownEngineer   = errors.New("unknown engineer")
	ErrStudioBusy        = errors.New("studio is busy, try again")
)

// ValidationError lists offending request fields by json name.
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
	return fmt.Sprintf("validation error (%s)", strings.Join(parts, ", "))
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

func invalid(field, reason string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: reason}}
}

// ConflictError carries the first booking that blocks the requested slot.
type ConflictError struct {
	Conflict domain.Reservation
	Message  string
}

func (e *ConflictError) Error() string { return e.Message }

func (e *ConflictError) Is(target error) bool { return target == ErrNotAvailable }

// TransitionError explains which status change was refused.
type TransitionError struct {
	From   domain.ReservationStatus
	Action string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot %s a %s reservation", e.Action, e.From)
}

func (e *TransitionError) Is(target error) bool { return target == ErrInvalidTransition }
