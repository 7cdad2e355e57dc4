package budget

import (
	"errors"
	"fmt"
)

var (
	// ErrNoPayday means the user has not configured a payday yet and has to be
	// routed to onboarding before any cycle operation.
	ErrNoPayday = errors.New("payday is not set")
	// ErrValidation is matched by every *ValidationError.
	ErrValidation = errors.New("validation failed")
	// ErrForbidden is returned when a record belongs to another user.
	ErrForbidden = errors.New("record belongs to another user")
	ErrNotFound  = errors.New("record not found")

	// ErrCycleActive rejects new-cycle wizard steps while a cycle still covers today.
	ErrCycleActive = errors.New("a cycle is already active")
)

// ValidationError carries a user-facing message that callers show verbatim.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Msg: fmt.Sprintf(format, args...)}
}
