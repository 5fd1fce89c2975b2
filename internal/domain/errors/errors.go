package errors

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrNotAvailable      = errors.New("order not available")
	ErrForbidden         = errors.New("forbidden")
	ErrConflict          = errors.New("conflict")
	ErrAlreadyExists     = errors.New("already exists")
	ErrInvalidAmount     = errors.New("invalid amount")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrInvalidStatus     = errors.New("invalid order status")

	ErrCapacityReached   = fmt.Errorf("%w: volunteer reached active order limit", ErrConflict)
	ErrInvalidTransition = fmt.Errorf("%w: status transition not allowed", ErrConflict)
)

var known = []error{
	ErrNotFound,
	ErrNotAvailable,
	ErrForbidden,
	ErrConflict,
	ErrAlreadyExists,
	ErrInvalidAmount,
	ErrInsufficientFunds,
	ErrInvalidStatus,
}

// ValidationDetail names the offending field of a rejected input.
type ValidationDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError reports malformed input before any state is touched.
type ValidationError struct {
	Message string
	Details []ValidationDetail
}

func (e *ValidationError) Error() string {
	if len(e.Details) == 0 {
		return e.Message
	}
	parts := make([]string, 0, len(e.Details))
	for _, d := range e.Details {
		parts = append(parts, d.Field+": "+d.Message)
	}
	return e.Message + " (" + strings.Join(parts, "; ") + ")"
}

func NewValidationError(message string, details ...ValidationDetail) *ValidationError {
	return &ValidationError{Message: message, Details: details}
}

func IsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// InternalError wraps an unexpected failure, usually from storage, with the operation it broke.
type InternalError struct {
	Op    string
	Cause error
}

func (e *InternalError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Cause)
	}
	return e.Op
}

func (e *InternalError) Unwrap() error {
	return e.Cause
}

// Wrap passes domain errors through untouched and wraps everything else in InternalError.
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	if IsDomain(err) {
		return err
	}
	var ie *InternalError
	if errors.As(err, &ie) {
		return err
	}
	return &InternalError{Op: op, Cause: err}
}

// IsDomain reports whether err belongs to the failure taxonomy callers are expected to handle.
func IsDomain(err error) bool {
	if _, ok := IsValidationError(err); ok {
		return true
	}
	for _, target := range known {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
