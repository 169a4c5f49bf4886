package parcel

import (
	"errors"
	"fmt"
)

// ErrInvalidTransition is the wrapping target for InvalidTransitionError.
// Callers classify transition rejections with errors.Is against this value.
var ErrInvalidTransition = errors.New("invalid status transition")

// InvalidTransitionError reports a scan event that is not legal for the
// parcel status it was validated against. It names the offending pair so the
// caller can surface a precise rejection reason.
type InvalidTransitionError struct {
	From  Status
	Event EventType
}

// NewInvalidTransitionError creates an InvalidTransitionError for the given pair.
func NewInvalidTransitionError(from Status, event EventType) *InvalidTransitionError {
	return &InvalidTransitionError{From: from, Event: event}
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: event %s is not allowed in status %s",
		ErrInvalidTransition, e.Event, e.From)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}
