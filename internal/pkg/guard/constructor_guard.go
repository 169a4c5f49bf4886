// Package guard implements a defensive construction pattern for domain objects.
// Embedding a ConstructorGuard in a struct makes zero-value instances detectable,
// so objects that bypassed their constructor fail validation instead of
// silently carrying unvalidated state.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific
// validation error is provided for an unconstructed object.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard distinguishes properly constructed domain objects from
// zero values. The guard's internal flag is only set by NewConstructorGuard,
// which constructors call; a struct initialized directly carries the zero
// guard and fails Validate.
//
// Example:
//
//	type TrackingCode struct {
//	    value string
//	    guard guard.ConstructorGuard
//	}
//
//	func NewTrackingCode(value string) (TrackingCode, error) {
//	    if value == "" {
//	        return TrackingCode{}, errors.New("value is required")
//	    }
//	    return TrackingCode{value: value, guard: guard.NewConstructorGuard()}, nil
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard marks an object as properly constructed.
// Call it from the object's constructor only.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil for a properly constructed object. For a zero-value
// guard it returns validationError, or ErrDefaultConstructorGuard when
// validationError is nil.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
