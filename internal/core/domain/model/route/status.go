package route

import (
	"fmt"

	"parcels/internal/pkg/errs"
)

// Status represents the lifecycle state of a courier route.
//
// State transitions:
//
//	planned ──> out_for_delivery ──> completed
//	   │               │
//	   └───────────────┴──> canceled
//
// completed and canceled are terminal.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// Planned is the initial status of a scheduled route.
	Planned

	// OutForDelivery indicates the courier has started working the route.
	OutForDelivery

	// Completed is a terminal status for a finished route.
	Completed

	// Canceled is a terminal status for an abandoned route.
	Canceled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:        "unknown",
		Planned:        "planned",
		OutForDelivery: "out_for_delivery",
		Completed:      "completed",
		Canceled:       "canceled",
	}
}

func getValidStatusStrings() map[Status]string {
	valid := getStatusStrings()
	delete(valid, Unknown)
	return valid
}

// StatusFromString parses the wire representation of a route status.
// Returns an error for unknown strings and for "unknown" itself.
func StatusFromString(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause(
		"status", fmt.Errorf("%q is not a valid route status", s))
}

// Validate checks if the Status value is valid.
// Unknown (0) and out-of-range values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"status", fmt.Errorf("%d is not a valid route status", s))
	}
	return nil
}

// String returns the wire representation of the status.
// It implements fmt.Stringer; invalid values render as "unknown".
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether the status admits no further transitions.
func (s Status) IsTerminal() bool {
	return s == Completed || s == Canceled
}
