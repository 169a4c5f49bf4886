package parcel

import (
	"fmt"

	"parcels/internal/pkg/errs"
)

// Status represents the lifecycle state of a parcel.
// It implements a state machine whose transitions are driven exclusively by
// scan events, ensuring parcels follow the physical handling workflow.
//
// State transitions:
//
//	created ──> in_transit ──> arrived_hub ──> departed_hub
//	                             │    ▲            │
//	                             │    └────────────┘
//	                             │         (next hub)
//	                             ▼
//	                       out_for_delivery ──> delivered
//	                             ▲    │
//	                             │    ▼
//	                       failed_delivery ──> returned_to_sender
//
// delivered and returned_to_sender are terminal. failed_delivery is not:
// a retry leads back to out_for_delivery, or forward to returned_to_sender.
//
// Status is a value object; transition validation lives in Apply so an
// illegal (status, event) pair is a construction-time error, never a silent
// string comparison.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Created is the initial status assigned when a shipment is registered.
	Created

	// InTransit indicates the parcel has been picked up and is moving
	// toward its first hub.
	InTransit

	// ArrivedHub indicates the parcel was scanned into a hub.
	ArrivedHub

	// DepartedHub indicates the parcel was scanned out of a hub toward
	// the next hub.
	DepartedHub

	// OutForDelivery indicates a courier is carrying the parcel to the
	// recipient.
	OutForDelivery

	// Delivered is a terminal status. It requires a proof of delivery.
	Delivered

	// FailedDelivery indicates an unsuccessful delivery attempt.
	// The parcel may be retried or returned to the sender.
	FailedDelivery

	// ReturnedToSender is a terminal status reached after abandoned
	// delivery attempts.
	ReturnedToSender
)

// getStatusStrings returns a map of Status values to their string representations.
// All statuses are included for string conversion.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:          "unknown",
		Created:          "created",
		InTransit:        "in_transit",
		ArrivedHub:       "arrived_hub",
		DepartedHub:      "departed_hub",
		OutForDelivery:   "out_for_delivery",
		Delivered:        "delivered",
		FailedDelivery:   "failed_delivery",
		ReturnedToSender: "returned_to_sender",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
// Unknown is excluded to support validation.
func getValidStatusStrings() map[Status]string {
	valid := getStatusStrings()
	delete(valid, Unknown)
	return valid
}

// StatusFromString parses the wire representation of a status.
// Returns an error for unknown strings and for "unknown" itself.
func StatusFromString(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause(
		"status", fmt.Errorf("%q is not a valid status", s))
}

// Validate checks if the Status value is valid.
// Unknown (0) and out-of-range values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire representation of the status.
// It implements fmt.Stringer and is safe to call on any Status value;
// invalid values render as "unknown".
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether the status admits no further transitions.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == ReturnedToSender
}

// Apply computes the successor status for a scan event observed while the
// parcel is in status s. It returns an InvalidTransitionError naming the
// offending (status, event type) pair when the event is not legal for s —
// including every event in a terminal status.
//
// Apply encodes the transition table only. The proof-of-delivery guard on
// delivered events is enforced one level up, where the proof record is
// available.
func (s Status) Apply(event EventType) (Status, error) {
	if err := event.Validate(); err != nil {
		return Unknown, err
	}

	//nolint:exhaustive // terminal and unknown statuses fall through to rejection
	switch s {
	case Created:
		if event == EventPickedUp {
			return InTransit, nil
		}
	case InTransit:
		if event == EventArrivedHub {
			return ArrivedHub, nil
		}
	case ArrivedHub:
		switch event {
		case EventDepartedHub:
			return DepartedHub, nil
		case EventOutForDelivery:
			return OutForDelivery, nil
		default:
		}
	case DepartedHub:
		switch event {
		case EventArrivedHub:
			return ArrivedHub, nil
		case EventOutForDelivery:
			return OutForDelivery, nil
		default:
		}
	case OutForDelivery:
		switch event {
		case EventDelivered:
			return Delivered, nil
		case EventFailedDelivery:
			return FailedDelivery, nil
		default:
		}
	case FailedDelivery:
		switch event {
		case EventOutForDelivery:
			return OutForDelivery, nil
		case EventReturnedToSender:
			return ReturnedToSender, nil
		default:
		}
	}

	return Unknown, NewInvalidTransitionError(s, event)
}

// CanApply reports whether the event is legal for the status without
// performing the transition.
func (s Status) CanApply(event EventType) bool {
	_, err := s.Apply(event)
	return err == nil
}
