package parcel

import (
	"fmt"

	"parcels/internal/pkg/errs"
)

// EventType identifies the kind of handling observation a scan event reports.
// Event types mirror the reachable parcel statuses plus picked_up, which
// moves a parcel from created to in_transit.
type EventType int

const (
	// EventUnknown represents an invalid or undefined event type.
	EventUnknown EventType = iota

	// EventPickedUp reports the initial pickup from the sender.
	EventPickedUp

	// EventArrivedHub reports a scan into a hub.
	EventArrivedHub

	// EventDepartedHub reports a scan out of a hub.
	EventDepartedHub

	// EventOutForDelivery reports the start of a delivery attempt.
	EventOutForDelivery

	// EventDelivered reports a successful delivery.
	EventDelivered

	// EventFailedDelivery reports an unsuccessful delivery attempt.
	EventFailedDelivery

	// EventReturnedToSender reports the parcel being handed back to the sender.
	EventReturnedToSender
)

func getEventTypeStrings() map[EventType]string {
	return map[EventType]string{
		EventUnknown:          "unknown",
		EventPickedUp:         "picked_up",
		EventArrivedHub:       "arrived_hub",
		EventDepartedHub:      "departed_hub",
		EventOutForDelivery:   "out_for_delivery",
		EventDelivered:        "delivered",
		EventFailedDelivery:   "failed_delivery",
		EventReturnedToSender: "returned_to_sender",
	}
}

func getValidEventTypeStrings() map[EventType]string {
	valid := getEventTypeStrings()
	delete(valid, EventUnknown)
	return valid
}

// EventTypeFromString parses the wire representation of an event type.
// Returns an error for unknown strings and for "unknown" itself.
func EventTypeFromString(s string) (EventType, error) {
	for eventType, str := range getValidEventTypeStrings() {
		if str == s {
			return eventType, nil
		}
	}
	return EventUnknown, errs.NewValueIsInvalidErrorWithCause(
		"eventType", fmt.Errorf("%q is not a valid event type", s))
}

// Validate checks if the EventType value is valid.
// EventUnknown (0) and out-of-range values are invalid.
func (e EventType) Validate() error {
	if _, ok := getValidEventTypeStrings()[e]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"eventType", fmt.Errorf("%d is not a valid event type", e))
	}
	return nil
}

// String returns the wire representation of the event type.
// It implements fmt.Stringer; invalid values render as "unknown".
func (e EventType) String() string {
	if str, ok := getEventTypeStrings()[e]; ok {
		return str
	}
	return "unknown"
}
