package parcel

import (
	"errors"
	"time"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/pkg/errs"
	"parcels/internal/pkg/guard"
)

// ErrScanEventIsNotConstructed is returned when a ScanEvent instance was not
// created through NewScanEvent or RestoreScanEvent.
var ErrScanEventIsNotConstructed = errors.New(
	"ScanEvent must be created via NewScanEvent or RestoreScanEvent constructor")

// RejectionReason is the machine-readable code recorded on a scan event that
// was logged but not accepted.
type RejectionReason string

const (
	// ReasonNone marks an event that was not rejected.
	ReasonNone RejectionReason = ""

	// ReasonInvalidTransition marks an event whose type is not legal for the
	// parcel status it was validated against.
	ReasonInvalidTransition RejectionReason = "invalid_transition"

	// ReasonMissingProofOfDelivery marks a delivered event that arrived
	// without an existing or inline proof of delivery.
	ReasonMissingProofOfDelivery RejectionReason = "missing_proof_of_delivery"
)

// ScanEvent is a single timestamped observation of a parcel's handling.
//
// The scan log is append-only and records what was reported, not only what
// was accepted: an event that failed transition validation is still persisted,
// carrying accepted=false and a rejection reason, so the audit trail separates
// "what was reported" from "what changed state".
//
// An event may originate from a fixed hub scanner, a courier device, or
// neither (system-generated); hub and courier references are therefore both
// optional and may both be absent.
type ScanEvent struct {
	id        kernel.UUID
	parcelID  kernel.UUID
	hubID     *kernel.UUID
	courierID *kernel.UUID
	eventType EventType
	eventTime time.Time
	notes     string

	// Outcome of lifecycle validation. accepted=false means the event was
	// logged for audit only; accepted=true with applied=false means the
	// event was legal at its timestamp but arrived late and did not move
	// the parcel's current status.
	accepted bool
	applied  bool
	reason   RejectionReason

	recordedAt time.Time

	guard guard.ConstructorGuard
}

// NewScanEvent creates a pending scan event, before lifecycle validation has
// decided its outcome. hubID and courierID identify the event source and may
// both be nil. eventTime is when the handling was observed; recordedAt is
// when the system received the report.
func NewScanEvent(
	id kernel.UUID,
	parcelID kernel.UUID,
	eventType EventType,
	eventTime time.Time,
	hubID *kernel.UUID,
	courierID *kernel.UUID,
	notes string,
	recordedAt time.Time,
) (*ScanEvent, error) {
	event := &ScanEvent{
		hubID:      hubID,
		courierID:  courierID,
		notes:      notes,
		recordedAt: recordedAt,
		guard:      guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		event.setID(id),
		event.setParcelID(parcelID),
		event.setEventType(eventType),
		event.setEventTime(eventTime),
		event.validateSources(),
	); err != nil {
		return nil, err
	}

	return event, nil
}

// RestoreScanEvent reconstructs a scan event from persistence, outcome included.
func RestoreScanEvent(
	id kernel.UUID,
	parcelID kernel.UUID,
	eventType EventType,
	eventTime time.Time,
	hubID *kernel.UUID,
	courierID *kernel.UUID,
	notes string,
	accepted bool,
	applied bool,
	reason RejectionReason,
	recordedAt time.Time,
) (*ScanEvent, error) {
	event, err := NewScanEvent(id, parcelID, eventType, eventTime, hubID, courierID, notes, recordedAt)
	if err != nil {
		return nil, err
	}

	if applied && !accepted {
		return nil, errs.NewValueIsInvalidError("applied event must be accepted")
	}
	if accepted && reason != ReasonNone {
		return nil, errs.NewValueIsInvalidError("accepted event cannot carry a rejection reason")
	}

	event.accepted = accepted
	event.applied = applied
	event.reason = reason
	return event, nil
}

// MarkAccepted records that the event passed lifecycle validation.
// applied reports whether it moved the parcel's current status; a late event
// that was legal at its own timestamp is accepted but not applied.
func (e *ScanEvent) MarkAccepted(applied bool) {
	e.accepted = true
	e.applied = applied
	e.reason = ReasonNone
}

// MarkRejected records that the event failed lifecycle validation.
// The event stays in the log for audit with the given reason.
func (e *ScanEvent) MarkRejected(reason RejectionReason) {
	e.accepted = false
	e.applied = false
	e.reason = reason
}

// ID returns the event's unique identifier.
func (e *ScanEvent) ID() kernel.UUID { return e.id }

// ParcelID returns the identifier of the parcel the event belongs to.
func (e *ScanEvent) ParcelID() kernel.UUID { return e.parcelID }

// HubID returns the originating hub, or nil for courier or system events.
func (e *ScanEvent) HubID() *kernel.UUID { return e.hubID }

// CourierID returns the originating courier, or nil for hub or system events.
func (e *ScanEvent) CourierID() *kernel.UUID { return e.courierID }

// Type returns the event type.
func (e *ScanEvent) Type() EventType { return e.eventType }

// Time returns when the handling was observed.
func (e *ScanEvent) Time() time.Time { return e.eventTime }

// Notes returns the free-text notes attached by the scanner.
func (e *ScanEvent) Notes() string { return e.notes }

// IsAccepted reports whether the event passed lifecycle validation.
func (e *ScanEvent) IsAccepted() bool { return e.accepted }

// IsApplied reports whether the event moved the parcel's current status.
func (e *ScanEvent) IsApplied() bool { return e.applied }

// Reason returns the rejection reason, or ReasonNone.
func (e *ScanEvent) Reason() RejectionReason { return e.reason }

// RecordedAt returns when the system received the report.
func (e *ScanEvent) RecordedAt() time.Time { return e.recordedAt }

// Validate ensures the event was created through a constructor.
func (e *ScanEvent) Validate() error {
	if e == nil {
		return ErrScanEventIsNotConstructed
	}
	return e.guard.Validate(ErrScanEventIsNotConstructed)
}

func (e *ScanEvent) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	e.id = id
	return nil
}

func (e *ScanEvent) setParcelID(parcelID kernel.UUID) error {
	if err := parcelID.Validate(); err != nil {
		return err
	}
	e.parcelID = parcelID
	return nil
}

func (e *ScanEvent) setEventType(eventType EventType) error {
	if err := eventType.Validate(); err != nil {
		return err
	}
	e.eventType = eventType
	return nil
}

func (e *ScanEvent) setEventTime(eventTime time.Time) error {
	if eventTime.IsZero() {
		return errs.NewValueIsRequiredError("eventTime")
	}
	e.eventTime = eventTime
	return nil
}

func (e *ScanEvent) validateSources() error {
	if e.hubID != nil {
		if err := e.hubID.Validate(); err != nil {
			return err
		}
	}
	if e.courierID != nil {
		if err := e.courierID.Validate(); err != nil {
			return err
		}
	}
	return nil
}
