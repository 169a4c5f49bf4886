package parcel

import (
	"errors"
	"fmt"
	"time"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/pkg/errs"
)

var (
	// ErrParcelIsNotConstructed is returned when a Parcel instance was not created through
	// the NewParcel or RestoreParcel factory methods. This ensures all parcels are properly validated.
	ErrParcelIsNotConstructed = errors.New("Parcel must be created via NewParcel or RestoreParcel constructor")

	// ErrDeliveredAtInconsistent is returned when a parcel's delivered timestamp
	// disagrees with its status: deliveredAt must be set if and only if the
	// status is delivered.
	ErrDeliveredAtInconsistent = errors.New("deliveredAt must be set if and only if status is delivered")
)

// Parcel represents a registered shipment. It is the aggregate root that owns
// the parcel's status field; status changes happen only through Advance,
// driven by validated scan events.
//
// Parcel follows these invariants:
//   - Tracking code is globally unique, assigned at creation, never mutated
//   - deliveredAt is set if and only if status is delivered
//   - Status transitions follow the scan-driven state machine
//   - Parcels are archived, never deleted, to preserve the audit trail
//   - Can only be created through NewParcel or RestoreParcel
type Parcel struct {
	id           kernel.UUID
	trackingCode kernel.TrackingCode

	senderID    kernel.UUID
	recipientID kernel.UUID

	originHubID      kernel.UUID
	destinationHubID kernel.UUID

	// zone codes are optional reference data from the hub directory
	originZone      *string
	destinationZone *string

	weightGrams        int
	declaredValueCents int64

	status      Status
	createdAt   time.Time
	deliveredAt *time.Time
	slaDueAt    *time.Time

	archived bool

	// version backs the optimistic concurrency check in the repository
	version int64

	isConstructed bool
}

// NewParcel registers a new shipment in created status with version 1.
// originZone, destinationZone and slaDueAt are optional.
func NewParcel(
	id kernel.UUID,
	trackingCode kernel.TrackingCode,
	senderID kernel.UUID,
	recipientID kernel.UUID,
	originHubID kernel.UUID,
	destinationHubID kernel.UUID,
	originZone *string,
	destinationZone *string,
	weightGrams int,
	declaredValueCents int64,
	createdAt time.Time,
	slaDueAt *time.Time,
) (*Parcel, error) {
	parcel := &Parcel{
		originZone:      originZone,
		destinationZone: destinationZone,
		slaDueAt:        slaDueAt,
		status:          Created,
		version:         1,
		isConstructed:   true,
	}

	if err := errors.Join(
		parcel.setID(id),
		parcel.setTrackingCode(trackingCode),
		parcel.setParties(senderID, recipientID),
		parcel.setHubs(originHubID, destinationHubID),
		parcel.setWeightGrams(weightGrams),
		parcel.setDeclaredValueCents(declaredValueCents),
		parcel.setCreatedAt(createdAt),
	); err != nil {
		return nil, err
	}

	return parcel, nil
}

// RestoreParcel reconstructs a parcel from persistence.
// It re-checks the deliveredAt/status invariant so inconsistent rows are
// rejected at the boundary instead of propagating into the domain.
func RestoreParcel(
	id kernel.UUID,
	trackingCode kernel.TrackingCode,
	senderID kernel.UUID,
	recipientID kernel.UUID,
	originHubID kernel.UUID,
	destinationHubID kernel.UUID,
	originZone *string,
	destinationZone *string,
	weightGrams int,
	declaredValueCents int64,
	status Status,
	createdAt time.Time,
	deliveredAt *time.Time,
	slaDueAt *time.Time,
	archived bool,
	version int64,
) (*Parcel, error) {
	parcel, err := NewParcel(
		id, trackingCode, senderID, recipientID, originHubID, destinationHubID,
		originZone, destinationZone, weightGrams, declaredValueCents, createdAt, slaDueAt)
	if err != nil {
		return nil, err
	}

	if err = status.Validate(); err != nil {
		return nil, err
	}
	if (deliveredAt != nil) != (status == Delivered) {
		return nil, ErrDeliveredAtInconsistent
	}
	if version < 1 {
		return nil, errs.NewVersionIsInvalidErrorWithCause(
			"version", fmt.Errorf("%d is not a positive version", version))
	}

	parcel.status = status
	parcel.deliveredAt = deliveredAt
	parcel.archived = archived
	parcel.version = version
	return parcel, nil
}

// Advance applies an accepted, in-order scan event to the parcel.
// It validates the transition against the current status, updates the status
// and sets deliveredAt when the parcel reaches delivered. The caller is
// responsible for the proof-of-delivery guard and for late-event replay;
// Advance is only called for events that move the current status.
func (p *Parcel) Advance(event EventType, at time.Time) error {
	newStatus, err := p.status.Apply(event)
	if err != nil {
		return err
	}

	p.status = newStatus
	if newStatus == Delivered {
		eventTime := at
		p.deliveredAt = &eventTime
	}
	return nil
}

// Archive soft-deletes the parcel. The record stays in place for audit.
func (p *Parcel) Archive() {
	p.archived = true
}

// IsEqual compares two parcels by their unique identifiers.
func (p *Parcel) IsEqual(other *Parcel) bool {
	return other != nil && p.id.IsEqual(other.id)
}

// ID returns the parcel's unique identifier.
func (p *Parcel) ID() kernel.UUID { return p.id }

// TrackingCode returns the immutable tracking code assigned at registration.
func (p *Parcel) TrackingCode() kernel.TrackingCode { return p.trackingCode }

// SenderID returns the registered sender reference.
func (p *Parcel) SenderID() kernel.UUID { return p.senderID }

// RecipientID returns the registered recipient reference.
func (p *Parcel) RecipientID() kernel.UUID { return p.recipientID }

// OriginHubID returns the hub the parcel enters the network through.
func (p *Parcel) OriginHubID() kernel.UUID { return p.originHubID }

// DestinationHubID returns the hub closest to the recipient.
func (p *Parcel) DestinationHubID() kernel.UUID { return p.destinationHubID }

// OriginZone returns the optional origin zone code.
func (p *Parcel) OriginZone() *string { return p.originZone }

// DestinationZone returns the optional destination zone code.
func (p *Parcel) DestinationZone() *string { return p.destinationZone }

// WeightGrams returns the parcel weight in grams.
func (p *Parcel) WeightGrams() int { return p.weightGrams }

// DeclaredValueCents returns the declared value in cents.
func (p *Parcel) DeclaredValueCents() int64 { return p.declaredValueCents }

// Status returns the current lifecycle status.
func (p *Parcel) Status() Status { return p.status }

// CreatedAt returns when the shipment was registered.
func (p *Parcel) CreatedAt() time.Time { return p.createdAt }

// DeliveredAt returns the delivery timestamp, or nil while undelivered.
func (p *Parcel) DeliveredAt() *time.Time { return p.deliveredAt }

// SlaDueAt returns the optional delivery deadline.
func (p *Parcel) SlaDueAt() *time.Time { return p.slaDueAt }

// IsArchived reports whether the parcel was soft-deleted.
func (p *Parcel) IsArchived() bool { return p.archived }

// Version returns the optimistic concurrency version of the loaded snapshot.
func (p *Parcel) Version() int64 { return p.version }

// Validate ensures the Parcel instance was properly constructed.
func (p *Parcel) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrParcelIsNotConstructed
	}
	return nil
}

func (p *Parcel) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Parcel) setTrackingCode(trackingCode kernel.TrackingCode) error {
	if err := trackingCode.Validate(); err != nil {
		return err
	}
	p.trackingCode = trackingCode
	return nil
}

func (p *Parcel) setParties(senderID, recipientID kernel.UUID) error {
	if err := senderID.Validate(); err != nil {
		return err
	}
	if err := recipientID.Validate(); err != nil {
		return err
	}
	p.senderID = senderID
	p.recipientID = recipientID
	return nil
}

func (p *Parcel) setHubs(originHubID, destinationHubID kernel.UUID) error {
	if err := originHubID.Validate(); err != nil {
		return err
	}
	if err := destinationHubID.Validate(); err != nil {
		return err
	}
	p.originHubID = originHubID
	p.destinationHubID = destinationHubID
	return nil
}

func (p *Parcel) setWeightGrams(weightGrams int) error {
	if weightGrams <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"weightGrams", fmt.Errorf("%d is not greater than 0", weightGrams))
	}
	p.weightGrams = weightGrams
	return nil
}

func (p *Parcel) setDeclaredValueCents(declaredValueCents int64) error {
	if declaredValueCents < 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"declaredValueCents", fmt.Errorf("%d is negative", declaredValueCents))
	}
	p.declaredValueCents = declaredValueCents
	return nil
}

func (p *Parcel) setCreatedAt(createdAt time.Time) error {
	if createdAt.IsZero() {
		return errs.NewValueIsRequiredError("createdAt")
	}
	p.createdAt = createdAt
	return nil
}
