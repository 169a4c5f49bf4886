package parcel

import (
	"errors"
	"time"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/pkg/errs"
	"parcels/internal/pkg/guard"
)

// ErrProofOfDeliveryIsNotConstructed is returned when a ProofOfDelivery
// instance was not created through its constructors.
var ErrProofOfDeliveryIsNotConstructed = errors.New(
	"ProofOfDelivery must be created via NewProofOfDelivery or RestoreProofOfDelivery constructor")

// ProofOfDelivery is the evidence record substantiating a successful
// delivery. A parcel has at most one proof in normal operation, and the
// lifecycle engine refuses a delivered scan event until one exists or is
// submitted atomically with the event.
type ProofOfDelivery struct {
	id            kernel.UUID
	parcelID      kernel.UUID
	courierID     *kernel.UUID
	recipientName string
	signedAt      time.Time
	signatureRef  *string
	photoRef      *string
	location      *kernel.GeoPoint
	notes         string

	guard guard.ConstructorGuard
}

// NewProofOfDelivery creates a proof of delivery.
// courierID, signatureRef, photoRef and location are optional.
func NewProofOfDelivery(
	id kernel.UUID,
	parcelID kernel.UUID,
	courierID *kernel.UUID,
	recipientName string,
	signedAt time.Time,
	signatureRef *string,
	photoRef *string,
	location *kernel.GeoPoint,
	notes string,
) (*ProofOfDelivery, error) {
	proof := &ProofOfDelivery{
		courierID:    courierID,
		signatureRef: signatureRef,
		photoRef:     photoRef,
		location:     location,
		notes:        notes,
		guard:        guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		proof.setID(id),
		proof.setParcelID(parcelID),
		proof.setRecipientName(recipientName),
		proof.setSignedAt(signedAt),
		proof.validateOptionals(),
	); err != nil {
		return nil, err
	}

	return proof, nil
}

// RestoreProofOfDelivery reconstructs a proof of delivery from persistence.
func RestoreProofOfDelivery(
	id kernel.UUID,
	parcelID kernel.UUID,
	courierID *kernel.UUID,
	recipientName string,
	signedAt time.Time,
	signatureRef *string,
	photoRef *string,
	location *kernel.GeoPoint,
	notes string,
) (*ProofOfDelivery, error) {
	return NewProofOfDelivery(
		id, parcelID, courierID, recipientName, signedAt, signatureRef, photoRef, location, notes)
}

// ID returns the proof's unique identifier.
func (p *ProofOfDelivery) ID() kernel.UUID { return p.id }

// ParcelID returns the identifier of the delivered parcel.
func (p *ProofOfDelivery) ParcelID() kernel.UUID { return p.parcelID }

// CourierID returns the delivering courier, or nil when unknown.
func (p *ProofOfDelivery) CourierID() *kernel.UUID { return p.courierID }

// RecipientName returns the name of the person who received the parcel.
func (p *ProofOfDelivery) RecipientName() string { return p.recipientName }

// SignedAt returns when the recipient confirmed receipt.
func (p *ProofOfDelivery) SignedAt() time.Time { return p.signedAt }

// SignatureRef returns an optional reference to a stored signature image.
func (p *ProofOfDelivery) SignatureRef() *string { return p.signatureRef }

// PhotoRef returns an optional reference to a stored delivery photo.
func (p *ProofOfDelivery) PhotoRef() *string { return p.photoRef }

// Location returns the optional geolocation captured at delivery.
func (p *ProofOfDelivery) Location() *kernel.GeoPoint { return p.location }

// Notes returns the free-text notes attached to the proof.
func (p *ProofOfDelivery) Notes() string { return p.notes }

// Validate ensures the proof was created through a constructor.
func (p *ProofOfDelivery) Validate() error {
	if p == nil {
		return ErrProofOfDeliveryIsNotConstructed
	}
	return p.guard.Validate(ErrProofOfDeliveryIsNotConstructed)
}

func (p *ProofOfDelivery) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *ProofOfDelivery) setParcelID(parcelID kernel.UUID) error {
	if err := parcelID.Validate(); err != nil {
		return err
	}
	p.parcelID = parcelID
	return nil
}

func (p *ProofOfDelivery) setRecipientName(recipientName string) error {
	if recipientName == "" {
		return errs.NewValueIsRequiredError("recipientName")
	}
	p.recipientName = recipientName
	return nil
}

func (p *ProofOfDelivery) setSignedAt(signedAt time.Time) error {
	if signedAt.IsZero() {
		return errs.NewValueIsRequiredError("signedAt")
	}
	p.signedAt = signedAt
	return nil
}

func (p *ProofOfDelivery) validateOptionals() error {
	if p.courierID != nil {
		if err := p.courierID.Validate(); err != nil {
			return err
		}
	}
	if p.location != nil {
		if err := p.location.Validate(); err != nil {
			return err
		}
	}
	return nil
}
