package commands

import (
	"errors"
	"time"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/pkg/errs"
	"parcels/internal/pkg/guard"
)

var ErrSubmitProofCommandIsNotConstructed = errors.New(
	"SubmitProofCommand must be created via NewSubmitProofCommand constructor",
)

// SubmitProofCommand represents a request to attach a proof of delivery to a
// parcel, typically ahead of (or instead of inline with) the delivered scan.
type SubmitProofCommand struct { //nolint:recvcheck //using for validation
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

// NewSubmitProofCommand creates a command to submit a proof of delivery.
// courierID, signatureRef, photoRef and location are optional.
func NewSubmitProofCommand(
	parcelID kernel.UUID,
	courierID *kernel.UUID,
	recipientName string,
	signedAt time.Time,
	signatureRef *string,
	photoRef *string,
	location *kernel.GeoPoint,
	notes string,
) (SubmitProofCommand, error) {
	command := SubmitProofCommand{
		courierID:    courierID,
		signatureRef: signatureRef,
		photoRef:     photoRef,
		location:     location,
		notes:        notes,
		guard:        guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setParcelID(parcelID),
		command.setRecipientName(recipientName),
		command.setSignedAt(signedAt),
		command.validateOptionals(),
	); err != nil {
		return SubmitProofCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c SubmitProofCommand) Validate() error {
	return c.guard.Validate(ErrSubmitProofCommandIsNotConstructed)
}

// ParcelID returns the parcel the proof belongs to.
func (c SubmitProofCommand) ParcelID() kernel.UUID { return c.parcelID }

// CourierID returns the delivering courier, or nil.
func (c SubmitProofCommand) CourierID() *kernel.UUID { return c.courierID }

// RecipientName returns the name of the person who received the parcel.
func (c SubmitProofCommand) RecipientName() string { return c.recipientName }

// SignedAt returns when the recipient confirmed receipt.
func (c SubmitProofCommand) SignedAt() time.Time { return c.signedAt }

// SignatureRef returns an optional reference to a stored signature image.
func (c SubmitProofCommand) SignatureRef() *string { return c.signatureRef }

// PhotoRef returns an optional reference to a stored delivery photo.
func (c SubmitProofCommand) PhotoRef() *string { return c.photoRef }

// Location returns the optional geolocation captured at delivery.
func (c SubmitProofCommand) Location() *kernel.GeoPoint { return c.location }

// Notes returns the free-text notes attached to the proof.
func (c SubmitProofCommand) Notes() string { return c.notes }

func (c *SubmitProofCommand) setParcelID(parcelID kernel.UUID) error {
	if err := parcelID.Validate(); err != nil {
		return err
	}
	c.parcelID = parcelID
	return nil
}

func (c *SubmitProofCommand) setRecipientName(recipientName string) error {
	if recipientName == "" {
		return errs.NewValueIsRequiredError("recipientName")
	}
	c.recipientName = recipientName
	return nil
}

func (c *SubmitProofCommand) setSignedAt(signedAt time.Time) error {
	if signedAt.IsZero() {
		return errs.NewValueIsRequiredError("signedAt")
	}
	c.signedAt = signedAt
	return nil
}

func (c *SubmitProofCommand) validateOptionals() error {
	if c.courierID != nil {
		if err := c.courierID.Validate(); err != nil {
			return err
		}
	}
	if c.location != nil {
		if err := c.location.Validate(); err != nil {
			return err
		}
	}
	return nil
}
