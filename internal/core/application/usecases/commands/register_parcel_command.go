package commands

import (
	"errors"
	"time"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/pkg/guard"
)

var (
	ErrRegisterParcelCommandIsNotConstructed = errors.New(
		"RegisterParcelCommand must be created via NewRegisterParcelCommand constructor",
	)
	ErrWeightIsInvalid        = errors.New("weight must be greater than 0 grams")
	ErrDeclaredValueIsInvalid = errors.New("declared value must not be negative")
)

// RegisterParcelCommand represents a request to register a new shipment.
// The engine assigns the tracking code; callers supply the parties, the hub
// endpoints and the physical attributes.
//
// Example:
//
//	parcelID := kernel.NewUUID()
//	cmd, err := NewRegisterParcelCommand(
//	    parcelID, senderID, recipientID, originHubID, destinationHubID,
//	    nil, nil, 1200, 5000, nil)
//	if err != nil {
//	    return fmt.Errorf("invalid parcel data: %w", err)
//	}
//
//	handler := NewRegisterParcelCommandHandler(uowFactory)
//	trackingCode, err := handler.Handle(ctx, cmd)
type RegisterParcelCommand struct { //nolint:recvcheck //using for validation
	parcelID         kernel.UUID
	senderID         kernel.UUID
	recipientID      kernel.UUID
	originHubID      kernel.UUID
	destinationHubID kernel.UUID

	originZone      *string
	destinationZone *string

	weightGrams        int
	declaredValueCents int64
	slaDueAt           *time.Time

	guard guard.ConstructorGuard
}

// NewRegisterParcelCommand creates a command to register a new parcel.
// Validates identifiers, positive weight and non-negative declared value.
func NewRegisterParcelCommand(
	parcelID kernel.UUID,
	senderID kernel.UUID,
	recipientID kernel.UUID,
	originHubID kernel.UUID,
	destinationHubID kernel.UUID,
	originZone *string,
	destinationZone *string,
	weightGrams int,
	declaredValueCents int64,
	slaDueAt *time.Time,
) (RegisterParcelCommand, error) {
	command := RegisterParcelCommand{
		originZone:      originZone,
		destinationZone: destinationZone,
		slaDueAt:        slaDueAt,
		guard:           guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setIDs(parcelID, senderID, recipientID, originHubID, destinationHubID),
		command.setWeightGrams(weightGrams),
		command.setDeclaredValueCents(declaredValueCents),
	); err != nil {
		return RegisterParcelCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c RegisterParcelCommand) Validate() error {
	return c.guard.Validate(ErrRegisterParcelCommandIsNotConstructed)
}

// ParcelID returns the unique identifier for the new parcel.
func (c RegisterParcelCommand) ParcelID() kernel.UUID { return c.parcelID }

// SenderID returns the registered sender reference.
func (c RegisterParcelCommand) SenderID() kernel.UUID { return c.senderID }

// RecipientID returns the registered recipient reference.
func (c RegisterParcelCommand) RecipientID() kernel.UUID { return c.recipientID }

// OriginHubID returns the hub the parcel enters the network through.
func (c RegisterParcelCommand) OriginHubID() kernel.UUID { return c.originHubID }

// DestinationHubID returns the hub closest to the recipient.
func (c RegisterParcelCommand) DestinationHubID() kernel.UUID { return c.destinationHubID }

// OriginZone returns the optional origin zone code.
func (c RegisterParcelCommand) OriginZone() *string { return c.originZone }

// DestinationZone returns the optional destination zone code.
func (c RegisterParcelCommand) DestinationZone() *string { return c.destinationZone }

// WeightGrams returns the parcel weight in grams.
func (c RegisterParcelCommand) WeightGrams() int { return c.weightGrams }

// DeclaredValueCents returns the declared value in cents.
func (c RegisterParcelCommand) DeclaredValueCents() int64 { return c.declaredValueCents }

// SlaDueAt returns the optional delivery deadline.
func (c RegisterParcelCommand) SlaDueAt() *time.Time { return c.slaDueAt }

func (c *RegisterParcelCommand) setIDs(
	parcelID, senderID, recipientID, originHubID, destinationHubID kernel.UUID,
) error {
	if err := errors.Join(
		parcelID.Validate(),
		senderID.Validate(),
		recipientID.Validate(),
		originHubID.Validate(),
		destinationHubID.Validate(),
	); err != nil {
		return err
	}

	c.parcelID = parcelID
	c.senderID = senderID
	c.recipientID = recipientID
	c.originHubID = originHubID
	c.destinationHubID = destinationHubID
	return nil
}

func (c *RegisterParcelCommand) setWeightGrams(weightGrams int) error {
	if weightGrams <= 0 {
		return ErrWeightIsInvalid
	}

	c.weightGrams = weightGrams
	return nil
}

func (c *RegisterParcelCommand) setDeclaredValueCents(declaredValueCents int64) error {
	if declaredValueCents < 0 {
		return ErrDeclaredValueIsInvalid
	}

	c.declaredValueCents = declaredValueCents
	return nil
}
