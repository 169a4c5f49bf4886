package commands

import (
	"errors"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/pkg/guard"
)

var ErrDeactivateAssignmentCommandIsNotConstructed = errors.New(
	"DeactivateAssignmentCommand must be created via NewDeactivateAssignmentCommand constructor",
)

// DeactivateAssignmentCommand represents a request to release a parcel's
// current active route assignment.
type DeactivateAssignmentCommand struct { //nolint:recvcheck //using for validation
	parcelID kernel.UUID

	guard guard.ConstructorGuard
}

// NewDeactivateAssignmentCommand creates a command to release the parcel's
// active assignment.
func NewDeactivateAssignmentCommand(parcelID kernel.UUID) (DeactivateAssignmentCommand, error) {
	command := DeactivateAssignmentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := command.setParcelID(parcelID); err != nil {
		return DeactivateAssignmentCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c DeactivateAssignmentCommand) Validate() error {
	return c.guard.Validate(ErrDeactivateAssignmentCommandIsNotConstructed)
}

// ParcelID returns the parcel whose assignment is released.
func (c DeactivateAssignmentCommand) ParcelID() kernel.UUID { return c.parcelID }

func (c *DeactivateAssignmentCommand) setParcelID(parcelID kernel.UUID) error {
	if err := parcelID.Validate(); err != nil {
		return err
	}
	c.parcelID = parcelID
	return nil
}
