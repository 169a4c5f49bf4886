package commands

import (
	"errors"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/pkg/guard"
)

var ErrAssignRouteCommandIsNotConstructed = errors.New(
	"AssignRouteCommand must be created via NewAssignRouteCommand constructor",
)

// AssignRouteCommand represents a request to bind a parcel to a route.
//
// Example:
//
//	cmd, err := NewAssignRouteCommand(parcelID, routeID)
//	if err != nil {
//	    return fmt.Errorf("invalid assignment request: %w", err)
//	}
//
//	handler := NewAssignRouteCommandHandler(uowFactory)
//	assignment, err := handler.Handle(ctx, cmd)
type AssignRouteCommand struct { //nolint:recvcheck //using for validation
	parcelID kernel.UUID
	routeID  kernel.UUID

	guard guard.ConstructorGuard
}

// NewAssignRouteCommand creates a command to assign a parcel to a route.
func NewAssignRouteCommand(parcelID, routeID kernel.UUID) (AssignRouteCommand, error) {
	command := AssignRouteCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setParcelID(parcelID),
		command.setRouteID(routeID),
	); err != nil {
		return AssignRouteCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c AssignRouteCommand) Validate() error {
	return c.guard.Validate(ErrAssignRouteCommandIsNotConstructed)
}

// ParcelID returns the parcel to assign.
func (c AssignRouteCommand) ParcelID() kernel.UUID { return c.parcelID }

// RouteID returns the route the parcel is assigned to.
func (c AssignRouteCommand) RouteID() kernel.UUID { return c.routeID }

func (c *AssignRouteCommand) setParcelID(parcelID kernel.UUID) error {
	if err := parcelID.Validate(); err != nil {
		return err
	}
	c.parcelID = parcelID
	return nil
}

func (c *AssignRouteCommand) setRouteID(routeID kernel.UUID) error {
	if err := routeID.Validate(); err != nil {
		return err
	}
	c.routeID = routeID
	return nil
}
