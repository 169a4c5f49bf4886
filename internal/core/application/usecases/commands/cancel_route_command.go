package commands

import (
	"errors"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/pkg/guard"
)

var ErrCancelRouteCommandIsNotConstructed = errors.New(
	"CancelRouteCommand must be created via NewCancelRouteCommand constructor",
)

// CancelRouteCommand represents a request to cancel a route that has not
// finished yet.
type CancelRouteCommand struct { //nolint:recvcheck //using for validation
	routeID kernel.UUID

	guard guard.ConstructorGuard
}

// NewCancelRouteCommand creates a command to cancel a route.
func NewCancelRouteCommand(routeID kernel.UUID) (CancelRouteCommand, error) {
	command := CancelRouteCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := command.setRouteID(routeID); err != nil {
		return CancelRouteCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c CancelRouteCommand) Validate() error {
	return c.guard.Validate(ErrCancelRouteCommandIsNotConstructed)
}

// RouteID returns the route to cancel.
func (c CancelRouteCommand) RouteID() kernel.UUID { return c.routeID }

func (c *CancelRouteCommand) setRouteID(routeID kernel.UUID) error {
	if err := routeID.Validate(); err != nil {
		return err
	}
	c.routeID = routeID
	return nil
}
