package commands

import (
	"errors"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/pkg/guard"
)

var ErrStartRouteCommandIsNotConstructed = errors.New(
	"StartRouteCommand must be created via NewStartRouteCommand constructor",
)

// StartRouteCommand represents a request to start a planned route.
type StartRouteCommand struct { //nolint:recvcheck //using for validation
	routeID kernel.UUID

	guard guard.ConstructorGuard
}

// NewStartRouteCommand creates a command to start a route.
func NewStartRouteCommand(routeID kernel.UUID) (StartRouteCommand, error) {
	command := StartRouteCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := command.setRouteID(routeID); err != nil {
		return StartRouteCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c StartRouteCommand) Validate() error {
	return c.guard.Validate(ErrStartRouteCommandIsNotConstructed)
}

// RouteID returns the route to start.
func (c StartRouteCommand) RouteID() kernel.UUID { return c.routeID }

func (c *StartRouteCommand) setRouteID(routeID kernel.UUID) error {
	if err := routeID.Validate(); err != nil {
		return err
	}
	c.routeID = routeID
	return nil
}
