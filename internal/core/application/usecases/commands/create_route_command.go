package commands

import (
	"errors"
	"time"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/pkg/errs"
	"parcels/internal/pkg/guard"
)

var ErrCreateRouteCommandIsNotConstructed = errors.New(
	"CreateRouteCommand must be created via NewCreateRouteCommand constructor",
)

// CreateRouteCommand represents a request to schedule a delivery route for a
// courier out of a hub on a given date.
type CreateRouteCommand struct { //nolint:recvcheck //using for validation
	routeID   kernel.UUID
	courierID kernel.UUID
	hubID     kernel.UUID
	routeDate time.Time

	guard guard.ConstructorGuard
}

// NewCreateRouteCommand creates a command to schedule a route.
func NewCreateRouteCommand(
	routeID, courierID, hubID kernel.UUID, routeDate time.Time,
) (CreateRouteCommand, error) {
	command := CreateRouteCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setRouteID(routeID),
		command.setCourierID(courierID),
		command.setHubID(hubID),
		command.setRouteDate(routeDate),
	); err != nil {
		return CreateRouteCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateRouteCommand) Validate() error {
	return c.guard.Validate(ErrCreateRouteCommandIsNotConstructed)
}

// RouteID returns the unique identifier for the new route.
func (c CreateRouteCommand) RouteID() kernel.UUID { return c.routeID }

// CourierID returns the courier working the route.
func (c CreateRouteCommand) CourierID() kernel.UUID { return c.courierID }

// HubID returns the hub the route departs from.
func (c CreateRouteCommand) HubID() kernel.UUID { return c.hubID }

// RouteDate returns the date the route is scheduled for.
func (c CreateRouteCommand) RouteDate() time.Time { return c.routeDate }

func (c *CreateRouteCommand) setRouteID(routeID kernel.UUID) error {
	if err := routeID.Validate(); err != nil {
		return err
	}
	c.routeID = routeID
	return nil
}

func (c *CreateRouteCommand) setCourierID(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}
	c.courierID = courierID
	return nil
}

func (c *CreateRouteCommand) setHubID(hubID kernel.UUID) error {
	if err := hubID.Validate(); err != nil {
		return err
	}
	c.hubID = hubID
	return nil
}

func (c *CreateRouteCommand) setRouteDate(routeDate time.Time) error {
	if routeDate.IsZero() {
		return errs.NewValueIsRequiredError("routeDate")
	}
	c.routeDate = routeDate
	return nil
}
