package route

import (
	"errors"
	"fmt"
	"time"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/pkg/errs"
)

var (
	// ErrRouteIsNotConstructed is returned when a Route instance was not created
	// through the NewRoute or RestoreRoute factory methods.
	ErrRouteIsNotConstructed = errors.New("Route must be created via NewRoute or RestoreRoute constructor")

	// ErrRouteAlreadyStarted is returned when starting a route that is not planned.
	ErrRouteAlreadyStarted = errors.New("route can only be started from planned status")

	// ErrRouteNotStarted is returned when completing a route that is not out for delivery.
	ErrRouteNotStarted = errors.New("route can only be completed from out_for_delivery status")

	// ErrRouteIsTerminal is returned when canceling a completed or canceled route.
	ErrRouteIsTerminal = errors.New("route is already completed or canceled")
)

// Route is a courier's planned set of delivery stops for a given date.
// A courier works at most one route per date; the pair (courier, route date)
// is unique.
//
// Route aggregates parcel assignments indirectly: assignments reference the
// route by id and are owned by the parcel side of the model. Completing or
// canceling a route is the signal for the assignment manager to release the
// parcels still bound to it.
type Route struct {
	id        kernel.UUID
	courierID kernel.UUID
	hubID     kernel.UUID
	routeDate time.Time

	status    Status
	startedAt *time.Time
	endedAt   *time.Time

	isConstructed bool
}

// NewRoute schedules a route for a courier out of a hub on the given date
// in planned status. routeDate carries date precision only; any time-of-day
// component is truncated.
func NewRoute(
	id kernel.UUID,
	courierID kernel.UUID,
	hubID kernel.UUID,
	routeDate time.Time,
) (*Route, error) {
	route := &Route{
		status:        Planned,
		isConstructed: true,
	}

	if err := errors.Join(
		route.setID(id),
		route.setCourierID(courierID),
		route.setHubID(hubID),
		route.setRouteDate(routeDate),
	); err != nil {
		return nil, err
	}

	return route, nil
}

// RestoreRoute reconstructs a route from persistence.
func RestoreRoute(
	id kernel.UUID,
	courierID kernel.UUID,
	hubID kernel.UUID,
	routeDate time.Time,
	status Status,
	startedAt *time.Time,
	endedAt *time.Time,
) (*Route, error) {
	route, err := NewRoute(id, courierID, hubID, routeDate)
	if err != nil {
		return nil, err
	}

	if err = status.Validate(); err != nil {
		return nil, err
	}

	route.status = status
	route.startedAt = startedAt
	route.endedAt = endedAt
	return route, nil
}

// Start moves a planned route to out_for_delivery and records the start time.
func (r *Route) Start(at time.Time) error {
	if r.status != Planned {
		return fmt.Errorf("%w: status is %s", ErrRouteAlreadyStarted, r.status)
	}

	startedAt := at
	r.status = OutForDelivery
	r.startedAt = &startedAt
	return nil
}

// Complete moves a started route to completed and records the end time.
func (r *Route) Complete(at time.Time) error {
	if r.status != OutForDelivery {
		return fmt.Errorf("%w: status is %s", ErrRouteNotStarted, r.status)
	}

	endedAt := at
	r.status = Completed
	r.endedAt = &endedAt
	return nil
}

// Cancel abandons a route that has not finished yet. Allowed from planned
// and out_for_delivery.
func (r *Route) Cancel(at time.Time) error {
	if r.status.IsTerminal() {
		return fmt.Errorf("%w: status is %s", ErrRouteIsTerminal, r.status)
	}

	endedAt := at
	r.status = Canceled
	r.endedAt = &endedAt
	return nil
}

// CanAcceptAssignments reports whether parcels may still be assigned to the
// route. Terminal routes accept no new assignments.
func (r *Route) CanAcceptAssignments() bool {
	return !r.status.IsTerminal()
}

// IsEqual compares two routes by their unique identifiers.
func (r *Route) IsEqual(other *Route) bool {
	return other != nil && r.id.IsEqual(other.id)
}

// ID returns the route's unique identifier.
func (r *Route) ID() kernel.UUID { return r.id }

// CourierID returns the courier working the route.
func (r *Route) CourierID() kernel.UUID { return r.courierID }

// HubID returns the hub the route departs from.
func (r *Route) HubID() kernel.UUID { return r.hubID }

// RouteDate returns the date the route is scheduled for, at UTC midnight.
func (r *Route) RouteDate() time.Time { return r.routeDate }

// Status returns the current route status.
func (r *Route) Status() Status { return r.status }

// StartedAt returns when the courier started the route, or nil.
func (r *Route) StartedAt() *time.Time { return r.startedAt }

// EndedAt returns when the route completed or was canceled, or nil.
func (r *Route) EndedAt() *time.Time { return r.endedAt }

// Validate ensures the Route instance was properly constructed.
func (r *Route) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrRouteIsNotConstructed
	}
	return nil
}

func (r *Route) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.id = id
	return nil
}

func (r *Route) setCourierID(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}
	r.courierID = courierID
	return nil
}

func (r *Route) setHubID(hubID kernel.UUID) error {
	if err := hubID.Validate(); err != nil {
		return err
	}
	r.hubID = hubID
	return nil
}

func (r *Route) setRouteDate(routeDate time.Time) error {
	if routeDate.IsZero() {
		return errs.NewValueIsRequiredError("routeDate")
	}
	r.routeDate = routeDate.UTC().Truncate(24 * time.Hour)
	return nil
}
