package route

import (
	"errors"
	"time"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/pkg/errs"
)

// ErrAssignmentIsNotConstructed is returned when an Assignment instance was
// not created through its constructors.
var ErrAssignmentIsNotConstructed = errors.New(
	"Assignment must be created via NewAssignment or RestoreAssignment constructor")

// Assignment binds a parcel to a route. A parcel has at most one active
// assignment at any time; superseded assignments are deactivated, never
// deleted, so the full assignment history stays queryable.
//
// The active flag is guarded twice: the assignment manager deactivates the
// previous row in the same transaction that inserts the new one, and a
// partial unique index on (parcel_id) where active backs the invariant in
// the store itself.
type Assignment struct {
	id       kernel.UUID
	parcelID kernel.UUID
	routeID  kernel.UUID

	active        bool
	assignedAt    time.Time
	deactivatedAt *time.Time

	isConstructed bool
}

// NewAssignment creates an active assignment of a parcel to a route.
func NewAssignment(
	id kernel.UUID,
	parcelID kernel.UUID,
	routeID kernel.UUID,
	assignedAt time.Time,
) (*Assignment, error) {
	assignment := &Assignment{
		active:        true,
		isConstructed: true,
	}

	if err := errors.Join(
		assignment.setID(id),
		assignment.setParcelID(parcelID),
		assignment.setRouteID(routeID),
		assignment.setAssignedAt(assignedAt),
	); err != nil {
		return nil, err
	}

	return assignment, nil
}

// RestoreAssignment reconstructs an assignment from persistence.
func RestoreAssignment(
	id kernel.UUID,
	parcelID kernel.UUID,
	routeID kernel.UUID,
	active bool,
	assignedAt time.Time,
	deactivatedAt *time.Time,
) (*Assignment, error) {
	assignment, err := NewAssignment(id, parcelID, routeID, assignedAt)
	if err != nil {
		return nil, err
	}

	if active && deactivatedAt != nil {
		return nil, errs.NewValueIsInvalidError("active assignment cannot carry a deactivation time")
	}

	assignment.active = active
	assignment.deactivatedAt = deactivatedAt
	return assignment, nil
}

// Deactivate marks the assignment inactive. Idempotent: deactivating an
// already inactive assignment keeps its original deactivation time.
func (a *Assignment) Deactivate(at time.Time) {
	if !a.active {
		return
	}

	deactivatedAt := at
	a.active = false
	a.deactivatedAt = &deactivatedAt
}

// IsEqual compares two assignments by their unique identifiers.
func (a *Assignment) IsEqual(other *Assignment) bool {
	return other != nil && a.id.IsEqual(other.id)
}

// ID returns the assignment's unique identifier.
func (a *Assignment) ID() kernel.UUID { return a.id }

// ParcelID returns the assigned parcel.
func (a *Assignment) ParcelID() kernel.UUID { return a.parcelID }

// RouteID returns the route the parcel is assigned to.
func (a *Assignment) RouteID() kernel.UUID { return a.routeID }

// IsActive reports whether the assignment is the parcel's current binding.
func (a *Assignment) IsActive() bool { return a.active }

// AssignedAt returns when the assignment was created.
func (a *Assignment) AssignedAt() time.Time { return a.assignedAt }

// DeactivatedAt returns when the assignment was released, or nil while active.
func (a *Assignment) DeactivatedAt() *time.Time { return a.deactivatedAt }

// Validate ensures the Assignment instance was properly constructed.
func (a *Assignment) Validate() error {
	if a == nil || !a.isConstructed {
		return ErrAssignmentIsNotConstructed
	}
	return nil
}

func (a *Assignment) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	a.id = id
	return nil
}

func (a *Assignment) setParcelID(parcelID kernel.UUID) error {
	if err := parcelID.Validate(); err != nil {
		return err
	}
	a.parcelID = parcelID
	return nil
}

func (a *Assignment) setRouteID(routeID kernel.UUID) error {
	if err := routeID.Validate(); err != nil {
		return err
	}
	a.routeID = routeID
	return nil
}

func (a *Assignment) setAssignedAt(assignedAt time.Time) error {
	if assignedAt.IsZero() {
		return errs.NewValueIsRequiredError("assignedAt")
	}
	a.assignedAt = assignedAt
	return nil
}
