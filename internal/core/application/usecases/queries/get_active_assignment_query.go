package queries

import (
	"errors"
	"time"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/pkg/guard"
)

var (
	ErrGetActiveAssignmentQueryIsNotConstructed = errors.New(
		"GetActiveAssignmentQuery must be created via NewGetActiveAssignmentQuery constructor",
	)
)

// GetActiveAssignmentQuery retrieves the currently active route assignment of
// a parcel, joined with the route it points at.
type GetActiveAssignmentQuery struct {
	parcelID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetActiveAssignmentQuery creates a query for a parcel's active assignment.
func NewGetActiveAssignmentQuery(parcelID kernel.UUID) (GetActiveAssignmentQuery, error) {
	if err := parcelID.Validate(); err != nil {
		return GetActiveAssignmentQuery{}, err
	}

	return GetActiveAssignmentQuery{parcelID: parcelID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetActiveAssignmentQuery) Validate() error {
	return q.guard.Validate(ErrGetActiveAssignmentQueryIsNotConstructed)
}

// ParcelID returns the parcel whose assignment is requested.
func (q GetActiveAssignmentQuery) ParcelID() kernel.UUID { return q.parcelID }

// GetActiveAssignmentQueryResponse represents the active assignment read
// model, including the courier and date of the route it belongs to.
type GetActiveAssignmentQueryResponse struct {
	AssignmentID kernel.UUID
	RouteID      kernel.UUID
	CourierID    kernel.UUID
	RouteDate    time.Time
	AssignedAt   time.Time
}
