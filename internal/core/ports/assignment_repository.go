package ports

import (
	"context"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/route"
)

// AssignmentRepository defines the persistence contract for parcel route
// assignments. The store carries a partial unique index on the parcel id over
// active rows; it is the final arbiter of the single-active-assignment
// invariant under concurrency.
type AssignmentRepository interface {
	// Add persists a new assignment. Inserting a second active row for the
	// same parcel trips the unique index and yields ErrConcurrencyConflict.
	Add(ctx context.Context, assignment *route.Assignment) error

	// Update persists changes to an existing assignment.
	Update(ctx context.Context, assignment *route.Assignment) error

	// GetActiveByParcel retrieves the parcel's active assignment.
	// Returns an ObjectNotFoundError when no active assignment exists.
	GetActiveByParcel(ctx context.Context, parcelID kernel.UUID) (*route.Assignment, error)

	// GetActiveByRoute retrieves all active assignments bound to a route.
	GetActiveByRoute(ctx context.Context, routeID kernel.UUID) ([]*route.Assignment, error)
}
