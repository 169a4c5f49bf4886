package ports

import (
	"context"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/route"
)

// RouteRepository defines the persistence contract for route aggregates.
type RouteRepository interface {
	// Add persists a new route. A second route for the same courier and date
	// trips the unique constraint and yields ErrConcurrencyConflict.
	Add(ctx context.Context, aggregate *route.Route) error

	// Update persists changes to an existing route aggregate.
	Update(ctx context.Context, aggregate *route.Route) error

	// Get retrieves a route aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*route.Route, error)
}
