// Package ports defines repository interfaces for the parcel logistics domain.
// These interfaces establish contracts between the domain layer and infrastructure,
// enabling dependency inversion and testability.
package ports

import (
	"context"
	"time"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/parcel"
)

// ParcelRepository defines the persistence contract for parcel aggregates.
type ParcelRepository interface {
	// Add persists a new parcel aggregate to storage.
	// Returns ErrConcurrencyConflict wrapped when the tracking code is already taken.
	Add(ctx context.Context, aggregate *parcel.Parcel) error

	// Update persists changes to an existing parcel aggregate.
	// The write is guarded by the aggregate's version; a stale snapshot
	// yields ErrConcurrencyConflict.
	Update(ctx context.Context, aggregate *parcel.Parcel) error

	// Get retrieves a parcel aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*parcel.Parcel, error)

	// GetForUpdate retrieves a parcel and locks its row for the duration of
	// the surrounding transaction, serializing concurrent lifecycle writes
	// for the same parcel.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*parcel.Parcel, error)

	// GetByTrackingCode retrieves a parcel by its public tracking code.
	GetByTrackingCode(ctx context.Context, trackingCode kernel.TrackingCode) (*parcel.Parcel, error)

	// GetOverdue retrieves undelivered, unarchived parcels whose SLA deadline
	// passed before the given time.
	GetOverdue(ctx context.Context, before time.Time) ([]*parcel.Parcel, error)
}
