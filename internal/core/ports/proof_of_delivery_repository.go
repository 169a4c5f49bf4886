package ports

import (
	"context"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/parcel"
)

// ProofOfDeliveryRepository defines the persistence contract for proof of
// delivery records.
type ProofOfDeliveryRepository interface {
	// Add persists a new proof of delivery.
	Add(ctx context.Context, proof *parcel.ProofOfDelivery) error

	// GetByParcel retrieves the proof for a parcel.
	// Returns an ObjectNotFoundError when none exists.
	GetByParcel(ctx context.Context, parcelID kernel.UUID) (*parcel.ProofOfDelivery, error)

	// ExistsForParcel reports whether a proof exists for the parcel without
	// loading it.
	ExistsForParcel(ctx context.Context, parcelID kernel.UUID) (bool, error)
}
