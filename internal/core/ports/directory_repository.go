package ports

import (
	"context"

	"parcels/internal/core/domain/model/directory"
	"parcels/internal/core/domain/model/kernel"
)

// DirectoryRepository defines the read contract for hub and courier reference
// data. The lifecycle engine only resolves identifiers against it; directory
// records are maintained elsewhere.
type DirectoryRepository interface {
	// GetHub retrieves a hub by its unique identifier.
	GetHub(ctx context.Context, id kernel.UUID) (*directory.Hub, error)

	// GetCourier retrieves a courier by its unique identifier.
	GetCourier(ctx context.Context, id kernel.UUID) (*directory.Courier, error)

	// HubExists reports whether an active hub with the id exists.
	HubExists(ctx context.Context, id kernel.UUID) (bool, error)

	// CourierExists reports whether an active courier with the id exists.
	CourierExists(ctx context.Context, id kernel.UUID) (bool, error)
}
