// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return optimized read models for specific use cases.
package queries

import (
	"errors"
	"time"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/pkg/guard"
)

var (
	ErrGetParcelQueryIsNotConstructed = errors.New(
		"GetParcelQuery must be created via NewGetParcelQuery constructor",
	)
)

// GetParcelQuery retrieves the current state of a single parcel.
//
// Example:
//
//	query, err := NewGetParcelQuery(parcelID)
//	if err != nil {
//	    return err
//	}
//
//	parcel, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to retrieve parcel: %w", err)
//	}
//
//	fmt.Printf("Parcel %s is %s\n", parcel.TrackingCode, parcel.Status)
type GetParcelQuery struct {
	parcelID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetParcelQuery creates a query for a single parcel by identifier.
func NewGetParcelQuery(parcelID kernel.UUID) (GetParcelQuery, error) {
	if err := parcelID.Validate(); err != nil {
		return GetParcelQuery{}, err
	}

	return GetParcelQuery{parcelID: parcelID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetParcelQuery) Validate() error {
	return q.guard.Validate(ErrGetParcelQueryIsNotConstructed)
}

// ParcelID returns the parcel to look up.
func (q GetParcelQuery) ParcelID() kernel.UUID { return q.parcelID }

// GetParcelQueryResponse represents the parcel read model returned to callers.
// Status is the canonical lowercase status name.
type GetParcelQueryResponse struct {
	ID           kernel.UUID
	TrackingCode string
	Status       string
	CreatedAt    time.Time
	DeliveredAt  *time.Time
	SlaDueAt     *time.Time
}
