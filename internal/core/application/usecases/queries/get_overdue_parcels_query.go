package queries

import (
	"errors"
	"time"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/pkg/errs"
	"parcels/internal/pkg/guard"
)

var (
	ErrGetOverdueParcelsQueryIsNotConstructed = errors.New(
		"GetOverdueParcelsQuery must be created via NewGetOverdueParcelsQuery constructor",
	)
)

// GetOverdueParcelsQuery retrieves parcels whose delivery deadline passed
// before the given moment and that have not reached a terminal status.
// Used by the SLA sweep job and the operations dashboard.
type GetOverdueParcelsQuery struct {
	asOf time.Time

	guard guard.ConstructorGuard
}

// NewGetOverdueParcelsQuery creates a query for parcels overdue as of the
// given moment.
func NewGetOverdueParcelsQuery(asOf time.Time) (GetOverdueParcelsQuery, error) {
	if asOf.IsZero() {
		return GetOverdueParcelsQuery{}, errs.NewValueIsRequiredError("asOf")
	}

	return GetOverdueParcelsQuery{asOf: asOf, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOverdueParcelsQuery) Validate() error {
	return q.guard.Validate(ErrGetOverdueParcelsQueryIsNotConstructed)
}

// AsOf returns the cutoff moment.
func (q GetOverdueParcelsQuery) AsOf() time.Time { return q.asOf }

// GetOverdueParcelsQueryResponse represents one overdue parcel.
type GetOverdueParcelsQueryResponse struct {
	ID           kernel.UUID
	TrackingCode string
	Status       string
	SlaDueAt     time.Time
}
