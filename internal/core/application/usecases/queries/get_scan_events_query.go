package queries

import (
	"errors"
	"time"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/pkg/guard"
)

var (
	ErrGetScanEventsQueryIsNotConstructed = errors.New(
		"GetScanEventsQuery must be created via NewGetScanEventsQuery constructor",
	)
)

// GetScanEventsQuery retrieves the full scan log of a parcel, including
// rejected events, in event-time order.
//
// Example:
//
//	query, err := NewGetScanEventsQuery(parcelID)
//	if err != nil {
//	    return err
//	}
//
//	events, err := handler.Handle(ctx, query)
//	for _, e := range events {
//	    fmt.Printf("%s %s accepted=%t\n", e.EventTime, e.EventType, e.Accepted)
//	}
type GetScanEventsQuery struct {
	parcelID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetScanEventsQuery creates a query for a parcel's scan log.
func NewGetScanEventsQuery(parcelID kernel.UUID) (GetScanEventsQuery, error) {
	if err := parcelID.Validate(); err != nil {
		return GetScanEventsQuery{}, err
	}

	return GetScanEventsQuery{parcelID: parcelID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetScanEventsQuery) Validate() error {
	return q.guard.Validate(ErrGetScanEventsQueryIsNotConstructed)
}

// ParcelID returns the parcel whose log is requested.
func (q GetScanEventsQuery) ParcelID() kernel.UUID { return q.parcelID }

// GetScanEventsQueryResponse represents one scan log entry. Reason is empty
// for accepted events.
type GetScanEventsQueryResponse struct {
	ID         kernel.UUID
	EventType  string
	EventTime  time.Time
	RecordedAt time.Time
	HubID      *kernel.UUID
	CourierID  *kernel.UUID
	Notes      string
	Accepted   bool
	Applied    bool
	Reason     string
}
