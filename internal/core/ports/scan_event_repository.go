package ports

import (
	"context"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/parcel"
)

// ScanEventRepository defines the persistence contract for the scan-event log.
// The log is append-only: events are added with their final outcome and never
// updated or deleted afterwards.
type ScanEventRepository interface {
	// Add appends a scan event, outcome included, to the log.
	Add(ctx context.Context, event *parcel.ScanEvent) error

	// GetByParcel retrieves all events for a parcel ordered by event time,
	// with recording time as tie-break. Rejected events are included.
	GetByParcel(ctx context.Context, parcelID kernel.UUID) ([]*parcel.ScanEvent, error)
}
