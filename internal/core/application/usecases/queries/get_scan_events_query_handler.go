package queries

import (
	"context"
	"time"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/parcel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetScanEventsQueryHandler retrieves a parcel's append-only scan log.
// Uses direct SQL for optimal read performance in the CQRS pattern.
type GetScanEventsQueryHandler struct {
	db *gorm.DB
}

// NewGetScanEventsQueryHandler creates a handler for scan log queries.
func NewGetScanEventsQueryHandler(db *gorm.DB) GetScanEventsQueryHandler {
	return GetScanEventsQueryHandler{db: db}
}

// Handle executes the query. Results are ordered by event time with the
// record time as a tie break, so replayed and rejected events appear where
// they happened, not where they arrived.
func (h GetScanEventsQueryHandler) Handle(
	ctx context.Context,
	query GetScanEventsQuery,
) ([]GetScanEventsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	events := make([]GetScanEventsQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			event_type,
			event_time,
			recorded_at,
			hub_id,
			courier_id,
			notes,
			accepted,
			applied,
			reason
		FROM scan_events
		WHERE parcel_id = ?
		ORDER BY event_time, recorded_at
	`, query.ParcelID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var event GetScanEventsQueryResponse
		var id uuid.UUID
		var eventType int
		var hubID, courierID *uuid.UUID
		var eventTime, recordedAt time.Time

		err = rows.Scan(
			&id,
			&eventType,
			&eventTime,
			&recordedAt,
			&hubID,
			&courierID,
			&event.Notes,
			&event.Accepted,
			&event.Applied,
			&event.Reason,
		)
		if err != nil {
			return nil, err
		}

		eventID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		event.ID = eventID
		event.EventType = parcel.EventType(eventType).String()
		event.EventTime = eventTime
		event.RecordedAt = recordedAt

		if hubID != nil {
			converted, convErr := kernel.UUIDFromBytes((*hubID)[:])
			if convErr != nil {
				return nil, convErr
			}
			event.HubID = &converted
		}
		if courierID != nil {
			converted, convErr := kernel.UUIDFromBytes((*courierID)[:])
			if convErr != nil {
				return nil, convErr
			}
			event.CourierID = &converted
		}

		events = append(events, event)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return events, nil
}
