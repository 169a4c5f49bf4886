package queries

import (
	"context"
	"time"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/parcel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOverdueParcelsQueryHandler lists parcels past their delivery deadline.
// Archived parcels and parcels in a terminal status are excluded.
type GetOverdueParcelsQueryHandler struct {
	db *gorm.DB
}

// NewGetOverdueParcelsQueryHandler creates a handler for overdue parcel queries.
func NewGetOverdueParcelsQueryHandler(db *gorm.DB) GetOverdueParcelsQueryHandler {
	return GetOverdueParcelsQueryHandler{db: db}
}

// Handle executes the query. Results are ordered by deadline, most overdue
// first.
func (h GetOverdueParcelsQueryHandler) Handle(
	ctx context.Context,
	query GetOverdueParcelsQuery,
) ([]GetOverdueParcelsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	parcels := make([]GetOverdueParcelsQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			tracking_code,
			status,
			sla_due_at
		FROM parcels
		WHERE sla_due_at IS NOT NULL
			AND sla_due_at < ?
			AND status NOT IN (?, ?)
			AND NOT archived
		ORDER BY sla_due_at
	`, query.AsOf(), parcel.Delivered, parcel.ReturnedToSender).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var overdue GetOverdueParcelsQueryResponse
		var id uuid.UUID
		var status int
		var slaDueAt time.Time

		err = rows.Scan(&id, &overdue.TrackingCode, &status, &slaDueAt)
		if err != nil {
			return nil, err
		}

		parcelID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		overdue.ID = parcelID
		overdue.Status = parcel.Status(status).String()
		overdue.SlaDueAt = slaDueAt

		parcels = append(parcels, overdue)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return parcels, nil
}
