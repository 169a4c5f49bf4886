package queries

import (
	"context"
	"database/sql"
	"errors"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetActiveAssignmentQueryHandler resolves the single active assignment of a
// parcel. At most one row can match because active assignments are unique per
// parcel at the store level.
type GetActiveAssignmentQueryHandler struct {
	db *gorm.DB
}

// NewGetActiveAssignmentQueryHandler creates a handler for active assignment lookups.
func NewGetActiveAssignmentQueryHandler(db *gorm.DB) GetActiveAssignmentQueryHandler {
	return GetActiveAssignmentQueryHandler{db: db}
}

// Handle executes the lookup. Returns errs.ErrObjectNotFound when the parcel
// has no active assignment.
func (h GetActiveAssignmentQueryHandler) Handle(
	ctx context.Context,
	query GetActiveAssignmentQuery,
) (GetActiveAssignmentQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetActiveAssignmentQueryResponse{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			a.id,
			a.route_id,
			r.courier_id,
			r.route_date,
			a.assigned_at
		FROM assignments a
		JOIN routes r ON r.id = a.route_id
		WHERE a.parcel_id = ? AND a.active
	`, query.ParcelID().Bytes()).Row()

	var response GetActiveAssignmentQueryResponse
	var assignmentID, routeID, courierID uuid.UUID

	err := row.Scan(&assignmentID, &routeID, &courierID, &response.RouteDate, &response.AssignedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return GetActiveAssignmentQueryResponse{},
				errs.NewObjectNotFoundError("parcelID", query.ParcelID())
		}
		return GetActiveAssignmentQueryResponse{}, err
	}

	if response.AssignmentID, err = kernel.UUIDFromBytes(assignmentID[:]); err != nil {
		return GetActiveAssignmentQueryResponse{}, err
	}
	if response.RouteID, err = kernel.UUIDFromBytes(routeID[:]); err != nil {
		return GetActiveAssignmentQueryResponse{}, err
	}
	if response.CourierID, err = kernel.UUIDFromBytes(courierID[:]); err != nil {
		return GetActiveAssignmentQueryResponse{}, err
	}

	return response, nil
}
