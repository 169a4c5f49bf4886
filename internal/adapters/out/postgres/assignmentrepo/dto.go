// Package assignmentrepo persists parcel route assignments. The partial
// unique index over active rows is the store-level backstop for the
// one-active-assignment-per-parcel invariant.
package assignmentrepo

import (
	"time"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/route"

	"github.com/google/uuid"
)

// AssignmentDTO represents one assignment row. The partial unique index on
// parcel_id only covers rows where active is true, so the history of
// superseded assignments stays queryable.
type AssignmentDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	ParcelID      uuid.UUID `gorm:"type:uuid;index;uniqueIndex:idx_assignments_one_active,where:active"`
	RouteID       uuid.UUID `gorm:"type:uuid;index"`
	Active        bool
	AssignedAt    time.Time
	DeactivatedAt *time.Time
}

// TableName specifies the database table name for assignment rows.
func (AssignmentDTO) TableName() string {
	return "assignments"
}

func fromDomain(assignment *route.Assignment) AssignmentDTO {
	return AssignmentDTO{
		ID:            assignment.ID().Bytes(),
		ParcelID:      assignment.ParcelID().Bytes(),
		RouteID:       assignment.RouteID().Bytes(),
		Active:        assignment.IsActive(),
		AssignedAt:    assignment.AssignedAt(),
		DeactivatedAt: assignment.DeactivatedAt(),
	}
}

func toDomain(dto AssignmentDTO) (*route.Assignment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	parcelID, err := kernel.UUIDFromBytes(dto.ParcelID[:])
	if err != nil {
		return nil, err
	}

	routeID, err := kernel.UUIDFromBytes(dto.RouteID[:])
	if err != nil {
		return nil, err
	}

	return route.RestoreAssignment(id, parcelID, routeID, dto.Active, dto.AssignedAt, dto.DeactivatedAt)
}
