package assignmentrepo

import (
	"context"
	"errors"

	"parcels/internal/adapters/out/postgres/pgerrors"
	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/route"
	"parcels/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormAssignmentRepository implements AssignmentRepository using GORM.
type GormAssignmentRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormAssignmentRepository creates a new GORM assignment repository.
func NewGormAssignmentRepository(db *gorm.DB, tracker aggregateTracker) *GormAssignmentRepository {
	return &GormAssignmentRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add persists a new assignment. Inserting a second active row for the same
// parcel trips the partial unique index; the violation surfaces as
// ErrConcurrencyConflict for the handler's retry loop.
func (r *GormAssignmentRepository) Add(ctx context.Context, assignment *route.Assignment) error {
	if err := assignment.Validate(); err != nil {
		return err
	}

	dto := fromDomain(assignment)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgerrors.Classify(err)
	}

	r.tracker.TrackAggregate(assignment.ID(), assignment)
	return nil
}

// Update persists the activation state of an existing assignment. The two
// outcome columns are selected explicitly so deactivation (active = false)
// is not skipped as a zero value.
func (r *GormAssignmentRepository) Update(ctx context.Context, assignment *route.Assignment) error {
	if err := assignment.Validate(); err != nil {
		return err
	}

	dto := fromDomain(assignment)
	result := r.db.WithContext(ctx).
		Model(&AssignmentDTO{}).
		Where("id = ?", dto.ID).
		Select("active", "deactivated_at").
		Updates(&dto)
	if result.Error != nil {
		return pgerrors.Classify(result.Error)
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(assignment.ID(), assignment)
	return nil
}

// GetActiveByParcel retrieves the parcel's single active assignment.
func (r *GormAssignmentRepository) GetActiveByParcel(
	ctx context.Context,
	parcelID kernel.UUID,
) (*route.Assignment, error) {
	if err := parcelID.Validate(); err != nil {
		return nil, err
	}

	var dto AssignmentDTO
	err := r.db.WithContext(ctx).
		First(&dto, "parcel_id = ? AND active", parcelID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("activeAssignment", parcelID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetActiveByRoute retrieves all active assignments bound to a route.
func (r *GormAssignmentRepository) GetActiveByRoute(
	ctx context.Context,
	routeID kernel.UUID,
) ([]*route.Assignment, error) {
	if err := routeID.Validate(); err != nil {
		return nil, err
	}

	var dtos []AssignmentDTO
	err := r.db.WithContext(ctx).
		Where("route_id = ? AND active", routeID.Bytes()).
		Order("assigned_at").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	assignments := make([]*route.Assignment, 0, len(dtos))
	for _, dto := range dtos {
		assignment, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		assignments = append(assignments, assignment)
	}

	return assignments, nil
}
