package parcelrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"parcels/internal/adapters/out/postgres/pgerrors"
	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/parcel"
	"parcels/internal/core/ports"
	"parcels/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormParcelRepository implements ParcelRepository using GORM.
type GormParcelRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormParcelRepository creates a new GORM parcel repository.
func NewGormParcelRepository(db *gorm.DB, tracker aggregateTracker) *GormParcelRepository {
	return &GormParcelRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new parcel to the database. A tracking code collision surfaces
// as ErrConcurrencyConflict; the caller regenerates the code and retries.
func (r *GormParcelRepository) Add(ctx context.Context, aggregate *parcel.Parcel) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgerrors.Classify(err)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing parcel, guarded by the version loaded with it.
// A concurrent writer that got there first leaves zero matching rows and the
// update reports ErrConcurrencyConflict.
func (r *GormParcelRepository) Update(ctx context.Context, aggregate *parcel.Parcel) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	loadedVersion := dto.Version
	dto.Version = loadedVersion + 1

	result := r.db.WithContext(ctx).
		Model(&ParcelDTO{}).
		Where("id = ? AND version = ?", dto.ID, loadedVersion).
		Select("status", "delivered_at", "archived", "version").
		Updates(&dto)
	if result.Error != nil {
		return pgerrors.Classify(result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: parcel %s version %d is stale",
			ports.ErrConcurrencyConflict, aggregate.ID(), loadedVersion)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a parcel by ID.
func (r *GormParcelRepository) Get(ctx context.Context, id kernel.UUID) (*parcel.Parcel, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ParcelDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("parcel", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetForUpdate retrieves a parcel and locks its row until the surrounding
// transaction ends, serializing concurrent lifecycle writes for the parcel.
func (r *GormParcelRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*parcel.Parcel, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ParcelDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("parcel", id.String())
		}
		return nil, pgerrors.Classify(err)
	}

	return toDomain(dto)
}

// GetByTrackingCode retrieves a parcel by its public tracking code.
func (r *GormParcelRepository) GetByTrackingCode(
	ctx context.Context,
	trackingCode kernel.TrackingCode,
) (*parcel.Parcel, error) {
	if err := trackingCode.Validate(); err != nil {
		return nil, err
	}

	var dto ParcelDTO
	err := r.db.WithContext(ctx).First(&dto, "tracking_code = ?", trackingCode.String()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("trackingCode", trackingCode.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetOverdue retrieves undelivered, unarchived parcels whose SLA deadline
// passed before the given time.
func (r *GormParcelRepository) GetOverdue(ctx context.Context, before time.Time) ([]*parcel.Parcel, error) {
	var dtos []ParcelDTO
	err := r.db.WithContext(ctx).
		Where("sla_due_at IS NOT NULL AND sla_due_at < ?", before).
		Where("status NOT IN ?", []int{int(parcel.Delivered), int(parcel.ReturnedToSender)}).
		Where("NOT archived").
		Order("sla_due_at").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	parcels := make([]*parcel.Parcel, 0, len(dtos))
	for _, dto := range dtos {
		p, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		parcels = append(parcels, p)
	}

	return parcels, nil
}
