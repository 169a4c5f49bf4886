package proofrepo

import (
	"context"
	"errors"

	"parcels/internal/adapters/out/postgres/pgerrors"
	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/parcel"
	"parcels/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormProofOfDeliveryRepository implements ProofOfDeliveryRepository using GORM.
type GormProofOfDeliveryRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormProofOfDeliveryRepository creates a new GORM proof of delivery repository.
func NewGormProofOfDeliveryRepository(db *gorm.DB, tracker aggregateTracker) *GormProofOfDeliveryRepository {
	return &GormProofOfDeliveryRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add persists a new proof. A second proof for the same parcel trips the
// unique index and yields ErrConcurrencyConflict.
func (r *GormProofOfDeliveryRepository) Add(ctx context.Context, proof *parcel.ProofOfDelivery) error {
	if err := proof.Validate(); err != nil {
		return err
	}

	dto := fromDomain(proof)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgerrors.Classify(err)
	}

	r.tracker.TrackAggregate(proof.ID(), proof)
	return nil
}

// GetByParcel retrieves the proof recorded for a parcel.
func (r *GormProofOfDeliveryRepository) GetByParcel(
	ctx context.Context,
	parcelID kernel.UUID,
) (*parcel.ProofOfDelivery, error) {
	if err := parcelID.Validate(); err != nil {
		return nil, err
	}

	var dto ProofOfDeliveryDTO
	err := r.db.WithContext(ctx).First(&dto, "parcel_id = ?", parcelID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("proofOfDelivery", parcelID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// ExistsForParcel reports whether a proof exists without loading it.
func (r *GormProofOfDeliveryRepository) ExistsForParcel(
	ctx context.Context,
	parcelID kernel.UUID,
) (bool, error) {
	if err := parcelID.Validate(); err != nil {
		return false, err
	}

	var count int64
	err := r.db.WithContext(ctx).
		Model(&ProofOfDeliveryDTO{}).
		Where("parcel_id = ?", parcelID.Bytes()).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}
