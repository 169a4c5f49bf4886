package scaneventrepo

import (
	"context"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/parcel"

	"gorm.io/gorm"
)

// GormScanEventRepository implements ScanEventRepository using GORM.
// The log is append-only; there is deliberately no update or delete.
type GormScanEventRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormScanEventRepository creates a new GORM scan event repository.
func NewGormScanEventRepository(db *gorm.DB, tracker aggregateTracker) *GormScanEventRepository {
	return &GormScanEventRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add appends a scan event, outcome included, to the log.
func (r *GormScanEventRepository) Add(ctx context.Context, event *parcel.ScanEvent) error {
	if err := event.Validate(); err != nil {
		return err
	}

	dto := fromDomain(event)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(event.ID(), event)
	return nil
}

// GetByParcel retrieves all events for a parcel, rejected ones included,
// ordered by event time with the record time as tie break.
func (r *GormScanEventRepository) GetByParcel(
	ctx context.Context,
	parcelID kernel.UUID,
) ([]*parcel.ScanEvent, error) {
	if err := parcelID.Validate(); err != nil {
		return nil, err
	}

	var dtos []ScanEventDTO
	err := r.db.WithContext(ctx).
		Where("parcel_id = ?", parcelID.Bytes()).
		Order("event_time, recorded_at").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	events := make([]*parcel.ScanEvent, 0, len(dtos))
	for _, dto := range dtos {
		event, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}

	return events, nil
}
