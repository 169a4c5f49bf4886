package directoryrepo

import (
	"context"
	"errors"

	"parcels/internal/core/domain/model/directory"
	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormDirectoryRepository implements DirectoryRepository using GORM.
// AddHub and AddCourier are not part of the port: the engine only reads the
// directory, while seeding and tests write through the concrete type.
type GormDirectoryRepository struct {
	db *gorm.DB
}

// NewGormDirectoryRepository creates a new GORM directory repository.
func NewGormDirectoryRepository(db *gorm.DB) *GormDirectoryRepository {
	return &GormDirectoryRepository{db: db}
}

// AddHub persists a new hub.
func (r *GormDirectoryRepository) AddHub(ctx context.Context, hub *directory.Hub) error {
	if err := hub.Validate(); err != nil {
		return err
	}

	dto := hubFromDomain(hub)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// AddCourier persists a new courier.
func (r *GormDirectoryRepository) AddCourier(ctx context.Context, courier *directory.Courier) error {
	if err := courier.Validate(); err != nil {
		return err
	}

	dto := courierFromDomain(courier)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// GetHub retrieves a hub by ID.
func (r *GormDirectoryRepository) GetHub(ctx context.Context, id kernel.UUID) (*directory.Hub, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto HubDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("hub", id.String())
		}
		return nil, err
	}

	return hubToDomain(dto)
}

// GetCourier retrieves a courier by ID.
func (r *GormDirectoryRepository) GetCourier(ctx context.Context, id kernel.UUID) (*directory.Courier, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto CourierDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("courier", id.String())
		}
		return nil, err
	}

	return courierToDomain(dto)
}

// HubExists reports whether an active hub with the id exists.
func (r *GormDirectoryRepository) HubExists(ctx context.Context, id kernel.UUID) (bool, error) {
	if err := id.Validate(); err != nil {
		return false, err
	}

	var count int64
	err := r.db.WithContext(ctx).
		Model(&HubDTO{}).
		Where("id = ? AND active", id.Bytes()).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// CourierExists reports whether an active courier with the id exists.
func (r *GormDirectoryRepository) CourierExists(ctx context.Context, id kernel.UUID) (bool, error) {
	if err := id.Validate(); err != nil {
		return false, err
	}

	var count int64
	err := r.db.WithContext(ctx).
		Model(&CourierDTO{}).
		Where("id = ? AND active", id.Bytes()).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}
