// Package directoryrepo persists the hub and courier reference directory.
// The lifecycle engine treats these as slowly changing lookup data.
package directoryrepo

import (
	"parcels/internal/core/domain/model/directory"
	"parcels/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// HubDTO represents one hub row.
type HubDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Code      string    `gorm:"uniqueIndex"`
	Name      string
	Zone      *string
	Latitude  *float64
	Longitude *float64
	Active    bool
}

// TableName specifies the database table name for hub rows.
func (HubDTO) TableName() string {
	return "hubs"
}

// CourierDTO represents one courier row.
type CourierDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string
	Phone     *string
	HomeHubID *uuid.UUID `gorm:"type:uuid"`
	Active    bool
}

// TableName specifies the database table name for courier rows.
func (CourierDTO) TableName() string {
	return "couriers"
}

func hubFromDomain(hub *directory.Hub) HubDTO {
	var latitude, longitude *float64
	if location := hub.Location(); location != nil {
		lat, lng := location.Latitude(), location.Longitude()
		latitude, longitude = &lat, &lng
	}

	return HubDTO{
		ID:        hub.ID().Bytes(),
		Code:      hub.Code(),
		Name:      hub.Name(),
		Zone:      hub.Zone(),
		Latitude:  latitude,
		Longitude: longitude,
		Active:    hub.IsActive(),
	}
}

func hubToDomain(dto HubDTO) (*directory.Hub, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var location *kernel.GeoPoint
	if dto.Latitude != nil && dto.Longitude != nil {
		point, pointErr := kernel.NewGeoPoint(*dto.Latitude, *dto.Longitude)
		if pointErr != nil {
			return nil, pointErr
		}
		location = &point
	}

	return directory.RestoreHub(id, dto.Code, dto.Name, dto.Zone, location, dto.Active)
}

func courierFromDomain(courier *directory.Courier) CourierDTO {
	var homeHubID *uuid.UUID
	if id := courier.HomeHubID(); id != nil {
		raw := id.Bytes()
		homeHubID = &raw
	}

	return CourierDTO{
		ID:        courier.ID().Bytes(),
		Name:      courier.Name(),
		Phone:     courier.Phone(),
		HomeHubID: homeHubID,
		Active:    courier.IsActive(),
	}
}

func courierToDomain(dto CourierDTO) (*directory.Courier, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var homeHubID *kernel.UUID
	if dto.HomeHubID != nil {
		converted, convErr := kernel.UUIDFromBytes((*dto.HomeHubID)[:])
		if convErr != nil {
			return nil, convErr
		}
		homeHubID = &converted
	}

	return directory.RestoreCourier(id, dto.Name, dto.Phone, homeHubID, dto.Active)
}
