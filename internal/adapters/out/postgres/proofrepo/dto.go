// Package proofrepo persists proof of delivery records, at most one per
// parcel.
package proofrepo

import (
	"time"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/parcel"

	"github.com/google/uuid"
)

// ProofOfDeliveryDTO represents one proof row. parcel_id carries a unique
// index: a parcel has zero or one proof.
type ProofOfDeliveryDTO struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey"`
	ParcelID      uuid.UUID  `gorm:"type:uuid;uniqueIndex"`
	CourierID     *uuid.UUID `gorm:"type:uuid"`
	RecipientName string
	SignedAt      time.Time
	SignatureRef  *string
	PhotoRef      *string
	Latitude      *float64
	Longitude     *float64
	Notes         string
}

// TableName specifies the database table name for proof rows.
func (ProofOfDeliveryDTO) TableName() string {
	return "proofs_of_delivery"
}

func fromDomain(proof *parcel.ProofOfDelivery) ProofOfDeliveryDTO {
	var courierID *uuid.UUID
	if id := proof.CourierID(); id != nil {
		raw := id.Bytes()
		courierID = &raw
	}

	var latitude, longitude *float64
	if location := proof.Location(); location != nil {
		lat, lng := location.Latitude(), location.Longitude()
		latitude, longitude = &lat, &lng
	}

	return ProofOfDeliveryDTO{
		ID:            proof.ID().Bytes(),
		ParcelID:      proof.ParcelID().Bytes(),
		CourierID:     courierID,
		RecipientName: proof.RecipientName(),
		SignedAt:      proof.SignedAt(),
		SignatureRef:  proof.SignatureRef(),
		PhotoRef:      proof.PhotoRef(),
		Latitude:      latitude,
		Longitude:     longitude,
		Notes:         proof.Notes(),
	}
}

func toDomain(dto ProofOfDeliveryDTO) (*parcel.ProofOfDelivery, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	parcelID, err := kernel.UUIDFromBytes(dto.ParcelID[:])
	if err != nil {
		return nil, err
	}

	var courierID *kernel.UUID
	if dto.CourierID != nil {
		converted, convErr := kernel.UUIDFromBytes((*dto.CourierID)[:])
		if convErr != nil {
			return nil, convErr
		}
		courierID = &converted
	}

	var location *kernel.GeoPoint
	if dto.Latitude != nil && dto.Longitude != nil {
		point, pointErr := kernel.NewGeoPoint(*dto.Latitude, *dto.Longitude)
		if pointErr != nil {
			return nil, pointErr
		}
		location = &point
	}

	return parcel.RestoreProofOfDelivery(
		id, parcelID, courierID, dto.RecipientName, dto.SignedAt,
		dto.SignatureRef, dto.PhotoRef, location, dto.Notes)
}
