// Package parcelrepo provides data transfer objects and mapping functions for
// parcel persistence. It implements the repository pattern for the parcel
// aggregate, converting between domain entities and database rows.
package parcelrepo

import (
	"time"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/parcel"

	"github.com/google/uuid"
)

// ParcelDTO represents the database structure for persisting parcel aggregates.
// The tracking code carries a unique index; version backs the optimistic lock.
type ParcelDTO struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	TrackingCode     string    `gorm:"uniqueIndex"`
	SenderID         uuid.UUID `gorm:"type:uuid;index"`
	RecipientID      uuid.UUID `gorm:"type:uuid;index"`
	OriginHubID      uuid.UUID `gorm:"type:uuid"`
	DestinationHubID uuid.UUID `gorm:"type:uuid"`
	OriginZone       *string
	DestinationZone  *string
	WeightGrams      int
	DeclaredValue    int64 `gorm:"column:declared_value_cents"`
	Status           int   `gorm:"index"`
	CreatedAt        time.Time
	DeliveredAt      *time.Time
	SlaDueAt         *time.Time `gorm:"index"`
	Archived         bool
	Version          int64
}

// TableName specifies the database table name for parcel rows.
func (ParcelDTO) TableName() string {
	return "parcels"
}

// fromDomain converts a parcel aggregate to its database representation.
func fromDomain(aggregate *parcel.Parcel) ParcelDTO {
	return ParcelDTO{
		ID:               aggregate.ID().Bytes(),
		TrackingCode:     aggregate.TrackingCode().String(),
		SenderID:         aggregate.SenderID().Bytes(),
		RecipientID:      aggregate.RecipientID().Bytes(),
		OriginHubID:      aggregate.OriginHubID().Bytes(),
		DestinationHubID: aggregate.DestinationHubID().Bytes(),
		OriginZone:       aggregate.OriginZone(),
		DestinationZone:  aggregate.DestinationZone(),
		WeightGrams:      aggregate.WeightGrams(),
		DeclaredValue:    aggregate.DeclaredValueCents(),
		Status:           int(aggregate.Status()),
		CreatedAt:        aggregate.CreatedAt(),
		DeliveredAt:      aggregate.DeliveredAt(),
		SlaDueAt:         aggregate.SlaDueAt(),
		Archived:         aggregate.IsArchived(),
		Version:          aggregate.Version(),
	}
}

// toDomain converts a database row back into a parcel aggregate.
// RestoreParcel re-checks the deliveredAt/status invariant, so a corrupted
// row fails here instead of inside the domain.
func toDomain(dto ParcelDTO) (*parcel.Parcel, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	trackingCode, err := kernel.TrackingCodeFromString(dto.TrackingCode)
	if err != nil {
		return nil, err
	}

	senderID, err := kernel.UUIDFromBytes(dto.SenderID[:])
	if err != nil {
		return nil, err
	}

	recipientID, err := kernel.UUIDFromBytes(dto.RecipientID[:])
	if err != nil {
		return nil, err
	}

	originHubID, err := kernel.UUIDFromBytes(dto.OriginHubID[:])
	if err != nil {
		return nil, err
	}

	destinationHubID, err := kernel.UUIDFromBytes(dto.DestinationHubID[:])
	if err != nil {
		return nil, err
	}

	return parcel.RestoreParcel(
		id,
		trackingCode,
		senderID,
		recipientID,
		originHubID,
		destinationHubID,
		dto.OriginZone,
		dto.DestinationZone,
		dto.WeightGrams,
		dto.DeclaredValue,
		parcel.Status(dto.Status),
		dto.CreatedAt,
		dto.DeliveredAt,
		dto.SlaDueAt,
		dto.Archived,
		dto.Version,
	)
}
