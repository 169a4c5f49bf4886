// Package scaneventrepo persists the append-only scan event log.
// Events are written once with their final outcome and never modified.
package scaneventrepo

import (
	"time"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/parcel"

	"github.com/google/uuid"
)

// ScanEventDTO represents one scan log row. accepted/applied/reason capture
// the lifecycle decision; rejected events keep their reason for the audit
// trail.
type ScanEventDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	ParcelID   uuid.UUID `gorm:"type:uuid;index"`
	EventType  int
	EventTime  time.Time `gorm:"index"`
	RecordedAt time.Time
	HubID      *uuid.UUID `gorm:"type:uuid"`
	CourierID  *uuid.UUID `gorm:"type:uuid"`
	Notes      string
	Accepted   bool
	Applied    bool
	Reason     string
}

// TableName specifies the database table name for scan event rows.
func (ScanEventDTO) TableName() string {
	return "scan_events"
}

func fromDomain(event *parcel.ScanEvent) ScanEventDTO {
	var hubID, courierID *uuid.UUID
	if id := event.HubID(); id != nil {
		raw := id.Bytes()
		hubID = &raw
	}
	if id := event.CourierID(); id != nil {
		raw := id.Bytes()
		courierID = &raw
	}

	return ScanEventDTO{
		ID:         event.ID().Bytes(),
		ParcelID:   event.ParcelID().Bytes(),
		EventType:  int(event.Type()),
		EventTime:  event.Time(),
		RecordedAt: event.RecordedAt(),
		HubID:      hubID,
		CourierID:  courierID,
		Notes:      event.Notes(),
		Accepted:   event.IsAccepted(),
		Applied:    event.IsApplied(),
		Reason:     string(event.Reason()),
	}
}

func toDomain(dto ScanEventDTO) (*parcel.ScanEvent, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	parcelID, err := kernel.UUIDFromBytes(dto.ParcelID[:])
	if err != nil {
		return nil, err
	}

	var hubID, courierID *kernel.UUID
	if dto.HubID != nil {
		converted, convErr := kernel.UUIDFromBytes((*dto.HubID)[:])
		if convErr != nil {
			return nil, convErr
		}
		hubID = &converted
	}
	if dto.CourierID != nil {
		converted, convErr := kernel.UUIDFromBytes((*dto.CourierID)[:])
		if convErr != nil {
			return nil, convErr
		}
		courierID = &converted
	}

	return parcel.RestoreScanEvent(
		id,
		parcelID,
		parcel.EventType(dto.EventType),
		dto.EventTime,
		hubID,
		courierID,
		dto.Notes,
		dto.Accepted,
		dto.Applied,
		parcel.RejectionReason(dto.Reason),
		dto.RecordedAt,
	)
}
