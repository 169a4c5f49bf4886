// Package routerepo persists route aggregates. The composite unique index on
// (courier_id, route_date) enforces one route per courier per day.
package routerepo

import (
	"time"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/route"

	"github.com/google/uuid"
)

// RouteDTO represents one route row.
type RouteDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CourierID uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_routes_courier_date"`
	HubID     uuid.UUID `gorm:"type:uuid;index"`
	RouteDate time.Time `gorm:"type:date;uniqueIndex:idx_routes_courier_date"`
	Status    int
	StartedAt *time.Time
	EndedAt   *time.Time
}

// TableName specifies the database table name for route rows.
func (RouteDTO) TableName() string {
	return "routes"
}

func fromDomain(aggregate *route.Route) RouteDTO {
	return RouteDTO{
		ID:        aggregate.ID().Bytes(),
		CourierID: aggregate.CourierID().Bytes(),
		HubID:     aggregate.HubID().Bytes(),
		RouteDate: aggregate.RouteDate(),
		Status:    int(aggregate.Status()),
		StartedAt: aggregate.StartedAt(),
		EndedAt:   aggregate.EndedAt(),
	}
}

func toDomain(dto RouteDTO) (*route.Route, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	courierID, err := kernel.UUIDFromBytes(dto.CourierID[:])
	if err != nil {
		return nil, err
	}

	hubID, err := kernel.UUIDFromBytes(dto.HubID[:])
	if err != nil {
		return nil, err
	}

	return route.RestoreRoute(
		id, courierID, hubID, dto.RouteDate,
		route.Status(dto.Status), dto.StartedAt, dto.EndedAt)
}
