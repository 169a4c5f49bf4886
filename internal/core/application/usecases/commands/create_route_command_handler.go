package commands

import (
	"context"
	"errors"

	"parcels/internal/core/domain/model/route"
	"parcels/internal/core/ports"
)

// ErrCourierAlreadyScheduled is returned when the courier already has a route
// for the requested date.
var ErrCourierAlreadyScheduled = errors.New("courier already has a route for this date")

// CreateRouteCommandHandler handles route scheduling.
// A courier works at most one route per date; the store enforces it with a
// unique constraint on (courier, route date), so double scheduling surfaces
// as a conflict rather than a silently duplicated route.
type CreateRouteCommandHandler struct {
	uowFactory RouteUoWFactory
}

// NewCreateRouteCommandHandler creates a handler for route scheduling.
// Requires a RouteUoWFactory for transactional persistence.
func NewCreateRouteCommandHandler(uowFactory RouteUoWFactory) CreateRouteCommandHandler {
	return CreateRouteCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the route creation command.
func (h CreateRouteCommandHandler) Handle(ctx context.Context, cmd CreateRouteCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	directoryRepo := uow.DirectoryRepository()

	courierExists, err := directoryRepo.CourierExists(ctx, cmd.CourierID())
	if err != nil {
		return err
	}
	if !courierExists {
		return ErrUnknownCourier
	}

	hubExists, err := directoryRepo.HubExists(ctx, cmd.HubID())
	if err != nil {
		return err
	}
	if !hubExists {
		return ErrUnknownHub
	}

	newRoute, err := route.NewRoute(cmd.RouteID(), cmd.CourierID(), cmd.HubID(), cmd.RouteDate())
	if err != nil {
		return err
	}

	if err = uow.RouteRepository().Add(ctx, newRoute); err != nil {
		if errors.Is(err, ports.ErrConcurrencyConflict) {
			return ErrCourierAlreadyScheduled
		}
		return err
	}

	return uow.Commit(ctx)
}
