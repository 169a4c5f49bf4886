package commands

import (
	"context"
	"errors"
	"time"

	"parcels/internal/pkg/errs"
)

// StartRouteCommandHandler moves a planned route to out_for_delivery.
type StartRouteCommandHandler struct {
	uowFactory RouteUoWFactory
}

// NewStartRouteCommandHandler creates a handler for starting routes.
// Requires a RouteUoWFactory for transactional persistence.
func NewStartRouteCommandHandler(uowFactory RouteUoWFactory) StartRouteCommandHandler {
	return StartRouteCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the start command.
func (h StartRouteCommandHandler) Handle(ctx context.Context, cmd StartRouteCommand) error {
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

	routeRepo := uow.RouteRepository()

	targetRoute, err := routeRepo.Get(ctx, cmd.RouteID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return ErrUnknownRoute
	}
	if err != nil {
		return err
	}

	if err = targetRoute.Start(time.Now().UTC()); err != nil {
		return err
	}

	if err = routeRepo.Update(ctx, targetRoute); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
