package commands

import (
	"context"
	"errors"
	"time"

	"parcels/internal/pkg/errs"
)

// CancelRouteCommandHandler cancels a planned or started route and releases
// the active assignments still bound to it.
type CancelRouteCommandHandler struct {
	uowFactory RouteUoWFactory
}

// NewCancelRouteCommandHandler creates a handler for canceling routes.
// Requires a RouteUoWFactory for transactional persistence.
func NewCancelRouteCommandHandler(uowFactory RouteUoWFactory) CancelRouteCommandHandler {
	return CancelRouteCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the cancellation command.
func (h CancelRouteCommandHandler) Handle(ctx context.Context, cmd CancelRouteCommand) error {
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

	now := time.Now().UTC()
	if err = targetRoute.Cancel(now); err != nil {
		return err
	}

	if err = routeRepo.Update(ctx, targetRoute); err != nil {
		return err
	}

	if err = releaseRouteAssignments(ctx, uow, cmd.RouteID(), now); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
