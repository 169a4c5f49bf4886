package commands

import (
	"context"
	"errors"
	"time"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/pkg/errs"
)

// CompleteRouteCommandHandler completes a started route and releases the
// active assignments still bound to it. Parcels left undelivered keep their
// lifecycle status; only the routing binding is closed out.
type CompleteRouteCommandHandler struct {
	uowFactory RouteUoWFactory
}

// NewCompleteRouteCommandHandler creates a handler for completing routes.
// Requires a RouteUoWFactory for transactional persistence.
func NewCompleteRouteCommandHandler(uowFactory RouteUoWFactory) CompleteRouteCommandHandler {
	return CompleteRouteCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the completion command.
func (h CompleteRouteCommandHandler) Handle(ctx context.Context, cmd CompleteRouteCommand) error {
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
	if err = targetRoute.Complete(now); err != nil {
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

// releaseRouteAssignments deactivates every active assignment bound to the
// route. Shared by route completion and cancellation.
func releaseRouteAssignments(ctx context.Context, uow RouteUoW, routeID kernel.UUID, at time.Time) error {
	assignmentRepo := uow.AssignmentRepository()

	assignments, err := assignmentRepo.GetActiveByRoute(ctx, routeID)
	if err != nil {
		return err
	}

	for _, assignment := range assignments {
		assignment.Deactivate(at)
		if err = assignmentRepo.Update(ctx, assignment); err != nil {
			return err
		}
	}

	return nil
}
