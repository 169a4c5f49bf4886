package commands

import (
	"context"
	"errors"
	"time"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/route"
	"parcels/internal/core/ports"
	"parcels/internal/pkg/errs"
)

var (
	// ErrUnknownRoute is returned when the referenced route does not exist.
	ErrUnknownRoute = errors.New("unknown route")

	// ErrParcelIsTerminal is returned when assigning a delivered or returned parcel.
	ErrParcelIsTerminal = errors.New("parcel is in a terminal status")

	// ErrRouteNotAssignable is returned when the route is completed or canceled.
	ErrRouteNotAssignable = errors.New("route no longer accepts assignments")

	// ErrConcurrentAssignmentConflict is returned when concurrent assign calls
	// for the same parcel kept colliding after the retry budget was exhausted.
	ErrConcurrentAssignmentConflict = errors.New("concurrent assignment conflict")
)

// AssignRouteCommandHandler maintains the single-active-assignment invariant.
// Within one transaction it deactivates the parcel's current active
// assignment, if any, and inserts the new active row. The store's partial
// unique index over active rows is the backstop: if a concurrent assign slips
// in between, the insert conflicts and the whole transaction is retried.
//
// Example:
//
//	handler := NewAssignRouteCommandHandler(uowFactory)
//	assignment, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, ErrConcurrentAssignmentConflict) {
//	    // 409: caller may retry
//	}
type AssignRouteCommandHandler struct {
	uowFactory AssignmentUoWFactory
}

// NewAssignRouteCommandHandler creates a handler for route assignment.
// Requires an AssignmentUoWFactory for transactional persistence.
func NewAssignRouteCommandHandler(uowFactory AssignmentUoWFactory) AssignRouteCommandHandler {
	return AssignRouteCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the assignment command and returns the new active assignment.
// After successful return exactly one active assignment exists for the parcel,
// pointing at the requested route.
func (h AssignRouteCommandHandler) Handle(
	ctx context.Context, cmd AssignRouteCommand,
) (*route.Assignment, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	var assignment *route.Assignment
	err := withConflictRetry(ctx, func(ctx context.Context) error {
		var assignErr error
		assignment, assignErr = h.assign(ctx, cmd)
		return assignErr
	})
	if errors.Is(err, ports.ErrConcurrencyConflict) {
		return nil, ErrConcurrentAssignmentConflict
	}
	if err != nil {
		return nil, err
	}

	return assignment, nil
}

func (h AssignRouteCommandHandler) assign(
	ctx context.Context, cmd AssignRouteCommand,
) (*route.Assignment, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	// Lock the parcel row to serialize concurrent assigns for the same parcel.
	lockedParcel, err := uow.ParcelRepository().GetForUpdate(ctx, cmd.ParcelID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, ErrUnknownParcel
	}
	if err != nil {
		return nil, err
	}
	if lockedParcel.Status().IsTerminal() {
		return nil, ErrParcelIsTerminal
	}

	targetRoute, err := uow.RouteRepository().Get(ctx, cmd.RouteID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, ErrUnknownRoute
	}
	if err != nil {
		return nil, err
	}
	if !targetRoute.CanAcceptAssignments() {
		return nil, ErrRouteNotAssignable
	}

	now := time.Now().UTC()
	assignmentRepo := uow.AssignmentRepository()

	current, err := assignmentRepo.GetActiveByParcel(ctx, cmd.ParcelID())
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		// No previous assignment to release.
	case err != nil:
		return nil, err
	default:
		current.Deactivate(now)
		if err = assignmentRepo.Update(ctx, current); err != nil {
			return nil, err
		}
	}

	assignment, err := route.NewAssignment(kernel.NewUUID(), cmd.ParcelID(), cmd.RouteID(), now)
	if err != nil {
		return nil, err
	}

	if err = assignmentRepo.Add(ctx, assignment); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return assignment, nil
}
