package commands

import (
	"context"
	"errors"
	"time"

	"parcels/internal/pkg/errs"
)

// DeactivateAssignmentCommandHandler releases a parcel's active route
// assignment. The operation is idempotent: when no active assignment exists
// the handler succeeds without touching anything.
type DeactivateAssignmentCommandHandler struct {
	uowFactory AssignmentUoWFactory
}

// NewDeactivateAssignmentCommandHandler creates a handler for assignment release.
// Requires an AssignmentUoWFactory for transactional persistence.
func NewDeactivateAssignmentCommandHandler(uowFactory AssignmentUoWFactory) DeactivateAssignmentCommandHandler {
	return DeactivateAssignmentCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the deactivation command.
func (h DeactivateAssignmentCommandHandler) Handle(ctx context.Context, cmd DeactivateAssignmentCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return withConflictRetry(ctx, func(ctx context.Context) error {
		return h.deactivate(ctx, cmd)
	})
}

func (h DeactivateAssignmentCommandHandler) deactivate(ctx context.Context, cmd DeactivateAssignmentCommand) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	assignmentRepo := uow.AssignmentRepository()

	assignment, err := assignmentRepo.GetActiveByParcel(ctx, cmd.ParcelID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return uow.Commit(ctx)
	}
	if err != nil {
		return err
	}

	assignment.Deactivate(time.Now().UTC())
	if err = assignmentRepo.Update(ctx, assignment); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
