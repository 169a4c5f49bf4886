package commands

import (
	"context"
	"errors"
	"time"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/parcel"
)

// ErrUnknownHub is returned when a referenced hub does not exist or is inactive.
var ErrUnknownHub = errors.New("unknown hub")

// RegisterParcelCommandHandler handles the business logic for parcel registration.
// Resolves the hub references against the directory, assigns a fresh tracking
// code and creates the parcel in "created" status.
//
// Example:
//
//	handler := NewRegisterParcelCommandHandler(uowFactory)
//	cmd, _ := NewRegisterParcelCommand(...)
//
//	trackingCode, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, ErrUnknownHub) {
//	    // client error: referenced hub does not exist
//	}
type RegisterParcelCommandHandler struct {
	uowFactory RegisterParcelUoWFactory
}

// NewRegisterParcelCommandHandler creates a handler for parcel registration.
// Requires a RegisterParcelUoWFactory for transactional persistence.
func NewRegisterParcelCommandHandler(uowFactory RegisterParcelUoWFactory) RegisterParcelCommandHandler {
	return RegisterParcelCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the registration command and returns the assigned tracking code.
// The fresh tracking code is backed by a unique constraint; a collision is a
// concurrency conflict and is retried with a new code.
func (h RegisterParcelCommandHandler) Handle(
	ctx context.Context, cmd RegisterParcelCommand,
) (kernel.TrackingCode, error) {
	if err := cmd.Validate(); err != nil {
		return kernel.TrackingCode{}, err
	}

	var trackingCode kernel.TrackingCode
	err := withConflictRetry(ctx, func(ctx context.Context) error {
		trackingCode = kernel.NewTrackingCode()
		return h.register(ctx, cmd, trackingCode)
	})
	if err != nil {
		return kernel.TrackingCode{}, err
	}

	return trackingCode, nil
}

func (h RegisterParcelCommandHandler) register(
	ctx context.Context, cmd RegisterParcelCommand, trackingCode kernel.TrackingCode,
) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	directoryRepo := uow.DirectoryRepository()
	for _, hubID := range []kernel.UUID{cmd.OriginHubID(), cmd.DestinationHubID()} {
		exists, err := directoryRepo.HubExists(ctx, hubID)
		if err != nil {
			return err
		}
		if !exists {
			return ErrUnknownHub
		}
	}

	newParcel, err := parcel.NewParcel(
		cmd.ParcelID(), trackingCode,
		cmd.SenderID(), cmd.RecipientID(),
		cmd.OriginHubID(), cmd.DestinationHubID(),
		cmd.OriginZone(), cmd.DestinationZone(),
		cmd.WeightGrams(), cmd.DeclaredValueCents(),
		time.Now().UTC(), cmd.SlaDueAt())
	if err != nil {
		return err
	}

	if err = uow.ParcelRepository().Add(ctx, newParcel); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
