package commands

import (
	"context"
	"errors"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/parcel"
	"parcels/internal/pkg/errs"
)

// ErrProofAlreadyExists is returned when the parcel already has a proof of delivery.
var ErrProofAlreadyExists = errors.New("proof of delivery already exists for parcel")

// SubmitProofCommandHandler handles proof-of-delivery submission.
// A parcel carries at most one proof; resubmission is rejected rather than
// overwritten so the original evidence stays intact.
type SubmitProofCommandHandler struct {
	uowFactory ProofUoWFactory
}

// NewSubmitProofCommandHandler creates a handler for proof submission.
// Requires a ProofUoWFactory for transactional persistence.
func NewSubmitProofCommandHandler(uowFactory ProofUoWFactory) SubmitProofCommandHandler {
	return SubmitProofCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the proof submission command and returns the proof id.
func (h SubmitProofCommandHandler) Handle(ctx context.Context, cmd SubmitProofCommand) (kernel.UUID, error) {
	if err := cmd.Validate(); err != nil {
		return kernel.UUID{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return kernel.UUID{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if _, err := uow.ParcelRepository().Get(ctx, cmd.ParcelID()); err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return kernel.UUID{}, ErrUnknownParcel
		}
		return kernel.UUID{}, err
	}

	proofRepo := uow.ProofOfDeliveryRepository()
	exists, err := proofRepo.ExistsForParcel(ctx, cmd.ParcelID())
	if err != nil {
		return kernel.UUID{}, err
	}
	if exists {
		return kernel.UUID{}, ErrProofAlreadyExists
	}

	proof, err := parcel.NewProofOfDelivery(
		kernel.NewUUID(), cmd.ParcelID(), cmd.CourierID(),
		cmd.RecipientName(), cmd.SignedAt(),
		cmd.SignatureRef(), cmd.PhotoRef(), cmd.Location(), cmd.Notes())
	if err != nil {
		return kernel.UUID{}, err
	}

	if err = proofRepo.Add(ctx, proof); err != nil {
		return kernel.UUID{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return kernel.UUID{}, err
	}

	return proof.ID(), nil
}
