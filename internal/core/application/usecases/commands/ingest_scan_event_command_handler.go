package commands

import (
	"context"
	"errors"
	"time"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/parcel"
	"parcels/internal/core/domain/services"
	"parcels/internal/pkg/errs"
)

var (
	// ErrUnknownParcel is returned when the referenced parcel does not exist.
	ErrUnknownParcel = errors.New("unknown parcel")

	// ErrUnknownCourier is returned when a referenced courier does not exist or is inactive.
	ErrUnknownCourier = errors.New("unknown courier")
)

// IngestScanEventCommandHandler handles the business logic for scan-event
// ingestion. It locks the parcel row, decides the event's outcome through the
// lifecycle state machine, appends the event to the log regardless of outcome,
// and applies the side effects of acceptance in the same transaction.
//
// A merely-illegal transition is not an error: the handler reports it through
// the returned ScanResult with accepted=false and a reason code. Errors are
// reserved for structurally invalid input and infrastructure failures.
//
// Example:
//
//	handler := NewIngestScanEventCommandHandler(uowFactory)
//	result, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, ErrUnknownParcel) {
//	    // 404: the parcel reference is bogus
//	}
//	if err == nil && !result.Accepted {
//	    // logged for audit; result.Reason explains the rejection
//	}
type IngestScanEventCommandHandler struct {
	uowFactory IngestScanEventUoWFactory
	applier    services.ScanApplier
}

// NewIngestScanEventCommandHandler creates a handler for scan-event ingestion.
// Requires an IngestScanEventUoWFactory for transactional persistence.
func NewIngestScanEventCommandHandler(uowFactory IngestScanEventUoWFactory) IngestScanEventCommandHandler {
	return IngestScanEventCommandHandler{
		uowFactory: uowFactory,
		applier:    services.NewScanApplier(),
	}
}

// Handle processes the ingestion command and returns the event's outcome.
// Concurrent lifecycle writes for the same parcel are serialized by a row
// lock; transactional conflicts are retried with backoff.
func (h IngestScanEventCommandHandler) Handle(
	ctx context.Context, cmd IngestScanEventCommand,
) (services.ScanResult, error) {
	if err := cmd.Validate(); err != nil {
		return services.ScanResult{}, err
	}

	var result services.ScanResult
	err := withConflictRetry(ctx, func(ctx context.Context) error {
		var ingestErr error
		result, ingestErr = h.ingest(ctx, cmd)
		return ingestErr
	})
	if err != nil {
		return services.ScanResult{}, err
	}

	return result, nil
}

func (h IngestScanEventCommandHandler) ingest(
	ctx context.Context, cmd IngestScanEventCommand,
) (services.ScanResult, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return services.ScanResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := h.resolveSources(ctx, uow, cmd); err != nil {
		return services.ScanResult{}, err
	}

	parcelRepo := uow.ParcelRepository()
	lockedParcel, err := parcelRepo.GetForUpdate(ctx, cmd.ParcelID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return services.ScanResult{}, ErrUnknownParcel
	}
	if err != nil {
		return services.ScanResult{}, err
	}

	event, err := parcel.NewScanEvent(
		kernel.NewUUID(), cmd.ParcelID(), cmd.EventType(), cmd.EventTime(),
		cmd.SourceHubID(), cmd.SourceCourierID(), cmd.Notes(), time.Now().UTC())
	if err != nil {
		return services.ScanResult{}, err
	}

	scanEventRepo := uow.ScanEventRepository()
	history, err := scanEventRepo.GetByParcel(ctx, cmd.ParcelID())
	if err != nil {
		return services.ScanResult{}, err
	}

	hasProof, err := h.hasProof(ctx, uow, cmd)
	if err != nil {
		return services.ScanResult{}, err
	}

	result, err := h.applier.Apply(lockedParcel, history, event, hasProof)
	if err != nil {
		return services.ScanResult{}, err
	}

	// The log is append-only and records rejected events too.
	if err = scanEventRepo.Add(ctx, event); err != nil {
		return services.ScanResult{}, err
	}

	if result.Accepted {
		if err = h.applySideEffects(ctx, uow, lockedParcel, cmd, result); err != nil {
			return services.ScanResult{}, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return services.ScanResult{}, err
	}

	return result, nil
}

func (h IngestScanEventCommandHandler) resolveSources(
	ctx context.Context, uow IngestScanEventUoW, cmd IngestScanEventCommand,
) error {
	directoryRepo := uow.DirectoryRepository()

	if hubID := cmd.SourceHubID(); hubID != nil {
		exists, err := directoryRepo.HubExists(ctx, *hubID)
		if err != nil {
			return err
		}
		if !exists {
			return ErrUnknownHub
		}
	}

	if courierID := cmd.SourceCourierID(); courierID != nil {
		exists, err := directoryRepo.CourierExists(ctx, *courierID)
		if err != nil {
			return err
		}
		if !exists {
			return ErrUnknownCourier
		}
	}

	return nil
}

// hasProof reports whether a proof of delivery backs the event: either an
// already stored record or one submitted inline with the request. Only
// delivered events consult it, but computing it is cheap enough to do upfront
// for inline submissions.
func (h IngestScanEventCommandHandler) hasProof(
	ctx context.Context, uow IngestScanEventUoW, cmd IngestScanEventCommand,
) (bool, error) {
	if cmd.EventType() != parcel.EventDelivered {
		return false, nil
	}
	if cmd.Proof() != nil {
		return true, nil
	}
	return uow.ProofOfDeliveryRepository().ExistsForParcel(ctx, cmd.ParcelID())
}

// applySideEffects persists what acceptance entails: the advanced parcel, the
// inline proof backing a delivered event, and the release of the active
// assignment when the parcel reached a terminal status.
func (h IngestScanEventCommandHandler) applySideEffects(
	ctx context.Context,
	uow IngestScanEventUoW,
	lockedParcel *parcel.Parcel,
	cmd IngestScanEventCommand,
	result services.ScanResult,
) error {
	if cmd.EventType() == parcel.EventDelivered && cmd.Proof() != nil {
		if err := h.storeInlineProof(ctx, uow, cmd); err != nil {
			return err
		}
	}

	if !result.Applied {
		return nil
	}

	if err := uow.ParcelRepository().Update(ctx, lockedParcel); err != nil {
		return err
	}

	if result.Status.IsTerminal() {
		if err := h.deactivateAssignment(ctx, uow, cmd.ParcelID(), cmd.EventTime()); err != nil {
			return err
		}
	}

	return nil
}

func (h IngestScanEventCommandHandler) storeInlineProof(
	ctx context.Context, uow IngestScanEventUoW, cmd IngestScanEventCommand,
) error {
	proofRepo := uow.ProofOfDeliveryRepository()

	exists, err := proofRepo.ExistsForParcel(ctx, cmd.ParcelID())
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	inline := cmd.Proof()
	proof, err := parcel.NewProofOfDelivery(
		kernel.NewUUID(), cmd.ParcelID(), cmd.SourceCourierID(),
		inline.RecipientName, inline.SignedAt,
		inline.SignatureRef, inline.PhotoRef, inline.Location, inline.Notes)
	if err != nil {
		return err
	}

	return proofRepo.Add(ctx, proof)
}

func (h IngestScanEventCommandHandler) deactivateAssignment(
	ctx context.Context, uow IngestScanEventUoW, parcelID kernel.UUID, at time.Time,
) error {
	assignmentRepo := uow.AssignmentRepository()

	assignment, err := assignmentRepo.GetActiveByParcel(ctx, parcelID)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	assignment.Deactivate(at)
	return assignmentRepo.Update(ctx, assignment)
}
