package services

import (
	"sort"
	"time"

	"parcels/internal/core/domain/model/parcel"
)

// ScanResult is the outcome of validating one scan event against a parcel's
// lifecycle.
//
// Accepted=false means the event failed validation and carries a Reason; it is
// still appended to the scan log for audit. Accepted=true with Applied=false
// means the event was legal at its own timestamp but arrived late and must not
// move the parcel's current status. Applied=true means Status is the parcel's
// new current status.
type ScanResult struct {
	Accepted bool
	Applied  bool
	Status   parcel.Status
	Reason   parcel.RejectionReason
}

// ScanApplier is a domain service deciding the outcome of scan events against
// the parcel lifecycle state machine.
//
// Key responsibilities:
//   - Validating in-order events against the parcel's current status
//   - Replaying the accepted event history to validate late events against
//     the status as of their own timestamp
//   - Enforcing the proof-of-delivery guard on delivered events
//
// Business rules:
//   - Events are applied in event_time order; an event timestamped before the
//     latest applied event is "late" and can never change the current status
//   - A late event that was legal at its timestamp is accepted for the
//     historical record but not applied
//   - A delivered event requires a proof of delivery at the moment of
//     processing, on both the in-order and the late path
//   - Rejections never mutate the parcel; the caller appends the event to the
//     log either way
//
// Example usage:
//
//	applier := services.NewScanApplier()
//	result := applier.Apply(p, history, incoming, hasProof)
//	if result.Applied {
//	    // p.Status() has advanced; persist the parcel
//	}
//	// persist incoming with result's outcome in all cases
type ScanApplier struct{}

// NewScanApplier creates a new ScanApplier instance.
func NewScanApplier() ScanApplier {
	return ScanApplier{}
}

// Apply validates the incoming event, mutates the parcel when the event is
// applied, and marks the incoming event with its outcome.
//
// history is the parcel's previously recorded scan log; only accepted events
// participate in replay. hasProof reports whether a proof of delivery exists
// for the parcel, including one submitted in the same request.
//
// Apply returns an error only for structurally broken input (unconstructed
// parcel or event). A merely illegal transition is not an error: it comes back
// as an unaccepted ScanResult.
func (s ScanApplier) Apply(
	p *parcel.Parcel,
	history []*parcel.ScanEvent,
	incoming *parcel.ScanEvent,
	hasProof bool,
) (ScanResult, error) {
	if err := p.Validate(); err != nil {
		return ScanResult{}, err
	}
	if err := incoming.Validate(); err != nil {
		return ScanResult{}, err
	}

	if s.isLate(history, incoming) {
		return s.applyLate(p, history, incoming, hasProof), nil
	}
	return s.applyInOrder(p, incoming, hasProof), nil
}

// isLate reports whether the incoming event is timestamped before the latest
// applied event. Ties count as in-order.
func (s ScanApplier) isLate(history []*parcel.ScanEvent, incoming *parcel.ScanEvent) bool {
	for _, event := range history {
		if event.IsApplied() && incoming.Time().Before(event.Time()) {
			return true
		}
	}
	return false
}

func (s ScanApplier) applyInOrder(p *parcel.Parcel, incoming *parcel.ScanEvent, hasProof bool) ScanResult {
	if incoming.Type() == parcel.EventDelivered && !hasProof {
		return s.reject(p, incoming, parcel.ReasonMissingProofOfDelivery)
	}

	if !p.Status().CanApply(incoming.Type()) {
		return s.reject(p, incoming, parcel.ReasonInvalidTransition)
	}

	// CanApply has already vetted the pair, Advance cannot fail here.
	_ = p.Advance(incoming.Type(), incoming.Time())
	incoming.MarkAccepted(true)
	return ScanResult{Accepted: true, Applied: true, Status: p.Status()}
}

// applyLate validates the event against the status the parcel had as of the
// event's timestamp, recomputed by replaying the accepted history up to that
// point. A legal late event is folded into the record without touching the
// parcel's current status.
func (s ScanApplier) applyLate(
	p *parcel.Parcel,
	history []*parcel.ScanEvent,
	incoming *parcel.ScanEvent,
	hasProof bool,
) ScanResult {
	if incoming.Type() == parcel.EventDelivered && !hasProof {
		return s.reject(p, incoming, parcel.ReasonMissingProofOfDelivery)
	}

	statusAsOf := s.replayStatus(history, incoming.Time())
	if !statusAsOf.CanApply(incoming.Type()) {
		return s.reject(p, incoming, parcel.ReasonInvalidTransition)
	}

	incoming.MarkAccepted(false)
	return ScanResult{Accepted: true, Applied: false, Status: p.Status()}
}

// replayStatus folds the accepted events with event_time <= asOf over the
// initial created status, in event_time order with recorded_at as tie-break.
// Events that do not fit the status reached so far are skipped, mirroring how
// they were skipped (accepted but not applied) when they were first ingested.
func (s ScanApplier) replayStatus(history []*parcel.ScanEvent, asOf time.Time) parcel.Status {
	replayable := make([]*parcel.ScanEvent, 0, len(history))
	for _, event := range history {
		if event.IsAccepted() && !event.Time().After(asOf) {
			replayable = append(replayable, event)
		}
	}

	sort.SliceStable(replayable, func(i, j int) bool {
		if replayable[i].Time().Equal(replayable[j].Time()) {
			return replayable[i].RecordedAt().Before(replayable[j].RecordedAt())
		}
		return replayable[i].Time().Before(replayable[j].Time())
	})

	status := parcel.Created
	for _, event := range replayable {
		next, err := status.Apply(event.Type())
		if err != nil {
			continue
		}
		status = next
	}
	return status
}

func (s ScanApplier) reject(p *parcel.Parcel, incoming *parcel.ScanEvent, reason parcel.RejectionReason) ScanResult {
	incoming.MarkRejected(reason)
	return ScanResult{Accepted: false, Applied: false, Status: p.Status(), Reason: reason}
}
