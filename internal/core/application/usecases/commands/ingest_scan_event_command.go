package commands

import (
	"errors"
	"time"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/parcel"
	"parcels/internal/pkg/errs"
	"parcels/internal/pkg/guard"
)

var ErrIngestScanEventCommandIsNotConstructed = errors.New(
	"IngestScanEventCommand must be created via NewIngestScanEventCommand constructor",
)

// InlineProof is an optional proof of delivery submitted atomically with a
// delivered scan event. It lets a courier close out a delivery in one request
// instead of submitting the proof first and the scan second.
type InlineProof struct {
	RecipientName string
	SignedAt      time.Time
	SignatureRef  *string
	PhotoRef      *string
	Location      *kernel.GeoPoint
	Notes         string
}

// IngestScanEventCommand represents one reported handling observation of a
// parcel. sourceHubID and sourceCourierID may each be set, both, or neither;
// the engine does not require mutual exclusion between them.
//
// Example:
//
//	cmd, err := NewIngestScanEventCommand(
//	    parcelID, parcel.EventArrivedHub, scanTime, &hubID, nil, "dock 3", nil)
//	if err != nil {
//	    return fmt.Errorf("invalid scan event: %w", err)
//	}
//
//	handler := NewIngestScanEventCommandHandler(uowFactory, applier)
//	result, err := handler.Handle(ctx, cmd)
//	if !result.Accepted {
//	    // the event is logged; result.Reason says why it did not apply
//	}
type IngestScanEventCommand struct { //nolint:recvcheck //using for validation
	parcelID        kernel.UUID
	eventType       parcel.EventType
	eventTime       time.Time
	sourceHubID     *kernel.UUID
	sourceCourierID *kernel.UUID
	notes           string
	proof           *InlineProof

	guard guard.ConstructorGuard
}

// NewIngestScanEventCommand creates a command to ingest a scan event.
// Validates the parcel reference, the event type, a non-zero event time and,
// when present, the source references and the inline proof payload.
func NewIngestScanEventCommand(
	parcelID kernel.UUID,
	eventType parcel.EventType,
	eventTime time.Time,
	sourceHubID *kernel.UUID,
	sourceCourierID *kernel.UUID,
	notes string,
	proof *InlineProof,
) (IngestScanEventCommand, error) {
	command := IngestScanEventCommand{
		sourceHubID:     sourceHubID,
		sourceCourierID: sourceCourierID,
		notes:           notes,
		proof:           proof,
		guard:           guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setParcelID(parcelID),
		command.setEventType(eventType),
		command.setEventTime(eventTime),
		command.validateSources(),
		command.validateProof(),
	); err != nil {
		return IngestScanEventCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c IngestScanEventCommand) Validate() error {
	return c.guard.Validate(ErrIngestScanEventCommandIsNotConstructed)
}

// ParcelID returns the parcel the event belongs to.
func (c IngestScanEventCommand) ParcelID() kernel.UUID { return c.parcelID }

// EventType returns the reported event type.
func (c IngestScanEventCommand) EventType() parcel.EventType { return c.eventType }

// EventTime returns when the handling was observed.
func (c IngestScanEventCommand) EventTime() time.Time { return c.eventTime }

// SourceHubID returns the reporting hub, or nil.
func (c IngestScanEventCommand) SourceHubID() *kernel.UUID { return c.sourceHubID }

// SourceCourierID returns the reporting courier, or nil.
func (c IngestScanEventCommand) SourceCourierID() *kernel.UUID { return c.sourceCourierID }

// Notes returns the free-text notes attached by the scanner.
func (c IngestScanEventCommand) Notes() string { return c.notes }

// Proof returns the inline proof of delivery, or nil.
func (c IngestScanEventCommand) Proof() *InlineProof { return c.proof }

func (c *IngestScanEventCommand) setParcelID(parcelID kernel.UUID) error {
	if err := parcelID.Validate(); err != nil {
		return err
	}
	c.parcelID = parcelID
	return nil
}

func (c *IngestScanEventCommand) setEventType(eventType parcel.EventType) error {
	if err := eventType.Validate(); err != nil {
		return err
	}
	c.eventType = eventType
	return nil
}

func (c *IngestScanEventCommand) setEventTime(eventTime time.Time) error {
	if eventTime.IsZero() {
		return errs.NewValueIsRequiredError("eventTime")
	}
	c.eventTime = eventTime
	return nil
}

func (c *IngestScanEventCommand) validateSources() error {
	if c.sourceHubID != nil {
		if err := c.sourceHubID.Validate(); err != nil {
			return err
		}
	}
	if c.sourceCourierID != nil {
		if err := c.sourceCourierID.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func (c *IngestScanEventCommand) validateProof() error {
	if c.proof == nil {
		return nil
	}
	if c.proof.RecipientName == "" {
		return errs.NewValueIsRequiredError("proof.recipientName")
	}
	if c.proof.SignedAt.IsZero() {
		return errs.NewValueIsRequiredError("proof.signedAt")
	}
	return nil
}
