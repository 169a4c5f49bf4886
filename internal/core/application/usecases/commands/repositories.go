// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"parcels/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// ParcelRepoFactory provides access to the parcel repository within a transaction.
	ParcelRepoFactory interface {
		ParcelRepository() ports.ParcelRepository
	}

	// ScanEventRepoFactory provides access to the scan-event log within a transaction.
	ScanEventRepoFactory interface {
		ScanEventRepository() ports.ScanEventRepository
	}

	// AssignmentRepoFactory provides access to the assignment repository within a transaction.
	AssignmentRepoFactory interface {
		AssignmentRepository() ports.AssignmentRepository
	}

	// RouteRepoFactory provides access to the route repository within a transaction.
	RouteRepoFactory interface {
		RouteRepository() ports.RouteRepository
	}

	// ProofRepoFactory provides access to the proof-of-delivery repository within a transaction.
	ProofRepoFactory interface {
		ProofOfDeliveryRepository() ports.ProofOfDeliveryRepository
	}

	// DirectoryRepoFactory provides read access to hub and courier reference data.
	DirectoryRepoFactory interface {
		DirectoryRepository() ports.DirectoryRepository
	}

	// RegisterParcelUoW manages transactions for parcel registration.
	RegisterParcelUoW interface {
		TxManager
		ParcelRepoFactory
		DirectoryRepoFactory
	}

	// RegisterParcelUoWFactory creates new parcel registration unit of work instances.
	RegisterParcelUoWFactory interface {
		Create() RegisterParcelUoW
	}

	// IngestScanEventUoW manages transactions for scan-event ingestion.
	// Ingestion touches the parcel, the log, the proof record and, on terminal
	// transitions, the active assignment.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   p, err := uow.ParcelRepository().GetForUpdate(ctx, parcelID)
	//   // ... validate the event, append it, update the parcel
	//
	//   err = uow.Commit(ctx)
	IngestScanEventUoW interface {
		TxManager
		ParcelRepoFactory
		ScanEventRepoFactory
		ProofRepoFactory
		AssignmentRepoFactory
		DirectoryRepoFactory
	}

	// IngestScanEventUoWFactory creates new scan ingestion unit of work instances.
	IngestScanEventUoWFactory interface {
		Create() IngestScanEventUoW
	}

	// AssignmentUoW manages transactions for route assignment operations.
	AssignmentUoW interface {
		TxManager
		ParcelRepoFactory
		RouteRepoFactory
		AssignmentRepoFactory
	}

	// AssignmentUoWFactory creates new assignment unit of work instances.
	AssignmentUoWFactory interface {
		Create() AssignmentUoW
	}

	// ProofUoW manages transactions for proof-of-delivery submission.
	ProofUoW interface {
		TxManager
		ParcelRepoFactory
		ProofRepoFactory
	}

	// ProofUoWFactory creates new proof submission unit of work instances.
	ProofUoWFactory interface {
		Create() ProofUoW
	}

	// RouteUoW manages transactions for route lifecycle operations.
	// Completing or canceling a route also releases its active assignments.
	RouteUoW interface {
		TxManager
		RouteRepoFactory
		AssignmentRepoFactory
		DirectoryRepoFactory
	}

	// RouteUoWFactory creates new route unit of work instances.
	RouteUoWFactory interface {
		Create() RouteUoW
	}
)
