// Package postgres provides the GORM-based Unit of Work implementation.
// A unit of work spans one business transaction: the ingest of a scan event,
// a route assignment swap, a route close-out. Repositories obtained from it
// share the transaction, so the scan log append, the parcel status update and
// the assignment deactivation commit or roll back together.
//
// Usage:
//
//	factory := NewGormUnitOfWorkFactory(db)
//	uow := factory.Create()
//
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer uow.Rollback(ctx)
//
//	if err := uow.ParcelRepository().Update(ctx, parcel); err != nil {
//	    return err
//	}
//
//	return uow.Commit(ctx)
package postgres

import (
	"context"

	"parcels/internal/adapters/out/postgres/assignmentrepo"
	"parcels/internal/adapters/out/postgres/directoryrepo"
	"parcels/internal/adapters/out/postgres/parcelrepo"
	"parcels/internal/adapters/out/postgres/proofrepo"
	"parcels/internal/adapters/out/postgres/routerepo"
	"parcels/internal/adapters/out/postgres/scaneventrepo"
	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/ports"

	"gorm.io/gorm"
)

// trackedAggregate represents an aggregate modified during the unit of work.
// Tracking is the hook for post-commit processing such as an outbox.
type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate interface{}
}

// GormUnitOfWorkFactory creates UnitOfWork instances over a shared GORM
// connection. Each business operation gets a fresh instance with its own
// transaction state.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

// NewGormUnitOfWorkFactory creates a factory for GORM-based unit of work instances.
func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create produces a new UnitOfWork ready for one business transaction.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork coordinates one database transaction across the parcel,
// scan event, assignment, route, proof and directory repositories.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	trackedAggregates []trackedAggregate
}

// Begin starts a new database transaction. Calling Begin again on an
// instance with an open transaction is a no-op, never a nested transaction.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		return uow.tx.Error
	}

	return nil
}

// Commit finalizes the current transaction. After commit the transaction is
// closed and the instance cannot be reused.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return err
}

// Rollback discards the current transaction.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

// ParcelRepository returns a parcel repository bound to the current
// transaction, or to the main connection when none is active.
func (uow *GormUnitOfWork) ParcelRepository() ports.ParcelRepository {
	return parcelrepo.NewGormParcelRepository(uow.conn(), uow)
}

// ScanEventRepository returns a scan event repository bound to the current transaction.
func (uow *GormUnitOfWork) ScanEventRepository() ports.ScanEventRepository {
	return scaneventrepo.NewGormScanEventRepository(uow.conn(), uow)
}

// AssignmentRepository returns an assignment repository bound to the current transaction.
func (uow *GormUnitOfWork) AssignmentRepository() ports.AssignmentRepository {
	return assignmentrepo.NewGormAssignmentRepository(uow.conn(), uow)
}

// RouteRepository returns a route repository bound to the current transaction.
func (uow *GormUnitOfWork) RouteRepository() ports.RouteRepository {
	return routerepo.NewGormRouteRepository(uow.conn(), uow)
}

// ProofOfDeliveryRepository returns a proof repository bound to the current transaction.
func (uow *GormUnitOfWork) ProofOfDeliveryRepository() ports.ProofOfDeliveryRepository {
	return proofrepo.NewGormProofOfDeliveryRepository(uow.conn(), uow)
}

// DirectoryRepository returns a directory repository bound to the current transaction.
func (uow *GormUnitOfWork) DirectoryRepository() ports.DirectoryRepository {
	return directoryrepo.NewGormDirectoryRepository(uow.conn())
}

// TrackAggregate registers a domain aggregate as modified within this unit
// of work. Repositories call it on every successful write.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate interface{}) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}
