package postgres_test

import (
	"context"
	"testing"
	"time"

	"parcels/internal/adapters/out/postgres"
	"parcels/internal/adapters/out/postgres/parcelrepo"
	"parcels/internal/adapters/out/postgres/scaneventrepo"
	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/parcel"
	"parcels/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	pgcontainer "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite verifies that repositories obtained from one
// unit of work share a transaction: the scan log append and the parcel status
// update land together or not at all.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *pgcontainer.PostgresContainer
	db        *gorm.DB
	factory   *postgres.GormUnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := pgcontainer.Run(ctx,
		"postgres:15-alpine",
		pgcontainer.WithDatabase("testdb"),
		pgcontainer.WithUsername("testuser"),
		pgcontainer.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(
		&parcelrepo.ParcelDTO{}, &scaneventrepo.ScanEventDTO{}))

	suite.factory = postgres.NewGormUnitOfWorkFactory(db)
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE parcels, scan_events").Error)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) newParcel() *parcel.Parcel {
	p, err := parcel.NewParcel(
		kernel.NewUUID(), kernel.NewTrackingCode(),
		kernel.NewUUID(), kernel.NewUUID(),
		kernel.NewUUID(), kernel.NewUUID(),
		nil, nil, 1200, 5000, time.Now().UTC(), nil)
	suite.Require().NoError(err)
	return p
}

func (suite *UnitOfWorkIntegrationTestSuite) newScanEvent(p *parcel.Parcel) *parcel.ScanEvent {
	event, err := parcel.NewScanEvent(
		kernel.NewUUID(), p.ID(), parcel.EventPickedUp,
		time.Now().UTC(), nil, nil, "", time.Now().UTC())
	suite.Require().NoError(err)
	event.MarkAccepted(true)
	return event
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_PersistsAcrossRepositories() {
	ctx := context.Background()
	p := suite.newParcel()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.ParcelRepository().Add(ctx, p))
	suite.Require().NoError(uow.ScanEventRepository().Add(ctx, suite.newScanEvent(p)))
	suite.Require().NoError(uow.Commit(ctx))

	reader := suite.factory.Create()
	retrieved, err := reader.ParcelRepository().Get(ctx, p.ID())
	suite.Require().NoError(err)
	suite.True(retrieved.IsEqual(p))

	events, err := reader.ScanEventRepository().GetByParcel(ctx, p.ID())
	suite.Require().NoError(err)
	suite.Len(events, 1)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollback_DiscardsAcrossRepositories() {
	ctx := context.Background()
	p := suite.newParcel()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.ParcelRepository().Add(ctx, p))
	suite.Require().NoError(uow.ScanEventRepository().Add(ctx, suite.newScanEvent(p)))
	suite.Require().NoError(uow.Rollback(ctx))

	reader := suite.factory.Create()
	_, err := reader.ParcelRepository().Get(ctx, p.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)

	events, err := reader.ScanEventRepository().GetByParcel(ctx, p.ID())
	suite.Require().NoError(err)
	suite.Empty(events)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_WithoutBegin_Fails() {
	uow := suite.factory.Create()
	suite.Require().ErrorIs(uow.Commit(context.Background()), gorm.ErrInvalidTransaction)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestBegin_Twice_IsNoop() {
	ctx := context.Background()
	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Rollback(ctx))
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
