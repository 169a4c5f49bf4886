package parcelrepo_test

import (
	"context"
	"testing"
	"time"

	"parcels/internal/adapters/out/postgres/parcelrepo"
	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/parcel"
	"parcels/internal/core/ports"
	"parcels/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of the aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate interface{}) {
	m.Called(id, aggregate)
}

// ParcelRepositoryIntegrationTestSuite verifies parcel persistence behavior
// against a real PostgreSQL container.
type ParcelRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *parcelrepo.GormParcelRepository
	tracker    *MockAggregateTracker
}

func (suite *ParcelRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
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

	suite.Require().NoError(db.AutoMigrate(&parcelrepo.ParcelDTO{}))
}

func (suite *ParcelRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE parcels").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Return()
	suite.repository = parcelrepo.NewGormParcelRepository(suite.db, suite.tracker)
}

func (suite *ParcelRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *ParcelRepositoryIntegrationTestSuite) newParcel(slaDueAt *time.Time) *parcel.Parcel {
	createdAt := time.Date(2026, 3, 14, 8, 0, 0, 0, time.UTC)
	p, err := parcel.NewParcel(
		kernel.NewUUID(), kernel.NewTrackingCode(),
		kernel.NewUUID(), kernel.NewUUID(),
		kernel.NewUUID(), kernel.NewUUID(),
		nil, nil, 1200, 5000, createdAt, slaDueAt)
	suite.Require().NoError(err)
	return p
}

func (suite *ParcelRepositoryIntegrationTestSuite) TestAddAndGet_RoundTrip() {
	ctx := context.Background()
	p := suite.newParcel(nil)

	suite.Require().NoError(suite.repository.Add(ctx, p))

	retrieved, err := suite.repository.Get(ctx, p.ID())
	suite.Require().NoError(err)
	suite.True(retrieved.IsEqual(p))
	suite.True(retrieved.TrackingCode().IsEqual(p.TrackingCode()))
	suite.Equal(parcel.Created, retrieved.Status())
	suite.Equal(int64(1), retrieved.Version())
	suite.Nil(retrieved.DeliveredAt())
}

func (suite *ParcelRepositoryIntegrationTestSuite) TestAdd_DuplicateTrackingCode_Conflict() {
	ctx := context.Background()
	first := suite.newParcel(nil)
	suite.Require().NoError(suite.repository.Add(ctx, first))

	duplicate, err := parcel.NewParcel(
		kernel.NewUUID(), first.TrackingCode(),
		kernel.NewUUID(), kernel.NewUUID(),
		kernel.NewUUID(), kernel.NewUUID(),
		nil, nil, 800, 0, time.Now().UTC(), nil)
	suite.Require().NoError(err)

	err = suite.repository.Add(ctx, duplicate)
	suite.Require().ErrorIs(err, ports.ErrConcurrencyConflict)
}

func (suite *ParcelRepositoryIntegrationTestSuite) TestUpdate_PersistsStatusAndBumpsVersion() {
	ctx := context.Background()
	p := suite.newParcel(nil)
	suite.Require().NoError(suite.repository.Add(ctx, p))

	suite.Require().NoError(p.Advance(parcel.EventPickedUp, time.Now().UTC()))
	suite.Require().NoError(suite.repository.Update(ctx, p))

	retrieved, err := suite.repository.Get(ctx, p.ID())
	suite.Require().NoError(err)
	suite.Equal(parcel.InTransit, retrieved.Status())
	suite.Equal(int64(2), retrieved.Version())
}

func (suite *ParcelRepositoryIntegrationTestSuite) TestUpdate_StaleVersion_Conflict() {
	ctx := context.Background()
	p := suite.newParcel(nil)
	suite.Require().NoError(suite.repository.Add(ctx, p))

	// A second snapshot of the same row wins the race.
	winner, err := suite.repository.Get(ctx, p.ID())
	suite.Require().NoError(err)
	suite.Require().NoError(winner.Advance(parcel.EventPickedUp, time.Now().UTC()))
	suite.Require().NoError(suite.repository.Update(ctx, winner))

	suite.Require().NoError(p.Advance(parcel.EventPickedUp, time.Now().UTC()))
	err = suite.repository.Update(ctx, p)
	suite.Require().ErrorIs(err, ports.ErrConcurrencyConflict)
}

func (suite *ParcelRepositoryIntegrationTestSuite) TestUpdate_PersistsDeliveredAt() {
	ctx := context.Background()
	p := suite.newParcel(nil)
	suite.Require().NoError(suite.repository.Add(ctx, p))

	deliveredAt := time.Date(2026, 3, 14, 16, 45, 0, 0, time.UTC)
	for _, event := range []parcel.EventType{
		parcel.EventPickedUp, parcel.EventArrivedHub,
		parcel.EventOutForDelivery, parcel.EventDelivered,
	} {
		suite.Require().NoError(p.Advance(event, deliveredAt))
	}
	suite.Require().NoError(suite.repository.Update(ctx, p))

	retrieved, err := suite.repository.Get(ctx, p.ID())
	suite.Require().NoError(err)
	suite.Equal(parcel.Delivered, retrieved.Status())
	suite.Require().NotNil(retrieved.DeliveredAt())
	suite.True(retrieved.DeliveredAt().Equal(deliveredAt))
}

func (suite *ParcelRepositoryIntegrationTestSuite) TestGetByTrackingCode() {
	ctx := context.Background()
	p := suite.newParcel(nil)
	suite.Require().NoError(suite.repository.Add(ctx, p))

	retrieved, err := suite.repository.GetByTrackingCode(ctx, p.TrackingCode())
	suite.Require().NoError(err)
	suite.True(retrieved.IsEqual(p))

	_, err = suite.repository.GetByTrackingCode(ctx, kernel.NewTrackingCode())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *ParcelRepositoryIntegrationTestSuite) TestGet_NotFound() {
	_, err := suite.repository.Get(context.Background(), kernel.NewUUID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *ParcelRepositoryIntegrationTestSuite) TestGetOverdue_FiltersTerminalAndFuture() {
	ctx := context.Background()
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	pastDue := now.Add(-2 * time.Hour)
	futureDue := now.Add(2 * time.Hour)

	overdue := suite.newParcel(&pastDue)
	notYetDue := suite.newParcel(&futureDue)
	noDeadline := suite.newParcel(nil)

	deliveredLate := suite.newParcel(&pastDue)
	for _, event := range []parcel.EventType{
		parcel.EventPickedUp, parcel.EventArrivedHub,
		parcel.EventOutForDelivery, parcel.EventDelivered,
	} {
		suite.Require().NoError(deliveredLate.Advance(event, now.Add(-time.Hour)))
	}

	for _, p := range []*parcel.Parcel{overdue, notYetDue, noDeadline, deliveredLate} {
		suite.Require().NoError(suite.repository.Add(ctx, p))
	}

	result, err := suite.repository.GetOverdue(ctx, now)
	suite.Require().NoError(err)
	suite.Require().Len(result, 1)
	suite.True(result[0].IsEqual(overdue))
}

func TestParcelRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(ParcelRepositoryIntegrationTestSuite))
}
