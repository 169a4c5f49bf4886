package assignmentrepo_test

import (
	"context"
	"testing"
	"time"

	"parcels/internal/adapters/out/postgres/assignmentrepo"
	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/route"
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

// AssignmentRepositoryIntegrationTestSuite verifies that the partial unique
// index really is the backstop for the one-active-assignment invariant.
type AssignmentRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *assignmentrepo.GormAssignmentRepository
	tracker    *MockAggregateTracker
}

func (suite *AssignmentRepositoryIntegrationTestSuite) SetupSuite() {
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

	suite.Require().NoError(db.AutoMigrate(&assignmentrepo.AssignmentDTO{}))
}

func (suite *AssignmentRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE assignments").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Return()
	suite.repository = assignmentrepo.NewGormAssignmentRepository(suite.db, suite.tracker)
}

func (suite *AssignmentRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *AssignmentRepositoryIntegrationTestSuite) newAssignment(
	parcelID, routeID kernel.UUID,
) *route.Assignment {
	assignment, err := route.NewAssignment(
		kernel.NewUUID(), parcelID, routeID,
		time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC))
	suite.Require().NoError(err)
	return assignment
}

func (suite *AssignmentRepositoryIntegrationTestSuite) TestAddAndGetActiveByParcel() {
	ctx := context.Background()
	parcelID := kernel.NewUUID()
	assignment := suite.newAssignment(parcelID, kernel.NewUUID())

	suite.Require().NoError(suite.repository.Add(ctx, assignment))

	retrieved, err := suite.repository.GetActiveByParcel(ctx, parcelID)
	suite.Require().NoError(err)
	suite.True(retrieved.IsEqual(assignment))
	suite.True(retrieved.IsActive())
}

func (suite *AssignmentRepositoryIntegrationTestSuite) TestAdd_SecondActiveForParcel_Conflict() {
	ctx := context.Background()
	parcelID := kernel.NewUUID()

	suite.Require().NoError(suite.repository.Add(ctx, suite.newAssignment(parcelID, kernel.NewUUID())))

	err := suite.repository.Add(ctx, suite.newAssignment(parcelID, kernel.NewUUID()))
	suite.Require().ErrorIs(err, ports.ErrConcurrencyConflict)
}

func (suite *AssignmentRepositoryIntegrationTestSuite) TestDeactivateThenAdd_Succeeds() {
	ctx := context.Background()
	parcelID := kernel.NewUUID()

	first := suite.newAssignment(parcelID, kernel.NewUUID())
	suite.Require().NoError(suite.repository.Add(ctx, first))

	first.Deactivate(time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC))
	suite.Require().NoError(suite.repository.Update(ctx, first))

	second := suite.newAssignment(parcelID, kernel.NewUUID())
	suite.Require().NoError(suite.repository.Add(ctx, second))

	active, err := suite.repository.GetActiveByParcel(ctx, parcelID)
	suite.Require().NoError(err)
	suite.True(active.IsEqual(second))
}

func (suite *AssignmentRepositoryIntegrationTestSuite) TestUpdate_PersistsDeactivation() {
	ctx := context.Background()
	parcelID := kernel.NewUUID()
	assignment := suite.newAssignment(parcelID, kernel.NewUUID())
	suite.Require().NoError(suite.repository.Add(ctx, assignment))

	deactivatedAt := time.Date(2026, 3, 14, 11, 30, 0, 0, time.UTC)
	assignment.Deactivate(deactivatedAt)
	suite.Require().NoError(suite.repository.Update(ctx, assignment))

	_, err := suite.repository.GetActiveByParcel(ctx, parcelID)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *AssignmentRepositoryIntegrationTestSuite) TestGetActiveByRoute() {
	ctx := context.Background()
	routeID := kernel.NewUUID()

	onRoute1 := suite.newAssignment(kernel.NewUUID(), routeID)
	onRoute2 := suite.newAssignment(kernel.NewUUID(), routeID)
	elsewhere := suite.newAssignment(kernel.NewUUID(), kernel.NewUUID())
	released := suite.newAssignment(kernel.NewUUID(), routeID)

	for _, a := range []*route.Assignment{onRoute1, onRoute2, elsewhere, released} {
		suite.Require().NoError(suite.repository.Add(ctx, a))
	}
	released.Deactivate(time.Now().UTC())
	suite.Require().NoError(suite.repository.Update(ctx, released))

	active, err := suite.repository.GetActiveByRoute(ctx, routeID)
	suite.Require().NoError(err)
	suite.Len(active, 2)
}

func (suite *AssignmentRepositoryIntegrationTestSuite) TestGetActiveByParcel_NoneActive() {
	_, err := suite.repository.GetActiveByParcel(context.Background(), kernel.NewUUID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func TestAssignmentRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(AssignmentRepositoryIntegrationTestSuite))
}
