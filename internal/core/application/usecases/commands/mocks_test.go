package commands_test

import (
	"context"
	"testing"
	"time"

	"parcels/internal/core/application/usecases/commands"
	"parcels/internal/core/domain/model/directory"
	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/parcel"
	"parcels/internal/core/domain/model/route"
	"parcels/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockParcelRepository struct{ mock.Mock }

func (m *MockParcelRepository) Add(ctx context.Context, aggregate *parcel.Parcel) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockParcelRepository) Update(ctx context.Context, aggregate *parcel.Parcel) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockParcelRepository) Get(ctx context.Context, id kernel.UUID) (*parcel.Parcel, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*parcel.Parcel), args.Error(1)
}

func (m *MockParcelRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*parcel.Parcel, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*parcel.Parcel), args.Error(1)
}

func (m *MockParcelRepository) GetByTrackingCode(
	ctx context.Context, trackingCode kernel.TrackingCode,
) (*parcel.Parcel, error) {
	args := m.Called(ctx, trackingCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*parcel.Parcel), args.Error(1)
}

func (m *MockParcelRepository) GetOverdue(ctx context.Context, before time.Time) ([]*parcel.Parcel, error) {
	args := m.Called(ctx, before)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*parcel.Parcel), args.Error(1)
}

type MockScanEventRepository struct{ mock.Mock }

func (m *MockScanEventRepository) Add(ctx context.Context, event *parcel.ScanEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockScanEventRepository) GetByParcel(
	ctx context.Context, parcelID kernel.UUID,
) ([]*parcel.ScanEvent, error) {
	args := m.Called(ctx, parcelID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*parcel.ScanEvent), args.Error(1)
}

type MockAssignmentRepository struct{ mock.Mock }

func (m *MockAssignmentRepository) Add(ctx context.Context, assignment *route.Assignment) error {
	args := m.Called(ctx, assignment)
	return args.Error(0)
}

func (m *MockAssignmentRepository) Update(ctx context.Context, assignment *route.Assignment) error {
	args := m.Called(ctx, assignment)
	return args.Error(0)
}

func (m *MockAssignmentRepository) GetActiveByParcel(
	ctx context.Context, parcelID kernel.UUID,
) (*route.Assignment, error) {
	args := m.Called(ctx, parcelID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*route.Assignment), args.Error(1)
}

func (m *MockAssignmentRepository) GetActiveByRoute(
	ctx context.Context, routeID kernel.UUID,
) ([]*route.Assignment, error) {
	args := m.Called(ctx, routeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*route.Assignment), args.Error(1)
}

type MockRouteRepository struct{ mock.Mock }

func (m *MockRouteRepository) Add(ctx context.Context, aggregate *route.Route) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockRouteRepository) Update(ctx context.Context, aggregate *route.Route) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockRouteRepository) Get(ctx context.Context, id kernel.UUID) (*route.Route, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*route.Route), args.Error(1)
}

type MockProofRepository struct{ mock.Mock }

func (m *MockProofRepository) Add(ctx context.Context, proof *parcel.ProofOfDelivery) error {
	args := m.Called(ctx, proof)
	return args.Error(0)
}

func (m *MockProofRepository) GetByParcel(
	ctx context.Context, parcelID kernel.UUID,
) (*parcel.ProofOfDelivery, error) {
	args := m.Called(ctx, parcelID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*parcel.ProofOfDelivery), args.Error(1)
}

func (m *MockProofRepository) ExistsForParcel(ctx context.Context, parcelID kernel.UUID) (bool, error) {
	args := m.Called(ctx, parcelID)
	return args.Bool(0), args.Error(1)
}

type MockDirectoryRepository struct{ mock.Mock }

func (m *MockDirectoryRepository) GetHub(ctx context.Context, id kernel.UUID) (*directory.Hub, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*directory.Hub), args.Error(1)
}

func (m *MockDirectoryRepository) GetCourier(ctx context.Context, id kernel.UUID) (*directory.Courier, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*directory.Courier), args.Error(1)
}

func (m *MockDirectoryRepository) HubExists(ctx context.Context, id kernel.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockDirectoryRepository) CourierExists(ctx context.Context, id kernel.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// MockUoW satisfies every command UoW interface so one mock serves all handlers.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) ParcelRepository() ports.ParcelRepository {
	args := m.Called()
	return args.Get(0).(ports.ParcelRepository)
}

func (m *MockUoW) ScanEventRepository() ports.ScanEventRepository {
	args := m.Called()
	return args.Get(0).(ports.ScanEventRepository)
}

func (m *MockUoW) AssignmentRepository() ports.AssignmentRepository {
	args := m.Called()
	return args.Get(0).(ports.AssignmentRepository)
}

func (m *MockUoW) RouteRepository() ports.RouteRepository {
	args := m.Called()
	return args.Get(0).(ports.RouteRepository)
}

func (m *MockUoW) ProofOfDeliveryRepository() ports.ProofOfDeliveryRepository {
	args := m.Called()
	return args.Get(0).(ports.ProofOfDeliveryRepository)
}

func (m *MockUoW) DirectoryRepository() ports.DirectoryRepository {
	args := m.Called()
	return args.Get(0).(ports.DirectoryRepository)
}

type MockRegisterParcelUoWFactory struct{ mock.Mock }

func (m *MockRegisterParcelUoWFactory) Create() commands.RegisterParcelUoW {
	args := m.Called()
	return args.Get(0).(commands.RegisterParcelUoW)
}

type MockIngestScanEventUoWFactory struct{ mock.Mock }

func (m *MockIngestScanEventUoWFactory) Create() commands.IngestScanEventUoW {
	args := m.Called()
	return args.Get(0).(commands.IngestScanEventUoW)
}

type MockAssignmentUoWFactory struct{ mock.Mock }

func (m *MockAssignmentUoWFactory) Create() commands.AssignmentUoW {
	args := m.Called()
	return args.Get(0).(commands.AssignmentUoW)
}

type MockProofUoWFactory struct{ mock.Mock }

func (m *MockProofUoWFactory) Create() commands.ProofUoW {
	args := m.Called()
	return args.Get(0).(commands.ProofUoW)
}

type MockRouteUoWFactory struct{ mock.Mock }

func (m *MockRouteUoWFactory) Create() commands.RouteUoW {
	args := m.Called()
	return args.Get(0).(commands.RouteUoW)
}

func makeParcel(t *testing.T) *parcel.Parcel {
	t.Helper()

	p, err := parcel.NewParcel(
		kernel.NewUUID(), kernel.NewTrackingCode(),
		kernel.NewUUID(), kernel.NewUUID(),
		kernel.NewUUID(), kernel.NewUUID(),
		nil, nil, 1200, 5000,
		time.Date(2026, 3, 14, 8, 0, 0, 0, time.UTC), nil)
	require.NoError(t, err)
	return p
}

func makeOutForDeliveryParcel(t *testing.T) *parcel.Parcel {
	t.Helper()

	p := makeParcel(t)
	at := p.CreatedAt()
	for _, eventType := range []parcel.EventType{
		parcel.EventPickedUp, parcel.EventArrivedHub, parcel.EventOutForDelivery,
	} {
		at = at.Add(time.Hour)
		require.NoError(t, p.Advance(eventType, at))
	}
	return p
}

func makeDeliveredParcel(t *testing.T) *parcel.Parcel {
	t.Helper()

	p := makeOutForDeliveryParcel(t)
	require.NoError(t, p.Advance(parcel.EventDelivered, p.CreatedAt().Add(4*time.Hour)))
	return p
}

func makeRoute(t *testing.T) *route.Route {
	t.Helper()

	r, err := route.NewRoute(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	return r
}

func makeHistory(t *testing.T, p *parcel.Parcel, steps ...parcel.EventType) []*parcel.ScanEvent {
	t.Helper()

	history := make([]*parcel.ScanEvent, 0, len(steps))
	at := p.CreatedAt()
	for _, eventType := range steps {
		at = at.Add(time.Hour)
		event, err := parcel.NewScanEvent(
			kernel.NewUUID(), p.ID(), eventType, at, nil, nil, "", at)
		require.NoError(t, err)
		event.MarkAccepted(true)
		history = append(history, event)
	}
	return history
}
