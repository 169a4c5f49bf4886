package commands_test

import (
	"testing"

	"parcels/internal/core/application/usecases/commands"
	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func makeRegisterParcelCommand(t *testing.T) commands.RegisterParcelCommand {
	t.Helper()

	cmd, err := commands.NewRegisterParcelCommand(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		kernel.NewUUID(), kernel.NewUUID(),
		nil, nil, 1200, 5000, nil)
	require.NoError(t, err)
	return cmd
}

func TestRegisterParcelCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	cmd := makeRegisterParcelCommand(t)

	parcelRepo := new(MockParcelRepository)
	directoryRepo := new(MockDirectoryRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DirectoryRepository").Return(directoryRepo).Once(),
		directoryRepo.On("HubExists", mock.Anything, cmd.OriginHubID()).Return(true, nil).Once(),
		directoryRepo.On("HubExists", mock.Anything, cmd.DestinationHubID()).Return(true, nil).Once(),
		uow.On("ParcelRepository").Return(parcelRepo).Once(),
		parcelRepo.On("Add", mock.Anything, mock.AnythingOfType("*parcel.Parcel")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockRegisterParcelUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewRegisterParcelCommandHandler(factory)
	trackingCode, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.NoError(t, trackingCode.Validate())
	parcelRepo.AssertExpectations(t)
	directoryRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestRegisterParcelCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.RegisterParcelCommand{} // not constructed properly
	factory := new(MockRegisterParcelUoWFactory)
	h := commands.NewRegisterParcelCommandHandler(factory)
	_, err := h.Handle(ctx, cmd)
	require.Error(t, err)
}

func TestRegisterParcelCommandHandler_Handle_UnknownHub(t *testing.T) {
	ctx := t.Context()
	cmd := makeRegisterParcelCommand(t)

	directoryRepo := new(MockDirectoryRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DirectoryRepository").Return(directoryRepo).Once(),
		directoryRepo.On("HubExists", mock.Anything, cmd.OriginHubID()).Return(false, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockRegisterParcelUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewRegisterParcelCommandHandler(factory)
	_, err := h.Handle(ctx, cmd)
	require.ErrorIs(t, err, commands.ErrUnknownHub)
	directoryRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestRegisterParcelCommandHandler_Handle_TrackingCodeCollisionRetried(t *testing.T) {
	ctx := t.Context()
	cmd := makeRegisterParcelCommand(t)

	parcelRepo := new(MockParcelRepository)
	directoryRepo := new(MockDirectoryRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Twice()
	uow.On("DirectoryRepository").Return(directoryRepo).Twice()
	directoryRepo.On("HubExists", mock.Anything, mock.Anything).Return(true, nil).Times(4)
	uow.On("ParcelRepository").Return(parcelRepo).Twice()
	parcelRepo.On("Add", mock.Anything, mock.AnythingOfType("*parcel.Parcel")).
		Return(ports.ErrConcurrencyConflict).Once()
	parcelRepo.On("Add", mock.Anything, mock.AnythingOfType("*parcel.Parcel")).
		Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Twice()

	factory := new(MockRegisterParcelUoWFactory)
	factory.On("Create").Return(uow).Twice()

	h := commands.NewRegisterParcelCommandHandler(factory)
	trackingCode, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.NoError(t, trackingCode.Validate())
	parcelRepo.AssertExpectations(t)
	factory.AssertExpectations(t)
}
