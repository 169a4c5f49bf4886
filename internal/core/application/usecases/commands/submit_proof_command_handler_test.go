package commands_test

import (
	"testing"
	"time"

	"parcels/internal/core/application/usecases/commands"
	"parcels/internal/core/domain/model/parcel"
	"parcels/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func makeSubmitProofCommand(t *testing.T, p *parcel.Parcel) commands.SubmitProofCommand {
	t.Helper()

	cmd, err := commands.NewSubmitProofCommand(
		p.ID(), nil, "Jordan Lee",
		time.Date(2026, 3, 14, 16, 45, 0, 0, time.UTC), nil, nil, nil, "")
	require.NoError(t, err)
	return cmd
}

func TestSubmitProofCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	p := makeParcel(t)
	cmd := makeSubmitProofCommand(t, p)

	parcelRepo := new(MockParcelRepository)
	proofRepo := new(MockProofRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ParcelRepository").Return(parcelRepo).Once(),
		parcelRepo.On("Get", mock.Anything, p.ID()).Return(p, nil).Once(),
		uow.On("ProofOfDeliveryRepository").Return(proofRepo).Once(),
		proofRepo.On("ExistsForParcel", mock.Anything, p.ID()).Return(false, nil).Once(),
		proofRepo.On("Add", mock.Anything, mock.MatchedBy(func(proof *parcel.ProofOfDelivery) bool {
			return proof.ParcelID().IsEqual(p.ID()) && proof.RecipientName() == "Jordan Lee"
		})).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockProofUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewSubmitProofCommandHandler(factory)
	proofID, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.NoError(t, proofID.Validate())
	proofRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestSubmitProofCommandHandler_Handle_AlreadyExists(t *testing.T) {
	ctx := t.Context()
	p := makeParcel(t)
	cmd := makeSubmitProofCommand(t, p)

	parcelRepo := new(MockParcelRepository)
	proofRepo := new(MockProofRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ParcelRepository").Return(parcelRepo).Once(),
		parcelRepo.On("Get", mock.Anything, p.ID()).Return(p, nil).Once(),
		uow.On("ProofOfDeliveryRepository").Return(proofRepo).Once(),
		proofRepo.On("ExistsForParcel", mock.Anything, p.ID()).Return(true, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockProofUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewSubmitProofCommandHandler(factory)
	_, err := h.Handle(ctx, cmd)
	require.ErrorIs(t, err, commands.ErrProofAlreadyExists)
}

func TestSubmitProofCommandHandler_Handle_UnknownParcel(t *testing.T) {
	ctx := t.Context()
	p := makeParcel(t)
	cmd := makeSubmitProofCommand(t, p)

	parcelRepo := new(MockParcelRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ParcelRepository").Return(parcelRepo).Once(),
		parcelRepo.On("Get", mock.Anything, p.ID()).
			Return(nil, errs.NewObjectNotFoundError("parcelID", p.ID())).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockProofUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewSubmitProofCommandHandler(factory)
	_, err := h.Handle(ctx, cmd)
	require.ErrorIs(t, err, commands.ErrUnknownParcel)
}
