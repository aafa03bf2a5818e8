package commands_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/clock"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// driftedOrder returns an order whose header says Confirmed although its
// posted shipments cover the full ordered quantity.
func driftedOrder(t *testing.T) *order.Order {
	t.Helper()
	o := newStoredOrder(order.Confirmed)
	_, err := o.RecordMovement(order.ActionShip, kernel.NewUUID(), "SHP-000001",
		order.MovementInput{Quantity: kernel.MustQuantity("10").Decimal(), Mode: "road", AutoPost: true}, now)
	require.NoError(t, err)
	s := snapshotOf(o)
	s.Status = order.Confirmed
	drifted, err := order.RestoreOrder(s)
	require.NoError(t, err)
	return drifted
}

func TestReconcileStatusesCommandHandler_Handle(t *testing.T) {
	// Given
	ctx := t.Context()
	drifted := driftedOrder(t)
	healthy, _, _ := orderWithShipments(t)
	vanished := kernel.NewUUID()
	cmd, err := commands.NewReconcileStatusesCommand(2)
	require.NoError(t, err)

	reader := new(MockOrderRepository)
	readerUoW := new(MockOrderUoW)
	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	factory := new(MockOrderUoWFactory)

	factory.On("Create").Return(readerUoW).Once()
	readerUoW.On("OrderRepository").Return(reader).Once()
	reader.On("ListIDsWithPostings", ctx, (*kernel.UUID)(nil), 2).
		Return([]kernel.UUID{drifted.ID(), healthy.ID()}, nil).Once()
	reader.On("ListIDsWithPostings", ctx, mock.AnythingOfType("*kernel.UUID"), 2).
		Return([]kernel.UUID{vanished}, nil).Once()

	factory.On("Create").Return(uow).Times(3)
	uow.On("Begin", ctx).Return(nil).Times(3)
	uow.On("OrderRepository").Return(repo).Times(3)
	uow.On("Rollback", ctx).Return(nil).Times(3)
	uow.On("Commit", ctx).Return(nil).Twice()
	repo.On("Get", ctx, drifted.ID()).Return(drifted, nil).Once()
	repo.On("Update", ctx, drifted).Return(nil).Once()
	repo.On("Get", ctx, healthy.ID()).Return(healthy, nil).Once()
	repo.On("Get", ctx, vanished).Return(nil, errs.NewObjectNotFoundError("order", vanished.String())).Once()

	h := commands.NewReconcileStatusesCommandHandler(factory, clock.NewFixed(now), commands.NewRetryPolicy(3))

	// When
	result, err := h.Handle(ctx, cmd)

	// Then
	require.NoError(t, err)
	assert.Equal(t, 3, result.Scanned)
	require.Len(t, result.Repaired, 1)
	assert.True(t, result.Repaired[0].IsEqual(drifted.ID()))
	assert.Equal(t, order.Shipped, drifted.Status())
	repo.AssertExpectations(t)
	reader.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestReconcileStatusesCommandHandler_Handle_ListError(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewReconcileStatusesCommand(10)
	require.NoError(t, err)

	reader := new(MockOrderRepository)
	readerUoW := new(MockOrderUoW)
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(readerUoW).Once()
	readerUoW.On("OrderRepository").Return(reader).Once()
	reader.On("ListIDsWithPostings", ctx, (*kernel.UUID)(nil), 10).Return(nil, assert.AnError).Once()

	h := commands.NewReconcileStatusesCommandHandler(factory, clock.NewFixed(now), commands.NewRetryPolicy(3))
	result, err := h.Handle(ctx, cmd)

	require.ErrorIs(t, err, assert.AnError)
	assert.Zero(t, result.Scanned)
}

func TestNewReconcileStatusesCommand(t *testing.T) {
	_, err := commands.NewReconcileStatusesCommand(0)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

	cmd, err := commands.NewReconcileStatusesCommand(commands.DefaultReconcileBatchSize)
	require.NoError(t, err)
	assert.Equal(t, commands.DefaultReconcileBatchSize, cmd.BatchSize())
}
