package postgres_test

import (
	"context"
	"sync"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/clock"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type orderUoWFactory struct {
	factory ports.UnitOfWorkFactory
}

func (f orderUoWFactory) Create() commands.OrderUoW {
	return f.factory.Create()
}

func (suite *UnitOfWorkIntegrationTestSuite) TestConcurrentPostAndCancel_BothApply() {
	// Given
	ctx := context.Background()
	now := time.Date(2025, 6, 2, 8, 0, 0, 0, time.UTC)
	suite.publisher.On("PublishOrderChanged", mock.Anything, mock.Anything).Return(nil)

	o, err := order.NewOrder(kernel.NewUUID(), "SO-000005", "CUST-1",
		kernel.MustQuantity("10"), kernel.MustQuantity("100"), "USD", order.Confirmed, now)
	suite.Require().NoError(err)
	rowA, err := o.RecordMovement(order.ActionShip, kernel.NewUUID(), "SHP-000001", order.MovementInput{
		Quantity: decimal.RequireFromString("6"),
		Mode:     "road",
	}, now)
	suite.Require().NoError(err)
	rowB, err := o.RecordMovement(order.ActionShip, kernel.NewUUID(), "SHP-000002", order.MovementInput{
		Quantity: decimal.RequireFromString("4"),
		Mode:     "road",
		AutoPost: true,
	}, now)
	suite.Require().NoError(err)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
	suite.Require().NoError(uow.Commit(ctx))

	before, err := suite.factory.Create().OrderRepository().Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Require().Equal(order.PartiallyShipped, before.Status())

	postCmd, err := commands.NewPostMovementCommand(o.ID(), order.StageShipments, rowA.ID())
	suite.Require().NoError(err)
	cancelCmd, err := commands.NewCancelMovementCommand(o.ID(), order.StageShipments, rowB.ID())
	suite.Require().NoError(err)

	// Each handler owns its unit of work factory, as separate requests would.
	postHandler := commands.NewPostMovementCommandHandler(
		orderUoWFactory{factory: suite.factory}, clock.NewFixed(now), commands.NewRetryPolicy(3))
	cancelHandler := commands.NewCancelMovementCommandHandler(
		orderUoWFactory{factory: suite.factory}, clock.NewFixed(now), commands.NewRetryPolicy(3))

	// When
	var (
		wg        sync.WaitGroup
		start     = make(chan struct{})
		postErr   error
		cancelErr error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		<-start
		_, postErr = postHandler.Handle(ctx, postCmd)
	}()
	go func() {
		defer wg.Done()
		<-start
		_, cancelErr = cancelHandler.Handle(ctx, cancelCmd)
	}()
	close(start)
	wg.Wait()

	// Then
	suite.Require().NoError(postErr)
	suite.Require().NoError(cancelErr)

	after, err := suite.factory.Create().OrderRepository().Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Require().Len(after.Shipments(), 2)
	for _, m := range after.Shipments() {
		switch {
		case m.ID().IsEqual(rowA.ID()):
			suite.Equal(order.MovementPosted, m.Status())
		case m.ID().IsEqual(rowB.ID()):
			suite.Equal(order.MovementCancelled, m.Status())
		default:
			suite.Failf("unexpected row", "row %s", m.ID().String())
		}
	}
	suite.Equal("6.00", after.Totals().Shipped.String())
	suite.Equal(order.ComputeStatus(after.Totals()), after.Status())
	suite.Equal(order.PartiallyShipped, after.Status())
	suite.Equal(before.Version()+2, after.Version())
}
