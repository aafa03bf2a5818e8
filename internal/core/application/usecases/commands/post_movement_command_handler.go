package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/clock"
)

// PostMovementCommandHandler posts a Draft row and recomputes the order status.
type PostMovementCommandHandler struct {
	uowFactory OrderUoWFactory
	clock      clock.Clock
	retry      RetryPolicy
}

func NewPostMovementCommandHandler(
	uowFactory OrderUoWFactory,
	clock clock.Clock,
	retry RetryPolicy,
) PostMovementCommandHandler {
	return PostMovementCommandHandler{uowFactory: uowFactory, clock: clock, retry: retry}
}

func (h *PostMovementCommandHandler) Handle(ctx context.Context, cmd PostMovementCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return updateOrder(ctx, h.uowFactory, h.retry, cmd.OrderID(),
		func(_ context.Context, o *order.Order) (bool, error) {
			if err := o.PostMovement(cmd.Stage(), cmd.RowID(), h.clock.Now()); err != nil {
				return false, err
			}
			return true, nil
		})
}

// CancelMovementCommandHandler cancels a row; when posted quantity is removed
// the order status is recomputed and may move backwards.
type CancelMovementCommandHandler struct {
	uowFactory OrderUoWFactory
	clock      clock.Clock
	retry      RetryPolicy
}

func NewCancelMovementCommandHandler(
	uowFactory OrderUoWFactory,
	clock clock.Clock,
	retry RetryPolicy,
) CancelMovementCommandHandler {
	return CancelMovementCommandHandler{uowFactory: uowFactory, clock: clock, retry: retry}
}

func (h *CancelMovementCommandHandler) Handle(ctx context.Context, cmd CancelMovementCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return updateOrder(ctx, h.uowFactory, h.retry, cmd.OrderID(),
		func(_ context.Context, o *order.Order) (bool, error) {
			if err := o.CancelMovement(cmd.Stage(), cmd.RowID(), h.clock.Now()); err != nil {
				return false, err
			}
			return true, nil
		})
}
