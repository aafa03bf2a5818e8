package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/clock"
)

// ArchiveOrderCommandHandler archives an order. Archiving an archived order
// succeeds without writing.
type ArchiveOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	clock      clock.Clock
	retry      RetryPolicy
}

func NewArchiveOrderCommandHandler(
	uowFactory OrderUoWFactory,
	clock clock.Clock,
	retry RetryPolicy,
) ArchiveOrderCommandHandler {
	return ArchiveOrderCommandHandler{uowFactory: uowFactory, clock: clock, retry: retry}
}

func (h *ArchiveOrderCommandHandler) Handle(ctx context.Context, cmd ArchiveOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return updateOrder(ctx, h.uowFactory, h.retry, cmd.OrderID(),
		func(_ context.Context, o *order.Order) (bool, error) {
			if o.IsArchived() {
				return false, nil
			}
			o.Archive(h.clock.Now())
			return true, nil
		})
}

// DeleteOrderCommandHandler deletes an order after the deletion guard passes.
type DeleteOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewDeleteOrderCommandHandler(uowFactory OrderUoWFactory) DeleteOrderCommandHandler {
	return DeleteOrderCommandHandler{uowFactory: uowFactory}
}

func (h *DeleteOrderCommandHandler) Handle(ctx context.Context, cmd DeleteOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = o.CanBeDeleted(); err != nil {
		return err
	}

	if err = orderRepo.Delete(ctx, o.ID()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
