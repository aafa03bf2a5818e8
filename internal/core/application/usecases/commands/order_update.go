package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// mutation changes a loaded order. It reports whether the order must be written back.
type mutation func(ctx context.Context, o *order.Order) (bool, error)

// updateOrder runs one read-modify-write of the order with the given id inside a
// unit of work, retrying the whole cycle on version conflicts.
func updateOrder(
	ctx context.Context,
	uowFactory OrderUoWFactory,
	retry RetryPolicy,
	orderID kernel.UUID,
	change mutation,
) (*order.Order, error) {
	var result *order.Order

	err := retry.run(ctx, func() error {
		o, err := updateOrderOnce(ctx, uowFactory, orderID, change)
		if err != nil {
			return err
		}
		result = o
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

func updateOrderOnce(
	ctx context.Context,
	uowFactory OrderUoWFactory,
	orderID kernel.UUID,
	change mutation,
) (*order.Order, error) {
	uow := uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}

	changed, err := change(ctx, o)
	if err != nil {
		return nil, err
	}

	if changed {
		if err = orderRepo.Update(ctx, o); err != nil {
			return nil, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}
