package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/clock"
)

// TriggerActionCommandHandler applies a guarded lifecycle transition.
// The "none" action is validated and answered without writing anything.
type TriggerActionCommandHandler struct {
	uowFactory OrderUoWFactory
	clock      clock.Clock
	retry      RetryPolicy
}

func NewTriggerActionCommandHandler(
	uowFactory OrderUoWFactory,
	clock clock.Clock,
	retry RetryPolicy,
) TriggerActionCommandHandler {
	return TriggerActionCommandHandler{uowFactory: uowFactory, clock: clock, retry: retry}
}

func (h *TriggerActionCommandHandler) Handle(ctx context.Context, cmd TriggerActionCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return updateOrder(ctx, h.uowFactory, h.retry, cmd.OrderID(),
		func(_ context.Context, o *order.Order) (bool, error) {
			if err := o.TriggerAction(cmd.Action(), h.clock.Now()); err != nil {
				return false, err
			}
			return cmd.Action() != order.ActionNone, nil
		})
}
