package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/clock"
)

// AddPaymentCommandHandler appends a payment and updates the settlement state.
// Settlement never influences the order status.
type AddPaymentCommandHandler struct {
	uowFactory OrderUoWFactory
	clock      clock.Clock
	retry      RetryPolicy
}

func NewAddPaymentCommandHandler(
	uowFactory OrderUoWFactory,
	clock clock.Clock,
	retry RetryPolicy,
) AddPaymentCommandHandler {
	return AddPaymentCommandHandler{uowFactory: uowFactory, clock: clock, retry: retry}
}

func (h *AddPaymentCommandHandler) Handle(ctx context.Context, cmd AddPaymentCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return updateOrder(ctx, h.uowFactory, h.retry, cmd.OrderID(),
		func(_ context.Context, o *order.Order) (bool, error) {
			now := h.clock.Now()
			date := cmd.Date()
			if date.IsZero() {
				date = now
			}

			p, err := order.NewPayment(kernel.NewUUID(), cmd.Amount(), cmd.Mode(), cmd.Reference(), date)
			if err != nil {
				return false, err
			}
			if err = o.AddPayment(p, now); err != nil {
				return false, err
			}
			return true, nil
		})
}
