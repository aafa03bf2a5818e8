package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/sequence"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/clock"
)

// CreateOrderCommandHandler persists a new order, issuing its number from the
// order sequence when the caller did not supply one.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	sequences  ports.SequenceGenerator
	clock      clock.Clock
}

func NewCreateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	sequences ports.SequenceGenerator,
	clock clock.Clock,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		sequences:  sequences,
		clock:      clock,
	}
}

// Handle creates the order. A number drawn from the sequence is consumed even
// if the transaction later fails.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	number := cmd.Number()
	if number == "" {
		value, err := h.sequences.Next(ctx, sequence.NamespaceOrder)
		if err != nil {
			return nil, err
		}
		if number, err = sequence.NamespaceOrder.Format(value); err != nil {
			return nil, err
		}
	}

	o, err := order.NewOrder(
		cmd.OrderID(),
		number,
		cmd.CustomerRef(),
		cmd.OrderedQty(),
		cmd.Amount(),
		cmd.Currency(),
		cmd.InitialStatus(),
		h.clock.Now(),
	)
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}
