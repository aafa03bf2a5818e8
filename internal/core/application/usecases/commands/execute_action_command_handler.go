package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/clock"
)

// ExecuteActionCommandHandler is the action executor: it guards the action,
// checks the remaining capacity of the target stage, draws the next code from
// the stage's sequence and appends the movement row, all in one versioned write.
//
// Example:
//
//	handler := NewExecuteActionCommandHandler(uowFactory, sequences, clock.NewSystem(), NewRetryPolicy(3))
//	o, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(o.Status()) // PartiallyShipped
type ExecuteActionCommandHandler struct {
	uowFactory OrderUoWFactory
	sequences  ports.SequenceGenerator
	clock      clock.Clock
	retry      RetryPolicy
}

func NewExecuteActionCommandHandler(
	uowFactory OrderUoWFactory,
	sequences ports.SequenceGenerator,
	clock clock.Clock,
	retry RetryPolicy,
) ExecuteActionCommandHandler {
	return ExecuteActionCommandHandler{
		uowFactory: uowFactory,
		sequences:  sequences,
		clock:      clock,
		retry:      retry,
	}
}

// Handle records the movement and returns the updated order. The sequence
// number is drawn only after every order-level check has passed; a number
// consumed by a failed attempt is not reused.
func (h *ExecuteActionCommandHandler) Handle(ctx context.Context, cmd ExecuteActionCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return updateOrder(ctx, h.uowFactory, h.retry, cmd.OrderID(),
		func(ctx context.Context, o *order.Order) (bool, error) {
			cfg, err := o.PrepareMovement(cmd.Action(), cmd.Input())
			if err != nil {
				return false, err
			}

			value, err := h.sequences.Next(ctx, cfg.Namespace)
			if err != nil {
				return false, err
			}
			code, err := cfg.Namespace.Format(value)
			if err != nil {
				return false, err
			}

			if _, err = o.RecordMovement(cmd.Action(), kernel.NewUUID(), code, cmd.Input(), h.clock.Now()); err != nil {
				return false, err
			}
			return true, nil
		})
}
