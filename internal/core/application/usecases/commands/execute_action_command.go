package commands

import (
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrExecuteActionCommandIsNotConstructed = errors.New(
	"ExecuteActionCommand must be created via NewExecuteActionCommand constructor",
)

// ExecuteActionCommand requests a fulfillment action (ship, deliver, invoice)
// together with the data of the movement row it records.
//
// Example:
//
//	cmd, err := NewExecuteActionCommand(orderID, order.ActionShip, order.MovementInput{
//	    Quantity: decimal.RequireFromString("4"),
//	    Mode:     "road",
//	    AutoPost: true,
//	})
type ExecuteActionCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	action  order.Action
	input   order.MovementInput

	guard guard.ConstructorGuard
}

// NewExecuteActionCommand validates identifiers and the action. Quantity,
// mode and capacity are checked against the order itself.
func NewExecuteActionCommand(
	orderID kernel.UUID,
	action order.Action,
	input order.MovementInput,
) (ExecuteActionCommand, error) {
	cmd := ExecuteActionCommand{
		input: input,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setAction(action),
	); err != nil {
		return ExecuteActionCommand{}, err
	}

	return cmd, nil
}

func (c ExecuteActionCommand) Validate() error {
	return c.guard.Validate(ErrExecuteActionCommandIsNotConstructed)
}

func (c ExecuteActionCommand) OrderID() kernel.UUID { return c.orderID }

func (c ExecuteActionCommand) Action() order.Action { return c.action }

func (c ExecuteActionCommand) Input() order.MovementInput { return c.input }

// Date returns the requested movement date, zero when the handler should use the current time.
func (c ExecuteActionCommand) Date() time.Time { return c.input.Date }

func (c *ExecuteActionCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *ExecuteActionCommand) setAction(action order.Action) error {
	if err := action.Validate(); err != nil {
		return err
	}
	if !action.IsFulfillment() {
		return errs.NewValueIsInvalidErrorWithCause(
			"action",
			fmt.Errorf("%s does not record a movement", action.String()),
		)
	}

	c.action = action
	return nil
}
