package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/guard"
)

var ErrTriggerActionCommandIsNotConstructed = errors.New(
	"TriggerActionCommand must be created via NewTriggerActionCommand constructor",
)

// TriggerActionCommand requests a lifecycle transition without movement data.
type TriggerActionCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	action  order.Action

	guard guard.ConstructorGuard
}

func NewTriggerActionCommand(orderID kernel.UUID, action order.Action) (TriggerActionCommand, error) {
	cmd := TriggerActionCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setAction(action),
	); err != nil {
		return TriggerActionCommand{}, err
	}

	return cmd, nil
}

func (c TriggerActionCommand) Validate() error {
	return c.guard.Validate(ErrTriggerActionCommandIsNotConstructed)
}

func (c TriggerActionCommand) OrderID() kernel.UUID { return c.orderID }

func (c TriggerActionCommand) Action() order.Action { return c.action }

func (c *TriggerActionCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *TriggerActionCommand) setAction(action order.Action) error {
	if err := action.Validate(); err != nil {
		return err
	}

	c.action = action
	return nil
}
