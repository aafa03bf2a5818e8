package commands

import (
	"errors"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrAddPaymentCommandIsNotConstructed = errors.New(
	"AddPaymentCommand must be created via NewAddPaymentCommand constructor",
)

// AddPaymentCommand records money received against an order.
// A zero date is replaced by the time the handler runs.
type AddPaymentCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	amount    kernel.Quantity
	mode      string
	reference string
	date      time.Time

	guard guard.ConstructorGuard
}

func NewAddPaymentCommand(
	orderID kernel.UUID,
	amount kernel.Quantity,
	mode, reference string,
	date time.Time,
) (AddPaymentCommand, error) {
	cmd := AddPaymentCommand{
		mode:      strings.TrimSpace(mode),
		reference: strings.TrimSpace(reference),
		date:      date,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setAmount(amount),
	); err != nil {
		return AddPaymentCommand{}, err
	}

	return cmd, nil
}

func (c AddPaymentCommand) Validate() error {
	return c.guard.Validate(ErrAddPaymentCommandIsNotConstructed)
}

func (c AddPaymentCommand) OrderID() kernel.UUID { return c.orderID }

func (c AddPaymentCommand) Amount() kernel.Quantity { return c.amount }

func (c AddPaymentCommand) Mode() string { return c.mode }

func (c AddPaymentCommand) Reference() string { return c.reference }

func (c AddPaymentCommand) Date() time.Time { return c.date }

func (c *AddPaymentCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *AddPaymentCommand) setAmount(amount kernel.Quantity) error {
	if !amount.IsPositive() {
		return errs.NewValueIsOutOfRangeError("amount", amount.String(), "0.01", "unbounded")
	}

	c.amount = amount
	return nil
}
