package commands

import (
	"errors"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand represents a request to open a new order.
// An empty number asks the handler to draw one from the order sequence.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(kernel.NewUUID(), "", "CUST-7",
//	    kernel.MustQuantity("10"), kernel.MustQuantity("250"), "EUR", order.Confirmed)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID     kernel.UUID
	number      string
	customerRef string
	orderedQty  kernel.Quantity
	amount      kernel.Quantity
	currency    string
	initial     order.Status

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates the request. Detailed checks of quantities
// and currency are left to order.NewOrder.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	number, customerRef string,
	orderedQty, amount kernel.Quantity,
	currency string,
	initial order.Status,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		number:     strings.TrimSpace(number),
		orderedQty: orderedQty,
		amount:     amount,
		currency:   currency,
		guard:      guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setCustomerRef(customerRef),
		cmd.setInitial(initial),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) OrderID() kernel.UUID { return c.orderID }

// Number returns the requested order number, empty when one must be issued.
func (c CreateOrderCommand) Number() string { return c.number }

func (c CreateOrderCommand) CustomerRef() string { return c.customerRef }

func (c CreateOrderCommand) OrderedQty() kernel.Quantity { return c.orderedQty }

func (c CreateOrderCommand) Amount() kernel.Quantity { return c.amount }

func (c CreateOrderCommand) Currency() string { return c.currency }

func (c CreateOrderCommand) InitialStatus() order.Status { return c.initial }

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setCustomerRef(customerRef string) error {
	customerRef = strings.TrimSpace(customerRef)
	if customerRef == "" {
		return errs.NewValueIsRequiredError("customer ref")
	}

	c.customerRef = customerRef
	return nil
}

func (c *CreateOrderCommand) setInitial(initial order.Status) error {
	if err := initial.ValidateInitial(); err != nil {
		return err
	}

	c.initial = initial
	return nil
}
