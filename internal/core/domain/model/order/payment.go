package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrPaymentIsNotConstructed = errors.New("payment must be created via NewPayment or RestorePayment")

// Settlement is the paid/due state of an order. It is independent of the fulfillment status.
type Settlement int

const (
	SettlementUnknown Settlement = iota
	Unpaid
	PartiallyPaid
	Paid
)

func getSettlementStrings() map[Settlement]string {
	return map[Settlement]string{
		Unpaid:        "Unpaid",
		PartiallyPaid: "PartiallyPaid",
		Paid:          "Paid",
	}
}

func (s Settlement) String() string {
	if str, ok := getSettlementStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

func (s Settlement) Validate() error {
	if _, ok := getSettlementStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("settlement is invalid", fmt.Errorf("%d is not a valid settlement", s))
	}
	return nil
}

// ComputeSettlement derives the settlement state from the order amount and the sum paid.
func ComputeSettlement(amount, paid kernel.Quantity) Settlement {
	switch {
	case paid.IsZero():
		return Unpaid
	case paid.LessThan(amount):
		return PartiallyPaid
	default:
		return Paid
	}
}

// Payment is a settlement row embedded in an order.
type Payment struct {
	id        kernel.UUID
	amount    kernel.Quantity
	mode      string
	reference string
	date      time.Time
	guard     guard.ConstructorGuard
}

// NewPayment validates a new payment row. The amount must be positive.
func NewPayment(id kernel.UUID, amount kernel.Quantity, mode, reference string, date time.Time) (*Payment, error) {
	p := &Payment{
		mode:      strings.TrimSpace(mode),
		reference: strings.TrimSpace(reference),
		guard:     guard.NewConstructorGuard(),
	}
	if err := errors.Join(p.setID(id), p.setAmount(amount), p.setDate(date)); err != nil {
		return nil, err
	}
	return p, nil
}

// RestorePayment rebuilds a payment row from storage.
func RestorePayment(id kernel.UUID, amount kernel.Quantity, mode, reference string, date time.Time) (*Payment, error) {
	return NewPayment(id, amount, mode, reference, date)
}

func (p *Payment) Validate() error {
	if p == nil {
		return ErrPaymentIsNotConstructed
	}
	return p.guard.Validate(ErrPaymentIsNotConstructed)
}

func (p *Payment) ID() kernel.UUID { return p.id }

func (p *Payment) Amount() kernel.Quantity { return p.amount }

func (p *Payment) Mode() string { return p.mode }

func (p *Payment) Reference() string { return p.reference }

func (p *Payment) Date() time.Time { return p.date }

func (p *Payment) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Payment) setAmount(amount kernel.Quantity) error {
	if !amount.IsPositive() {
		return errs.NewValueIsInvalidErrorWithCause(
			"amount is invalid",
			fmt.Errorf("%s is not greater than 0", amount.String()),
		)
	}
	p.amount = amount
	return nil
}

func (p *Payment) setDate(date time.Time) error {
	if date.IsZero() {
		return errs.NewValueIsRequiredError("payment date")
	}
	p.date = date.UTC()
	return nil
}
