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

// ErrMovementIsNotConstructed is returned for a Movement not built by NewMovement or RestoreMovement.
var ErrMovementIsNotConstructed = errors.New("movement must be created via NewMovement or RestoreMovement")

// MovementStatus is the lifecycle of a single movement row.
// Draft -> Posted, Draft -> Cancelled, Posted -> Cancelled. Cancelled is terminal.
type MovementStatus int

const (
	MovementUnknown MovementStatus = iota
	MovementDraft
	MovementPosted
	MovementCancelled
)

func getMovementStatusStrings() map[MovementStatus]string {
	return map[MovementStatus]string{
		MovementDraft:     "Draft",
		MovementPosted:    "Posted",
		MovementCancelled: "Cancelled",
	}
}

func (s MovementStatus) String() string {
	if str, ok := getMovementStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

func (s MovementStatus) Validate() error {
	if _, ok := getMovementStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"movement status is invalid",
			fmt.Errorf("%d is not a valid movement status", s),
		)
	}
	return nil
}

// Movement is one shipment, delivery, or invoice row embedded in an order.
type Movement struct {
	id        kernel.UUID
	code      string
	quantity  kernel.Quantity
	mode      string
	reference string
	date      time.Time
	status    MovementStatus
	guard     guard.ConstructorGuard
}

// NewMovement creates a Draft row, or a Posted one when autoPost is set.
// The quantity must be positive; mode is stored as given and validated by the caller's stage.
func NewMovement(
	id kernel.UUID,
	code string,
	quantity kernel.Quantity,
	mode, reference string,
	date time.Time,
	autoPost bool,
) (*Movement, error) {
	status := MovementDraft
	if autoPost {
		status = MovementPosted
	}

	m := &Movement{status: status, guard: guard.NewConstructorGuard()}
	if err := errors.Join(
		m.setID(id),
		m.setCode(code),
		m.setQuantity(quantity),
		m.setDate(date),
	); err != nil {
		return nil, err
	}
	m.mode = strings.TrimSpace(mode)
	m.reference = strings.TrimSpace(reference)

	return m, nil
}

// RestoreMovement rebuilds a row from storage. Zero quantities are accepted
// because historical rows are never re-validated against capacity.
func RestoreMovement(
	id kernel.UUID,
	code string,
	quantity kernel.Quantity,
	mode, reference string,
	date time.Time,
	status MovementStatus,
) (*Movement, error) {
	m := &Movement{mode: mode, reference: reference, quantity: quantity, guard: guard.NewConstructorGuard()}
	if err := errors.Join(
		m.setID(id),
		m.setCode(code),
		m.setDate(date),
		status.Validate(),
	); err != nil {
		return nil, err
	}
	m.status = status
	return m, nil
}

func (m *Movement) Validate() error {
	if m == nil {
		return ErrMovementIsNotConstructed
	}
	return m.guard.Validate(ErrMovementIsNotConstructed)
}

func (m *Movement) ID() kernel.UUID { return m.id }

func (m *Movement) Code() string { return m.code }

func (m *Movement) Quantity() kernel.Quantity { return m.quantity }

func (m *Movement) Mode() string { return m.mode }

func (m *Movement) Reference() string { return m.reference }

func (m *Movement) Date() time.Time { return m.date }

func (m *Movement) Status() MovementStatus { return m.status }

func (m *Movement) IsPosted() bool { return m.status == MovementPosted }

// Post moves a Draft row to Posted and reports whether anything changed.
// Posting a Posted or Cancelled row is a no-op.
func (m *Movement) Post() bool {
	if m.status != MovementDraft {
		return false
	}
	m.status = MovementPosted
	return true
}

// Cancel sets the row to Cancelled from any state and returns the previous status.
func (m *Movement) Cancel() MovementStatus {
	previous := m.status
	m.status = MovementCancelled
	return previous
}

func (m *Movement) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	m.id = id
	return nil
}

func (m *Movement) setCode(code string) error {
	code = strings.TrimSpace(code)
	if code == "" {
		return errs.NewValueIsRequiredError("movement code")
	}
	m.code = code
	return nil
}

func (m *Movement) setQuantity(quantity kernel.Quantity) error {
	if !quantity.IsPositive() {
		return errs.NewValueIsInvalidErrorWithCause(
			"quantity is invalid",
			fmt.Errorf("%s is not greater than 0", quantity.String()),
		)
	}
	m.quantity = quantity
	return nil
}

func (m *Movement) setDate(date time.Time) error {
	if date.IsZero() {
		return errs.NewValueIsRequiredError("movement date")
	}
	m.date = date.UTC()
	return nil
}
