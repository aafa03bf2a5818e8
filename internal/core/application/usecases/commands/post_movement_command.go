package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrPostMovementCommandIsNotConstructed = errors.New(
		"PostMovementCommand must be created via NewPostMovementCommand constructor",
	)
	ErrCancelMovementCommandIsNotConstructed = errors.New(
		"CancelMovementCommand must be created via NewCancelMovementCommand constructor",
	)
)

// movementRef addresses one movement row of an order by its stable id.
type movementRef struct {
	orderID kernel.UUID
	stage   order.Stage
	rowID   kernel.UUID
}

func newMovementRef(orderID kernel.UUID, stage order.Stage, rowID kernel.UUID) (movementRef, error) {
	if err := errors.Join(
		orderID.Validate(),
		stage.Validate(),
		rowID.Validate(),
	); err != nil {
		return movementRef{}, err
	}
	return movementRef{orderID: orderID, stage: stage, rowID: rowID}, nil
}

// PostMovementCommand moves a Draft row to Posted.
type PostMovementCommand struct { //nolint:recvcheck //using for validation
	ref movementRef

	guard guard.ConstructorGuard
}

func NewPostMovementCommand(orderID kernel.UUID, stage order.Stage, rowID kernel.UUID) (PostMovementCommand, error) {
	ref, err := newMovementRef(orderID, stage, rowID)
	if err != nil {
		return PostMovementCommand{}, err
	}
	return PostMovementCommand{ref: ref, guard: guard.NewConstructorGuard()}, nil
}

func (c PostMovementCommand) Validate() error {
	return c.guard.Validate(ErrPostMovementCommandIsNotConstructed)
}

func (c PostMovementCommand) OrderID() kernel.UUID { return c.ref.orderID }

func (c PostMovementCommand) Stage() order.Stage { return c.ref.stage }

func (c PostMovementCommand) RowID() kernel.UUID { return c.ref.rowID }

// CancelMovementCommand cancels a row in any state.
type CancelMovementCommand struct { //nolint:recvcheck //using for validation
	ref movementRef

	guard guard.ConstructorGuard
}

func NewCancelMovementCommand(orderID kernel.UUID, stage order.Stage, rowID kernel.UUID) (CancelMovementCommand, error) {
	ref, err := newMovementRef(orderID, stage, rowID)
	if err != nil {
		return CancelMovementCommand{}, err
	}
	return CancelMovementCommand{ref: ref, guard: guard.NewConstructorGuard()}, nil
}

func (c CancelMovementCommand) Validate() error {
	return c.guard.Validate(ErrCancelMovementCommandIsNotConstructed)
}

func (c CancelMovementCommand) OrderID() kernel.UUID { return c.ref.orderID }

func (c CancelMovementCommand) Stage() order.Stage { return c.ref.stage }

func (c CancelMovementCommand) RowID() kernel.UUID { return c.ref.rowID }
