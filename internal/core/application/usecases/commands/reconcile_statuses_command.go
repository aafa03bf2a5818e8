package commands

import (
	"errors"

	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// DefaultReconcileBatchSize is the page size used by the reconciliation job.
const DefaultReconcileBatchSize = 100

var ErrReconcileStatusesCommandIsNotConstructed = errors.New(
	"ReconcileStatusesCommand must be created via NewReconcileStatusesCommand constructor",
)

// ReconcileStatusesCommand asks for every order with posted movements to have
// its status recomputed from its totals.
type ReconcileStatusesCommand struct { //nolint:recvcheck //using for validation
	batchSize int

	guard guard.ConstructorGuard
}

func NewReconcileStatusesCommand(batchSize int) (ReconcileStatusesCommand, error) {
	if batchSize <= 0 {
		return ReconcileStatusesCommand{}, errs.NewValueIsOutOfRangeError("batch size", batchSize, 1, "unbounded")
	}
	return ReconcileStatusesCommand{batchSize: batchSize, guard: guard.NewConstructorGuard()}, nil
}

func (c ReconcileStatusesCommand) Validate() error {
	return c.guard.Validate(ErrReconcileStatusesCommandIsNotConstructed)
}

func (c ReconcileStatusesCommand) BatchSize() int { return c.batchSize }
