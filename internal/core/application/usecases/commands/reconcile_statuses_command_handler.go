package commands

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/clock"
	"fulfillment/internal/pkg/errs"
)

// ReconcileResult summarizes one reconciliation pass.
type ReconcileResult struct {
	Scanned  int
	Repaired []kernel.UUID
}

// ReconcileStatusesCommandHandler pages through orders with postings and
// repairs any header status that no longer matches ComputeStatus. Each repair
// is its own versioned write, so concurrent commands are never overwritten.
type ReconcileStatusesCommandHandler struct {
	uowFactory OrderUoWFactory
	clock      clock.Clock
	retry      RetryPolicy
}

func NewReconcileStatusesCommandHandler(
	uowFactory OrderUoWFactory,
	clock clock.Clock,
	retry RetryPolicy,
) ReconcileStatusesCommandHandler {
	return ReconcileStatusesCommandHandler{uowFactory: uowFactory, clock: clock, retry: retry}
}

// Handle scans every page. Orders deleted between listing and loading are
// skipped; any other failure stops the pass and is returned with the partial result.
func (h *ReconcileStatusesCommandHandler) Handle(
	ctx context.Context,
	cmd ReconcileStatusesCommand,
) (ReconcileResult, error) {
	result := ReconcileResult{Repaired: make([]kernel.UUID, 0)}
	if err := cmd.Validate(); err != nil {
		return result, err
	}

	reader := h.uowFactory.Create().OrderRepository()
	var after *kernel.UUID
	for {
		ids, err := reader.ListIDsWithPostings(ctx, after, cmd.BatchSize())
		if err != nil {
			return result, err
		}

		for _, id := range ids {
			result.Scanned++
			repaired, err := h.reconcile(ctx, id)
			if err != nil {
				if errors.Is(err, errs.ErrObjectNotFound) {
					continue
				}
				return result, err
			}
			if repaired {
				result.Repaired = append(result.Repaired, id)
			}
		}

		if len(ids) < cmd.BatchSize() {
			return result, nil
		}
		last := ids[len(ids)-1]
		after = &last
	}
}

func (h *ReconcileStatusesCommandHandler) reconcile(ctx context.Context, id kernel.UUID) (bool, error) {
	var repaired bool
	_, err := updateOrder(ctx, h.uowFactory, h.retry, id,
		func(_ context.Context, o *order.Order) (bool, error) {
			repaired = o.ReconcileStatus(h.clock.Now())
			return repaired, nil
		})
	return repaired, err
}
