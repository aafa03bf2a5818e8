// Package ports defines the contracts between the fulfillment core and its adapters:
// persistence, sequence numbering, and event publishing.
package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// An order and all of its movement and payment rows are read and written as one unit.
type OrderRepository interface {
	// Add persists a new order aggregate. Its version becomes 1.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists an existing aggregate if nobody else wrote it since it was read.
	// A stale version yields *errs.VersionConflictError; a missing order yields
	// *errs.ObjectNotFoundError.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves the complete aggregate by id.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// Delete removes the order. The caller applies order.CanBeDeleted first.
	Delete(ctx context.Context, id kernel.UUID) error

	// ListIDsWithPostings returns ids of unarchived orders that have at least one posted
	// movement, ordered by id, starting after the given id (nil for the first page).
	ListIDsWithPostings(ctx context.Context, after *kernel.UUID, limit int) ([]kernel.UUID, error)
}
