package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/sequence"
)

// SequenceGenerator issues strictly increasing numbers per namespace.
// A number is never returned twice, even if the caller's transaction rolls back.
type SequenceGenerator interface {
	Next(ctx context.Context, namespace sequence.Namespace) (int64, error)
}
