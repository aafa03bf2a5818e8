package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

const (
	DefaultListLimit = 50
	MaxListLimit     = 500
)

var ErrListOrdersQueryIsNotConstructed = errors.New(
	"ListOrdersQuery must be created via NewListOrdersQuery constructor",
)

// ListOrdersQuery pages through order headers sorted by number.
//
// Example:
//
//	query, err := NewListOrdersQuery(order.PartiallyShipped, false, 20, 0)
//	if err != nil {
//	    return err
//	}
//	rows, err := handler.Handle(ctx, query)
type ListOrdersQuery struct {
	status          order.Status
	includeArchived bool
	limit           int
	offset          int

	guard guard.ConstructorGuard
}

// NewListOrdersQuery builds the query. status order.Unknown means any status;
// limit 0 means DefaultListLimit.
func NewListOrdersQuery(status order.Status, includeArchived bool, limit, offset int) (ListOrdersQuery, error) {
	if status != order.Unknown {
		if err := status.Validate(); err != nil {
			return ListOrdersQuery{}, err
		}
	}
	if limit == 0 {
		limit = DefaultListLimit
	}
	if limit < 0 || limit > MaxListLimit {
		return ListOrdersQuery{}, errs.NewValueIsOutOfRangeError("limit", limit, 1, MaxListLimit)
	}
	if offset < 0 {
		return ListOrdersQuery{}, errs.NewValueIsOutOfRangeError("offset", offset, 0, "unbounded")
	}

	return ListOrdersQuery{
		status:          status,
		includeArchived: includeArchived,
		limit:           limit,
		offset:          offset,
		guard:           guard.NewConstructorGuard(),
	}, nil
}

func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

// Status returns the filter, order.Unknown when every status matches.
func (q ListOrdersQuery) Status() order.Status { return q.status }

func (q ListOrdersQuery) IncludeArchived() bool { return q.includeArchived }

func (q ListOrdersQuery) Limit() int { return q.limit }

func (q ListOrdersQuery) Offset() int { return q.offset }

// ListOrdersQueryResponse is one order header.
type ListOrdersQueryResponse struct {
	ID          kernel.UUID
	Number      string
	CustomerRef string
	Status      order.Status
	Settlement  order.Settlement
	OrderedQty  kernel.Quantity
	Amount      kernel.Quantity
	Currency    string
	Archived    bool
	Version     int64
	UpdatedAt   time.Time
}
