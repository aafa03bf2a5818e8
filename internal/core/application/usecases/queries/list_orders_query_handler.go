package queries

import (
	"context"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ListOrdersQueryHandler reads order headers straight from the orders table
// without loading the embedded collections.
type ListOrdersQueryHandler struct {
	db *gorm.DB
}

func NewListOrdersQueryHandler(db *gorm.DB) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{db: db}
}

func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) ([]ListOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var (
		where []string
		args  []any
	)
	if query.Status() != order.Unknown {
		where = append(where, "status = ?")
		args = append(args, int(query.Status()))
	}
	if !query.IncludeArchived() {
		where = append(where, "NOT archived")
	}

	sql := `
		SELECT
			id,
			number,
			customer_ref,
			status,
			settlement,
			ordered_qty,
			amount,
			currency,
			archived,
			version,
			updated_at
		FROM orders`
	if len(where) > 0 {
		sql += "\n\t\tWHERE " + strings.Join(where, " AND ")
	}
	sql += "\n\t\tORDER BY number\n\t\tLIMIT ? OFFSET ?"
	args = append(args, query.Limit(), query.Offset())

	rows, err := h.db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]ListOrdersQueryResponse, 0)
	for rows.Next() {
		var (
			resp               ListOrdersQueryResponse
			id                 uuid.UUID
			status, settlement int
			orderedQty, amount decimal.Decimal
			updatedAt          time.Time
		)

		if err = rows.Scan(
			&id,
			&resp.Number,
			&resp.CustomerRef,
			&status,
			&settlement,
			&orderedQty,
			&amount,
			&resp.Currency,
			&resp.Archived,
			&resp.Version,
			&updatedAt,
		); err != nil {
			return nil, err
		}

		if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if resp.OrderedQty, err = kernel.NewQuantity(orderedQty); err != nil {
			return nil, err
		}
		if resp.Amount, err = kernel.NewQuantity(amount); err != nil {
			return nil, err
		}
		resp.Status = order.Status(status)
		resp.Settlement = order.Settlement(settlement)
		resp.UpdatedAt = updatedAt.UTC()
		result = append(result, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}
