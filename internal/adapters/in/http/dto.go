package http

import (
	"time"

	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/order"

	openapi_types "github.com/oapi-codegen/runtime/types"
	"github.com/shopspring/decimal"
)

// NewOrder is the body of POST /api/v1/orders.
type NewOrder struct {
	Number        string          `json:"number"`
	CustomerRef   string          `json:"customer_ref"`
	OrderedQty    decimal.Decimal `json:"ordered_qty"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency"`
	InitialStatus string          `json:"initial_status"`
}

// ActionRequest is the body of POST /api/v1/orders/{orderId}/actions.
// A present quantity turns a fulfillment action into a movement.
type ActionRequest struct {
	Action    string           `json:"action"`
	Quantity  *decimal.Decimal `json:"quantity"`
	Mode      string           `json:"mode"`
	Reference string           `json:"reference"`
	Date      *time.Time       `json:"date"`
	AutoPost  bool             `json:"auto_post"`
}

// NewPayment is the body of POST /api/v1/orders/{orderId}/payments.
type NewPayment struct {
	Amount    decimal.Decimal `json:"amount"`
	Mode      string          `json:"mode"`
	Reference string          `json:"reference"`
	Date      *time.Time      `json:"date"`
}

// ListOrdersParams are the query parameters of GET /api/v1/orders.
type ListOrdersParams struct {
	Status          *string
	IncludeArchived *bool
	Limit           *int
	Offset          *int
}

type Movement struct {
	ID        openapi_types.UUID `json:"id"`
	Code      string             `json:"code"`
	Quantity  string             `json:"quantity"`
	Mode      string             `json:"mode"`
	Reference string             `json:"reference"`
	Date      time.Time          `json:"date"`
	Status    string             `json:"status"`
}

type Payment struct {
	ID        openapi_types.UUID `json:"id"`
	Amount    string             `json:"amount"`
	Mode      string             `json:"mode"`
	Reference string             `json:"reference"`
	Date      time.Time          `json:"date"`
}

type Totals struct {
	Ordered   string `json:"ordered"`
	Shipped   string `json:"shipped"`
	Delivered string `json:"delivered"`
	Invoiced  string `json:"invoiced"`
	Paid      string `json:"paid"`
}

// Order is the full aggregate returned by every mutating endpoint.
type Order struct {
	ID          openapi_types.UUID `json:"id"`
	Number      string             `json:"number"`
	CustomerRef string             `json:"customer_ref"`
	Status      string             `json:"status"`
	Settlement  string             `json:"settlement"`
	Archived    bool               `json:"archived"`
	Amount      string             `json:"amount"`
	Currency    string             `json:"currency"`
	Totals      Totals             `json:"totals"`
	Shipments   []Movement         `json:"shipments"`
	Deliveries  []Movement         `json:"deliveries"`
	Invoices    []Movement         `json:"invoices"`
	Payments    []Payment          `json:"payments"`
	Version     int64              `json:"version"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

type OrderSummary struct {
	ID          openapi_types.UUID `json:"id"`
	Number      string             `json:"number"`
	CustomerRef string             `json:"customer_ref"`
	Status      string             `json:"status"`
	Settlement  string             `json:"settlement"`
	OrderedQty  string             `json:"ordered_qty"`
	Amount      string             `json:"amount"`
	Currency    string             `json:"currency"`
	Archived    bool               `json:"archived"`
	Version     int64              `json:"version"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

func orderFromDomain(o *order.Order) Order {
	totals := o.Totals()
	payments := make([]Payment, 0, len(o.Payments()))
	for _, p := range o.Payments() {
		payments = append(payments, Payment{
			ID:        p.ID().Bytes(),
			Amount:    p.Amount().String(),
			Mode:      p.Mode(),
			Reference: p.Reference(),
			Date:      p.Date(),
		})
	}

	return Order{
		ID:          o.ID().Bytes(),
		Number:      o.Number(),
		CustomerRef: o.CustomerRef(),
		Status:      o.Status().String(),
		Settlement:  o.Settlement().String(),
		Archived:    o.IsArchived(),
		Amount:      o.Amount().String(),
		Currency:    o.Currency(),
		Totals: Totals{
			Ordered:   totals.Ordered.String(),
			Shipped:   totals.Shipped.String(),
			Delivered: totals.Delivered.String(),
			Invoiced:  totals.Invoiced.String(),
			Paid:      o.Paid().String(),
		},
		Shipments:  movementsFromDomain(o.Shipments()),
		Deliveries: movementsFromDomain(o.Deliveries()),
		Invoices:   movementsFromDomain(o.Invoices()),
		Payments:   payments,
		Version:    o.Version(),
		CreatedAt:  o.CreatedAt(),
		UpdatedAt:  o.UpdatedAt(),
	}
}

func movementsFromDomain(rows []*order.Movement) []Movement {
	result := make([]Movement, 0, len(rows))
	for _, m := range rows {
		result = append(result, Movement{
			ID:        m.ID().Bytes(),
			Code:      m.Code(),
			Quantity:  m.Quantity().String(),
			Mode:      m.Mode(),
			Reference: m.Reference(),
			Date:      m.Date(),
			Status:    m.Status().String(),
		})
	}
	return result
}

func summaryFromQuery(r queries.ListOrdersQueryResponse) OrderSummary {
	return OrderSummary{
		ID:          r.ID.Bytes(),
		Number:      r.Number,
		CustomerRef: r.CustomerRef,
		Status:      r.Status.String(),
		Settlement:  r.Settlement.String(),
		OrderedQty:  r.OrderedQty.String(),
		Amount:      r.Amount.String(),
		Currency:    r.Currency,
		Archived:    r.Archived,
		Version:     r.Version,
		UpdatedAt:   r.UpdatedAt,
	}
}
