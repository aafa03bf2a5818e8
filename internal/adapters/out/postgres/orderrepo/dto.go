// Package orderrepo persists order aggregates in a single orders row. Movement and
// payment collections are embedded as JSONB documents so one read is a consistent
// snapshot of the whole aggregate.
package orderrepo

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// OrderDTO is the database shape of an order aggregate.
type OrderDTO struct {
	ID          uuid.UUID                        `gorm:"type:uuid;primaryKey"`
	Number      string                           `gorm:"type:varchar(32);uniqueIndex;not null"`
	CustomerRef string                           `gorm:"type:varchar(128);not null"`
	OrderedQty  decimal.Decimal                  `gorm:"type:numeric(18,2);not null"`
	Amount      decimal.Decimal                  `gorm:"type:numeric(18,2);not null"`
	Currency    string                           `gorm:"type:char(3);not null"`
	Status      int                              `gorm:"index;not null"`
	Settlement  int                              `gorm:"not null"`
	Archived    bool                             `gorm:"not null"`
	HasPostings bool                             `gorm:"index;not null"`
	Shipments   datatypes.JSONSlice[MovementDTO] `gorm:"type:jsonb;not null"`
	Deliveries  datatypes.JSONSlice[MovementDTO] `gorm:"type:jsonb;not null"`
	Invoices    datatypes.JSONSlice[MovementDTO] `gorm:"type:jsonb;not null"`
	Payments    datatypes.JSONSlice[PaymentDTO]  `gorm:"type:jsonb;not null"`
	Version     int64                            `gorm:"not null"`
	CreatedAt   time.Time                        `gorm:"not null"`
	UpdatedAt   time.Time                        `gorm:"not null"`
}

// TableName overrides GORM's default naming convention.
func (OrderDTO) TableName() string {
	return "orders"
}

// MovementDTO is one embedded movement row.
type MovementDTO struct {
	ID        uuid.UUID       `json:"id"`
	Code      string          `json:"code"`
	Quantity  decimal.Decimal `json:"quantity"`
	Mode      string          `json:"mode"`
	Reference string          `json:"reference,omitempty"`
	Date      time.Time       `json:"date"`
	Status    int             `json:"status"`
}

// PaymentDTO is one embedded payment row.
type PaymentDTO struct {
	ID        uuid.UUID       `json:"id"`
	Amount    decimal.Decimal `json:"amount"`
	Mode      string          `json:"mode"`
	Reference string          `json:"reference,omitempty"`
	Date      time.Time       `json:"date"`
}

func fromDomain(aggregate *order.Order) OrderDTO {
	payments := make([]PaymentDTO, 0, len(aggregate.Payments()))
	for _, p := range aggregate.Payments() {
		payments = append(payments, PaymentDTO{
			ID:        p.ID().Bytes(),
			Amount:    p.Amount().Decimal(),
			Mode:      p.Mode(),
			Reference: p.Reference(),
			Date:      p.Date(),
		})
	}

	return OrderDTO{
		ID:          aggregate.ID().Bytes(),
		Number:      aggregate.Number(),
		CustomerRef: aggregate.CustomerRef(),
		OrderedQty:  aggregate.OrderedQty().Decimal(),
		Amount:      aggregate.Amount().Decimal(),
		Currency:    aggregate.Currency(),
		Status:      int(aggregate.Status()),
		Settlement:  int(aggregate.Settlement()),
		Archived:    aggregate.IsArchived(),
		HasPostings: aggregate.HasPostings(),
		Shipments:   movementsFromDomain(aggregate.Shipments()),
		Deliveries:  movementsFromDomain(aggregate.Deliveries()),
		Invoices:    movementsFromDomain(aggregate.Invoices()),
		Payments:    datatypes.NewJSONSlice(payments),
		Version:     aggregate.Version(),
		CreatedAt:   aggregate.CreatedAt(),
		UpdatedAt:   aggregate.UpdatedAt(),
	}
}

func movementsFromDomain(rows []*order.Movement) datatypes.JSONSlice[MovementDTO] {
	dtos := make([]MovementDTO, 0, len(rows))
	for _, m := range rows {
		dtos = append(dtos, MovementDTO{
			ID:        m.ID().Bytes(),
			Code:      m.Code(),
			Quantity:  m.Quantity().Decimal(),
			Mode:      m.Mode(),
			Reference: m.Reference(),
			Date:      m.Date(),
			Status:    int(m.Status()),
		})
	}
	return datatypes.NewJSONSlice(dtos)
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderedQty, err := kernel.NewQuantity(dto.OrderedQty)
	if err != nil {
		return nil, err
	}
	amount, err := kernel.NewQuantity(dto.Amount)
	if err != nil {
		return nil, err
	}

	shipments, shipErr := movementsToDomain(dto.Shipments)
	deliveries, delivErr := movementsToDomain(dto.Deliveries)
	invoices, invErr := movementsToDomain(dto.Invoices)
	payments, payErr := paymentsToDomain(dto.Payments)
	if err = errors.Join(shipErr, delivErr, invErr, payErr); err != nil {
		return nil, err
	}

	return order.RestoreOrder(order.Snapshot{
		ID:          id,
		Number:      dto.Number,
		CustomerRef: dto.CustomerRef,
		OrderedQty:  orderedQty,
		Amount:      amount,
		Currency:    dto.Currency,
		Status:      order.Status(dto.Status),
		Settlement:  order.Settlement(dto.Settlement),
		Archived:    dto.Archived,
		Shipments:   shipments,
		Deliveries:  deliveries,
		Invoices:    invoices,
		Payments:    payments,
		Version:     dto.Version,
		CreatedAt:   dto.CreatedAt,
		UpdatedAt:   dto.UpdatedAt,
	})
}

func movementsToDomain(dtos []MovementDTO) ([]*order.Movement, error) {
	rows := make([]*order.Movement, 0, len(dtos))
	for _, dto := range dtos {
		id, err := kernel.UUIDFromBytes(dto.ID[:])
		if err != nil {
			return nil, err
		}
		qty, err := kernel.NewQuantity(dto.Quantity)
		if err != nil {
			return nil, err
		}
		m, err := order.RestoreMovement(id, dto.Code, qty, dto.Mode, dto.Reference, dto.Date, order.MovementStatus(dto.Status))
		if err != nil {
			return nil, err
		}
		rows = append(rows, m)
	}
	return rows, nil
}

func paymentsToDomain(dtos []PaymentDTO) ([]*order.Payment, error) {
	payments := make([]*order.Payment, 0, len(dtos))
	for _, dto := range dtos {
		id, err := kernel.UUIDFromBytes(dto.ID[:])
		if err != nil {
			return nil, err
		}
		amount, err := kernel.NewQuantity(dto.Amount)
		if err != nil {
			return nil, err
		}
		p, err := order.RestorePayment(id, amount, dto.Mode, dto.Reference, dto.Date)
		if err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	return payments, nil
}
