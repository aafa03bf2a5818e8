package commands_test

import (
	"context"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/sequence"
	"fulfillment/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

var now = time.Date(2025, 6, 2, 8, 0, 0, 0, time.UTC)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) Delete(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockOrderRepository) ListIDsWithPostings(
	ctx context.Context,
	after *kernel.UUID,
	limit int,
) ([]kernel.UUID, error) {
	args := m.Called(ctx, after, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]kernel.UUID), args.Error(1)
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockSequenceGenerator struct{ mock.Mock }

func (m *MockSequenceGenerator) Next(ctx context.Context, namespace sequence.Namespace) (int64, error) {
	args := m.Called(ctx, namespace)
	return args.Get(0).(int64), args.Error(1)
}

// newStoredOrder builds an order as the repository would return it.
func newStoredOrder(status order.Status) *order.Order {
	o, err := order.NewOrder(kernel.NewUUID(), "SO-000001", "CUST-1",
		kernel.MustQuantity("10"), kernel.MustQuantity("100"), "USD", order.Draft, now)
	if err != nil {
		panic(err)
	}
	if status != order.Draft {
		s := snapshotOf(o)
		s.Status = status
		if o, err = order.RestoreOrder(s); err != nil {
			panic(err)
		}
	}
	return o
}

// copyOrder returns an independent aggregate with the same state, as a second read would.
func copyOrder(o *order.Order) *order.Order {
	c, err := order.RestoreOrder(snapshotOf(o))
	if err != nil {
		panic(err)
	}
	return c
}

func snapshotOf(o *order.Order) order.Snapshot {
	return order.Snapshot{
		ID:          o.ID(),
		Number:      o.Number(),
		CustomerRef: o.CustomerRef(),
		OrderedQty:  o.OrderedQty(),
		Amount:      o.Amount(),
		Currency:    o.Currency(),
		Status:      o.Status(),
		Settlement:  o.Settlement(),
		Archived:    o.IsArchived(),
		Shipments:   cloneRows(o.Shipments()),
		Deliveries:  cloneRows(o.Deliveries()),
		Invoices:    cloneRows(o.Invoices()),
		Payments:    o.Payments(),
		Version:     o.Version(),
		CreatedAt:   o.CreatedAt(),
		UpdatedAt:   o.UpdatedAt(),
	}
}

func cloneRows(rows []*order.Movement) []*order.Movement {
	out := make([]*order.Movement, 0, len(rows))
	for _, m := range rows {
		c, err := order.RestoreMovement(m.ID(), m.Code(), m.Quantity(), m.Mode(), m.Reference(), m.Date(), m.Status())
		if err != nil {
			panic(err)
		}
		out = append(out, c)
	}
	return out
}

// expectUnitOfWork wires one successful Begin/Get and returns the repository
// so the caller can add the remaining expectations.
func expectUnitOfWork(factory *MockOrderUoWFactory, uow *MockOrderUoW, repo *MockOrderRepository) {
	factory.On("Create").Return(uow).Once()
	uow.On("Begin", mock.Anything).Return(nil).Once()
	uow.On("OrderRepository").Return(repo).Once()
}
