package cmd

import (
	httpin "fulfillment/internal/adapters/in/http"
	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/adapters/out/postgres/sequencerepo"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/jobs"
	"fulfillment/internal/pkg/clock"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	cfg        Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	sequences  ports.SequenceGenerator
	clock      clock.Clock
	retry      commands.RetryPolicy
	logger     *zap.Logger
}

// NewCompositionRoot wires adapters shared by every handler. Sequence numbers
// are drawn through pool outside the order transaction, so a number is never
// handed out twice even when the order write rolls back.
func NewCompositionRoot(
	cfg Config,
	gormDB *gorm.DB,
	pool *pgxpool.Pool,
	publisher ports.OrderEventPublisher,
	logger *zap.Logger,
) CompositionRoot {
	return CompositionRoot{
		cfg:        cfg,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB, publisher, logger),
		sequences:  sequencerepo.NewPgxSequenceGenerator(pool),
		clock:      clock.NewSystem(),
		retry:      commands.NewRetryPolicy(cfg.OrderConflictRetries),
		logger:     logger,
	}
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() *commands.CreateOrderCommandHandler {
	h := commands.NewCreateOrderCommandHandler(c.orderUoWFactory(), c.sequences, c.clock)
	return &h
}

func (c *CompositionRoot) CreateTriggerActionCommandHandler() *commands.TriggerActionCommandHandler {
	h := commands.NewTriggerActionCommandHandler(c.orderUoWFactory(), c.clock, c.retry)
	return &h
}

func (c *CompositionRoot) CreateExecuteActionCommandHandler() *commands.ExecuteActionCommandHandler {
	h := commands.NewExecuteActionCommandHandler(c.orderUoWFactory(), c.sequences, c.clock, c.retry)
	return &h
}

func (c *CompositionRoot) CreatePostMovementCommandHandler() *commands.PostMovementCommandHandler {
	h := commands.NewPostMovementCommandHandler(c.orderUoWFactory(), c.clock, c.retry)
	return &h
}

func (c *CompositionRoot) CreateCancelMovementCommandHandler() *commands.CancelMovementCommandHandler {
	h := commands.NewCancelMovementCommandHandler(c.orderUoWFactory(), c.clock, c.retry)
	return &h
}

func (c *CompositionRoot) CreateAddPaymentCommandHandler() *commands.AddPaymentCommandHandler {
	h := commands.NewAddPaymentCommandHandler(c.orderUoWFactory(), c.clock, c.retry)
	return &h
}

func (c *CompositionRoot) CreateArchiveOrderCommandHandler() *commands.ArchiveOrderCommandHandler {
	h := commands.NewArchiveOrderCommandHandler(c.orderUoWFactory(), c.clock, c.retry)
	return &h
}

func (c *CompositionRoot) CreateDeleteOrderCommandHandler() *commands.DeleteOrderCommandHandler {
	h := commands.NewDeleteOrderCommandHandler(c.orderUoWFactory())
	return &h
}

func (c *CompositionRoot) CreateReconcileStatusesCommandHandler() *commands.ReconcileStatusesCommandHandler {
	h := commands.NewReconcileStatusesCommandHandler(c.orderUoWFactory(), c.clock, c.retry)
	return &h
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.uowFactory.Create().OrderRepository())
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(httpin.UseCases{
		CreateOrder:    c.CreateCreateOrderCommandHandler(),
		TriggerAction:  c.CreateTriggerActionCommandHandler(),
		ExecuteAction:  c.CreateExecuteActionCommandHandler(),
		PostMovement:   c.CreatePostMovementCommandHandler(),
		CancelMovement: c.CreateCancelMovementCommandHandler(),
		AddPayment:     c.CreateAddPaymentCommandHandler(),
		ArchiveOrder:   c.CreateArchiveOrderCommandHandler(),
		DeleteOrder:    c.CreateDeleteOrderCommandHandler(),
		GetOrder:       c.CreateGetOrderQueryHandler(),
		ListOrders:     c.CreateListOrdersQueryHandler(),
	})
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	reconciliation := jobs.NewStatusReconciliationJob(
		c.CreateReconcileStatusesCommandHandler(),
		c.cfg.ReconcileSchedule,
		commands.DefaultReconcileBatchSize,
		c.logger,
	)
	return jobs.NewJobManager(reconciliation)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}
