package jobs

import (
	"context"
	"sync"
	"time"

	"fulfillment/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// DefaultReconcileSchedule runs the reconciliation every five minutes.
const DefaultReconcileSchedule = "0 */5 * * * *"

// ReconcileStatusesHandler is implemented by commands.ReconcileStatusesCommandHandler.
type ReconcileStatusesHandler interface {
	Handle(ctx context.Context, cmd commands.ReconcileStatusesCommand) (commands.ReconcileResult, error)
}

// StatusReconciliationJob periodically recomputes the status of every order
// with posted movements and repairs headers that drifted.
type StatusReconciliationJob struct {
	handler   ReconcileStatusesHandler
	schedule  string
	batchSize int
	cron      *cron.Cron
	logger    *zap.Logger

	// running prevents overlapping passes when one outlasts the schedule interval.
	running sync.Mutex
}

// NewStatusReconciliationJob creates the job. schedule is a six-field cron
// expression (seconds first); an empty one falls back to DefaultReconcileSchedule.
func NewStatusReconciliationJob(
	handler ReconcileStatusesHandler,
	schedule string,
	batchSize int,
	logger *zap.Logger,
) *StatusReconciliationJob {
	if schedule == "" {
		schedule = DefaultReconcileSchedule
	}
	return &StatusReconciliationJob{
		handler:   handler,
		schedule:  schedule,
		batchSize: batchSize,
		cron:      cron.New(cron.WithSeconds()),
		logger:    logger.With(zap.String("component", "status_reconciliation_job")),
	}
}

// Start registers the job with its schedule and starts the scheduler.
func (j *StatusReconciliationJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.Run(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("status reconciliation job started", zap.String("schedule", j.schedule))
	return nil
}

// Stop stops the scheduler and waits for a running pass to finish.
func (j *StatusReconciliationJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("status reconciliation job stopped")
}

// Run performs one reconciliation pass. A pass that starts while another is
// still running is skipped.
func (j *StatusReconciliationJob) Run(ctx context.Context) {
	if !j.running.TryLock() {
		j.logger.Warn("previous reconciliation pass still running, skipping")
		return
	}
	defer j.running.Unlock()

	cmd, err := commands.NewReconcileStatusesCommand(j.batchSize)
	if err != nil {
		j.logger.Error("invalid reconciliation batch size", zap.Int("batch_size", j.batchSize), zap.Error(err))
		return
	}

	started := time.Now()
	result, err := j.handler.Handle(ctx, cmd)
	for _, id := range result.Repaired {
		j.logger.Info("order status repaired", zap.String("order_id", id.String()))
	}
	if err != nil {
		j.logger.Error("status reconciliation failed",
			zap.Int("scanned", result.Scanned),
			zap.Int("repaired", len(result.Repaired)),
			zap.Error(err),
		)
		return
	}

	j.logger.Info("status reconciliation finished",
		zap.Int("scanned", result.Scanned),
		zap.Int("repaired", len(result.Repaired)),
		zap.Duration("elapsed", time.Since(started)),
	)
}
