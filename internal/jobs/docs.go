// Package jobs provides scheduled background tasks for the fulfillment service.
//
// Jobs are built on github.com/robfig/cron/v3 with a seconds field.
//
// # Available Jobs
//
// StatusReconciliationJob scans every unarchived order with posted movements,
// recomputes its status from the posted quantities and repairs headers that
// drifted. Repairs go through the regular versioned update, so a concurrent
// command is never overwritten. The schedule comes from RECONCILE_SCHEDULE.
//
// # Usage
//
//	job := jobs.NewStatusReconciliationJob(handler, cfg.ReconcileSchedule, commands.DefaultReconcileBatchSize, logger)
//	jobManager := jobs.NewJobManager(job)
//	if err := jobManager.StartAll(); err != nil {
//		return err
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A failed pass is logged together with the repairs it made before failing;
// the next scheduled pass starts over. Passes never overlap.
package jobs
