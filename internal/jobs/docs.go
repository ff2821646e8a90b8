// Package jobs provides scheduled background tasks for the delivery system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for the delivery service.
//
// # Available Jobs
//
// 1. EtaRefreshJob - Runs every minute to recalculate arrival estimates for active orders
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(refreshEtaHandler, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Scheduling
//
// The ETA refresh job uses the cron expression "0 * * * * *" which means it
// runs once a minute. Each run asks the external distance provider for travel
// distances, so the schedule is deliberately coarse.
//
// # Error Handling
//
// - The refresh sweep continues past per-order failures and reports them joined
// - Failed job starts will stop any already running jobs
package jobs
