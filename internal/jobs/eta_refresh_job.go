package jobs

import (
	"context"
	"log/slog"

	"swiftdrop/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// EtaRefreshJob periodically recalculates arrival estimates for every
// active order.
type EtaRefreshJob struct {
	handler commands.RefreshEtaCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewEtaRefreshJob creates a job that refreshes order ETAs on a fixed schedule.
func NewEtaRefreshJob(handler commands.RefreshEtaCommandHandler, logger *slog.Logger) *EtaRefreshJob {
	return &EtaRefreshJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "eta_refresh_job"),
	}
}

// Start begins the ETA refresh job to run every minute.
// The sweep calls the external distance provider per order, so it runs on a
// coarser schedule than other jobs to keep the request volume bounded.
func (j *EtaRefreshJob) Start() error {
	_, err := j.cron.AddFunc("0 * * * * *", func() {
		ctx := context.Background()

		cmd, err := commands.NewRefreshEtaCommand()
		if err != nil {
			j.logger.ErrorContext(ctx, "ETA refresh command is invalid", "error", err)
			return
		}

		if err := j.handler.Handle(ctx, cmd); err != nil {
			j.logger.ErrorContext(ctx, "ETA refresh job failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "ETA refresh job started (running every minute)")
	return nil
}

// Stop stops the ETA refresh job.
func (j *EtaRefreshJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "ETA refresh job stopped")
}
