// File: internal/jobs/localstore_sweep.go
package jobs

import (
	"context"
	"time"

	"vibewise_backend/internal/config"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const sweepTimeout = 2 * time.Minute

// Sweeper deletes expired device store entries. Implemented by localstore.Service.
type Sweeper interface {
	Sweep(ctx context.Context) (int64, error)
}

// LocalStoreSweepJob periodically purges expired device store entries.
type LocalStoreSweepJob struct {
	sweeper       Sweeper
	logger        *zap.Logger
	cfg           *config.Config
	cronScheduler *cron.Cron
}

// NewLocalStoreSweepJob creates a new LocalStoreSweepJob.
func NewLocalStoreSweepJob(sweeper Sweeper, logger *zap.Logger, cfg *config.Config) *LocalStoreSweepJob {
	cl := NewCronLogger(logger.Named("cron"))
	scheduler := cron.New(
		cron.WithLogger(cl),
		cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
	)

	return &LocalStoreSweepJob{
		sweeper:       sweeper,
		logger:        logger.Named("LocalStoreSweepJob"),
		cfg:           cfg,
		cronScheduler: scheduler,
	}
}

// SetupAndStart schedules and starts the sweep. An empty schedule disables it.
func (j *LocalStoreSweepJob) SetupAndStart() error {
	schedule := j.cfg.LocalStoreSweepSchedule
	if schedule == "" {
		j.logger.Warn("Device store sweep schedule not defined (LOCAL_STORE_SWEEP_SCHEDULE). Job will not run.")
		return nil
	}

	jobID, err := j.cronScheduler.AddFunc(schedule, j.Run)
	if err != nil {
		j.logger.Error("Failed to schedule device store sweep", zap.String("schedule", schedule), zap.Error(err))
		return err
	}

	j.logger.Info("Device store sweep scheduled", zap.String("schedule", schedule), zap.Int("jobID", int(jobID)))
	j.cronScheduler.Start()
	return nil
}

// Run performs a single sweep.
func (j *LocalStoreSweepJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
	defer cancel()

	removed, err := j.sweeper.Sweep(ctx)
	if err != nil {
		j.logger.Error("Device store sweep failed", zap.Error(err))
		return
	}
	j.logger.Info("Device store sweep completed", zap.Int64("entries_removed", removed))
}

// Stop gracefully stops the cron scheduler.
func (j *LocalStoreSweepJob) Stop() {
	j.logger.Info("Stopping device store sweep scheduler...")
	stopCtx := j.cronScheduler.Stop()
	select {
	case <-stopCtx.Done():
		j.logger.Info("Device store sweep scheduler stopped gracefully.")
	case <-time.After(10 * time.Second):
		j.logger.Warn("Device store sweep scheduler stop timed out.")
	}
}
