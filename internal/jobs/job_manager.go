package jobs

import (
	"fmt"
	"log/slog"

	"relief/internal/core/application/usecases/queries"
	"relief/internal/core/domain/model/kernel"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	lowStockAlertJob *LowStockAlertJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	getLowStockHandler queries.GetLowStockQueryHandler,
	lowStockThreshold kernel.Quantity,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		lowStockAlertJob: NewLowStockAlertJob(getLowStockHandler, lowStockThreshold, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.lowStockAlertJob.Start(); err != nil {
		return fmt.Errorf("failed to start low stock alert job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.lowStockAlertJob.Stop()
}
