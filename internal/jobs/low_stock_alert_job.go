// Package jobs contains the scheduled background work of the application.
package jobs

import (
	"context"
	"log/slog"

	"relief/internal/core/application/usecases/queries"
	"relief/internal/core/domain/model/kernel"

	"github.com/robfig/cron/v3"
)

// LowStockAlertJob periodically scans active inventories and logs a warning
// for every record whose usable stock fell below the configured threshold.
// Runs every minute; the log stream is what replenishment dashboards tail.
type LowStockAlertJob struct {
	handler   queries.GetLowStockQueryHandler
	threshold kernel.Quantity
	cron      *cron.Cron
	logger    *slog.Logger
}

// NewLowStockAlertJob creates a job that reports low stock levels.
func NewLowStockAlertJob(
	handler queries.GetLowStockQueryHandler,
	threshold kernel.Quantity,
	logger *slog.Logger,
) *LowStockAlertJob {
	return &LowStockAlertJob{
		handler:   handler,
		threshold: threshold,
		cron:      cron.New(cron.WithSeconds()),
		logger:    logger.With("component", "low_stock_alert_job"),
	}
}

// Start begins the low stock scan to run every minute.
func (j *LowStockAlertJob) Start() error {
	_, err := j.cron.AddFunc("0 * * * * *", func() {
		ctx := context.Background()

		query, queryErr := queries.NewGetLowStockQuery(j.threshold)
		if queryErr != nil {
			j.logger.ErrorContext(ctx, "Low stock query is misconfigured", "error", queryErr)
			return
		}

		records, handleErr := j.handler.Handle(ctx, query)
		if handleErr != nil {
			j.logger.ErrorContext(ctx, "Low stock scan failed", "error", handleErr)
			return
		}

		for _, record := range records {
			j.logger.WarnContext(ctx, "Inventory running low",
				"inventory_id", record.InventoryID.String(),
				"warehouse_id", record.WarehouseID.String(),
				"item_id", record.ItemID.String(),
				"usable", record.Usable.String(),
				"threshold", j.threshold.String(),
			)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Low stock alert job started (running every minute)")
	return nil
}

// Stop stops the low stock alert job.
func (j *LowStockAlertJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Low stock alert job stopped")
}
