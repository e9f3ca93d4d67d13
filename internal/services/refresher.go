package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// refreshTimeout bounds a single background reload.
const refreshTimeout = 2 * time.Minute

// Refresher reloads the data service's snapshot on a cron schedule so
// long-running servers pick up workbook updates without a restart. A
// failed reload keeps the previous snapshot in place.
type Refresher struct {
	cron    *cron.Cron
	service *DataService
	logger  *slog.Logger
}

// NewRefresher schedules periodic snapshot reloads. The schedule uses
// cron syntax, including descriptors like "@every 5m".
func NewRefresher(service *DataService, schedule string, logger *slog.Logger) (*Refresher, error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("component", "refresher"))

	c := cron.New()
	_, err := c.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
		defer cancel()

		snap, err := service.LoadSnapshot(ctx)
		if err != nil {
			logger.Error("scheduled snapshot reload failed", "error", err)
			return
		}
		logger.Info("scheduled snapshot reload completed",
			slog.String("snapshot_id", snap.ID))
	})
	if err != nil {
		return nil, fmt.Errorf("invalid refresh schedule %q: %w", schedule, err)
	}

	return &Refresher{cron: c, service: service, logger: logger}, nil
}

// Start begins running the schedule in its own goroutine.
func (r *Refresher) Start() {
	r.cron.Start()
	r.logger.Info("snapshot refresher started")
}

// Stop halts the schedule and waits for a running reload to finish.
func (r *Refresher) Stop() {
	ctx := r.cron.Stop()
	<-ctx.Done()
	r.logger.Info("snapshot refresher stopped")
}
