// Package scheduler contains background workers that keep derived state warm
package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/MyData-Folk/tariff-vision/app/middleware"
	businessflow "github.com/MyData-Folk/tariff-vision/business_flow"
	"github.com/prometheus/client_golang/prometheus"
)

// SnapshotRefresher periodically rebuilds the rule snapshot cache so the
// first calculation after a quiet period never pays the rebuild cost.
type SnapshotRefresher struct {
	snapshots businessflow.RuleSnapshotProvider
	interval  time.Duration
	logger    *log.Logger
}

func NewSnapshotRefresher(snapshots businessflow.RuleSnapshotProvider, interval time.Duration, logger *log.Logger) *SnapshotRefresher {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	if logger == nil {
		logger = log.Default()
	}
	return &SnapshotRefresher{
		snapshots: snapshots,
		interval:  interval,
		logger:    logger,
	}
}

// Start launches the refresh loop and returns its stop function.
func (s *SnapshotRefresher) Start(parent context.Context) func() {
	ctx, cancel := context.WithCancel(parent)

	go func() {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		s.runOnce(ctx)

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.runOnce(ctx)
			}
		}
	}()

	return cancel
}

func (s *SnapshotRefresher) runOnce(ctx context.Context) {
	refreshCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := s.snapshots.Refresh(refreshCtx); err != nil {
		s.logger.Printf("scheduler: rule snapshot refresh failed: %v", err)
		return
	}
	middleware.RuleSnapshotRefreshesTotal.With(prometheus.Labels{"trigger": "scheduled"}).Inc()
	s.logger.Printf("scheduler: rule snapshot refreshed")
}
