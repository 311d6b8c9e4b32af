package scheduler

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Scheduler triggers one fan-out at the top of every hour.
type Scheduler struct {
	dispatcher *Dispatcher
	log        *zap.Logger
}

// New creates a new Scheduler around a Dispatcher.
func New(dispatcher *Dispatcher, log *zap.Logger) *Scheduler {
	return &Scheduler{dispatcher: dispatcher, log: log}
}

// Run fires Dispatch at every full hour until ctx is canceled. A tick that
// outlives the hour runs to completion alongside the next one; there is no
// cross-tick deduplication, the deterministic quote seed keeps a repeated
// tick idempotent.
func (s *Scheduler) Run(ctx context.Context) {
	for {
		tick := nextHour(time.Now().UTC())
		timer := time.NewTimer(time.Until(tick))

		select {
		case <-ctx.Done():
			timer.Stop()
			s.log.Info("scheduler stopping")
			return
		case <-timer.C:
			go s.dispatcher.Dispatch(ctx, tick)
		}
	}
}

// nextHour returns the first full hour strictly after now.
func nextHour(now time.Time) time.Time {
	return now.Truncate(time.Hour).Add(time.Hour)
}
