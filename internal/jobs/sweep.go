// Package jobs runs background maintenance on a cron schedule.
package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const sweepTimeout = 2 * time.Minute

// Sweeper completes confirmed bookings whose slot has ended.
type Sweeper interface {
	CompleteEnded(ctx context.Context) (int, error)
}

type Scheduler struct {
	cron    *cron.Cron
	sweeper Sweeper
	log     *zap.Logger
	enabled bool
}

// NewScheduler registers the completion sweep on schedule, a standard
// five-field cron expression. An empty schedule disables the sweep.
func NewScheduler(schedule string, sweeper Sweeper, log *zap.Logger) (*Scheduler, error) {
	if log == nil {
		log = zap.NewNop()
	}
	cronLog := cron.PrintfLogger(zap.NewStdLog(log.Named("cron")))
	s := &Scheduler{
		cron:    cron.New(cron.WithLocation(time.UTC), cron.WithChain(cron.Recover(cronLog), cron.SkipIfStillRunning(cronLog))),
		sweeper: sweeper,
		log:     log,
	}
	if schedule == "" {
		return s, nil
	}

	if _, err := s.cron.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
		defer cancel()
		_, _ = s.RunOnce(ctx)
	}); err != nil {
		return nil, err
	}
	s.enabled = true
	return s, nil
}

// RunOnce performs one sweep and logs the outcome.
func (s *Scheduler) RunOnce(ctx context.Context) (int, error) {
	started := time.Now()
	n, err := s.sweeper.CompleteEnded(ctx)
	if err != nil {
		s.log.Error("completion sweep failed", zap.Int("completed", n), zap.Error(err))
		return n, err
	}
	s.log.Info("completion sweep finished",
		zap.Int("completed", n),
		zap.Duration("took", time.Since(started)),
	)
	return n, nil
}

func (s *Scheduler) Enabled() bool { return s.enabled }

func (s *Scheduler) Start() {
	if !s.enabled {
		s.log.Info("completion sweep disabled")
		return
	}
	s.cron.Start()
}

// Stop waits for a running sweep to finish or ctx to expire.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
	}
}
