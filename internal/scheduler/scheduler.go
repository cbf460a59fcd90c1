package scheduler

import (
	"context"
	"probpick/internal/providers"
	"probpick/internal/scheduler/interfaces"
	"probpick/internal/services"
	"probpick/internal/structures"
	"sync"
	"time"

	"github.com/roylee0704/gron"
)

// Scheduler periodically recomputes stats while the server runs. Stats always
// fetch fresh; each complete run refreshes the cached solved sets that fill in
// for a fetch that stops midway.
type Scheduler struct {
	interval time.Duration
	logger   providers.Logger
	stats    services.StatsServiceInterface
	cron     *gron.Cron
	opsMu    sync.Mutex
}

func (s *Scheduler) Init() {
	if s.interval <= 0 {
		s.logger.Infof(providers.TypeApp, "Solved set warmup disabled")
		return
	}

	s.cron = gron.New()
	s.cron.AddFunc(gron.Every(s.interval), func() {
		// a slow catalog must not stack runs
		if !s.opsMu.TryLock() {
			s.logger.Debugf(providers.TypeApp, "Warmup still running, tick skipped")
			return
		}
		defer s.opsMu.Unlock()

		if err := s.warm(); err != nil {
			s.logger.Errorf(providers.TypeApp, "Warmup failed: %s", err)
		}
	})
	s.cron.Start()
	s.logger.Infof(providers.TypeApp, "Solved set warmup every %s", s.interval)
}

func (s *Scheduler) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

// Warm runs one warmup immediately, serialized with scheduled runs.
func (s *Scheduler) Warm() error {
	s.opsMu.Lock()
	defer s.opsMu.Unlock()
	return s.warm()
}

func (s *Scheduler) warm() error {
	timeout := s.interval
	if timeout <= 0 {
		timeout = time.Minute
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	stats, err := s.stats.ComputeAll(ctx)
	if err != nil {
		return err
	}
	partial := 0
	for _, st := range stats {
		if st.Partial {
			partial++
		}
	}
	s.logger.Infof(providers.TypeApp, "Refreshed fallback solved sets of %d users, %d partial", len(stats), partial)
	return nil
}

func NewScheduler(conf *structures.Config, logger providers.Logger, stats services.StatsServiceInterface) interfaces.SchedulerInterface {
	interval := conf.Cache.WarmInterval
	if !conf.Cache.Enabled {
		interval = 0
	}
	return &Scheduler{
		interval: interval,
		logger:   logger,
		stats:    stats,
	}
}
