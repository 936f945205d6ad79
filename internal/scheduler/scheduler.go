package scheduler

import (
	"time"

	"github.com/go-co-op/gocron"

	"github.com/i474232898/wash-advisor/internal/log"
	"github.com/i474232898/wash-advisor/internal/store"
)

// Cache is the part of the zone cache the maintenance job needs.
type Cache interface {
	Prune() int
	Stats() store.Stats
}

// Scheduler periodically evicts expired timezone lookups and reports cache usage.
type Scheduler struct {
	scheduler *gocron.Scheduler
	cache     Cache
	interval  time.Duration
}

// New creates a new Scheduler.
func New(cache Cache, interval time.Duration) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler: s,
		cache:     cache,
		interval:  interval,
	}
}

// Start schedules the periodic job and starts the underlying scheduler.
func (s *Scheduler) Start() error {
	interval := s.interval
	if interval <= 0 {
		interval = 15 * time.Minute
	}

	_, err := s.scheduler.Every(interval).Do(s.RunOnce)
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// RunOnce prunes the cache and logs its counters.
func (s *Scheduler) RunOnce() {
	removed := s.cache.Prune()
	st := s.cache.Stats()
	log.Infow("scheduler: zone cache maintenance",
		"removed", removed,
		"entries", st.Entries,
		"hits", st.Hits,
		"misses", st.Misses,
	)
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
