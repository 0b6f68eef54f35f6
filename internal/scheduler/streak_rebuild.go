// Package scheduler runs recurring maintenance jobs on cron schedules.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/robfig/cron/v3"
)

// StreakRebuilder recomputes the reading-streak counters.
type StreakRebuilder interface {
	Recompute() error
}

// StreakRebuildScheduler rebuilds streak counters on a cron schedule. The
// engine already recomputes after every transition; the scheduled rebuild
// exists so a streak lapses at the day boundary even when no activity
// arrives to trigger a recompute.
type StreakRebuildScheduler struct {
	streaks  StreakRebuilder
	schedule string

	cron       *cron.Cron
	entryID    cron.EntryID
	mu         sync.RWMutex
	isRunning  bool
	cancelFunc context.CancelFunc
}

// NewStreakRebuildScheduler creates a new scheduler instance.
func NewStreakRebuildScheduler(streaks StreakRebuilder, schedule string) *StreakRebuildScheduler {
	return &StreakRebuildScheduler{
		streaks:  streaks,
		schedule: schedule,
		cron:     cron.New(cron.WithParser(cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow))),
	}
}

// Start begins the scheduler.
func (s *StreakRebuildScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	entryID, err := s.cron.AddFunc(s.schedule, func() {
		s.runRebuild()
	})
	if err != nil {
		return fmt.Errorf("failed to schedule streak rebuild '%s': %w", s.schedule, err)
	}
	s.entryID = entryID

	var cancelCtx context.Context
	cancelCtx, s.cancelFunc = context.WithCancel(ctx)

	s.cron.Start()
	s.isRunning = true

	log.Printf("Streak rebuild scheduler: started with schedule '%s'", s.schedule)

	go func() {
		<-cancelCtx.Done()
		s.Stop()
	}()

	return nil
}

// Stop gracefully stops the scheduler.
func (s *StreakRebuildScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	// Stop accepting new jobs and wait for running jobs to complete
	ctx := s.cron.Stop()
	<-ctx.Done()

	s.isRunning = false
	s.cancelFunc = nil

	log.Printf("Streak rebuild scheduler: stopped")
}

func (s *StreakRebuildScheduler) runRebuild() {
	log.Printf("Streak rebuild scheduler: recomputing")
	if err := s.streaks.Recompute(); err != nil {
		log.Printf("Streak rebuild scheduler: recompute failed: %v", err)
		return
	}
	log.Printf("Streak rebuild scheduler: done")
}
