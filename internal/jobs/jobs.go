// Package jobs runs periodic board maintenance on a cron schedule.
package jobs

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/julianstephens/energyflow/internal/logger"
)

// BoardClearer removes completed tasks from the persisted board.
type BoardClearer interface {
	ClearCompleted() (int, error)
}

// Scheduler wraps a cron runner holding the board cleanup job.
type Scheduler struct {
	cron *cron.Cron

	mu        sync.Mutex
	cleanupID cron.EntryID
	spec      string
}

// New creates a scheduler evaluating specs in loc. A nil loc means local time.
func New(loc *time.Location) *Scheduler {
	if loc == nil {
		loc = time.Local
	}
	return &Scheduler{
		cron: cron.New(cron.WithLocation(loc), cron.WithChain(cron.Recover(cron.DiscardLogger))),
	}
}

// SetBoardCleanup installs or replaces the cleanup job. An empty spec removes it.
func (s *Scheduler) SetBoardCleanup(spec string, board BoardClearer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if spec == s.spec && s.cleanupID != 0 {
		return nil
	}
	if spec != "" {
		if _, err := cron.ParseStandard(spec); err != nil {
			return fmt.Errorf("invalid cleanup schedule %q: %w", spec, err)
		}
	}

	if s.cleanupID != 0 {
		s.cron.Remove(s.cleanupID)
		s.cleanupID = 0
	}
	s.spec = spec
	if spec == "" {
		logger.Named("jobs").Info("board cleanup disabled")
		return nil
	}

	id, err := s.cron.AddFunc(spec, cleanupJob(board))
	if err != nil {
		return err
	}
	s.cleanupID = id
	logger.Named("jobs").Info("board cleanup scheduled", "spec", spec)
	return nil
}

// Next returns the next cleanup run, or the zero time when none is scheduled or the runner is stopped.
func (s *Scheduler) Next() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cleanupID == 0 {
		return time.Time{}
	}
	return s.cron.Entry(s.cleanupID).Next
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop stops the runner and waits for running jobs or ctx, whichever comes first.
func (s *Scheduler) Stop(ctx context.Context) error {
	done := s.cron.Stop()
	select {
	case <-done.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func cleanupJob(board BoardClearer) func() {
	return func() {
		log := logger.Named("jobs")
		n, err := board.ClearCompleted()
		if err != nil {
			log.Error("board cleanup failed", "error", err)
			return
		}
		log.Info("board cleanup finished", "removed", n)
	}
}
