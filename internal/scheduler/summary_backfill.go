package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/mrlokans/bookshelf/internal/logging"
)

var parser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// ValidateSchedule checks a five-field cron expression.
func ValidateSchedule(schedule string) error {
	if _, err := parser.Parse(schedule); err != nil {
		return fmt.Errorf("invalid cron schedule %q: %w", schedule, err)
	}
	return nil
}

// BackfillTrigger starts a summary backfill run.
type BackfillTrigger interface {
	EnqueueSummaryBackfill(ctx context.Context) (string, error)
}

// SummaryBackfillScheduler periodically triggers a backfill of missing book summaries.
type SummaryBackfillScheduler struct {
	trigger  BackfillTrigger
	schedule string

	cron       *cron.Cron
	entryID    cron.EntryID
	mu         sync.RWMutex
	isRunning  bool
	runCtx     context.Context
	cancelFunc context.CancelFunc
}

func NewSummaryBackfillScheduler(trigger BackfillTrigger, schedule string) *SummaryBackfillScheduler {
	return &SummaryBackfillScheduler{
		trigger:  trigger,
		schedule: schedule,
		cron:     cron.New(cron.WithParser(parser)),
	}
}

// Start schedules the backfill job. The scheduler stops when ctx is cancelled.
func (s *SummaryBackfillScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}
	if err := ValidateSchedule(s.schedule); err != nil {
		return err
	}

	entryID, err := s.cron.AddFunc(s.schedule, s.runBackfill)
	if err != nil {
		return fmt.Errorf("failed to schedule summary backfill: %w", err)
	}
	s.entryID = entryID

	s.runCtx, s.cancelFunc = context.WithCancel(ctx)
	s.cron.Start()
	s.isRunning = true

	logging.Info().
		Str("schedule", s.schedule).
		Time("next_run", s.cron.Entry(entryID).Next).
		Msg("summary backfill scheduler started")

	go func(done <-chan struct{}) {
		<-done
		s.Stop()
	}(s.runCtx.Done())

	return nil
}

// Stop waits for a running job to finish and stops the scheduler.
func (s *SummaryBackfillScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	<-s.cron.Stop().Done()
	s.cron.Remove(s.entryID)
	s.cancelFunc()

	s.isRunning = false
	s.cancelFunc = nil
	logging.Info().Msg("summary backfill scheduler stopped")
}

func (s *SummaryBackfillScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// NextRunTime returns when the next backfill will be triggered, or nil when stopped.
func (s *SummaryBackfillScheduler) NextRunTime() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return nil
	}
	next := s.cron.Entry(s.entryID).Next
	return &next
}

// RunNow triggers a backfill immediately, outside the schedule.
func (s *SummaryBackfillScheduler) RunNow(ctx context.Context) (string, error) {
	return s.trigger.EnqueueSummaryBackfill(ctx)
}

// runBackfill must not take s.mu: Stop holds it while waiting for running jobs.
// runCtx is only written by Start before the cron loop begins.
func (s *SummaryBackfillScheduler) runBackfill() {
	ctx := s.runCtx
	if ctx == nil {
		ctx = context.Background()
	}

	id, err := s.trigger.EnqueueSummaryBackfill(ctx)
	if err != nil {
		logging.Error().Err(err).Msg("summary backfill trigger failed")
		return
	}
	logging.Info().Str("task_id", id).Msg("summary backfill triggered")
}
