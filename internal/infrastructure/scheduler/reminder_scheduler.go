package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/housebill/backend/internal/application/billing"
	"github.com/housebill/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// ReminderSender runs one reminder delivery pass
type ReminderSender interface {
	SendDueReminders(ctx context.Context) (billing.ReminderSummary, error)
}

// ReminderSchedulerConfig holds configuration for the monthly due-reminder run
type ReminderSchedulerConfig struct {
	// Enabled determines if the scheduler is active
	Enabled bool

	// Day is the day of month (1-28) reminders go out
	Day int

	// Hour is the hour (0-23) of the run
	Hour int

	// Minute is the minute (0-59) of the run
	Minute int

	// RunTimeout is the maximum time for one delivery pass
	RunTimeout time.Duration
}

// DefaultReminderSchedulerConfig returns default configuration
func DefaultReminderSchedulerConfig() ReminderSchedulerConfig {
	return ReminderSchedulerConfig{
		Enabled:    true,
		Day:        10,
		Hour:       9,
		RunTimeout: 5 * time.Minute,
	}
}

// ReminderSchedulerConfigFromApp maps the application config onto the
// scheduler's own config
func ReminderSchedulerConfigFromApp(cfg config.SchedulerConfig) ReminderSchedulerConfig {
	out := DefaultReminderSchedulerConfig()
	out.Enabled = cfg.Enabled
	if cfg.ReminderDay > 0 {
		out.Day = cfg.ReminderDay
	}
	out.Hour = cfg.ReminderHour
	out.Minute = cfg.ReminderMinute
	return out
}

// ReminderScheduler triggers the monthly due-reminder run on a fixed
// day of the month.
type ReminderScheduler struct {
	sender    ReminderSender
	logger    *zap.Logger
	config    ReminderSchedulerConfig
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	mu        sync.Mutex
	isRunning bool
}

// NewReminderScheduler creates a new reminder scheduler
func NewReminderScheduler(sender ReminderSender, logger *zap.Logger, config ReminderSchedulerConfig) *ReminderScheduler {
	return &ReminderScheduler{
		sender: sender,
		logger: logger,
		config: config,
	}
}

// Start starts the reminder scheduler
func (s *ReminderScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return nil
	}
	if !s.config.Enabled {
		s.mu.Unlock()
		s.logger.Info("Reminder scheduler is disabled")
		return nil
	}
	s.isRunning = true
	s.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	s.wg.Add(1)
	go s.runMonthly(ctx)

	s.logger.Info("Reminder scheduler started",
		zap.Int("day", s.config.Day),
		zap.Int("hour", s.config.Hour),
		zap.Int("minute", s.config.Minute),
	)

	return nil
}

// Stop gracefully stops the scheduler
func (s *ReminderScheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = false
	s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("Reminder scheduler stopped gracefully")
		return nil
	case <-ctx.Done():
		s.logger.Warn("Reminder scheduler stop timed out")
		return ctx.Err()
	}
}

// runMonthly sleeps until the next scheduled run, fires it, and repeats
func (s *ReminderScheduler) runMonthly(ctx context.Context) {
	defer s.wg.Done()

	for {
		now := time.Now()
		nextRun := s.nextRunAfter(now)
		delay := nextRun.Sub(now)

		s.logger.Info("Monthly due reminder scheduled",
			zap.Time("next_run", nextRun),
			zap.Duration("delay", delay),
		)

		select {
		case <-ctx.Done():
			s.logger.Debug("Reminder loop stopping")
			return
		case <-time.After(delay):
			s.execute(ctx)
		}
	}
}

// nextRunAfter returns the first scheduled run strictly after now.
// Day is capped at 28 by config validation, so the date never
// overflows into the following month.
func (s *ReminderScheduler) nextRunAfter(now time.Time) time.Time {
	run := time.Date(now.Year(), now.Month(), s.config.Day,
		s.config.Hour, s.config.Minute, 0, 0, now.Location())
	if !run.After(now) {
		run = time.Date(now.Year(), now.Month()+1, s.config.Day,
			s.config.Hour, s.config.Minute, 0, 0, now.Location())
	}
	return run
}

// execute runs one delivery pass
func (s *ReminderScheduler) execute(ctx context.Context) {
	s.logger.Info("Starting monthly due reminder run",
		zap.Time("started_at", time.Now()),
	)

	runCtx, cancel := context.WithTimeout(ctx, s.config.RunTimeout)
	defer cancel()

	startTime := time.Now()
	summary, err := s.sender.SendDueReminders(runCtx)
	duration := time.Since(startTime)

	if err != nil {
		s.logger.Error("Monthly due reminder run failed",
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		return
	}

	s.logger.Info("Monthly due reminder run completed",
		zap.Duration("duration", duration),
		zap.Int("residents", summary.Residents),
		zap.Int("shares", summary.Shares),
	)
}
