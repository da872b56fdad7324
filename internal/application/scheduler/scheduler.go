package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/linskybing/issue-desk/internal/application"
	"github.com/robfig/cron/v3"
)

// Sweeper runs one escalation pass.
type Sweeper interface {
	Sweep(ctx context.Context) (application.SweepResult, error)
}

// Scheduler runs the escalation sweep once at start and then on a fixed
// interval until its context is cancelled.
type Scheduler struct {
	mu       sync.Mutex
	cron     *cron.Cron
	sweeper  Sweeper
	interval time.Duration
	logger   *slog.Logger
	running  bool
	runs     int
}

func New(sweeper Sweeper, interval time.Duration, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	if interval <= 0 {
		interval = time.Hour
	}
	return &Scheduler{
		cron:     cron.New(),
		sweeper:  sweeper,
		interval: interval,
		logger:   logger,
	}
}

// Start sweeps eagerly, registers the periodic job and blocks until ctx is
// done.
func (s *Scheduler) Start(ctx context.Context) error {
	spec := fmt.Sprintf("@every %s", s.interval)
	if _, err := s.cron.AddFunc(spec, func() { s.tick(ctx) }); err != nil {
		return fmt.Errorf("scheduler: invalid schedule %q: %w", spec, err)
	}

	s.setRunning(true)
	s.tick(ctx)
	s.cron.Start()
	s.logger.Info("escalation scheduler started", "interval", s.interval)

	<-ctx.Done()
	stopped := s.cron.Stop()
	<-stopped.Done()
	s.setRunning(false)
	s.logger.Info("escalation scheduler stopped")
	return ctx.Err()
}

func (s *Scheduler) tick(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	res, err := s.sweeper.Sweep(ctx)
	s.mu.Lock()
	s.runs++
	s.mu.Unlock()
	if err != nil {
		s.logger.Error("escalation sweep failed", "error", err)
		return
	}
	s.logger.Debug("escalation sweep done", "escalated", len(res.Escalated), "examined", res.Examined)
}

func (s *Scheduler) setRunning(v bool) {
	s.mu.Lock()
	s.running = v
	s.mu.Unlock()
}

// IsRunning reports whether Start is active.
func (s *Scheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// Runs returns how many sweeps have been attempted.
func (s *Scheduler) Runs() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.runs
}
