package monitor

import (
	"context"
	"time"

	"energy_tracker/internal/logger"
)

const (
	DefaultInitialDelay = 5 * time.Second
	DefaultInterval     = 30 * time.Second
)

// Ticker is the part of *time.Ticker the scheduler uses.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// Clock abstracts timers so tests can drive ticks by hand.
type Clock interface {
	After(d time.Duration) <-chan time.Time
	NewTicker(d time.Duration) Ticker
}

type realClock struct{}

func (realClock) After(d time.Duration) <-chan time.Time { return time.After(d) }
func (realClock) NewTicker(d time.Duration) Ticker       { return realTicker{time.NewTicker(d)} }

type realTicker struct{ t *time.Ticker }

func (r realTicker) C() <-chan time.Time { return r.t.C }
func (r realTicker) Stop()               { r.t.Stop() }

// RealClock is backed by the time package.
var RealClock Clock = realClock{}

// Checker is what the scheduler runs on every tick.
type Checker interface {
	CheckAll(ctx context.Context) error
}

type SchedulerConfig struct {
	InitialDelay time.Duration
	Interval     time.Duration
	Clock        Clock
}

// Scheduler runs a Checker once after InitialDelay and every Interval. Both
// clocks start together, so the interval ticks are not shifted by the delay.
type Scheduler struct {
	checker Checker
	cfg     SchedulerConfig
	log     *logger.Logger
}

func NewScheduler(checker Checker, cfg SchedulerConfig, log *logger.Logger) *Scheduler {
	if cfg.InitialDelay <= 0 {
		cfg.InitialDelay = DefaultInitialDelay
	}
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultInterval
	}
	if cfg.Clock == nil {
		cfg.Clock = RealClock
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Scheduler{checker: checker, cfg: cfg, log: log}
}

// Run blocks until ctx is canceled. Ticks run one at a time on the calling
// goroutine, so a tick always finishes before the next one is taken.
func (s *Scheduler) Run(ctx context.Context) {
	t := s.cfg.Clock.NewTicker(s.cfg.Interval)
	defer t.Stop()
	initial := s.cfg.Clock.After(s.cfg.InitialDelay)

	for {
		select {
		case <-ctx.Done():
			return
		case <-initial:
			initial = nil
			s.tick(ctx)
		case <-t.C():
			s.tick(ctx)
		}
	}
}

func (s *Scheduler) tick(ctx context.Context) {
	if err := s.checker.CheckAll(ctx); err != nil && ctx.Err() == nil {
		s.log.Errorw("monitor_tick_failed", "err", err)
	}
}
