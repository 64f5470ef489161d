// Package scheduler runs the periodic tick that advances every reactor of
// every registered plant.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/xiaonanln/plantsim/plant"
	"github.com/xiaonanln/plantsim/util/logger"
	"github.com/xiaonanln/plantsim/util/metrics"
	"github.com/xiaonanln/plantsim/util/workerpool"
)

// DefaultInterval is the tick period used when none is configured
const DefaultInterval = 2500 * time.Millisecond

// Source supplies the plants to tick. *registry.Registry implements it.
type Source interface {
	Snapshot() []*plant.Plant
}

// Scheduler ticks every plant of a Source at a fixed interval. It never
// creates or removes plants.
type Scheduler struct {
	source   Source
	interval time.Duration
	workers  int
	logger   *logger.Logger

	mu      sync.Mutex
	started bool
	stopCh  chan struct{}
	done    chan struct{}
	cancel  context.CancelFunc
}

// New creates a scheduler ticking source every interval, fanning plants out
// over workers goroutines
func New(source Source, interval time.Duration, workers int) *Scheduler {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if workers <= 0 {
		workers = 1
	}
	return &Scheduler{
		source:   source,
		interval: interval,
		workers:  workers,
		logger:   logger.NewLogger("Scheduler"),
		stopCh:   make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Interval returns the tick period
func (s *Scheduler) Interval() time.Duration {
	return s.interval
}

// Start launches the background loop. Calling Start twice is a no-op.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return
	}
	s.started = true

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	pool := workerpool.New(ctx, s.workers)
	pool.Start()

	s.logger.Infof("Starting tick scheduler with %v interval and %d workers", s.interval, s.workers)
	go s.run(ctx, pool)
}

// Stop ends the background loop and waits for the cycle in flight to
// finish. It is idempotent and safe to call without Start.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return
	}
	select {
	case <-s.stopCh:
	default:
		close(s.stopCh)
	}
	s.mu.Unlock()

	<-s.done
	s.logger.Infof("Tick scheduler stopped")
}

// Run starts the scheduler and blocks until ctx is done, then stops it
func (s *Scheduler) Run(ctx context.Context) error {
	s.Start()
	select {
	case <-ctx.Done():
	case <-s.stopCh:
	}
	s.Stop()
	return nil
}

func (s *Scheduler) run(ctx context.Context, pool *workerpool.WorkerPool) {
	defer close(s.done)
	defer pool.Stop()
	defer s.cancel()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopCh:
			return
		case <-ticker.C:
			s.TickAll(ctx, pool)
		}
	}
}

// TickAll advances every plant once using pool and returns the totals
func (s *Scheduler) TickAll(ctx context.Context, pool *workerpool.WorkerPool) plant.TickStats {
	start := time.Now()
	plants := s.source.Snapshot()

	stats := make([]plant.TickStats, len(plants))
	tasks := make([]workerpool.Task, len(plants))
	for i, p := range plants {
		tasks[i] = func(context.Context) error {
			stats[i] = p.Tick()
			return nil
		}
	}
	pool.RunAll(ctx, tasks)

	var total plant.TickStats
	for _, st := range stats {
		total.Reactors += st.Reactors
		total.EmergencyShutdowns += st.EmergencyShutdowns
	}

	elapsed := time.Since(start)
	metrics.RecordTick(total.Reactors, elapsed.Seconds())
	metrics.RecordEmergencyShutdown(metrics.TriggerAuto, total.EmergencyShutdowns)
	if total.EmergencyShutdowns > 0 {
		s.logger.Warnf("%d reactors entered emergency shutdown during tick", total.EmergencyShutdowns)
	}
	s.logger.Debugf("Tick cycle completed: plants=%d, reactors=%d, duration=%v", len(plants), total.Reactors, elapsed)
	return total
}
