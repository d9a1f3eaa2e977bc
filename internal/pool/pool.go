// Package pool runs the bounded work-distribution pipeline: a fixed set of
// workers drains a shared task queue, computes a sequence per item through
// the configured backend, isolates per-item failures, and aggregates results
// and per-worker statistics once the queue has fully drained.
package pool

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/cvelab/collatzmgr/internal/backend"
	"github.com/cvelab/collatzmgr/internal/config"
	"github.com/cvelab/collatzmgr/internal/logger"
	"github.com/cvelab/collatzmgr/internal/progress"
	"github.com/cvelab/collatzmgr/internal/queue"
	"github.com/cvelab/collatzmgr/internal/results"
	"github.com/cvelab/collatzmgr/pkg/models"
)

// Pool coordinates one run over the range 1..MaxNumber. It owns the shared
// queue, the result collector and the worker statistics for the run; nothing
// is ambient package state, so a Pool can be constructed and run repeatedly
// with identical outcomes on a deterministic backend.
type Pool struct {
	cfg      config.PoolConfig
	backend  backend.Backend
	reporter progress.Reporter
	log      logger.Logger
}

// Option customizes a Pool
type Option func(*Pool)

// WithReporter sets the progress reporter for the run
func WithReporter(r progress.Reporter) Option {
	return func(p *Pool) {
		p.reporter = r
	}
}

// New creates a pool with the given configuration and compute backend
func New(cfg config.PoolConfig, b backend.Backend, opts ...Option) *Pool {
	p := &Pool{
		cfg:      cfg,
		backend:  b,
		reporter: progress.NewNop(),
		log:      logger.New("pool"),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run drains the full range through the worker pool and returns the final
// report. It enqueues every work task and one stop task per worker, waits for
// the queue to drain, then cancels and awaits all workers before reducing.
// Per-item failures are recorded, never fatal; an error is returned only for
// a failed launch, a canceled context, or an empty result set.
func (p *Pool) Run(ctx context.Context) (*results.Report, error) {
	if p.backend == nil {
		return nil, fmt.Errorf("pool: no compute backend configured")
	}
	if p.cfg.Workers < 1 {
		return nil, fmt.Errorf("pool: worker count must be at least 1, got %d", p.cfg.Workers)
	}
	if p.cfg.MaxNumber < 0 {
		return nil, fmt.Errorf("pool: max number must not be negative, got %d", p.cfg.MaxNumber)
	}
	batchSize := p.cfg.BatchSize
	if batchSize < 1 {
		batchSize = 1
	}

	runID := uuid.NewString()
	start := time.Now()
	log := p.log.WithFields(logger.String("run_id", runID))
	log.Info("starting run",
		logger.Int("max_number", p.cfg.MaxNumber),
		logger.Int("workers", p.cfg.Workers),
		logger.Int("batch_size", batchSize),
	)

	q := queue.New(p.cfg.QueueCapacity)
	collector := results.NewCollector()

	// One fixed slot per worker; each worker mutates only its own slot and
	// the slots are read back only after every worker has exited.
	stats := make([]models.WorkerStat, p.cfg.Workers)
	for i := range stats {
		stats[i].WorkerID = i
	}

	workerCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup
	for i := 0; i < p.cfg.Workers; i++ {
		wg.Add(1)
		go p.worker(workerCtx, &wg, i, q, collector, &stats[i])
	}

	if err := p.enqueue(ctx, q, batchSize); err != nil {
		cancel()
		wg.Wait()
		return nil, fmt.Errorf("pool: enqueue aborted: %w", err)
	}

	if err := q.Join(ctx); err != nil {
		cancel()
		wg.Wait()
		return nil, fmt.Errorf("pool: run canceled: %w", err)
	}

	// Drained. Seal the sink first so nothing still in flight can land in
	// the reduction, then stop and await the workers.
	collector.Close()
	cancel()
	wg.Wait()
	p.reporter.Finish()

	elapsed := time.Since(start)

	var failed int
	for _, stat := range stats {
		failed += stat.Failed
	}

	longest, err := collector.Longest()
	if err != nil {
		return nil, err
	}

	log.Info("run complete",
		logger.Int("succeeded", collector.Len()),
		logger.Int("failed", failed),
		logger.Duration("elapsed", elapsed),
	)

	return &results.Report{
		RunID:     runID,
		MaxNumber: p.cfg.MaxNumber,
		Workers:   p.cfg.Workers,
		Longest:   longest,
		Attempted: p.cfg.MaxNumber,
		Succeeded: collector.Len(),
		Failed:    failed,
		Elapsed:   elapsed,
		Stats:     stats,
	}, nil
}

// enqueue puts every work batch on the queue in ascending order, then one
// stop task per worker so each worker observes exactly one
func (p *Pool) enqueue(ctx context.Context, q *queue.Queue, batchSize int) error {
	for lo := 1; lo <= p.cfg.MaxNumber; lo += batchSize {
		hi := lo + batchSize
		if hi > p.cfg.MaxNumber+1 {
			hi = p.cfg.MaxNumber + 1
		}
		numbers := make([]int, 0, hi-lo)
		for n := lo; n < hi; n++ {
			numbers = append(numbers, n)
		}
		if err := q.Put(ctx, queue.Work(numbers...)); err != nil {
			return err
		}
	}

	for i := 0; i < p.cfg.Workers; i++ {
		if err := q.Put(ctx, queue.Stop()); err != nil {
			return err
		}
	}
	return nil
}
