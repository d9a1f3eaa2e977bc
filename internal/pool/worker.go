package pool

import (
	"context"
	"sync"
	"time"

	"github.com/cvelab/collatzmgr/internal/logger"
	"github.com/cvelab/collatzmgr/internal/queue"
	"github.com/cvelab/collatzmgr/internal/results"
	"github.com/cvelab/collatzmgr/pkg/models"
)

// worker pulls tasks from the queue until it consumes its stop task or the
// context is canceled. Consuming the stop task is the worker's one-way
// transition to its terminal state.
func (p *Pool) worker(ctx context.Context, wg *sync.WaitGroup, id int, q *queue.Queue, collector *results.Collector, stat *models.WorkerStat) {
	defer wg.Done()

	log := p.log.WithFields(logger.Int("worker_id", id))

	for {
		task, err := q.Get(ctx)
		if err != nil {
			// Canceled by the pool after drain, or by the caller.
			return
		}

		if task.Kind == queue.KindStop {
			q.MarkDone()
			log.Debug("worker stopping", logger.Int("processed", stat.Processed))
			return
		}

		for _, n := range task.Numbers {
			p.processOne(ctx, log, n, collector, stat)
		}
		// A failed item still counts toward drain accounting, so the run
		// terminates even when some items never produce a result.
		q.MarkDone()
	}
}

// processOne invokes the backend for a single number and records the outcome.
// Errors are reported and absorbed here; they never escape the worker.
func (p *Pool) processOne(ctx context.Context, log logger.Logger, n int, collector *results.Collector, stat *models.WorkerStat) {
	start := time.Now()
	sequence, err := p.backend.Compute(ctx, n)
	stat.ProcessingTime += time.Since(start)

	if err != nil {
		stat.Failed++
		log.WithError(err).Warn("compute failed", logger.Int("number", n))
		p.reporter.Failed(n, err)
		return
	}

	stat.Processed++
	stat.TotalLength += len(sequence)
	if len(sequence) > stat.LongestLength {
		stat.LongestLength = len(sequence)
		stat.NumberWithLongest = n
	}

	collector.Append(models.NewResult(n, sequence, stat.WorkerID))
	p.reporter.Completed(1)
}
