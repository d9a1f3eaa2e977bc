// Package results owns the shared result sink and the post-drain reductions
// over it: the longest-sequence argmax and the worker statistics summary.
package results

import (
	"sync"

	"github.com/cvelab/collatzmgr/pkg/models"
)

// Collector is the append-only, multi-writer result sink shared by the
// workers. Close seals it; appends after Close are dropped so outcomes of
// calls still in flight at shutdown never leak into the reduction.
type Collector struct {
	mu      sync.Mutex
	results []models.Result
	closed  bool
}

// NewCollector creates an empty collector
func NewCollector() *Collector {
	return &Collector{}
}

// Append records a result. It reports false when the collector is closed.
func (c *Collector) Append(result models.Result) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return false
	}
	c.results = append(c.results, result)
	return true
}

// Close seals the collector against further appends
func (c *Collector) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
}

// Len returns the number of collected results
func (c *Collector) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.results)
}

// Snapshot returns a copy of the collected results
func (c *Collector) Snapshot() []models.Result {
	c.mu.Lock()
	defer c.mu.Unlock()

	snapshot := make([]models.Result, len(c.results))
	copy(snapshot, c.results)
	return snapshot
}
