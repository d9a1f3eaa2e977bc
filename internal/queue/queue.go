// Package queue provides the bounded multi-consumer task queue shared by the
// worker pool. Every task put on the queue is claimed by exactly one consumer
// and must be acknowledged with MarkDone; Join blocks until every put task has
// been acknowledged.
package queue

import (
	"context"
	"sync"
)

// Kind discriminates work tasks from the stop sentinel
type Kind int

const (
	// KindWork carries a batch of numbers to process
	KindWork Kind = iota
	// KindStop tells the consuming worker to exit; one is enqueued per worker
	KindStop
)

// Task is a queue entry: either a batch of work items or a stop sentinel.
// The sentinel is a tagged variant rather than a magic domain value so it can
// never collide with legitimate work.
type Task struct {
	Kind    Kind
	Numbers []int
}

// Work creates a work task carrying a batch of numbers
func Work(numbers ...int) Task {
	return Task{Kind: KindWork, Numbers: numbers}
}

// Stop creates a stop sentinel task
func Stop() Task {
	return Task{Kind: KindStop}
}

// Queue is a bounded FIFO task queue safe for concurrent Put, Get and
// MarkDone. Put blocks while the queue is full, Get blocks while it is empty.
type Queue struct {
	tasks chan Task

	mu         sync.Mutex
	unfinished int
	drained    chan struct{}
}

// New creates a queue with the given capacity
func New(capacity int) *Queue {
	if capacity <= 0 {
		capacity = 1
	}
	drained := make(chan struct{})
	close(drained)
	return &Queue{
		tasks:   make(chan Task, capacity),
		drained: drained,
	}
}

// Put enqueues a task, blocking while the queue is at capacity.
// It returns ctx.Err() if the context is done before space frees.
func (q *Queue) Put(ctx context.Context, task Task) error {
	q.mu.Lock()
	if q.unfinished == 0 {
		q.drained = make(chan struct{})
	}
	q.unfinished++
	q.mu.Unlock()

	select {
	case q.tasks <- task:
		return nil
	case <-ctx.Done():
		q.markDone()
		return ctx.Err()
	}
}

// Get removes and returns the next task, blocking while the queue is empty.
// It returns ctx.Err() if the context is done before a task arrives.
func (q *Queue) Get(ctx context.Context) (Task, error) {
	select {
	case task := <-q.tasks:
		return task, nil
	case <-ctx.Done():
		return Task{}, ctx.Err()
	}
}

// MarkDone attests that a previously gotten task has been fully processed,
// successfully or with a recorded failure. Calling it more times than Put
// is a programming error and panics.
func (q *Queue) MarkDone() {
	q.markDone()
}

func (q *Queue) markDone() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.unfinished == 0 {
		panic("queue: MarkDone called more times than Put")
	}
	q.unfinished--
	if q.unfinished == 0 {
		close(q.drained)
	}
}

// Join blocks until every put task has a matching MarkDone, or until ctx is
// done. A queue with no outstanding tasks joins immediately.
func (q *Queue) Join(ctx context.Context) error {
	q.mu.Lock()
	drained := q.drained
	q.mu.Unlock()

	select {
	case <-drained:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Unfinished returns the number of put tasks not yet marked done
func (q *Queue) Unfinished() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.unfinished
}

// Len returns the number of tasks currently buffered in the queue
func (q *Queue) Len() int {
	return len(q.tasks)
}
