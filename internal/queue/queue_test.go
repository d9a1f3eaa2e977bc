package queue

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueue_PutGet(t *testing.T) {
	q := New(10)
	ctx := context.Background()

	require.NoError(t, q.Put(ctx, Work(1, 2, 3)))
	require.NoError(t, q.Put(ctx, Stop()))

	task, err := q.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, KindWork, task.Kind)
	assert.Equal(t, []int{1, 2, 3}, task.Numbers)

	task, err = q.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, KindStop, task.Kind)
}

func TestQueue_JoinEmptyReturnsImmediately(t *testing.T) {
	q := New(10)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	require.NoError(t, q.Join(ctx))
}

func TestQueue_JoinWaitsForMarkDone(t *testing.T) {
	q := New(10)
	ctx := context.Background()

	require.NoError(t, q.Put(ctx, Work(1)))
	require.NoError(t, q.Put(ctx, Work(2)))

	joined := make(chan error, 1)
	go func() {
		joined <- q.Join(ctx)
	}()

	select {
	case <-joined:
		t.Fatal("Join returned before all tasks were marked done")
	case <-time.After(50 * time.Millisecond):
	}

	_, err := q.Get(ctx)
	require.NoError(t, err)
	q.MarkDone()

	_, err = q.Get(ctx)
	require.NoError(t, err)
	q.MarkDone()

	select {
	case err := <-joined:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Join did not return after all tasks were marked done")
	}
}

func TestQueue_GetHonorsCancellation(t *testing.T) {
	q := New(10)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		_, err := q.Get(ctx)
		done <- err
	}()

	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("Get did not return after cancellation")
	}
}

func TestQueue_PutBlocksWhenFull(t *testing.T) {
	q := New(1)
	ctx := context.Background()

	require.NoError(t, q.Put(ctx, Work(1)))

	blockedCtx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	err := q.Put(blockedCtx, Work(2))
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	// The aborted Put must not count toward drain accounting.
	assert.Equal(t, 1, q.Unfinished())
}

func TestQueue_ConcurrentConsumers(t *testing.T) {
	const tasks = 500
	const consumers = 8

	q := New(64)
	ctx := context.Background()

	var wg sync.WaitGroup
	var mu sync.Mutex
	seen := make(map[int]int)

	for i := 0; i < consumers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				task, err := q.Get(ctx)
				if err != nil {
					return
				}
				if task.Kind == KindStop {
					q.MarkDone()
					return
				}
				mu.Lock()
				for _, n := range task.Numbers {
					seen[n]++
				}
				mu.Unlock()
				q.MarkDone()
			}
		}()
	}

	for n := 1; n <= tasks; n++ {
		require.NoError(t, q.Put(ctx, Work(n)))
	}
	for i := 0; i < consumers; i++ {
		require.NoError(t, q.Put(ctx, Stop()))
	}

	joinCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	require.NoError(t, q.Join(joinCtx))
	wg.Wait()

	// Every task claimed by exactly one consumer exactly once.
	assert.Len(t, seen, tasks)
	for n, count := range seen {
		assert.Equal(t, 1, count, "number %d consumed %d times", n, count)
	}
	assert.Equal(t, 0, q.Unfinished())
}

func TestQueue_MarkDonePanicsWithoutPut(t *testing.T) {
	q := New(10)
	assert.Panics(t, func() {
		q.MarkDone()
	})
}
