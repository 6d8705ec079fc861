package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/habitquest/habitquest-go/internal/testing/leaktest"
)

type testJob struct {
	executed *int32
	err      error
}

func (j *testJob) Process(ctx context.Context) error {
	atomic.AddInt32(j.executed, 1)
	return j.err
}

func TestPool(t *testing.T) {
	checker := leaktest.NewGoroutineChecker(t)

	var executed int32
	pool := NewPool(2, 10)
	pool.Start(context.Background())

	job := &testJob{executed: &executed}
	failing := &testJob{executed: &executed, err: errors.New("boom")}
	require.True(t, pool.Enqueue(job))
	require.True(t, pool.Enqueue(failing))
	require.True(t, pool.Enqueue(job))

	pool.Stop()

	assert.Equal(t, int32(3), atomic.LoadInt32(&executed))
	checker.Check(0)
}

func TestPool_EnqueueAfterStop(t *testing.T) {
	pool := NewPool(1, 1)
	pool.Start(context.Background())
	pool.Stop()
	pool.Stop()

	var executed int32
	assert.False(t, pool.Enqueue(&testJob{executed: &executed}))
}

func TestPool_EnqueueDropsWhenFull(t *testing.T) {
	pool := NewPool(1, 1)

	release := make(chan struct{})
	started := make(chan struct{})
	blocker := JobFunc(func(ctx context.Context) error {
		close(started)
		<-release
		return nil
	})

	pool.Start(context.Background())
	require.True(t, pool.Enqueue(blocker))
	<-started

	var executed int32
	require.True(t, pool.Enqueue(&testJob{executed: &executed}))
	assert.False(t, pool.Enqueue(&testJob{executed: &executed}))

	close(release)
	pool.Stop()
	assert.Equal(t, int32(1), atomic.LoadInt32(&executed))
}

func TestPool_JobContextHasDeadline(t *testing.T) {
	pool := NewPool(1, 1)
	pool.Start(context.Background())

	got := make(chan bool, 1)
	pool.Enqueue(JobFunc(func(ctx context.Context) error {
		deadline, ok := ctx.Deadline()
		got <- ok && time.Until(deadline) <= DefaultJobTimeout
		return nil
	}))
	pool.Stop()

	assert.True(t, <-got)
}
