package workers

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeSyncer struct {
	calls int64
	err   error
}

func (f *fakeSyncer) SyncAll() (int, error) {
	atomic.AddInt64(&f.calls, 1)
	return 1, f.err
}

type fakeCleaner struct {
	calls int64
	err   error
}

func (f *fakeCleaner) CleanupExpired() error {
	atomic.AddInt64(&f.calls, 1)
	return f.err
}

func TestStatusSyncWorkerRunsAndStops(t *testing.T) {
	syncer := &fakeSyncer{}
	w := NewStatusSyncWorker(syncer, 5*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Start(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool {
		return atomic.LoadInt64(&syncer.calls) >= 2
	}, time.Second, time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop after context cancellation")
	}
}

func TestStatusSyncWorkerSurvivesSyncErrors(t *testing.T) {
	syncer := &fakeSyncer{err: errors.New("db gone")}
	w := NewStatusSyncWorker(syncer, 5*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Start(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool {
		return atomic.LoadInt64(&syncer.calls) >= 2
	}, time.Second, time.Millisecond)

	cancel()
	<-done
}

func TestCleanupWorkerRunsAndStops(t *testing.T) {
	cleaner := &fakeCleaner{}
	w := NewCleanupWorker(cleaner, 5*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Start(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool {
		return atomic.LoadInt64(&cleaner.calls) >= 1
	}, time.Second, time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop after context cancellation")
	}
}
