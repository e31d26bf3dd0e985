package ratelimit

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWaitSpacesConsecutiveCalls(t *testing.T) {
	l := New(50 * time.Millisecond)
	ctx := context.Background()

	start := time.Now()
	l.Wait(ctx, "src")
	l.Wait(ctx, "src")
	elapsed := time.Since(start)

	assert.GreaterOrEqual(t, elapsed, 50*time.Millisecond)
}

func TestWaitFirstCallDoesNotBlock(t *testing.T) {
	l := New(time.Second)

	start := time.Now()
	l.Wait(context.Background(), "src")

	assert.Less(t, time.Since(start), 100*time.Millisecond)
}

func TestWaitSourcesAreIndependent(t *testing.T) {
	l := New(time.Second)
	ctx := context.Background()

	l.Wait(ctx, "a")

	start := time.Now()
	l.Wait(ctx, "b")

	assert.Less(t, time.Since(start), 100*time.Millisecond)
}

func TestWaitSerializesConcurrentCallers(t *testing.T) {
	const interval = 20 * time.Millisecond
	const callers = 5

	l := New(interval)
	ctx := context.Background()

	var wg sync.WaitGroup
	start := time.Now()
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l.Wait(ctx, "src")
		}()
	}
	wg.Wait()

	// With the naive elapsed-then-sleep race all callers would finish after
	// a single interval; serialization forces one interval per extra caller.
	assert.GreaterOrEqual(t, time.Since(start), (callers-1)*interval)
}

func TestWaitHonorsContextCancellation(t *testing.T) {
	l := New(time.Minute)
	ctx, cancel := context.WithCancel(context.Background())

	l.Wait(ctx, "src")
	cancel()

	done := make(chan struct{})
	go func() {
		l.Wait(ctx, "src")
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Wait did not return after context cancellation")
	}
}
