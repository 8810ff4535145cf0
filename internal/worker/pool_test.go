package worker

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

type testJob struct {
	id      int
	counter *atomic.Int64
}

type testResult struct {
	id  int
	err error
}

func (r testResult) GetError() error { return r.err }

func (j testJob) Execute(ctx context.Context) Result {
	j.counter.Add(1)
	return testResult{id: j.id}
}

func TestPool_ExecutesAllJobs(t *testing.T) {
	pool := NewPool(4)
	pool.Start()

	var counter atomic.Int64
	const jobs = 50
	for i := 0; i < jobs; i++ {
		pool.Submit(testJob{id: i, counter: &counter})
	}

	results := pool.Wait()

	if len(results) != jobs {
		t.Errorf("Expected %d results, got %d", jobs, len(results))
	}
	if counter.Load() != jobs {
		t.Errorf("Expected %d executions, got %d", jobs, counter.Load())
	}

	seen := make(map[int]bool)
	for _, res := range results {
		r := res.(testResult)
		if r.GetError() != nil {
			t.Errorf("Job %d returned an error: %v", r.id, r.err)
		}
		if seen[r.id] {
			t.Errorf("Job %d executed twice", r.id)
		}
		seen[r.id] = true
	}
}

func TestPool_BacklogLargerThanBuffers(t *testing.T) {
	// Both internal channels hold workers*2 entries; a sequential
	// submit-all-then-Wait caller must not stall once the backlog
	// exceeds them.
	pool := NewPool(2)
	pool.Start()

	var counter atomic.Int64
	const jobs = 100

	done := make(chan []Result, 1)
	go func() {
		for i := 0; i < jobs; i++ {
			pool.Submit(testJob{id: i, counter: &counter})
		}
		done <- pool.Wait()
	}()

	select {
	case results := <-done:
		if len(results) != jobs {
			t.Errorf("Expected %d results, got %d", jobs, len(results))
		}
		if counter.Load() != jobs {
			t.Errorf("Expected %d executions, got %d", jobs, counter.Load())
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Pool stalled on a backlog larger than its channel buffers")
	}
}

func TestPool_ZeroWorkersCoerced(t *testing.T) {
	pool := NewPool(0)
	pool.Start()

	var counter atomic.Int64
	pool.Submit(testJob{id: 1, counter: &counter})

	results := pool.Wait()
	if len(results) != 1 {
		t.Errorf("Expected 1 result, got %d", len(results))
	}
}

func TestPool_Shutdown(t *testing.T) {
	pool := NewPool(2)
	pool.Start()

	done := make(chan struct{})
	go func() {
		pool.Shutdown()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Shutdown did not return in time")
	}
}

func TestLimiter_AllowRespectsRate(t *testing.T) {
	limiter := NewLimiter(1, 1)

	if !limiter.Allow("provider") {
		t.Error("Expected the first request to be allowed")
	}
	if limiter.Allow("provider") {
		t.Error("Expected the second immediate request to be throttled")
	}

	// A different key gets its own budget.
	if !limiter.Allow("other") {
		t.Error("Expected an independent budget per key")
	}
}

func TestLimiter_WaitHonorsContext(t *testing.T) {
	limiter := NewLimiter(0.001, 1)

	// Drain the single token.
	if !limiter.Allow("k") {
		t.Fatal("Expected the first request to be allowed")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	if err := limiter.Wait(ctx, "k"); err == nil {
		t.Error("Expected Wait to fail when the context expires first")
	}
}

func TestLimiter_SetRate(t *testing.T) {
	limiter := NewLimiter(0.001, 1)
	limiter.SetRate("fast", 1000, 10)

	allowed := 0
	for i := 0; i < 5; i++ {
		if limiter.Allow("fast") {
			allowed++
		}
	}
	if allowed != 5 {
		t.Errorf("Expected 5 allowed requests after SetRate, got %d", allowed)
	}
}
