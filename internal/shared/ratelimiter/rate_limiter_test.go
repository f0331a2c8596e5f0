package ratelimiter

import (
	"sync"
	"testing"
	"time"
)

func TestWaitIfNeeded_UnderLimitDoesNotBlock(t *testing.T) {
	rl := NewRateLimiter(5, time.Minute)

	start := time.Now()
	for i := 0; i < 5; i++ {
		rl.WaitIfNeeded()
	}
	if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
		t.Fatalf("calls within the quota slept for %v", elapsed)
	}
}

func TestWaitIfNeeded_BlocksUntilWindowResets(t *testing.T) {
	rl := NewRateLimiter(2, 200*time.Millisecond)

	rl.WaitIfNeeded()
	rl.WaitIfNeeded()

	start := time.Now()
	rl.WaitIfNeeded() // third call in the window must sleep
	if elapsed := time.Since(start); elapsed < 100*time.Millisecond {
		t.Fatalf("over-quota call returned after only %v", elapsed)
	}
}

func TestWaitIfNeeded_WindowExpiryResetsQuota(t *testing.T) {
	rl := NewRateLimiter(1, 100*time.Millisecond)

	rl.WaitIfNeeded()
	time.Sleep(120 * time.Millisecond)

	start := time.Now()
	rl.WaitIfNeeded()
	if elapsed := time.Since(start); elapsed > 50*time.Millisecond {
		t.Fatalf("call in a fresh window slept for %v", elapsed)
	}
}

func TestWaitIfNeeded_ConcurrentCallers(t *testing.T) {
	rl := NewRateLimiter(100, time.Minute)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rl.WaitIfNeeded()
		}()
	}
	wg.Wait()

	if rl.count != 50 {
		t.Fatalf("count: got %d, want 50", rl.count)
	}
}
