package ratelimiter

import (
	"sync"
	"testing"
	"time"
)

func TestAllowFirstAction(t *testing.T) {
	l := New(time.Second)

	allowed, wait := l.Allow()
	if !allowed {
		t.Error("first action should be allowed")
	}
	if wait != 0 {
		t.Errorf("expected zero wait, got %v", wait)
	}
}

func TestDenyWithinInterval(t *testing.T) {
	l := New(time.Hour)

	if allowed, _ := l.Allow(); !allowed {
		t.Fatal("first action should be allowed")
	}

	allowed, wait := l.Allow()
	if allowed {
		t.Error("second immediate action should be denied")
	}
	if wait <= 0 || wait > time.Hour {
		t.Errorf("unexpected wait duration: %v", wait)
	}
}

func TestAllowAfterInterval(t *testing.T) {
	l := New(10 * time.Millisecond)

	if allowed, _ := l.Allow(); !allowed {
		t.Fatal("first action should be allowed")
	}

	time.Sleep(15 * time.Millisecond)

	if allowed, _ := l.Allow(); !allowed {
		t.Error("action after interval should be allowed")
	}
}

func TestConcurrentAllow(t *testing.T) {
	l := New(time.Hour)

	var wg sync.WaitGroup
	var mu sync.Mutex
	allowedCount := 0

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if allowed, _ := l.Allow(); allowed {
				mu.Lock()
				allowedCount++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if allowedCount != 1 {
		t.Errorf("expected exactly one allowed action, got %d", allowedCount)
	}
}

func TestInterval(t *testing.T) {
	l := New(5 * time.Second)
	if got := l.Interval(); got != 5*time.Second {
		t.Errorf("expected 5s interval, got %v", got)
	}
}
