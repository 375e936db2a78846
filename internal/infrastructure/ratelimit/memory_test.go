package ratelimit

import (
	"context"
	"testing"
	"time"
)

func TestLimiter_CapacityWithinWindow(t *testing.T) {
	l := NewLimiter(3, time.Minute)

	for i := 1; i <= 3; i++ {
		ok, err := l.Allow(context.Background(), "1.2.3.4")
		if err != nil {
			t.Fatalf("Allow returned error: %v", err)
		}
		if !ok {
			t.Fatalf("request %d should be allowed", i)
		}
	}

	ok, err := l.Allow(context.Background(), "1.2.3.4")
	if err != nil {
		t.Fatalf("Allow returned error: %v", err)
	}
	if ok {
		t.Fatalf("request over capacity should be denied")
	}

	// Denied requests do not count further; still denied.
	if ok, _ := l.Allow(context.Background(), "1.2.3.4"); ok {
		t.Fatalf("request over capacity should stay denied")
	}
}

func TestLimiter_WindowReset(t *testing.T) {
	l := NewLimiter(1, time.Minute)
	now := time.Now()
	l.now = func() time.Time { return now }

	if ok, _ := l.Allow(context.Background(), "k"); !ok {
		t.Fatalf("first request should be allowed")
	}
	if ok, _ := l.Allow(context.Background(), "k"); ok {
		t.Fatalf("second request should be denied")
	}

	now = now.Add(61 * time.Second)
	if ok, _ := l.Allow(context.Background(), "k"); !ok {
		t.Fatalf("request after window elapsed should be allowed")
	}
}

func TestLimiter_KeysAreIndependent(t *testing.T) {
	l := NewLimiter(1, time.Minute)

	if ok, _ := l.Allow(context.Background(), "a"); !ok {
		t.Fatalf("first request for a should be allowed")
	}
	if ok, _ := l.Allow(context.Background(), "b"); !ok {
		t.Fatalf("first request for b should be allowed")
	}
	if ok, _ := l.Allow(context.Background(), "a"); ok {
		t.Fatalf("second request for a should be denied")
	}
}
