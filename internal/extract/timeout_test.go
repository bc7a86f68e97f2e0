package extract

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/quotevault/quotevault/internal/common"
)

func TestRaceTimeoutWinnerReturns(t *testing.T) {
	got, err := raceTimeout(context.Background(), time.Second, func(ctx context.Context) (string, error) {
		return "fast", nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "fast" {
		t.Fatalf("got %q", got)
	}
}

func TestRaceTimeoutLoserIsOrphanedNotCancelled(t *testing.T) {
	var finished atomic.Bool
	started := make(chan struct{})

	_, err := raceTimeout(context.Background(), 10*time.Millisecond, func(ctx context.Context) (string, error) {
		close(started)
		time.Sleep(100 * time.Millisecond)
		finished.Store(true)
		return "too late", nil
	})
	if !common.IsTimeout(err) {
		t.Fatalf("expected timeout error, got %v", err)
	}
	<-started
	if finished.Load() {
		t.Fatal("loser should still be running when the race is decided")
	}

	// The orphaned operation keeps going and completes on its own.
	deadline := time.After(2 * time.Second)
	for !finished.Load() {
		select {
		case <-deadline:
			t.Fatal("orphaned operation never completed")
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func TestRaceTimeoutHonorsCallerCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := raceTimeout(ctx, time.Second, func(ctx context.Context) (string, error) {
		time.Sleep(time.Second)
		return "", nil
	})
	if err == nil {
		t.Fatal("expected error from cancelled context")
	}
	if common.IsTimeout(err) {
		t.Fatal("caller cancellation should not be reported as a timeout")
	}
}
