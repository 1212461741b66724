package worker

import (
	"context"
	"testing"
	"time"
)

func TestPacerFirstEventImmediate(t *testing.T) {
	pacer := NewPacer(time.Hour)
	if !pacer.Allow() {
		t.Error("expected the first event to be admitted immediately")
	}
	if pacer.Allow() {
		t.Error("expected the second event to be blocked inside the interval")
	}
}

func TestPacerZeroIntervalNeverBlocks(t *testing.T) {
	pacer := NewPacer(0)
	for i := 0; i < 100; i++ {
		if !pacer.Allow() {
			t.Fatalf("event %d blocked with pacing disabled", i)
		}
	}
}

func TestPacerSpacesEvents(t *testing.T) {
	const interval = 30 * time.Millisecond

	pacer := NewPacer(interval)
	ctx := context.Background()

	start := time.Now()
	for i := 0; i < 3; i++ {
		if err := pacer.Wait(ctx); err != nil {
			t.Fatalf("wait %d: %v", i, err)
		}
	}
	// First event is free; the next two each wait one interval.
	if elapsed := time.Since(start); elapsed < 2*interval {
		t.Errorf("three events finished in %v, want at least %v", elapsed, 2*interval)
	}
}

func TestPacerWaitHonorsContext(t *testing.T) {
	pacer := NewPacer(time.Hour)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	if err := pacer.Wait(ctx); err != nil {
		t.Fatalf("first wait: %v", err)
	}
	if err := pacer.Wait(ctx); err == nil {
		t.Error("expected the second wait to fail when the context expires")
	}
}
