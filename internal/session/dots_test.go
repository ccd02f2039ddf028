package session

import (
	"context"
	"sync"
	"testing"
	"time"
)

func TestDots(t *testing.T) {
	want := []string{".", "..", "...", ".", ".."}
	for frame, w := range want {
		if got := Dots(frame); got != w {
			t.Errorf("Frame %d: expected %q, got %q", frame, w, got)
		}
	}
}

func TestLoadingDots(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	var mu sync.Mutex
	var frames []string
	done := make(chan struct{})

	go func() {
		defer close(done)
		LoadingDots(ctx, time.Millisecond, func(dots string) {
			mu.Lock()
			defer mu.Unlock()
			frames = append(frames, dots)
			if len(frames) == 4 {
				cancel()
			}
		})
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Timed out waiting for LoadingDots to stop")
	}

	mu.Lock()
	defer mu.Unlock()
	if len(frames) < 4 {
		t.Fatalf("Expected at least 4 frames, got %d", len(frames))
	}
	for i, w := range []string{".", "..", "...", "."} {
		if frames[i] != w {
			t.Errorf("Frame %d: expected %q, got %q", i, w, frames[i])
		}
	}
}
