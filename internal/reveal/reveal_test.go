package reveal

import (
	"sync"
	"testing"
	"time"
)

type recorder struct {
	mu     sync.Mutex
	states []State
}

func (r *recorder) emit(s State) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.states = append(r.states, s)
}

func (r *recorder) snapshot() []State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]State(nil), r.states...)
}

// manualTicker hands out one buffered channel per reveal so tests decide
// when each tick happens.
type manualTicker struct {
	mu    sync.Mutex
	chans []chan time.Time
}

func (m *manualTicker) start(time.Duration) (<-chan time.Time, func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ch := make(chan time.Time, 64)
	m.chans = append(m.chans, ch)
	return ch, func() {}
}

func (m *manualTicker) tick(i, n int) {
	m.mu.Lock()
	ch := m.chans[i]
	m.mu.Unlock()
	for j := 0; j < n; j++ {
		ch <- time.Time{}
	}
}

func (m *manualTicker) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.chans)
}

func waitDone(t *testing.T, h *Handle) {
	t.Helper()
	select {
	case <-h.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("Timed out waiting for reveal to finish")
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("Timed out waiting for condition")
		}
		time.Sleep(time.Millisecond)
	}
}

func TestPrefix(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		step     int
		want     string
		finished bool
	}{
		{"empty prefix", "HOLD", 0, "", false},
		{"partial", "HOLD", 2, "HO", false},
		{"full", "HOLD", 4, "HOLD", true},
		{"clamped above", "HOLD", 9, "HOLD", true},
		{"clamped below", "HOLD", -1, "", false},
		{"empty text is finished", "", 0, "", true},
		{"counts characters not bytes", "₦480", 2, "₦4", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Prefix(tt.text, tt.step)
			if got.Text != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got.Text)
			}
			if got.Finished != tt.finished {
				t.Errorf("Expected finished=%v, got %v", tt.finished, got.Finished)
			}
		})
	}
}

func TestRevealer_Start(t *testing.T) {
	t.Run("emits every prefix in order", func(t *testing.T) {
		r := New(WithInterval(time.Millisecond))
		rec := &recorder{}
		text := "Buy ₦"

		h := r.Start(text, rec.emit)
		waitDone(t, h)

		states := rec.snapshot()
		runes := []rune(text)
		if len(states) != len(runes)+1 {
			t.Fatalf("Expected %d emissions, got %d", len(runes)+1, len(states))
		}
		for i, s := range states {
			if s.Text != string(runes[:i]) {
				t.Errorf("Emission %d: expected %q, got %q", i, string(runes[:i]), s.Text)
			}
			if s.Finished != (i == len(runes)) {
				t.Errorf("Emission %d: unexpected finished=%v", i, s.Finished)
			}
		}
	})

	t.Run("empty text emits once finished", func(t *testing.T) {
		r := New()
		rec := &recorder{}

		h := r.Start("", rec.emit)
		waitDone(t, h)

		states := rec.snapshot()
		if len(states) != 1 || !states[0].Finished || states[0].Text != "" {
			t.Errorf("Expected one finished empty emission, got %+v", states)
		}
	})

	t.Run("first emission does not wait for a tick", func(t *testing.T) {
		ticker := &manualTicker{}
		r := New(WithTicker(ticker.start))
		rec := &recorder{}

		h := r.Start("abc", rec.emit)
		defer h.Cancel()

		waitFor(t, func() bool { return len(rec.snapshot()) == 1 })
		if got := rec.snapshot()[0]; got.Text != "" || got.Finished {
			t.Errorf("Expected empty unfinished first state, got %+v", got)
		}
	})

	t.Run("restart never interleaves the old text", func(t *testing.T) {
		ticker := &manualTicker{}
		r := New(WithTicker(ticker.start))
		first, second := &recorder{}, &recorder{}

		h1 := r.Start("first report", first.emit)
		waitFor(t, func() bool { return ticker.count() == 1 })
		ticker.tick(0, 3)
		waitFor(t, func() bool { return len(first.snapshot()) == 4 })

		h2 := r.Start("second", second.emit)
		waitDone(t, h1)
		ticker.tick(0, 5)

		waitFor(t, func() bool { return ticker.count() == 2 })
		ticker.tick(1, len("second"))
		waitDone(t, h2)

		if got := len(first.snapshot()); got != 4 {
			t.Errorf("Expected superseded reveal to stop at 4 emissions, got %d", got)
		}
		states := second.snapshot()
		if len(states) != len("second")+1 || states[len(states)-1].Text != "second" {
			t.Errorf("Unexpected second reveal: %+v", states)
		}
	})
}

func TestHandle_Cancel(t *testing.T) {
	ticker := &manualTicker{}
	r := New(WithTicker(ticker.start))
	rec := &recorder{}

	h := r.Start("cancelled", rec.emit)
	waitFor(t, func() bool { return ticker.count() == 1 })
	ticker.tick(0, 2)
	waitFor(t, func() bool { return len(rec.snapshot()) == 3 })

	h.Cancel()
	before := len(rec.snapshot())
	ticker.tick(0, 5)
	waitDone(t, h)

	if got := len(rec.snapshot()); got != before {
		t.Errorf("Expected no emissions after Cancel, got %d more", got-before)
	}
	for _, s := range rec.snapshot() {
		if s.Finished {
			t.Error("Expected a cancelled reveal never to finish")
		}
	}
}
