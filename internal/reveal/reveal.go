// Package reveal plays a finished text back one character per tick, the way
// a typed response appears on screen.
package reveal

import (
	"context"
	"sync"
	"time"
)

// DefaultInterval is the delay between two revealed characters.
const DefaultInterval = 10 * time.Millisecond

// State is one emission of a reveal. Text is the first Step characters of
// the full text; Total is its length in characters.
type State struct {
	Text     string
	Step     int
	Total    int
	Finished bool
}

// Prefix returns the state after step characters of text have been
// revealed. step is clamped to [0, len(text)] in characters.
func Prefix(text string, step int) State {
	return prefix([]rune(text), step)
}

func prefix(runes []rune, step int) State {
	total := len(runes)
	if step < 0 {
		step = 0
	}
	if step > total {
		step = total
	}
	return State{
		Text:     string(runes[:step]),
		Step:     step,
		Total:    total,
		Finished: step == total,
	}
}

// TickerFunc starts a tick source and returns its channel and a stop
// function. It exists so tests can drive reveals deterministically.
type TickerFunc func(d time.Duration) (<-chan time.Time, func())

func timeTicker(d time.Duration) (<-chan time.Time, func()) {
	t := time.NewTicker(d)
	return t.C, t.Stop
}

// Option configures a Revealer.
type Option func(*Revealer)

// WithInterval sets the delay between characters.
func WithInterval(d time.Duration) Option {
	return func(r *Revealer) {
		if d > 0 {
			r.interval = d
		}
	}
}

// WithTicker replaces the tick source.
func WithTicker(f TickerFunc) Option {
	return func(r *Revealer) {
		if f != nil {
			r.newTicker = f
		}
	}
}

// Revealer owns at most one running reveal. Starting a new reveal cancels
// the previous one, so emissions of two texts never interleave.
type Revealer struct {
	interval  time.Duration
	newTicker TickerFunc

	// mu guards current and is held while a callback runs.
	mu      sync.Mutex
	current *Handle
}

// New creates a Revealer ticking every DefaultInterval.
func New(opts ...Option) *Revealer {
	r := &Revealer{
		interval:  DefaultInterval,
		newTicker: timeTicker,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Handle controls one reveal.
type Handle struct {
	r      *Revealer
	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
}

// Cancel stops the reveal. No emission is delivered after Cancel returns.
// Cancel must not be called from inside the emit callback.
func (h *Handle) Cancel() {
	h.r.mu.Lock()
	defer h.r.mu.Unlock()

	h.cancel()
	if h.r.current == h {
		h.r.current = nil
	}
}

// Done is closed once the reveal has finished or been cancelled.
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

// Start cancels any running reveal and begins revealing text. emit
// receives the empty prefix immediately and one more character per tick;
// the final state has Finished set. An empty text yields a single finished
// emission.
//
// emit runs on the reveal goroutine and must not call back into the
// Revealer or any Handle.
func (r *Revealer) Start(text string, emit func(State)) *Handle {
	ctx, cancel := context.WithCancel(context.Background())
	h := &Handle{
		r:      r,
		ctx:    ctx,
		cancel: cancel,
		done:   make(chan struct{}),
	}

	r.mu.Lock()
	if r.current != nil {
		r.current.cancel()
	}
	r.current = h
	r.mu.Unlock()

	go r.run(h, []rune(text), emit)
	return h
}

// Cancel stops the running reveal, if any.
func (r *Revealer) Cancel() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.current != nil {
		r.current.cancel()
		r.current = nil
	}
}

func (r *Revealer) run(h *Handle, runes []rune, emit func(State)) {
	defer close(h.done)
	defer h.cancel()

	if !r.deliver(h, prefix(runes, 0), emit) || len(runes) == 0 {
		return
	}

	ticks, stop := r.newTicker(r.interval)
	defer stop()

	for step := 1; step <= len(runes); step++ {
		select {
		case <-h.ctx.Done():
			return
		case <-ticks:
		}
		if !r.deliver(h, prefix(runes, step), emit) {
			return
		}
	}
}

// deliver calls emit unless h has been cancelled or superseded.
func (r *Revealer) deliver(h *Handle, s State, emit func(State)) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.current != h || h.ctx.Err() != nil {
		return false
	}
	emit(s)
	if s.Finished {
		r.current = nil
	}
	return true
}
