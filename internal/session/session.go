// Package session implements the submit/settle/retry lifecycle of one
// report request as seen by an interactive client.
package session

import (
	"context"
	"errors"
	"sync"

	"github.com/ndewijer/Stock-AI-Report/internal/apperrors"
	"github.com/ndewijer/Stock-AI-Report/internal/model"
	"github.com/ndewijer/Stock-AI-Report/internal/reveal"
	"github.com/ndewijer/Stock-AI-Report/internal/validation"
)

// Phase is the lifecycle position of a Machine.
type Phase int

const (
	// Idle means nothing has been submitted yet.
	Idle Phase = iota
	// Submitting means an orchestration run is in flight.
	Submitting
	// Settled means an outcome is available and being (or has been) revealed.
	Settled
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Submitting:
		return "submitting"
	case Settled:
		return "settled"
	default:
		return "unknown"
	}
}

var (
	// ErrNoSelection rejects a submit without a ticker.
	ErrNoSelection = apperrors.ErrNoSelection
	// ErrInvalidRange rejects a submit with an incomplete or inverted range.
	ErrInvalidRange = apperrors.ErrInvalidDateRange
	// ErrSubmitInFlight rejects a submit while a run is in flight.
	ErrSubmitInFlight = errors.New("a report is already being generated")
	// ErrRetryUnavailable rejects a retry before the outcome is fully revealed.
	ErrRetryUnavailable = errors.New("retry is only available once the report has been revealed")
)

// Runner produces one outcome per call. *orchestrator.Orchestrator
// implements it.
type Runner interface {
	Run(ctx context.Context, sel model.TickerSelection, rng model.DateRange) model.ReportOutcome
}

// View observes a Machine. Methods are called from the Machine's goroutines
// in order and must not call back into the Machine.
type View interface {
	// PhaseChanged reports a transition. outcome is set only for Settled.
	PhaseChanged(phase Phase, outcome *model.ReportOutcome)
	// Reveal reports the next revealed prefix of the settled outcome.
	Reveal(state reveal.State)
}

type nopView struct{}

func (nopView) PhaseChanged(Phase, *model.ReportOutcome) {}
func (nopView) Reveal(reveal.State)                      {}

// Machine drives Idle -> Submitting -> Settled and back to Submitting on
// a new submit or a retry. It is safe for concurrent use.
type Machine struct {
	runner   Runner
	revealer *reveal.Revealer
	view     View

	// transitionMu orders transitions with the reveal they start. It is
	// taken before mu and may be held while calling the revealer.
	transitionMu sync.Mutex

	mu             sync.Mutex
	phase          Phase
	gen            uint64
	selection      model.TickerSelection
	dateRange      model.DateRange
	outcome        *model.ReportOutcome
	revealFinished bool
	handle         *reveal.Handle
}

// New creates an Idle Machine. A nil view discards notifications.
func New(runner Runner, revealer *reveal.Revealer, view View) *Machine {
	if view == nil {
		view = nopView{}
	}
	if revealer == nil {
		revealer = reveal.New()
	}
	return &Machine{
		runner:   runner,
		revealer: revealer,
		view:     view,
	}
}

// Submit validates the inputs, snapshots them and starts a run. Any reveal
// in progress is cancelled. The run continues on its own goroutine; its
// outcome is reported through the View.
func (m *Machine) Submit(ctx context.Context, sel model.TickerSelection, rng model.DateRange) error {
	if err := validation.ValidateSelection(sel); err != nil {
		return err
	}
	if err := validation.ValidateDateRange(rng); err != nil {
		return err
	}

	m.transitionMu.Lock()
	defer m.transitionMu.Unlock()

	m.mu.Lock()
	if m.phase == Submitting {
		m.mu.Unlock()
		return ErrSubmitInFlight
	}
	m.beginLocked(ctx, sel, rng)
	return nil
}

// Retry re-runs the last submission with the inputs captured at submit
// time. It is only available once the outcome has been fully revealed.
func (m *Machine) Retry(ctx context.Context) error {
	m.transitionMu.Lock()
	defer m.transitionMu.Unlock()

	m.mu.Lock()
	if m.phase != Settled || !m.revealFinished {
		m.mu.Unlock()
		return ErrRetryUnavailable
	}
	m.beginLocked(ctx, m.selection, m.dateRange)
	return nil
}

// beginLocked enters Submitting. It is called with mu held and releases it.
func (m *Machine) beginLocked(ctx context.Context, sel model.TickerSelection, rng model.DateRange) {
	m.selection = sel
	m.dateRange = rng
	m.gen++
	gen := m.gen
	m.phase = Submitting
	m.outcome = nil
	m.revealFinished = false
	prev := m.handle
	m.handle = nil
	m.mu.Unlock()

	if prev != nil {
		prev.Cancel()
	}
	m.view.PhaseChanged(Submitting, nil)

	go m.settle(ctx, gen, sel, rng)
}

func (m *Machine) settle(ctx context.Context, gen uint64, sel model.TickerSelection, rng model.DateRange) {
	outcome := m.runner.Run(ctx, sel, rng)

	m.transitionMu.Lock()
	defer m.transitionMu.Unlock()

	m.mu.Lock()
	if m.gen != gen {
		m.mu.Unlock()
		return
	}
	m.phase = Settled
	m.outcome = &outcome
	m.mu.Unlock()

	m.view.PhaseChanged(Settled, &outcome)

	h := m.revealer.Start(outcome.Text(), func(s reveal.State) {
		m.mu.Lock()
		if m.gen != gen {
			m.mu.Unlock()
			return
		}
		if s.Finished {
			m.revealFinished = true
		}
		m.mu.Unlock()

		m.view.Reveal(s)
	})

	m.mu.Lock()
	m.handle = h
	m.mu.Unlock()
}

// Close cancels any reveal in progress. A run in flight still settles.
func (m *Machine) Close() {
	m.transitionMu.Lock()
	defer m.transitionMu.Unlock()

	m.mu.Lock()
	h := m.handle
	m.handle = nil
	m.mu.Unlock()

	if h != nil {
		h.Cancel()
	}
}

// Phase returns the current phase.
func (m *Machine) Phase() Phase {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.phase
}

// Outcome returns the settled outcome, or nil before the first settle and
// while Submitting.
func (m *Machine) Outcome() *model.ReportOutcome {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.outcome == nil {
		return nil
	}
	out := *m.outcome
	return &out
}

// Snapshot returns the inputs captured by the last submit.
func (m *Machine) Snapshot() (model.TickerSelection, model.DateRange) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.selection, m.dateRange
}

// CanSubmit reports whether a submit with sel would be accepted, ignoring
// the date range.
func (m *Machine) CanSubmit(sel model.TickerSelection) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return !sel.IsZero() && m.phase != Submitting
}

// CanRetry reports whether Retry would be accepted.
func (m *Machine) CanRetry() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.phase == Settled && m.revealFinished
}

// Loading reports whether a run is in flight.
func (m *Machine) Loading() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.phase == Submitting
}
