package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/ndewijer/Stock-AI-Report/internal/model"
	"github.com/ndewijer/Stock-AI-Report/internal/reveal"
	"github.com/ndewijer/Stock-AI-Report/internal/session"
)

// terminalView renders a session.Machine to a terminal: loading dots while
// submitting, the summary table on success, then the typed report.
type terminalView struct {
	out       io.Writer
	selection model.TickerSelection

	mu       sync.Mutex
	printed  int
	stopDots func()

	// revealed receives one value per finished reveal.
	revealed chan struct{}
}

func newTerminalView(out io.Writer, sel model.TickerSelection) *terminalView {
	return &terminalView{
		out:       out,
		selection: sel,
		revealed:  make(chan struct{}, 1),
	}
}

func (v *terminalView) PhaseChanged(phase session.Phase, outcome *model.ReportOutcome) {
	switch phase {
	case session.Submitting:
		v.startDots()
	case session.Settled:
		v.stopLoading()

		v.mu.Lock()
		defer v.mu.Unlock()
		v.printed = 0
		if outcome != nil && outcome.OK() {
			renderSummary(v.out, v.selection, outcome.Success.PriceHistory)
			fmt.Fprintln(v.out)
		}
	}
}

func (v *terminalView) Reveal(s reveal.State) {
	v.mu.Lock()
	defer v.mu.Unlock()

	runes := []rune(s.Text)
	if len(runes) > v.printed {
		fmt.Fprint(v.out, string(runes[v.printed:]))
		v.printed = len(runes)
	}
	if s.Finished {
		fmt.Fprintln(v.out)
		select {
		case v.revealed <- struct{}{}:
		default:
		}
	}
}

func (v *terminalView) startDots() {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	go func() {
		defer close(done)
		session.LoadingDots(ctx, session.DotsInterval, func(dots string) {
			v.mu.Lock()
			defer v.mu.Unlock()
			fmt.Fprintf(v.out, "\rThinking%-3s", dots)
		})
	}()

	v.mu.Lock()
	v.stopDots = func() {
		cancel()
		<-done
	}
	v.mu.Unlock()
}

// stopLoading stops the dots and clears their line.
func (v *terminalView) stopLoading() {
	v.mu.Lock()
	stop := v.stopDots
	v.stopDots = nil
	v.mu.Unlock()

	if stop == nil {
		return
	}
	stop()

	v.mu.Lock()
	fmt.Fprint(v.out, "\r"+strings.Repeat(" ", len("Thinking..."))+"\r")
	v.mu.Unlock()
}
