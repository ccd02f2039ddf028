// Package orchestrator runs one report request end to end: price history
// from the data-proxy, then a report from the report-proxy.
package orchestrator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/phuslu/log"

	"github.com/ndewijer/Stock-AI-Report/internal/apperrors"
	"github.com/ndewijer/Stock-AI-Report/internal/model"
)

// DataFetcher is implemented by proxyclient.DataClient.
type DataFetcher interface {
	FetchPriceHistory(ctx context.Context, code, exchange, start, end string) (model.PriceHistory, []byte, error)
}

// ReportGenerator is implemented by proxyclient.ReportClient.
type ReportGenerator interface {
	GenerateReport(ctx context.Context, req model.ReportRequest) (string, error)
}

// Orchestrator sequences the two proxy calls. Overlapping Run calls are
// queued so that outcomes settle one at a time.
type Orchestrator struct {
	mu     sync.Mutex
	data   DataFetcher
	report ReportGenerator
	logger *log.Logger
}

// New creates an Orchestrator over the given proxy clients.
func New(data DataFetcher, report ReportGenerator, logger *log.Logger) *Orchestrator {
	return &Orchestrator{
		data:   data,
		report: report,
		logger: logger,
	}
}

// Run fetches price history for sel over rng and asks for a report on it.
// It never returns an error and never panics: every failure is folded into
// the outcome.
//
// A failed data request stops the run before the report-proxy is called.
// Errors carrying an HTTP status become Failure{message, status}; anything
// else becomes Failure{"Failed to generate report", 500}.
func (o *Orchestrator) Run(ctx context.Context, sel model.TickerSelection, rng model.DateRange) (outcome model.ReportOutcome) {
	o.mu.Lock()
	defer o.mu.Unlock()

	defer func() {
		if rec := recover(); rec != nil {
			o.logger.Error().
				Str("code", sel.Code).
				Str("panic", fmt.Sprint(rec)).
				Msg("report run panicked")
			outcome = model.NewFailureOutcome(apperrors.MsgGenerateReport, http.StatusInternalServerError)
		}
	}()

	start, end := rng.StartDate(), rng.EndDate()

	history, raw, err := o.data.FetchPriceHistory(ctx, sel.Code, sel.Exchange, start, end)
	if err != nil {
		return o.fail(sel, "price history", err)
	}

	content, err := o.report.GenerateReport(ctx, model.ReportRequest{
		StartDate: start,
		EndDate:   end,
		Data:      compact(raw),
		Code:      sel.Code,
		Ticker:    tickerName(sel),
		Currency:  sel.Currency,
	})
	if err != nil {
		return o.fail(sel, "report", err)
	}

	outcome = model.NewSuccessOutcome(content, history)
	o.logger.Debug().
		Str("run_id", outcome.RunID.String()).
		Str("code", sel.Code).
		Int("records", len(history)).
		Msg("report run succeeded")
	return outcome
}

func (o *Orchestrator) fail(sel model.TickerSelection, step string, err error) model.ReportOutcome {
	var outcome model.ReportOutcome

	var upstreamErr *apperrors.UpstreamError
	if errors.As(err, &upstreamErr) && upstreamErr.Status > 0 {
		msg := upstreamErr.Message
		if msg == "" {
			msg = apperrors.MsgGenerateReport
		}
		outcome = model.NewFailureOutcome(msg, upstreamErr.Status)
	} else {
		outcome = model.NewFailureOutcome(apperrors.MsgGenerateReport, http.StatusInternalServerError)
	}

	o.logger.Warn().
		Err(err).
		Str("run_id", outcome.RunID.String()).
		Str("code", sel.Code).
		Str("step", step).
		Int("status", outcome.Failure.HTTPStatus).
		Msg("report run failed")
	return outcome
}

// compact returns the proxy body as compact JSON text for the report prompt.
// A body that is not JSON is forwarded as trimmed text.
func compact(raw []byte) string {
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return string(bytes.TrimSpace(raw))
	}
	return buf.String()
}

func tickerName(sel model.TickerSelection) string {
	if sel.Name != "" {
		return sel.Name
	}
	return sel.Code
}
