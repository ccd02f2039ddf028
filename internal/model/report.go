package model

import "github.com/google/uuid"

// ReportRequest is the payload forwarded to the report proxy. Data is the
// JSON-encoded price history, passed through as an opaque string.
type ReportRequest struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	Data      string `json:"data"`
	Code      string `json:"code"`
	Ticker    string `json:"ticker"`
	Currency  string `json:"currency"`
}

// ReportResponse is the success body of the report proxy.
type ReportResponse struct {
	Content string `json:"content"`
}

// Success is the settled result of a run that produced a report.
type Success struct {
	Content      string
	PriceHistory PriceHistory
}

// Failure is the settled result of a run that did not produce a report.
// HTTPStatus is zero when no status is known.
type Failure struct {
	Message    string
	HTTPStatus int
}

// ReportOutcome is produced once per orchestration run and never mutated.
// Exactly one of Success and Failure is set.
type ReportOutcome struct {
	RunID   uuid.UUID
	Success *Success
	Failure *Failure
}

// NewSuccessOutcome returns a successful outcome with a fresh run ID.
func NewSuccessOutcome(content string, history PriceHistory) ReportOutcome {
	return ReportOutcome{
		RunID:   uuid.New(),
		Success: &Success{Content: content, PriceHistory: history},
	}
}

// NewFailureOutcome returns a failed outcome with a fresh run ID.
func NewFailureOutcome(message string, status int) ReportOutcome {
	return ReportOutcome{
		RunID:   uuid.New(),
		Failure: &Failure{Message: message, HTTPStatus: status},
	}
}

// OK reports whether the run produced a report.
func (o ReportOutcome) OK() bool {
	return o.Success != nil
}

// Text returns the string to reveal: the report content on success, the
// failure message otherwise.
func (o ReportOutcome) Text() string {
	if o.Success != nil {
		return o.Success.Content
	}
	if o.Failure != nil {
		return o.Failure.Message
	}
	return ""
}
