package model

import (
	"strings"
	"time"
)

// DateLayout is the date-only layout used on the wire by both proxies.
const DateLayout = "2006-01-02"

// TickerSelection identifies the instrument a report is requested for.
// It is a value type: the session layer copies it at submit time so later
// edits to the live selection do not affect an in-flight request.
type TickerSelection struct {
	Code     string `json:"code" yaml:"code"`
	Exchange string `json:"exchange" yaml:"exchange"`
	Name     string `json:"name" yaml:"name"`
	Currency string `json:"currency" yaml:"currency"`
}

// IsZero reports whether no ticker has been selected.
func (s TickerSelection) IsZero() bool {
	return strings.TrimSpace(s.Code) == ""
}

// DateRange is an inclusive range of trading days.
type DateRange struct {
	From time.Time
	To   time.Time
}

// IsComplete reports whether both ends of the range are set.
func (r DateRange) IsComplete() bool {
	return !r.From.IsZero() && !r.To.IsZero()
}

// Valid reports whether the range is complete and From is not after To.
func (r DateRange) Valid() bool {
	return r.IsComplete() && !r.From.After(r.To)
}

// StartDate returns From formatted as YYYY-MM-DD.
func (r DateRange) StartDate() string {
	return r.From.Format(DateLayout)
}

// EndDate returns To formatted as YYYY-MM-DD.
func (r DateRange) EndDate() string {
	return r.To.Format(DateLayout)
}

// LastDays returns the range ending on the day of now and starting days earlier.
func LastDays(now time.Time, days int) DateRange {
	return DateRange{
		From: now.AddDate(0, 0, -days),
		To:   now,
	}
}
