package validation

import (
	"fmt"
	"strings"
	"time"

	"github.com/ndewijer/Stock-AI-Report/internal/apperrors"
	"github.com/ndewijer/Stock-AI-Report/internal/model"
)

// dateLayouts are tried in order by ParseDate.
var dateLayouts = []string{
	model.DateLayout,
	time.RFC3339,
	"2006-01-02T15:04:05.000Z07:00",
}

// RequireFields returns a *apperrors.ValidationError naming every field
// whose value is empty or whitespace. Nil when all fields are present.
func RequireFields(fields map[string]string) error {
	missing := make(map[string]string)
	for name, value := range fields {
		if strings.TrimSpace(value) == "" {
			missing[name] = name + " is required"
		}
	}
	if len(missing) > 0 {
		return &apperrors.ValidationError{Fields: missing}
	}
	return nil
}

// TruncateDate cuts an ISO timestamp down to its YYYY-MM-DD prefix.
// Strings shorter than ten characters are returned unchanged.
func TruncateDate(s string) string {
	if len(s) > len(model.DateLayout) {
		return s[:len(model.DateLayout)]
	}
	return s
}

// ParseDate accepts YYYY-MM-DD, RFC3339 and RFC3339 with milliseconds.
func ParseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, strings.TrimSpace(s)); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse %q as a date or datetime", s)
}

// ValidateSelection checks that a ticker has been chosen.
func ValidateSelection(s model.TickerSelection) error {
	if s.IsZero() {
		return apperrors.ErrNoSelection
	}
	return nil
}

// ValidateDateRange checks that both ends are set and ordered.
func ValidateDateRange(r model.DateRange) error {
	if !r.IsComplete() {
		return fmt.Errorf("%w: both dates are required", apperrors.ErrInvalidDateRange)
	}
	if r.From.After(r.To) {
		return fmt.Errorf("%w: %s is after %s", apperrors.ErrInvalidDateRange, r.StartDate(), r.EndDate())
	}
	return nil
}

// ValidateReportRequest checks that every report-proxy field is present.
func ValidateReportRequest(req model.ReportRequest) error {
	return RequireFields(map[string]string{
		"startDate": req.StartDate,
		"endDate":   req.EndDate,
		"data":      req.Data,
		"code":      req.Code,
		"ticker":    req.Ticker,
		"currency":  req.Currency,
	})
}
