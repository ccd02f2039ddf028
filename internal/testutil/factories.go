package testutil

import (
	"time"

	"github.com/ndewijer/Stock-AI-Report/internal/model"
)

// SelectionBuilder provides a fluent interface for creating test ticker selections.
//
// Example usage:
//
//	// Dangote Cement on the Nigerian exchange
//	sel := testutil.NewSelection().Build()
//
//	// Customized selection
//	sel := testutil.NewSelection().WithCode("MTNN").WithName("MTN Nigeria").Build()
type SelectionBuilder struct {
	sel model.TickerSelection
}

// NewSelection creates a SelectionBuilder with sensible defaults.
func NewSelection() *SelectionBuilder {
	return &SelectionBuilder{sel: model.TickerSelection{
		Code:     "DANGCEM",
		Exchange: "XNSA",
		Name:     "Dangote Cement Plc",
		Currency: "NGN",
	}}
}

// WithCode sets a custom ticker code.
func (b *SelectionBuilder) WithCode(code string) *SelectionBuilder {
	b.sel.Code = code
	return b
}

// WithExchange sets a custom exchange.
func (b *SelectionBuilder) WithExchange(exchange string) *SelectionBuilder {
	b.sel.Exchange = exchange
	return b
}

// WithName sets a custom display name.
func (b *SelectionBuilder) WithName(name string) *SelectionBuilder {
	b.sel.Name = name
	return b
}

// WithCurrency sets a custom currency.
func (b *SelectionBuilder) WithCurrency(currency string) *SelectionBuilder {
	b.sel.Currency = currency
	return b
}

// Build returns the selection.
func (b *SelectionBuilder) Build() model.TickerSelection {
	return b.sel
}

// AprilRange returns the 2025-04-01..2025-04-17 range used across tests.
// Both ends carry a time of day to exercise date normalization.
func AprilRange() model.DateRange {
	return model.DateRange{
		From: time.Date(2025, 4, 1, 9, 30, 0, 0, time.UTC),
		To:   time.Date(2025, 4, 17, 16, 0, 0, 0, time.UTC),
	}
}

// ValidReportBody returns a complete report-proxy body as a map so tests
// can delete individual fields.
func ValidReportBody() map[string]any {
	return map[string]any{
		"startDate": "2025-04-01",
		"endDate":   "2025-04-17",
		"data":      string(CreateMockPriceHistoryJSON(5)),
		"code":      "DANGCEM",
		"ticker":    "Dangote Cement Plc",
		"currency":  "NGN",
	}
}

// ValidStockDataQuery returns complete data-proxy query parameters.
func ValidStockDataQuery() map[string]string {
	return map[string]string{
		"code":      "DANGCEM",
		"exchange":  "XNSA",
		"startDate": "2025-04-01",
		"endDate":   "2025-04-17",
	}
}

// ValidReportRequest returns ValidReportBody as a typed request.
func ValidReportRequest() model.ReportRequest {
	return model.ReportRequest{
		StartDate: "2025-04-01",
		EndDate:   "2025-04-17",
		Data:      string(CreateMockPriceHistoryJSON(5)),
		Code:      "DANGCEM",
		Ticker:    "Dangote Cement Plc",
		Currency:  "NGN",
	}
}
