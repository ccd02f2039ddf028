package testutil

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/ndewijer/Stock-AI-Report/internal/model"
)

// MockEODHDClient is a mock implementation of eodhd.Fetcher for testing.
// It returns predefined test data instead of making actual API calls.
type MockEODHDClient struct {
	mu sync.Mutex

	// MockData is the body returned from FetchPriceHistory
	MockData []byte
	// MockError is the error returned from FetchPriceHistory
	MockError error
	// APIKey controls HasAPIKey
	APIKey string
	// QueryCount tracks how many times FetchPriceHistory was called
	QueryCount int
	// LastArgs holds code, exchange, startDate, endDate of the last call
	LastArgs [4]string
}

// NewMockEODHDClient creates a new mock market-data client with 5 days of prices.
func NewMockEODHDClient() *MockEODHDClient {
	return &MockEODHDClient{
		MockData: CreateMockPriceHistoryJSON(5),
		APIKey:   "test-eod-key",
	}
}

// FetchPriceHistory returns the configured MockData and MockError.
func (m *MockEODHDClient) FetchPriceHistory(_ context.Context, code, exchange, startDate, endDate string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.QueryCount++
	m.LastArgs = [4]string{code, exchange, startDate, endDate}
	if m.MockError != nil {
		return nil, m.MockError
	}
	return m.MockData, nil
}

// HasAPIKey reports whether APIKey is set.
func (m *MockEODHDClient) HasAPIKey() bool {
	return m.APIKey != ""
}

// Calls returns the number of FetchPriceHistory calls so far.
func (m *MockEODHDClient) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.QueryCount
}

// WithError configures the mock to return the specified error.
func (m *MockEODHDClient) WithError(err error) *MockEODHDClient {
	m.MockError = err
	return m
}

// WithData configures the mock to return the specified body.
func (m *MockEODHDClient) WithData(data []byte) *MockEODHDClient {
	m.MockData = data
	return m
}

// WithoutAPIKey configures the mock as an unconfigured provider.
func (m *MockEODHDClient) WithoutAPIKey() *MockEODHDClient {
	m.APIKey = ""
	return m
}

// MockMistralClient is a mock implementation of mistral.Generator for testing.
type MockMistralClient struct {
	mu sync.Mutex

	// MockContent is the report text returned from GenerateReport
	MockContent string
	// MockError is the error returned from GenerateReport
	MockError error
	// APIKey controls HasAPIKey
	APIKey string
	// QueryCount tracks how many times GenerateReport was called
	QueryCount int
	// LastRequest holds the last request received
	LastRequest model.ReportRequest
	// Panic makes GenerateReport panic with this value when non-nil
	Panic any
}

// NewMockMistralClient creates a new mock report client with a short report.
func NewMockMistralClient() *MockMistralClient {
	return &MockMistralClient{
		MockContent: MockReportContent,
		APIKey:      "test-mistral-key",
	}
}

// MockReportContent is the default report returned by MockMistralClient.
const MockReportContent = "Dangote Cement rose steadily over the period, closing near its high. " +
	"Momentum is positive and volume increased. Recommendation: HOLD."

// GenerateReport returns the configured MockContent and MockError.
func (m *MockMistralClient) GenerateReport(_ context.Context, req model.ReportRequest) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.QueryCount++
	m.LastRequest = req
	if m.Panic != nil {
		panic(m.Panic)
	}
	if m.MockError != nil {
		return "", m.MockError
	}
	return m.MockContent, nil
}

// HasAPIKey reports whether APIKey is set.
func (m *MockMistralClient) HasAPIKey() bool {
	return m.APIKey != ""
}

// Calls returns the number of GenerateReport calls so far.
func (m *MockMistralClient) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.QueryCount
}

// WithError configures the mock to return the specified error.
func (m *MockMistralClient) WithError(err error) *MockMistralClient {
	m.MockError = err
	return m
}

// WithContent configures the mock to return the specified report.
func (m *MockMistralClient) WithContent(content string) *MockMistralClient {
	m.MockContent = content
	return m
}

// WithoutAPIKey configures the mock as an unconfigured provider.
func (m *MockMistralClient) WithoutAPIKey() *MockMistralClient {
	m.APIKey = ""
	return m
}

// CreateMockPriceHistory creates `days` consecutive daily records starting
// 2025-04-11 with a steadily rising price.
func CreateMockPriceHistory(days int) model.PriceHistory {
	first := time.Date(2025, 4, 11, 0, 0, 0, 0, time.UTC)
	history := make(model.PriceHistory, days)

	basePrice := 480.0
	for i := 0; i < days; i++ {
		dayPrice := basePrice + float64(i)*2.5
		history[i] = model.PriceHistoryRecord{
			Date:          first.AddDate(0, 0, i).Format(model.DateLayout),
			Open:          dayPrice,
			High:          dayPrice + 3,
			Low:           dayPrice - 1.5,
			Close:         dayPrice + 1.25,
			AdjustedClose: dayPrice + 1.25,
			Volume:        float64(1000000 + i*10000),
		}
	}
	return history
}

// CreateMockPriceHistoryJSON returns CreateMockPriceHistory encoded as the
// provider would send it.
func CreateMockPriceHistoryJSON(days int) []byte {
	data, err := json.Marshal(CreateMockPriceHistory(days))
	if err != nil {
		panic(fmt.Sprintf("marshal mock price history: %v", err))
	}
	return data
}
