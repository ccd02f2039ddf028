package testutil

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ndewijer/Stock-AI-Report/internal/api"
	"github.com/ndewijer/Stock-AI-Report/internal/config"
	"github.com/ndewijer/Stock-AI-Report/internal/logging"
	"github.com/ndewijer/Stock-AI-Report/internal/service"
)

// NewTestStockDataService wires a StockDataService to a mock provider.
func NewTestStockDataService(t *testing.T, client *MockEODHDClient) *service.StockDataService {
	t.Helper()
	return service.NewStockDataService(client, logging.Nop())
}

// NewTestReportService wires a ReportService to a mock provider.
func NewTestReportService(t *testing.T, client *MockMistralClient) *service.ReportService {
	t.Helper()
	return service.NewReportService(client, logging.Nop())
}

// NewTestConfig returns a configuration suitable for router tests.
func NewTestConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Host: "localhost", Port: "0", Addr: "localhost:0"},
		CORS:   config.CORSConfig{AllowedOrigins: []string{"*"}},
		Log:    config.LogConfig{Level: "error", Format: "json"},
	}
}

// NewTestRouter builds the full HTTP router over mock providers.
func NewTestRouter(t *testing.T, eod *MockEODHDClient, llm *MockMistralClient) http.Handler {
	t.Helper()

	stockDataService := NewTestStockDataService(t, eod)
	reportService := NewTestReportService(t, llm)
	systemService := service.NewSystemService(stockDataService, reportService)

	return api.NewRouter(systemService, stockDataService, reportService, NewTestConfig(), logging.Nop())
}

// NewTestServer starts an httptest.Server running the full router over mock
// providers. The server is closed when the test ends.
func NewTestServer(t *testing.T, eod *MockEODHDClient, llm *MockMistralClient) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(NewTestRouter(t, eod, llm))
	t.Cleanup(srv.Close)
	return srv
}
