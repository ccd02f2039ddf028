package service

import (
	"github.com/ndewijer/Stock-AI-Report/internal/version"
)

// ProviderStatus reports whether a provider's secret is configured.
type ProviderStatus struct {
	MarketData bool `json:"market_data"`
	Report     bool `json:"report"`
}

// SystemService handles system-related operations
type SystemService struct {
	stockDataService *StockDataService
	reportService    *ReportService
}

// NewSystemService creates a new SystemService
func NewSystemService(stockDataService *StockDataService, reportService *ReportService) *SystemService {
	return &SystemService{
		stockDataService: stockDataService,
		reportService:    reportService,
	}
}

// CheckHealth reports which providers are usable. The secrets themselves
// are never exposed.
func (s *SystemService) CheckHealth() ProviderStatus {
	return ProviderStatus{
		MarketData: s.stockDataService.Configured(),
		Report:     s.reportService.Configured(),
	}
}

// CheckVersion returns the application version.
func (s *SystemService) CheckVersion() string {
	return version.Version
}
