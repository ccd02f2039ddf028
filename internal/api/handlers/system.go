package handlers

import (
	"net/http"

	"github.com/ndewijer/Stock-AI-Report/internal/api/response"
	"github.com/ndewijer/Stock-AI-Report/internal/service"
)

// SystemHandler handles system-related HTTP requests
type SystemHandler struct {
	systemService *service.SystemService
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(systemService *service.SystemService) *SystemHandler {
	return &SystemHandler{
		systemService: systemService,
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string                 `json:"status"`
	Providers service.ProviderStatus `json:"providers"`
}

// Health reports whether both provider secrets are configured. The
// secrets themselves are never part of the response.
//
// Endpoint: GET /api/system/health
// Response: 200 OK when both providers are configured, 503 otherwise
func (h *SystemHandler) Health(w http.ResponseWriter, r *http.Request) {
	providers := h.systemService.CheckHealth()

	if !providers.MarketData || !providers.Report {
		response.RespondJSON(w, http.StatusServiceUnavailable, HealthResponse{
			Status:    "degraded",
			Providers: providers,
		})
		return
	}

	response.RespondJSON(w, http.StatusOK, HealthResponse{
		Status:    "healthy",
		Providers: providers,
	})
}

// VersionInfoResponse represents the version check response
type VersionInfoResponse struct {
	AppVersion string `json:"app_version"`
}

// Version handles GET requests to retrieve the application version.
//
// Endpoint: GET /api/system/version
// Response: 200 OK with VersionInfoResponse
func (h *SystemHandler) Version(w http.ResponseWriter, r *http.Request) {
	response.RespondJSON(w, http.StatusOK, VersionInfoResponse{
		AppVersion: h.systemService.CheckVersion(),
	})
}
