package handlers

import (
	"errors"
	"net/http"

	"github.com/ndewijer/Stock-AI-Report/internal/api/request"
	"github.com/ndewijer/Stock-AI-Report/internal/api/response"
	"github.com/ndewijer/Stock-AI-Report/internal/apperrors"
	"github.com/ndewijer/Stock-AI-Report/internal/model"
	"github.com/ndewijer/Stock-AI-Report/internal/service"
)

// ReportHandler handles report-proxy HTTP requests.
type ReportHandler struct {
	reportService *service.ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
	}
}

// GenerateReport handles POST requests that turn a price history into a
// short analyst report.
//
// Endpoint: POST /api/report
// Request body: {startDate, endDate, data, code, ticker, currency}
// Response: 200 OK with {"content": "..."}
// Error: 400 Bad Request if the body is not JSON or a field is missing
// Error: provider status with the provider's message, or 500 otherwise
func (h *ReportHandler) GenerateReport(w http.ResponseWriter, r *http.Request) {
	req, err := request.DecodeReportRequest(r.Body)
	if err != nil {
		if errors.Is(err, request.ErrInvalidBody) {
			response.RespondError(w, http.StatusBadRequest, apperrors.MsgInvalidBody, nil)
			return
		}
		response.RespondError(w, http.StatusBadRequest, apperrors.MsgMissingRequiredFields, nil)
		return
	}

	content, err := h.reportService.Generate(r.Context(), req)
	if err != nil {
		response.RespondError(w, apperrors.StatusOf(err, http.StatusInternalServerError), apperrors.MessageOf(err), nil)
		return
	}

	response.RespondJSON(w, http.StatusOK, model.ReportResponse{Content: content})
}
