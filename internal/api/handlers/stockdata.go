package handlers

import (
	"net/http"

	"github.com/ndewijer/Stock-AI-Report/internal/api/request"
	"github.com/ndewijer/Stock-AI-Report/internal/api/response"
	"github.com/ndewijer/Stock-AI-Report/internal/apperrors"
	"github.com/ndewijer/Stock-AI-Report/internal/service"
)

// StockDataHandler handles data-proxy HTTP requests.
type StockDataHandler struct {
	stockDataService *service.StockDataService
}

// NewStockDataHandler creates a new StockDataHandler.
func NewStockDataHandler(stockDataService *service.StockDataService) *StockDataHandler {
	return &StockDataHandler{
		stockDataService: stockDataService,
	}
}

// PriceHistory handles GET requests for daily price history of one ticker.
// The provider's JSON array is relayed byte for byte on success. Provider
// error details are logged by the service and never forwarded.
//
// Endpoint: GET /api/stock-data?code=&exchange=&startDate=&endDate=
// Response: 200 OK with the provider's price history array
// Error: 400 Bad Request if any parameter is missing
// Error: provider status (or 500) with {"error": "Failed to fetch stock data"}
func (h *StockDataHandler) PriceHistory(w http.ResponseWriter, r *http.Request) {
	req, err := request.ParseStockDataRequest(r.URL.Query())
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, apperrors.MsgMissingRequiredFields, nil)
		return
	}

	data, err := h.stockDataService.PriceHistory(r.Context(), req)
	if err != nil {
		response.RespondError(w, apperrors.StatusOf(err, http.StatusInternalServerError), apperrors.MsgFetchStockData, nil)
		return
	}

	response.RespondRaw(w, http.StatusOK, data)
}
