package request

import (
	"net/url"

	"github.com/ndewijer/Stock-AI-Report/internal/validation"
)

// StockDataRequest holds the data-proxy query parameters.
type StockDataRequest struct {
	Code      string
	Exchange  string
	StartDate string
	EndDate   string
}

// ParseStockDataRequest extracts the data-proxy parameters from a query
// string. Every parameter is required; a missing one yields a
// *apperrors.ValidationError naming it.
func ParseStockDataRequest(q url.Values) (StockDataRequest, error) {
	req := StockDataRequest{
		Code:      q.Get("code"),
		Exchange:  q.Get("exchange"),
		StartDate: q.Get("startDate"),
		EndDate:   q.Get("endDate"),
	}

	if err := validation.RequireFields(map[string]string{
		"code":      req.Code,
		"exchange":  req.Exchange,
		"startDate": req.StartDate,
		"endDate":   req.EndDate,
	}); err != nil {
		return StockDataRequest{}, err
	}

	return req, nil
}

// Query encodes the request back into data-proxy query parameters.
func (r StockDataRequest) Query() url.Values {
	q := url.Values{}
	q.Set("code", r.Code)
	q.Set("exchange", r.Exchange)
	q.Set("startDate", r.StartDate)
	q.Set("endDate", r.EndDate)
	return q
}
