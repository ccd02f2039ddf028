// Package proxyclient calls the data-proxy and report-proxy endpoints from
// the client side. It holds no provider secrets.
package proxyclient

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/ndewijer/Stock-AI-Report/internal/apperrors"
	"github.com/ndewijer/Stock-AI-Report/internal/eodhd"
	"github.com/ndewijer/Stock-AI-Report/internal/model"
	"github.com/ndewijer/Stock-AI-Report/internal/validation"
)

// Endpoint paths served by cmd/server.
const (
	StockDataPath = "/api/stock-data"
	ReportPath    = "/api/report"
)

// maxErrorBodyLen bounds the body text kept when a proxy error is not JSON.
const maxErrorBodyLen = 512

// DataClient calls the data-proxy.
type DataClient struct {
	httpClient *http.Client
	endpoint   string
}

// NewDataClient creates a DataClient for the proxy rooted at baseURL
// (e.g. "http://localhost:5001"). A nil httpClient uses default settings.
func NewDataClient(baseURL string, httpClient *http.Client) *DataClient {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &DataClient{
		httpClient: httpClient,
		endpoint:   strings.TrimRight(baseURL, "/") + StockDataPath,
	}
}

// FetchPriceHistory asks the data-proxy for daily prices of code.exchange
// between start and end. Timestamps are truncated to YYYY-MM-DD.
//
// Returns:
//   - model.PriceHistory: decoded records, in the order received; empty when
//     the body is not an array of rows
//   - []byte: the proxy's body, verbatim
//   - error: *apperrors.UpstreamError on a non-2xx status,
//     *apperrors.TransportError on network failure
func (c *DataClient) FetchPriceHistory(ctx context.Context, code, exchange, start, end string) (model.PriceHistory, []byte, error) {
	q := url.Values{}
	q.Set("code", code)
	q.Set("exchange", exchange)
	q.Set("startDate", validation.TruncateDate(start))
	q.Set("endDate", validation.TruncateDate(end))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return nil, nil, &apperrors.TransportError{Message: apperrors.MsgFetchStockData, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	data, err := do(c.httpClient, req, apperrors.MsgFetchStockData)
	if err != nil {
		return nil, nil, err
	}

	// The records only feed the summary header; the body is passed on as is.
	history, err := eodhd.ParsePriceHistory(data)
	if err != nil {
		history = model.PriceHistory{}
	}
	return history, data, nil
}

// ReportClient calls the report-proxy.
type ReportClient struct {
	httpClient *http.Client
	endpoint   string
}

// NewReportClient creates a ReportClient for the proxy rooted at baseURL.
func NewReportClient(baseURL string, httpClient *http.Client) *ReportClient {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &ReportClient{
		httpClient: httpClient,
		endpoint:   strings.TrimRight(baseURL, "/") + ReportPath,
	}
}

// GenerateReport posts req to the report-proxy and returns the report text.
func (c *ReportClient) GenerateReport(ctx context.Context, req model.ReportRequest) (string, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return "", &apperrors.TransportError{Message: apperrors.MsgGenerateReport, Err: err}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", &apperrors.TransportError{Message: apperrors.MsgGenerateReport, Err: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	data, err := do(c.httpClient, httpReq, apperrors.MsgGenerateReport)
	if err != nil {
		return "", err
	}

	var resp model.ReportResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return "", &apperrors.TransportError{Message: apperrors.MsgGenerateReport, Err: err}
	}
	return resp.Content, nil
}

// do sends req and returns the body of a 2xx response. generic is the
// message used for transport failures and empty error bodies.
func do(client *http.Client, req *http.Request, generic string) ([]byte, error) {
	resp, err := client.Do(req)
	if err != nil {
		return nil, &apperrors.TransportError{Message: generic, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &apperrors.TransportError{Message: generic, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &apperrors.UpstreamError{
			Status:  resp.StatusCode,
			Message: errorMessage(data, generic),
		}
	}
	return data, nil
}

// errorMessage prefers the proxy's {error} field, then the body text.
func errorMessage(body []byte, generic string) string {
	var errResp struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(body, &errResp) == nil && errResp.Error != "" {
		return errResp.Error
	}

	msg := strings.TrimSpace(string(body))
	if msg == "" {
		return generic
	}
	return apperrors.Truncate(msg, maxErrorBodyLen)
}
