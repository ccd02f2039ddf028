package eodhd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/ndewijer/Stock-AI-Report/internal/apperrors"
	"github.com/ndewijer/Stock-AI-Report/internal/model"
)

// maxErrorMessageLen bounds the upstream body text kept in an UpstreamError.
const maxErrorMessageLen = 256

// Client fetches end-of-day price history from the EODHD API.
// It holds the provider token and is safe for concurrent use.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

// NewClient creates a new EODHD client.
//
// Parameters:
//   - baseURL: API root, e.g. "https://eodhd.com/api" (no trailing slash)
//   - apiKey: the api_token query parameter
//   - httpClient: optional; http.DefaultClient settings are used when nil
//
// Returns:
//   - *Client: A new client instance ready for use
func NewClient(baseURL, apiKey string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
	}
}

// HasAPIKey reports whether a token is configured.
func (c *Client) HasAPIKey() bool {
	return c.apiKey != ""
}

// FetchPriceHistory fetches daily OHLC rows for code.exchange between
// startDate and endDate (both YYYY-MM-DD, inclusive).
//
// Exactly one upstream request is issued; there are no retries.
//
// Parameters:
//   - ctx: cancels the upstream request
//   - code: Ticker code (e.g., "DANGCEM")
//   - exchange: Exchange code (e.g., "XNSA")
//   - startDate, endDate: Date range in YYYY-MM-DD form
//
// Returns:
//   - []byte: The provider's JSON body, verbatim
//   - error: *apperrors.UpstreamError on a non-2xx status,
//     *apperrors.TransportError on network failure or a non-JSON body
func (c *Client) FetchPriceHistory(ctx context.Context, code, exchange, startDate, endDate string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.historyURL(code, exchange, startDate, endDate), nil)
	if err != nil {
		return nil, &apperrors.TransportError{Message: apperrors.MsgFetchStockData, Err: stripURL(err)}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &apperrors.TransportError{Message: apperrors.MsgFetchStockData, Err: stripURL(err)}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &apperrors.TransportError{Message: apperrors.MsgFetchStockData, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &apperrors.UpstreamError{
			Status:  resp.StatusCode,
			Message: c.errorMessage(data),
		}
	}

	if !json.Valid(data) {
		return nil, &apperrors.TransportError{
			Message: apperrors.MsgFetchStockData,
			Err:     fmt.Errorf("response for %s.%s is not valid JSON", code, exchange),
		}
	}

	return data, nil
}

// historyURL builds the /eod request. The token is a query parameter, so the
// returned URL must never be logged or surfaced in errors.
func (c *Client) historyURL(code, exchange, startDate, endDate string) string {
	q := url.Values{}
	q.Set("from", startDate)
	q.Set("to", endDate)
	q.Set("period", "d")
	q.Set("api_token", c.apiKey)
	q.Set("fmt", "json")

	return fmt.Sprintf("%s/eod/%s?%s", c.baseURL, url.PathEscape(code+"."+exchange), q.Encode())
}

// errorMessage returns the upstream body text with the token redacted, or the
// generic message when the body is empty.
func (c *Client) errorMessage(body []byte) string {
	msg := strings.TrimSpace(string(body))
	if msg == "" {
		return apperrors.MsgFetchStockData
	}
	if c.apiKey != "" {
		msg = strings.ReplaceAll(msg, c.apiKey, "***")
	}
	return apperrors.Truncate(msg, maxErrorMessageLen)
}

// stripURL drops the request URL from *url.Error so the token in the query
// string cannot leak through error text.
func stripURL(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return fmt.Errorf("%s request failed: %w", urlErr.Op, urlErr.Err)
	}
	return err
}

// ParsePriceHistory decodes a provider body into typed records. Rows keep
// the provider's order, which is chronological. Only the top-level array is
// required; each field is read leniently so a schema drift in one column
// never loses the rest of the row.
func ParsePriceHistory(data []byte) (model.PriceHistory, error) {
	var rows []map[string]json.RawMessage
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode price history: %w", err)
	}

	history := make(model.PriceHistory, 0, len(rows))
	for _, row := range rows {
		history = append(history, model.PriceHistoryRecord{
			Date:          textField(row["date"]),
			Open:          numberField(row["open"]),
			High:          numberField(row["high"]),
			Low:           numberField(row["low"]),
			Close:         numberField(row["close"]),
			AdjustedClose: numberField(row["adjusted_close"]),
			Volume:        numberField(row["volume"]),
		})
	}
	return history, nil
}

// numberField reads a JSON number or a numeric string. Anything else is zero.
func numberField(raw json.RawMessage) float64 {
	text := strings.TrimSpace(string(raw))
	if strings.HasPrefix(text, `"`) {
		var s string
		if json.Unmarshal(raw, &s) != nil {
			return 0
		}
		text = strings.TrimSpace(s)
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0
	}
	return f
}

// textField reads a JSON string, falling back to the raw token text.
func textField(raw json.RawMessage) string {
	var s string
	if json.Unmarshal(raw, &s) == nil {
		return s
	}
	return strings.TrimSpace(string(raw))
}

// Fetcher is the subset of Client used by the data proxy.
type Fetcher interface {
	FetchPriceHistory(ctx context.Context, code, exchange, startDate, endDate string) ([]byte, error)
	HasAPIKey() bool
}

var _ Fetcher = (*Client)(nil)
