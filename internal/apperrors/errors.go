package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"unicode/utf8"
)

// Messages returned to callers of the proxy endpoints and used as the
// failure text of an orchestration run. They are part of the response
// contract and must stay stable.
const (
	// MsgMissingRequiredFields is returned when any required parameter is absent.
	MsgMissingRequiredFields = "Missing required fields"

	// MsgInvalidBody is returned when a request body cannot be decoded.
	MsgInvalidBody = "Invalid request body"

	// MsgFetchStockData is the generic market-data failure message.
	MsgFetchStockData = "Failed to fetch stock data"

	// MsgGenerateReport is the generic report failure message.
	MsgGenerateReport = "Failed to generate report"

	// MsgUnknown is used when an error carries no message at all.
	MsgUnknown = "Unknown error"
)

// Client-side errors raised before any request is issued.
var (
	// ErrNoSelection indicates that a submit was attempted without a ticker.
	ErrNoSelection = errors.New("no ticker selected")

	// ErrInvalidDateRange indicates that the range is incomplete or inverted.
	ErrInvalidDateRange = errors.New("invalid date range")

	// ErrTickerNotFound indicates that a ticker code is not in the catalog.
	ErrTickerNotFound = errors.New("ticker not found")

	// ErrMissingAPIKey indicates that a provider secret has not been configured.
	ErrMissingAPIKey = errors.New("provider API key not configured")

	// ErrNoChoices indicates that the language model returned no completion.
	ErrNoChoices = errors.New("no completion choices returned")
)

// ValidationError reports missing or malformed input. Fields maps the
// offending field name to a short description.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	msgs := make([]string, 0, len(keys))
	for _, k := range keys {
		msgs = append(msgs, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return strings.Join(msgs, "; ")
}

// UpstreamError reports a non-2xx response from a provider or a proxy.
// Status is the HTTP status the upstream answered with.
type UpstreamError struct {
	Status  int
	Message string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream returned %d: %s", e.Status, e.Message)
}

// TransportError reports a network or decoding failure. Message is safe to
// show to callers; Err holds the underlying cause for logging.
type TransportError struct {
	Message string
	Err     error
}

func (e *TransportError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// MethodNotAllowedError reports a request made with an unsupported HTTP verb.
type MethodNotAllowedError struct {
	Method string
}

func (e *MethodNotAllowedError) Error() string {
	return fmt.Sprintf("%s method not allowed.", e.Method)
}

// StatusOf returns the HTTP status an error maps to at the proxy boundary.
// Errors that carry no status map to fallback.
func StatusOf(err error, fallback int) int {
	var upstreamErr *UpstreamError
	if errors.As(err, &upstreamErr) && upstreamErr.Status > 0 {
		return upstreamErr.Status
	}

	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return http.StatusBadRequest
	}

	var methodErr *MethodNotAllowedError
	if errors.As(err, &methodErr) {
		return http.StatusMethodNotAllowed
	}

	return fallback
}

// MessageOf returns the caller-facing message of an error, or MsgUnknown
// when the error is nil or has an empty message.
func MessageOf(err error) string {
	if err == nil {
		return MsgUnknown
	}

	var upstreamErr *UpstreamError
	if errors.As(err, &upstreamErr) && upstreamErr.Message != "" {
		return upstreamErr.Message
	}

	var transportErr *TransportError
	if errors.As(err, &transportErr) && transportErr.Message != "" {
		return transportErr.Message
	}

	if msg := err.Error(); msg != "" {
		return msg
	}
	return MsgUnknown
}

// Truncate shortens s to at most n bytes without splitting a UTF-8 sequence.
func Truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	cut := n
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
