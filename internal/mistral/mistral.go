package mistral

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/ndewijer/Stock-AI-Report/internal/apperrors"
	"github.com/ndewijer/Stock-AI-Report/internal/model"
)

// DefaultModel is the completion model used when none is configured.
const DefaultModel = "open-mistral-7b"

// Client generates reports through the Mistral chat-completions API.
// It holds the provider key and is safe for concurrent use.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	model      string
}

// NewClient creates a new Mistral client. baseURL may point at the API or at
// a gateway in front of it; "/v1/chat/completions" is appended.
func NewClient(baseURL, apiKey, modelName string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if modelName == "" {
		modelName = DefaultModel
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		model:      modelName,
	}
}

// HasAPIKey reports whether a key is configured.
func (c *Client) HasAPIKey() bool {
	return c.apiKey != ""
}

// GenerateReport asks the model for a buy/hold/sell report on the given price
// history and returns the text of the first choice. No caching, no retries.
//
// Returns:
//   - string: generated report text
//   - error: *apperrors.UpstreamError on a non-2xx status, *apperrors.TransportError
//     on network or decoding failure, apperrors.ErrNoChoices on an empty completion
func (c *Client) GenerateReport(ctx context.Context, req model.ReportRequest) (string, error) {
	payload, err := json.Marshal(chatRequest{
		Model:    c.model,
		Messages: BuildMessages(req),
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal completion request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", &apperrors.TransportError{Message: apperrors.MsgGenerateReport, Err: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", &apperrors.TransportError{Message: apperrors.MsgGenerateReport, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &apperrors.TransportError{Message: apperrors.MsgGenerateReport, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &apperrors.UpstreamError{
			Status:  resp.StatusCode,
			Message: errorMessage(resp.StatusCode, data),
		}
	}

	var completion chatResponse
	if err := json.Unmarshal(data, &completion); err != nil {
		return "", &apperrors.TransportError{Message: apperrors.MsgGenerateReport, Err: err}
	}
	if len(completion.Choices) == 0 {
		return "", apperrors.ErrNoChoices
	}

	return contentText(completion.Choices[0].Message.Content), nil
}

// errorMessage extracts the provider's error text so callers never see the
// raw provider error object.
func errorMessage(status int, body []byte) string {
	var errResp errorResponse
	if json.Unmarshal(body, &errResp) == nil {
		if msg := rawText(errResp.Message); msg != "" {
			return msg
		}
		if msg := rawText(errResp.Detail); msg != "" {
			return msg
		}
	}
	if text := http.StatusText(status); text != "" {
		return text
	}
	return apperrors.MsgGenerateReport
}

// Generator is the subset of Client used by the report proxy.
type Generator interface {
	GenerateReport(ctx context.Context, req model.ReportRequest) (string, error)
	HasAPIKey() bool
}

var _ Generator = (*Client)(nil)
