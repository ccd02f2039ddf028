package request

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/ndewijer/Stock-AI-Report/internal/model"
	"github.com/ndewijer/Stock-AI-Report/internal/validation"
)

// ErrInvalidBody marks a report body that is not a JSON object.
var ErrInvalidBody = errors.New("invalid request body")

// maxReportBodySize bounds the report-proxy body; price history for a few
// years of daily rows stays well below it.
const maxReportBodySize = 4 << 20

// reportBody mirrors model.ReportRequest but accepts data either as a JSON
// string or as raw JSON, which is forwarded as its compact text.
type reportBody struct {
	StartDate string          `json:"startDate"`
	EndDate   string          `json:"endDate"`
	Data      json.RawMessage `json:"data"`
	Code      string          `json:"code"`
	Ticker    string          `json:"ticker"`
	Currency  string          `json:"currency"`
}

// DecodeReportRequest reads and validates a report-proxy body.
// Returns an error wrapping ErrInvalidBody when the body is not JSON, or a
// *apperrors.ValidationError when a field is missing. An empty body is
// missing every field.
func DecodeReportRequest(r io.Reader) (model.ReportRequest, error) {
	var body reportBody
	err := json.NewDecoder(io.LimitReader(r, maxReportBodySize)).Decode(&body)
	if err != nil && !errors.Is(err, io.EOF) {
		return model.ReportRequest{}, fmt.Errorf("%w: %v", ErrInvalidBody, err)
	}

	data, err := dataText(body.Data)
	if err != nil {
		return model.ReportRequest{}, fmt.Errorf("%w: data: %v", ErrInvalidBody, err)
	}

	req := model.ReportRequest{
		StartDate: body.StartDate,
		EndDate:   body.EndDate,
		Data:      data,
		Code:      body.Code,
		Ticker:    body.Ticker,
		Currency:  body.Currency,
	}
	if err := validation.ValidateReportRequest(req); err != nil {
		return model.ReportRequest{}, err
	}

	return req, nil
}

// dataText returns data as prompt text. Falsy JSON values (null, false,
// zero and the empty string) count as missing.
func dataText(raw json.RawMessage) (string, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) || bytes.Equal(trimmed, []byte("false")) {
		return "", nil
	}
	if f, err := strconv.ParseFloat(string(trimmed), 64); err == nil && f == 0 {
		return "", nil
	}

	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return "", err
		}
		return s, nil
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, trimmed); err != nil {
		return "", err
	}
	return buf.String(), nil
}
