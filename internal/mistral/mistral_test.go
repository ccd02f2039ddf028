package mistral

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ndewijer/Stock-AI-Report/internal/apperrors"
	"github.com/ndewijer/Stock-AI-Report/internal/model"
)

func testRequest() model.ReportRequest {
	return model.ReportRequest{
		StartDate: "2025-04-01",
		EndDate:   "2025-04-17",
		Data:      `[{"date":"2025-04-17","close":499.5}]`,
		Code:      "DANGCEM",
		Ticker:    "Dangote Cement Plc",
		Currency:  "NGN",
	}
}

func TestBuildMessages(t *testing.T) {
	msgs := BuildMessages(testRequest())

	if len(msgs) != 2 {
		t.Fatalf("Expected 2 messages, got %d", len(msgs))
	}
	if msgs[0].Role != RoleSystem || msgs[1].Role != RoleUser {
		t.Errorf("Expected system then user roles, got %s, %s", msgs[0].Role, msgs[1].Role)
	}
	for _, want := range []string{"2025-04-01", "2025-04-17", "150 words", "buy, hold or sell"} {
		if !strings.Contains(msgs[0].Content, want) {
			t.Errorf("Expected system prompt to contain %q", want)
		}
	}
	for _, want := range []string{`[{"date":"2025-04-17","close":499.5}]`, "DANGCEM", "Dangote Cement Plc", "NGN"} {
		if !strings.Contains(msgs[1].Content, want) {
			t.Errorf("Expected user prompt to contain %q", want)
		}
	}
}

func TestClient_GenerateReport(t *testing.T) {
	t.Run("sends prompt and returns first choice", func(t *testing.T) {
		var got chatRequest
		var auth string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/v1/chat/completions" {
				t.Errorf("Unexpected path %s", r.URL.Path)
			}
			auth = r.Header.Get("Authorization")
			//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
			json.NewDecoder(r.Body).Decode(&got)
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"Hold."}},{"message":{"content":"Sell."}}]}`))
		}))
		defer srv.Close()

		client := NewClient(srv.URL, "mistral-key", "", srv.Client())

		text, err := client.GenerateReport(context.Background(), testRequest())
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if text != "Hold." {
			t.Errorf("Expected 'Hold.', got %q", text)
		}
		if auth != "Bearer mistral-key" {
			t.Errorf("Expected bearer auth, got %q", auth)
		}
		if got.Model != DefaultModel {
			t.Errorf("Expected default model, got %q", got.Model)
		}
		if len(got.Messages) != 2 {
			t.Errorf("Expected 2 messages, got %d", len(got.Messages))
		}
	})

	t.Run("joins chunked content", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Write([]byte(`{"choices":[{"message":{"content":[{"type":"text","text":"Buy "},{"type":"reference","text":"x"},{"type":"text","text":"now."}]}}]}`))
		}))
		defer srv.Close()

		text, err := NewClient(srv.URL, "k", "m", srv.Client()).GenerateReport(context.Background(), testRequest())
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if text != "Buy now." {
			t.Errorf("Expected 'Buy now.', got %q", text)
		}
	})

	t.Run("maps provider error to upstream error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"object":"error","message":"Unauthorized","type":"invalid_request_error"}`))
		}))
		defer srv.Close()

		_, err := NewClient(srv.URL, "bad", "", srv.Client()).GenerateReport(context.Background(), testRequest())

		var upstreamErr *apperrors.UpstreamError
		if !errors.As(err, &upstreamErr) {
			t.Fatalf("Expected UpstreamError, got %v", err)
		}
		if upstreamErr.Status != http.StatusUnauthorized || upstreamErr.Message != "Unauthorized" {
			t.Errorf("Unexpected upstream error %+v", upstreamErr)
		}
	})

	t.Run("falls back to status text", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
			w.Write([]byte("slow down"))
		}))
		defer srv.Close()

		_, err := NewClient(srv.URL, "k", "", srv.Client()).GenerateReport(context.Background(), testRequest())

		var upstreamErr *apperrors.UpstreamError
		if !errors.As(err, &upstreamErr) || upstreamErr.Message != "Too Many Requests" {
			t.Errorf("Expected status text message, got %v", err)
		}
	})

	t.Run("no choices is an error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Write([]byte(`{"choices":[]}`))
		}))
		defer srv.Close()

		_, err := NewClient(srv.URL, "k", "", srv.Client()).GenerateReport(context.Background(), testRequest())
		if !errors.Is(err, apperrors.ErrNoChoices) {
			t.Errorf("Expected ErrNoChoices, got %v", err)
		}
	})

	t.Run("malformed completion is a transport error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Write([]byte(`not json`))
		}))
		defer srv.Close()

		_, err := NewClient(srv.URL, "k", "", srv.Client()).GenerateReport(context.Background(), testRequest())

		var transportErr *apperrors.TransportError
		if !errors.As(err, &transportErr) {
			t.Errorf("Expected TransportError, got %v", err)
		}
	})
}
