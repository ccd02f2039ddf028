package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
	"unicode/utf8"
)

func TestStatusOf(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		fallback int
		want     int
	}{
		{"upstream status is kept", &UpstreamError{Status: http.StatusForbidden}, http.StatusInternalServerError, http.StatusForbidden},
		{"wrapped upstream status is kept", fmt.Errorf("fetch: %w", &UpstreamError{Status: 429}), 500, 429},
		{"upstream without status falls back", &UpstreamError{Message: "boom"}, 500, 500},
		{"validation maps to 400", &ValidationError{Fields: map[string]string{"code": "required"}}, 500, http.StatusBadRequest},
		{"method maps to 405", &MethodNotAllowedError{Method: "GET"}, 500, http.StatusMethodNotAllowed},
		{"transport falls back", &TransportError{Message: MsgFetchStockData}, 500, 500},
		{"plain error falls back", errors.New("x"), 502, 502},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StatusOf(tt.err, tt.fallback); got != tt.want {
				t.Errorf("Expected %d, got %d", tt.want, got)
			}
		})
	}
}

func TestMessageOf(t *testing.T) {
	t.Run("nil error is unknown", func(t *testing.T) {
		if got := MessageOf(nil); got != MsgUnknown {
			t.Errorf("Expected %q, got %q", MsgUnknown, got)
		}
	})

	t.Run("upstream message wins", func(t *testing.T) {
		err := fmt.Errorf("wrap: %w", &UpstreamError{Status: 401, Message: "Unauthorized"})
		if got := MessageOf(err); got != "Unauthorized" {
			t.Errorf("Expected 'Unauthorized', got %q", got)
		}
	})

	t.Run("transport message hides cause", func(t *testing.T) {
		err := &TransportError{Message: MsgFetchStockData, Err: errors.New("dial tcp: refused")}
		if got := MessageOf(err); got != MsgFetchStockData {
			t.Errorf("Expected %q, got %q", MsgFetchStockData, got)
		}
	})

	t.Run("plain error uses its text", func(t *testing.T) {
		if got := MessageOf(errors.New("bad things")); got != "bad things" {
			t.Errorf("Expected 'bad things', got %q", got)
		}
	})
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{Fields: map[string]string{
		"exchange": "exchange is required",
		"code":     "code is required",
	}}

	want := "code: code is required; exchange: exchange is required"
	if got := err.Error(); got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestMethodNotAllowedError_Error(t *testing.T) {
	err := &MethodNotAllowedError{Method: http.MethodGet}
	if got := err.Error(); got != "GET method not allowed." {
		t.Errorf("Expected 'GET method not allowed.', got %q", got)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		n    int
		want string
	}{
		{"short text is unchanged", "Forbidden", 16, "Forbidden"},
		{"ascii is cut at the limit", "Forbidden", 4, "Forb"},
		{"naira sign is not split", "Price ₦490", 7, "Price "},
		{"cut after a whole rune", "Price ₦490", 9, "Price ₦"},
		{"zero limit is empty", "₦", 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Truncate(tt.in, tt.n)
			if got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
			if !utf8.ValidString(got) {
				t.Errorf("Expected valid UTF-8, got %q", got)
			}
		})
	}
}
