package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ndewijer/Stock-AI-Report/internal/api/handlers"
)

func contains(s, sub string) bool {
	return strings.Contains(s, sub)
}

func TestMethodNotAllowed(t *testing.T) {
	for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodDelete} {
		t.Run(method, func(t *testing.T) {
			req := httptest.NewRequest(method, "/api/report", nil)
			w := httptest.NewRecorder()

			handlers.MethodNotAllowed(w, req)

			if w.Code != http.StatusMethodNotAllowed {
				t.Errorf("Expected 405, got %d", w.Code)
			}
			want := "{\"error\":\"" + method + " method not allowed.\"}\n"
			if w.Body.String() != want {
				t.Errorf("Expected %q, got %q", want, w.Body.String())
			}
		})
	}
}

func TestNotFound(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/nope", nil)
	w := httptest.NewRecorder()

	handlers.NotFound(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", w.Code)
	}
}
