package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/phuslu/log"
)

func newTestLogger(buf *bytes.Buffer) *log.Logger {
	return &log.Logger{
		Level:  log.DebugLevel,
		Writer: &log.IOWriter{Writer: buf},
	}
}

func TestRecoverer(t *testing.T) {
	t.Run("converts panics to JSON 500", func(t *testing.T) {
		var buf bytes.Buffer
		handler := Recoverer(newTestLogger(&buf))(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
			panic("boom")
		}))

		req := httptest.NewRequest(http.MethodGet, "/api/report", nil)
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		if w.Code != http.StatusInternalServerError {
			t.Errorf("Expected 500, got %d", w.Code)
		}
		if w.Body.String() != "{\"error\":\"Unknown error\"}\n" {
			t.Errorf("Unexpected body: %s", w.Body.String())
		}
		if !strings.Contains(buf.String(), "handler panicked") {
			t.Errorf("Expected panic to be logged, got %s", buf.String())
		}
	})

	t.Run("re-raises ErrAbortHandler", func(t *testing.T) {
		handler := Recoverer(newTestLogger(&bytes.Buffer{}))(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
			panic(http.ErrAbortHandler)
		}))

		defer func() {
			if rec := recover(); rec != http.ErrAbortHandler {
				t.Errorf("Expected ErrAbortHandler to propagate, got %v", rec)
			}
		}()

		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	})
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	handler := Logger(newTestLogger(&buf))(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/stock-data?code=DANGCEM", nil)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	out := buf.String()
	for _, want := range []string{`"method":"GET"`, `"path":"/api/stock-data"`, `"status":418`} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected log to contain %s, got %s", want, out)
		}
	}
	if strings.Contains(out, "DANGCEM") {
		t.Errorf("Expected query string to be omitted, got %s", out)
	}
}

func TestPreflightHandler(t *testing.T) {
	t.Run("sets wildcard origin for plain OPTIONS requests", func(t *testing.T) {
		w := httptest.NewRecorder()
		PreflightHandler([]string{"*"})(w, httptest.NewRequest(http.MethodOptions, "/api/report", nil))

		if w.Code != http.StatusNoContent {
			t.Errorf("Expected 204, got %d", w.Code)
		}
		if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
			t.Errorf("Expected '*', got %q", got)
		}
		if got := w.Header().Get("Access-Control-Allow-Methods"); got != "GET, POST, OPTIONS" {
			t.Errorf("Expected 'GET, POST, OPTIONS', got %q", got)
		}
	})

	t.Run("does not invent an origin for restricted lists", func(t *testing.T) {
		w := httptest.NewRecorder()
		PreflightHandler([]string{"https://app.example.com"})(w, httptest.NewRequest(http.MethodOptions, "/api/report", nil))

		if got := w.Header().Get("Access-Control-Allow-Origin"); got != "" {
			t.Errorf("Expected no origin header, got %q", got)
		}
	})

	t.Run("keeps headers negotiated by the CORS middleware", func(t *testing.T) {
		w := httptest.NewRecorder()
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		PreflightHandler([]string{"*"})(w, httptest.NewRequest(http.MethodOptions, "/api/report", nil))

		if got := w.Header().Get("Access-Control-Allow-Headers"); got != "Content-Type" {
			t.Errorf("Expected negotiated headers to be kept, got %q", got)
		}
	})
}
