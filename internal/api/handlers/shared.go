package handlers

import (
	"net/http"

	"github.com/ndewijer/Stock-AI-Report/internal/api/response"
	"github.com/ndewijer/Stock-AI-Report/internal/apperrors"
)

// MethodNotAllowed answers a known path requested with an unsupported verb.
//
// Response: 405 with {"error": "<METHOD> method not allowed."}
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	err := &apperrors.MethodNotAllowedError{Method: r.Method}
	response.RespondError(w, http.StatusMethodNotAllowed, err.Error(), nil)
}

// NotFound answers unknown paths with a JSON error.
func NotFound(w http.ResponseWriter, _ *http.Request) {
	response.RespondError(w, http.StatusNotFound, "Not found", nil)
}
