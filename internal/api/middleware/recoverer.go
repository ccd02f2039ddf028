package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/phuslu/log"

	"github.com/ndewijer/Stock-AI-Report/internal/api/response"
	"github.com/ndewijer/Stock-AI-Report/internal/apperrors"
)

// Recoverer converts a handler panic into a 500 JSON error so callers always
// receive the {error} contract. http.ErrAbortHandler is re-raised.
func Recoverer(logger *log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				//nolint:errorlint // http.ErrAbortHandler is compared by identity, as net/http does.
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				logger.Error().
					Interface("panic", rec).
					Str("path", r.URL.Path).
					Bytes("stack", debug.Stack()).
					Msg("handler panicked")

				response.RespondError(w, http.StatusInternalServerError, apperrors.MsgUnknown, nil)
			}()

			next.ServeHTTP(w, r)
		})
	}
}
