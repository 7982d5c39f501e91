// Package middleware provides HTTP middleware for request handling.
package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/mandalnilabja/promptrelay/internal/types"
)

// CORS adds Cross-Origin Resource Sharing headers for browser front-ends.
func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Request-ID")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// Recover turns a handler panic into a 500 carrying the relay's generic failure message.
func Recover(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				logger.Error("panic serving request",
					"path", r.URL.Path,
					"panic", rec,
					"request_id", GetRequestID(r.Context()),
					"stack", string(debug.Stack()),
				)
				types.WriteRelayError(w, http.StatusInternalServerError, types.MsgUpstreamFailure)
			}()
			next.ServeHTTP(w, r)
		})
	}
}
