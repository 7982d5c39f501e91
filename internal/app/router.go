package app

import (
	"log/slog"
	"net/http"

	"github.com/mandalnilabja/promptrelay/internal/transport/http/handler"
	"github.com/mandalnilabja/promptrelay/internal/transport/http/middleware"
)

// RouterOptions configures the HTTP router behavior.
type RouterOptions struct {
	RelayPath string
	Logger    *slog.Logger
}

// NewRouter creates and configures the HTTP router with all application routes.
// Returns an http.Handler with middleware applied.
func NewRouter(repo *handler.Repo, opts *RouterOptions) http.Handler {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	mux := http.NewServeMux()

	mux.HandleFunc("POST "+opts.RelayPath, repo.Relay.Relay)

	mux.HandleFunc("GET /api/health", repo.Infra.HealthCheck)
	mux.HandleFunc("GET /api/status", repo.Infra.RootStatus)

	// Front-end assets if present, otherwise a JSON status at the root
	if repo.Static != nil {
		mux.Handle("GET /", repo.Static)
	} else {
		mux.HandleFunc("GET /{$}", repo.Infra.RootStatus)
	}

	// Apply middleware chain (order: inner to outer)
	var h http.Handler = mux
	h = middleware.Recover(logger)(h)
	h = middleware.RequestLogger(logger)(h)
	h = middleware.RequestID(h)
	h = middleware.CORS(h)

	return h
}
