package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/mandalnilabja/promptrelay/internal/config"
)

// Server wraps the HTTP server with its configuration
type Server struct {
	httpServer *http.Server
	config     *config.Config
	logger     *slog.Logger
}

// NewServer creates a new configured HTTP server instance.
// The write timeout leaves headroom over the upstream timeout so a slow
// upstream still gets its generic 500 delivered.
func NewServer(cfg *config.Config, handler http.Handler, logger *slog.Logger) *Server {
	srv := &http.Server{
		Addr:              cfg.ServerPort,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      cfg.Upstream.Timeout + 15*time.Second,
		IdleTimeout:       120 * time.Second,
		ErrorLog:          slog.NewLogLogger(logger.Handler(), slog.LevelWarn),
	}

	return &Server{
		httpServer: srv,
		config:     cfg,
		logger:     logger,
	}
}

// Start binds the configured address and serves until Shutdown is called.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.config.ServerPort)
	if err != nil {
		return fmt.Errorf("failed to bind %s: %w", s.config.ServerPort, err)
	}
	return s.Serve(ln)
}

// Serve announces readiness on an already bound listener, then serves on it.
func (s *Server) Serve(ln net.Listener) error {
	s.logger.Info("relay listening",
		"url", displayURL(ln.Addr()),
		"relay_path", s.config.RelayPath,
	)

	if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server, waiting for in-flight requests until ctx expires.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// displayURL renders a listener address for humans; unspecified hosts become localhost.
func displayURL(addr net.Addr) string {
	tcpAddr, ok := addr.(*net.TCPAddr)
	if !ok {
		return "http://" + addr.String()
	}
	host := tcpAddr.IP.String()
	if tcpAddr.IP == nil || tcpAddr.IP.IsUnspecified() {
		host = "localhost"
	}
	return fmt.Sprintf("http://%s", net.JoinHostPort(host, fmt.Sprint(tcpAddr.Port)))
}
