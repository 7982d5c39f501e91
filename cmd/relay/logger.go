package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/mandalnilabja/promptrelay/internal/config"
	"github.com/mandalnilabja/promptrelay/internal/version"
)

func setupLogger(level, format string) (*slog.Logger, error) {
	lvl, err := parseLevel(level)
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: lvl}

	switch strings.ToLower(format) {
	case "", "text":
		return slog.New(slog.NewTextHandler(os.Stdout, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(os.Stdout, opts)), nil
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
}

func parseLevel(level string) (slog.Level, error) {
	var lvl slog.Level
	if level == "" {
		return slog.LevelInfo, nil
	}
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return 0, fmt.Errorf("unknown log level %q", level)
	}
	return lvl, nil
}

func printStartupBanner(cfg *config.Config) {
	keyStatus := "loaded"
	if !cfg.HasAPIKey() {
		keyStatus = "MISSING (set GEMINI_API_KEY)"
	}

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "promptrelay %s - Gemini prompt relay\n", version.Version)
	fmt.Fprintln(os.Stderr, "════════════════════════════════════════════════")
	fmt.Fprintf(os.Stderr, "Relay:      POST http://localhost%s%s\n", cfg.ServerPort, cfg.RelayPath)
	fmt.Fprintf(os.Stderr, "Model:      %s\n", cfg.Upstream.Model)
	fmt.Fprintf(os.Stderr, "API key:    %s\n", keyStatus)
	fmt.Fprintf(os.Stderr, "Assets:     %s\n", cfg.StaticDir)
	fmt.Fprintln(os.Stderr, "No caller authentication: bind to a trusted interface only.")
	fmt.Fprintln(os.Stderr, "════════════════════════════════════════════════")
	fmt.Fprintf(os.Stderr, "\n")
}
