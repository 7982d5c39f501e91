package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"

	"github.com/mandalnilabja/promptrelay/internal/app"
	"github.com/mandalnilabja/promptrelay/internal/config"
	"github.com/mandalnilabja/promptrelay/internal/provider/gemini"
	"github.com/mandalnilabja/promptrelay/internal/tokenizer"
	"github.com/mandalnilabja/promptrelay/internal/transport/http/handler"
	"github.com/mandalnilabja/promptrelay/internal/version"
)

// shutdownTimeout bounds how long in-flight relay calls may drain on exit.
const shutdownTimeout = 10 * time.Second

func main() {
	var cli CLI
	kong.Parse(&cli,
		kong.Name("promptrelay"),
		kong.Description("Relay prompts to the Gemini API with a server-held key."),
		kong.Vars{"version": version.Version},
		kong.UsageOnError(),
	)

	if err := run(&cli); err != nil {
		fmt.Fprintf(os.Stderr, "promptrelay: %v\n", err)
		os.Exit(1)
	}
}

func run(cli *CLI) error {
	if cli.InitConfig {
		if err := config.EnsureConfigFile(); err != nil {
			return fmt.Errorf("failed to write config file: %w", err)
		}
		fmt.Println(config.ConfigPath())
		return nil
	}

	cfg, err := config.Load(cli.overrides())
	if err != nil {
		return err
	}

	logger, err := setupLogger(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}

	printStartupBanner(cfg)
	if !cfg.HasAPIKey() {
		logger.Warn("GEMINI_API_KEY is not set; relay requests will be answered with 500")
	}

	prov := gemini.New(gemini.Options{
		APIKey:     cfg.APIKey,
		BaseURL:    cfg.Upstream.BaseURL,
		APIVersion: cfg.Upstream.APIVersion,
		Model:      cfg.Upstream.Model,
		Timeout:    cfg.Upstream.Timeout,
	})

	repo := handler.NewRepo(prov, tokenizer.New(), logger, cfg.RelayPath, cfg.StaticDir)
	if repo.Static == nil {
		logger.Info("static directory not found; serving status at /", "dir", cfg.StaticDir)
	}

	router := app.NewRouter(repo, &app.RouterOptions{
		RelayPath: cfg.RelayPath,
		Logger:    logger,
	})
	srv := app.NewServer(cfg, router, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
