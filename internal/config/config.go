// Package config loads the relay configuration once at startup.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Defaults used when neither flags, environment nor config file set a value.
const (
	DefaultServerPort      = ":3000"
	DefaultRelayPath       = "/gemini"
	DefaultStaticDir       = "public"
	DefaultBaseURL         = "https://generativelanguage.googleapis.com"
	DefaultAPIVersion      = "v1beta"
	DefaultModel           = "gemini-1.5-flash-latest"
	DefaultUpstreamTimeout = 60 * time.Second
	DefaultLogLevel        = "info"
	DefaultLogFormat       = "text"
)

// Config holds application configuration loaded from flags, environment and file.
// Priority: CLI flags → Env vars → config.toml → defaults
//
// A Config is read-only after Load returns.
type Config struct {
	// ServerPort is the address to bind the server to (e.g., ":3000")
	ServerPort string

	// RelayPath is the path of the relay endpoint (e.g., "/gemini")
	RelayPath string

	// StaticDir is the local directory of front-end assets served at /
	StaticDir string

	// APIKey is the upstream credential. Only ever sourced from the environment.
	APIKey string

	Upstream Upstream

	LogLevel  string
	LogFormat string
}

// Upstream describes the generation API the relay forwards to.
type Upstream struct {
	BaseURL    string
	APIVersion string
	Model      string
	Timeout    time.Duration
}

// Overrides carries values set on the command line. Empty fields are ignored.
type Overrides struct {
	ConfigPath string
	EnvFile    string
	ServerPort string
	RelayPath  string
	StaticDir  string
	LogLevel   string
	LogFormat  string
}

// Load reads configuration from the .env file, the TOML file and the environment,
// then applies command-line overrides on top.
func Load(o Overrides) (*Config, error) {
	if err := LoadDotEnv(o.EnvFile); err != nil {
		return nil, err
	}

	path := o.ConfigPath
	if path == "" {
		path = ConfigPath()
	}
	fileConfig, err := LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
	}

	timeout, err := resolveTimeout(os.Getenv("UPSTREAM_TIMEOUT"), fileConfig.Upstream.Timeout)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		ServerPort: firstNonEmpty(o.ServerPort, getEnvOrFile("SERVER_PORT", fileConfig.ServerPort, DefaultServerPort)),
		RelayPath:  firstNonEmpty(o.RelayPath, getEnvOrFile("RELAY_PATH", fileConfig.RelayPath, DefaultRelayPath)),
		StaticDir:  firstNonEmpty(o.StaticDir, getEnvOrFile("STATIC_DIR", fileConfig.StaticDir, DefaultStaticDir)),
		APIKey:     strings.TrimSpace(os.Getenv("GEMINI_API_KEY")),
		Upstream: Upstream{
			BaseURL:    strings.TrimRight(getEnvOrFile("GEMINI_BASE_URL", fileConfig.Upstream.BaseURL, DefaultBaseURL), "/"),
			APIVersion: getEnvOrFile("GEMINI_API_VERSION", fileConfig.Upstream.APIVersion, DefaultAPIVersion),
			Model:      getEnvOrFile("GEMINI_MODEL", fileConfig.Upstream.Model, DefaultModel),
			Timeout:    timeout,
		},
		LogLevel:  firstNonEmpty(o.LogLevel, getEnvOrFile("LOG_LEVEL", fileConfig.LogLevel, DefaultLogLevel)),
		LogFormat: firstNonEmpty(o.LogFormat, getEnvOrFile("LOG_FORMAT", fileConfig.LogFormat, DefaultLogFormat)),
	}

	if !strings.HasPrefix(cfg.RelayPath, "/") {
		cfg.RelayPath = "/" + cfg.RelayPath
	}

	return cfg, nil
}

// HasAPIKey reports whether an upstream credential was configured.
func (c *Config) HasAPIKey() bool {
	return c.APIKey != ""
}

// getEnvOrFile returns env value, file value, or default (in priority order)
func getEnvOrFile(key, fileValue, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	if fileValue != "" {
		return fileValue
	}
	return defaultValue
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// resolveTimeout parses the upstream timeout from env or file, falling back to the default.
func resolveTimeout(envValue, fileValue string) (time.Duration, error) {
	raw := firstNonEmpty(envValue, fileValue)
	if raw == "" {
		return DefaultUpstreamTimeout, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid upstream timeout %q: %w", raw, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid upstream timeout %q: must be positive", raw)
	}
	return d, nil
}
