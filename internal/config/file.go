package config

import (
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file structure.
// The upstream credential is deliberately absent: it is read from the environment only.
type FileConfig struct {
	ServerPort string       `toml:"server_port"`
	RelayPath  string       `toml:"relay_path"`
	StaticDir  string       `toml:"static_dir"`
	LogLevel   string       `toml:"log_level"`
	LogFormat  string       `toml:"log_format"`
	Upstream   FileUpstream `toml:"upstream"`
}

// FileUpstream is the [upstream] table.
type FileUpstream struct {
	BaseURL    string `toml:"base_url"`
	APIVersion string `toml:"api_version"`
	Model      string `toml:"model"`
	Timeout    string `toml:"timeout"`
}

// LoadFile loads configuration from the TOML file at path.
// Returns an empty FileConfig if the file doesn't exist.
func LoadFile(path string) (*FileConfig, error) {
	cfg := &FileConfig{}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// EnsureConfigFile creates a default config file with commented examples if none exists.
func EnsureConfigFile() error {
	path := ConfigPath()

	if _, err := os.Stat(path); err == nil {
		return nil
	}

	if err := EnsureDataDir(); err != nil {
		return err
	}

	defaultConfig := `# promptrelay configuration
# The Gemini API key is read from GEMINI_API_KEY (environment or .env) only.

# server_port = ":3000"
# relay_path = "/gemini"
# static_dir = "public"
# log_level = "info"    # debug, info, warn, error
# log_format = "text"   # text, json

# [upstream]
# base_url = "https://generativelanguage.googleapis.com"
# api_version = "v1beta"
# model = "gemini-1.5-flash-latest"
# timeout = "60s"
`

	return os.WriteFile(path, []byte(defaultConfig), 0644)
}
