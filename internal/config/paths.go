package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// DataDir returns the path to the promptrelay data directory.
// - Windows: %APPDATA%\promptrelay
// - Other OS: ~/.promptrelay
func DataDir() string {
	if runtime.GOOS == "windows" {
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "promptrelay")
		}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ".promptrelay"
	}
	return filepath.Join(home, ".promptrelay")
}

// ConfigPath returns the path to the config file (~/.promptrelay/config.toml).
func ConfigPath() string {
	return filepath.Join(DataDir(), "config.toml")
}

// EnsureDataDir creates the data directory if it doesn't exist.
func EnsureDataDir() error {
	return os.MkdirAll(DataDir(), 0700)
}
