package main

import (
	"github.com/alecthomas/kong"

	"github.com/mandalnilabja/promptrelay/internal/config"
)

// CLI is the command-line surface. Flags override environment and config file values.
type CLI struct {
	Config     string `help:"Path to config.toml (default ~/.promptrelay/config.toml)." type:"path" placeholder:"PATH"`
	EnvFile    string `help:"Path to a .env file holding GEMINI_API_KEY." name:"env-file" default:".env" placeholder:"PATH"`
	Port       string `help:"Address to listen on, e.g. :3000." placeholder:"ADDR"`
	RelayPath  string `help:"Path of the relay endpoint." name:"relay-path" placeholder:"PATH"`
	StaticDir  string `help:"Directory of front-end assets served at /." name:"static-dir" placeholder:"DIR"`
	LogLevel   string `help:"Log level: debug, info, warn or error." name:"log-level" placeholder:"LEVEL"`
	LogFormat  string `help:"Log format." name:"log-format" placeholder:"text|json"`
	InitConfig bool   `help:"Write a commented config.toml to the data directory and exit." name:"init-config"`

	Version kong.VersionFlag `help:"Print version and exit."`
}

// overrides converts flags into config overrides.
func (c *CLI) overrides() config.Overrides {
	return config.Overrides{
		ConfigPath: c.Config,
		EnvFile:    c.EnvFile,
		ServerPort: c.Port,
		RelayPath:  c.RelayPath,
		StaticDir:  c.StaticDir,
		LogLevel:   c.LogLevel,
		LogFormat:  c.LogFormat,
	}
}
