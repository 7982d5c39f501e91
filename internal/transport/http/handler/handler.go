package handler

import (
	"log/slog"
	"time"

	"github.com/mandalnilabja/promptrelay/internal/provider"
	"github.com/mandalnilabja/promptrelay/internal/tokenizer"
	"github.com/mandalnilabja/promptrelay/internal/transport/http/handler/infra"
	"github.com/mandalnilabja/promptrelay/internal/transport/http/handler/relay"
	"github.com/mandalnilabja/promptrelay/internal/transport/http/handler/static"
)

// Repo composes all domain-specific handlers.
type Repo struct {
	Relay *relay.Handlers
	Infra *infra.Handlers

	// Static is nil when no asset directory is available.
	Static *static.Handler
}

// NewRepo creates a new instance of the composed handler repository.
func NewRepo(prov provider.Provider, tok tokenizer.Tokenizer, logger *slog.Logger, relayPath, staticDir string) *Repo {
	startTime := time.Now()
	return &Repo{
		Relay:  relay.New(prov, tok, logger),
		Infra:  infra.New(prov, relayPath, startTime),
		Static: static.New(staticDir),
	}
}
