package infra

import (
	"time"

	"github.com/mandalnilabja/promptrelay/internal/provider"
)

// Handlers holds the dependencies for infrastructure HTTP handlers.
type Handlers struct {
	Provider  provider.Provider
	RelayPath string
	StartTime time.Time
}

// New creates a new instance of infrastructure handlers.
func New(prov provider.Provider, relayPath string, startTime time.Time) *Handlers {
	return &Handlers{
		Provider:  prov,
		RelayPath: relayPath,
		StartTime: startTime,
	}
}
