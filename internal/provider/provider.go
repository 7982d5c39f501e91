// Package provider defines the upstream generation API abstraction.
package provider

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mandalnilabja/promptrelay/internal/types"
)

// ErrNoAPIKey is returned when no upstream credential is configured.
var ErrNoAPIKey = errors.New("no API key configured")

// ErrMalformedResponse is returned when the upstream answers 2xx with a body that is not JSON.
var ErrMalformedResponse = errors.New("malformed upstream response")

// Provider defines the interface an upstream generation API must implement.
type Provider interface {
	// Name returns the provider identifier
	Name() string

	// Model returns the upstream model requests are sent to
	Model() string

	// Configured reports whether a credential is available.
	// It never changes after construction.
	Configured() bool

	// GenerateContent sends one prompt upstream.
	// The returned Result is non-nil even when err is not, so callers can log it.
	GenerateContent(ctx context.Context, req *types.RelayRequest) (*Result, error)
}

// Result contains the outcome of one upstream call
type Result struct {
	// Body is the upstream response, set only on success
	Body []byte

	Model      string
	StatusCode int
	Duration   time.Duration
}

// UpstreamError is returned when the upstream answers with a non-2xx status.
// Body is for server-side logs only.
type UpstreamError struct {
	StatusCode int
	Body       []byte
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream returned status %d", e.StatusCode)
}
