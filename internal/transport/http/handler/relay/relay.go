// Package relay implements the prompt relay endpoint.
//
// The endpoint assumes a trusted local caller: it performs no caller
// authentication and no rate limiting. Bind it accordingly.
package relay

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/mandalnilabja/promptrelay/internal/provider"
	"github.com/mandalnilabja/promptrelay/internal/tokenizer"
	"github.com/mandalnilabja/promptrelay/internal/transport/http/middleware"
	"github.com/mandalnilabja/promptrelay/internal/types"
)

// maxBodyBytes caps the inbound request body.
const maxBodyBytes = 1 << 20

// tokenCountTimeout is the maximum time to wait for token counting after the upstream call.
const tokenCountTimeout = 100 * time.Millisecond

// maxLoggedBody truncates upstream error bodies in logs.
const maxLoggedBody = 2048

// Handlers holds the dependencies for the relay endpoint.
type Handlers struct {
	Provider  provider.Provider
	Tokenizer tokenizer.Tokenizer
	Logger    *slog.Logger
}

// New creates relay handlers. tok may be nil to skip prompt-size estimation.
func New(prov provider.Provider, tok tokenizer.Tokenizer, logger *slog.Logger) *Handlers {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handlers{
		Provider:  prov,
		Tokenizer: tok,
		Logger:    logger,
	}
}

// Relay forwards {prompt, systemInstruction?} upstream and returns the
// upstream JSON verbatim. Every upstream failure collapses into one generic 500.
func (h *Handlers) Relay(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	if !h.Provider.Configured() {
		h.rejectUnconfigured(w, requestID)
		return
	}

	// An empty body decodes as an empty request. A missing prompt is not
	// rejected here; the upstream refuses it and that becomes the generic 500.
	var req types.RelayRequest
	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req)
	if err != nil && !errors.Is(err, io.EOF) {
		h.Logger.Warn("invalid relay request body", "request_id", requestID, "error", err)
		types.WriteRelayError(w, http.StatusBadRequest, types.MsgInvalidBody)
		return
	}

	// Count prompt tokens alongside the upstream call; it only feeds the log line.
	tokensChan := make(chan int, 1)
	go func() {
		defer close(tokensChan)
		defer func() {
			if rec := recover(); rec != nil {
				h.Logger.Warn("token counting panicked", "request_id", requestID, "panic", rec)
			}
		}()
		if h.Tokenizer != nil {
			if tokens, err := h.Tokenizer.CountRequest(&req, h.Provider.Model()); err == nil {
				tokensChan <- tokens
			}
		}
	}()

	result, err := h.Provider.GenerateContent(r.Context(), &req)

	var promptTokens int
	select {
	case tokens, ok := <-tokensChan:
		if ok {
			promptTokens = tokens
		}
	case <-time.After(tokenCountTimeout):
	}

	if err != nil {
		if errors.Is(err, provider.ErrNoAPIKey) {
			h.rejectUnconfigured(w, requestID)
			return
		}
		h.logFailure(requestID, result, promptTokens, err)
		types.WriteRelayError(w, http.StatusInternalServerError, types.MsgUpstreamFailure)
		return
	}

	h.Logger.Info("relay completed",
		"request_id", requestID,
		"provider", h.Provider.Name(),
		"model", result.Model,
		"prompt_tokens", promptTokens,
		"system_instruction", req.HasSystemInstruction(),
		"upstream_status", result.StatusCode,
		"duration_ms", result.Duration.Milliseconds(),
	)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Body)
}

func (h *Handlers) rejectUnconfigured(w http.ResponseWriter, requestID string) {
	h.Logger.Error("GEMINI_API_KEY is not configured; relay request refused", "request_id", requestID)
	types.WriteRelayError(w, http.StatusInternalServerError, types.MsgMissingAPIKey)
}

// logFailure records upstream detail server-side; none of it reaches the caller.
func (h *Handlers) logFailure(requestID string, result *provider.Result, promptTokens int, err error) {
	attrs := []any{
		"request_id", requestID,
		"provider", h.Provider.Name(),
		"prompt_tokens", promptTokens,
		"error", err,
	}
	if result != nil {
		attrs = append(attrs,
			"model", result.Model,
			"upstream_status", result.StatusCode,
			"duration_ms", result.Duration.Milliseconds(),
		)
	}

	var upstreamErr *provider.UpstreamError
	if errors.As(err, &upstreamErr) {
		attrs = append(attrs, "upstream_body", truncate(upstreamErr.Body, maxLoggedBody))
	}

	h.Logger.Error("error calling Gemini API", attrs...)
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "…"
}
