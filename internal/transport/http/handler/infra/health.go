package infra

import (
	"net/http"
	"time"

	"github.com/mandalnilabja/promptrelay/internal/types"
	"github.com/mandalnilabja/promptrelay/internal/version"
)

// RootStatus returns JSON status and version information.
// Only whether a credential is configured is reported, never the credential.
func (h *Handlers) RootStatus(w http.ResponseWriter, r *http.Request) {
	types.WriteJSON(w, http.StatusOK, map[string]any{
		"name":           "promptrelay",
		"version":        version.Version,
		"status":         "running",
		"relay":          h.RelayPath,
		"provider":       h.Provider.Name(),
		"model":          h.Provider.Model(),
		"api_key_loaded": h.Provider.Configured(),
		"uptime_seconds": int64(time.Since(h.StartTime).Seconds()),
	})
}

// HealthCheck handler returns the application health status.
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	types.WriteJSON(w, http.StatusOK, map[string]string{
		"status": "active",
		"app":    "promptrelay",
	})
}
