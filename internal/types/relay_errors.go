package types

import (
	"encoding/json"
	"net/http"
)

// Fixed messages returned to relay callers. They never carry upstream detail.
const (
	MsgMissingAPIKey   = "Server is not configured correctly. API key is missing."
	MsgUpstreamFailure = "Failed to get a response from the Gemini API."
	MsgInvalidBody     = "Invalid request body."
)

// RelayError is the error body returned by the relay endpoint.
type RelayError struct {
	Error string `json:"error"`
}

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// WriteRelayError writes a {"error": message} body with the given status.
func WriteRelayError(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, RelayError{Error: message})
}
