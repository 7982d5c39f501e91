package types

import (
	"bytes"
	"encoding/json"
)

// RelayRequest is the body a caller posts to the relay endpoint.
type RelayRequest struct {
	Prompt string `json:"prompt"`

	// SystemInstruction is forwarded verbatim; its shape is defined upstream.
	SystemInstruction json.RawMessage `json:"systemInstruction,omitempty"`
}

// HasSystemInstruction reports whether a usable system instruction was supplied.
// null, false, "" and any numeric zero (0, -0, 0.0, 0e0) count as absent.
func (r *RelayRequest) HasSystemInstruction() bool {
	raw := bytes.TrimSpace(r.SystemInstruction)
	if len(raw) == 0 {
		return false
	}

	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		// Not decodable as a plain value (e.g. a number out of float64 range);
		// forward it untouched.
		return true
	}
	switch val := v.(type) {
	case nil:
		return false
	case bool:
		return val
	case string:
		return val != ""
	case float64:
		return val != 0
	}
	return true
}
