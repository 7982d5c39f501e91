package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRelayRequest_HasSystemInstruction(t *testing.T) {
	tests := []struct {
		name string
		body string
		want bool
	}{
		{"absent", `{"prompt":"hi"}`, false},
		{"null", `{"prompt":"hi","systemInstruction":null}`, false},
		{"false", `{"prompt":"hi","systemInstruction":false}`, false},
		{"zero", `{"prompt":"hi","systemInstruction":0}`, false},
		{"empty string", `{"prompt":"hi","systemInstruction":""}`, false},
		{"negative zero", `{"prompt":"hi","systemInstruction":-0}`, false},
		{"decimal zero", `{"prompt":"hi","systemInstruction":0.0}`, false},
		{"exponent zero", `{"prompt":"hi","systemInstruction":0e0}`, false},
		{"true", `{"prompt":"hi","systemInstruction":true}`, true},
		{"nonzero number", `{"prompt":"hi","systemInstruction":0.5}`, true},
		{"empty array", `{"prompt":"hi","systemInstruction":[]}`, true},
		{"object", `{"prompt":"hi","systemInstruction":{"parts":[{"text":"be terse"}]}}`, true},
		{"empty object", `{"prompt":"hi","systemInstruction":{}}`, true},
		{"string", `{"prompt":"hi","systemInstruction":"be terse"}`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req RelayRequest
			require.NoError(t, json.Unmarshal([]byte(tt.body), &req))
			assert.Equal(t, tt.want, req.HasSystemInstruction())
		})
	}
}

func TestNewGenerateContentRequest_PromptOnly(t *testing.T) {
	payload := NewGenerateContentRequest(&RelayRequest{Prompt: "hello"})

	got, err := json.Marshal(payload)
	require.NoError(t, err)

	assert.JSONEq(t,
		`{"contents":[{"parts":[{"text":"hello"}]}],"generationConfig":{"responseMimeType":"application/json"}}`,
		string(got))
	assert.NotContains(t, string(got), "systemInstruction")
}

func TestNewGenerateContentRequest_NullSystemInstructionOmitted(t *testing.T) {
	var req RelayRequest
	require.NoError(t, json.Unmarshal([]byte(`{"prompt":"hello","systemInstruction":null}`), &req))

	got, err := json.Marshal(NewGenerateContentRequest(&req))
	require.NoError(t, err)

	assert.NotContains(t, string(got), "systemInstruction")
}

func TestNewGenerateContentRequest_SystemInstructionVerbatim(t *testing.T) {
	instruction := `{"role":"system","parts":[{"text":"Reply as JSON"}],"extra":[1,2,{"nested":true}]}`

	var req RelayRequest
	require.NoError(t, json.Unmarshal([]byte(`{"prompt":"hello","systemInstruction":`+instruction+`}`), &req))

	got, err := json.Marshal(NewGenerateContentRequest(&req))
	require.NoError(t, err)

	var decoded map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(got, &decoded))
	assert.JSONEq(t, instruction, string(decoded["systemInstruction"]))
}
