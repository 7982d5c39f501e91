package types

import "encoding/json"

// ResponseMimeTypeJSON asks the upstream for a structured JSON response.
const ResponseMimeTypeJSON = "application/json"

// GenerateContentRequest is the body of a Gemini generateContent call.
type GenerateContentRequest struct {
	Contents          []Content        `json:"contents"`
	GenerationConfig  GenerationConfig `json:"generationConfig"`
	SystemInstruction json.RawMessage  `json:"systemInstruction,omitempty"`
}

// Content is one turn of the conversation.
type Content struct {
	Parts []Part `json:"parts"`
}

// Part is a single piece of content. Only text is relayed.
type Part struct {
	Text string `json:"text"`
}

// GenerationConfig controls upstream output formatting.
type GenerationConfig struct {
	ResponseMimeType string `json:"responseMimeType"`
}

// NewGenerateContentRequest builds the upstream payload for a relay request:
// the prompt is the sole content part and the system instruction, if any,
// is copied through untouched.
func NewGenerateContentRequest(req *RelayRequest) *GenerateContentRequest {
	payload := &GenerateContentRequest{
		Contents: []Content{
			{Parts: []Part{{Text: req.Prompt}}},
		},
		GenerationConfig: GenerationConfig{
			ResponseMimeType: ResponseMimeTypeJSON,
		},
	}
	if req.HasSystemInstruction() {
		payload.SystemInstruction = req.SystemInstruction
	}
	return payload
}
