package tokenizer

import (
	"encoding/json"
	"strings"

	"github.com/mandalnilabja/promptrelay/internal/types"
)

// CountRequest counts tokens for the prompt and any text found in the
// system instruction. The instruction's shape is upstream-defined, so every
// "text" string inside it is counted.
func (t *TiktokenTokenizer) CountRequest(req *types.RelayRequest, model string) (int, error) {
	var sb strings.Builder
	sb.WriteString(req.Prompt)

	if req.HasSystemInstruction() {
		var instruction any
		if err := json.Unmarshal(req.SystemInstruction, &instruction); err == nil {
			for _, text := range collectText(instruction) {
				sb.WriteByte('\n')
				sb.WriteString(text)
			}
		}
	}

	return t.CountTokens(sb.String(), model)
}

// collectText walks a decoded JSON value and returns every string held
// under a "text" key, plus the value itself when it is a bare string.
func collectText(v any) []string {
	switch val := v.(type) {
	case string:
		return []string{val}
	case []any:
		var out []string
		for _, item := range val {
			out = append(out, collectText(item)...)
		}
		return out
	case map[string]any:
		var out []string
		for key, item := range val {
			if s, ok := item.(string); ok {
				if key == "text" {
					out = append(out, s)
				}
				continue
			}
			out = append(out, collectText(item)...)
		}
		return out
	}
	return nil
}
