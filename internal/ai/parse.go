package ai

import (
	"encoding/json"
	"fmt"
	"strings"
)

// extractJSONArray pulls a JSON array out of a model response, tolerating
// markdown code fences and surrounding prose.
func extractJSONArray(text string, out any) error {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	startIdx := strings.Index(text, "[")
	if startIdx == -1 {
		return fmt.Errorf("no JSON array found in response")
	}
	endIdx := strings.LastIndex(text, "]")
	if endIdx == -1 || endIdx < startIdx {
		return fmt.Errorf("invalid JSON array in response")
	}
	text = text[startIdx : endIdx+1]

	if err := json.Unmarshal([]byte(text), out); err != nil {
		return fmt.Errorf("unmarshaling json: %w", err)
	}
	return nil
}
