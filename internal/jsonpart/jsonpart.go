// Package jsonpart decodes JSON payloads out of model responses that may be
// wrapped in markdown code fences or surrounded by prose.
package jsonpart

import (
	"encoding/json"
	"fmt"
	"strings"
)

// stripFences removes a ```json ... ``` or ``` ... ``` wrapper, returning
// the inner content, or the input unchanged when no fence is present.
func stripFences(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	lines := strings.Split(text, "\n")
	if len(lines) < 3 {
		return text
	}
	end := len(lines) - 1
	for i := len(lines) - 1; i > 0; i-- {
		if strings.TrimSpace(lines[i]) == "```" {
			end = i
			break
		}
	}
	return strings.Join(lines[1:end], "\n")
}

// extractObject returns the substring from the first '{' to the last '}'.
func extractObject(text string) (string, error) {
	start := strings.Index(text, "{")
	if start == -1 {
		return "", fmt.Errorf("no JSON object found")
	}
	end := strings.LastIndex(text, "}")
	if end < start {
		return "", fmt.Errorf("no closing brace found")
	}
	return text[start : end+1], nil
}

// Decode strips fences from a raw model response, extracts the JSON object,
// and unmarshals it into T.
func Decode[T any](raw string) (T, error) {
	var result T
	payload, err := extractObject(stripFences(raw))
	if err != nil {
		return result, fmt.Errorf("%w (raw length: %d)", err, len(raw))
	}
	if err := json.Unmarshal([]byte(payload), &result); err != nil {
		preview := payload
		if len(preview) > 200 {
			preview = preview[:200] + "..."
		}
		return result, fmt.Errorf("invalid JSON: %w (text: %s)", err, preview)
	}
	return result, nil
}
