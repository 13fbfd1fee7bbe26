package catalog

import (
	"encoding/json"
	"strings"
)

// FlattenOCR normalizes a stored ocr_lines value into a single display
// string. OCR engines store a JSON array of line objects; older rows may
// hold a single object or plain text.
//
//   - JSON array: the "text" of each object element (and any bare string
//     elements) joined with " | ".
//   - JSON object: its "text" value, or empty when missing.
//   - Anything else, including malformed JSON, passes through unchanged.
func FlattenOCR(raw string) string {
	text := strings.TrimSpace(raw)
	if text == "" {
		return ""
	}

	if !strings.HasPrefix(text, "[") && !strings.HasPrefix(text, "{") {
		return raw
	}

	var parsed any
	if err := json.Unmarshal([]byte(text), &parsed); err != nil {
		return raw
	}

	switch v := parsed.(type) {
	case []any:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			switch line := item.(type) {
			case map[string]any:
				if s, ok := line["text"].(string); ok && s != "" {
					parts = append(parts, s)
				}
			case string:
				parts = append(parts, line)
			}
		}
		return strings.Join(parts, " | ")
	case map[string]any:
		if s, ok := v["text"].(string); ok {
			return s
		}
		return ""
	default:
		return raw
	}
}
