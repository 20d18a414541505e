package export

import (
	"encoding/json"
	"sort"
	"strings"
)

// ExtractText flattens an opaque report content blob to plain text.
// Strings pass through, a "text" field wins inside objects, arrays
// and remaining object values are walked recursively; everything is
// joined with newlines.
func ExtractText(content json.RawMessage) string {
	var value any
	if err := json.Unmarshal(content, &value); err != nil {
		return string(content)
	}
	var parts []string
	walkText(value, &parts)
	return strings.Join(parts, "\n")
}

func walkText(value any, parts *[]string) {
	switch v := value.(type) {
	case string:
		if v != "" {
			*parts = append(*parts, v)
		}
	case []any:
		for _, item := range v {
			walkText(item, parts)
		}
	case map[string]any:
		if text, ok := v["text"].(string); ok {
			if text != "" {
				*parts = append(*parts, text)
			}
			return
		}
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			walkText(v[k], parts)
		}
	case float64:
		// Bare numbers carry no prose, skip them.
	case bool, nil:
	}
}
