package export

import (
	"encoding/json"
	"testing"
)

func TestExtractText(t *testing.T) {
	cases := []struct {
		name    string
		content string
		want    string
	}{
		{"plain string", `"just text"`, "just text"},
		{"text field", `{"text":"the body","format":"plain"}`, "the body"},
		{"array of strings", `["first","second"]`, "first\nsecond"},
		{"nested blocks", `{"blocks":[{"text":"one"},{"text":"two"}]}`, "one\ntwo"},
		{"mixed object", `{"summary":"done","items":["a","b"]}`, "a\nb\ndone"},
		{"numbers skipped", `{"hours":8,"note":"worked"}`, "worked"},
		{"empty object", `{}`, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ExtractText(json.RawMessage(tc.content))
			if got != tc.want {
				t.Errorf("ExtractText(%s) = %q, want %q", tc.content, got, tc.want)
			}
		})
	}
}

func TestExtractTextInvalidJSON(t *testing.T) {
	got := ExtractText(json.RawMessage("not json"))
	if got != "not json" {
		t.Errorf("invalid payload should pass through, got %q", got)
	}
}
