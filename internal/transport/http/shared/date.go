package shared

import (
	"fmt"
	"time"
)

var dateFormats = []string{time.RFC3339, "2006-01-02"}

// ParseDate accepts RFC3339 or a bare calendar day. Empty input
// yields the zero time so optional filters stay optional.
func ParseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	for _, layout := range dateFormats {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date %q", value)
}
