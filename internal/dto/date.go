package dto

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// FlexDate parses a date field from JSON as either date-only ("2006-01-02")
// or an RFC3339 datetime. Date-only values become start of day UTC.
type FlexDate struct{ t *time.Time }

func (d *FlexDate) UnmarshalJSON(data []byte) error {
	var raw *string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil || strings.TrimSpace(*raw) == "" {
		d.t = nil
		return nil
	}
	s := strings.TrimSpace(*raw)
	layouts := []string{
		"2006-01-02",
		time.RFC3339,
		time.RFC3339Nano,
		"2006-01-02T15:04:05",
	}
	for _, layout := range layouts {
		parsed, err := time.Parse(layout, s)
		if err == nil {
			if layout == "2006-01-02" {
				parsed = time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, time.UTC)
			}
			d.t = &parsed
			return nil
		}
	}
	return fmt.Errorf("date must be YYYY-MM-DD or RFC3339 datetime")
}

// Ptr returns the parsed time, or nil if the field was empty.
func (d FlexDate) Ptr() *time.Time { return d.t }
