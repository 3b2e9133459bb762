package sitesearch

import (
	"strings"
	"time"
)

// dateLayouts are the date shapes site generators commonly write into the index.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05 -0700 MST",
	"2006-01-02 15:04:05 -0700",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006-01",
	time.RFC1123Z,
	time.RFC1123,
	"Jan 2, 2006",
}

// ParseDate parses an ISO-ish date. The second return value is false if no known layout matches.
func ParseDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatDate formats raw as "Jan 2, 2006". Unparseable input is returned unchanged.
func FormatDate(raw string) string {
	t, ok := ParseDate(raw)
	if !ok {
		return raw
	}
	return t.Format("Jan 2, 2006")
}

// YearMonth returns the "2006-01" bucket of raw, or "" when raw cannot be parsed.
func YearMonth(raw string) string {
	t, ok := ParseDate(raw)
	if !ok {
		return ""
	}
	return t.Format("2006-01")
}
