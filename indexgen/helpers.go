package indexgen

import (
	"fmt"
	"strings"
	"time"

	"github.com/hypergopher/sitesearch"
)

// anyToStringSlice converts a front matter value to a []string. A single string is split on commas.
func anyToStringSlice(value any) []string {
	switch val := value.(type) {
	case string:
		var result []string
		for _, part := range strings.Split(val, ",") {
			if s := strings.TrimSpace(part); s != "" {
				result = append(result, s)
			}
		}
		return result
	case []string:
		return val
	case []any:
		var result []string
		for _, v := range val {
			if s, ok := v.(string); ok && strings.TrimSpace(s) != "" {
				result = append(result, strings.TrimSpace(s))
			}
		}
		return result
	}

	return nil
}

// anyToTime converts a front matter date. Missing dates yield the zero time. Values that are not dates
// yield ErrUnrecognisedDate.
func anyToTime(value any) (time.Time, error) {
	switch val := value.(type) {
	case nil:
		return time.Time{}, nil
	case time.Time:
		return val, nil
	case string:
		if strings.TrimSpace(val) == "" {
			return time.Time{}, nil
		}
		if t, ok := sitesearch.ParseDate(val); ok {
			return t, nil
		}
		return time.Time{}, fmt.Errorf("%w %q", ErrUnrecognisedDate, val)
	}

	return time.Time{}, fmt.Errorf("%w: unsupported type %T", ErrUnrecognisedDate, value)
}
