package pattern

import (
	"strings"
	"time"
)

// timestampLayouts are tried in order. Go accepts fractional seconds
// after the seconds field for all of them, so each layout covers input
// with and without sub-second precision.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTimestamp parses a loosely typed timestamp value from a logbook
// record. A trailing literal "Z" is rewritten to "+00:00" before
// parsing, and offsets are optional. The second return is false for
// empty, null, non-string or otherwise unparseable input; callers
// treat that as "no instant", never as an error.
func ParseTimestamp(v any) (time.Time, bool) {
	s, ok := v.(string)
	if !ok || s == "" {
		return time.Time{}, false
	}

	if strings.HasSuffix(s, "Z") {
		s = s[:len(s)-1] + "+00:00"
	}

	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
