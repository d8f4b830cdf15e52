/* timestamp.go
 * Contains the parsing and formatting of match kick-off times
 */

package shared

import (
	"strconv"
	"strings"
	"time"
)

// timestampLayouts are tried in order after plain unix seconds. Layouts without a zone are read as UTC
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04",
	"2006-01-02T15:04",
}

// ParseTimestamp reads a scheduled time as unix seconds, an RFC 3339 timestamp or "YYYY-MM-DD HH:MM" in UTC
func ParseTimestamp(value string) (int64, error) {
	value = strings.TrimSpace(value)
	if seconds, err := strconv.ParseInt(value, 10, 64); err == nil {
		return seconds, nil
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.Unix(), nil
		}
	}
	return 0, invalidInput("time %q is not a unix timestamp or a date such as 2025-06-01 18:00", value)
}

// FormatTimestamp renders unix seconds the way ParseTimestamp reads them back
func FormatTimestamp(seconds int64) string {
	return time.Unix(seconds, 0).UTC().Format("2006-01-02 15:04 MST")
}
