package typeutils

import (
	"fmt"
	"strconv"
	"time"
)

// ReformatTimestamp normalizes the timestamp shapes the CRM API returns
// (epoch milliseconds as number or string, or an ISO-8601 string) into UTC.
func ReformatTimestamp(value any) (time.Time, error) {
	switch v := value.(type) {
	case nil:
		return time.Time{}, fmt.Errorf("nil timestamp")
	case time.Time:
		return v.UTC(), nil
	case float64:
		return UnixMS(int64(v)), nil
	case int64:
		return UnixMS(v), nil
	case string:
		if ms, err := strconv.ParseInt(v, 10, 64); err == nil {
			return UnixMS(ms), nil
		}
		for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05.000000Z"} {
			if parsed, err := time.Parse(layout, v); err == nil {
				return parsed.UTC(), nil
			}
		}
		return time.Time{}, fmt.Errorf("unparseable timestamp %q", v)
	default:
		return time.Time{}, fmt.Errorf("unsupported timestamp type %T", value)
	}
}

// FormatTimestamp renders a watermark value as ISO-8601 UTC.
func FormatTimestamp(instant time.Time) string {
	return instant.UTC().Format(time.RFC3339)
}

// UnixMS converts epoch milliseconds to UTC time.
func UnixMS(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

// ToUnixMS converts a time to epoch milliseconds.
func ToUnixMS(instant time.Time) int64 {
	return instant.UnixMilli()
}
