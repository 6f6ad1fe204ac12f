package driver

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/streamzip/tap-hubspot/utils/typeutils"
)

// formatID renders an entity identifier for use in a URL path or query
// parameter; JSON numbers arrive as float64 and must not be printed in
// exponent form.
func formatID(value any) string {
	if f, ok := value.(float64); ok && f == math.Trunc(f) {
		return strconv.FormatInt(int64(f), 10)
	}
	return fmt.Sprint(value)
}

// lookupField resolves a field at the record's top level or under its
// properties envelope, unwrapping {value: ...} property objects.
func lookupField(record map[string]any, field string) (any, bool) {
	if value, found := record[field]; found {
		return unwrapValue(value), true
	}
	if properties, ok := record["properties"].(map[string]any); ok {
		if value, found := properties[field]; found {
			return unwrapValue(value), true
		}
	}
	return nil, false
}

func unwrapValue(value any) any {
	if envelope, ok := value.(map[string]any); ok {
		if inner, found := envelope["value"]; found {
			return inner
		}
	}
	return value
}

// modifiedTime returns the record's modification instant from the first of
// the given fields that is present and parseable. Records without one are
// treated as always modified by the callers.
func modifiedTime(record map[string]any, fields ...string) (time.Time, bool) {
	for _, field := range fields {
		value, found := lookupField(record, field)
		if !found {
			continue
		}
		if instant, err := typeutils.ReformatTimestamp(value); err == nil {
			return instant, true
		}
	}
	return time.Time{}, false
}
