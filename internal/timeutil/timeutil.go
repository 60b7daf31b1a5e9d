// Package timeutil normalizes arbitrary datetime representations into
// canonical UTC-aware instants and renders them in the wire format.
package timeutil

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidTimestamp indicates a value that is neither empty nor a
// parseable ISO-8601 datetime.
var ErrInvalidTimestamp = errors.New("invalid timestamp")

// wireLayout renders instants as YYYY-MM-DDTHH:MM:SS.ffffff with a literal
// "Z" suffix (the Z07:00 verb prints "Z" for a zero offset).
const wireLayout = "2006-01-02T15:04:05.000000Z07:00"

// Layouts carrying explicit offset information. Parsed as-is and converted
// to UTC.
var awareLayouts = []string{
	"2006-01-02T15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02T15:04Z07:00",
	"2006-01-02 15:04Z07:00",
}

// Layouts with no offset information ("naive"). Interpreted as process-local
// wall-clock time, then converted to UTC. Minute precision is accepted the
// same way full ISO-8601 is.
var naiveLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

// Now returns the current UTC instant, truncated to microsecond precision to
// match both the wire format and the timestamptz columns it round-trips
// through.
func Now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// Normalize parses an ISO-8601 datetime string into a UTC instant.
//
// An empty (or all-whitespace) value returns (nil, nil) so the caller decides
// the default. A trailing literal "Z" is treated as a +00:00 offset. A value
// with no offset is interpreted as local wall-clock time using the process
// timezone at call time and converted to UTC; this matches the behavior
// existing API clients depend on, at the cost of being ambiguous across DST
// transitions and deployment timezones.
func Normalize(value string) (*time.Time, error) {
	s := strings.TrimSpace(value)
	if s == "" {
		return nil, nil
	}

	if strings.HasSuffix(s, "Z") {
		s = s[:len(s)-1] + "+00:00"
	}

	for _, layout := range awareLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			u := t.UTC()
			return &u, nil
		}
	}

	for _, layout := range naiveLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			u := t.UTC()
			return &u, nil
		}
	}

	return nil, fmt.Errorf("%w: %q", ErrInvalidTimestamp, value)
}

// ToUTC converts an aware instant to UTC without reinterpreting it.
func ToUTC(t time.Time) time.Time {
	return t.UTC()
}

// FormatZ serializes an instant in the wire form, e.g.
// "2024-03-01T10:00:00.000000Z".
func FormatZ(t time.Time) string {
	return t.UTC().Format(wireLayout)
}
