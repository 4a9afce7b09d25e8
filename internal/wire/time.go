package wire

import (
	"encoding/json"
	"time"
)

// isoLayouts are the timestamp shapes accepted on the wire, tried in order.
// Offsets are honoured; naive values are taken as UTC.
var isoLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
}

// ParseISO parses an ISO-8601 timestamp in any of the accepted layouts.
func ParseISO(s string) (time.Time, error) {
	var firstErr error
	for _, layout := range isoLayouts {
		t, err := time.ParseInLocation(layout, s, time.UTC)
		if err == nil {
			return t, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return time.Time{}, firstErr
}

// ISOTime is a time.Time with lenient ISO-8601 decoding. A value that is
// null, missing, or unparseable decodes as the zero time; the receiver
// treats that as absent and substitutes the arrival time. Encoding uses the
// standard RFC 3339 form.
type ISOTime struct {
	time.Time
}

// NewISOTime wraps t for use in an Event.
func NewISOTime(t time.Time) *ISOTime {
	return &ISOTime{Time: t}
}

func (t *ISOTime) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		t.Time = time.Time{}
		return nil
	}
	if s == "" {
		t.Time = time.Time{}
		return nil
	}
	parsed, err := ParseISO(s)
	if err != nil {
		t.Time = time.Time{}
		return nil
	}
	t.Time = parsed
	return nil
}
