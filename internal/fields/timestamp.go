package fields

import (
	"regexp"
	"time"
)

// structuredLayouts are the non-RFC3339 timestamp layouts accepted in
// structured timestamp fields, tried in order.
var structuredLayouts = []string{
	"2006-01-02 15:04:05.000000",
	"2006-01-02 15:04:05.000",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
}

// Timestamp-shaped substrings matched against message/raw text, in
// priority order: full date+time, bare time, bare date.
var (
	dateTimePattern = regexp.MustCompile(`\d{4}-\d{2}-\d{2}[T\s]\d{2}:\d{2}:\d{2}(?:\.\d+)?`)
	timeOnlyPattern = regexp.MustCompile(`\b\d{2}:\d{2}:\d{2}\b`)
	dateOnlyPattern = regexp.MustCompile(`\b\d{4}-\d{2}-\d{2}\b`)
)

var textLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.000000",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.000000",
	"2006-01-02 15:04:05",
}

// Timestamp infers the record timestamp from the raw field map and, as
// a fallback, from free text (the message or the original line).
//
// Resolution order:
//  1. structured timestamp field in RFC3339/ISO-8601 form
//  2. structured timestamp field in a known non-ISO layout
//  3. timestamp-shaped substring in the free text
//  4. absent: ok is false and the caller applies its own fallback
//     (carry-forward from the last derivable line, then wall clock)
//
// The now argument anchors date-less times (bare "15:04:05") to a day;
// it is never returned as a default.
func Timestamp(data map[string]any, text string, now time.Time) (time.Time, bool) {
	if raw, ok := LookupString(data, FieldTimestamp); ok {
		if ts, err := time.Parse(time.RFC3339Nano, raw); err == nil {
			return ts, true
		}
		if ts, err := time.Parse(time.RFC3339, raw); err == nil {
			return ts, true
		}
		for _, layout := range structuredLayouts {
			if ts, err := time.Parse(layout, raw); err == nil {
				return ts, true
			}
		}
	}

	// Structured field absent or unparseable: scan the message before
	// falling back to the whole line.
	if msg, ok := LookupString(data, FieldMessage); ok {
		if ts, ok := TimestampFromText(msg, now); ok {
			return ts, true
		}
	}
	return TimestampFromText(text, now)
}

// TimestampFromText extracts a timestamp-shaped substring from free
// text. Bare times are anchored to now's date; bare dates resolve to
// midnight UTC.
func TimestampFromText(text string, now time.Time) (time.Time, bool) {
	if m := dateTimePattern.FindString(text); m != "" {
		for _, layout := range textLayouts {
			if ts, err := time.Parse(layout, m); err == nil {
				return ts, true
			}
		}
	}
	if m := timeOnlyPattern.FindString(text); m != "" {
		if clock, err := time.Parse("15:04:05", m); err == nil {
			y, mo, d := now.Date()
			return time.Date(y, mo, d, clock.Hour(), clock.Minute(), clock.Second(), 0, now.Location()), true
		}
	}
	if m := dateOnlyPattern.FindString(text); m != "" {
		if ts, err := time.Parse("2006-01-02", m); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}
