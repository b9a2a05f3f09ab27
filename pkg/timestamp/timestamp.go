// Package timestamp converts between ISO 8601 text, as used by the interop
// server, and the epoch seconds/nanoseconds pairs carried by vehicle records.
package timestamp

import (
	"fmt"
	"strings"
	"time"
)

// TimePoint is an instant as whole seconds since the Unix epoch plus a
// sub-second nanosecond part in [0, 1e9).
type TimePoint struct {
	Secs  int64 `json:"secs"`
	Nsecs int64 `json:"nsecs"`
}

// layouts are tried in order against upper-cased text, so a lowercase
// "t" separator or "z" zone parse too. Fractional seconds are accepted
// after the seconds field even though no layout spells them out.
//
// Extended (2015-06-14T18:18:55) and basic (20150614T181855) calendar
// forms are accepted with a T or space separator, with or without
// seconds, and with a Z, ±hh:mm, ±hhmm or ±hh offset. Week dates
// (2015-W24-7), ordinal dates (2015-165), hour-only times and day-first
// text (14/06/2015) are rejected: the server never sends them and
// guessing at them risks a silently wrong instant.
var layouts = []string{
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02T15:04:05Z0700",
	"2006-01-02 15:04:05Z0700",
	"2006-01-02T15:04:05Z07",
	"2006-01-02 15:04:05Z07",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04Z07:00",
	"2006-01-02 15:04Z07:00",
	"2006-01-02T15:04Z0700",
	"2006-01-02 15:04Z0700",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",

	"20060102T150405Z07:00",
	"20060102T150405Z0700",
	"20060102T150405",
	"20060102T1504Z0700",
	"20060102T1504",
	"20060102",
}

// ParseError reports text that is not a recognizable ISO 8601 timestamp.
type ParseError struct {
	Text string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("unrecognized timestamp %q", e.Text)
}

// Parse converts ISO 8601 text to a TimePoint.
//
// Text without a UTC offset is taken to be UTC. The nanosecond part is
// the microsecond part scaled by 1000; anything finer is truncated.
//
// Example:
//
//	tp, err := timestamp.Parse("2015-06-14 18:18:55.642000+00:00")
//	// tp == TimePoint{Secs: 1434305935, Nsecs: 642000000}
func Parse(text string) (TimePoint, error) {
	t, err := ParseTime(text)
	if err != nil {
		return TimePoint{}, err
	}
	return FromTime(t), nil
}

// ParseTime parses ISO 8601 text into a UTC time.Time.
func ParseTime(text string) (time.Time, error) {
	trimmed := strings.ToUpper(strings.TrimSpace(text))
	if trimmed == "" {
		return time.Time{}, &ParseError{Text: text}
	}

	for _, layout := range layouts {
		// time.Parse defaults to UTC when the layout has no zone
		if t, err := time.Parse(layout, trimmed); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, &ParseError{Text: text}
}

// FromTime converts a time.Time to a TimePoint at microsecond resolution.
func FromTime(t time.Time) TimePoint {
	micros := int64(t.Nanosecond() / 1000)
	return TimePoint{
		Secs:  t.Unix(),
		Nsecs: micros * 1000,
	}
}

// Time returns the TimePoint as a UTC time.Time.
func (tp TimePoint) Time() time.Time {
	return time.Unix(tp.Secs, tp.Nsecs).UTC()
}

// IsZero reports whether tp is the epoch.
func (tp TimePoint) IsZero() bool {
	return tp.Secs == 0 && tp.Nsecs == 0
}

// String formats the TimePoint as RFC 3339 with microseconds.
func (tp TimePoint) String() string {
	return tp.Time().Format("2006-01-02T15:04:05.000000Z07:00")
}
