package projectdata

import "time"

// now is replaced in tests.
var now = time.Now

// TimestampLayout matches the millisecond UTC timestamps already stored in the
// documents, e.g. 2024-01-15T08:30:00.000Z.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// Timestamp formats t the way document timestamps are stored.
func Timestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// Now returns the current time as a document timestamp.
func Now() string {
	return Timestamp(now())
}

// ParseDate accepts a calendar date (2006-01-02, taken as UTC midnight) or an
// RFC 3339 timestamp.
func ParseDate(s string) (time.Time, bool) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, true
	}
	return time.Time{}, false
}
