package common

import "time"

const DayLayout = "2006-01-02"

// ParseDay parses a YYYY-MM-DD query value. An empty string yields the
// zero time so callers can substitute their own default day.
func ParseDay(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(DayLayout, s)
}

func FormatDay(t time.Time) string {
	return t.Format(DayLayout)
}
