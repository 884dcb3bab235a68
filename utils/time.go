// Package utils provides utility functions for the application.
package utils

import (
	"time"
)

// DateLayout is the canonical calendar-day format used for rate lookups and map keys.
const DateLayout = "2006-01-02"

// UTCNow returns the current time in UTC
func UTCNow() time.Time {
	return time.Now().UTC()
}

// UTCNowPtr returns a pointer to the current time in UTC
func UTCNowPtr() *time.Time {
	now := UTCNow()
	return &now
}

// UTCNowAdd returns the current UTC time plus the given duration
func UTCNowAdd(d time.Duration) time.Time {
	return UTCNow().Add(d)
}

// UTCNowRFC3339 returns the current UTC time in RFC3339 format
func UTCNowRFC3339() string {
	return UTCNow().Format(time.RFC3339)
}

// IsExpired checks if the given time is in the past (expired)
func IsExpired(t time.Time) bool {
	return UTCNow().After(t)
}

// IsExpiredPtr checks if the given time pointer is in the past (expired)
func IsExpiredPtr(t *time.Time) bool {
	if t == nil {
		return false
	}
	return IsExpired(*t)
}

// DayKey formats a time as its calendar-day key (yyyy-MM-dd).
func DayKey(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDay parses a yyyy-MM-dd calendar day.
func ParseDay(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// TruncateToDay strips the time-of-day component, keeping the calendar day in UTC.
func TruncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// EachDay calls fn once per calendar day from `from` to `to` inclusive.
// A reversed range yields no calls.
func EachDay(from, to time.Time, fn func(day time.Time)) {
	for d := TruncateToDay(from); !d.After(TruncateToDay(to)); d = d.AddDate(0, 0, 1) {
		fn(d)
	}
}

// IsWeekend reports whether the day is a Saturday or Sunday.
func IsWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
