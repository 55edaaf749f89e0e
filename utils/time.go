// Package utils provides utility functions for the application.
package utils

import (
	"time"
)

// DateLayout is the calendar-date format used across the catalog
// (release dates in CSV sources and API payloads).
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

// UTCNowRFC3339 returns the current UTC time in RFC3339 format
func UTCNowRFC3339() string {
	return UTCNow().Format(time.RFC3339)
}

// FormatDate renders a time as a calendar date, dropping the time component
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}
