package utils

import (
	"fmt"
	"time"
)

// UnixToDate converts a Unix timestamp in seconds to a calendar-day key in
// the form "day-month-year" without zero padding, e.g. "3-7-2024". The day
// boundary is computed in UTC so the same timestamp always yields the same
// key regardless of where the service runs.
func UnixToDate(timestamp int64) string {
	t := time.Unix(timestamp, 0).UTC()
	return fmt.Sprintf("%d-%d-%d", t.Day(), int(t.Month()), t.Year())
}
