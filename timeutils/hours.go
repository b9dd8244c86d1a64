package timeutils

import "time"

// FloorHour returns `t` rounded down to the nearest hour boundary.
func FloorHour(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), 0, 0, 0, t.Location())
}

// HourEndingRange returns `n` consecutive hour-ending timestamps starting at
// `first`. An hour-ending timestamp denotes the end of the one-hour interval
// it summarizes, so the range [first, first+1h, ...] covers n hours.
func HourEndingRange(first time.Time, n int) []time.Time {
	times := make([]time.Time, n)
	for i := 0; i < n; i++ {
		times[i] = first.Add(time.Duration(i) * time.Hour)
	}
	return times
}
