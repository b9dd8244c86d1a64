package timeutils

import "time"

// ClockTime is a time of day in a particular locale, with no date attached.
type ClockTime struct {
	Hour     int
	Minute   int
	Second   int
	Location *time.Location
}

// OnDate returns the absolute time with this clock time on the given date.
func (c *ClockTime) OnDate(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, c.Hour, c.Minute, c.Second, 0, c.Location)
}

// Minutes returns the clock time expressed as minutes past midnight.
func (c *ClockTime) Minutes() int {
	return c.Hour*60 + c.Minute
}
