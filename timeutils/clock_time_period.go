package timeutils

import (
	"fmt"
	"time"
)

// ClockTimePeriod is a period of the day defined by local clock time, with no
// date information, e.g. "8am to 12pm". Rafting release windows and smoothing
// preferences are configured this way and then tested against hour-ending
// timestamps.
type ClockTimePeriod struct {
	Start ClockTime `json:"start"`
	End   ClockTime `json:"end"`
}

// Contains returns true if the clock time of `t` lies within the period.
// Both endpoints are inclusive: a release window of "8am to 12pm" covers the
// hour-ending timestamps 08:00 and 12:00.
func (p *ClockTimePeriod) Contains(t time.Time) bool {

	if p.Start.Location.String() != p.End.Location.String() {
		panic("clock time period must start and end in the same timezone")
	}
	if p.End.Minutes() < p.Start.Minutes() {
		// Periods that cross midnight are not supported
		panic(fmt.Sprintf("clock time period ends before it starts: %+v", p))
	}

	// Evaluate in the period's timezone, otherwise the clock time is wrong
	// whenever there is a timezone offset.
	t = t.In(p.Start.Location)
	minutes := t.Hour()*60 + t.Minute()

	return p.Start.Minutes() <= minutes && minutes <= p.End.Minutes()
}
