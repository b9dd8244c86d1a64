package timeutils

import (
	"fmt"
	"time"
)

// Days is a string representation of the different ways to configure days.
// Only the three options below are needed to express the rafting schedules.
type Days string

const (
	WeekendDays Days = "weekends"
	WeekdayDays Days = "weekdays"
	AllDays     Days = "all"
)

// IsWeekday returns true if the day is Mon-Fri inclusive.
func IsWeekday(t time.Time) bool {
	day := t.Weekday()
	return day != time.Saturday && day != time.Sunday
}

// DayedPeriod is a clock-time period that applies only on particular days,
// e.g. "8am to 12pm on weekends".
type DayedPeriod struct {
	ClockTimePeriod
	Days Days `json:"days"`
}

// Contains returns true if `t` falls on one of the configured days and
// within the clock-time period.
func (d *DayedPeriod) Contains(t time.Time) bool {
	if !d.IsOnDay(t) {
		return false
	}
	return d.ClockTimePeriod.Contains(t)
}

// IsOnDay returns true if `t` is on one of the days specified by `d`. The
// day is evaluated in the period's timezone: "2024-04-06T23:30:00Z" is a
// Friday in UTC but a Saturday in BST.
func (d *DayedPeriod) IsOnDay(t time.Time) bool {
	t = t.In(d.Start.Location)
	switch d.Days {
	case AllDays:
		return true
	case WeekdayDays:
		return IsWeekday(t)
	case WeekendDays:
		return !IsWeekday(t)
	default:
		panic(fmt.Sprintf("unknown day specification: '%s'", d.Days))
	}
}
