// Package rafting produces the per-hour recreational-window flags consumed
// by the optimizer. Release windows depend on the water-year type, the day
// of week, whether the date falls before or after Labor Day, and a list of
// early-release Saturdays that start at 04:00 local.
package rafting

import (
	"time"

	"github.com/pcwa/abayscheduler/timeutils"
)

// WaterYearType classifies the water year per the state bulletin; wetter
// years carry more weekday releases.
type WaterYearType string

const (
	Wet             WaterYearType = "Wet"
	AboveNormal     WaterYearType = "Above Normal"
	BelowNormal     WaterYearType = "Below Normal"
	Dry             WaterYearType = "Dry"
	Critical        WaterYearType = "Critical"
	ExtremeCritical WaterYearType = "Extreme Critical"
)

// Date is a civil date, used for the early-release Saturday list.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// windowSpec is a release window template: the days it applies to and its
// local start/end clock times. An empty day list means no releases.
type windowSpec struct {
	days       []time.Weekday
	start, end timeutils.ClockTime
}

func at(hour int) timeutils.ClockTime {
	return timeutils.ClockTime{Hour: hour}
}

// scheduleSpec pairs the weekday and weekend windows for one part of the
// season.
type scheduleSpec struct {
	weekdays windowSpec
	weekends windowSpec
}

type seasonSpec struct {
	mainSeason   scheduleSpec
	postLaborDay scheduleSpec
}

var weekendWindow = windowSpec{
	days:  []time.Weekday{time.Saturday, time.Sunday},
	start: at(8),
	end:   at(12),
}

// Release schedules by water-year type. The weekend window is the same
// everywhere; drier years trim weekday releases and shorten the window.
var schedules = map[WaterYearType]seasonSpec{
	Wet: {
		mainSeason: scheduleSpec{
			weekdays: windowSpec{days: []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday}, start: at(9), end: at(12)},
			weekends: weekendWindow,
		},
		postLaborDay: scheduleSpec{
			weekdays: windowSpec{days: []time.Weekday{time.Tuesday, time.Wednesday, time.Thursday, time.Friday}, start: at(9), end: at(12)},
			weekends: weekendWindow,
		},
	},
	AboveNormal: {
		mainSeason: scheduleSpec{
			weekdays: windowSpec{days: []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday}, start: at(9), end: at(12)},
			weekends: weekendWindow,
		},
		postLaborDay: scheduleSpec{
			weekdays: windowSpec{days: []time.Weekday{time.Tuesday, time.Wednesday, time.Friday}, start: at(9), end: at(12)},
			weekends: weekendWindow,
		},
	},
	BelowNormal: {
		mainSeason: scheduleSpec{
			weekdays: windowSpec{days: []time.Weekday{time.Tuesday, time.Wednesday, time.Thursday, time.Friday}, start: at(9), end: at(12)},
			weekends: weekendWindow,
		},
		postLaborDay: scheduleSpec{
			weekdays: windowSpec{days: []time.Weekday{time.Tuesday, time.Wednesday, time.Friday}, start: at(9), end: at(12)},
			weekends: weekendWindow,
		},
	},
	Dry: {
		mainSeason: scheduleSpec{
			weekdays: windowSpec{days: []time.Weekday{time.Tuesday, time.Wednesday, time.Thursday}, start: at(8), end: at(11)},
			weekends: weekendWindow,
		},
		postLaborDay: scheduleSpec{
			weekdays: windowSpec{days: []time.Weekday{time.Wednesday, time.Friday}, start: at(8), end: at(11)},
			weekends: weekendWindow,
		},
	},
	Critical: {
		mainSeason: scheduleSpec{
			weekdays: windowSpec{days: []time.Weekday{time.Wednesday, time.Friday}, start: at(8), end: at(11)},
			weekends: weekendWindow,
		},
		postLaborDay: scheduleSpec{
			weekdays: windowSpec{},
			weekends: windowSpec{days: []time.Weekday{time.Saturday}, start: at(8), end: at(12)},
		},
	},
	ExtremeCritical: {
		mainSeason: scheduleSpec{
			weekdays: windowSpec{days: []time.Weekday{time.Wednesday}, start: at(8), end: at(11)},
			weekends: weekendWindow,
		},
		postLaborDay: scheduleSpec{
			weekdays: windowSpec{},
			weekends: windowSpec{},
		},
	},
}

// defaultEarlyReleaseSaturdays lists the event Saturdays with 04:00 starts.
var defaultEarlyReleaseSaturdays = []Date{
	{2025, time.May, 24}, // Memorial Day weekend
	{2025, time.May, 31},
	{2025, time.June, 7},
	{2025, time.June, 21},
	{2025, time.June, 28}, // Western States weekend
	{2025, time.July, 5},
	{2025, time.July, 12}, // Tevis Cup weekend
	{2025, time.July, 19},
	{2025, time.August, 2},
	{2025, time.August, 16},
	{2025, time.September, 20},
}

const earlyReleaseStartHour = 4

// Calendar answers "is this hour inside a recreational release window".
type Calendar struct {
	WaterYear             WaterYearType
	Location              *time.Location
	EarlyReleaseSaturdays []Date

	// SeasonEndMonth/Day close the season; the opening is the Saturday of
	// Memorial Day weekend.
	SeasonEndMonth time.Month
	SeasonEndDay   int
}

// NewCalendar returns a calendar for the given water-year type in the given
// locale, carrying the default early-release Saturdays and a Sept 30 season
// end.
func NewCalendar(wyt WaterYearType, loc *time.Location) Calendar {
	return Calendar{
		WaterYear:             wyt,
		Location:              loc,
		EarlyReleaseSaturdays: defaultEarlyReleaseSaturdays,
		SeasonEndMonth:        time.September,
		SeasonEndDay:          30,
	}
}

// WindowContains reports whether the hour-ending timestamp `t` falls inside
// a release window.
func (c *Calendar) WindowContains(t time.Time) bool {
	local := t.In(c.Location)
	year := local.Year()

	seasonStart := c.localMidnight(MemorialDayWeekendStart(year))
	seasonEnd := time.Date(year, c.SeasonEndMonth, c.SeasonEndDay, 0, 0, 0, 0, c.Location)
	day := time.Date(year, local.Month(), local.Day(), 0, 0, 0, 0, c.Location)
	if day.Before(seasonStart) || day.After(seasonEnd) {
		return false
	}

	season, ok := schedules[c.WaterYear]
	if !ok {
		return false
	}
	// Labor Day itself still runs the main-season schedule.
	sched := season.mainSeason
	if day.After(c.localMidnight(LaborDay(year))) {
		sched = season.postLaborDay
	}

	window := sched.weekdays
	dayClass := timeutils.WeekdayDays
	if !timeutils.IsWeekday(local) {
		window = sched.weekends
		dayClass = timeutils.WeekendDays
	}
	if len(window.days) == 0 {
		return false
	}

	// The day class narrows further to the release days of the schedule
	// (drier years drop weekdays from the list).
	onDay := false
	for _, d := range window.days {
		if local.Weekday() == d {
			onDay = true
			break
		}
	}
	if !onDay {
		return false
	}

	start := window.start
	if local.Weekday() == time.Saturday && c.isEarlyRelease(local) {
		start = at(earlyReleaseStartHour)
	}

	period := timeutils.DayedPeriod{
		ClockTimePeriod: timeutils.ClockTimePeriod{
			Start: timeutils.ClockTime{Hour: start.Hour, Minute: start.Minute, Location: c.Location},
			End:   timeutils.ClockTime{Hour: window.end.Hour, Minute: window.end.Minute, Location: c.Location},
		},
		Days: dayClass,
	}
	return period.Contains(local)
}

// Flags evaluates WindowContains over a run of hour-ending timestamps.
func (c *Calendar) Flags(times []time.Time) []bool {
	flags := make([]bool, len(times))
	for i, t := range times {
		flags[i] = c.WindowContains(t)
	}
	return flags
}

// localMidnight re-anchors a civil date to midnight in the calendar's zone
// so that date comparisons are exact.
func (c *Calendar) localMidnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, c.Location)
}

func (c *Calendar) isEarlyRelease(local time.Time) bool {
	for _, d := range c.EarlyReleaseSaturdays {
		if local.Year() == d.Year && local.Month() == d.Month && local.Day() == d.Day {
			return true
		}
	}
	return false
}

// LaborDay returns the first Monday in September of the given year, at
// midnight in the local zone used for season comparisons.
func LaborDay(year int) time.Time {
	sept1 := time.Date(year, time.September, 1, 0, 0, 0, 0, time.UTC)
	offset := (int(time.Monday) - int(sept1.Weekday()) + 7) % 7
	return sept1.AddDate(0, 0, offset)
}

// MemorialDayWeekendStart returns the Saturday before the last Monday in
// May: the opening day of the rafting season.
func MemorialDayWeekendStart(year int) time.Time {
	may31 := time.Date(year, time.May, 31, 0, 0, 0, 0, time.UTC)
	offset := (int(may31.Weekday()) - int(time.Monday) + 7) % 7
	memorial := may31.AddDate(0, 0, -offset)
	return memorial.AddDate(0, 0, -2)
}
