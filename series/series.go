package series

import (
	"math"
	"time"
)

// LookbackRow holds one hour of measured data from the historian. Timestamps
// are hour-ending UTC: the row summarizes the hour that ends at Time.
type LookbackRow struct {
	Time        time.Time
	ElevationFt float64 // measured ABAY elevation
	OXPHPowerMW float64 // measured OXPH generation
	FlowR4      float64 // cfs
	FlowR30     float64 // cfs
	FlowR20     float64 // cfs
	FlowR5L     float64 // cfs
	FlowR26     float64 // cfs
	MFRAPowerMW float64 // measured MFRA total-plant power
	Mode        Mode
	SetpointMW  float64 // independent operator setpoint reading, NaN when absent
}

// ScheduleRow is one hour of the forecast/result table. The forecast fields
// are constructed externally (and mutable only via overrides or bias
// injection); the result fields are produced by the optimizer or mutated in
// place by the recalculator.
type ScheduleRow struct {
	Time time.Time

	// Forecast inputs
	FlowR4          float64 // cfs
	FlowR30         float64 // cfs
	FlowR20         float64 // cfs
	FlowR5L         float64 // cfs
	FlowR26         float64 // cfs
	MFRAPowerMW     float64
	FloatFt         float64 // operationally imposed maximum elevation
	Mode            Mode
	BiasCFS         float64 // broadcast bias correction
	SmoothingWeight float64
	RaftingWindow   bool

	// Results
	GenerationMW    float64
	SetpointMW      float64
	ElevationFt     float64
	StorageAF       float64
	OutflowCFS      float64
	HeadLimitMW     float64
	RegulatedCFS    float64 // NaN in SPILL mode
	MF12PowerMW     float64
	MF12FlowCFS     float64
	AvgGenerationMW float64
	// SetpointChangeTime is the latest local clock time within the hour by
	// which the operator must begin ramping, or empty when no change is due.
	SetpointChangeTime string

	// Violation flags
	ViolatesMin   bool
	ViolatesFloat bool
	ViolatesHead  bool
}

// NewScheduleRow returns a row with the diagnostic fields initialized to NaN
// so that "not computed" is distinguishable from zero.
func NewScheduleRow(t time.Time) ScheduleRow {
	nan := math.NaN()
	return ScheduleRow{
		Time:         t,
		FloatFt:      nan,
		StorageAF:    nan,
		ElevationFt:  nan,
		OutflowCFS:   nan,
		HeadLimitMW:  nan,
		RegulatedCFS: nan,
		MF12PowerMW:  nan,
		MF12FlowCFS:  nan,
	}
}

// SearchTime returns the index of the first row whose timestamp is not
// before `t`, and true when such a row exists. Rows must be ordered by time.
// This implements the "snap forward to the next available hour" rule used
// when an override names a timestamp that is absent from the table.
func SearchTime(rows []ScheduleRow, t time.Time) (int, bool) {
	for i := range rows {
		if !rows[i].Time.Before(t) {
			return i, true
		}
	}
	return 0, false
}

// IndexOfTime returns the index of the row with exactly timestamp `t`.
func IndexOfTime(rows []ScheduleRow, t time.Time) (int, bool) {
	for i := range rows {
		if rows[i].Time.Equal(t) {
			return i, true
		}
	}
	return 0, false
}
