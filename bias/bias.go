// Package bias reconciles the physics model against observed reservoir
// behavior. The historian's measured elevations imply an actual net inflow
// per hour; the difference between that and the net inflow the model expects
// from the measured flows and generation is a systematic forecast error,
// summarized as a single signed cfs correction.
package bias

import (
	"github.com/pcwa/abayscheduler/hydro"
	"github.com/pcwa/abayscheduler/series"
)

const (
	// Hourly differences are clipped to this band before averaging so one
	// bad elevation reading cannot swing the correction.
	clipCFS = 2000.0

	// The correction averages the most recent day of hourly differences.
	averageHours = 24
)

// ComputeBiasCFS returns the signed 24-hour average difference between
// actual and expected ABAY net inflow (cfs) over the lookback window.
// It is a pure function: the same lookback always yields the same value.
// An empty lookback, or one with no consecutive hour-pairs, yields 0.0 and
// the forecast proceeds uncorrected.
func ComputeBiasCFS(lookback []series.LookbackRow) float64 {
	if len(lookback) < 2 {
		return 0.0
	}

	// The actual net inflow for the hour ending at row i is the storage
	// delta between rows i-1 and i, so the first row has no actual value
	// and contributes nothing.
	diffs := make([]float64, 0, len(lookback)-1)
	for i := 1; i < len(lookback); i++ {
		row := lookback[i]

		expected := expectedNetCFS(row)

		prevAF := hydro.StorageAF(lookback[i-1].ElevationFt)
		curAF := hydro.StorageAF(row.ElevationFt)
		actual := (curAF - prevAF) * hydro.CFSPerAFHour

		diff := actual - expected
		if diff > clipCFS {
			diff = clipCFS
		}
		if diff < -clipCFS {
			diff = -clipCFS
		}
		diffs = append(diffs, diff)
	}

	if len(diffs) > averageHours {
		diffs = diffs[len(diffs)-averageHours:]
	}

	sum := 0.0
	for _, d := range diffs {
		sum += d
	}
	return sum / float64(len(diffs))
}

// expectedNetCFS evaluates the mass-balance formula on a measured row.
func expectedNetCFS(row series.LookbackRow) float64 {
	in := hydro.HourInputs{
		FlowR4:      row.FlowR4,
		FlowR30:     row.FlowR30,
		FlowR20:     row.FlowR20,
		FlowR5L:     row.FlowR5L,
		FlowR26:     row.FlowR26,
		MFRAPowerMW: row.MFRAPowerMW,
		Mode:        row.Mode,
	}
	return in.NetInflowCFS(row.OXPHPowerMW)
}

// ErrorRow is the per-hour expected/actual diagnostic emitted alongside the
// bias for operator displays.
type ErrorRow struct {
	ExpectedNetCFS float64
	ActualNetCFS   float64
	ErrorCFS       float64
	ErrorAF        float64
}

// HourlyErrors returns the per-hour expected vs actual ABAY net inflow and
// the error in both cfs and AF. The first row has no storage delta, so the
// returned slice is one shorter than the lookback.
func HourlyErrors(lookback []series.LookbackRow) []ErrorRow {
	if len(lookback) < 2 {
		return nil
	}
	out := make([]ErrorRow, 0, len(lookback)-1)
	for i := 1; i < len(lookback); i++ {
		expected := expectedNetCFS(lookback[i])
		actual := (hydro.StorageAF(lookback[i].ElevationFt) - hydro.StorageAF(lookback[i-1].ElevationFt)) * hydro.CFSPerAFHour
		errCFS := actual - expected
		out = append(out, ErrorRow{
			ExpectedNetCFS: expected,
			ActualNetCFS:   actual,
			ErrorCFS:       errCFS,
			ErrorAF:        errCFS * hydro.AFPerCFSHour,
		})
	}
	return out
}
