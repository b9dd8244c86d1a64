package bias

import (
	"math"
	"testing"
	"time"

	"github.com/pcwa/abayscheduler/hydro"
	"github.com/pcwa/abayscheduler/series"
)

func constantRow(t time.Time) series.LookbackRow {
	return series.LookbackRow{
		Time:        t,
		ElevationFt: 1172.0,
		OXPHPowerMW: 3.0,
		FlowR4:      400,
		FlowR30:     600,
		FlowR20:     100,
		FlowR5L:     50,
		FlowR26:     20,
		MFRAPowerMW: 80,
		Mode:        series.ModeGen,
	}
}

func makeLookback(n int) []series.LookbackRow {
	start := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	rows := make([]series.LookbackRow, n)
	for i := range rows {
		rows[i] = constantRow(start.Add(time.Duration(i) * time.Hour))
	}
	return rows
}

func TestComputeBiasCFSEmptyLookback(test *testing.T) {

	if got := ComputeBiasCFS(nil); got != 0.0 {
		test.Errorf("expected 0.0 for empty lookback, got %v", got)
	}
	if got := ComputeBiasCFS(makeLookback(1)); got != 0.0 {
		test.Errorf("expected 0.0 for single-row lookback, got %v", got)
	}
}

func TestComputeBiasCFSConstantLookback(test *testing.T) {

	// A flat elevation means the actual net inflow is zero every hour, so
	// the bias must equal the negated model expectation for the row.
	rows := makeLookback(25)

	in := hydro.HourInputs{
		FlowR4:      rows[0].FlowR4,
		FlowR30:     rows[0].FlowR30,
		FlowR20:     rows[0].FlowR20,
		FlowR5L:     rows[0].FlowR5L,
		FlowR26:     rows[0].FlowR26,
		MFRAPowerMW: rows[0].MFRAPowerMW,
		Mode:        rows[0].Mode,
	}
	expected := -in.NetInflowCFS(rows[0].OXPHPowerMW)

	got := ComputeBiasCFS(rows)
	if math.Abs(got-expected) > 1e-9 {
		test.Errorf("expected %v, got %v", expected, got)
	}
}

func TestComputeBiasCFSDeterministic(test *testing.T) {

	rows := makeLookback(25)
	first := ComputeBiasCFS(rows)
	second := ComputeBiasCFS(rows)
	if first != second {
		test.Errorf("bias not deterministic: %v vs %v", first, second)
	}
}

func TestComputeBiasCFSClipsOutliers(test *testing.T) {

	// A huge elevation jump implies an absurd actual inflow; the hourly
	// difference must clip at +2000 cfs.
	rows := makeLookback(2)
	rows[1].ElevationFt = rows[0].ElevationFt + 10.0

	got := ComputeBiasCFS(rows)
	if math.Abs(got-2000.0) > 1e-9 {
		test.Errorf("expected clipped bias of 2000, got %v", got)
	}
}

func TestComputeBiasCFSUsesLastDayOnly(test *testing.T) {

	// Corrupt the oldest rows of a long lookback: only the most recent 24
	// hourly differences participate, so the result must match the clean
	// tail on its own.
	rows := makeLookback(30)
	for i := 0; i < 5; i++ {
		rows[i].ElevationFt = 1180.0
	}

	tail := rows[5:]
	want := ComputeBiasCFS(tail)
	got := ComputeBiasCFS(rows)
	if math.Abs(got-want) > 1e-9 {
		test.Errorf("expected %v from the last day only, got %v", want, got)
	}
}

func TestHourlyErrors(test *testing.T) {

	rows := makeLookback(4)
	errs := HourlyErrors(rows)
	if len(errs) != 3 {
		test.Fatalf("expected 3 error rows, got %d", len(errs))
	}
	for i, e := range errs {
		if math.Abs(e.ErrorCFS-(e.ActualNetCFS-e.ExpectedNetCFS)) > 1e-9 {
			test.Errorf("row %d: error column inconsistent", i)
		}
		if math.Abs(e.ErrorAF-e.ErrorCFS*hydro.AFPerCFSHour) > 1e-9 {
			test.Errorf("row %d: AF conversion inconsistent", i)
		}
	}

	if HourlyErrors(rows[:1]) != nil {
		test.Errorf("expected nil for single-row lookback")
	}
}
