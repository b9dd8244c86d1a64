// Package loader reads the lookback and forecast CSV inputs into row slices.
// Required columns are validated up front so a malformed export is rejected
// before any physics runs on it.
package loader

import (
	"errors"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/go-gota/gota/dataframe"
	gseries "github.com/go-gota/gota/series"

	"github.com/pcwa/abayscheduler/series"
	"github.com/pcwa/abayscheduler/timeutils"
)

// ErrEmptyTable is returned when a CSV parses but contains no data rows.
var ErrEmptyTable = errors.New("loader: empty input table")

const (
	timestampColumn = "timestamp"
	modeColumn      = "mode"
)

var forecastColumns = []string{
	timestampColumn,
	"r4_flow", "r30_flow", "r20_flow", "r5l_flow", "r26_flow",
	"mfra_mw", "float_ft", modeColumn,
}

var lookbackColumns = []string{
	timestampColumn,
	"r4_flow", "r30_flow", "r20_flow", "r5l_flow", "r26_flow",
	"mfra_mw", modeColumn,
	"elevation_ft", "oxph_generation_mw",
}

// LoadForecast reads the forecast table: one row per hour-ending UTC
// timestamp with the flow, companion-plant power, float ceiling and mode
// series the optimizer consumes.
func LoadForecast(path string) ([]series.ScheduleRow, error) {
	df, err := readFrame(path, forecastColumns)
	if err != nil {
		return nil, err
	}

	times, err := parseTimes(df)
	if err != nil {
		return nil, err
	}
	modes := df.Col(modeColumn).Records()

	rows := make([]series.ScheduleRow, len(times))
	r4 := df.Col("r4_flow").Float()
	r30 := df.Col("r30_flow").Float()
	r20 := df.Col("r20_flow").Float()
	r5l := df.Col("r5l_flow").Float()
	r26 := df.Col("r26_flow").Float()
	mfra := df.Col("mfra_mw").Float()
	floatFt := df.Col("float_ft").Float()

	for i, t := range times {
		row := series.NewScheduleRow(t)
		row.FlowR4 = r4[i]
		row.FlowR30 = r30[i]
		row.FlowR20 = r20[i]
		row.FlowR5L = r5l[i]
		row.FlowR26 = r26[i]
		row.MFRAPowerMW = mfra[i]
		row.FloatFt = floatFt[i]
		row.Mode = series.ParseMode(modes[i])
		rows[i] = row
	}
	return rows, nil
}

// LoadLookback reads the measured-history table used by the bias estimator.
func LoadLookback(path string) ([]series.LookbackRow, error) {
	df, err := readFrame(path, lookbackColumns)
	if err != nil {
		return nil, err
	}

	times, err := parseTimes(df)
	if err != nil {
		return nil, err
	}
	modes := df.Col(modeColumn).Records()

	rows := make([]series.LookbackRow, len(times))
	r4 := df.Col("r4_flow").Float()
	r30 := df.Col("r30_flow").Float()
	r20 := df.Col("r20_flow").Float()
	r5l := df.Col("r5l_flow").Float()
	r26 := df.Col("r26_flow").Float()
	mfra := df.Col("mfra_mw").Float()
	elev := df.Col("elevation_ft").Float()
	gen := df.Col("oxph_generation_mw").Float()

	// The setpoint column is optional; absent readings are NaN, not zero.
	var setpoints []float64
	if hasColumn(df, "setpoint_mw") {
		setpoints = df.Col("setpoint_mw").Float()
	}

	for i, t := range times {
		rows[i] = series.LookbackRow{
			Time:        t,
			ElevationFt: elev[i],
			OXPHPowerMW: gen[i],
			FlowR4:      r4[i],
			FlowR30:     r30[i],
			FlowR20:     r20[i],
			FlowR5L:     r5l[i],
			FlowR26:     r26[i],
			MFRAPowerMW: mfra[i],
			Mode:        series.ParseMode(modes[i]),
		}
		if setpoints != nil {
			rows[i].SetpointMW = setpoints[i]
		} else {
			rows[i].SetpointMW = math.NaN()
		}
	}
	return rows, nil
}

func readFrame(path string, required []string) (dataframe.DataFrame, error) {
	f, err := os.Open(path)
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	df := dataframe.ReadCSV(f,
		dataframe.HasHeader(true),
		dataframe.DefaultType(gseries.Float),
		dataframe.WithTypes(map[string]gseries.Type{
			timestampColumn: gseries.String,
			modeColumn:      gseries.String,
		}),
	)
	if df.Err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("parse csv %s: %w", path, df.Err)
	}
	if df.Nrow() == 0 {
		return dataframe.DataFrame{}, fmt.Errorf("%s: %w", path, ErrEmptyTable)
	}

	var missing []string
	for _, col := range required {
		if !hasColumn(df, col) {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return dataframe.DataFrame{}, fmt.Errorf("%s: missing required columns %v", path, missing)
	}
	return df, nil
}

func hasColumn(df dataframe.DataFrame, name string) bool {
	for _, n := range df.Names() {
		if n == name {
			return true
		}
	}
	return false
}

// parseTimes reads the timestamp column as RFC3339 hour-ending UTC. The
// downstream hour-pair math (bias deltas, water balance) assumes a
// contiguous hourly grid, so off-hour or gapped timestamps are rejected
// here.
func parseTimes(df dataframe.DataFrame) ([]time.Time, error) {
	records := df.Col(timestampColumn).Records()
	times := make([]time.Time, len(records))
	for i, rec := range records {
		t, err := time.Parse(time.RFC3339, rec)
		if err != nil {
			return nil, fmt.Errorf("parse timestamp %q: %w", rec, err)
		}
		if !t.Equal(timeutils.FloorHour(t)) {
			return nil, fmt.Errorf("timestamp %q is not on an hour boundary", rec)
		}
		times[i] = t.UTC()
	}
	for i, want := range timeutils.HourEndingRange(times[0], len(times)) {
		if !times[i].Equal(want) {
			return nil, fmt.Errorf("timestamp %v breaks the hourly grid (expected %v)", times[i], want)
		}
	}
	return times, nil
}
