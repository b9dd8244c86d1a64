package loader

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pcwa/abayscheduler/series"
)

func writeCSV(test *testing.T, name, content string) string {
	test.Helper()
	path := filepath.Join(test.TempDir(), name)
	err := os.WriteFile(path, []byte(content), 0o644)
	require.NoError(test, err)
	return path
}

func TestLoadForecast(test *testing.T) {

	path := writeCSV(test, "forecast.csv",
		"timestamp,r4_flow,r30_flow,r20_flow,r5l_flow,r26_flow,mfra_mw,float_ft,mode\n"+
			"2025-07-01T16:00:00Z,400,600,100,50,0,50,1175,GEN\n"+
			"2025-07-01T17:00:00Z,410,610,100,50,0,55,1175,1\n")

	rows, err := LoadForecast(path)
	require.NoError(test, err)
	require.Len(test, rows, 2)

	assert.Equal(test, time.Date(2025, 7, 1, 16, 0, 0, 0, time.UTC), rows[0].Time)
	assert.Equal(test, 400.0, rows[0].FlowR4)
	assert.Equal(test, 1175.0, rows[0].FloatFt)
	assert.Equal(test, series.ModeGen, rows[0].Mode)

	// Numeric mode representations normalize too.
	assert.Equal(test, series.ModeSpill, rows[1].Mode)
	assert.Equal(test, 55.0, rows[1].MFRAPowerMW)
}

func TestLoadForecastMissingColumn(test *testing.T) {

	path := writeCSV(test, "forecast.csv",
		"timestamp,r4_flow,r30_flow,r20_flow,r5l_flow,r26_flow,mfra_mw,mode\n"+
			"2025-07-01T16:00:00Z,400,600,100,50,0,50,GEN\n")

	_, err := LoadForecast(path)
	require.Error(test, err)
	assert.Contains(test, err.Error(), "float_ft")
}

func TestLoadForecastEmptyTable(test *testing.T) {

	path := writeCSV(test, "forecast.csv",
		"timestamp,r4_flow,r30_flow,r20_flow,r5l_flow,r26_flow,mfra_mw,float_ft,mode\n")

	_, err := LoadForecast(path)
	require.Error(test, err)
}

func TestLoadForecastBadTimestamp(test *testing.T) {

	path := writeCSV(test, "forecast.csv",
		"timestamp,r4_flow,r30_flow,r20_flow,r5l_flow,r26_flow,mfra_mw,float_ft,mode\n"+
			"07/01/2025 16:00,400,600,100,50,0,50,1175,GEN\n")

	_, err := LoadForecast(path)
	require.Error(test, err)
	assert.Contains(test, err.Error(), "parse timestamp")
}

func TestLoadForecastOffHourTimestamp(test *testing.T) {

	path := writeCSV(test, "forecast.csv",
		"timestamp,r4_flow,r30_flow,r20_flow,r5l_flow,r26_flow,mfra_mw,float_ft,mode\n"+
			"2025-07-01T16:30:00Z,400,600,100,50,0,50,1175,GEN\n")

	_, err := LoadForecast(path)
	require.Error(test, err)
	assert.Contains(test, err.Error(), "hour boundary")
}

func TestLoadForecastGappedHours(test *testing.T) {

	path := writeCSV(test, "forecast.csv",
		"timestamp,r4_flow,r30_flow,r20_flow,r5l_flow,r26_flow,mfra_mw,float_ft,mode\n"+
			"2025-07-01T16:00:00Z,400,600,100,50,0,50,1175,GEN\n"+
			"2025-07-01T18:00:00Z,410,610,100,50,0,55,1175,GEN\n")

	_, err := LoadForecast(path)
	require.Error(test, err)
	assert.Contains(test, err.Error(), "hourly grid")
}

func TestLoadLookback(test *testing.T) {

	path := writeCSV(test, "lookback.csv",
		"timestamp,r4_flow,r30_flow,r20_flow,r5l_flow,r26_flow,mfra_mw,mode,elevation_ft,oxph_generation_mw\n"+
			"2025-07-01T16:00:00Z,400,600,100,50,0,50,GEN,1172.1,3.2\n")

	rows, err := LoadLookback(path)
	require.NoError(test, err)
	require.Len(test, rows, 1)

	assert.Equal(test, 1172.1, rows[0].ElevationFt)
	assert.Equal(test, 3.2, rows[0].OXPHPowerMW)
	assert.Equal(test, series.ModeGen, rows[0].Mode)
}

func TestLoadLookbackOptionalSetpoint(test *testing.T) {

	path := writeCSV(test, "lookback.csv",
		"timestamp,r4_flow,r30_flow,r20_flow,r5l_flow,r26_flow,mfra_mw,mode,elevation_ft,oxph_generation_mw,setpoint_mw\n"+
			"2025-07-01T16:00:00Z,400,600,100,50,0,50,GEN,1172.1,3.2,3.5\n")

	rows, err := LoadLookback(path)
	require.NoError(test, err)
	require.Len(test, rows, 1)
	assert.Equal(test, 3.5, rows[0].SetpointMW)
}

func TestLoadMissingFile(test *testing.T) {

	_, err := LoadForecast(filepath.Join(test.TempDir(), "nope.csv"))
	require.Error(test, err)
}
