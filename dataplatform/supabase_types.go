package dataplatform

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pcwa/abayscheduler/repository"
)

const (
	supabaseRunTableName     = "abay_runs"
	supabaseRunHourTableName = "abay_run_hours"
)

// supabaseRun holds the json encoding schema for a run summary in supabase.
type supabaseRun struct {
	ID            uuid.UUID `json:"id"`
	Time          time.Time `json:"time"`
	Kind          string    `json:"kind"`
	WaterYearType string    `json:"water_year_type"`
	BiasCFS       float64   `json:"bias_cfs"`
	Status        string    `json:"status"`
	Objective     float64   `json:"objective"`
	HorizonHours  int       `json:"horizon_hours"`
}

// supabaseRunHour holds the json encoding schema for one schedule hour in supabase.
type supabaseRunHour struct {
	ID                 uuid.UUID `json:"id"`
	RunID              uuid.UUID `json:"run_id"`
	Time               time.Time `json:"time"`
	GenerationMW       float64   `json:"generation_mw"`
	SetpointMW         float64   `json:"setpoint_mw"`
	AvgGenerationMW    float64   `json:"avg_generation_mw"`
	ElevationFt        float64   `json:"elevation_ft"`
	StorageAF          float64   `json:"storage_af"`
	OutflowCFS         float64   `json:"outflow_cfs"`
	SetpointChangeTime string    `json:"setpoint_change_time"`
	RaftingWindow      bool      `json:"rafting_window"`
	ViolatesMin        bool      `json:"violates_min"`
	ViolatesFloat      bool      `json:"violates_float"`
	ViolatesHead       bool      `json:"violates_head"`
}

// getRecordsForSupabase returns the equivalent "supabase type" for the given
// records (which include supabase json tags) and the associated supabase
// table name.
func getRecordsForSupabase(rows interface{}) (interface{}, string) {
	switch rowsTyped := rows.(type) {

	case []repository.StoredRun:
		supabaseRows := make([]supabaseRun, 0, len(rowsTyped))
		for _, row := range rowsTyped {
			supabaseRows = append(supabaseRows, supabaseRun{
				ID:            row.ID,
				Time:          row.Time,
				Kind:          row.Kind,
				WaterYearType: row.WaterYearType,
				BiasCFS:       row.BiasCFS,
				Status:        row.Status,
				Objective:     row.Objective,
				HorizonHours:  row.HorizonHours,
			})
		}
		return supabaseRows, supabaseRunTableName

	case []repository.StoredRunHour:
		supabaseRows := make([]supabaseRunHour, 0, len(rowsTyped))
		for _, row := range rowsTyped {
			supabaseRows = append(supabaseRows, supabaseRunHour{
				ID:                 row.ID,
				RunID:              row.RunID,
				Time:               row.Time,
				GenerationMW:       row.GenerationMW,
				SetpointMW:         row.SetpointMW,
				AvgGenerationMW:    row.AvgGenerationMW,
				ElevationFt:        row.ElevationFt,
				StorageAF:          row.StorageAF,
				OutflowCFS:         row.OutflowCFS,
				SetpointChangeTime: row.SetpointChangeTime,
				RaftingWindow:      row.RaftingWindow,
				ViolatesMin:        row.ViolatesMin,
				ViolatesFloat:      row.ViolatesFloat,
				ViolatesHead:       row.ViolatesHead,
			})
		}
		return supabaseRows, supabaseRunHourTableName

	default:
		panic(fmt.Sprintf("Unknown records type: '%T'", rows))
	}
}
