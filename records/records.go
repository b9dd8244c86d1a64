// Package records holds the persisted/uploaded representations of a
// scheduling run, shared between the local buffer repository and the data
// platform uploader.
package records

import (
	"time"

	"github.com/google/uuid"
)

// Run summarises one scheduler invocation.
type Run struct {
	ID            uuid.UUID
	Time          time.Time
	Kind          string // "optimize" or "recalc"
	WaterYearType string
	BiasCFS       float64
	Status        string
	Objective     float64
	HorizonHours  int
}

// RunHour holds one published hour of a run's schedule.
type RunHour struct {
	ID                 uuid.UUID
	RunID              uuid.UUID
	Time               time.Time
	GenerationMW       float64
	SetpointMW         float64
	AvgGenerationMW    float64
	ElevationFt        float64
	StorageAF          float64
	OutflowCFS         float64
	SetpointChangeTime string
	RaftingWindow      bool
	ViolatesMin        bool
	ViolatesFloat      bool
	ViolatesHead       bool
}
