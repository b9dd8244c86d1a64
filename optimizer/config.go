package optimizer

import "github.com/pcwa/abayscheduler/hydro"

// Config bundles the tunable parameters of the scheduling MILP. The zero
// value of any field falls back to its default, so callers override only
// the knobs they care about.
type Config struct {
	MinElevationFt float64 // hard lower elevation bound
	FloatBufferFt  float64 // headroom kept below the float ceiling

	OXPHMinMW     float64
	OXPHMaxMW     float64
	RampMWPerHour float64

	// RaftingFloorMW is the setpoint floor enforced during recreational
	// release windows.
	RaftingFloorMW float64

	SmoothingWeightDay   float64
	SmoothingWeightNight float64

	// SlackPenalty prices elevation-band violations. It is large enough to
	// act as a hard constraint in practice; its exact magnitude interacts
	// with solver conditioning and is deliberately configuration.
	SlackPenalty float64
	// TrackingWeight prices (setpoint - generation)+ during window hours.
	TrackingWeight float64
	// FloorPenalty prices violations of the soft generation floor.
	FloorPenalty float64

	// StorageBreakpoints is the number of breakpoints in the
	// piecewise-linear storage surface. The count is a fidelity/solve-time
	// trade, not a contract.
	StorageBreakpoints int
}

// DefaultConfig returns the production parameter set.
func DefaultConfig() Config {
	return Config{
		MinElevationFt:       hydro.MinElevationFt,
		FloatBufferFt:        0.5,
		OXPHMinMW:            hydro.OXPHMinMW,
		OXPHMaxMW:            hydro.OXPHMaxMW,
		RampMWPerHour:        hydro.OXPHRampMWPerHour,
		RaftingFloorMW:       6.0,
		SmoothingWeightDay:   1.0,
		SmoothingWeightNight: 10.0,
		SlackPenalty:         1e6,
		TrackingWeight:       1000.0,
		FloorPenalty:         1e6,
		StorageBreakpoints:   14,
	}
}

// withDefaults fills zero-valued fields from DefaultConfig.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.MinElevationFt == 0 {
		c.MinElevationFt = d.MinElevationFt
	}
	if c.FloatBufferFt == 0 {
		c.FloatBufferFt = d.FloatBufferFt
	}
	if c.OXPHMinMW == 0 {
		c.OXPHMinMW = d.OXPHMinMW
	}
	if c.OXPHMaxMW == 0 {
		c.OXPHMaxMW = d.OXPHMaxMW
	}
	if c.RampMWPerHour == 0 {
		c.RampMWPerHour = d.RampMWPerHour
	}
	if c.RaftingFloorMW == 0 {
		c.RaftingFloorMW = d.RaftingFloorMW
	}
	if c.SmoothingWeightDay == 0 {
		c.SmoothingWeightDay = d.SmoothingWeightDay
	}
	if c.SmoothingWeightNight == 0 {
		c.SmoothingWeightNight = d.SmoothingWeightNight
	}
	if c.SlackPenalty == 0 {
		c.SlackPenalty = d.SlackPenalty
	}
	if c.TrackingWeight == 0 {
		c.TrackingWeight = d.TrackingWeight
	}
	if c.FloorPenalty == 0 {
		c.FloorPenalty = d.FloorPenalty
	}
	if c.StorageBreakpoints == 0 {
		c.StorageBreakpoints = d.StorageBreakpoints
	}
	return c
}
