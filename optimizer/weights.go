package optimizer

import "time"

// SmoothingWeights assigns each hour-ending timestamp its smoothing
// penalty weight: setpoint changes are cheap during the operating day
// (08:00 through 20:00 local, inclusive) and expensive overnight, steering
// the solver towards daytime changes.
func SmoothingWeights(times []time.Time, loc *time.Location, cfg Config) []float64 {
	cfg = cfg.withDefaults()
	weights := make([]float64, len(times))
	for i, t := range times {
		h := t.In(loc).Hour()
		if h >= 8 && h <= 20 {
			weights[i] = cfg.SmoothingWeightDay
		} else {
			weights[i] = cfg.SmoothingWeightNight
		}
	}
	return weights
}
