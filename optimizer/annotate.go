package optimizer

import (
	"math"
	"time"

	"github.com/pcwa/abayscheduler/series"
)

// changeThresholdMW is the smallest setpoint move worth telling an operator
// about; smaller changes get no change-time annotation.
const changeThresholdMW = 0.1

// Annotate enriches a solved schedule with operator guidance, in place:
//
//   - SetpointChangeTime: the latest clock minute within each hour by which
//     the operator must begin ramping so the cumulative ramp reaches the
//     future end-of-hour target(s) on time. When several future hours
//     could place their latest start inside this hour, the nearest one
//     found scanning forward wins.
//   - SetpointMW: raised to the setpoint being ramped towards when a change
//     lands in the hour.
//   - AvgGenerationMW: hour-average generation under a hold-then-ramp-as-
//     late-as-possible policy.
//
// initialGenerationMW is the generation at the boundary before the first
// row; lastSetpointMW is the most recent observed setpoint, used only to
// decide whether the first hour's change is worth showing. A zero ramp
// rate is treated as an immediate change, not a division fault.
func Annotate(rows []series.ScheduleRow, initialGenerationMW, lastSetpointMW, rampMWPerMin float64, loc *time.Location) {
	T := len(rows)
	if T == 0 {
		return
	}

	// Hour-average generation from a hold-then-ramp profile: holding at
	// g_prev then ramping for t_need minutes averages to
	// g_prev + (t_need/120)*delta.
	gPrev := initialGenerationMW
	for t := 0; t < T; t++ {
		delta := rows[t].GenerationMW - gPrev
		tNeed := rampMinutes(delta, rampMWPerMin)
		if tNeed > 60 {
			tNeed = 60
		}
		rows[t].AvgGenerationMW = gPrev + (tNeed/120.0)*delta
		gPrev = rows[t].GenerationMW
	}

	// Latest-start minute that lands inside each hour: scan forward from
	// hour h accumulating ramp minutes until the start implied by some
	// future target falls within (he[h]-1h, he[h]].
	for h := 0; h < T; h++ {
		hourEnd := rows[h].Time
		hourStart := hourEnd.Add(-time.Hour)

		cum := 0.0
		gLeft := initialGenerationMW
		if h > 0 {
			gLeft = rows[h-1].GenerationMW
		}
		for t := h; t < T; t++ {
			gRight := rows[t].GenerationMW
			cum += rampMinutes(gRight-gLeft, rampMWPerMin)
			latestStart := rows[t].Time.Add(-time.Duration(cum * float64(time.Minute)))
			if hourStart.Before(latestStart) && !latestStart.After(hourEnd) {
				rows[h].SetpointChangeTime = latestStart.In(loc).Format("03:04 PM")
				if rows[t].SetpointMW > rows[h].SetpointMW {
					rows[h].SetpointMW = rows[t].SetpointMW
				}
				break
			}
			gLeft = gRight
		}
	}

	// Only show a change time when the setpoint actually moves.
	prev := lastSetpointMW
	for t := 0; t < T; t++ {
		if math.Abs(rows[t].SetpointMW-prev) <= changeThresholdMW {
			rows[t].SetpointChangeTime = ""
		}
		prev = rows[t].SetpointMW
	}
}

// rampMinutes returns the minutes needed to move |delta| MW at the given
// ramp rate. A non-positive rate means the unit moves immediately.
func rampMinutes(delta, rampMWPerMin float64) float64 {
	if rampMWPerMin <= 0 {
		return 0
	}
	return math.Abs(delta) / rampMWPerMin
}
