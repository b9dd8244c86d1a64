// Package optimizer builds and solves the hourly generation schedule: a
// mixed-integer linear program that chooses OXPH generation and setpoint
// trajectories over the forecast horizon subject to storage, ramp,
// head-loss and recreational-flow constraints, minimizing a weighted
// penalty objective. The only nonlinearity - the stage-storage quadratic -
// enters through a piecewise-linear surface with binary segment selectors;
// everything else is linear.
package optimizer

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/pcwa/abayscheduler/curve"
	"github.com/pcwa/abayscheduler/hydro"
	"github.com/pcwa/abayscheduler/milp"
	"github.com/pcwa/abayscheduler/series"
)

// ErrEmptyForecast is returned when the forecast table carries no rows.
var ErrEmptyForecast = errors.New("optimizer: empty forecast table")

// Result is the solved hourly schedule. Status reports the solver outcome
// as data; an infeasible or timed-out solve is not an error and the caller
// decides how to react.
type Result struct {
	Rows      []series.ScheduleRow
	Status    milp.Status
	Objective float64
}

// Solve builds the MILP over the forecast horizon and solves it. The
// forecast rows must be ordered by hour-ending time and carry the forecast
// inputs, per-row smoothing weights and rafting-window flags.
// initialElevationFt and initialGenerationMW describe the hour before the
// first forecast row. The context bounds solve time; expiry surfaces as
// StatusTimeout.
//
// The returned rows are a copy: the caller's forecast table is not touched.
func Solve(ctx context.Context, forecast []series.ScheduleRow, initialElevationFt, initialGenerationMW float64, cfg Config) (Result, error) {
	if len(forecast) == 0 {
		return Result{}, ErrEmptyForecast
	}
	cfg = cfg.withDefaults()
	T := len(forecast)

	// Per-hour known inflow (generation-independent part of the mass
	// balance) and elevation ceiling.
	known := make([]float64, T)
	hMax := make([]float64, T)
	for t, row := range forecast {
		in := hourInputs(row)
		known[t] = in.KnownInflowCFS()
		hMax[t] = row.FloatFt - cfg.FloatBufferFt
	}

	// Breakpoints for the piecewise storage surface span the reachable
	// elevation band, widened to include the initial state.
	globalHMin := math.Min(cfg.MinElevationFt, initialElevationFt)
	globalHMax := initialElevationFt
	for _, h := range hMax {
		globalHMax = math.Max(globalHMax, h)
	}
	storage := curve.Sample(hydro.StorageAF, globalHMin, globalHMax, cfg.StorageBreakpoints)
	nPts := len(storage.Points)
	nSeg := nPts - 1

	// The convex-combination link pins H and A inside the sampled band, so
	// the variable bounds match it. Loose bounds (thousands of feet,
	// millions of acre-feet) wreck the simplex basis conditioning.
	aMin, aMax := storage.Points[0].Y, storage.Points[nPts-1].Y

	prob := milp.NewProblem("oxph_schedule")

	g := make([]milp.Var, T)
	s := make([]milp.Var, T)
	H := make([]milp.Var, T)
	A := make([]milp.Var, T)
	slackHi := make([]milp.Var, T)
	slackLo := make([]milp.Var, T)
	dpos := make([]milp.Var, T)
	dneg := make([]milp.Var, T)
	shortfall := make([]milp.Var, T)
	floorSlack := make([]milp.Var, T)
	lam := make([][]milp.Var, T)
	seg := make([][]milp.Var, T)

	for t := 0; t < T; t++ {
		g[t] = prob.AddVar(fmt.Sprintf("gen_mw_%d", t), cfg.OXPHMinMW, cfg.OXPHMaxMW)
		s[t] = prob.AddVar(fmt.Sprintf("setpoint_mw_%d", t), 0, 10)
		H[t] = prob.AddVar(fmt.Sprintf("abay_ft_%d", t), globalHMin, globalHMax)
		A[t] = prob.AddVar(fmt.Sprintf("abay_af_%d", t), aMin, aMax)
		slackHi[t] = prob.AddVar(fmt.Sprintf("slack_high_%d", t), 0, 10)
		slackLo[t] = prob.AddVar(fmt.Sprintf("slack_low_%d", t), 0, 10)
		dpos[t] = prob.AddVar(fmt.Sprintf("ds_pos_%d", t), 0, cfg.OXPHMaxMW)
		dneg[t] = prob.AddVar(fmt.Sprintf("ds_neg_%d", t), 0, cfg.OXPHMaxMW)
		shortfall[t] = prob.AddVar(fmt.Sprintf("window_shortfall_%d", t), 0, cfg.OXPHMaxMW)
		floorSlack[t] = prob.AddVar(fmt.Sprintf("window_floor_slack_%d", t), 0, 10)

		lam[t] = make([]milp.Var, nPts)
		for i := 0; i < nPts; i++ {
			lam[t][i] = prob.AddVar(fmt.Sprintf("lam_%d_%d", t, i), 0, 1)
		}
		seg[t] = make([]milp.Var, nSeg)
		for k := 0; k < nSeg; k++ {
			seg[t][k] = prob.AddBinaryVar(fmt.Sprintf("seg_%d_%d", t, k))
		}
	}

	initialAF := hydro.StorageAF(initialElevationFt)

	for t := 0; t < T; t++ {
		// Convex-combination weights sum to one, exactly one segment is
		// selected, and only the breakpoints of the selected segment may
		// carry weight.
		lamSum := make([]milp.Term, nPts)
		for i := 0; i < nPts; i++ {
			lamSum[i] = milp.Term{Var: lam[t][i], Coef: 1}
		}
		prob.AddEQ(fmt.Sprintf("lam_sum_%d", t), lamSum, 1)

		segSum := make([]milp.Term, nSeg)
		for k := 0; k < nSeg; k++ {
			segSum[k] = milp.Term{Var: seg[t][k], Coef: 1}
		}
		prob.AddEQ(fmt.Sprintf("seg_one_%d", t), segSum, 1)

		prob.AddLE(fmt.Sprintf("lam0_seg_%d", t),
			[]milp.Term{{Var: lam[t][0], Coef: 1}, {Var: seg[t][0], Coef: -1}}, 0)
		prob.AddLE(fmt.Sprintf("lamN_seg_%d", t),
			[]milp.Term{{Var: lam[t][nPts-1], Coef: 1}, {Var: seg[t][nSeg-1], Coef: -1}}, 0)
		for i := 1; i < nPts-1; i++ {
			prob.AddLE(fmt.Sprintf("lam_adj_%d_%d", t, i),
				[]milp.Term{
					{Var: lam[t][i], Coef: 1},
					{Var: seg[t][i-1], Coef: -1},
					{Var: seg[t][i], Coef: -1},
				}, 0)
		}

		// Link elevation and storage to the weighted breakpoints.
		hLink := []milp.Term{{Var: H[t], Coef: 1}}
		aLink := []milp.Term{{Var: A[t], Coef: 1}}
		for i := 0; i < nPts; i++ {
			hLink = append(hLink, milp.Term{Var: lam[t][i], Coef: -storage.Points[i].X})
			aLink = append(aLink, milp.Term{Var: lam[t][i], Coef: -storage.Points[i].Y})
		}
		prob.AddEQ(fmt.Sprintf("h_link_%d", t), hLink, 0)
		prob.AddEQ(fmt.Sprintf("a_link_%d", t), aLink, 0)

		// Elevation band, violable only through the penalized slacks.
		prob.AddLE(fmt.Sprintf("h_max_%d", t),
			[]milp.Term{{Var: H[t], Coef: 1}, {Var: slackHi[t], Coef: -1}}, hMax[t])
		prob.AddGE(fmt.Sprintf("h_min_%d", t),
			[]milp.Term{{Var: H[t], Coef: 1}, {Var: slackLo[t], Coef: 1}}, cfg.MinElevationFt)

		// Head limit: generation cannot exceed what available head supports.
		prob.AddLE(fmt.Sprintf("head_limit_%d", t),
			[]milp.Term{{Var: g[t], Coef: 1}, {Var: H[t], Coef: -hydro.HeadLossSlope}},
			hydro.HeadLossIntercept)

		// Water balance: A[t] = A[t-1] + k*(known[t] - f*g[t]).
		k := hydro.AFPerCFSHour
		wb := []milp.Term{
			{Var: A[t], Coef: 1},
			{Var: g[t], Coef: k * hydro.OXPHFlowFactor},
		}
		rhs := k * known[t]
		if t == 0 {
			rhs += initialAF
		} else {
			wb = append(wb, milp.Term{Var: A[t-1], Coef: -1})
		}
		prob.AddEQ(fmt.Sprintf("water_balance_%d", t), wb, rhs)

		// Ramp limits, including the step from the supplied initial
		// generation into hour 0.
		if t == 0 {
			prob.AddLE("ramp_up_0",
				[]milp.Term{{Var: g[0], Coef: 1}}, cfg.RampMWPerHour+initialGenerationMW)
			prob.AddGE("ramp_dn_0",
				[]milp.Term{{Var: g[0], Coef: 1}}, initialGenerationMW-cfg.RampMWPerHour)
		} else {
			prob.AddLE(fmt.Sprintf("ramp_up_%d", t),
				[]milp.Term{{Var: g[t], Coef: 1}, {Var: g[t-1], Coef: -1}}, cfg.RampMWPerHour)
			prob.AddLE(fmt.Sprintf("ramp_dn_%d", t),
				[]milp.Term{{Var: g[t-1], Coef: 1}, {Var: g[t], Coef: -1}}, cfg.RampMWPerHour)
		}

		// Setpoint/generation linkage. During a rafting window the
		// setpoint holds the floor while generation tracks it as closely
		// as the water allows; outside the window setpoint equals
		// generation exactly.
		if forecast[t].RaftingWindow {
			prob.AddGE(fmt.Sprintf("sp_floor_%d", t),
				[]milp.Term{{Var: s[t], Coef: 1}}, cfg.RaftingFloorMW)
			prob.AddGE(fmt.Sprintf("sp_ge_gen_%d", t),
				[]milp.Term{{Var: s[t], Coef: 1}, {Var: g[t], Coef: -1}}, 0)
			prob.AddGE(fmt.Sprintf("gen_floor_%d", t),
				[]milp.Term{{Var: g[t], Coef: 1}, {Var: floorSlack[t], Coef: 1}}, cfg.RaftingFloorMW)
			prob.AddGE(fmt.Sprintf("track_short_%d", t),
				[]milp.Term{{Var: shortfall[t], Coef: 1}, {Var: s[t], Coef: -1}, {Var: g[t], Coef: 1}}, 0)
		} else {
			prob.AddEQ(fmt.Sprintf("sp_eq_gen_%d", t),
				[]milp.Term{{Var: s[t], Coef: 1}, {Var: g[t], Coef: -1}}, 0)
		}

		// Smoothing linkage: s[t]-s[t-1] = dpos[t]-dneg[t].
		smooth := []milp.Term{
			{Var: s[t], Coef: 1},
			{Var: dpos[t], Coef: -1},
			{Var: dneg[t], Coef: 1},
		}
		smoothRHS := 0.0
		if t == 0 {
			smoothRHS = initialGenerationMW
		} else {
			smooth = append(smooth, milp.Term{Var: s[t-1], Coef: -1})
		}
		prob.AddEQ(fmt.Sprintf("smooth_%d", t), smooth, smoothRHS)
	}

	var objective []milp.Term
	for t := 0; t < T; t++ {
		w := forecast[t].SmoothingWeight
		objective = append(objective,
			milp.Term{Var: dpos[t], Coef: w},
			milp.Term{Var: dneg[t], Coef: w},
			milp.Term{Var: slackHi[t], Coef: cfg.SlackPenalty},
			milp.Term{Var: slackLo[t], Coef: cfg.SlackPenalty},
			milp.Term{Var: floorSlack[t], Coef: cfg.FloorPenalty},
		)
		if forecast[t].RaftingWindow {
			objective = append(objective, milp.Term{Var: shortfall[t], Coef: cfg.TrackingWeight})
		}
	}
	prob.SetObjective(objective)

	sol := prob.Solve(ctx)

	rows := make([]series.ScheduleRow, T)
	copy(rows, forecast)
	for t := 0; t < T; t++ {
		rows[t].GenerationMW = sol.Value(g[t])
		rows[t].SetpointMW = sol.Value(s[t])
		rows[t].ElevationFt = sol.Value(H[t])
		rows[t].StorageAF = sol.Value(A[t])
		if sol.HasValues() {
			fillDiagnostics(&rows[t])
		}
	}

	return Result{Rows: rows, Status: sol.Status, Objective: sol.Objective}, nil
}

// fillDiagnostics derives the reporting columns from the solved trajectory.
func fillDiagnostics(row *series.ScheduleRow) {
	mf12MW := hydro.MF12PowerMW(row.MFRAPowerMW, row.FlowR4, row.FlowR5L, row.Mode)
	mf12CFS := hydro.MF12FlowCFS(mf12MW)

	row.MF12PowerMW = mf12MW
	row.MF12FlowCFS = mf12CFS
	row.OutflowCFS = hydro.OXPHFlowCFS(row.GenerationMW)
	row.HeadLimitMW = hydro.HeadLimitMW(row.ElevationFt)
	if row.Mode == series.ModeSpill {
		row.RegulatedCFS = math.NaN()
	} else {
		row.RegulatedCFS = hydro.RegulatedCFS(mf12CFS, row.FlowR4, row.FlowR5L)
	}
}

// hourInputs projects a schedule row onto the mass-balance inputs.
func hourInputs(row series.ScheduleRow) hydro.HourInputs {
	return hydro.HourInputs{
		FlowR4:      row.FlowR4,
		FlowR30:     row.FlowR30,
		FlowR20:     row.FlowR20,
		FlowR5L:     row.FlowR5L,
		FlowR26:     row.FlowR26,
		MFRAPowerMW: row.MFRAPowerMW,
		Mode:        row.Mode,
		BiasCFS:     row.BiasCFS,
	}
}
