package hydro

import (
	"math"

	"github.com/pcwa/abayscheduler/series"
)

// StorageAF converts ABAY elevation (ft) to storage volume (acre-feet) using
// the fitted stage-storage quadratic.
func StorageAF(ft float64) float64 {
	return StorageACoef*ft*ft + StorageBCoef*ft + StorageCCoef
}

// ElevationFt inverts the stage-storage quadratic, solving
// a*ft^2 + b*ft + (c - af) = 0 for the larger root. The reservoir's
// operating range lies on the upper branch of the parabola, so the larger
// root is always the physical one. The discriminant is floored at zero so
// floating-point noise near the vertex cannot produce a domain error.
func ElevationFt(af float64) float64 {
	a := StorageACoef
	b := StorageBCoef
	c := StorageCCoef - af
	disc := b*b - 4*a*c
	if disc < 0 {
		disc = 0
	}
	return (-b + math.Sqrt(disc)) / (2 * a)
}

// OXPHFlowCFS converts OXPH generation (MW) to discharge (cfs) using the
// affine curve from the goal document.
func OXPHFlowCFS(mw float64) float64 {
	return OXPHFlowFactor*mw + OXPHFlowOffset
}

// MF12PowerMW derives MF12 power from the MFRA total-plant reading. In GEN
// mode the side-water reduction (clamped (R4-R5L)/10) is taken off the
// total before applying the MF12 share; in SPILL mode the total is used
// directly. The result is floored at zero.
func MF12PowerMW(mfraMW, r4CFS, r5lCFS float64, mode series.Mode) float64 {
	reduction := (r4CFS - r5lCFS) / 10.0
	if reduction < 0 {
		reduction = 0
	}
	if reduction > SideWaterMaxCFS {
		reduction = SideWaterMaxCFS
	}

	var mw float64
	if mode == series.ModeSpill {
		mw = mfraMW * MF12ShareOfMFRA
	} else {
		mw = (mfraMW - reduction) * MF12ShareOfMFRA
	}
	if mw < 0 {
		mw = 0
	}
	return mw
}

// MF12FlowCFS converts MF12 power (MW) to flow (cfs) with the confirmed
// quadratic curve. Negative power readings are treated as zero.
func MF12FlowCFS(mw float64) float64 {
	if mw < 0 {
		mw = 0
	}
	return MF12FlowQuadCoef*mw*mw + MF12FlowLinCoef*mw + MF12FlowOffset
}

// RegulatedCFS is the capped excess-over-bypass flow component that routes
// into ABAY in GEN mode. Both candidate terms are computed first and the max
// of the capped sum and the floor term is taken; the 886 cfs cap and the
// ordering are fixed business rules.
func RegulatedCFS(mf12CFS, r4CFS, r5lCFS float64) float64 {
	term1 := math.Min(RegulatedCapCFS, (mf12CFS+r4CFS)-r5lCFS)
	term2 := math.Max(0, r4CFS-r5lCFS)
	return math.Max(term1, term2)
}

// HeadLimitMW is the maximum OXPH generation supportable at the given ABAY
// elevation due to reduced hydraulic head.
func HeadLimitMW(ft float64) float64 {
	return HeadLossSlope*ft + HeadLossIntercept
}

// HourInputs carries the per-hour series needed by the mass-balance
// formulas. The same inputs drive the bias estimator, the optimizer, and
// the recalculator, so the routing arithmetic lives here and nowhere else.
type HourInputs struct {
	FlowR4      float64
	FlowR30     float64
	FlowR20     float64
	FlowR5L     float64
	FlowR26     float64
	MFRAPowerMW float64
	Mode        series.Mode
	BiasCFS     float64
}

// BaseInflowCFS is the mode-independent part of the net reservoir inflow,
// with the bias correction applied additively.
func (in HourInputs) BaseInflowCFS() float64 {
	return in.FlowR30 + in.FlowR4 + (in.FlowR20 - in.FlowR5L) - in.FlowR26 + in.BiasCFS
}

// MF12FlowCFS is the MF12 discharge implied by the hour's MFRA reading.
func (in HourInputs) MF12FlowCFS() float64 {
	return MF12FlowCFS(MF12PowerMW(in.MFRAPowerMW, in.FlowR4, in.FlowR5L, in.Mode))
}

// NetInflowCFS is the full ABAY net inflow for the hour given OXPH
// generation `oxphMW`. GEN mode routes the regulated component; SPILL mode
// routes the MF12 discharge directly.
func (in HourInputs) NetInflowCFS(oxphMW float64) float64 {
	mf12 := in.MF12FlowCFS()
	base := in.BaseInflowCFS()
	if in.Mode == series.ModeSpill {
		return base + mf12 - OXPHFlowCFS(oxphMW)
	}
	return base + RegulatedCFS(mf12, in.FlowR4, in.FlowR5L) - OXPHFlowCFS(oxphMW)
}

// KnownInflowCFS is the net inflow with the generation-dependent term left
// out: only the constant OXPH flow offset is subtracted, so that
// net = known - factor*g. The optimizer and recalculator both integrate
// storage as A[t] = A[t-1] + k*(known - factor*g[t]).
func (in HourInputs) KnownInflowCFS() float64 {
	mf12 := in.MF12FlowCFS()
	base := in.BaseInflowCFS()
	if in.Mode == series.ModeSpill {
		return base + mf12 - OXPHFlowOffset
	}
	return base + RegulatedCFS(mf12, in.FlowR4, in.FlowR5L) - OXPHFlowOffset
}

// HeadLimitedCapMW solves the head-loss and mass-balance equations jointly
// for the maximum generation whose resulting end-of-hour elevation still
// satisfies the head-loss inequality:
//
//	A_t = A_prev + k*(known - f*g)
//	g  <= a*H_t + b
//
// Eliminating H_t gives g*(1 + a*k*f) <= a*H_prev + a*k*known + b.
// No iteration is needed.
func HeadLimitedCapMW(hPrevFt, knownCFS float64) float64 {
	a := HeadLossSlope
	b := HeadLossIntercept
	f := OXPHFlowFactor
	k := AFPerCFSHour
	rhs := a*hPrevFt + a*k*knownCFS + b
	return rhs / (1.0 + a*k*f)
}
