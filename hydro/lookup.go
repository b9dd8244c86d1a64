package hydro

import (
	"math"

	"github.com/pcwa/abayscheduler/curve"
)

// DischargeTable is an optional empirically fitted OXPH MW -> cfs lookup
// curve. The affine OXPHFlowCFS equation is what the optimizer and
// recalculator use; the table exists for reporting paths that want the
// fitted curve instead.
type DischargeTable struct {
	Curve curve.Curve
}

// FlowCFS interpolates the table at `mw`, falling back to the affine
// equation outside the table's span.
func (d *DischargeTable) FlowCFS(mw float64) float64 {
	v := d.Curve.ValueAt(mw)
	if math.IsNaN(v) {
		return OXPHFlowCFS(mw)
	}
	return v
}
