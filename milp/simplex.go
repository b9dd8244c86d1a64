package milp

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"
)

// solveRelaxed solves the LP relaxation of the problem with the given
// variable bounds (which branch-and-bound tightens per node).
//
// The standard form gonum's simplex expects (min c'y s.t. Ay = b, y >= 0)
// is built directly: every variable is shifted by its lower bound so the
// nonnegativity requirement is native, inequality rows gain one slack
// column each, and finite upper bounds become slacked rows on the shifted
// span. Shifting keeps the matrix small and well conditioned; routing
// bounds through a free-variable +/- split doubles the columns and has
// produced near-singular bases on this model family. Lower bounds must be
// finite; upper bounds may be +Inf.
func (p *Problem) solveRelaxed(lower, upper []float64) (float64, []float64, error) {
	n := len(p.obj)

	type stdRow struct {
		coeffs []float64
		rhs    float64
		slack  float64 // +1 for <=, -1 for >=, 0 for ==
	}
	var rows []stdRow

	for _, c := range p.cons {
		r := make([]float64, n)
		for _, t := range c.terms {
			r[int(t.Var)] += t.Coef
		}
		rhs := c.rhs
		for i := 0; i < n; i++ {
			if r[i] != 0 {
				rhs -= r[i] * lower[i]
			}
		}
		switch c.op {
		case opLE:
			rows = append(rows, stdRow{r, rhs, 1})
		case opGE:
			rows = append(rows, stdRow{r, rhs, -1})
		case opEQ:
			rows = append(rows, stdRow{r, rhs, 0})
		}
	}

	for i := 0; i < n; i++ {
		if math.IsInf(upper[i], 1) {
			continue
		}
		r := make([]float64, n)
		r[i] = 1
		rows = append(rows, stdRow{r, upper[i] - lower[i], 1})
	}

	// With no rows at all the minimum sits at the lower bounds, unless a
	// negative cost makes the problem unbounded.
	if len(rows) == 0 {
		obj := 0.0
		for i := 0; i < n; i++ {
			if p.obj[i] < 0 {
				return 0, nil, lp.ErrUnbounded
			}
			obj += p.obj[i] * lower[i]
		}
		x := make([]float64, n)
		copy(x, lower)
		return obj, x, nil
	}

	nSlack := 0
	for _, r := range rows {
		if r.slack != 0 {
			nSlack++
		}
	}
	cols := n + nSlack

	a := mat.NewDense(len(rows), cols, nil)
	b := make([]float64, len(rows))
	slackCol := n
	for i, r := range rows {
		for j := 0; j < n; j++ {
			if r.coeffs[j] != 0 {
				a.Set(i, j, r.coeffs[j])
			}
		}
		b[i] = r.rhs
		if r.slack != 0 {
			a.Set(i, slackCol, r.slack)
			slackCol++
		}
	}

	c := make([]float64, cols)
	copy(c, p.obj)

	opt, yStd, err := lp.Simplex(c, a, b, 0, nil)
	if err != nil {
		return 0, nil, err
	}

	// Undo the shift: x = y + lower, and the dropped constant c'lower
	// re-enters the objective.
	x := make([]float64, n)
	shift := 0.0
	for i := 0; i < n; i++ {
		x[i] = yStd[i] + lower[i]
		shift += p.obj[i] * lower[i]
	}
	return opt + shift, x, nil
}
