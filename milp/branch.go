package milp

import (
	"context"
	"errors"
	"math"

	"gonum.org/v1/gonum/optimize/convex/lp"
)

// integralityTol is how far from an integer a relaxed binary may sit and
// still count as integral.
const integralityTol = 1e-6

type node struct {
	lower []float64
	upper []float64
}

// Solve runs depth-first branch-and-bound over the problem's integer
// variables, solving an LP relaxation per node. The context is checked
// between nodes; there is no way to interrupt an individual simplex call,
// so the effective deadline granularity is one relaxation.
func (p *Problem) Solve(ctx context.Context) Solution {
	root := node{
		lower: append([]float64(nil), p.lower...),
		upper: append([]float64(nil), p.upper...),
	}
	stack := []node{root}

	var (
		bestX     []float64
		bestObj   = math.Inf(1)
		explored  = 0
		sawError  = false
		feasible  = false
		unbounded = false
	)

	for len(stack) > 0 {
		if ctx.Err() != nil {
			return abortedSolution(bestX, bestObj)
		}
		if explored >= p.NodeLimit {
			return abortedSolution(bestX, bestObj)
		}

		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		obj, x, err := p.solveRelaxed(cur.lower, cur.upper)
		explored++

		switch {
		case errors.Is(err, lp.ErrInfeasible):
			continue
		case errors.Is(err, lp.ErrUnbounded):
			// An unbounded relaxation at any node means the integer
			// problem cannot have a bounded optimum either.
			unbounded = true
		case err != nil:
			sawError = true
			continue
		}
		if unbounded {
			return Solution{Status: StatusUnbounded, Objective: math.Inf(-1)}
		}
		feasible = true

		// Bound: this subtree cannot beat the incumbent.
		if obj >= bestObj-1e-9 && bestX != nil {
			continue
		}

		branchVar, frac := mostFractional(p.integers, x)
		if branchVar < 0 {
			// Integer-feasible: new incumbent.
			bestObj = obj
			bestX = append([]float64(nil), x...)
			continue
		}

		down := node{
			lower: append([]float64(nil), cur.lower...),
			upper: append([]float64(nil), cur.upper...),
		}
		up := node{
			lower: append([]float64(nil), cur.lower...),
			upper: append([]float64(nil), cur.upper...),
		}
		down.upper[branchVar] = math.Floor(x[branchVar])
		up.lower[branchVar] = math.Ceil(x[branchVar])

		// Explore the side the relaxation leans towards first.
		if frac < 0.5 {
			stack = append(stack, up, down)
		} else {
			stack = append(stack, down, up)
		}
	}

	if bestX != nil {
		return Solution{Status: StatusOptimal, Objective: bestObj, values: bestX}
	}
	if sawError && !feasible {
		return Solution{Status: StatusError, Objective: math.NaN()}
	}
	return Solution{Status: StatusInfeasible, Objective: math.NaN()}
}

// abortedSolution reports a timed-out or node-limited solve, carrying the
// incumbent values if any were found.
func abortedSolution(bestX []float64, bestObj float64) Solution {
	if bestX != nil {
		return Solution{Status: StatusTimeout, Objective: bestObj, values: bestX}
	}
	return Solution{Status: StatusTimeout, Objective: math.NaN()}
}

// mostFractional returns the integer variable furthest from integrality and
// its fractional part, or -1 when all integer variables are integral.
func mostFractional(integers []Var, x []float64) (int, float64) {
	best := -1
	bestDist := integralityTol
	bestFrac := 0.0
	for _, v := range integers {
		val := x[v]
		frac := val - math.Floor(val)
		dist := math.Min(frac, 1-frac)
		if dist > bestDist {
			best = int(v)
			bestDist = dist
			bestFrac = frac
		}
	}
	return best, bestFrac
}
