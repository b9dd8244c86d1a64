package milp

import (
	"context"
	"math"
	"testing"
)

func TestSolveContinuousLP(test *testing.T) {

	// minimize x + y subject to x + y >= 1, both in [0, 10]
	p := NewProblem("lp")
	x := p.AddVar("x", 0, 10)
	y := p.AddVar("y", 0, 10)
	p.AddGE("cover", []Term{{x, 1}, {y, 1}}, 1)
	p.SetObjective([]Term{{x, 1}, {y, 1}})

	sol := p.Solve(context.Background())

	if sol.Status != StatusOptimal {
		test.Fatalf("expected optimal, got %v", sol.Status)
	}
	if math.Abs(sol.Objective-1.0) > 1e-6 {
		test.Errorf("expected objective 1, got %v", sol.Objective)
	}
	if math.Abs(sol.Value(x)+sol.Value(y)-1.0) > 1e-6 {
		test.Errorf("solution does not satisfy the constraint: x=%v y=%v", sol.Value(x), sol.Value(y))
	}
}

func TestSolveEquality(test *testing.T) {

	// minimize x subject to x == 2
	p := NewProblem("eq")
	x := p.AddVar("x", 0, 10)
	p.AddEQ("fix", []Term{{x, 1}}, 2)
	p.SetObjective([]Term{{x, 1}})

	sol := p.Solve(context.Background())

	if sol.Status != StatusOptimal {
		test.Fatalf("expected optimal, got %v", sol.Status)
	}
	if math.Abs(sol.Value(x)-2.0) > 1e-6 {
		test.Errorf("expected x=2, got %v", sol.Value(x))
	}
}

func TestSolveBranchesOnBinary(test *testing.T) {

	// maximize x + y (as min of the negation) with y binary and x + y <= 2.5.
	// The LP relaxation puts y at a fraction; branching must land y on 1.
	p := NewProblem("mip")
	x := p.AddVar("x", 0, 2)
	y := p.AddBinaryVar("y")
	p.AddLE("budget", []Term{{x, 1}, {y, 1}}, 2.5)
	p.SetObjective([]Term{{x, -1}, {y, -1}})

	sol := p.Solve(context.Background())

	if sol.Status != StatusOptimal {
		test.Fatalf("expected optimal, got %v", sol.Status)
	}
	yVal := sol.Value(y)
	if math.Abs(yVal-math.Round(yVal)) > 1e-6 {
		test.Errorf("binary variable not integral: %v", yVal)
	}
	if math.Abs(sol.Objective-(-2.5)) > 1e-6 {
		test.Errorf("expected objective -2.5, got %v", sol.Objective)
	}
}

func TestSolveMixedScaleModel(test *testing.T) {

	// A one-hour slice of the scheduling model: unit-scale weights,
	// machine-scale generation and thousand-scale elevation/storage
	// variables whose lower bounds sit far from zero. This shape used to
	// drive the relaxation into a near-singular basis.
	p := NewProblem("scale")
	lam0 := p.AddVar("lam0", 0, 1)
	lam1 := p.AddVar("lam1", 0, 1)
	h := p.AddVar("h", 1168, 1175)
	a := p.AddVar("a", 1900, 2600)
	g := p.AddVar("g", 0.8, 5.8)
	seg := p.AddBinaryVar("seg")

	p.AddEQ("lam_sum", []Term{{lam0, 1}, {lam1, 1}}, 1)
	p.AddEQ("seg_one", []Term{{seg, 1}}, 1)
	p.AddLE("lam0_seg", []Term{{lam0, 1}, {seg, -1}}, 0)
	p.AddLE("lam1_seg", []Term{{lam1, 1}, {seg, -1}}, 0)
	p.AddEQ("h_link", []Term{{h, 1}, {lam0, -1168}, {lam1, -1175}}, 0)
	p.AddEQ("a_link", []Term{{a, 1}, {lam0, -1950}, {lam1, -2550}}, 0)
	p.AddEQ("balance", []Term{{a, 1}, {g, 13.53}}, 2095)
	p.SetObjective([]Term{{g, -1}})

	sol := p.Solve(context.Background())

	if sol.Status != StatusOptimal {
		test.Fatalf("expected optimal, got %v", sol.Status)
	}
	if math.Abs(sol.Value(g)-5.8) > 1e-6 {
		test.Errorf("expected generation at its upper bound, got %v", sol.Value(g))
	}
	if math.Abs(sol.Value(a)-(2095-13.53*5.8)) > 1e-6 {
		test.Errorf("storage inconsistent with the balance row: %v", sol.Value(a))
	}
	wantH := 1168 + 7*(sol.Value(a)-1950)/600
	if math.Abs(sol.Value(h)-wantH) > 1e-6 {
		test.Errorf("elevation inconsistent with the interpolation link: %v", sol.Value(h))
	}
}

func TestSolveInfeasible(test *testing.T) {

	p := NewProblem("infeasible")
	x := p.AddVar("x", 0, 1)
	p.AddGE("impossible", []Term{{x, 1}}, 5)
	p.SetObjective([]Term{{x, 1}})

	sol := p.Solve(context.Background())

	if sol.Status != StatusInfeasible {
		test.Fatalf("expected infeasible, got %v", sol.Status)
	}
	if sol.HasValues() {
		test.Errorf("infeasible solution should carry no values")
	}
	if !math.IsNaN(sol.Value(x)) {
		test.Errorf("expected NaN value from an infeasible solution")
	}
}

func TestSolveCancelledContext(test *testing.T) {

	p := NewProblem("cancelled")
	x := p.AddVar("x", 0, 2)
	y := p.AddBinaryVar("y")
	p.AddLE("budget", []Term{{x, 1}, {y, 1}}, 2.5)
	p.SetObjective([]Term{{x, -1}, {y, -1}})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sol := p.Solve(ctx)
	if sol.Status != StatusTimeout {
		test.Fatalf("expected timeout on a cancelled context, got %v", sol.Status)
	}
}

func TestSolveNodeLimit(test *testing.T) {

	p := NewProblem("budgeted")
	vars := make([]Var, 6)
	terms := make([]Term, 6)
	for i := range vars {
		vars[i] = p.AddBinaryVar("b")
		terms[i] = Term{vars[i], 1}
	}
	p.AddLE("half", terms, 2.5)
	p.SetObjective([]Term{{vars[0], -1}, {vars[1], -1}, {vars[2], -1}})
	p.NodeLimit = 1

	sol := p.Solve(context.Background())
	if sol.Status != StatusTimeout && sol.Status != StatusOptimal {
		test.Fatalf("expected timeout or optimal under a tiny node budget, got %v", sol.Status)
	}
}
