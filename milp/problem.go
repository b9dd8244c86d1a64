// Package milp provides a small mixed-integer linear programming layer so
// that model-building code stays solver-agnostic: callers declare variables,
// bounds, linear constraints and a minimization objective, then call Solve
// with a context. LP relaxations are solved with gonum's simplex
// implementation and integrality is enforced by branch-and-bound.
//
// Solver outcomes are reported as a status value on the returned Solution,
// never as a raised error: the caller decides whether infeasibility is
// fatal.
package milp

import "math"

// Var identifies a decision variable within a Problem.
type Var int

// Term is a single coefficient*variable entry in a linear expression.
type Term struct {
	Var  Var
	Coef float64
}

// Status reports the outcome of a solve.
type Status string

const (
	StatusOptimal    Status = "Optimal"
	StatusInfeasible Status = "Infeasible"
	StatusUnbounded  Status = "Unbounded"
	// StatusTimeout covers both a cancelled/expired context and an
	// exhausted node budget: the solve was abandoned without proof.
	StatusTimeout Status = "Timeout"
	StatusError   Status = "Error"
)

type conOp int

const (
	opLE conOp = iota
	opGE
	opEQ
)

type constraint struct {
	name  string
	terms []Term
	op    conOp
	rhs   float64
}

// Problem is a mixed-integer linear program under construction.
type Problem struct {
	// NodeLimit bounds the number of branch-and-bound nodes explored
	// before the solve gives up with StatusTimeout.
	NodeLimit int

	name     string
	obj      []float64
	lower    []float64
	upper    []float64
	names    []string
	integers []Var
	cons     []constraint
}

// NewProblem returns an empty minimization problem.
func NewProblem(name string) *Problem {
	return &Problem{
		name:      name,
		NodeLimit: 50000,
	}
}

// AddVar declares a continuous variable bounded to [lo, hi]. The lower
// bound must be finite; the upper bound may be math.Inf(1).
func (p *Problem) AddVar(name string, lo, hi float64) Var {
	v := Var(len(p.obj))
	p.obj = append(p.obj, 0)
	p.lower = append(p.lower, lo)
	p.upper = append(p.upper, hi)
	p.names = append(p.names, name)
	return v
}

// AddBinaryVar declares a {0,1} variable.
func (p *Problem) AddBinaryVar(name string) Var {
	v := p.AddVar(name, 0, 1)
	p.integers = append(p.integers, v)
	return v
}

// AddLE adds the constraint terms <= rhs.
func (p *Problem) AddLE(name string, terms []Term, rhs float64) {
	p.cons = append(p.cons, constraint{name: name, terms: terms, op: opLE, rhs: rhs})
}

// AddGE adds the constraint terms >= rhs.
func (p *Problem) AddGE(name string, terms []Term, rhs float64) {
	p.cons = append(p.cons, constraint{name: name, terms: terms, op: opGE, rhs: rhs})
}

// AddEQ adds the constraint terms == rhs.
func (p *Problem) AddEQ(name string, terms []Term, rhs float64) {
	p.cons = append(p.cons, constraint{name: name, terms: terms, op: opEQ, rhs: rhs})
}

// SetObjective sets the minimization objective. Variables not named keep a
// zero cost. Repeated terms for the same variable accumulate.
func (p *Problem) SetObjective(terms []Term) {
	for i := range p.obj {
		p.obj[i] = 0
	}
	for _, t := range terms {
		p.obj[t.Var] += t.Coef
	}
}

// NumVars returns the number of declared variables.
func (p *Problem) NumVars() int {
	return len(p.obj)
}

// Solution holds the outcome of a solve. Values are only meaningful when
// HasValues reports true; an aborted solve may still carry the best
// incumbent found so far.
type Solution struct {
	Status    Status
	Objective float64

	values []float64
}

// Value returns the solved value of `v`, or NaN when the solution carries
// no values.
func (s *Solution) Value(v Var) float64 {
	if s.values == nil {
		return math.NaN()
	}
	return s.values[v]
}

// HasValues reports whether the solution carries variable values.
func (s *Solution) HasValues() bool {
	return s.values != nil
}
