package simplex

import "fmt"

// op distinguishes the two normalized constraint forms.
type op uint8

const (
	opLE op = iota // Σ aᵢxᵢ ≤ b
	opEQ           // Σ aᵢxᵢ = b
)

// constraint is one asserted row, kept in original-variable space;
// the lower-bound substitution happens at tableau build time.
type constraint struct {
	coefs Expr
	kind  op
	rhs   int64
}

// Solver holds the assertion stack. It is not safe for concurrent use:
// the oracle owns it exclusively (spec'd single-threaded engine).
type Solver struct {
	lower []int64 // per-variable lower bound
	cons  []constraint
	marks []int // scope stack: saved constraint counts
}

// New creates an empty solver.
func New() *Solver {
	return &Solver{}
}

// NewVar declares a variable with lower bound lo. Variables persist
// across scopes; declare them all before the first Push.
func (s *Solver) NewVar(lo int64) Var {
	s.lower = append(s.lower, lo)

	return Var(len(s.lower) - 1)
}

// NumVars returns the number of declared variables.
func (s *Solver) NumVars() int { return len(s.lower) }

// Push opens a new assertion scope.
func (s *Solver) Push() {
	s.marks = append(s.marks, len(s.cons))
}

// Pop discards every constraint asserted since the matching Push.
func (s *Solver) Pop() error {
	if len(s.marks) == 0 {
		return ErrNoScope
	}
	mark := s.marks[len(s.marks)-1]
	s.marks = s.marks[:len(s.marks)-1]
	s.cons = s.cons[:mark]

	return nil
}

// Depth returns the number of open scopes.
func (s *Solver) Depth() int { return len(s.marks) }

// NumConstraints returns the number of currently asserted constraints
// (all scopes).
func (s *Solver) NumConstraints() int { return len(s.cons) }

// AssertLE asserts Σ e ≤ rhs in the current scope.
func (s *Solver) AssertLE(e Expr, rhs int64) error {
	return s.assert(e, opLE, rhs)
}

// AssertEQ asserts Σ e = rhs in the current scope.
func (s *Solver) AssertEQ(e Expr, rhs int64) error {
	return s.assert(e, opEQ, rhs)
}

// AssertLess asserts a < b over integers, i.e. a − b ≤ −1.
func (s *Solver) AssertLess(a, b Expr) error {
	return s.assert(a.Minus(b), opLE, -1)
}

// AssertEqual asserts a = b, i.e. a − b = 0.
func (s *Solver) AssertEqual(a, b Expr) error {
	return s.assert(a.Minus(b), opEQ, 0)
}

func (s *Solver) assert(e Expr, kind op, rhs int64) error {
	coefs := make(Expr, len(e))
	for v, c := range e {
		if c == 0 {
			continue
		}
		if int(v) < 0 || int(v) >= len(s.lower) {
			return fmt.Errorf("%w: %d", ErrBadVar, v)
		}
		coefs[v] = c
	}
	s.cons = append(s.cons, constraint{coefs: coefs, kind: kind, rhs: rhs})

	return nil
}

// Solve decides feasibility of the current stack. It returns the model
// when feasible, nil when infeasible, and a non-nil error only for
// internal solver failures (which callers must treat as fatal).
func (s *Solver) Solve() (*Model, error) {
	return solveTableau(s)
}
