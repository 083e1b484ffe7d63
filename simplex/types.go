package simplex

import "errors"

// Sentinel errors. ErrPivotLimit and ErrModelOverflow are
// backing-solver internal failures: fatal to the whole run, never
// folded into a SAT/UNSAT verdict.
var (
	// ErrNoScope indicates a Pop without a matching Push.
	ErrNoScope = errors.New("simplex: pop without matching push")

	// ErrPivotLimit indicates the pivot safety valve fired. Bland's
	// rule cannot cycle, so hitting the limit signals an internal bug
	// or a pathologically large system, not a legitimate UNSAT.
	ErrPivotLimit = errors.New("simplex: pivot limit exceeded")

	// ErrModelOverflow indicates the integer-scaled model does not fit
	// in int64.
	ErrModelOverflow = errors.New("simplex: scaled model overflows int64")

	// ErrBadVar indicates an expression referencing a variable the
	// solver never declared.
	ErrBadVar = errors.New("simplex: unknown variable")
)

// Var identifies a solver variable. Variables are dense, 0-based, and
// live for the whole solver lifetime regardless of scopes.
type Var int

// Expr is a linear expression: a map from variable to coefficient.
// The zero map is the constant 0.
type Expr map[Var]int64

// Sum builds the expression Σ vars (each with coefficient +1).
// Repeated variables accumulate, so a path crossing the same arc twice
// counts its weight twice.
func Sum(vars ...Var) Expr {
	e := make(Expr, len(vars))
	for _, v := range vars {
		e[v]++
	}

	return e
}

// Minus returns e − f as a new expression, dropping cancelled terms.
// Shared arcs of two paths vanish here, which keeps tableaus small.
func (e Expr) Minus(f Expr) Expr {
	out := make(Expr, len(e)+len(f))
	for v, c := range e {
		out[v] = c
	}
	for v, c := range f {
		out[v] -= c
		if out[v] == 0 {
			delete(out, v)
		}
	}

	return out
}
