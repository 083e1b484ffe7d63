package oracle

import "errors"

// Sentinel errors.
var (
	// ErrNilUniverse indicates New was called without an intent
	// universe.
	ErrNilUniverse = errors.New("oracle: nil intent universe")

	// ErrNilTopology indicates New was called without a topology.
	ErrNilTopology = errors.New("oracle: nil topology")

	// ErrDeclaredPath indicates an intent declares a path the
	// topology cannot route (missing router or link).
	ErrDeclaredPath = errors.New("oracle: declared path not in topology")

	// ErrSolver wraps backing-solver failures. These are fatal to the
	// run and never folded into a verdict.
	ErrSolver = errors.New("oracle: backing solver failure")
)

// Verdict is the oracle's answer for one subset.
type Verdict uint8

const (
	// VerdictSAT: some weight assignment realizes every intent in the
	// subset simultaneously.
	VerdictSAT Verdict = iota + 1

	// VerdictUNSAT: no weight assignment does.
	VerdictUNSAT
)

// String implements fmt.Stringer.
func (v Verdict) String() string {
	switch v {
	case VerdictSAT:
		return "SAT"
	case VerdictUNSAT:
		return "UNSAT"
	default:
		return "UNKNOWN"
	}
}

// DefaultCEGARRounds caps refinement iterations per Classify call.
// Hitting the cap is treated as UNSAT, which keeps reported MUSes
// sound at the cost of possibly over-reporting conflicts.
const DefaultCEGARRounds = 64
