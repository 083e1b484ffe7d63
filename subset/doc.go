// Package subset provides the ordered, duplicate-free intent-index set
// value used throughout the enumeration engine.
//
// Seeds, MUSes, MSSes, blocking sets and oracle cache keys are all
// subsets of the dense intent universe {0..n-1}. A subset.Set keeps its
// elements sorted ascending, which makes subset/superset tests linear,
// iteration order deterministic, and the canonical cache key a plain
// byte comparison.
//
// Sets are treated as immutable values: every operation returns a new
// Set and never aliases the receiver's backing array, so a Set stored
// in a cache or a result list can never be mutated behind the caller's
// back.
package subset
