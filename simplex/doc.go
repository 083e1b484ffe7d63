// Package simplex is the backing constraint solver for the
// satisfiability oracle: it decides feasibility of conjunctions of
// linear constraints over symbolic edge weights and produces a model
// when one exists.
//
// The constraint language is deliberately small — it is exactly what
// the intent encodings need:
//
//   - per-variable lower bounds  x ≥ lo  (lo ≥ 1, declared with the
//     variable),
//   - linear inequalities        Σ aᵢxᵢ ≤ b,
//   - linear equalities          Σ aᵢxᵢ = b,
//
// with strict comparisons expressed in integer-gap form: a < b becomes
// a − b ≤ −1. All arithmetic is exact (math/big rationals) and pivoting
// uses Bland's rule, so Solve is deterministic and terminates: the same
// constraint stack always yields the same verdict and the same model.
// That determinism is load-bearing — the oracle's verdict cache promises
// that re-checking a subset reproduces the cached verdict exactly.
//
// The solver keeps an assertion stack: Push opens a scope, Pop discards
// every constraint asserted since the matching Push. Scopes must be
// strictly LIFO; the oracle drives them through a scope guard that
// releases on every exit path. Baseline constraints (the topology's
// weight domains) live at depth 0 and are never rebuilt between
// subset checks.
//
// Feasibility is decided by a phase-1 simplex over the slack/artificial
// extension of the stack; no objective phase is needed because callers
// only ever ask "is there a model", never "which model is best".
package simplex
