// Package mapsolver generates unexplored intent subsets for the
// enumeration driver.
//
// It keeps one boolean variable per intent index in a SAT engine
// (gini). Any satisfying assignment of the clause database is an
// unexplored seed: its true variables form the subset. Found results
// carve the search space down through blocking clauses — an MUS blocks
// itself and all supersets, an MSS blocks itself and all subsets — so
// the generator never re-emits a subsumed seed, and an unsatisfiable
// clause database means the power set is exhausted.
//
// An optional bias makes each raw seed extremal before it is handed
// out: BiasMUSes pushes seeds up toward maximal unexplored subsets
// (more likely UNSAT, feeding the shrinker), BiasMSSes pushes them
// down toward minimal ones. An extremal seed lets the driver skip one
// step: a maximal SAT seed already is an MSS, a minimal UNSAT seed
// already is an MUS.
package mapsolver
