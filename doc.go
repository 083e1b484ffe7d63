// Package intentconflict enumerates conflicts among declared network
// routing intents.
//
// Given a set of intents (unique shortest paths, path preferences,
// exact ECMP sets) and a topology whose link weights are unknowns, the
// engine finds every Minimal Unsatisfiable Subset (MUS) — a smallest
// set of intents no weight assignment can realize jointly — and every
// Maximal Satisfiable Subset (MSS) — a largest set some assignment can.
//
// The module is organized bottom-up:
//
//	intents/   — intent sum type, dense-index universe, JSON loading
//	topology/  — routers, links, dense edge-indexed digraph
//	subset/    — ordered intent-index sets (seeds, MUSes, cache keys)
//	spath/     — Dijkstra + bounded all-shortest-path enumeration
//	simplex/   — exact rational solver for weight constraints,
//	             with a push/pop assertion stack
//	oracle/    — CEGAR satisfiability oracle with a verdict cache
//	mapsolver/ — SAT-backed seed generator with blocking clauses
//	marco/     — the MARCO driver and CS-tree batch MUS extraction
//	stats/     — per-run timers and counters
//
// The typical entry point is marco.New followed by Run:
//
//	eng, err := marco.New(universe, topo, marco.WithBias(marco.BiasMUSes))
//	if err != nil { ... }
//	report, err := eng.Run(context.Background())
//
// The engine is a single-run, in-memory library: no persistence, no
// network surface, deterministic output for a fixed intent ordering.
package intentconflict
