// Package marco enumerates all minimal conflicts (MUSes) and maximal
// realizable subsets (MSSes) of a routing-intent universe over a
// shared topology.
//
// The driver runs the MARCO loop: pull an unexplored seed from the
// map solver, classify it through the constraint oracle, then either
// grow a SAT seed into an MSS or hand an UNSAT seed to the CS-tree
// shrinker, which returns every MUS the seed contains in one call.
// Each result is blocked in the map solver so no explored region is
// ever revisited; the run ends when the map is exhausted, a timeout
// fires, or a result cap is reached.
//
// Typical use:
//
//	eng, err := marco.New(universe, topo, marco.WithBias(marco.BiasMUSes))
//	if err != nil { ... }
//	report, err := eng.Run(context.Background())
//
// Run to exhaustion the report holds the complete MUS and MSS sets;
// cut short it holds a sound prefix of them.
package marco
