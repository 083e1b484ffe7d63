// Package spath computes shortest paths over a topology.Graph under a
// caller-supplied weight vector.
//
// It serves as the external shortest-path oracle of the CEGAR loop:
// every refinement round produces a fresh candidate weight assignment,
// and the oracle asks which concrete paths are (equally) shortest under
// it. Weights therefore arrive as a plain []int64 indexed by ArcID
// rather than living on the graph — the same graph structure is
// re-queried thousands of times per run under different weights.
//
// Three operations are exposed:
//
//   - Dist: single-source Dijkstra distances (min-heap with
//     lazy-decrease-key: duplicates are pushed and stale entries
//     skipped on pop).
//   - AllShortest: every shortest path between a node pair, enumerated
//     by walking the tight-arc DAG (arcs with
//     dist(src,u) + w(u,v) + dist(v,dst) == dist(src,dst)), bounded by
//     a hard path limit.
//   - AllWithin: every simple path between a node pair with total
//     weight at most a given bound, used when an intent constrains
//     more than the shortest tier (a preference's secondary must beat
//     every path outside the declared pair).
//
// Complexity: Dist is O((V+E) log V); AllShortest adds a second
// (reverse) Dijkstra plus output-sensitive DAG traversal, O(limit · V)
// for the walk. AllWithin shares the reverse-distance pruning but
// enumerates simple paths, so its cost grows with the bound.
package spath
