package spath

import (
	"fmt"

	"github.com/netsolv/intentconflict/intents"
	"github.com/netsolv/intentconflict/topology"
)

// AllShortest enumerates every shortest path from src to dst under w,
// as router-name paths, in deterministic (adjacency) order. It returns
// the shortest distance alongside; when dst is unreachable the path
// list is empty and the distance is Unreachable.
//
// Enumeration walks the tight-arc DAG: arc (u,v) lies on a shortest
// src→dst path iff distF(u) + w(u,v) + distR(v) == distF(dst), where
// distF is forward distance from src and distR reverse distance from
// dst. Walking only tight arcs makes the traversal output-sensitive —
// every branch taken extends at least one reported path.
//
// limit caps the number of reported paths; exceeding it returns
// ErrTooManyPaths (limit ≤ 0 selects DefaultPathLimit). A truncated
// answer would be unsound for the caller: a counterexample path the
// CEGAR loop never sees is a constraint it never adds.
func AllShortest(g *topology.Graph, w []int64, src, dst, limit int) ([]intents.Path, int64, error) {
	// 1) Same validation surface as Dist, plus dst.
	if g == nil {
		return nil, 0, ErrNilGraph
	}
	if len(w) != g.NumArcs() {
		return nil, 0, fmt.Errorf("%w: got %d, want %d", ErrBadWeights, len(w), g.NumArcs())
	}
	if src < 0 || src >= g.NumNodes() {
		return nil, 0, fmt.Errorf("%w: src %d", ErrNodeNotFound, src)
	}
	if dst < 0 || dst >= g.NumNodes() {
		return nil, 0, fmt.Errorf("%w: dst %d", ErrNodeNotFound, dst)
	}
	for id, wt := range w {
		if wt < 1 {
			u, v := g.Ends(id)

			return nil, 0, fmt.Errorf("%w: arc %s→%s weight=%d",
				ErrNonPositiveWeight, g.NodeName(u), g.NodeName(v), wt)
		}
	}
	if limit <= 0 {
		limit = DefaultPathLimit
	}

	// 2) Forward distances from src, reverse distances from dst.
	distF := dist(g, adjOf(g), w, src)
	if distF[dst] == Unreachable {
		return nil, Unreachable, nil
	}
	distR := dist(g, reverseAdj(g), w, dst)
	total := distF[dst]

	// 3) Depth-first walk over tight arcs only. The DAG is acyclic
	//    because weights are ≥ 1, so distF strictly increases along any
	//    tight arc and no bookkeeping for revisits is needed.
	e := &enumerator{g: g, w: w, distF: distF, distR: distR, total: total, dst: dst, limit: limit}
	e.walk(src, 0, []int{src})
	if e.overflow {
		return nil, 0, fmt.Errorf("%w: %s→%s, limit %d",
			ErrTooManyPaths, g.NodeName(src), g.NodeName(dst), limit)
	}

	return e.out, total, nil
}

// AllWithin enumerates every simple path from src to dst whose total
// weight under w is at most bound, in deterministic (adjacency) order.
// It generalizes AllShortest: with bound equal to the shortest
// distance the two agree, and a larger bound additionally reports the
// near-shortest paths a preference intent must stay ahead of.
//
// A negative bound, or an unreachable dst, yields an empty list. limit
// behaves as in AllShortest.
func AllWithin(g *topology.Graph, w []int64, src, dst int, bound int64, limit int) ([]intents.Path, error) {
	if g == nil {
		return nil, ErrNilGraph
	}
	if len(w) != g.NumArcs() {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrBadWeights, len(w), g.NumArcs())
	}
	if src < 0 || src >= g.NumNodes() {
		return nil, fmt.Errorf("%w: src %d", ErrNodeNotFound, src)
	}
	if dst < 0 || dst >= g.NumNodes() {
		return nil, fmt.Errorf("%w: dst %d", ErrNodeNotFound, dst)
	}
	for id, wt := range w {
		if wt < 1 {
			u, v := g.Ends(id)

			return nil, fmt.Errorf("%w: arc %s→%s weight=%d",
				ErrNonPositiveWeight, g.NodeName(u), g.NodeName(v), wt)
		}
	}
	if limit <= 0 {
		limit = DefaultPathLimit
	}

	// Reverse distances prune every branch that cannot finish within
	// the bound: extending to v is worthwhile only when the best
	// possible completion acc + w(u,v) + distR(v) still fits.
	distR := dist(g, reverseAdj(g), w, dst)
	if distR[src] == Unreachable || distR[src] > bound {
		return nil, nil
	}

	e := &boundedWalker{
		g: g, w: w, distR: distR,
		bound: bound, dst: dst, limit: limit,
		onStack: make([]bool, g.NumNodes()),
	}
	e.walk(src, 0, []int{src})
	if e.overflow {
		return nil, fmt.Errorf("%w: %s→%s, limit %d",
			ErrTooManyPaths, g.NodeName(src), g.NodeName(dst), limit)
	}

	return e.out, nil
}

// boundedWalker enumerates simple paths under a total-weight bound.
// Unlike the tight-arc DAG walk, near-shortest paths can revisit a
// node, so the current stack is tracked explicitly to stay simple.
type boundedWalker struct {
	g        *topology.Graph
	w        []int64
	distR    []int64
	bound    int64
	dst      int
	limit    int
	onStack  []bool
	out      []intents.Path
	overflow bool
}

func (e *boundedWalker) walk(u int, acc int64, stack []int) {
	if e.overflow {
		return
	}
	if u == e.dst {
		if len(e.out) == e.limit {
			e.overflow = true

			return
		}
		p := make(intents.Path, len(stack))
		for i, node := range stack {
			p[i] = e.g.NodeName(node)
		}
		e.out = append(e.out, p)

		return
	}
	e.onStack[u] = true
	for _, a := range e.g.Adj(u) {
		if e.onStack[a.To] {
			continue
		}
		next := acc + e.w[a.ID]
		if e.distR[a.To] == Unreachable || next+e.distR[a.To] > e.bound {
			continue
		}
		e.walk(a.To, next, append(stack, a.To))
	}
	e.onStack[u] = false
}

type enumerator struct {
	g        *topology.Graph
	w        []int64
	distF    []int64
	distR    []int64
	total    int64
	dst      int
	limit    int
	out      []intents.Path
	overflow bool
}

func (e *enumerator) walk(u int, acc int64, stack []int) {
	if e.overflow {
		return
	}
	if u == e.dst {
		if len(e.out) == e.limit {
			e.overflow = true

			return
		}
		p := make(intents.Path, len(stack))
		for i, node := range stack {
			p[i] = e.g.NodeName(node)
		}
		e.out = append(e.out, p)

		return
	}
	for _, a := range e.g.Adj(u) {
		next := acc + e.w[a.ID]
		if e.distR[a.To] == Unreachable || next+e.distR[a.To] != e.total {
			continue // not a tight arc
		}
		e.walk(a.To, next, append(stack, a.To))
	}
}
