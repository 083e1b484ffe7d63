package spath

import (
	"container/heap"
	"fmt"

	"github.com/netsolv/intentconflict/topology"
)

// Dist computes shortest distances from node src to every node of g
// under the weight vector w (indexed by ArcID). Unreachable nodes get
// Unreachable.
//
// Preconditions (validated in order):
//  1. g must be non-nil (ErrNilGraph).
//  2. len(w) must equal g.NumArcs() (ErrBadWeights).
//  3. src must be a valid node index (ErrNodeNotFound).
//  4. Every weight must be ≥ 1 (ErrNonPositiveWeight) — checked
//     upfront so the heap loop can trust its inputs.
func Dist(g *topology.Graph, w []int64, src int) ([]int64, error) {
	if g == nil {
		return nil, ErrNilGraph
	}
	if len(w) != g.NumArcs() {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrBadWeights, len(w), g.NumArcs())
	}
	if src < 0 || src >= g.NumNodes() {
		return nil, fmt.Errorf("%w: %d", ErrNodeNotFound, src)
	}
	for id, wt := range w {
		if wt < 1 {
			u, v := g.Ends(id)

			return nil, fmt.Errorf("%w: arc %s→%s weight=%d",
				ErrNonPositiveWeight, g.NodeName(u), g.NodeName(v), wt)
		}
	}

	return dist(g, adjOf(g), w, src), nil
}

// adjFn abstracts forward vs reverse adjacency so the same heap loop
// serves both directions of the tight-arc test.
type adjFn func(u int) []topology.Arc

func adjOf(g *topology.Graph) adjFn { return g.Adj }

// reverseAdj materializes incoming-arc adjacency. Arc IDs are kept so
// that the same weight vector applies.
func reverseAdj(g *topology.Graph) adjFn {
	radj := make([][]topology.Arc, g.NumNodes())
	for id := 0; id < g.NumArcs(); id++ {
		u, v := g.Ends(id)
		radj[v] = append(radj[v], topology.Arc{To: u, ID: id})
	}

	return func(u int) []topology.Arc { return radj[u] }
}

// dist is the shared heap loop: lazy decrease-key, stale entries are
// skipped when popped.
func dist(g *topology.Graph, adj adjFn, w []int64, src int) []int64 {
	n := g.NumNodes()
	d := make([]int64, n)
	for i := range d {
		d[i] = Unreachable
	}
	d[src] = 0

	done := make([]bool, n)
	pq := make(nodePQ, 0, n)
	heap.Init(&pq)
	heap.Push(&pq, nodeItem{node: src, dist: 0})

	for pq.Len() > 0 {
		item := heap.Pop(&pq).(nodeItem)
		u := item.node
		if done[u] {
			continue // stale duplicate
		}
		done[u] = true

		for _, a := range adj(u) {
			nd := item.dist + w[a.ID]
			if nd < d[a.To] {
				d[a.To] = nd
				heap.Push(&pq, nodeItem{node: a.To, dist: nd})
			}
		}
	}

	return d
}

// nodeItem is one (node, tentative distance) heap entry.
type nodeItem struct {
	node int
	dist int64
}

// nodePQ is a min-heap of nodeItem ordered by dist, ties broken by
// node index for determinism.
type nodePQ []nodeItem

func (pq nodePQ) Len() int { return len(pq) }

func (pq nodePQ) Less(i, j int) bool {
	if pq[i].dist != pq[j].dist {
		return pq[i].dist < pq[j].dist
	}

	return pq[i].node < pq[j].node
}

func (pq nodePQ) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

func (pq *nodePQ) Push(x interface{}) { *pq = append(*pq, x.(nodeItem)) }

func (pq *nodePQ) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]

	return item
}
