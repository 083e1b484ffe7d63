package topology

import (
	"fmt"
	"sort"

	"github.com/netsolv/intentconflict/intents"
)

// ArcID densely indexes the directed edges of a Graph: 0..NumArcs()-1.
type ArcID = int

// Arc is one directed edge in the adjacency structure.
type Arc struct {
	To int   // head node index
	ID ArcID // dense arc id, indexes weight vectors and solver variables
}

// Graph is the dense directed view of a Topology. Every usable
// undirected link contributes two independent arcs. The node and arc
// numbering is deterministic: nodes are sorted by name, arcs are
// created in sorted (tail, head) order.
type Graph struct {
	nodes  []string
	nodeID map[string]int
	adj    [][]Arc
	tails  []int // per arc: tail node index
	heads  []int // per arc: head node index
	lo     []int64
	hi     []int64 // 0 = unbounded
	arcID  map[[2]int]ArcID
}

// BuildGraph validates the topology's links and constructs the dense
// digraph. Links with capacity 0 are skipped entirely.
func BuildGraph(t *Topology) (*Graph, error) {
	// 1) Collect node names from routers and link endpoints.
	names := make(map[string]struct{})
	for _, r := range t.Routers {
		if r.Name != "" {
			names[r.Name] = struct{}{}
		}
	}
	usable := 0
	for _, l := range t.Links {
		if l.A == "" || l.B == "" {
			return nil, fmt.Errorf("%w: %q—%q", ErrBadLink, l.A, l.B)
		}
		if l.A == l.B {
			return nil, fmt.Errorf("%w: %q", ErrSelfLoop, l.A)
		}
		if l.MinWeight < 1 || (l.MaxWeight != 0 && l.MaxWeight < l.MinWeight) {
			return nil, fmt.Errorf("%w: %q—%q [%d,%d]", ErrBadBounds, l.A, l.B, l.MinWeight, l.MaxWeight)
		}
		if l.Capacity == 0 {
			continue // administratively down
		}
		names[l.A] = struct{}{}
		names[l.B] = struct{}{}
		usable++
	}
	if usable == 0 {
		return nil, ErrNoLinks
	}

	// 2) Deterministic node numbering.
	g := &Graph{
		nodes:  make([]string, 0, len(names)),
		nodeID: make(map[string]int, len(names)),
		arcID:  make(map[[2]int]ArcID, 2*usable),
	}
	for name := range names {
		g.nodes = append(g.nodes, name)
	}
	sort.Strings(g.nodes)
	for i, name := range g.nodes {
		g.nodeID[name] = i
	}
	g.adj = make([][]Arc, len(g.nodes))

	// 3) Deterministic arc numbering: sort usable links by endpoint
	//    pair, then emit both directions.
	links := make([]Link, 0, usable)
	for _, l := range t.Links {
		if l.Capacity == 0 {
			continue
		}
		links = append(links, l)
	}
	sort.Slice(links, func(i, j int) bool {
		if links[i].A != links[j].A {
			return links[i].A < links[j].A
		}

		return links[i].B < links[j].B
	})
	for _, l := range links {
		u, v := g.nodeID[l.A], g.nodeID[l.B]
		if _, dup := g.arcID[[2]int{u, v}]; dup {
			return nil, fmt.Errorf("%w: %q—%q", ErrDuplicateLink, l.A, l.B)
		}
		g.addArc(u, v, l.MinWeight, l.MaxWeight)
		g.addArc(v, u, l.MinWeight, l.MaxWeight)
	}

	return g, nil
}

func (g *Graph) addArc(u, v int, lo, hi int64) {
	id := len(g.tails)
	g.tails = append(g.tails, u)
	g.heads = append(g.heads, v)
	g.lo = append(g.lo, lo)
	g.hi = append(g.hi, hi)
	g.adj[u] = append(g.adj[u], Arc{To: v, ID: id})
	g.arcID[[2]int{u, v}] = id
}

// NumNodes returns the node count.
func (g *Graph) NumNodes() int { return len(g.nodes) }

// NumArcs returns the directed edge count.
func (g *Graph) NumArcs() int { return len(g.tails) }

// NodeName returns the router name of node index i.
func (g *Graph) NodeName(i int) string { return g.nodes[i] }

// NodeID resolves a router name to its node index.
func (g *Graph) NodeID(name string) (int, bool) {
	i, ok := g.nodeID[name]

	return i, ok
}

// Adj returns the outgoing arcs of node u. Read-only.
func (g *Graph) Adj(u int) []Arc { return g.adj[u] }

// Ends returns the (tail, head) node indices of arc id.
func (g *Graph) Ends(id ArcID) (int, int) { return g.tails[id], g.heads[id] }

// Bounds returns the weight-domain bounds of arc id; hi == 0 means
// unbounded above.
func (g *Graph) Bounds(id ArcID) (lo, hi int64) { return g.lo[id], g.hi[id] }

// ArcBetween resolves a directed router pair to its arc id.
func (g *Graph) ArcBetween(from, to string) (ArcID, error) {
	u, ok := g.nodeID[from]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownRouter, from)
	}
	v, ok := g.nodeID[to]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownRouter, to)
	}
	id, ok := g.arcID[[2]int{u, v}]
	if !ok {
		return 0, fmt.Errorf("%w: %q→%q", ErrUnknownLink, from, to)
	}

	return id, nil
}

// PathArcs maps a declared intent path onto its sequence of arc ids,
// rejecting hops the topology cannot carry. This is where a path
// through a capacity-0 link is refused.
func (g *Graph) PathArcs(p intents.Path) ([]ArcID, error) {
	out := make([]ArcID, 0, len(p)-1)
	for i := 1; i < len(p); i++ {
		id, err := g.ArcBetween(p[i-1], p[i])
		if err != nil {
			return nil, err
		}
		out = append(out, id)
	}

	return out, nil
}

// PathWeight sums w over the arcs of p. w is indexed by ArcID.
func (g *Graph) PathWeight(p intents.Path, w []int64) (int64, error) {
	arcs, err := g.PathArcs(p)
	if err != nil {
		return 0, err
	}
	var total int64
	for _, id := range arcs {
		total += w[id]
	}

	return total, nil
}
