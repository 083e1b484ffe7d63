package topology

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
)

// Sentinel errors for topology loading and graph construction.
var (
	// ErrNoLinks indicates a topology without a single usable link.
	ErrNoLinks = errors.New("topology: no usable links")

	// ErrBadLink indicates a link with a missing endpoint name.
	ErrBadLink = errors.New("topology: link endpoint name is empty")

	// ErrSelfLoop indicates a link from a router to itself.
	ErrSelfLoop = errors.New("topology: self-loop link")

	// ErrDuplicateLink indicates two links between the same router pair.
	ErrDuplicateLink = errors.New("topology: duplicate link")

	// ErrBadBounds indicates a link weight domain with lo < 1 or hi < lo.
	ErrBadBounds = errors.New("topology: bad link weight bounds")

	// ErrUnknownRouter indicates a path hop naming a router absent from
	// the topology.
	ErrUnknownRouter = errors.New("topology: unknown router")

	// ErrUnknownLink indicates a path step with no corresponding link.
	ErrUnknownLink = errors.New("topology: no link between routers")
)

// Router is a named node in the topology.
type Router struct {
	Name string `json:"name"`
}

// Link is an undirected connection between two routers. MinWeight and
// MaxWeight bound the per-direction weight unknowns (MaxWeight 0 means
// unbounded). Capacity 0 marks the link administratively down.
type Link struct {
	A         string
	B         string
	Capacity  int64
	MinWeight int64
	MaxWeight int64
}

// Topology is the loaded router/link inventory, before graph
// construction. Immutable once loaded.
type Topology struct {
	Routers []Router
	Links   []Link
}

// linkJSON matches the legacy on-disk shape:
//
//	{"node1": {"name": "A"}, "node2": {"name": "B"}, "capacity": 100}
type linkJSON struct {
	Node1     Router `json:"node1"`
	Node2     Router `json:"node2"`
	Capacity  *int64 `json:"capacity,omitempty"`
	MinWeight *int64 `json:"min_weight,omitempty"`
	MaxWeight *int64 `json:"max_weight,omitempty"`
}

type topologyJSON struct {
	Routers []Router   `json:"routers"`
	Links   []linkJSON `json:"links"`
}

// Load reads the legacy topology JSON. Defaults: capacity 1 (up),
// weight domain [1, unbounded).
func Load(r io.Reader) (*Topology, error) {
	var raw topologyJSON
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("topology: decode: %w", err)
	}

	t := &Topology{Routers: raw.Routers}
	for _, l := range raw.Links {
		link := Link{
			A:         l.Node1.Name,
			B:         l.Node2.Name,
			Capacity:  1,
			MinWeight: 1,
		}
		if l.Capacity != nil {
			link.Capacity = *l.Capacity
		}
		if l.MinWeight != nil {
			link.MinWeight = *l.MinWeight
		}
		if l.MaxWeight != nil {
			link.MaxWeight = *l.MaxWeight
		}
		t.Links = append(t.Links, link)
	}

	return t, nil
}

// LoadFile is Load over the contents of path.
func LoadFile(path string) (*Topology, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("topology: open %s: %w", path, err)
	}
	defer f.Close()

	return Load(f)
}
