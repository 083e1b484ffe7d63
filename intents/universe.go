package intents

import (
	"fmt"
	"sort"

	"github.com/netsolv/intentconflict/subset"
)

// Universe is an ordered, index-stable mapping from intent id to a
// dense integer index 0..n-1. Index assignment never changes during a
// run; all internal sets the engine manipulates are subsets of these
// indices.
type Universe struct {
	ordered []Intent
	byID    map[string]int
}

// NewUniverse validates each intent and assigns dense indices in the
// order given. The caller controls ordering; the JSON loader sorts ids
// lexicographically so that index assignment is deterministic across
// runs regardless of map iteration order.
func NewUniverse(list []Intent) (*Universe, error) {
	u := &Universe{
		ordered: make([]Intent, 0, len(list)),
		byID:    make(map[string]int, len(list)),
	}
	for _, in := range list {
		if in.ID() == "" {
			return nil, ErrEmptyID
		}
		if _, dup := u.byID[in.ID()]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateID, in.ID())
		}
		if err := in.validate(); err != nil {
			return nil, fmt.Errorf("intent %q: %w", in.ID(), err)
		}
		u.byID[in.ID()] = len(u.ordered)
		u.ordered = append(u.ordered, in)
	}

	return u, nil
}

// Len returns the number of intents in the universe.
func (u *Universe) Len() int { return len(u.ordered) }

// At returns the intent at dense index i. It panics on an out-of-range
// index, which always signals an engine bug rather than bad input.
func (u *Universe) At(i int) Intent { return u.ordered[i] }

// Index returns the dense index of the intent with the given id.
func (u *Universe) Index(id string) (int, bool) {
	i, ok := u.byID[id]

	return i, ok
}

// All returns the full index set {0..n-1}.
func (u *Universe) All() subset.Set { return subset.Full(len(u.ordered)) }

// IDs translates a set of dense indices back to intent ids, preserving
// the set's ascending index order.
func (u *Universe) IDs(s subset.Set) []string {
	out := make([]string, 0, s.Len())
	for _, i := range s {
		out = append(out, u.ordered[i].ID())
	}

	return out
}

// sortedIDs returns the ids of m in lexicographic order.
func sortedIDs[T any](m map[string]T) []string {
	ids := make([]string, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	return ids
}
