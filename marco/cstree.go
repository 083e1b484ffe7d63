package marco

import (
	"context"

	"go.uber.org/zap"

	"github.com/netsolv/intentconflict/oracle"
	"github.com/netsolv/intentconflict/subset"
)

// shrink extracts every MUS contained in an UNSAT seed in one call by
// exploring the include/exclude decision tree over the seed's intents
// depth-first. The oracle's run-wide cache is what keeps the repeated
// subset checks across branches cheap.
func (e *Engine) shrink(ctx context.Context, seed subset.Set) ([]subset.Set, error) {
	defer e.stats.Timer("cs_tree_shrink")()

	s := &csTree{
		engine:  e,
		visited: make(map[string]struct{}),
	}
	if err := s.walk(ctx, subset.New(), seed); err != nil {
		return nil, err
	}
	e.log.Debug("shrink finished", zap.Int("muses", len(s.found)))

	return s.found, nil
}

// csTree is the per-shrink-call state.
type csTree struct {
	engine  *Engine
	found   []subset.Set
	visited map[string]struct{}
}

// walk expands the node (included, free); the excluded set is
// implicit. Every intent of a MUS inside the seed eventually lands in
// included along the branch that includes exactly its members, so
// recording at minimal UNSAT nodes is exhaustive.
func (s *csTree) walk(ctx context.Context, included, free subset.Set) error {
	key := included.Key() + "/" + free.Key()
	if _, dup := s.visited[key]; dup {
		return nil
	}
	s.visited[key] = struct{}{}

	// Superset pruning: a strict superset of a recorded MUS cannot be
	// minimal, and its descendants only ever contain it again.
	if s.subsumed(included) {
		return nil
	}

	// Subtree pruning: every node below has included within
	// included ∪ free, so a SAT union means no MUS down here.
	v, err := s.engine.orc.Classify(ctx, included.Union(free))
	if err != nil {
		return err
	}
	if v == oracle.VerdictSAT {
		return nil
	}

	v, err = s.engine.orc.Classify(ctx, included)
	if err != nil {
		return err
	}

	if v == oracle.VerdictUNSAT {
		return s.descend(ctx, included)
	}

	// SAT node: branch on the lowest free intent, first included then
	// excluded.
	if free.Empty() {
		return nil
	}
	next := free[0]
	rest := free.Without(next)
	if err := s.walk(ctx, included.With(next), rest); err != nil {
		return err
	}

	return s.walk(ctx, included, rest)
}

// descend handles an UNSAT included set: record it when minimal,
// otherwise chase every single removal that stays UNSAT. Growing an
// already-UNSAT set cannot reach a different minimal set, so the free
// intents play no further role here.
func (s *csTree) descend(ctx context.Context, included subset.Set) error {
	var removable []int
	for _, i := range included {
		v, err := s.engine.orc.Classify(ctx, included.Without(i))
		if err != nil {
			return err
		}
		if v == oracle.VerdictUNSAT {
			removable = append(removable, i)
		}
	}

	if len(removable) == 0 {
		// Every singleton removal is SAT: a minimal conflict.
		s.record(included)

		return nil
	}
	for _, i := range removable {
		if err := s.walk(ctx, included.Without(i), subset.New()); err != nil {
			return err
		}
	}

	return nil
}

// subsumed reports whether a recorded MUS is strictly contained in
// the set.
func (s *csTree) subsumed(set subset.Set) bool {
	for _, m := range s.found {
		if m.Len() < set.Len() && m.SubsetOf(set) {
			return true
		}
	}
	for _, m := range s.engine.muses {
		if m.Len() < set.Len() && m.SubsetOf(set) {
			return true
		}
	}

	return false
}

// record stores a fresh MUS found by this shrink call.
func (s *csTree) record(m subset.Set) {
	for _, known := range s.found {
		if known.Equal(m) {
			return
		}
	}
	for _, known := range s.engine.muses {
		if known.Equal(m) {
			return
		}
	}
	s.found = append(s.found, m)
	s.engine.stats.Incr("cstree_mus")
}
