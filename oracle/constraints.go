package oracle

import (
	"fmt"
	"strconv"

	"github.com/netsolv/intentconflict/intents"
	"github.com/netsolv/intentconflict/simplex"
	"github.com/netsolv/intentconflict/spath"
	"github.com/netsolv/intentconflict/subset"
)

// relation is one structural constraint between two path weights.
type relation struct {
	a, b simplex.Expr
	eq   bool // a = b when true, a < b otherwise
}

// intentCons is the compiled form of one intent: endpoints resolved to
// node ids, declared paths resolved to weight expressions, and the
// structural relations asserted whenever the intent is active.
type intentCons struct {
	id       string
	src, dst int

	// exprs holds one weight expression per declared path, in
	// declaration order. Every one of them is ordered strictly below
	// each counterexample the refinement loop finds.
	exprs []simplex.Expr

	// declared holds the keys of every declared path, so that a path
	// the intent itself names is never treated as a counterexample.
	declared map[string]struct{}

	// secondary is set for preference intents only. It widens the
	// counterexample search from the shortest tier to every path at or
	// below the secondary's weight: the secondary must beat paths that
	// are not shortest yet still undercut it.
	secondary intents.Path

	structural []relation
}

// compile resolves one intent against the topology.
func (o *Oracle) compile(in intents.Intent) (intentCons, error) {
	c := intentCons{id: in.ID(), declared: make(map[string]struct{})}

	var ok bool
	if c.src, ok = o.graph.NodeID(in.Src()); !ok {
		return c, fmt.Errorf("%w: intent %q: router %q", ErrDeclaredPath, in.ID(), in.Src())
	}
	if c.dst, ok = o.graph.NodeID(in.Dst()); !ok {
		return c, fmt.Errorf("%w: intent %q: router %q", ErrDeclaredPath, in.ID(), in.Dst())
	}

	paths := in.DeclaredPaths()
	exprs := make([]simplex.Expr, len(paths))
	for j, p := range paths {
		e, err := o.pathExpr(p)
		if err != nil {
			return c, fmt.Errorf("%w: intent %q: path %s: %v", ErrDeclaredPath, in.ID(), p.Key(), err)
		}
		exprs[j] = e
		c.declared[p.Key()] = struct{}{}
	}
	c.exprs = exprs

	switch v := in.(type) {
	case intents.PathPreference:
		// Primary strictly beats secondary.
		c.structural = append(c.structural, relation{a: exprs[0], b: exprs[1]})
		c.secondary = v.Secondary
	case intents.ECMP:
		// All declared paths tie exactly.
		for j := 1; j < len(exprs); j++ {
			c.structural = append(c.structural, relation{a: exprs[0], b: exprs[j], eq: true})
		}
	}

	return c, nil
}

// pathExpr sums the weight variables along a path.
func (o *Oracle) pathExpr(p intents.Path) (simplex.Expr, error) {
	arcs, err := o.graph.PathArcs(p)
	if err != nil {
		return nil, err
	}
	vars := make([]simplex.Var, len(arcs))
	for j, a := range arcs {
		vars[j] = o.arcVars[a]
	}

	return simplex.Sum(vars...), nil
}

// assertStructural adds intent i's structural relations to the current
// scope.
func (o *Oracle) assertStructural(i int) error {
	for _, r := range o.cons[i].structural {
		var err error
		if r.eq {
			err = o.solver.AssertEqual(r.a, r.b)
		} else {
			err = o.solver.AssertLess(r.a, r.b)
		}
		if err != nil {
			return err
		}
	}

	return nil
}

// refute searches for counterexample paths under the concrete weights
// and asserts refinements ruling them out. It reports whether any
// intent still had a counterexample; false means the model satisfies
// every active intent.
//
// A counterexample for intent i is an undeclared path that ties or
// beats a path i declares: for simple, any-path and ECMP intents that
// is a shortest path outside the declared set; for a preference intent
// it is any path whose weight undercuts or ties the secondary's.
// Ruling one out means asserting every declared path strictly shorter
// than it (no declared path is ever ordered above itself, the declared
// set is excluded from the search). Refinement handles one intent per
// round, lowest index first, matching the deterministic order the
// cache key is built from.
func (o *Oracle) refute(sub subset.Set, weights []int64, seen map[string]struct{}) (bool, error) {
	for _, i := range sub {
		c := &o.cons[i]
		paths, err := o.candidates(c, weights)
		if err != nil {
			return false, fmt.Errorf("oracle: intent %q: %w", c.id, err)
		}

		sawCex := false
		for _, q := range paths {
			if _, declared := c.declared[q.Key()]; declared {
				continue
			}
			sawCex = true
			// A repeat counterexample adds no constraint but still
			// counts as a failed round, ticking the cap toward the
			// conservative UNSAT instead of spinning forever.
			skey := strconv.Itoa(i) + "|" + q.Key()
			if _, dup := seen[skey]; dup {
				continue
			}
			seen[skey] = struct{}{}

			qe, perr := o.pathExpr(q)
			if perr != nil {
				return false, fmt.Errorf("oracle: intent %q: %v", c.id, perr)
			}
			for _, de := range c.exprs {
				if aerr := o.solver.AssertLess(de, qe); aerr != nil {
					return false, fmt.Errorf("%w: %v", ErrSolver, aerr)
				}
			}
			o.stats.Incr("oracle_refinement")
		}
		if sawCex {
			return true, nil
		}
	}

	return false, nil
}

// candidates enumerates the paths intent c must be checked against
// under the concrete weights. Preference intents search up to the
// secondary's weight; everything else only the shortest tier.
func (o *Oracle) candidates(c *intentCons, weights []int64) ([]intents.Path, error) {
	if c.secondary == nil {
		paths, _, err := spath.AllShortest(o.graph, weights, c.src, c.dst, o.pathLimit)

		return paths, err
	}

	bound, err := o.graph.PathWeight(c.secondary, weights)
	if err != nil {
		return nil, err
	}

	return spath.AllWithin(o.graph, weights, c.src, c.dst, bound, o.pathLimit)
}
