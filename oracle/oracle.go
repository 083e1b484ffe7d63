package oracle

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/netsolv/intentconflict/intents"
	"github.com/netsolv/intentconflict/simplex"
	"github.com/netsolv/intentconflict/spath"
	"github.com/netsolv/intentconflict/stats"
	"github.com/netsolv/intentconflict/subset"
	"github.com/netsolv/intentconflict/topology"
)

// Option tunes an Oracle.
type Option func(*Oracle)

// WithLogger attaches a logger; the default is zap.NewNop().
func WithLogger(log *zap.Logger) Option {
	return func(o *Oracle) {
		if log != nil {
			o.log = log
		}
	}
}

// WithStats attaches a shared statistics collector.
func WithStats(s *stats.Stats) Option {
	return func(o *Oracle) {
		if s != nil {
			o.stats = s
		}
	}
}

// WithCEGARRounds overrides DefaultCEGARRounds. Values below 1 are
// ignored.
func WithCEGARRounds(n int) Option {
	return func(o *Oracle) {
		if n >= 1 {
			o.rounds = n
		}
	}
}

// WithPathLimit overrides spath.DefaultPathLimit for the
// counterexample search. Values below 1 are ignored.
func WithPathLimit(n int) Option {
	return func(o *Oracle) {
		if n >= 1 {
			o.pathLimit = n
		}
	}
}

// Oracle memoizes SAT/UNSAT verdicts for intent subsets. It owns the
// backing solver exclusively and is not safe for concurrent use.
type Oracle struct {
	uni   *intents.Universe
	graph *topology.Graph

	solver  *simplex.Solver
	arcVars []simplex.Var // one weight variable per directed arc
	cons    []intentCons  // per intent index

	cache   map[string]Verdict
	witness []int64 // scaled model of the latest fresh SAT verdict

	rounds    int
	pathLimit int
	log       *zap.Logger
	stats     *stats.Stats
}

// New builds an oracle over the universe and topology. The baseline
// scope declares one weight variable per directed arc, bounded below
// by the arc's minimum weight and above by its maximum when one is
// set. Every declared intent path is resolved against the topology
// here; a path the topology cannot route fails construction.
func New(uni *intents.Universe, topo *topology.Topology, opts ...Option) (*Oracle, error) {
	if uni == nil {
		return nil, ErrNilUniverse
	}
	if topo == nil {
		return nil, ErrNilTopology
	}
	g, err := topology.BuildGraph(topo)
	if err != nil {
		return nil, err
	}

	o := &Oracle{
		uni:       uni,
		graph:     g,
		solver:    simplex.New(),
		cache:     make(map[string]Verdict),
		rounds:    DefaultCEGARRounds,
		pathLimit: spath.DefaultPathLimit,
		log:       zap.NewNop(),
		stats:     stats.New(),
	}
	for _, opt := range opts {
		opt(o)
	}

	// Baseline constraints, depth 0: weight bounds per arc. Scopes
	// pushed per Classify call stack on top and never disturb these.
	o.arcVars = make([]simplex.Var, g.NumArcs())
	for a := 0; a < g.NumArcs(); a++ {
		lo, hi := g.Bounds(a)
		v := o.solver.NewVar(lo)
		if hi > 0 {
			if err := o.solver.AssertLE(simplex.Sum(v), hi); err != nil {
				return nil, fmt.Errorf("%w: %v", ErrSolver, err)
			}
		}
		o.arcVars[a] = v
	}

	o.cons = make([]intentCons, uni.Len())
	for i := 0; i < uni.Len(); i++ {
		c, err := o.compile(uni.At(i))
		if err != nil {
			return nil, err
		}
		o.cons[i] = c
	}

	return o, nil
}

// Graph exposes the arc-indexed digraph the oracle classifies over.
func (o *Oracle) Graph() *topology.Graph { return o.graph }

// Witness returns the weight assignment backing the most recent
// freshly computed SAT verdict, indexed by arc, or nil when the last
// verdict was UNSAT or served from cache.
func (o *Oracle) Witness() []int64 { return o.witness }

// Classify decides SAT/UNSAT for the given subset of intent indices.
// Verdicts are cached by subset key; re-checking a subset is free and
// reproduces the recorded verdict. The context is consulted only
// between refinement rounds, never inside a solver call.
func (o *Oracle) Classify(ctx context.Context, sub subset.Set) (Verdict, error) {
	// The empty subset has nothing to satisfy.
	if sub.Empty() {
		o.witness = nil

		return VerdictSAT, nil
	}

	key := sub.Key()
	if v, ok := o.cache[key]; ok {
		// No fresh model was computed, so no witness survives the hit.
		o.witness = nil
		o.stats.Incr("oracle_cache_hit")

		return v, nil
	}

	defer o.stats.Timer("oracle_classify")()
	v, err := o.classify(ctx, sub)
	if err != nil {
		return 0, err
	}
	o.cache[key] = v
	o.stats.Incr("oracle_" + v.String())

	return v, nil
}

// classify runs one CEGAR loop inside its own solver scope.
func (o *Oracle) classify(ctx context.Context, sub subset.Set) (verdict Verdict, err error) {
	o.witness = nil

	o.solver.Push()
	defer func() {
		// Restore baseline state on every exit path.
		if perr := o.solver.Pop(); perr != nil && err == nil {
			err = fmt.Errorf("%w: %v", ErrSolver, perr)
		}
	}()

	// 1) Structural constraints for every active intent: preference
	//    ordering and ECMP weight ties.
	for _, i := range sub {
		if aerr := o.assertStructural(i); aerr != nil {
			return 0, fmt.Errorf("%w: %v", ErrSolver, aerr)
		}
	}

	// 2) Lazy refinement: solve, search counterexamples, exclude,
	//    repeat.
	seen := make(map[string]struct{})
	for round := 0; round < o.rounds; round++ {
		if cerr := ctx.Err(); cerr != nil {
			return 0, cerr
		}

		model, serr := o.solver.Solve()
		if serr != nil {
			return 0, fmt.Errorf("%w: %v", ErrSolver, serr)
		}
		if model == nil {
			return VerdictUNSAT, nil
		}
		weights, merr := model.Scaled()
		if merr != nil {
			return 0, fmt.Errorf("%w: %v", ErrSolver, merr)
		}

		refined, rerr := o.refute(sub, weights, seen)
		if rerr != nil {
			return 0, rerr
		}
		if !refined {
			o.witness = weights
			o.log.Debug("subset satisfiable",
				zap.String("subset", sub.Key()),
				zap.Int("rounds", round+1))

			return VerdictSAT, nil
		}
	}

	// Cap exceeded. Conservative downgrade keeps every reported
	// conflict real.
	o.stats.Incr("oracle_cap_exceeded")
	o.log.Warn("refinement cap exceeded, treating subset as UNSAT",
		zap.String("subset", sub.Key()),
		zap.Int("rounds", o.rounds))

	return VerdictUNSAT, nil
}
