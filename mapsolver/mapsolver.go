package mapsolver

import (
	"github.com/irifrance/gini"
	"github.com/irifrance/gini/z"
	"go.uber.org/zap"

	"github.com/netsolv/intentconflict/stats"
	"github.com/netsolv/intentconflict/subset"
)

// Option tunes a Generator.
type Option func(*Generator)

// WithBias sets the seed bias; the default is BiasMUSes.
func WithBias(b Bias) Option {
	return func(g *Generator) { g.bias = b }
}

// WithMaximize makes every emitted seed extremal in the bias
// direction. Off by default.
func WithMaximize(on bool) Option {
	return func(g *Generator) { g.maximize = on }
}

// WithLogger attaches a logger; the default is zap.NewNop().
func WithLogger(log *zap.Logger) Option {
	return func(g *Generator) {
		if log != nil {
			g.log = log
		}
	}
}

// WithStats attaches a shared statistics collector.
func WithStats(s *stats.Stats) Option {
	return func(g *Generator) {
		if s != nil {
			g.stats = s
		}
	}
}

// Generator owns the boolean seed engine exclusively. Not safe for
// concurrent use.
type Generator struct {
	n   int
	sat *gini.Gini

	bias     Bias
	maximize bool

	// nextVar hands out fresh activation variables above the intent
	// block 1..n.
	nextVar z.Var

	exhausted bool
	log       *zap.Logger
	stats     *stats.Stats
}

// New creates a generator over intent indices 0..n-1. SAT variable
// i+1 stands for "intent i is in the seed".
func New(n int, opts ...Option) (*Generator, error) {
	if n < 1 {
		return nil, ErrNoIntents
	}
	g := &Generator{
		n:       n,
		sat:     gini.New(),
		nextVar: z.Var(n + 1),
		log:     zap.NewNop(),
		stats:   stats.New(),
	}
	for _, opt := range opts {
		opt(g)
	}

	return g, nil
}

// Maximizing reports whether seeds come out extremal in the bias
// direction, which lets the driver take the known-extremal shortcut.
func (g *Generator) Maximizing() bool { return g.maximize }

// Bias returns the configured bias.
func (g *Generator) Bias() Bias { return g.bias }

func (g *Generator) lit(i int) z.Lit { return z.Var(i + 1).Pos() }

// NextSeed returns an unexplored subset, or ok=false once every
// subset is blocked. With an empty clause database the first seed is
// whatever assignment the engine prefers; blocking clauses carve the
// space down from there.
func (g *Generator) NextSeed() (seed subset.Set, ok bool) {
	if g.exhausted {
		return nil, false
	}
	defer g.stats.Timer("seed")()

	if g.sat.Solve() != 1 {
		g.exhausted = true
		g.log.Debug("search space exhausted")

		return nil, false
	}
	seed = g.model()
	if g.maximize {
		seed = g.extremize(seed)
	}

	return seed, true
}

// model reads the intent block out of the engine's current model.
func (g *Generator) model() subset.Set {
	idx := make([]int, 0, g.n)
	for i := 0; i < g.n; i++ {
		if g.sat.Value(g.lit(i)) {
			idx = append(idx, i)
		}
	}

	return subset.New(idx...)
}

// extremize pushes a seed to a maximal (BiasMUSes) or minimal
// (BiasMSSes) unexplored subset. Each round uses a throwaway
// activation variable so the "change at least one" clause can be
// retired afterwards.
func (g *Generator) extremize(seed subset.Set) subset.Set {
	for {
		comp := seed.Complement(g.n)
		tmp := g.nextVar
		g.nextVar++

		var assume []z.Lit
		if g.bias == BiasMUSes {
			// Ask for all of the seed plus at least one more.
			g.sat.Add(tmp.Neg())
			for _, j := range comp {
				g.sat.Add(g.lit(j))
			}
			g.sat.Add(z.LitNull)
			assume = append(assume, tmp.Pos())
			for _, i := range seed {
				assume = append(assume, g.lit(i))
			}
		} else {
			// Ask for none of the complement and at least one of the
			// seed dropped.
			g.sat.Add(tmp.Neg())
			for _, i := range seed {
				g.sat.Add(g.lit(i).Not())
			}
			g.sat.Add(z.LitNull)
			assume = append(assume, tmp.Pos())
			for _, j := range comp {
				assume = append(assume, g.lit(j).Not())
			}
		}

		g.sat.Assume(assume...)
		improved := g.sat.Solve() == 1
		if improved {
			seed = g.model()
			g.stats.Incr("seed_extremized")
		}

		// Retire the activation clause for good.
		g.sat.Add(tmp.Neg())
		g.sat.Add(z.LitNull)

		if !improved {
			return seed
		}
	}
}

// BlockUp records an MUS: no future seed may include all of m.
func (g *Generator) BlockUp(m subset.Set) {
	for _, i := range m {
		g.sat.Add(g.lit(i).Not())
	}
	g.sat.Add(z.LitNull)
	g.stats.Incr("block_up")
}

// BlockDown records an MSS: every future seed must include something
// outside x. Blocking down from the full universe adds the empty
// clause, which exhausts the search — correct, since everything below
// a full-universe MSS is explored.
func (g *Generator) BlockDown(x subset.Set) {
	for _, j := range x.Complement(g.n) {
		g.sat.Add(g.lit(j))
	}
	g.sat.Add(z.LitNull)
	g.stats.Incr("block_down")
}
