package marco

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/netsolv/intentconflict/intents"
	"github.com/netsolv/intentconflict/mapsolver"
	"github.com/netsolv/intentconflict/oracle"
	"github.com/netsolv/intentconflict/stats"
	"github.com/netsolv/intentconflict/subset"
	"github.com/netsolv/intentconflict/topology"
)

// Engine drives one enumeration run. Single-threaded: it owns the
// oracle and the map solver exclusively.
type Engine struct {
	uni *intents.Universe
	orc *oracle.Oracle
	gen *mapsolver.Generator

	cfg   config
	log   *zap.Logger
	stats *stats.Stats

	muses []subset.Set
	msses []subset.Set
	seen  map[string]struct{} // keys of recorded results
}

// New wires an engine over the universe and topology. Construction
// validates every declared intent path against the topology.
func New(uni *intents.Universe, topo *topology.Topology, opts ...Option) (*Engine, error) {
	cfg := config{log: zap.NewNop()}
	for _, opt := range opts {
		opt(&cfg)
	}

	st := stats.New()
	oopts := []oracle.Option{oracle.WithLogger(cfg.log), oracle.WithStats(st)}
	if cfg.cegarRounds > 0 {
		oopts = append(oopts, oracle.WithCEGARRounds(cfg.cegarRounds))
	}
	if cfg.pathLimit > 0 {
		oopts = append(oopts, oracle.WithPathLimit(cfg.pathLimit))
	}
	orc, err := oracle.New(uni, topo, oopts...)
	if err != nil {
		return nil, err
	}

	gen, err := mapsolver.New(uni.Len(),
		mapsolver.WithBias(cfg.bias),
		mapsolver.WithMaximize(cfg.maximize),
		mapsolver.WithLogger(cfg.log),
		mapsolver.WithStats(st))
	if err != nil {
		return nil, err
	}

	return &Engine{
		uni:   uni,
		orc:   orc,
		gen:   gen,
		cfg:   cfg,
		log:   cfg.log,
		stats: st,
		seen:  make(map[string]struct{}),
	}, nil
}

// Oracle exposes the engine's oracle, mainly for witness inspection
// after a run.
func (e *Engine) Oracle() *oracle.Oracle { return e.orc }

// Run enumerates until the map solver is exhausted, the configured
// timeout or the context expires, or the result cap is hit. The
// returned report is complete only for StatusExhausted; otherwise it
// is a sound prefix — every recorded MUS/MSS is valid.
func (e *Engine) Run(ctx context.Context) (*Report, error) {
	started := time.Now()
	if e.cfg.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.cfg.timeout)
		defer cancel()
	}

	status, err := e.loop(ctx)
	if err != nil {
		return nil, err
	}

	report := e.report(started, status)
	e.log.Info("run finished",
		zap.String("status", string(status)),
		zap.Int("muses", len(report.MUSes)),
		zap.Int("msses", len(report.MSSes)),
		zap.Duration("elapsed", time.Since(started)))

	return report, nil
}

func (e *Engine) loop(ctx context.Context) (Status, error) {
	for {
		if ctx.Err() != nil {
			return StatusTimeout, nil
		}
		if e.cfg.maxResults > 0 && len(e.muses)+len(e.msses) >= e.cfg.maxResults {
			return StatusMaxResults, nil
		}

		seed, ok := e.gen.NextSeed()
		if !ok {
			return StatusExhausted, nil
		}
		e.log.Debug("pulled seed", zap.String("seed", seed.Key()))

		v, err := e.orc.Classify(ctx, seed)
		if expired(err) {
			return StatusTimeout, nil
		}
		if err != nil {
			return "", err
		}

		if v == oracle.VerdictSAT {
			mss := seed
			// A maximal seed that is SAT already is an MSS.
			if !(e.cfg.maximize && e.cfg.bias == BiasMUSes) {
				mss, err = e.grow(ctx, seed)
				if expired(err) {
					return StatusTimeout, nil
				}
				if err != nil {
					return "", err
				}
			}
			e.recordMSS(mss)

			continue
		}

		// UNSAT seed. A minimal seed that is UNSAT already is an MUS.
		if e.cfg.maximize && e.cfg.bias == BiasMSSes {
			e.recordMUS(seed)

			continue
		}
		muses, err := e.shrink(ctx, seed)
		if expired(err) {
			return StatusTimeout, nil
		}
		if err != nil {
			return "", err
		}
		if len(muses) == 0 {
			// Defensive: a shrink that finds nothing would re-emit the
			// seed forever, so block it outright.
			e.log.Warn("shrink returned no result, blocking raw seed",
				zap.String("seed", seed.Key()))
			e.gen.BlockUp(seed)

			continue
		}
		for _, m := range muses {
			e.recordMUS(m)
		}
	}
}

// grow greedily extends a SAT seed to a maximal satisfiable subset.
func (e *Engine) grow(ctx context.Context, seed subset.Set) (subset.Set, error) {
	defer e.stats.Timer("grow")()

	mss := seed
	for i := 0; i < e.uni.Len(); i++ {
		if mss.Contains(i) {
			continue
		}
		v, err := e.orc.Classify(ctx, mss.With(i))
		if err != nil {
			return nil, err
		}
		if v == oracle.VerdictSAT {
			mss = mss.With(i)
		}
	}

	return mss, nil
}

// recordMUS blocks a fresh MUS upward and stores it; duplicates
// across seeds are dropped.
func (e *Engine) recordMUS(m subset.Set) {
	key := "U" + m.Key()
	if _, dup := e.seen[key]; dup {
		return
	}
	e.seen[key] = struct{}{}
	e.muses = append(e.muses, m)
	defer e.stats.Timer("block")()
	e.gen.BlockUp(m)
	e.log.Debug("recorded MUS", zap.Strings("intents", e.uni.IDs(m)))
}

// recordMSS blocks a fresh MSS downward and stores it.
func (e *Engine) recordMSS(x subset.Set) {
	key := "S" + x.Key()
	if _, dup := e.seen[key]; dup {
		return
	}
	e.seen[key] = struct{}{}
	e.msses = append(e.msses, x)
	defer e.stats.Timer("block")()
	e.gen.BlockDown(x)
	e.log.Debug("recorded MSS", zap.Strings("intents", e.uni.IDs(x)))
}

func (e *Engine) report(started time.Time, status Status) *Report {
	r := &Report{
		RunID:        uuid.NewString(),
		StartedAt:    started,
		TotalIntents: e.uni.Len(),
		Bias:         e.cfg.bias.String(),
		Status:       status,
		MUSes:        make([]Result, 0, len(e.muses)),
		MSSes:        make([]Result, 0, len(e.msses)),
		Stats:        e.stats.Snapshot(),
	}
	for _, m := range e.muses {
		r.MUSes = append(r.MUSes, Result{Kind: KindMUS, Indices: m, IDs: e.uni.IDs(m), Size: m.Len()})
	}
	for _, x := range e.msses {
		r.MSSes = append(r.MSSes, Result{Kind: KindMSS, Indices: x, IDs: e.uni.IDs(x), Size: x.Len()})
	}

	return r
}

// expired reports whether err is a context expiry rather than a real
// failure.
func expired(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
