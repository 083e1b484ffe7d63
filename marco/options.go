package marco

import (
	"time"

	"go.uber.org/zap"
)

type config struct {
	bias        Bias
	maximize    bool
	timeout     time.Duration
	maxResults  int
	cegarRounds int
	pathLimit   int
	log         *zap.Logger
}

// Option tunes an Engine.
type Option func(*config)

// WithBias selects which result flavor the seed order favors; the
// default is BiasMUSes. Either way, running to exhaustion produces
// the complete MUS and MSS sets.
func WithBias(b Bias) Option {
	return func(c *config) { c.bias = b }
}

// WithMaximize makes the map solver emit extremal seeds, letting the
// driver skip one grow or shrink per seed. Off by default.
func WithMaximize(on bool) Option {
	return func(c *config) { c.maximize = on }
}

// WithTimeout caps the wall-clock run time. Zero means none. The
// deadline is checked between iterations, never inside a solver call,
// so results recorded before expiry stay valid.
func WithTimeout(d time.Duration) Option {
	return func(c *config) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithMaxResults caps the total number of recorded MUSes plus MSSes.
// Zero means unlimited.
func WithMaxResults(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.maxResults = n
		}
	}
}

// WithCEGARRounds overrides the oracle's refinement cap.
func WithCEGARRounds(n int) Option {
	return func(c *config) {
		if n >= 1 {
			c.cegarRounds = n
		}
	}
}

// WithPathLimit overrides the oracle's shortest-path enumeration cap.
func WithPathLimit(n int) Option {
	return func(c *config) {
		if n >= 1 {
			c.pathLimit = n
		}
	}
}

// WithLogger attaches a logger to the engine and its components; the
// default is zap.NewNop().
func WithLogger(log *zap.Logger) Option {
	return func(c *config) {
		if log != nil {
			c.log = log
		}
	}
}
