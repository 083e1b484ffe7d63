package spath

import (
	"errors"
	"math"
)

// Sentinel errors returned by the shortest-path computations.
var (
	// ErrNilGraph indicates a nil *topology.Graph.
	ErrNilGraph = errors.New("spath: graph is nil")

	// ErrBadWeights indicates a weight vector whose length does not
	// match the graph's arc count.
	ErrBadWeights = errors.New("spath: weight vector length does not match arc count")

	// ErrNonPositiveWeight indicates an arc weight below 1. Weight
	// unknowns are constrained to w ≥ 1, so a non-positive weight here
	// always signals a solver-model extraction bug upstream.
	ErrNonPositiveWeight = errors.New("spath: non-positive arc weight")

	// ErrNodeNotFound indicates a source or destination node index out
	// of range.
	ErrNodeNotFound = errors.New("spath: node index out of range")

	// ErrTooManyPaths indicates that a path enumeration hit its limit.
	// Truncating silently would let counterexamples escape the CEGAR
	// refinement, so the caller aborts instead.
	ErrTooManyPaths = errors.New("spath: shortest-path count exceeds limit")
)

// Unreachable is the distance reported for nodes with no path from the
// source.
const Unreachable = int64(math.MaxInt64)

// DefaultPathLimit bounds path enumeration per query. Fixed so that
// runs are reproducible; raise it only alongside the documented engine
// default.
const DefaultPathLimit = 256
