// Package stats collects per-phase timing and counters for an
// enumeration run. It is deliberately small: the engine records how
// long classification, shrinking and growing take, and how often each
// oracle outcome occurs, and the CLI prints the snapshot at the end.
//
// A Stats value is not safe for concurrent use; the engine that owns
// it runs single-threaded.
package stats

import (
	"sort"
	"time"
)

// Stats accumulates named durations and counters.
type Stats struct {
	start  time.Time
	times  map[string]time.Duration
	counts map[string]int64
}

// New creates an empty collector; total run time counts from here.
func New() *Stats {
	return &Stats{
		start:  time.Now(),
		times:  make(map[string]time.Duration),
		counts: make(map[string]int64),
	}
}

// Incr bumps the counter for category by one.
func (s *Stats) Incr(category string) {
	s.counts[category]++
}

// Add bumps the counter for category by n.
func (s *Stats) Add(category string, n int64) {
	s.counts[category] += n
}

// Timer starts a timer for category and bumps its counter. The
// returned stop function folds the elapsed time into the category
// total; call it exactly once, typically via defer.
func (s *Stats) Timer(category string) (stop func()) {
	s.counts[category]++
	t0 := time.Now()

	return func() {
		s.times[category] += time.Since(t0)
	}
}

// Count returns the current value of a counter.
func (s *Stats) Count(category string) int64 {
	return s.counts[category]
}

// Time returns the accumulated duration of a timer category.
func (s *Stats) Time(category string) time.Duration {
	return s.times[category]
}

// Total returns the wall-clock time since New.
func (s *Stats) Total() time.Duration {
	return time.Since(s.start)
}

// Categories returns every category seen so far, sorted, so reports
// come out in a stable order.
func (s *Stats) Categories() []string {
	seen := make(map[string]struct{}, len(s.times)+len(s.counts))
	for k := range s.times {
		seen[k] = struct{}{}
	}
	for k := range s.counts {
		seen[k] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for k := range seen {
		out = append(out, k)
	}
	sort.Strings(out)

	return out
}

// Snapshot is a flattened view of the collector, shaped for JSON
// reports.
type Snapshot struct {
	TotalSeconds float64            `json:"total_seconds"`
	Times        map[string]float64 `json:"times_seconds"`
	Counts       map[string]int64   `json:"counts"`
}

// Snapshot copies the current state into a report-friendly form.
func (s *Stats) Snapshot() Snapshot {
	snap := Snapshot{
		TotalSeconds: s.Total().Seconds(),
		Times:        make(map[string]float64, len(s.times)),
		Counts:       make(map[string]int64, len(s.counts)),
	}
	for k, d := range s.times {
		snap.Times[k] = d.Seconds()
	}
	for k, n := range s.counts {
		snap.Counts[k] = n
	}

	return snap
}
