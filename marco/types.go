package marco

import (
	"time"

	"github.com/netsolv/intentconflict/mapsolver"
	"github.com/netsolv/intentconflict/stats"
	"github.com/netsolv/intentconflict/subset"
)

// Bias re-exports the map solver's seed bias.
type Bias = mapsolver.Bias

const (
	BiasMUSes = mapsolver.BiasMUSes
	BiasMSSes = mapsolver.BiasMSSes
)

// Status tells how a run ended.
type Status string

const (
	// StatusExhausted: the whole power set was explored; the report
	// is complete.
	StatusExhausted Status = "exhausted"

	// StatusTimeout: the deadline fired; the report is a sound
	// prefix.
	StatusTimeout Status = "timeout"

	// StatusMaxResults: the result cap was reached; the report is a
	// sound prefix.
	StatusMaxResults Status = "max-results"
)

// ResultKind distinguishes the two result flavors.
type ResultKind string

const (
	KindMUS ResultKind = "MUS"
	KindMSS ResultKind = "MSS"
)

// Result is one enumerated MUS or MSS.
type Result struct {
	Kind    ResultKind `json:"kind"`
	Indices subset.Set `json:"indices"`
	IDs     []string   `json:"intent_ids"`
	Size    int        `json:"size"`
}

// Report is the full outcome of one run.
type Report struct {
	RunID        string         `json:"run_id"`
	StartedAt    time.Time      `json:"started_at"`
	TotalIntents int            `json:"total_intents"`
	Bias         string         `json:"bias"`
	Status       Status         `json:"status"`
	MUSes        []Result       `json:"muses"`
	MSSes        []Result       `json:"msses"`
	Stats        stats.Snapshot `json:"stats"`
}
