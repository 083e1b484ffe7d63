package marco

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/netsolv/intentconflict/intents"
	"github.com/netsolv/intentconflict/oracle"
	"github.com/netsolv/intentconflict/subset"
	"github.com/netsolv/intentconflict/topology"
)

func diamond() *topology.Topology {
	return &topology.Topology{
		Routers: []topology.Router{{Name: "A"}, {Name: "B"}, {Name: "C"}, {Name: "D"}},
		Links: []topology.Link{
			{A: "A", B: "B", Capacity: 1, MinWeight: 1},
			{A: "A", B: "C", Capacity: 1, MinWeight: 1},
			{A: "B", B: "D", Capacity: 1, MinWeight: 1},
			{A: "C", B: "D", Capacity: 1, MinWeight: 1},
		},
	}
}

var (
	pathABD = intents.Path{"A", "B", "D"}
	pathACD = intents.Path{"A", "C", "D"}
)

func mustUniverse(t *testing.T, list ...intents.Intent) *intents.Universe {
	t.Helper()
	u, err := intents.NewUniverse(list)
	require.NoError(t, err)

	return u
}

// keysOf flattens results into sorted subset keys for order-free
// comparison.
func keysOf(rs []Result) []string {
	out := make([]string, 0, len(rs))
	for _, r := range rs {
		out = append(out, r.Indices.Key())
	}
	sort.Strings(out)

	return out
}

func TestRun_TwoCompetingIntents(t *testing.T) {
	u := mustUniverse(t,
		intents.Simple{IntentID: "i0", Path: pathABD},
		intents.Simple{IntentID: "i1", Path: pathACD},
	)
	eng, err := New(u, diamond())
	require.NoError(t, err)

	report, err := eng.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, StatusExhausted, report.Status)
	require.Equal(t, 2, report.TotalIntents)

	require.Equal(t, []string{"0,1"}, keysOf(report.MUSes))
	require.Equal(t, []string{"0", "1"}, keysOf(report.MSSes))

	// Intent ids travel with each result.
	require.Equal(t, []string{"i0", "i1"}, report.MUSes[0].IDs)
	require.Equal(t, 2, report.MUSes[0].Size)
	require.NotEmpty(t, report.RunID)
}

func TestRun_ConflictingSecondaries(t *testing.T) {
	// Two preferences share a primary but name different second-best
	// paths; no weight assignment can rank both secondaries ahead of
	// each other, so the pair is a conflict on its own.
	topo := diamond()
	topo.Links = append(topo.Links, topology.Link{A: "A", B: "D", Capacity: 1, MinWeight: 1})
	u := mustUniverse(t,
		intents.PathPreference{IntentID: "p0", Primary: pathABD, Secondary: pathACD},
		intents.PathPreference{IntentID: "p1", Primary: pathABD, Secondary: intents.Path{"A", "D"}},
	)
	eng, err := New(u, topo)
	require.NoError(t, err)

	report, err := eng.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, StatusExhausted, report.Status)
	require.Equal(t, []string{"0,1"}, keysOf(report.MUSes))
	require.Equal(t, []string{"0", "1"}, keysOf(report.MSSes))
}

func TestRun_PairwiseConflicts(t *testing.T) {
	u := mustUniverse(t,
		intents.Simple{IntentID: "i0", Path: pathABD},
		intents.Simple{IntentID: "i1", Path: pathACD},
		intents.ECMP{IntentID: "e2", Paths: []intents.Path{pathABD, pathACD}},
	)
	eng, err := New(u, diamond())
	require.NoError(t, err)

	report, err := eng.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, StatusExhausted, report.Status)

	// Every pair clashes, so the MUSes are the three pairs and the
	// MSSes the three singletons.
	require.Equal(t, []string{"0,1", "0,2", "1,2"}, keysOf(report.MUSes))
	require.Equal(t, []string{"0", "1", "2"}, keysOf(report.MSSes))
}

func TestRun_NoConflicts(t *testing.T) {
	u := mustUniverse(t,
		intents.Simple{IntentID: "i0", Path: pathABD},
		intents.PathPreference{IntentID: "p1", Primary: pathABD, Secondary: pathACD},
	)
	eng, err := New(u, diamond())
	require.NoError(t, err)

	report, err := eng.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, StatusExhausted, report.Status)
	require.Empty(t, report.MUSes)
	require.Equal(t, []string{"0,1"}, keysOf(report.MSSes))
}

// bruteForce derives the expected MUS and MSS sets straight from the
// oracle by checking every subset.
func bruteForce(t *testing.T, u *intents.Universe, topo *topology.Topology) (muses, msses []string) {
	t.Helper()
	o, err := oracle.New(u, topo)
	require.NoError(t, err)
	ctx := context.Background()

	n := u.Len()
	verdict := make(map[string]oracle.Verdict)
	subsets := make([]subset.Set, 0, 1<<n)
	for mask := 0; mask < 1<<n; mask++ {
		var idx []int
		for i := 0; i < n; i++ {
			if mask&(1<<i) != 0 {
				idx = append(idx, i)
			}
		}
		sub := subset.New(idx...)
		v, cerr := o.Classify(ctx, sub)
		require.NoError(t, cerr)
		verdict[sub.Key()] = v
		subsets = append(subsets, sub)
	}

	for _, sub := range subsets {
		switch verdict[sub.Key()] {
		case oracle.VerdictUNSAT:
			minimal := true
			for _, i := range sub {
				if verdict[sub.Without(i).Key()] == oracle.VerdictUNSAT {
					minimal = false
					break
				}
			}
			if minimal {
				muses = append(muses, sub.Key())
			}
		case oracle.VerdictSAT:
			maximal := true
			for i := 0; i < n; i++ {
				if !sub.Contains(i) && verdict[sub.With(i).Key()] == oracle.VerdictSAT {
					maximal = false
					break
				}
			}
			if maximal {
				msses = append(msses, sub.Key())
			}
		}
	}
	sort.Strings(muses)
	sort.Strings(msses)

	return muses, msses
}

func TestRun_MatchesBruteForceAcrossConfigs(t *testing.T) {
	u := mustUniverse(t,
		intents.Simple{IntentID: "i0", Path: pathABD},
		intents.Simple{IntentID: "i1", Path: pathACD},
		intents.ECMP{IntentID: "e2", Paths: []intents.Path{pathABD, pathACD}},
		intents.PathPreference{IntentID: "p3", Primary: pathABD, Secondary: pathACD},
	)
	topo := diamond()
	wantMUS, wantMSS := bruteForce(t, u, topo)

	cases := []struct {
		name string
		opts []Option
	}{
		{"bias-muses", []Option{WithBias(BiasMUSes)}},
		{"bias-msses", []Option{WithBias(BiasMSSes)}},
		{"bias-muses-maximized", []Option{WithBias(BiasMUSes), WithMaximize(true)}},
		{"bias-msses-maximized", []Option{WithBias(BiasMSSes), WithMaximize(true)}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			eng, err := New(u, topo, tc.opts...)
			require.NoError(t, err)
			report, err := eng.Run(context.Background())
			require.NoError(t, err)
			require.Equal(t, StatusExhausted, report.Status)
			require.Equal(t, wantMUS, keysOf(report.MUSes))
			require.Equal(t, wantMSS, keysOf(report.MSSes))
		})
	}
}

func TestRun_Deterministic(t *testing.T) {
	build := func() *Engine {
		u := mustUniverse(t,
			intents.Simple{IntentID: "i0", Path: pathABD},
			intents.Simple{IntentID: "i1", Path: pathACD},
			intents.ECMP{IntentID: "e2", Paths: []intents.Path{pathABD, pathACD}},
		)
		eng, err := New(u, diamond())
		require.NoError(t, err)

		return eng
	}

	r1, err := build().Run(context.Background())
	require.NoError(t, err)
	r2, err := build().Run(context.Background())
	require.NoError(t, err)

	// Same discovery order, not just the same sets.
	require.Equal(t, resultKeysInOrder(r1.MUSes), resultKeysInOrder(r2.MUSes))
	require.Equal(t, resultKeysInOrder(r1.MSSes), resultKeysInOrder(r2.MSSes))
}

func resultKeysInOrder(rs []Result) []string {
	out := make([]string, 0, len(rs))
	for _, r := range rs {
		out = append(out, r.Indices.Key())
	}

	return out
}

func TestRun_TimeoutYieldsPartialReport(t *testing.T) {
	u := mustUniverse(t,
		intents.Simple{IntentID: "i0", Path: pathABD},
		intents.Simple{IntentID: "i1", Path: pathACD},
	)
	eng, err := New(u, diamond(), WithTimeout(time.Nanosecond))
	require.NoError(t, err)

	report, err := eng.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, StatusTimeout, report.Status)
}

func TestRun_MaxResultsCap(t *testing.T) {
	u := mustUniverse(t,
		intents.Simple{IntentID: "i0", Path: pathABD},
		intents.Simple{IntentID: "i1", Path: pathACD},
		intents.ECMP{IntentID: "e2", Paths: []intents.Path{pathABD, pathACD}},
	)
	eng, err := New(u, diamond(), WithMaxResults(1))
	require.NoError(t, err)

	report, err := eng.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, StatusMaxResults, report.Status)
	require.GreaterOrEqual(t, len(report.MUSes)+len(report.MSSes), 1)

	// Partial results are still sound.
	for _, r := range report.MUSes {
		require.Equal(t, KindMUS, r.Kind)
	}
	for _, r := range report.MSSes {
		require.Equal(t, KindMSS, r.Kind)
	}
}

func TestRun_CancelledContext(t *testing.T) {
	u := mustUniverse(t, intents.Simple{IntentID: "i0", Path: pathABD})
	eng, err := New(u, diamond())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	report, err := eng.Run(ctx)
	require.NoError(t, err)
	require.Equal(t, StatusTimeout, report.Status)
	require.Empty(t, report.MUSes)
	require.Empty(t, report.MSSes)
}

func TestRun_JointlyRealizableIntents(t *testing.T) {
	// Per-direction weights make the B→C intent independent of the
	// two A→D intents, so all three fit one assignment.
	u := mustUniverse(t,
		intents.Simple{IntentID: "i0", Path: pathABD},
		intents.PathPreference{IntentID: "p1", Primary: pathABD, Secondary: pathACD},
		intents.Simple{IntentID: "s2", Path: intents.Path{"B", "A", "C"}},
	)
	eng, err := New(u, diamond())
	require.NoError(t, err)

	report, err := eng.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, StatusExhausted, report.Status)
	require.Empty(t, report.MUSes)
	require.Equal(t, []string{"0,1,2"}, keysOf(report.MSSes))
}

func TestRun_ECMPAgainstCompetingThirdPath(t *testing.T) {
	// Diamond plus a B–C chord: the ECMP pair must tie as shortest,
	// while the simple intent pushes the chord path below both.
	topo := diamond()
	topo.Links = append(topo.Links, topology.Link{A: "B", B: "C", Capacity: 1, MinWeight: 1})
	u := mustUniverse(t,
		intents.ECMP{IntentID: "e0", Paths: []intents.Path{pathABD, pathACD}},
		intents.Simple{IntentID: "i1", Path: intents.Path{"A", "B", "C", "D"}},
	)
	eng, err := New(u, topo)
	require.NoError(t, err)

	report, err := eng.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, StatusExhausted, report.Status)
	require.Equal(t, []string{"0,1"}, keysOf(report.MUSes))
	require.Equal(t, []string{"0", "1"}, keysOf(report.MSSes))
}

func TestRun_TwoIndependentConflicts(t *testing.T) {
	u := mustUniverse(t,
		intents.Simple{IntentID: "i0", Path: pathABD},
		intents.Simple{IntentID: "i1", Path: pathACD},
		intents.Simple{IntentID: "i2", Path: intents.Path{"B", "A", "C"}},
		intents.Simple{IntentID: "i3", Path: intents.Path{"B", "D", "C"}},
	)
	eng, err := New(u, diamond(), WithBias(BiasMUSes))
	require.NoError(t, err)

	report, err := eng.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, StatusExhausted, report.Status)

	// Exactly the two independent pair conflicts, and the four MSSes
	// picking one intent from each pair.
	require.Equal(t, []string{"0,1", "2,3"}, keysOf(report.MUSes))
	require.Equal(t, []string{"0,2", "0,3", "1,2", "1,3"}, keysOf(report.MSSes))
}

// TestRun_ResultProperties re-checks every reported result against a
// fresh oracle: MUSes must be minimal conflicts, MSSes maximal
// realizable subsets, and no MUS may contain another.
func TestRun_ResultProperties(t *testing.T) {
	topo := diamond()
	topo.Links = append(topo.Links, topology.Link{A: "B", B: "C", Capacity: 1, MinWeight: 1})
	u := mustUniverse(t,
		intents.Simple{IntentID: "i0", Path: pathABD},
		intents.Simple{IntentID: "i1", Path: pathACD},
		intents.ECMP{IntentID: "e2", Paths: []intents.Path{pathABD, pathACD}},
		intents.Simple{IntentID: "i3", Path: intents.Path{"A", "B", "C", "D"}},
	)
	eng, err := New(u, topo)
	require.NoError(t, err)
	report, err := eng.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, StatusExhausted, report.Status)

	check, err := oracle.New(u, topo)
	require.NoError(t, err)
	ctx := context.Background()

	for _, r := range report.MUSes {
		v, cerr := check.Classify(ctx, r.Indices)
		require.NoError(t, cerr)
		require.Equal(t, oracle.VerdictUNSAT, v, "MUS %s must be UNSAT", r.Indices)
		for _, i := range r.Indices {
			v, cerr = check.Classify(ctx, r.Indices.Without(i))
			require.NoError(t, cerr)
			require.Equal(t, oracle.VerdictSAT, v, "MUS %s minus %d must be SAT", r.Indices, i)
		}
	}
	for _, r := range report.MSSes {
		v, cerr := check.Classify(ctx, r.Indices)
		require.NoError(t, cerr)
		require.Equal(t, oracle.VerdictSAT, v, "MSS %s must be SAT", r.Indices)
		for j := 0; j < u.Len(); j++ {
			if r.Indices.Contains(j) {
				continue
			}
			v, cerr = check.Classify(ctx, r.Indices.With(j))
			require.NoError(t, cerr)
			require.Equal(t, oracle.VerdictUNSAT, v, "MSS %s plus %d must be UNSAT", r.Indices, j)
		}
	}
	for a := range report.MUSes {
		for b := range report.MUSes {
			if a == b {
				continue
			}
			ma, mb := report.MUSes[a].Indices, report.MUSes[b].Indices
			require.False(t, ma.Equal(mb), "duplicate MUS %s", ma)
			require.False(t, ma.SubsetOf(mb), "MUS %s dominated by %s", mb, ma)
		}
	}
}
