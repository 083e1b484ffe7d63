package intents_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/netsolv/intentconflict/intents"
	"github.com/netsolv/intentconflict/subset"
)

// ------------------------------------------------------------------------
// 1. JSON loading: legacy positional records, aliases, unknown tags.
// ------------------------------------------------------------------------

const sampleJSON = `{
	"intent_b": ["OSPF", "simple", "A", "D", ["A", "B", "D"]],
	"intent_a": ["OSPF", "ECMP", "A", "D", [["A", "B", "D"], ["A", "C", "D"]]],
	"intent_c": ["OSPF", "path_preference", "A", "D", ["A", "B", "D"], ["A", "C", "D"]]
}`

func TestLoad_AssignsIndicesInSortedIDOrder(t *testing.T) {
	u, err := intents.Load(strings.NewReader(sampleJSON))
	require.NoError(t, err)
	require.Equal(t, 3, u.Len())

	// Lexicographic id order, independent of JSON key order.
	assert.Equal(t, "intent_a", u.At(0).ID())
	assert.Equal(t, "intent_b", u.At(1).ID())
	assert.Equal(t, "intent_c", u.At(2).ID())

	i, ok := u.Index("intent_c")
	require.True(t, ok)
	assert.Equal(t, 2, i)
	_, ok = u.Index("missing")
	assert.False(t, ok)
}

func TestLoad_VariantShapes(t *testing.T) {
	u, err := intents.Load(strings.NewReader(sampleJSON))
	require.NoError(t, err)

	e, ok := u.At(0).(intents.ECMP)
	require.True(t, ok, "intent_a should decode as ECMP")
	assert.Len(t, e.Paths, 2)
	assert.Equal(t, "A", e.Src())
	assert.Equal(t, "D", e.Dst())

	s, ok := u.At(1).(intents.Simple)
	require.True(t, ok, "intent_b should decode as Simple")
	assert.Equal(t, intents.Path{"A", "B", "D"}, s.Path)

	p, ok := u.At(2).(intents.PathPreference)
	require.True(t, ok, "intent_c should decode as PathPreference")
	assert.Equal(t, intents.Path{"A", "B", "D"}, p.Primary)
	assert.Equal(t, intents.Path{"A", "C", "D"}, p.Secondary)
}

func TestLoad_AnyPathAliasAndWrappedPath(t *testing.T) {
	// "Any_path" is an alias of simple; the path may arrive wrapped in a
	// singleton list, both of which legacy generators produce.
	const js = `{"i1": ["OSPF", "Any_path", "A", "C", [["A", "B", "C"]]]}`
	u, err := intents.Load(strings.NewReader(js))
	require.NoError(t, err)

	s, ok := u.At(0).(intents.Simple)
	require.True(t, ok)
	assert.Equal(t, intents.Path{"A", "B", "C"}, s.Path)
}

func TestLoad_MultiPathSimpleDecodesAsAnyPath(t *testing.T) {
	// A simple record may declare several acceptable paths; it then
	// loads as AnyPath with the whole list.
	const js = `{"i1": ["OSPF", "simple", "A", "D", [["A", "B", "D"], ["A", "C", "D"]]]}`
	u, err := intents.Load(strings.NewReader(js))
	require.NoError(t, err)

	a, ok := u.At(0).(intents.AnyPath)
	require.True(t, ok, "i1 should decode as AnyPath")
	require.Len(t, a.Paths, 2)
	assert.Equal(t, intents.Path{"A", "B", "D"}, a.Paths[0])
	assert.Equal(t, intents.Path{"A", "C", "D"}, a.Paths[1])
	assert.Equal(t, "A", a.Src())
	assert.Equal(t, "D", a.Dst())
}

func TestLoad_EmptyPathListRejected(t *testing.T) {
	const js = `{"i1": ["OSPF", "any_path", "A", "D", []]}`
	_, err := intents.Load(strings.NewReader(js))
	assert.ErrorIs(t, err, intents.ErrBadRecord)
}

func TestLoad_UnknownKindRejected(t *testing.T) {
	const js = `{"i1": ["OSPF", "waypoint", "A", "C", ["A", "B", "C"]]}`
	_, err := intents.Load(strings.NewReader(js))
	require.ErrorIs(t, err, intents.ErrUnknownKind)
	// The offending intent id must be reported to the caller.
	assert.Contains(t, err.Error(), "i1")
}

func TestLoad_RecordArity(t *testing.T) {
	_, err := intents.Load(strings.NewReader(`{"i1": ["OSPF", "simple", "A", "C"]}`))
	assert.ErrorIs(t, err, intents.ErrBadRecord)

	_, err = intents.Load(strings.NewReader(`{"i1": ["OSPF", "path_preference", "A", "C", ["A","B","C"]]}`))
	assert.ErrorIs(t, err, intents.ErrBadRecord)
}

func TestLoad_EndpointMismatch(t *testing.T) {
	const js = `{"i1": ["OSPF", "simple", "A", "C", ["A", "B", "D"]]}`
	_, err := intents.Load(strings.NewReader(js))
	assert.ErrorIs(t, err, intents.ErrEndpointMismatch)
}

// ------------------------------------------------------------------------
// 2. Validation: arity, duplicates, degenerate variants.
// ------------------------------------------------------------------------

func TestNewUniverse_ShortPath(t *testing.T) {
	_, err := intents.NewUniverse([]intents.Intent{
		intents.Simple{IntentID: "i1", Path: intents.Path{"A"}},
	})
	assert.ErrorIs(t, err, intents.ErrBadPath)
}

func TestNewUniverse_DuplicateID(t *testing.T) {
	a := intents.Simple{IntentID: "dup", Path: intents.Path{"A", "B"}}
	_, err := intents.NewUniverse([]intents.Intent{a, a})
	assert.ErrorIs(t, err, intents.ErrDuplicateID)
}

func TestNewUniverse_EmptyID(t *testing.T) {
	_, err := intents.NewUniverse([]intents.Intent{
		intents.Simple{Path: intents.Path{"A", "B"}},
	})
	assert.ErrorIs(t, err, intents.ErrEmptyID)
}

func TestNewUniverse_ECMPNeedsTwoDistinctPaths(t *testing.T) {
	_, err := intents.NewUniverse([]intents.Intent{
		intents.ECMP{IntentID: "e1", Paths: []intents.Path{{"A", "B", "C"}}},
	})
	assert.ErrorIs(t, err, intents.ErrBadECMP)

	_, err = intents.NewUniverse([]intents.Intent{
		intents.ECMP{IntentID: "e2", Paths: []intents.Path{{"A", "B", "C"}, {"A", "B", "C"}}},
	})
	assert.ErrorIs(t, err, intents.ErrBadECMP)
}

func TestNewUniverse_AnyPathValidation(t *testing.T) {
	_, err := intents.NewUniverse([]intents.Intent{
		intents.AnyPath{IntentID: "a1"},
	})
	assert.ErrorIs(t, err, intents.ErrBadAnyPath)

	_, err = intents.NewUniverse([]intents.Intent{
		intents.AnyPath{IntentID: "a2", Paths: []intents.Path{{"A", "B", "C"}, {"A", "B", "C"}}},
	})
	assert.ErrorIs(t, err, intents.ErrBadAnyPath)

	_, err = intents.NewUniverse([]intents.Intent{
		intents.AnyPath{IntentID: "a3", Paths: []intents.Path{{"A", "B", "C"}, {"A", "B", "D"}}},
	})
	assert.ErrorIs(t, err, intents.ErrEndpointMismatch)
}

func TestNewUniverse_PreferenceMustDiffer(t *testing.T) {
	_, err := intents.NewUniverse([]intents.Intent{
		intents.PathPreference{
			IntentID:  "p1",
			Primary:   intents.Path{"A", "B", "C"},
			Secondary: intents.Path{"A", "B", "C"},
		},
	})
	assert.ErrorIs(t, err, intents.ErrBadPreference)
}

// ------------------------------------------------------------------------
// 3. Universe index translation.
// ------------------------------------------------------------------------

func TestUniverse_IDsTranslation(t *testing.T) {
	u, err := intents.Load(strings.NewReader(sampleJSON))
	require.NoError(t, err)

	assert.Equal(t, []string{"intent_a", "intent_c"}, u.IDs(subset.New(2, 0)))
	assert.Equal(t, subset.Set{0, 1, 2}, u.All())
}
