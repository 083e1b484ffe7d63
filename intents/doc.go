// Package intents defines the routing-intent model consumed by the
// conflict enumeration engine.
//
// An intent is a declared requirement on the forwarding behaviour
// between two routers, expressed as one of four closed variants:
//
//   - Simple:         a single path that must be the unique shortest
//     path between its endpoints.
//   - AnyPath:        a set of acceptable paths; every shortest path
//     between the endpoints must be one of them.
//   - PathPreference: a primary path that must be the unique shortest,
//     with a declared secondary that must come next.
//   - ECMP:           a set of paths that must be exactly the set of
//     equally-shortest paths between the endpoints.
//
// Intents are immutable once loaded. A Universe assigns each intent a
// dense, stable index 0..n-1; every internal set the engine manipulates
// (seeds, MUSes, MSSes, cache keys) is a subset of these indices, and
// the assignment never changes during a run.
//
// The JSON loader accepts the legacy positional record shape
//
//	{"intent_1": ["OSPF", "simple", "A", "D", ["A","B","D"]], ...}
//
// where element 1 is the variant tag ("simple", "any_path" and
// "Any_path" are aliases; "path_preference"; "ECMP"). A simple record
// whose payload is a list of several paths loads as AnyPath. Unknown
// tags and malformed records are rejected at load time, never at
// oracle time.
package intents
