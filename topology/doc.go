// Package topology models the network the intents are declared over:
// routers, links, and the dense edge-indexed digraph derived from them.
//
// Link weights are not inputs. Every directed edge carries an unknown,
// per-direction weight the solver searches over, the way OSPF interface
// costs are configured independently per direction. The topology only
// fixes the weight *domain*: a lower bound (≥ 1) and an optional upper
// bound per link.
//
// Each undirected link therefore contributes two arcs, each with its
// own dense ArcID. ArcIDs index every per-edge structure downstream —
// solver variables, weight vectors handed to the shortest-path oracle —
// so the hot CEGAR loop never touches a string key.
//
// A link with capacity 0 is treated as administratively down and
// contributes no arcs: no path may use it and no weight variable is
// created for it. Positive capacities are carried through for
// reporting but do not constrain the weight model.
package topology
