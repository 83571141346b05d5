// Package ch builds and queries a contraction hierarchy over a directed,
// non-negative-weight CSR graph. It knows nothing about roads, profiles,
// or geometry — pkg/router wires a per-profile graph.Graph into a CSR,
// contracts it here, and reattaches road identity for geometry and cost
// bookkeeping.
package ch

// CSR is a directed graph in Compressed Sparse Row form. Weight is in
// whatever integral unit the caller chose (pkg/router uses milliseconds).
type CSR struct {
	NumNodes uint32
	FirstOut []uint32 // len NumNodes+1
	Head     []uint32 // len NumEdges
	Weight   []uint32 // len NumEdges
}

// EdgesFrom returns the edge index range [start, end) for node u.
func (g *CSR) EdgesFrom(u uint32) (start, end uint32) {
	return g.FirstOut[u], g.FirstOut[u+1]
}

// Graph is the contracted hierarchy: forward/backward upward overlays plus
// the original CSR (kept for shortcut unpacking and as a query-time
// fallback on uncontracted core nodes).
type Graph struct {
	NumNodes uint32
	Rank     []uint32

	FwdFirstOut []uint32
	FwdHead     []uint32
	FwdWeight   []uint32
	FwdMiddle   []int32 // -1 for an original edge, else the contracted middle node

	BwdFirstOut []uint32
	BwdHead     []uint32
	BwdWeight   []uint32
	BwdMiddle   []int32

	Orig CSR
}
