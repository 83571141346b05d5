package router

import (
	"sync"

	"github.com/lowtide-maps/severance/pkg/graph"
	"github.com/lowtide-maps/severance/pkg/router/ch"
)

// edgeKey identifies a directed original-graph edge by its endpoints, for
// recovering the RoadID a reconstructed path segment traveled along.
type edgeKey struct{ from, to uint32 }

// edgeInfo records which road a directed edge belongs to, and whether it
// was traversed in the road's own Src->Dst sense.
type edgeInfo struct {
	road    graph.RoadID
	forward bool
}

// profileGraph is the fully-built routing structure for one ProfileSlot:
// the contracted hierarchy plus enough bookkeeping to translate a node path
// back into roads.
type profileGraph struct {
	chGraph  *ch.Graph
	edgeRoad map[edgeKey]edgeInfo
	qsPool   sync.Pool
}

// buildProfileGraph computes per-road cost/access for slot under settings,
// assembles the directed CSR, contracts it, and records the edge->road map
// needed for path reconstruction.
func buildProfileGraph(g *graph.Graph, slot graph.ProfileSlot, settings Settings) *profileGraph {
	n := uint32(len(g.Intersections))

	type directedEdge struct {
		from, to uint32
		weight   uint32
		road     graph.RoadID
	}
	var edges []directedEdge

	for i := range g.Roads {
		r := &g.Roads[i]
		access := AccessForSlot(r.Kind, slot)
		r.Access[slot] = access
		if access == graph.AccessNone {
			continue
		}
		cost := ComputeCost(r, settings, slot)
		r.Cost[slot] = cost
		w := uint32(cost.Milliseconds())
		if w == 0 {
			w = 1
		}
		src, dst := uint32(r.Src), uint32(r.Dst)
		switch access {
		case graph.AccessBoth:
			edges = append(edges, directedEdge{src, dst, w, r.ID})
			edges = append(edges, directedEdge{dst, src, w, r.ID})
		case graph.AccessForward:
			edges = append(edges, directedEdge{src, dst, w, r.ID})
		case graph.AccessBackward:
			edges = append(edges, directedEdge{dst, src, w, r.ID})
		}
	}

	firstOut := make([]uint32, n+1)
	for _, e := range edges {
		firstOut[e.from+1]++
	}
	for i := uint32(1); i <= n; i++ {
		firstOut[i] += firstOut[i-1]
	}
	head := make([]uint32, len(edges))
	weight := make([]uint32, len(edges))
	pos := make([]uint32, n)
	copy(pos, firstOut[:n])
	edgeRoad := make(map[edgeKey]edgeInfo, len(edges))
	for _, e := range edges {
		idx := pos[e.from]
		head[idx] = e.to
		weight[idx] = e.weight
		pos[e.from]++
		road := &g.Roads[e.road]
		edgeRoad[edgeKey{e.from, e.to}] = edgeInfo{road: e.road, forward: e.from == uint32(road.Src)}
	}

	csr := &ch.CSR{NumNodes: n, FirstOut: firstOut, Head: head, Weight: weight}
	chg := ch.Contract(csr)

	return &profileGraph{chGraph: chg, edgeRoad: edgeRoad}
}

func (p *profileGraph) getQueryState() *queryState {
	if qs, ok := p.qsPool.Get().(*queryState); ok {
		return qs
	}
	return newQueryState(p.chGraph.NumNodes)
}

func (p *profileGraph) putQueryState(qs *queryState) {
	p.qsPool.Put(qs)
}

// roadBetween returns the RoadID of the original edge u->v and whether it
// was traversed Src->Dst (forward) or Dst->Src.
func (p *profileGraph) roadBetween(u, v uint32) (rid graph.RoadID, forward bool, ok bool) {
	info, ok := p.edgeRoad[edgeKey{u, v}]
	if !ok {
		return 0, false, false
	}
	return info.road, info.forward, true
}
