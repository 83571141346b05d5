package router

import (
	"time"

	"github.com/lowtide-maps/severance/pkg/graph"
)

// Costs expands a bounded multi-source Dijkstra from roots over slot's
// traversable subgraph and returns every reached road's cost: the time to
// reach whichever of its two endpoints the search found first, capped at
// budget. Roads with neither endpoint reached within budget are omitted.
//
// This runs over the profile's original (uncontracted) CSR rather than the
// CH overlay: CH's bidirectional meet-in-the-middle search assumes a known
// target, which an isochrone doesn't have.
func (r *Router) Costs(roots []graph.IntersectionID, slot graph.ProfileSlot, budget time.Duration) map[graph.RoadID]time.Duration {
	pg := r.profiles[slot]
	orig := &pg.chGraph.Orig
	n := orig.NumNodes

	dist := make([]uint32, n)
	for i := range dist {
		dist[i] = chInfinity
	}
	limit := uint32(budget.Milliseconds())

	var h minHeap
	for _, root := range roots {
		u := uint32(root)
		if u >= n || dist[u] == 0 {
			continue
		}
		dist[u] = 0
		h.push(u, 0)
	}

	for h.Len() > 0 {
		item := h.pop()
		if item.dist > dist[item.node] || item.dist > limit {
			continue
		}
		start, end := orig.EdgesFrom(item.node)
		for e := start; e < end; e++ {
			to := orig.Head[e]
			nd := item.dist + orig.Weight[e]
			if nd <= limit && nd < dist[to] {
				dist[to] = nd
				h.push(to, nd)
			}
		}
	}

	result := make(map[graph.RoadID]time.Duration)
	for i := range r.g.Roads {
		road := &r.g.Roads[i]
		if road.Access[slot] == graph.AccessNone {
			continue
		}
		best := dist[uint32(road.Src)]
		if d := dist[uint32(road.Dst)]; d < best {
			best = d
		}
		if best == chInfinity {
			continue
		}
		result[road.ID] = time.Duration(best) * time.Millisecond
	}
	return result
}
