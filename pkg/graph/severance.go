package graph

import "github.com/lowtide-maps/severance/pkg/classify"

// PostProcessSeverances finds intersections where only Severance and
// WithTraffic roads meet (no Footway or Crossing), and detaches every
// WithTraffic edge there onto a freshly minted stub intersection. This
// forbids a pedestrian route from flowing straight through a
// severance-only junction, while the WithTraffic road keeps its
// connectivity at its other end.
//
// Minted intersection IDs are max-existing+1 per mint, so IDs stay dense
// and monotonically increasing.
func (g *Graph) PostProcessSeverances() {
	// Snapshot the junction count before minting: newly minted stub
	// intersections are single-road by construction and never themselves
	// qualify as severance-only junctions.
	n := len(g.Intersections)

	for i := 0; i < n; i++ {
		iid := IntersectionID(i)
		if !isSeveranceOnlyJunction(g, iid) {
			continue
		}

		roads := append([]RoadID(nil), g.Intersections[iid].Roads...)
		var kept []RoadID
		for _, rid := range roads {
			road := &g.Roads[rid]
			if road.Kind.Tag != classify.WithTraffic {
				kept = append(kept, rid)
				continue
			}
			g.detachRoadEnd(rid, iid)
		}
		g.Intersections[iid].Roads = kept
	}
}

func isSeveranceOnlyJunction(g *Graph, iid IntersectionID) bool {
	roads := g.Intersections[iid].Roads
	if len(roads) == 0 {
		return false
	}
	sawSeverance := false
	sawWithTraffic := false
	for _, rid := range roads {
		switch g.Roads[rid].Kind.Tag {
		case classify.Footway, classify.Crossing:
			return false
		case classify.Severance:
			sawSeverance = true
		case classify.WithTraffic:
			sawWithTraffic = true
		}
	}
	return sawSeverance && sawWithTraffic
}

// detachRoadEnd rewrites the endpoint of rid that currently points at iid
// to a freshly minted stub intersection carrying the same geometry, whose
// only incident road is rid.
func (g *Graph) detachRoadEnd(rid RoadID, iid IntersectionID) {
	road := &g.Roads[rid]

	stub := IntersectionID(len(g.Intersections))
	g.Intersections = append(g.Intersections, Intersection{
		ID:     stub,
		Point:  g.Intersections[iid].Point,
		NodeID: g.Intersections[iid].NodeID,
		Roads:  []RoadID{rid},
	})

	if road.Src == iid {
		road.Src = stub
	} else {
		road.Dst = stub
	}
}
