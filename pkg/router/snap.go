package router

import (
	"github.com/paulmach/orb"

	"github.com/lowtide-maps/severance/pkg/geo"
	"github.com/lowtide-maps/severance/pkg/graph"
	"github.com/lowtide-maps/severance/pkg/severr"
)

const maxSnapDistMeters = 500.0

// SnappedPosition is a query point projected onto the nearest road.
type SnappedPosition struct {
	Road     graph.RoadID
	Fraction float64 // 0 = Road.Src end, 1 = Road.Dst end
	Point    orb.Point
	Dist     float64 // meters from the query point to Point
}

// snapper indexes every road's bounding box in a spatial index so Snap can
// shortlist nearby candidates before doing exact point-to-segment math.
type snapper struct {
	index *geo.SpatialIndex
	g     *graph.Graph
}

func newSnapper(g *graph.Graph) *snapper {
	idx := geo.NewSpatialIndex()
	for i := range g.Roads {
		line := g.Roads[i].Line
		if len(line) == 0 {
			continue
		}
		minPt, maxPt := line[0], line[0]
		for _, pt := range line {
			if pt[0] < minPt[0] {
				minPt[0] = pt[0]
			}
			if pt[1] < minPt[1] {
				minPt[1] = pt[1]
			}
			if pt[0] > maxPt[0] {
				maxPt[0] = pt[0]
			}
			if pt[1] > maxPt[1] {
				maxPt[1] = pt[1]
			}
		}
		idx.Insert(i, minPt, maxPt)
	}
	return &snapper{index: idx, g: g}
}

// snap finds the nearest road to p (already in the graph's planar frame)
// within maxSnapDistMeters whose Kind is traversable under slot, or a
// NotSnappable error. A road closer than any traversable one but excluded
// for slot (e.g. a Severance road under Walking) is skipped rather than
// returned, so the caller never has to re-check access on what came back.
func (s *snapper) snap(p orb.Point, slot graph.ProfileSlot) (SnappedPosition, error) {
	const pad = maxSnapDistMeters
	lo := orb.Point{p[0] - pad, p[1] - pad}
	hi := orb.Point{p[0] + pad, p[1] + pad}

	best := SnappedPosition{Dist: maxSnapDistMeters + 1}
	found := false
	var bestA, bestB orb.Point
	var bestT float64

	s.index.Search(lo, hi, func(id int) bool {
		road := &s.g.Roads[id]
		if AccessForSlot(road.Kind, slot) == graph.AccessNone {
			return true
		}
		line := road.Line
		for i := 0; i+1 < len(line); i++ {
			dist, frac := geo.PointToSegmentDist(p, line[i], line[i+1])
			if dist < best.Dist {
				found = true
				best.Dist = dist
				best.Road = graph.RoadID(id)
				bestA, bestB, bestT = line[i], line[i+1], frac
			}
		}
		return true
	})

	if !found || best.Dist > maxSnapDistMeters {
		return SnappedPosition{}, severr.New(severr.NotSnappable, "no road within snap radius")
	}

	best.Point = orb.Point{
		bestA[0] + bestT*(bestB[0]-bestA[0]),
		bestA[1] + bestT*(bestB[1]-bestA[1]),
	}
	if along, ok := geo.LineLocate(s.g.Roads[best.Road].Line, best.Point); ok {
		best.Fraction = along
	}
	return best, nil
}
