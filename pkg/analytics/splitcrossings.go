package analytics

import (
	"sort"

	"github.com/paulmach/orb"

	"github.com/lowtide-maps/severance/pkg/geo"
	"github.com/lowtide-maps/severance/pkg/graph"
)

// Segment is one sub-polyline produced by SplitByCrossings, annotated with
// its own Euclidean length so callers don't have to recompute it.
type Segment struct {
	Line   orb.LineString
	Length float64
}

// CrossingPointsOnLine returns the planar points of every crossing whose
// road set intersects l's id-sequence — the set of crossings that lie
// somewhere along a joined severance line.
func CrossingPointsOnLine(l KeyedLine[graph.RoadID], crossings []graph.Crossing) []orb.Point {
	onLine := make(map[graph.RoadID]bool, len(l.IDs))
	for _, id := range l.IDs {
		onLine[id] = true
	}

	var pts []orb.Point
	for _, c := range crossings {
		for _, r := range c.Roads {
			if onLine[r] {
				pts = append(pts, c.Point)
				break
			}
		}
	}
	return pts
}

// SplitByCrossings projects each crossing point onto line via its
// linear-fraction location along the polyline, then splits line at the
// sorted set of fractions found. A crossing whose projection can't be
// located (a degenerate or empty line) is silently skipped, per spec's
// documented open question on split_by_crossings.
func SplitByCrossings(line orb.LineString, crossingPoints []orb.Point) []Segment {
	fractions := make([]float64, 0, len(crossingPoints))
	for _, p := range crossingPoints {
		if f, ok := geo.LineLocate(line, p); ok {
			fractions = append(fractions, f)
		}
	}
	sort.Float64s(fractions)

	pieces := geo.SplitAtFractions(line, fractions)
	segments := make([]Segment, len(pieces))
	for i, piece := range pieces {
		segments[i] = Segment{Line: piece, Length: geo.LineLength(piece)}
	}
	return segments
}
