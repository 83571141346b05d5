package graph

import (
	"log"

	"github.com/paulmach/orb"
	"github.com/paulmach/osm"

	"github.com/lowtide-maps/severance/pkg/classify"
	"github.com/lowtide-maps/severance/pkg/tags"
)

// CrossingCandidate is a node scraped during OSM parsing that might be a
// pedestrian crossing: highway=crossing, or highway=traffic_signals with
// crossing=traffic_signals.
type CrossingCandidate struct {
	NodeID osm.NodeID
	Lon    float64
	Lat    float64
	Tags   tags.Tags
}

// IsCrossingCandidate reports whether n's tags mark it as a crossing
// candidate, for use in a Build OnNode callback.
func IsCrossingCandidate(t tags.Tags) bool {
	if t.Is("highway", "crossing") {
		return true
	}
	return t.Is("highway", "traffic_signals") && t.Is("crossing", "traffic_signals")
}

// AttachCrossings resolves candidates against the graph's severance roads:
// every severance road's constituent node IDs are unioned into a
// NodeID -> []RoadID map, and a candidate is kept only if its node appears
// there. Candidates whose node isn't on any severance road are dropped
// (logged when they carried an explicit crossing=* tag, since that usually
// means the road it sits on didn't classify as a severance).
func (g *Graph) AttachCrossings(candidates []CrossingCandidate) []Crossing {
	nodeRoads := make(map[osm.NodeID][]RoadID)
	for i := range g.Roads {
		road := &g.Roads[i]
		if road.Kind.Tag != classify.Severance {
			continue
		}
		for _, nid := range road.NodeIDs {
			nodeRoads[nid] = append(nodeRoads[nid], road.ID)
		}
	}

	var crossings []Crossing
	var dropped int
	for _, c := range candidates {
		roads, ok := nodeRoads[c.NodeID]
		if !ok {
			if c.Tags.Has("crossing") {
				dropped++
			}
			continue
		}
		pt := g.Frame.Project(orb.Point{c.Lon, c.Lat})
		crossings = append(crossings, Crossing{
			NodeID: c.NodeID,
			Point:  pt,
			Tags:   c.Tags,
			Kind:   classify.CrossingKindFromTags(c.Tags),
			Roads:  roads,
		})
	}
	if dropped > 0 {
		log.Printf("graph: dropped %d crossing candidates with crossing=* tags not on a severance road", dropped)
	}
	return crossings
}
