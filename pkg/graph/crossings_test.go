package graph

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/osm"

	"github.com/lowtide-maps/severance/pkg/classify"
	"github.com/lowtide-maps/severance/pkg/geo"
	"github.com/lowtide-maps/severance/pkg/tags"
)

func TestIsCrossingCandidate(t *testing.T) {
	cases := []struct {
		name string
		tags tags.Tags
		want bool
	}{
		{"plain crossing", tags.Tags{{Key: "highway", Value: "crossing"}}, true},
		{"signalized junction", tags.Tags{{Key: "highway", Value: "traffic_signals"}, {Key: "crossing", Value: "traffic_signals"}}, true},
		{"bare traffic signals", tags.Tags{{Key: "highway", Value: "traffic_signals"}}, false},
		{"ordinary node", tags.Tags{{Key: "amenity", Value: "bench"}}, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := IsCrossingCandidate(c.tags); got != c.want {
				t.Errorf("IsCrossingCandidate(%v) = %v, want %v", c.tags, got, c.want)
			}
		})
	}
}

func TestAttachCrossingsKeepsOnlyNodesOnSeveranceRoads(t *testing.T) {
	g := &Graph{
		Frame: geo.NewFrame(orb.Bound{Min: orb.Point{-75, 40}, Max: orb.Point{-74, 41}}),
		Roads: []Road{
			{ID: 0, Kind: classify.RoadKind{Tag: classify.Severance}, NodeIDs: []osm.NodeID{1, 2, 3}},
			{ID: 1, Kind: classify.RoadKind{Tag: classify.Footway}, NodeIDs: []osm.NodeID{4, 5}},
		},
	}

	candidates := []CrossingCandidate{
		{NodeID: 2, Lon: -74.5, Lat: 40.5, Tags: tags.Tags{{Key: "highway", Value: "crossing"}, {Key: "crossing", Value: "traffic_signals"}}},
		{NodeID: 5, Lon: -74.4, Lat: 40.4, Tags: tags.Tags{{Key: "highway", Value: "crossing"}}},
		{NodeID: 99, Lon: -74.3, Lat: 40.3, Tags: tags.Tags{{Key: "highway", Value: "crossing"}}},
	}

	crossings := g.AttachCrossings(candidates)

	if len(crossings) != 1 {
		t.Fatalf("len(crossings) = %d, want 1 (only node 2 sits on a severance road)", len(crossings))
	}
	c := crossings[0]
	if c.NodeID != 2 {
		t.Errorf("NodeID = %d, want 2", c.NodeID)
	}
	if c.Kind != classify.Signalized {
		t.Errorf("Kind = %v, want Signalized", c.Kind)
	}
	if len(c.Roads) != 1 || c.Roads[0] != 0 {
		t.Errorf("Roads = %v, want [0]", c.Roads)
	}
}

func TestAttachCrossingsDropsWithoutPanicWhenNoCandidates(t *testing.T) {
	g := &Graph{
		Frame: geo.NewFrame(orb.Bound{Min: orb.Point{-75, 40}, Max: orb.Point{-74, 41}}),
		Roads: []Road{{ID: 0, Kind: classify.RoadKind{Tag: classify.Severance}, NodeIDs: []osm.NodeID{1, 2}}},
	}
	if got := g.AttachCrossings(nil); got != nil {
		t.Errorf("AttachCrossings(nil) = %v, want nil", got)
	}
}
