package graph

import (
	"testing"

	"github.com/paulmach/orb"

	"github.com/lowtide-maps/severance/pkg/classify"
)

// starGraph builds: 0 --Severance--> 1, 0 --WithTraffic--> 2 --Footway--> 3.
// Intersection 2 always carries a Footway, so it never itself qualifies as
// severance-only; that isolates the test to whether intersection 0 (which
// has no Footway of its own unless includeFootway is set) gets detached.
func starGraph(includeFootway bool) *Graph {
	g := &Graph{
		Intersections: []Intersection{
			{ID: 0, Point: orb.Point{0, 0}},
			{ID: 1, Point: orb.Point{10, 0}},
			{ID: 2, Point: orb.Point{0, 10}},
			{ID: 3, Point: orb.Point{0, 20}},
		},
		Roads: []Road{
			{ID: 0, Src: 0, Dst: 1, Kind: classify.RoadKind{Tag: classify.Severance}},
			{ID: 1, Src: 0, Dst: 2, Kind: classify.RoadKind{Tag: classify.WithTraffic}},
			{ID: 2, Src: 2, Dst: 3, Kind: classify.RoadKind{Tag: classify.Footway}},
		},
	}
	g.Intersections[0].Roads = []RoadID{0, 1}
	g.Intersections[1].Roads = []RoadID{0}
	g.Intersections[2].Roads = []RoadID{1, 2}
	g.Intersections[3].Roads = []RoadID{2}

	if includeFootway {
		stub := IntersectionID(4)
		g.Intersections = append(g.Intersections, Intersection{ID: stub, Point: orb.Point{-10, 0}})
		g.Roads = append(g.Roads, Road{ID: 3, Src: 0, Dst: stub, Kind: classify.RoadKind{Tag: classify.Footway}})
		g.Intersections[0].Roads = append(g.Intersections[0].Roads, 3)
		g.Intersections[stub].Roads = []RoadID{3}
	}

	return g
}

func TestPostProcessSeverancesDetachesAtSeveranceOnlyJunction(t *testing.T) {
	g := starGraph(false)
	before := len(g.Intersections)

	g.PostProcessSeverances()

	if len(g.Intersections) != before+1 {
		t.Fatalf("len(Intersections) = %d, want %d (one stub minted)", len(g.Intersections), before+1)
	}

	withTraffic := &g.Roads[1]
	if withTraffic.Src == 0 || withTraffic.Dst == 0 {
		t.Errorf("WithTraffic road still touches intersection 0 after detach: Src=%d Dst=%d", withTraffic.Src, withTraffic.Dst)
	}

	stub := g.Intersections[before]
	if len(stub.Roads) != 1 || stub.Roads[0] != withTraffic.ID {
		t.Errorf("minted stub intersection carries roads %v, want exactly [%d]", stub.Roads, withTraffic.ID)
	}

	for _, rid := range g.Intersections[0].Roads {
		if g.Roads[rid].Kind.Tag == classify.WithTraffic {
			t.Errorf("intersection 0 still lists WithTraffic road %d", rid)
		}
	}
}

func TestPostProcessSeverancesLeavesProtectedJunctionAlone(t *testing.T) {
	g := starGraph(true)
	before := len(g.Intersections)

	g.PostProcessSeverances()

	if len(g.Intersections) != before {
		t.Fatalf("len(Intersections) = %d, want unchanged %d (footway present protects the junction)", len(g.Intersections), before)
	}
	if g.Roads[1].Src != 0 && g.Roads[1].Dst != 0 {
		t.Error("WithTraffic road was detached from a junction that has a footway")
	}
}

// plainJunction builds two ordinary WithTraffic streets meeting at
// intersection 0, with no Severance road anywhere: 1 --WithTraffic--> 0
// --WithTraffic--> 2. This must survive PostProcessSeverances untouched —
// it's an everyday junction, not a severance-adjacent one.
func plainJunction() *Graph {
	g := &Graph{
		Intersections: []Intersection{
			{ID: 0, Point: orb.Point{0, 0}},
			{ID: 1, Point: orb.Point{-10, 0}},
			{ID: 2, Point: orb.Point{10, 0}},
		},
		Roads: []Road{
			{ID: 0, Src: 1, Dst: 0, Kind: classify.RoadKind{Tag: classify.WithTraffic}},
			{ID: 1, Src: 0, Dst: 2, Kind: classify.RoadKind{Tag: classify.WithTraffic}},
		},
	}
	g.Intersections[0].Roads = []RoadID{0, 1}
	g.Intersections[1].Roads = []RoadID{0}
	g.Intersections[2].Roads = []RoadID{1}
	return g
}

func TestPostProcessSeverancesLeavesOrdinaryJunctionAlone(t *testing.T) {
	g := plainJunction()
	before := len(g.Intersections)

	g.PostProcessSeverances()

	if len(g.Intersections) != before {
		t.Fatalf("len(Intersections) = %d, want unchanged %d (no severance road at this junction)", len(g.Intersections), before)
	}
	for _, rid := range []RoadID{0, 1} {
		road := &g.Roads[rid]
		if road.Src != 0 && road.Dst != 0 {
			t.Errorf("road %d was detached from intersection 0, want untouched", rid)
		}
	}
}

func TestFindComponentsTreatsSeveranceAsNonEdge(t *testing.T) {
	g := starGraph(false)
	components := g.FindComponents()

	// Severance roads never union their endpoints, so intersection 1
	// (reachable only via the Severance road) has no non-severance edge
	// to anchor a component and is dropped entirely, while the
	// WithTraffic/Footway chain 0-2-3 forms one 3-intersection component.
	var sawChain bool
	for _, c := range components {
		if len(c.Intersections) == 3 {
			sawChain = true
		}
		for _, iid := range c.Intersections {
			if iid == 1 {
				t.Errorf("intersection 1 has no non-severance road, should not appear in any component")
			}
		}
	}
	if !sawChain {
		t.Error("expected a 3-intersection component joining 0, 2, and 3")
	}
}
