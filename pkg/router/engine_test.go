package router

import (
	"context"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lowtide-maps/severance/pkg/classify"
	"github.com/lowtide-maps/severance/pkg/graph"
	"github.com/lowtide-maps/severance/pkg/severr"
)

// straightLineGraph builds a 3-intersection, 2-road chain along the X axis,
// each road 100m long, classified WithTraffic (traversable by both profiles).
func straightLineGraph() *graph.Graph {
	g := &graph.Graph{
		Intersections: []graph.Intersection{
			{ID: 0, Point: orb.Point{0, 0}},
			{ID: 1, Point: orb.Point{100, 0}},
			{ID: 2, Point: orb.Point{200, 0}},
		},
		Roads: []graph.Road{
			{ID: 0, Src: 0, Dst: 1, Line: orb.LineString{{0, 0}, {100, 0}}, Kind: classify.RoadKind{Tag: classify.WithTraffic}},
			{ID: 1, Src: 1, Dst: 2, Line: orb.LineString{{100, 0}, {200, 0}}, Kind: classify.RoadKind{Tag: classify.WithTraffic}},
		},
	}
	g.Intersections[0].Roads = []graph.RoadID{0}
	g.Intersections[1].Roads = []graph.RoadID{0, 1}
	g.Intersections[2].Roads = []graph.RoadID{1}
	return g
}

func TestRouter_RouteAcrossTwoRoads(t *testing.T) {
	g := straightLineGraph()
	r := New(g, DefaultSettings)

	route, err := r.Route(context.Background(), graph.Walking, orb.Point{0, 0}, orb.Point{200, 0})
	require.NoError(t, err)
	assert.InDelta(t, 200, route.Length, 1e-6)
	assert.Len(t, route.Steps, 2)
}

func TestRouter_DirectRouteSameRoad(t *testing.T) {
	g := straightLineGraph()
	r := New(g, DefaultSettings)

	route, err := r.Route(context.Background(), graph.Walking, orb.Point{10, 0}, orb.Point{90, 0})
	require.NoError(t, err)
	assert.InDelta(t, 80, route.Length, 1e-6)
	assert.Len(t, route.Steps, 1)
}

func TestRouter_DegenerateInputSamePoint(t *testing.T) {
	g := straightLineGraph()
	r := New(g, DefaultSettings)

	_, err := r.Route(context.Background(), graph.Walking, orb.Point{50, 0}, orb.Point{50, 0})
	require.Error(t, err)
	var serr *severr.Error
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, severr.DegenerateInput, serr.Kind)
}

func TestRouter_NotSnappableFarAway(t *testing.T) {
	g := straightLineGraph()
	r := New(g, DefaultSettings)

	_, err := r.Route(context.Background(), graph.Walking, orb.Point{0, 100000}, orb.Point{200, 0})
	require.Error(t, err)
	var serr *severr.Error
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, severr.NotSnappable, serr.Kind)
}

func TestRouter_UpdateCostsNoOpWhenUnchanged(t *testing.T) {
	g := straightLineGraph()
	r := New(g, DefaultSettings)
	before := r.profiles[graph.Walking]
	r.UpdateCosts(DefaultSettings)
	assert.Same(t, before, r.profiles[graph.Walking], "identical settings must not rebuild the profile graph")
}

func TestRouter_UpdateCostsRebuildsOnChange(t *testing.T) {
	g := straightLineGraph()
	r := New(g, DefaultSettings)
	before := r.profiles[graph.Walking]

	changed := DefaultSettings
	changed.BaseSpeedMPH = DefaultSettings.BaseSpeedMPH * 2
	r.UpdateCosts(changed)
	assert.NotSame(t, before, r.profiles[graph.Walking])
}

func TestRouter_SeveranceUnreachableUnderWalking(t *testing.T) {
	g := &graph.Graph{
		Intersections: []graph.Intersection{
			{ID: 0, Point: orb.Point{0, 0}},
			{ID: 1, Point: orb.Point{100, 0}},
		},
		Roads: []graph.Road{
			{ID: 0, Src: 0, Dst: 1, Line: orb.LineString{{0, 0}, {100, 0}}, Kind: classify.RoadKind{Tag: classify.Severance}},
		},
	}
	g.Intersections[0].Roads = []graph.RoadID{0}
	g.Intersections[1].Roads = []graph.RoadID{0}
	r := New(g, DefaultSettings)

	_, err := r.Route(context.Background(), graph.Walking, orb.Point{10, 0}, orb.Point{90, 0})
	require.Error(t, err)

	route, err := r.Route(context.Background(), graph.CrossAnywhere, orb.Point{10, 0}, orb.Point{90, 0})
	require.NoError(t, err)
	assert.InDelta(t, 80, route.Length, 1e-6)
}
