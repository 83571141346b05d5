// Package router turns a built graph.Graph into queryable routes and
// time-bounded cost fields, one contracted hierarchy per graph.ProfileSlot.
// It owns the cost model (pkg/router/cost.go), point snapping
// (pkg/router/snap.go), and the bidirectional CH search
// (pkg/router/dijkstra.go) built on the profile-agnostic pkg/router/ch.
package router

import (
	"context"
	"time"

	"github.com/paulmach/orb"

	"github.com/lowtide-maps/severance/pkg/geo"
	"github.com/lowtide-maps/severance/pkg/graph"
	"github.com/lowtide-maps/severance/pkg/router/ch"
	"github.com/lowtide-maps/severance/pkg/severr"
)

// RouteStep is one road traversed by a route, in travel order. Active is
// the time-to-traverse component; Waiting is the crossing-delay component
// (zero except on a Crossing road under the Walking profile).
type RouteStep struct {
	Road    graph.RoadID
	Forward bool // true if traversed Src->Dst
	Line    orb.LineString
	Active  time.Duration
	Waiting time.Duration
}

// Cost is the step's total time cost.
func (s RouteStep) Cost() time.Duration {
	return s.Active + s.Waiting
}

// Route is the full result of a point-to-point query.
type Route struct {
	Steps           []RouteStep
	Length          float64
	ActiveDuration  time.Duration
	WaitingDuration time.Duration
}

// Duration is the route's total time cost.
func (r *Route) Duration() time.Duration {
	return r.ActiveDuration + r.WaitingDuration
}

// Router answers route and cost-field queries against one built graph,
// keeping a contracted hierarchy resident per profile slot.
type Router struct {
	g        *graph.Graph
	settings Settings
	profiles [2]*profileGraph
	snap     *snapper
}

// New builds both profile hierarchies over g under the given settings.
func New(g *graph.Graph, settings Settings) *Router {
	r := &Router{g: g, settings: settings, snap: newSnapper(g)}
	r.profiles[graph.Walking] = buildProfileGraph(g, graph.Walking, settings)
	r.profiles[graph.CrossAnywhere] = buildProfileGraph(g, graph.CrossAnywhere, settings)
	return r
}

// UpdateCosts recomputes cost (and, for Walking, access) under new settings
// and re-contracts both hierarchies. A no-op if settings are unchanged.
func (r *Router) UpdateCosts(settings Settings) {
	if settings == r.settings {
		return
	}
	r.settings = settings
	r.profiles[graph.Walking] = buildProfileGraph(r.g, graph.Walking, settings)
	r.profiles[graph.CrossAnywhere] = buildProfileGraph(r.g, graph.CrossAnywhere, settings)
}

// Snap projects a planar point onto the nearest road traversable under
// slot.
func (r *Router) Snap(p orb.Point, slot graph.ProfileSlot) (SnappedPosition, error) {
	return r.snap.snap(p, slot)
}

// Route finds the shortest path between two points under slot.
func (r *Router) Route(ctx context.Context, slot graph.ProfileSlot, start, end orb.Point) (*Route, error) {
	startSnap, err := r.snap.snap(start, slot)
	if err != nil {
		return nil, err
	}
	endSnap, err := r.snap.snap(end, slot)
	if err != nil {
		return nil, err
	}
	if startSnap.Point == endSnap.Point {
		return nil, severr.New(severr.DegenerateInput, "start and end snap to the same point")
	}
	if startSnap.Road == endSnap.Road {
		return r.directRoute(slot, startSnap, endSnap)
	}

	pg := r.profiles[slot]
	qs := pg.getQueryState()
	qs.reset()
	defer pg.putQueryState(qs)

	seedSide := func(road *graph.Road, frac float64, touch func(uint32), dist []uint32, push func(uint32, uint32)) {
		full := ComputeCost(road, r.settings, slot)
		toSrc := uint32(time.Duration(frac * float64(full)).Milliseconds())
		toDst := uint32(time.Duration((1 - frac) * float64(full)).Milliseconds())
		src, dst := uint32(road.Src), uint32(road.Dst)
		touch(src)
		dist[src] = toSrc
		push(src, toSrc)
		touch(dst)
		dist[dst] = toDst
		push(dst, toDst)
	}
	seedSide(&r.g.Roads[startSnap.Road], startSnap.Fraction, qs.touchFwd, qs.distFwd, qs.fwdPQ.push)
	seedSide(&r.g.Roads[endSnap.Road], endSnap.Fraction, qs.touchBwd, qs.distBwd, qs.bwdPQ.push)

	meet, _, ok := runBidirectionalDijkstraFrom(pg.chGraph, qs)
	if !ok {
		return nil, severr.New(severr.NoPath, "no path between the snapped points")
	}

	overlayPath := reconstructOverlayPathFrom(qs, meet)
	origNodes := ch.UnpackPath(pg.chGraph, overlayPath)

	steps := r.buildSteps(pg, slot, origNodes)
	var length float64
	var activeTotal, waitingTotal time.Duration
	for _, s := range steps {
		length += geo.LineLength(s.Line)
		activeTotal += s.Active
		waitingTotal += s.Waiting
	}
	return &Route{Steps: steps, Length: length, ActiveDuration: activeTotal, WaitingDuration: waitingTotal}, nil
}

// directRoute handles the degenerate case where both points snap to the
// same road: no graph search needed, just the sub-segment between them.
func (r *Router) directRoute(slot graph.ProfileSlot, a, b SnappedPosition) (*Route, error) {
	if a.Fraction == b.Fraction {
		return nil, severr.New(severr.DegenerateInput, "start and end snap to the same point")
	}
	road := &r.g.Roads[a.Road]
	if AccessForSlot(road.Kind, slot) == graph.AccessNone {
		return nil, severr.New(severr.NoPath, "the only road between the snapped points is closed to this profile")
	}
	lo, hi := a.Fraction, b.Fraction
	if lo > hi {
		lo, hi = hi, lo
	}
	segs := geo.SubLine(road.Line, lo, hi)
	active, waiting := ComputeCostParts(road, r.settings, slot)
	frac := hi - lo
	step := RouteStep{
		Road:    a.Road,
		Forward: b.Fraction >= a.Fraction,
		Line:    segs,
		Active:  time.Duration(frac * float64(active)),
		Waiting: time.Duration(frac * float64(waiting)),
	}
	return &Route{
		Steps:           []RouteStep{step},
		Length:          geo.LineLength(segs),
		ActiveDuration:  step.Active,
		WaitingDuration: step.Waiting,
	}, nil
}

func (r *Router) buildSteps(pg *profileGraph, slot graph.ProfileSlot, nodes []uint32) []RouteStep {
	steps := make([]RouteStep, 0, len(nodes))
	for i := 0; i+1 < len(nodes); i++ {
		u, v := nodes[i], nodes[i+1]
		rid, forward, ok := pg.roadBetween(u, v)
		if !ok {
			continue
		}
		road := &r.g.Roads[rid]
		line := road.Line
		if !forward {
			line = reverseLine(line)
		}
		active, waiting := ComputeCostParts(road, r.settings, slot)
		steps = append(steps, RouteStep{Road: rid, Forward: forward, Line: line, Active: active, Waiting: waiting})
	}
	return steps
}

func reverseLine(ls orb.LineString) orb.LineString {
	out := make(orb.LineString, len(ls))
	for i, p := range ls {
		out[len(ls)-1-i] = p
	}
	return out
}
