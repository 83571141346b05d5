// Package isochrone expands reachability cost from a root point within a
// time budget and renders the result as GeoJSON in three styles: per-road
// geometry, per-building polygons, or a raster grid.
package isochrone

import (
	"math"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/lowtide-maps/severance/pkg/geo"
	"github.com/lowtide-maps/severance/pkg/graph"
	"github.com/lowtide-maps/severance/pkg/router"
	"github.com/lowtide-maps/severance/pkg/severr"
)

// Style selects how a cost field is turned into GeoJSON features.
type Style uint8

const (
	// Roads emits the WGS84 linestring of every reached road.
	Roads Style = iota
	// Dasymetric emits the polygon of every building attached to a reached road.
	Dasymetric
	// Grid rasterizes reached roads onto a uniform planar grid.
	Grid
	// Contours is reserved for threshold-banded output (3/6/9/12/15 minutes)
	// and is not implemented; see DESIGN.md.
	Contours
)

// ResolutionM is the default grid cell size, in meters, for Grid rendering.
const ResolutionM = 100.0

// gridQuantizeSeconds is the bucket width cost_seconds is floored to in
// Grid output, so adjacent cells with near-identical cost render as flat
// bands instead of a noisy per-meter gradient.
const gridQuantizeSeconds = 180.0

// Options configures one Calculate call.
type Options struct {
	// Origin is the query point in WGS84.
	Origin orb.Point
	// Slot selects which profile's cost field to expand.
	Slot graph.ProfileSlot
	// Style selects the render mode.
	Style Style
	// Budget bounds how far the cost field is expanded.
	Budget time.Duration
	// Settings1 is applied before propagating; Settings2, when non-nil,
	// requests a second overlay cost field (cost2) computed with
	// different settings from the same root.
	Settings1 router.Settings
	Settings2 *router.Settings
	// Buildings maps a road to the building polygons (planar) nearest to
	// it, used only by the Dasymetric style.
	Buildings map[graph.RoadID][]orb.Polygon
}

// Engine computes and renders isochrone cost fields over one built graph.
type Engine struct {
	g *graph.Graph
	r *router.Router
}

// New returns an Engine over g, querying r for cost fields.
func New(g *graph.Graph, r *router.Router) *Engine {
	return &Engine{g: g, r: r}
}

// Calculate snaps opts.Origin to the nearest road under opts.Slot, expands
// the cost field from both of that road's endpoints, and renders it per
// opts.Style as a GeoJSON FeatureCollection.
func (e *Engine) Calculate(opts Options) (*geojson.FeatureCollection, error) {
	planarOrigin := e.g.Frame.Project(opts.Origin)
	snap, err := e.r.Snap(planarOrigin, opts.Slot)
	if err != nil {
		return nil, err
	}
	roots := []graph.IntersectionID{e.g.Roads[snap.Road].Src, e.g.Roads[snap.Road].Dst}

	e.r.UpdateCosts(opts.Settings1)
	cost1 := e.r.Costs(roots, opts.Slot, opts.Budget)

	var cost2 map[graph.RoadID]time.Duration
	if opts.Settings2 != nil {
		e.r.UpdateCosts(*opts.Settings2)
		cost2 = e.r.Costs(roots, opts.Slot, opts.Budget)
		e.r.UpdateCosts(opts.Settings1)
	}

	switch opts.Style {
	case Roads:
		return e.renderRoads(cost1, cost2), nil
	case Dasymetric:
		return e.renderDasymetric(cost1, cost2, opts.Buildings), nil
	case Grid:
		return e.renderGrid(cost1), nil
	case Contours:
		return nil, severr.New(severr.UnknownProfile, "isochrone Contours rendering is not implemented")
	default:
		return nil, severr.New(severr.UnknownProfile, "unrecognized isochrone style")
	}
}

func (e *Engine) renderRoads(cost1, cost2 map[graph.RoadID]time.Duration) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for rid, c1 := range cost1 {
		road := &e.g.Roads[rid]
		f := geojson.NewFeature(e.g.Frame.UnprojectLine(road.Line))
		f.Properties["cost1"] = c1.Seconds()
		if cost2 != nil {
			if c2, ok := cost2[rid]; ok {
				f.Properties["cost2"] = c2.Seconds()
			}
		}
		fc.Append(f)
	}
	return fc
}

func (e *Engine) renderDasymetric(cost1, cost2 map[graph.RoadID]time.Duration, buildings map[graph.RoadID][]orb.Polygon) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for rid, c1 := range cost1 {
		for _, poly := range buildings[rid] {
			wgs := make(orb.Polygon, len(poly))
			for i, ring := range poly {
				wgs[i] = e.g.Frame.UnprojectRing(ring)
			}
			f := geojson.NewFeature(wgs)
			f.Properties["cost1"] = c1.Seconds()
			if cost2 != nil {
				if c2, ok := cost2[rid]; ok {
					f.Properties["cost2"] = c2.Seconds()
				}
			}
			fc.Append(f)
		}
	}
	return fc
}

type cellKey struct{ x, y int64 }

func (e *Engine) renderGrid(cost1 map[graph.RoadID]time.Duration) *geojson.FeatureCollection {
	half := ResolutionM / 2
	cells := make(map[cellKey]float64)
	for rid, c := range cost1 {
		road := &e.g.Roads[rid]
		densified := geo.Densify(road.Line, half)
		for _, pt := range densified {
			key := cellKey{int64(math.Floor(pt[0] / ResolutionM)), int64(math.Floor(pt[1] / ResolutionM))}
			cells[key] = c.Seconds() // last-write-wins, per cell
		}
	}

	fc := geojson.NewFeatureCollection()
	for key, seconds := range cells {
		quantized := math.Floor(seconds/gridQuantizeSeconds) * gridQuantizeSeconds
		ring := orb.Ring{
			{float64(key.x) * ResolutionM, float64(key.y) * ResolutionM},
			{float64(key.x+1) * ResolutionM, float64(key.y) * ResolutionM},
			{float64(key.x+1) * ResolutionM, float64(key.y+1) * ResolutionM},
			{float64(key.x) * ResolutionM, float64(key.y+1) * ResolutionM},
			{float64(key.x) * ResolutionM, float64(key.y) * ResolutionM},
		}
		f := geojson.NewFeature(orb.Polygon{e.g.Frame.UnprojectRing(ring)})
		f.Properties["cost_seconds"] = quantized
		fc.Append(f)
	}
	return fc
}
