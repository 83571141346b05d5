// Package mapmodel ties the OSM-to-graph pipeline, the per-profile router,
// the isochrone engine, and severance analytics into one aggregate: the
// single mutable object a CLI or HTTP server actually holds onto.
package mapmodel

import (
	"context"
	"log"
	"strconv"

	"github.com/paulmach/orb"
	"github.com/paulmach/osm"

	"github.com/lowtide-maps/severance/pkg/classify"
	"github.com/lowtide-maps/severance/pkg/graph"
	"github.com/lowtide-maps/severance/pkg/router"
	"github.com/lowtide-maps/severance/pkg/tags"
)

// MapModel owns the built Graph, the crossings attached to its severance
// roads, the building footprints grouped by nearest road, and the router
// that answers route/cost-field queries. It is the single mutable
// aggregate a caller holds: query methods that may refresh router cost
// (Route, CalculateIsochrone) mutate the resident Router's cost vectors,
// so callers serialize those calls; pure queries (Render,
// FindConnectedComponents, crossing distances) need no such care.
type MapModel struct {
	Graph     *graph.Graph
	Crossings []graph.Crossing
	// Buildings maps a road to the building footprints (planar polygons)
	// whose first exterior point snaps nearest to it.
	Buildings map[graph.RoadID][]orb.Polygon

	Router *router.Router

	// settings is the last Settings applied to Router, written by
	// ensureCosts and stored in snapshots; Router.UpdateCosts itself detects
	// an unchanged Settings. CrossAnywhere never pays the
	// waiting-cost component regardless of ObeyCrossings (see
	// pkg/router/cost.go), so one Settings value suffices for both
	// profile slots instead of tracking one per profile.
	settings router.Settings
}

type buildingScrape struct {
	candidates []graph.CrossingCandidate
	buildings  []orb.Polygon
}

// Create parses OSM bytes under profile, builds the walking graph, runs
// severance post-processing and crossing attachment, assigns scraped
// building footprints to their nearest road, and constructs both router
// profile hierarchies under the given initial settings.
func Create(ctx context.Context, buf []byte, profile classify.Profile, initial router.Settings) (*MapModel, error) {
	var scrape buildingScrape

	opts := graph.BuildOptions{
		Profile: profile,
		OnNode: func(n *osm.Node) {
			t := tags.Tags(n.Tags)
			if graph.IsCrossingCandidate(t) {
				scrape.candidates = append(scrape.candidates, graph.CrossingCandidate{
					NodeID: n.ID,
					Lon:    n.Lon,
					Lat:    n.Lat,
					Tags:   t,
				})
			}
		},
		OnWay: func(w *osm.Way) {
			t := tags.Tags(w.Tags)
			if !t.Has("building") {
				return
			}
			ring := make(orb.Ring, len(w.Nodes))
			for i, nd := range w.Nodes {
				ring[i] = orb.Point{nd.Lon, nd.Lat}
			}
			scrape.buildings = append(scrape.buildings, orb.Polygon{ring})
		},
	}

	g, err := graph.Build(ctx, buf, opts)
	if err != nil {
		return nil, err
	}

	g.PostProcessSeverances()
	crossings := g.AttachCrossings(scrape.candidates)

	r := router.New(g, initial)

	buildings := make(map[graph.RoadID][]orb.Polygon, len(scrape.buildings))
	var unplaced int
	for _, b := range scrape.buildings {
		ring := g.Frame.ProjectRing(b[0])
		projected := orb.Polygon{ring}
		// CrossAnywhere is the most permissive slot (every road kind
		// traversable, including Severance), matching "nearest road at
		// all" rather than any one profile's routing rules.
		snap, err := r.Snap(ring[0], graph.CrossAnywhere)
		if err != nil {
			unplaced++
			continue
		}
		buildings[snap.Road] = append(buildings[snap.Road], projected)
	}
	if unplaced > 0 {
		log.Printf("mapmodel: %d of %d building footprints did not snap to any road", unplaced, len(scrape.buildings))
	}

	return &MapModel{
		Graph:     g,
		Crossings: crossings,
		Buildings: buildings,
		Router:    r,
		settings:  initial,
	}, nil
}

// profileSlotFor picks walking or cross_anywhere by whether settings asks
// to obey crossing controls, mirroring §4.6's profile selection rule.
func profileSlotFor(settings router.Settings) graph.ProfileSlot {
	if settings.ObeyCrossings {
		return graph.Walking
	}
	return graph.CrossAnywhere
}

// ensureCosts refreshes the router's cost vectors for settings if they
// differ from the last-applied value. A no-op when unchanged, since
// Router.UpdateCosts already short-circuits on an identical Settings.
func (m *MapModel) ensureCosts(settings router.Settings) {
	m.settings = settings
	m.Router.UpdateCosts(settings)
}

func roadURL(wayID osm.WayID) string {
	return "https://www.openstreetmap.org/way/" + strconv.FormatInt(int64(wayID), 10)
}
