package mapmodel

import (
	"fmt"
	"os"

	json "github.com/goccy/go-json"
	"github.com/paulmach/orb"

	"github.com/lowtide-maps/severance/pkg/graph"
	"github.com/lowtide-maps/severance/pkg/router"
)

// snapshotMeta is everything a MapModel needs besides the Graph itself:
// the data graph.WriteTo/ReadFrom doesn't know about. It rides after the
// Graph section in the same file as one JSON document; graph.ReadFrom
// consumes exactly its own bytes plus its checksum trailer and stops
// there, so the metadata document that follows is never mistaken for
// part of the graph.
type snapshotMeta struct {
	Crossings []graph.Crossing                    `json:"crossings"`
	Buildings map[graph.RoadID][]buildingFootprint `json:"buildings"`
	Settings  router.Settings                      `json:"settings"`
}

// buildingFootprint is a JSON-friendly stand-in for orb.Polygon (itself
// [][]orb.Point, which round-trips through goccy/go-json fine already, but
// spelling it out keeps the snapshot's on-disk shape independent of orb's
// internal type aliases).
type buildingFootprint [][][2]float64

// Save writes a self-contained snapshot of m to path: the graph (via
// graph.WriteSnapshot's on-disk format), followed by crossings, building
// footprints, and the last-applied Settings as one JSON document.
func (m *MapModel) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create snapshot: %w", err)
	}
	defer f.Close()

	if err := graph.WriteTo(f, m.Graph); err != nil {
		return fmt.Errorf("write graph section: %w", err)
	}

	meta := snapshotMeta{
		Crossings: m.Crossings,
		Buildings: make(map[graph.RoadID][]buildingFootprint, len(m.Buildings)),
		Settings:  m.settings,
	}
	for road, polys := range m.Buildings {
		footprints := make([]buildingFootprint, len(polys))
		for i, poly := range polys {
			fp := make(buildingFootprint, len(poly))
			for j, ring := range poly {
				pts := make([][2]float64, len(ring))
				for k, pt := range ring {
					pts[k] = [2]float64{pt[0], pt[1]}
				}
				fp[j] = pts
			}
			footprints[i] = fp
		}
		meta.Buildings[road] = footprints
	}

	if err := json.NewEncoder(f).Encode(&meta); err != nil {
		return fmt.Errorf("write metadata section: %w", err)
	}
	return nil
}

// Load reconstructs a MapModel from a file written by Save, rebuilding the
// router (and its cost vectors, under the snapshot's own last-applied
// Settings) from the restored Graph.
func Load(path string) (*MapModel, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open snapshot: %w", err)
	}
	defer f.Close()

	g, err := graph.ReadFrom(f)
	if err != nil {
		return nil, fmt.Errorf("read graph section: %w", err)
	}

	var meta snapshotMeta
	if err := json.NewDecoder(f).Decode(&meta); err != nil {
		return nil, fmt.Errorf("read metadata section: %w", err)
	}

	buildings := make(map[graph.RoadID][]orb.Polygon, len(meta.Buildings))
	for road, footprints := range meta.Buildings {
		polys := make([]orb.Polygon, len(footprints))
		for i, fp := range footprints {
			poly := make(orb.Polygon, len(fp))
			for j, ring := range fp {
				pts := make(orb.Ring, len(ring))
				for k, pt := range ring {
					pts[k] = orb.Point{pt[0], pt[1]}
				}
				poly[j] = pts
			}
			polys[i] = poly
		}
		buildings[road] = polys
	}

	return &MapModel{
		Graph:     g,
		Crossings: meta.Crossings,
		Buildings: buildings,
		Router:    router.New(g, meta.Settings),
		settings:  meta.Settings,
	}, nil
}
