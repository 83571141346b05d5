package mapmodel

import (
	"context"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/lowtide-maps/severance/pkg/geo"
	"github.com/lowtide-maps/severance/pkg/router"
)

// Direction describes one road traversed by a route, in travel order.
type Direction struct {
	Name  string `json:"name,omitempty"`
	Way   string `json:"way"`
	Kind  string `json:"kind"`
	Layer string `json:"layer"`
}

// Route finds the least-cost walking path between two WGS84 coordinates
// under settings, refreshing the router's cost vectors first if settings
// differs from the last-applied value. The returned FeatureCollection
// holds a single LineString feature (the route geometry) plus foreign
// members: direct_length, route_length, directions, active_duration_s,
// waiting_duration_s.
func (m *MapModel) Route(ctx context.Context, x1, y1, x2, y2 float64, settings router.Settings) (*geojson.FeatureCollection, error) {
	m.ensureCosts(settings)
	slot := profileSlotFor(settings)

	start := orb.Point{x1, y1}
	end := orb.Point{x2, y2}

	planarStart := m.Graph.Frame.Project(start)
	planarEnd := m.Graph.Frame.Project(end)

	route, err := m.Router.Route(ctx, slot, planarStart, planarEnd)
	if err != nil {
		return nil, err
	}

	directions := make([]Direction, 0, len(route.Steps))
	for _, step := range route.Steps {
		road := &m.Graph.Roads[step.Road]
		layer := road.Tags.Get("layer")
		if layer == "" {
			layer = "0"
		}
		directions = append(directions, Direction{
			Name:  road.Tags.Get("name"),
			Way:   roadURL(road.WayID),
			Kind:  road.Kind.String(),
			Layer: layer,
		})
	}

	directLength := geo.LineLength(orb.LineString{planarStart, planarEnd})

	fc := geojson.NewFeatureCollection()
	fc.Append(geojson.NewFeature(routeLineWGS84(m.Graph.Frame, route)))
	fc.ExtraMembers = geojson.Properties{
		"direct_length":      directLength,
		"route_length":       route.Length,
		"directions":         directions,
		"active_duration_s":  route.ActiveDuration.Seconds(),
		"waiting_duration_s": route.WaitingDuration.Seconds(),
	}
	return fc, nil
}

// routeLineWGS84 joins a route's per-step planar polylines into one WGS84
// line string, dropping each step's duplicated shared endpoint.
func routeLineWGS84(frame geo.Frame, route *router.Route) orb.LineString {
	var fullLine orb.LineString
	for i, step := range route.Steps {
		line := frame.UnprojectLine(step.Line)
		if i == 0 {
			fullLine = append(fullLine, line...)
		} else {
			fullLine = append(fullLine, line[1:]...)
		}
	}
	return fullLine
}
