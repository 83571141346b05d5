package mapmodel

import (
	"context"
	"log"

	"github.com/paulmach/orb/geojson"

	"github.com/lowtide-maps/severance/pkg/analytics"
	"github.com/lowtide-maps/severance/pkg/classify"
	"github.com/lowtide-maps/severance/pkg/geo"
	"github.com/lowtide-maps/severance/pkg/graph"
	"github.com/lowtide-maps/severance/pkg/router"
)

// CalculateDetourScores walks every severance road, samples a perpendicular
// crossing request every walkEveryM meters, routes each one under settings,
// and scores it as route length over direct length: how much further a
// pedestrian must walk to get around the severance versus straight across
// it. A request that fails to route (no path, nothing snappable) is
// skipped, matching the analytics error policy. Returned features carry the
// routed geometry with a single "score" property.
func (m *MapModel) CalculateDetourScores(ctx context.Context, settings router.Settings) (*geojson.FeatureCollection, error) {
	m.ensureCosts(settings)
	slot := profileSlotFor(settings)

	fc := geojson.NewFeatureCollection()
	var requested, scored int
	maxScore := 0.0

	for i := range m.Graph.Roads {
		road := &m.Graph.Roads[i]
		if road.Kind.Tag != classify.Severance {
			continue
		}
		for _, off := range analytics.MakePerpendicularOffsets(road.Line, analytics.DefaultWalkEveryM, analytics.DefaultProjectAwayM) {
			requested++
			route, err := m.Router.Route(ctx, slot, off[0], off[1])
			if err != nil {
				continue
			}
			directLength := geo.LineLength(off)
			score, ok := analytics.DetourScore(route.Length, directLength)
			if !ok {
				continue
			}
			f := geojson.NewFeature(routeLineWGS84(m.Graph.Frame, route))
			f.Properties["score"] = score
			fc.Append(f)
			scored++
			if score > maxScore {
				maxScore = score
			}
		}
	}
	if requested > 0 {
		log.Printf("mapmodel: detour scoring complete, %d/%d offsets routed, max score %.2f", scored, requested, maxScore)
	}
	return fc, nil
}

// GetCrossingDistances glues every severance road into the longest
// continuous lines it can (joining at degree-2 junctions), splits each at
// the crossings whose kind appears in includeKinds (a crossing with no
// recognized kind falls in classify.Other, mirroring the original's
// "unknown" bucket), and returns one feature per resulting segment with its
// planar length as the "length" property. This answers "how far apart are
// the crossing points along this severance" independent of the routed
// network.
func (m *MapModel) GetCrossingDistances(includeKinds []classify.CrossingKind) *geojson.FeatureCollection {
	wanted := make(map[classify.CrossingKind]bool, len(includeKinds))
	for _, k := range includeKinds {
		wanted[k] = true
	}

	var input []analytics.KeyedLine[graph.RoadID]
	for i := range m.Graph.Roads {
		road := &m.Graph.Roads[i]
		if road.Kind.Tag != classify.Severance {
			continue
		}
		input = append(input, analytics.KeyedLine[graph.RoadID]{
			Line:    road.Line,
			IDs:     []graph.RoadID{road.ID},
			Forward: []bool{true},
			Key:     "",
		})
	}
	joined := analytics.CollapseDegree2(input)

	var filtered []graph.Crossing
	for _, c := range m.Crossings {
		if wanted[c.Kind] {
			filtered = append(filtered, c)
		}
	}

	fc := geojson.NewFeatureCollection()
	for _, line := range joined {
		points := analytics.CrossingPointsOnLine(line, filtered)
		for _, seg := range analytics.SplitByCrossings(line.Line, points) {
			f := geojson.NewFeature(m.Graph.Frame.UnprojectLine(seg.Line))
			f.Properties["length"] = seg.Length
			fc.Append(f)
		}
	}
	return fc
}
