package mapmodel

import (
	"github.com/paulmach/orb/geojson"
)

// Render returns the full pedestrian network as GeoJSON, WGS84. Per-road
// properties: kind (RoadKind debug string), url (OSM way URL), gradient
// (percent).
func (m *MapModel) Render() *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for i := range m.Graph.Roads {
		road := &m.Graph.Roads[i]
		f := geojson.NewFeature(m.Graph.Frame.UnprojectLine(road.Line))
		f.Properties["kind"] = road.Kind.String()
		f.Properties["url"] = roadURL(road.WayID)
		f.Properties["gradient"] = road.GradientPercent
		fc.Append(f)
	}
	return fc
}
