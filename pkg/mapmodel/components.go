package mapmodel

import (
	"github.com/paulmach/orb/geojson"
)

// FindConnectedComponents partitions the non-severance walking network into
// its connected components and returns every road tagged with its
// component index, largest first. Foreign member "components" lists each
// component's road count in the same descending order.
func (m *MapModel) FindConnectedComponents() *geojson.FeatureCollection {
	components := m.Graph.FindComponents()

	fc := geojson.NewFeatureCollection()
	sizes := make([]int, len(components))
	for _, c := range components {
		sizes[c.Index] = len(c.Roads)
		for _, rid := range c.Roads {
			road := &m.Graph.Roads[rid]
			f := geojson.NewFeature(m.Graph.Frame.UnprojectLine(road.Line))
			f.Properties["component"] = c.Index
			fc.Append(f)
		}
	}
	fc.ExtraMembers = geojson.Properties{"components": sizes}
	return fc
}
