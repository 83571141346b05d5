package mapmodel

import (
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/lowtide-maps/severance/pkg/isochrone"
	"github.com/lowtide-maps/severance/pkg/router"
)

// CalculateIsochrone expands a cost field from origin (WGS84) under
// settings1 (and, when settings2 is non-nil, a second overlay field from
// the same root) and renders it per style as GeoJSON.
func (m *MapModel) CalculateIsochrone(origin orb.Point, style isochrone.Style, budgetMinutes float64, settings1 router.Settings, settings2 *router.Settings) (*geojson.FeatureCollection, error) {
	slot := profileSlotFor(settings1)
	eng := isochrone.New(m.Graph, m.Router)
	fc, err := eng.Calculate(isochrone.Options{
		Origin:    origin,
		Slot:      slot,
		Style:     style,
		Budget:    time.Duration(budgetMinutes * float64(time.Minute)),
		Settings1: settings1,
		Settings2: settings2,
		Buildings: m.Buildings,
	})
	if err != nil {
		return nil, err
	}
	m.settings = settings1
	return fc, nil
}
