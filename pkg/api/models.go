package api

import (
	"time"

	"github.com/lowtide-maps/severance/pkg/router"
)

// SettingsJSON is the wire shape of router.Settings: crossing penalties
// travel as whole seconds rather than time.Duration, since every other
// duration in the §6 surface (active_duration_s, waiting_duration_s,
// cost_seconds) already uses plain seconds.
type SettingsJSON struct {
	ObeyCrossings   bool    `json:"obey_crossings"`
	BaseSpeedMPH    float64 `json:"base_speed_mph"`
	DelaySignalized float64 `json:"delay_signalized_s"`
	DelayZebra      float64 `json:"delay_zebra_s"`
	DelayOther      float64 `json:"delay_other_s"`
}

func (s SettingsJSON) toSettings() router.Settings {
	return router.Settings{
		ObeyCrossings:   s.ObeyCrossings,
		BaseSpeedMPH:    s.BaseSpeedMPH,
		DelaySignalized: time.Duration(s.DelaySignalized * float64(time.Second)),
		DelayZebra:      time.Duration(s.DelayZebra * float64(time.Second)),
		DelayOther:      time.Duration(s.DelayOther * float64(time.Second)),
	}
}

// CompareRouteRequest is the JSON body for POST /api/v1/route: two WGS84
// coordinates and the Settings to route under.
type CompareRouteRequest struct {
	X1       float64      `json:"x1"`
	Y1       float64      `json:"y1"`
	X2       float64      `json:"x2"`
	Y2       float64      `json:"y2"`
	Settings SettingsJSON `json:"settings"`
}

// IsochroneRequest is the JSON body for POST /api/v1/isochrone: an origin,
// a render style, a time budget in minutes, and one or two Settings — a
// second Settings renders an overlay cost field over the same budget for
// comparison, per spec.md §6.
type IsochroneRequest struct {
	X             float64       `json:"x"`
	Y             float64       `json:"y"`
	Style         string        `json:"style"`
	BudgetMinutes float64       `json:"budget_minutes"`
	Settings1     SettingsJSON  `json:"settings1"`
	Settings2     *SettingsJSON `json:"settings2,omitempty"`
}

// DetourScoresRequest is the JSON body for POST /api/v1/detour-scores.
type DetourScoresRequest struct {
	Settings SettingsJSON `json:"settings"`
}

// CrossingDistancesRequest is the JSON body for POST
// /api/v1/crossing-distances. IncludeKinds names which crossing kinds
// count as a usable crossing point when splitting severance lines: any of
// "signalized", "zebra", "other". An empty list matches nothing, mirroring
// the original's empty include-set — callers that want everything must
// name every kind.
type CrossingDistancesRequest struct {
	IncludeKinds []string `json:"include_kinds"`
}

// ErrorResponse is the JSON response for a failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthResponse is the JSON response for GET /api/v1/health.
type HealthResponse struct {
	Status string `json:"status"`
}

// StatsResponse is the JSON response for GET /api/v1/stats.
type StatsResponse struct {
	NumIntersections int `json:"num_intersections"`
	NumRoads         int `json:"num_roads"`
	NumCrossings     int `json:"num_crossings"`
}
