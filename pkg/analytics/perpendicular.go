// Package analytics computes severance detour scores: perpendicular
// crossing-request sampling along severance roads, route-length/
// direct-length scoring, and the line-joining/splitting machinery that
// turns many short severance Roads into the long continuous lines a
// detour map is drawn against.
package analytics

import (
	"github.com/paulmach/orb"

	"github.com/lowtide-maps/severance/pkg/geo"
)

// DefaultWalkEveryM is the default densify interval for perpendicular
// sampling.
const DefaultWalkEveryM = 25.0

// DefaultProjectAwayM is the default half-width of each perpendicular
// crossing request.
const DefaultProjectAwayM = 15.0

// MakePerpendicularOffsets densifies line every walkEveryM meters of
// planar arc-length, then at each densified segment's start point emits a
// short perpendicular line projectAwayM to either side of the segment's
// bearing — a synthetic "try to cross here" request used to score detour
// burden along the whole severance.
func MakePerpendicularOffsets(line orb.LineString, walkEveryM, projectAwayM float64) []orb.LineString {
	densified := geo.Densify(line, walkEveryM)
	if len(densified) < 2 {
		return nil
	}

	offsets := make([]orb.LineString, 0, len(densified)-1)
	for i := 0; i+1 < len(densified); i++ {
		start, end := densified[i], densified[i+1]
		bearing := geo.Bearing(start, end)
		left := geo.ProjectAway(start, bearing-90, projectAwayM)
		right := geo.ProjectAway(start, bearing+90, projectAwayM)
		offsets = append(offsets, orb.LineString{left, right})
	}
	return offsets
}
