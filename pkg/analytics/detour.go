package analytics

import (
	"context"
	"log"

	"github.com/paulmach/orb"

	"github.com/lowtide-maps/severance/pkg/geo"
	"github.com/lowtide-maps/severance/pkg/graph"
	"github.com/lowtide-maps/severance/pkg/router"
)

// minDirectLengthM guards against a division blowing up when an offset's
// two endpoints land on (almost) the same point.
const minDirectLengthM = 1.0

// DetourScore is the ratio of actual walking route length to straight-line
// distance across a severance. A near-zero direct length means the two
// offset endpoints are effectively the same point — no detour to measure —
// so it scores as a perfect 1.0 rather than being dropped as unroutable.
func DetourScore(routeLength, directLength float64) (score float64, ok bool) {
	if directLength < minDirectLengthM {
		return 1.0, true
	}
	return routeLength / directLength, true
}

// CalculateDetourScores samples perpendicular crossing requests along line
// (a planar severance polyline) and routes each one under slot, returning
// one score per offset that routed successfully. A failed route — no path,
// degenerate snap, or nothing within snap radius — is swallowed and the
// offset omitted, per the analytics error policy; the highest observed
// score is logged once scoring finishes.
func CalculateDetourScores(ctx context.Context, r *router.Router, slot graph.ProfileSlot, line orb.LineString, walkEveryM, projectAwayM float64) []float64 {
	offsets := MakePerpendicularOffsets(line, walkEveryM, projectAwayM)
	scores := make([]float64, 0, len(offsets))
	maxScore := 0.0

	for _, off := range offsets {
		directLength := geo.LineLength(off)
		route, err := r.Route(ctx, slot, off[0], off[1])
		if err != nil {
			continue
		}
		score, ok := DetourScore(route.Length, directLength)
		if !ok {
			continue
		}
		scores = append(scores, score)
		if score > maxScore {
			maxScore = score
		}
	}

	if len(offsets) > 0 {
		log.Printf("analytics: detour scoring complete, %d/%d offsets routed, max score %.2f", len(scores), len(offsets), maxScore)
	}
	return scores
}
