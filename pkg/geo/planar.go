package geo

import (
	"math"

	"github.com/paulmach/orb"
)

// LineLength returns the Euclidean length of a planar line string in meters.
func LineLength(ls orb.LineString) float64 {
	var total float64
	for i := 0; i+1 < len(ls); i++ {
		total += dist(ls[i], ls[i+1])
	}
	return total
}

func dist(a, b orb.Point) float64 {
	dx := a[0] - b[0]
	dy := a[1] - b[1]
	return math.Sqrt(dx*dx + dy*dy)
}

// Densify inserts points along ls so that no two consecutive points are
// farther apart than maxSpacing, preserving all original vertices.
func Densify(ls orb.LineString, maxSpacing float64) orb.LineString {
	if len(ls) < 2 || maxSpacing <= 0 {
		return ls
	}
	out := make(orb.LineString, 0, len(ls))
	out = append(out, ls[0])
	for i := 0; i+1 < len(ls); i++ {
		a, b := ls[i], ls[i+1]
		segLen := dist(a, b)
		if segLen <= maxSpacing || segLen == 0 {
			out = append(out, b)
			continue
		}
		n := int(math.Ceil(segLen / maxSpacing))
		for k := 1; k < n; k++ {
			t := float64(k) / float64(n)
			out = append(out, orb.Point{
				a[0] + t*(b[0]-a[0]),
				a[1] + t*(b[1]-a[1]),
			})
		}
		out = append(out, b)
	}
	return out
}

// Bearing returns the planar bearing in degrees from a to b, measured
// clockwise from the +Y axis (north-up), matching how bearings read on a
// projected map.
func Bearing(a, b orb.Point) float64 {
	dx := b[0] - a[0]
	dy := b[1] - a[1]
	deg := math.Atan2(dx, dy) * 180 / math.Pi
	if deg < 0 {
		deg += 360
	}
	return deg
}

// ProjectAway returns the point distMeters from origin at the given
// bearing (degrees, clockwise from north).
func ProjectAway(origin orb.Point, bearingDeg, distMeters float64) orb.Point {
	rad := bearingDeg * math.Pi / 180
	return orb.Point{
		origin[0] + distMeters*math.Sin(rad),
		origin[1] + distMeters*math.Cos(rad),
	}
}

// PointToSegmentDist computes the perpendicular planar distance from p to
// segment a-b, and the projection fraction along a-b clamped to [0,1].
func PointToSegmentDist(p, a, b orb.Point) (distance, fraction float64) {
	dx := b[0] - a[0]
	dy := b[1] - a[1]
	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return dist(p, a), 0
	}
	t := ((p[0]-a[0])*dx + (p[1]-a[1])*dy) / lenSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	closest := orb.Point{a[0] + t*dx, a[1] + t*dy}
	return dist(p, closest), t
}

// LineLocate returns the fraction along ls (in [0,1]) of the closest point
// to p, measured by cumulative arc length, and whether ls is non-degenerate.
func LineLocate(ls orb.LineString, p orb.Point) (fraction float64, ok bool) {
	total := LineLength(ls)
	if total == 0 || len(ls) < 2 {
		return 0, false
	}
	bestDist := math.Inf(1)
	var bestAlong float64
	var cum float64
	for i := 0; i+1 < len(ls); i++ {
		a, b := ls[i], ls[i+1]
		d, t := PointToSegmentDist(p, a, b)
		if d < bestDist {
			bestDist = d
			bestAlong = cum + t*dist(a, b)
		}
		cum += dist(a, b)
	}
	return bestAlong / total, true
}

// SplitAtFractions splits ls into sub-linestrings at the given sorted
// fractions in (0,1) (0 and 1 are implicit boundaries and need not be
// passed). Each returned segment is a contiguous portion of ls.
func SplitAtFractions(ls orb.LineString, fractions []float64) []orb.LineString {
	total := LineLength(ls)
	if total == 0 || len(ls) < 2 {
		return []orb.LineString{ls}
	}

	cuts := make([]float64, 0, len(fractions)+2)
	cuts = append(cuts, 0)
	for _, f := range fractions {
		if f > 0 && f < 1 {
			cuts = append(cuts, f)
		}
	}
	cuts = append(cuts, 1)

	var out []orb.LineString
	for i := 0; i+1 < len(cuts); i++ {
		seg := sliceBetween(ls, total, cuts[i], cuts[i+1])
		if len(seg) >= 2 {
			out = append(out, seg)
		}
	}
	return out
}

// SubLine extracts the single portion of ls between arc-length fractions
// fromFrac and toFrac (each in [0,1], fromFrac <= toFrac).
func SubLine(ls orb.LineString, fromFrac, toFrac float64) orb.LineString {
	total := LineLength(ls)
	if total == 0 || len(ls) < 2 {
		return ls
	}
	return sliceBetween(ls, total, fromFrac, toFrac)
}

// sliceBetween extracts the portion of ls between arc-length fractions
// fromFrac and toFrac (0..1), interpolating new endpoints as needed.
func sliceBetween(ls orb.LineString, total, fromFrac, toFrac float64) orb.LineString {
	from := fromFrac * total
	to := toFrac * total

	var out orb.LineString
	var cum float64
	started := false
	for i := 0; i+1 < len(ls); i++ {
		a, b := ls[i], ls[i+1]
		segLen := dist(a, b)
		segStart := cum
		segEnd := cum + segLen
		cum = segEnd

		if segEnd < from || segStart > to {
			continue
		}

		startT := 0.0
		if segStart < from {
			startT = (from - segStart) / segLen
		}
		endT := 1.0
		if segEnd > to {
			endT = (to - segStart) / segLen
		}

		if !started {
			out = append(out, interpolate(a, b, startT))
			started = true
		}
		out = append(out, interpolate(a, b, endT))
	}
	return out
}

func interpolate(a, b orb.Point, t float64) orb.Point {
	return orb.Point{a[0] + t*(b[0]-a[0]), a[1] + t*(b[1]-a[1])}
}

// ConvexHull returns the convex hull (as a closed ring) of the given
// planar points, used for the Graph's boundary polygon.
func ConvexHull(points []orb.Point) orb.Ring {
	pts := make([]orb.Point, len(points))
	copy(pts, points)
	if len(pts) < 3 {
		return orb.Ring(pts)
	}

	// Sort by (x, y) for a monotone-chain hull.
	for i := 1; i < len(pts); i++ {
		for j := i; j > 0 && less(pts[j], pts[j-1]); j-- {
			pts[j], pts[j-1] = pts[j-1], pts[j]
		}
	}

	cross := func(o, a, b orb.Point) float64 {
		return (a[0]-o[0])*(b[1]-o[1]) - (a[1]-o[1])*(b[0]-o[0])
	}

	var hull []orb.Point
	for _, p := range pts {
		for len(hull) >= 2 && cross(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	lower := len(hull) + 1
	for i := len(pts) - 2; i >= 0; i-- {
		p := pts[i]
		for len(hull) >= lower && cross(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	return orb.Ring(hull)
}

func less(a, b orb.Point) bool {
	if a[0] != b[0] {
		return a[0] < b[0]
	}
	return a[1] < b[1]
}
