package geo

import (
	"math"
	"testing"

	"github.com/paulmach/orb"
)

func TestLineLength(t *testing.T) {
	ls := orb.LineString{{0, 0}, {3, 0}, {3, 4}}
	if got := LineLength(ls); got != 7 {
		t.Errorf("LineLength = %v, want 7", got)
	}
}

func TestDensifyInsertsPointsButKeepsEndpoints(t *testing.T) {
	ls := orb.LineString{{0, 0}, {100, 0}}
	out := Densify(ls, 30)
	if out[0] != ls[0] || out[len(out)-1] != ls[1] {
		t.Fatalf("Densify changed endpoints: %v", out)
	}
	for i := 0; i+1 < len(out); i++ {
		if d := dist(out[i], out[i+1]); d > 30+1e-9 {
			t.Errorf("segment %d-%d length %v exceeds maxSpacing 30", i, i+1, d)
		}
	}
}

func TestDensifyNoopBelowSpacing(t *testing.T) {
	ls := orb.LineString{{0, 0}, {10, 0}}
	out := Densify(ls, 30)
	if len(out) != 2 {
		t.Errorf("Densify on a short segment added points: %v", out)
	}
}

func TestBearingCardinalDirections(t *testing.T) {
	cases := []struct {
		b    orb.Point
		want float64
	}{
		{orb.Point{0, 1}, 0},
		{orb.Point{1, 0}, 90},
		{orb.Point{0, -1}, 180},
		{orb.Point{-1, 0}, 270},
	}
	for _, c := range cases {
		if got := Bearing(orb.Point{0, 0}, c.b); math.Abs(got-c.want) > 1e-9 {
			t.Errorf("Bearing(origin, %v) = %v, want %v", c.b, got, c.want)
		}
	}
}

func TestProjectAwayInvertsBearing(t *testing.T) {
	origin := orb.Point{10, 10}
	p := ProjectAway(origin, 90, 50)
	if math.Abs(p[0]-60) > 1e-9 || math.Abs(p[1]-10) > 1e-9 {
		t.Errorf("ProjectAway(origin, 90deg, 50m) = %v, want (60,10)", p)
	}
	if math.Abs(dist(origin, p)-50) > 1e-9 {
		t.Errorf("distance from origin = %v, want 50", dist(origin, p))
	}
}

func TestPointToSegmentDistClampsToEndpoints(t *testing.T) {
	a, b := orb.Point{0, 0}, orb.Point{10, 0}

	d, frac := PointToSegmentDist(orb.Point{5, 5}, a, b)
	if math.Abs(d-5) > 1e-9 || math.Abs(frac-0.5) > 1e-9 {
		t.Errorf("perpendicular case: d=%v frac=%v, want d=5 frac=0.5", d, frac)
	}

	d, frac = PointToSegmentDist(orb.Point{-5, 0}, a, b)
	if math.Abs(d-5) > 1e-9 || frac != 0 {
		t.Errorf("before-start case: d=%v frac=%v, want d=5 frac=0", d, frac)
	}

	d, frac = PointToSegmentDist(orb.Point{15, 0}, a, b)
	if math.Abs(d-5) > 1e-9 || frac != 1 {
		t.Errorf("past-end case: d=%v frac=%v, want d=5 frac=1", d, frac)
	}
}

func TestLineLocateDegenerateLine(t *testing.T) {
	if _, ok := LineLocate(orb.LineString{{0, 0}}, orb.Point{0, 0}); ok {
		t.Error("LineLocate on a single-point line should report ok=false")
	}
}

func TestLineLocateMidpoint(t *testing.T) {
	ls := orb.LineString{{0, 0}, {10, 0}, {20, 0}}
	frac, ok := LineLocate(ls, orb.Point{10, 1})
	if !ok {
		t.Fatal("LineLocate reported ok=false")
	}
	if math.Abs(frac-0.5) > 1e-9 {
		t.Errorf("fraction = %v, want 0.5", frac)
	}
}

func TestSubLineExtractsPortion(t *testing.T) {
	ls := orb.LineString{{0, 0}, {100, 0}}
	sub := SubLine(ls, 0.25, 0.75)
	if len(sub) != 2 {
		t.Fatalf("len(sub) = %d, want 2", len(sub))
	}
	if math.Abs(sub[0][0]-25) > 1e-9 || math.Abs(sub[1][0]-75) > 1e-9 {
		t.Errorf("SubLine(0.25, 0.75) = %v, want [(25,0) (75,0)]", sub)
	}
}

func TestSplitAtFractionsProducesContiguousSegments(t *testing.T) {
	ls := orb.LineString{{0, 0}, {100, 0}}
	segments := SplitAtFractions(ls, []float64{0.3, 0.6})
	if len(segments) != 3 {
		t.Fatalf("len(segments) = %d, want 3", len(segments))
	}
	var total float64
	for _, seg := range segments {
		total += LineLength(seg)
	}
	if math.Abs(total-LineLength(ls)) > 1e-9 {
		t.Errorf("sum of segment lengths = %v, want %v", total, LineLength(ls))
	}
}

func TestConvexHullOfSquareReturnsFourCorners(t *testing.T) {
	pts := []orb.Point{{0, 0}, {10, 0}, {10, 10}, {0, 10}, {5, 5}}
	hull := ConvexHull(pts)
	if len(hull) != 5 {
		t.Fatalf("len(hull) = %d, want 5 (four corners plus the closing point, interior point excluded)", len(hull))
	}
	for _, p := range hull {
		if p == (orb.Point{5, 5}) {
			t.Error("interior point (5,5) ended up on the hull")
		}
	}
}

func TestConvexHullFewerThanThreePoints(t *testing.T) {
	pts := []orb.Point{{0, 0}, {1, 1}}
	hull := ConvexHull(pts)
	if len(hull) != 2 {
		t.Errorf("len(hull) = %d, want 2 (degenerate input returned as-is)", len(hull))
	}
}
