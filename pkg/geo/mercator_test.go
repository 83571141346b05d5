package geo

import (
	"math"
	"testing"

	"github.com/paulmach/orb"
)

func TestFrameProjectUnprojectRoundTrip(t *testing.T) {
	bounds := orb.Bound{Min: orb.Point{-75.2, 39.9}, Max: orb.Point{-75.0, 40.1}}
	f := NewFrame(bounds)

	pts := []orb.Point{{-75.1, 40.0}, {-75.2, 39.9}, {-75.0, 40.1}}
	for _, p := range pts {
		projected := f.Project(p)
		back := f.Unproject(projected)
		if math.Abs(back[0]-p[0]) > 1e-9 || math.Abs(back[1]-p[1]) > 1e-9 {
			t.Errorf("round trip for %v: got %v", p, back)
		}
	}
}

func TestFrameProjectOriginIsNearZero(t *testing.T) {
	bounds := orb.Bound{Min: orb.Point{-75.2, 39.9}, Max: orb.Point{-75.0, 40.1}}
	f := NewFrame(bounds)

	origin := f.Project(bounds.Min)
	if math.Abs(origin[0]) > 1e-6 || math.Abs(origin[1]) > 1e-6 {
		t.Errorf("Project(bounds.Min) = %v, want near (0,0)", origin)
	}
}

func TestFrameExtentsRoundTripThroughNewFrameFromExtents(t *testing.T) {
	bounds := orb.Bound{Min: orb.Point{-75.2, 39.9}, Max: orb.Point{-75.0, 40.1}}
	f := NewFrame(bounds)
	ox, oy, w, h := f.Extents()

	f2 := NewFrameFromExtents(ox, oy, w, h)
	p := orb.Point{-75.1, 40.0}
	if got, want := f2.Project(p), f.Project(p); got != want {
		t.Errorf("NewFrameFromExtents frame projects %v differently: got %v, want %v", p, got, want)
	}
}

func TestFrameProjectLineAndRing(t *testing.T) {
	bounds := orb.Bound{Min: orb.Point{-75.2, 39.9}, Max: orb.Point{-75.0, 40.1}}
	f := NewFrame(bounds)

	line := orb.LineString{{-75.1, 40.0}, {-75.05, 40.05}}
	projected := f.ProjectLine(line)
	if len(projected) != len(line) {
		t.Fatalf("len(ProjectLine) = %d, want %d", len(projected), len(line))
	}
	back := f.UnprojectLine(projected)
	for i := range line {
		if math.Abs(back[i][0]-line[i][0]) > 1e-9 {
			t.Errorf("UnprojectLine[%d] = %v, want %v", i, back[i], line[i])
		}
	}

	ring := orb.Ring{{-75.1, 40.0}, {-75.05, 40.05}, {-75.1, 40.05}, {-75.1, 40.0}}
	projectedRing := f.ProjectRing(ring)
	backRing := f.UnprojectRing(projectedRing)
	for i := range ring {
		if math.Abs(backRing[i][0]-ring[i][0]) > 1e-9 || math.Abs(backRing[i][1]-ring[i][1]) > 1e-9 {
			t.Errorf("ring point %d round trip mismatch: got %v, want %v", i, backRing[i], ring[i])
		}
	}
}
