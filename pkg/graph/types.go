// Package graph holds the dense Road/Intersection/Crossing model produced
// by the OSM-to-graph pipeline: way splitting, Mercator projection, road
// classification, severance post-processing, and crossing attachment.
package graph

import (
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/osm"

	"github.com/lowtide-maps/severance/pkg/classify"
	"github.com/lowtide-maps/severance/pkg/geo"
	"github.com/lowtide-maps/severance/pkg/tags"
)

// RoadID is a dense, zero-based identifier: RoadID(i) always indexes
// Graph.Roads[i].
type RoadID uint32

// IntersectionID is a dense, zero-based identifier: IntersectionID(i)
// always indexes Graph.Intersections[i].
type IntersectionID uint32

// Access describes whether, and in which direction, a profile may traverse
// a road. Pedestrian ways carry no oneway semantics of their own; the only
// source of directionality is profile exclusion.
type Access uint8

const (
	AccessNone Access = iota
	AccessForward
	AccessBackward
	AccessBoth
)

// ProfileSlot indexes the two router profiles every Road carries cost and
// access for. It is a graph-level concept (not classify.Profile, which
// selects the *regional tagging rules* used once at build time).
type ProfileSlot int

const (
	// Walking excludes Severance roads and every excluded way entirely.
	Walking ProfileSlot = iota
	// CrossAnywhere additionally traverses Severance roads, modeling
	// pedestrians who jaywalk, without the crossing-delay obligation.
	CrossAnywhere
	numProfileSlots
)

func (p ProfileSlot) String() string {
	if p == Walking {
		return "walking"
	}
	return "cross_anywhere"
}

// Road is one segment of the walking graph: the portion of an OSM way
// between two intersections (or between an endpoint and an intersection).
type Road struct {
	ID  RoadID
	Src IntersectionID
	Dst IntersectionID

	WayID     osm.WayID
	SrcNodeID osm.NodeID
	DstNodeID osm.NodeID
	// NodeIDs is every OSM node this road's polyline passes through,
	// including Src/Dst, in order. Used by crossing attachment to map a
	// crossing's node back to the roads it lies on.
	NodeIDs []osm.NodeID

	Line orb.LineString // planar (Mercator) coordinates
	Tags tags.Tags
	Kind classify.RoadKind

	Access [numProfileSlots]Access
	Cost   [numProfileSlots]time.Duration

	// GradientPercent is reserved for an elevation-raster collaborator
	// outside this core; it defaults to zero and currently contributes
	// nothing to cost.
	GradientPercent float64
}

// Length returns the road's planar length in meters.
func (r *Road) Length() float64 {
	return geo.LineLength(r.Line)
}

// Intersection is a node shared by two or more roads, or a way endpoint.
type Intersection struct {
	ID     IntersectionID
	Point  orb.Point // planar (Mercator) coordinates
	NodeID osm.NodeID
	Roads  []RoadID
}

// Crossing is a point feature (a marked pedestrian crossing) attached to
// the severance road(s) whose constituent nodes it coincides with.
type Crossing struct {
	NodeID osm.NodeID
	Point  orb.Point // planar (Mercator) coordinates
	Tags   tags.Tags
	Kind   classify.CrossingKind
	Roads  []RoadID
}

// Graph is the dense, immutable-after-build walking graph: vectors of Road
// and Intersection indexed by their own IDs, plus the projection frame and
// boundary used to translate back to WGS84 at the API surface.
type Graph struct {
	Roads         []Road
	Intersections []Intersection
	Frame         geo.Frame
	Boundary      orb.Ring
}

// EdgesAt returns the road IDs incident to intersection i.
func (g *Graph) EdgesAt(i IntersectionID) []RoadID {
	return g.Intersections[i].Roads
}

// OtherEnd returns the intersection at the opposite end of road r from i.
func (g *Graph) OtherEnd(r RoadID, i IntersectionID) IntersectionID {
	road := &g.Roads[r]
	if road.Src == i {
		return road.Dst
	}
	return road.Src
}
