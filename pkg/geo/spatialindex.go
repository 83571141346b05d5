package geo

import (
	"github.com/paulmach/orb"
	"github.com/tidwall/rtree"
)

// SpatialIndex is a planar nearest-neighbor index over axis-aligned boxes.
// The router's snapper (pkg/router/snap.go) uses it to shortlist roads near
// a query point without an O(n) scan per point; building-to-road
// assignment goes through that same snapper.
//
// It wraps github.com/tidwall/rtree directly: the corpus of boxes here is
// road linestring bounding boxes rather than a dense uniform point cloud, so
// an R-tree's ability to index variable-sized boxes is the better fit.
type SpatialIndex struct {
	tr *rtree.RTree
}

// NewSpatialIndex returns an empty index.
func NewSpatialIndex() *SpatialIndex {
	return &SpatialIndex{tr: &rtree.RTree{}}
}

// Insert adds an entry identified by id, covering the axis-aligned box
// [minPt, maxPt] in planar meters. Typically minPt/maxPt is the bounding
// box of a road's linestring.
func (s *SpatialIndex) Insert(id int, minPt, maxPt orb.Point) {
	s.tr.Insert([2]float64{minPt[0], minPt[1]}, [2]float64{maxPt[0], maxPt[1]}, id)
}

// Nearest returns the id of the box nearest to p by Euclidean distance to
// the box boundary, and the distance in meters. ok is false if the index
// is empty.
func (s *SpatialIndex) Nearest(p orb.Point) (id int, distance float64, ok bool) {
	pt := [2]float64{p[0], p[1]}
	s.tr.Nearby(rtree.BoxDist(pt, pt, nil), func(min, max [2]float64, data interface{}, dist float64) bool {
		id = data.(int)
		distance = dist
		ok = true
		return false
	})
	return id, distance, ok
}

// Search invokes fn for every entry whose box intersects [minPt, maxPt].
// fn returning false stops the scan early.
func (s *SpatialIndex) Search(minPt, maxPt orb.Point, fn func(id int) bool) {
	s.tr.Search([2]float64{minPt[0], minPt[1]}, [2]float64{maxPt[0], maxPt[1]},
		func(min, max [2]float64, data interface{}) bool {
			return fn(data.(int))
		})
}

// Len returns the number of entries in the index.
func (s *SpatialIndex) Len() int {
	return s.tr.Len()
}
