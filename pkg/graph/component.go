package graph

import (
	"sort"

	"github.com/lowtide-maps/severance/pkg/classify"
)

// UnionFind is a disjoint-set structure with path halving and union by
// rank, used to find weakly connected components over the intersection
// index space.
type UnionFind struct {
	parent []uint32
	rank   []byte // max realistic rank is well under 255
	size   []uint32
}

// NewUnionFind creates a UnionFind for n elements, each its own singleton set.
func NewUnionFind(n int) *UnionFind {
	parent := make([]uint32, n)
	size := make([]uint32, n)
	for i := range parent {
		parent[i] = uint32(i)
		size[i] = 1
	}
	return &UnionFind{parent: parent, rank: make([]byte, n), size: size}
}

// Find returns the representative of the set containing x, with path halving.
func (uf *UnionFind) Find(x uint32) uint32 {
	for uf.parent[x] != x {
		uf.parent[x] = uf.parent[uf.parent[x]]
		x = uf.parent[x]
	}
	return x
}

// Union merges the sets containing x and y. Returns false if already joined.
func (uf *UnionFind) Union(x, y uint32) bool {
	rx, ry := uf.Find(x), uf.Find(y)
	if rx == ry {
		return false
	}
	if uf.rank[rx] < uf.rank[ry] {
		rx, ry = ry, rx
	}
	uf.parent[ry] = rx
	uf.size[rx] += uf.size[ry]
	if uf.rank[rx] == uf.rank[ry] {
		uf.rank[rx]++
	}
	return true
}

// Component is one weakly connected component of the non-severance
// walking network: the intersections it spans and the roads within it.
type Component struct {
	Index         int
	Intersections []IntersectionID
	Roads         []RoadID
}

// FindComponents builds an auxiliary undirected graph whose edges are all
// non-Severance roads, computes its connected components, and returns
// every component sorted by descending size (number of roads) — unlike a
// "largest component only" finder, every island is reported so a caller
// can flag disconnected pedestrian pockets.
func (g *Graph) FindComponents() []Component {
	n := len(g.Intersections)
	if n == 0 {
		return nil
	}

	uf := NewUnionFind(n)
	for i := range g.Roads {
		road := &g.Roads[i]
		if road.Kind.Tag == classify.Severance {
			continue
		}
		uf.Union(uint32(road.Src), uint32(road.Dst))
	}

	byRoot := make(map[uint32]*Component)
	for i := range g.Roads {
		road := &g.Roads[i]
		if road.Kind.Tag == classify.Severance {
			continue
		}
		root := uf.Find(uint32(road.Src))
		c, ok := byRoot[root]
		if !ok {
			c = &Component{}
			byRoot[root] = c
		}
		c.Roads = append(c.Roads, road.ID)
	}

	seenIntersection := make(map[uint32]bool, n)
	for i := 0; i < n; i++ {
		root := uf.Find(uint32(i))
		c, ok := byRoot[root]
		if !ok {
			continue
		}
		if !seenIntersection[root] {
			seenIntersection[root] = true
		}
		c.Intersections = append(c.Intersections, IntersectionID(i))
	}

	components := make([]Component, 0, len(byRoot))
	for _, c := range byRoot {
		components = append(components, *c)
	}
	sort.Slice(components, func(i, j int) bool {
		return len(components[i].Roads) > len(components[j].Roads)
	})
	for i := range components {
		components[i].Index = i
	}
	return components
}
