package graph

import (
	"context"
	"log"

	"github.com/paulmach/orb"
	"github.com/paulmach/osm"

	"github.com/lowtide-maps/severance/pkg/classify"
	"github.com/lowtide-maps/severance/pkg/geo"
	"github.com/lowtide-maps/severance/pkg/osmread"
	"github.com/lowtide-maps/severance/pkg/severr"
	"github.com/lowtide-maps/severance/pkg/tags"
)

// queuedWay is a way that survived classification during pass 1, buffered
// so pass 2 can split it without re-reading the source bytes (OSM element
// order guarantees every node a way references has already been visited).
type queuedWay struct {
	WayID   osm.WayID
	NodeIDs []osm.NodeID
	Tags    tags.Tags
	Kind    classify.RoadKind
}

// BuildOptions configures graph construction. OnNode and OnWay, when set,
// are invoked for every element pass 1 visits (regardless of whether the
// way survives classification), letting a caller scrape crossing
// candidates and building footprints in the same read as graph
// construction.
type BuildOptions struct {
	Profile classify.Profile
	OnNode  func(*osm.Node)
	OnWay   func(*osm.Way)
}

// Build parses buf (PBF or XML, auto-detected) and constructs a Graph by
// splitting ways at shared nodes into Roads and Intersections with dense
// IDs, then projecting all geometry into a Mercator frame anchored at the
// input's bounding box.
func Build(ctx context.Context, buf []byte, opts BuildOptions) (*Graph, error) {
	nodeCoord := make(map[osm.NodeID]orb.Point)
	var ways []queuedWay
	refCount := make(map[osm.NodeID]int)

	v := osmread.Visitor{
		Node: func(n *osm.Node) {
			nodeCoord[n.ID] = orb.Point{n.Lon, n.Lat}
			if opts.OnNode != nil {
				opts.OnNode(n)
			}
		},
		Way: func(w *osm.Way) {
			if opts.OnWay != nil {
				opts.OnWay(w)
			}
			if len(w.Nodes) < 2 {
				return
			}
			kind := classify.Classify(opts.Profile, tags.Tags(w.Tags))
			if kind == nil {
				return
			}
			nodeIDs := make([]osm.NodeID, len(w.Nodes))
			for i, wn := range w.Nodes {
				nodeIDs[i] = wn.ID
				refCount[wn.ID]++
			}
			ways = append(ways, queuedWay{
				WayID:   w.ID,
				NodeIDs: nodeIDs,
				Tags:    tags.Tags(w.Tags),
				Kind:    *kind,
			})
		},
	}

	if err := osmread.Read(ctx, buf, v); err != nil {
		return nil, severr.Wrap(severr.InputMalformed, "reading OSM elements", err)
	}

	log.Printf("graph: pass 1 complete: %d candidate ways, %d referenced nodes", len(ways), len(refCount))

	// Pass 2: walk each queued way's node list, splitting into Roads at
	// intersection nodes (shared by >= 2 ways, or a way's own endpoints).
	intersectionOf := make(map[osm.NodeID]IntersectionID)
	var intersections []Intersection
	var roads []Road

	intersectionFor := func(id osm.NodeID) IntersectionID {
		if iid, ok := intersectionOf[id]; ok {
			return iid
		}
		iid := IntersectionID(len(intersections))
		intersectionOf[id] = iid
		intersections = append(intersections, Intersection{
			ID:     iid,
			Point:  nodeCoord[id],
			NodeID: id,
		})
		return iid
	}

	for _, w := range ways {
		bufNodes := []osm.NodeID{w.NodeIDs[0]}
		srcID := w.NodeIDs[0]

		emit := func(dstID osm.NodeID) {
			srcI := intersectionFor(srcID)
			dstI := intersectionFor(dstID)

			line := make(orb.LineString, len(bufNodes))
			for i, nid := range bufNodes {
				line[i] = nodeCoord[nid]
			}

			rid := RoadID(len(roads))
			roads = append(roads, Road{
				ID:        rid,
				Src:       srcI,
				Dst:       dstI,
				WayID:     w.WayID,
				SrcNodeID: srcID,
				DstNodeID: dstID,
				NodeIDs:   append([]osm.NodeID(nil), bufNodes...),
				Line:      line,
				Tags:      w.Tags,
				Kind:      w.Kind,
			})

			intersections[srcI].Roads = append(intersections[srcI].Roads, rid)
			intersections[dstI].Roads = append(intersections[dstI].Roads, rid)

			bufNodes = []osm.NodeID{dstID}
			srcID = dstID
		}

		for i := 1; i < len(w.NodeIDs); i++ {
			nid := w.NodeIDs[i]
			bufNodes = append(bufNodes, nid)
			isLast := i == len(w.NodeIDs)-1
			if isLast || refCount[nid] >= 2 {
				emit(nid)
			}
		}
	}

	if len(intersections) < 2 {
		return nil, severr.New(severr.EmptyArea, "fewer than two intersections survived classification")
	}

	g := &Graph{Roads: roads, Intersections: intersections}

	bound := orb.Bound{Min: orb.Point{1e18, 1e18}, Max: orb.Point{-1e18, -1e18}}
	for _, r := range roads {
		for _, pt := range r.Line {
			bound = bound.Extend(pt)
		}
	}
	frame := geo.NewFrame(bound)
	g.Frame = frame

	allPts := make([]orb.Point, 0, len(intersections))
	for i := range g.Roads {
		g.Roads[i].Line = frame.ProjectLine(g.Roads[i].Line)
	}
	for i := range g.Intersections {
		g.Intersections[i].Point = frame.Project(g.Intersections[i].Point)
		allPts = append(allPts, g.Intersections[i].Point)
	}
	g.Boundary = geo.ConvexHull(allPts)

	log.Printf("graph: pass 2 complete: %d roads, %d intersections", len(roads), len(intersections))

	return g, nil
}
