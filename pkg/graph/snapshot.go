package graph

import (
	"encoding/binary"
	"fmt"
	"hash"
	"io"
	"os"
	"time"
	"unsafe"

	"github.com/cespare/xxhash"
	"github.com/paulmach/orb"
	"github.com/paulmach/osm"

	"github.com/lowtide-maps/severance/pkg/classify"
	"github.com/lowtide-maps/severance/pkg/geo"
	"github.com/lowtide-maps/severance/pkg/tags"
)

func durationFromSeconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

func tagsFromMap(m map[string]string) tags.Tags {
	out := make(tags.Tags, 0, len(m))
	for k, v := range m {
		out = append(out, osm.Tag{Key: k, Value: v})
	}
	return out
}

const (
	snapshotMagic   = "SEVGRAPH"
	snapshotVersion = uint32(1)
)

// snapshotHeader is the fixed-size prefix of a serialized Graph.
type snapshotHeader struct {
	Magic         [8]byte
	Version       uint32
	NumRoads      uint32
	NumIntersects uint32
	OriginX       float64
	OriginY       float64
	Width         float64
	Height        float64
}

// WriteSnapshot serializes g to path as a self-describing binary file with
// an xxhash64 checksum trailer, written to a temp file and atomically
// renamed into place so a reader never observes a partial write.
func WriteSnapshot(path string, g *Graph) error {
	tmpPath := path + ".tmp"
	f, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("create temp snapshot: %w", err)
	}
	defer func() {
		f.Close()
		os.Remove(tmpPath)
	}()

	if err := WriteTo(f, g); err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close temp snapshot: %w", err)
	}
	return os.Rename(tmpPath, path)
}

// WriteTo serializes g to w in the same format WriteSnapshot uses, minus
// the atomic-rename step — used when a Graph is one section of a larger
// container format (pkg/mapmodel's snapshot embeds it this way).
func WriteTo(w io.Writer, g *Graph) error {
	hw := &hashingWriter{w: w, h: xxhash.New()}

	hdr := snapshotHeader{
		Version:       snapshotVersion,
		NumRoads:      uint32(len(g.Roads)),
		NumIntersects: uint32(len(g.Intersections)),
	}
	copy(hdr.Magic[:], snapshotMagic)
	hdr.OriginX, hdr.OriginY, hdr.Width, hdr.Height = g.Frame.Extents()

	if err := binary.Write(hw, binary.LittleEndian, &hdr); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i := range g.Roads {
		if err := writeRoad(hw, &g.Roads[i]); err != nil {
			return fmt.Errorf("write road %d: %w", i, err)
		}
	}
	for i := range g.Intersections {
		if err := writeIntersection(hw, &g.Intersections[i]); err != nil {
			return fmt.Errorf("write intersection %d: %w", i, err)
		}
	}
	if err := writeRing(hw, g.Boundary); err != nil {
		return fmt.Errorf("write boundary: %w", err)
	}

	checksum := hw.h.Sum64()
	return binary.Write(w, binary.LittleEndian, checksum)
}

// ReadSnapshot deserializes a Graph previously written by WriteSnapshot,
// validating the xxhash64 trailer before returning.
func ReadSnapshot(path string) (*Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open snapshot: %w", err)
	}
	defer f.Close()
	return ReadFrom(f)
}

// ReadFrom deserializes a Graph written by WriteTo, validating the xxhash64
// trailer before returning.
func ReadFrom(r io.Reader) (*Graph, error) {
	hr := &hashingReader{r: r, h: xxhash.New()}

	var hdr snapshotHeader
	if err := binary.Read(hr, binary.LittleEndian, &hdr); err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if string(hdr.Magic[:]) != snapshotMagic {
		return nil, fmt.Errorf("invalid magic bytes: %q", hdr.Magic)
	}
	if hdr.Version != snapshotVersion {
		return nil, fmt.Errorf("unsupported snapshot version: %d", hdr.Version)
	}

	g := &Graph{
		Roads:         make([]Road, hdr.NumRoads),
		Intersections: make([]Intersection, hdr.NumIntersects),
		Frame:         geo.NewFrameFromExtents(hdr.OriginX, hdr.OriginY, hdr.Width, hdr.Height),
	}

	for i := range g.Roads {
		if err := readRoad(hr, &g.Roads[i]); err != nil {
			return nil, fmt.Errorf("read road %d: %w", i, err)
		}
	}
	for i := range g.Intersections {
		if err := readIntersection(hr, &g.Intersections[i]); err != nil {
			return nil, fmt.Errorf("read intersection %d: %w", i, err)
		}
	}
	boundary, err := readRing(hr)
	if err != nil {
		return nil, fmt.Errorf("read boundary: %w", err)
	}
	g.Boundary = boundary

	expected := hr.h.Sum64()
	var stored uint64
	if err := binary.Read(r, binary.LittleEndian, &stored); err != nil {
		return nil, fmt.Errorf("read checksum: %w", err)
	}
	if stored != expected {
		return nil, fmt.Errorf("xxhash64 mismatch: stored=%x computed=%x", stored, expected)
	}

	return g, nil
}

func writeRoad(w io.Writer, r *Road) error {
	if err := binary.Write(w, binary.LittleEndian, r.ID); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, [2]IntersectionID{r.Src, r.Dst}); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, [3]int64{int64(r.WayID), int64(r.SrcNodeID), int64(r.DstNodeID)}); err != nil {
		return err
	}
	if err := writeNodeIDs(w, r.NodeIDs); err != nil {
		return err
	}
	if err := writePoints(w, r.Line); err != nil {
		return err
	}
	if err := writeTags(w, r.Tags.ToMap()); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, [2]uint8{uint8(r.Kind.Tag), uint8(r.Kind.Crossing)}); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, r.Access); err != nil {
		return err
	}
	costSeconds := [numProfileSlots]float64{r.Cost[0].Seconds(), r.Cost[1].Seconds()}
	if err := binary.Write(w, binary.LittleEndian, costSeconds); err != nil {
		return err
	}
	return binary.Write(w, binary.LittleEndian, r.GradientPercent)
}

func readRoad(r io.Reader, out *Road) error {
	if err := binary.Read(r, binary.LittleEndian, &out.ID); err != nil {
		return err
	}
	var ends [2]IntersectionID
	if err := binary.Read(r, binary.LittleEndian, &ends); err != nil {
		return err
	}
	out.Src, out.Dst = ends[0], ends[1]

	var ids [3]int64
	if err := binary.Read(r, binary.LittleEndian, &ids); err != nil {
		return err
	}
	out.WayID, out.SrcNodeID, out.DstNodeID = osm.WayID(ids[0]), osm.NodeID(ids[1]), osm.NodeID(ids[2])

	nodeIDs, err := readNodeIDs(r)
	if err != nil {
		return err
	}
	out.NodeIDs = nodeIDs

	pts, err := readPoints(r)
	if err != nil {
		return err
	}
	out.Line = orb.LineString(pts)

	m, err := readTags(r)
	if err != nil {
		return err
	}
	out.Tags = tagsFromMap(m)

	var kind [2]uint8
	if err := binary.Read(r, binary.LittleEndian, &kind); err != nil {
		return err
	}
	out.Kind = classify.RoadKind{Tag: classify.Kind(kind[0]), Crossing: classify.CrossingKind(kind[1])}

	if err := binary.Read(r, binary.LittleEndian, &out.Access); err != nil {
		return err
	}
	var costSeconds [numProfileSlots]float64
	if err := binary.Read(r, binary.LittleEndian, &costSeconds); err != nil {
		return err
	}
	for i, s := range costSeconds {
		out.Cost[i] = durationFromSeconds(s)
	}
	return binary.Read(r, binary.LittleEndian, &out.GradientPercent)
}

func writeIntersection(w io.Writer, in *Intersection) error {
	if err := binary.Write(w, binary.LittleEndian, in.ID); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, in.Point); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, int64(in.NodeID)); err != nil {
		return err
	}
	return writeRoadIDs(w, in.Roads)
}

func readIntersection(r io.Reader, out *Intersection) error {
	if err := binary.Read(r, binary.LittleEndian, &out.ID); err != nil {
		return err
	}
	if err := binary.Read(r, binary.LittleEndian, &out.Point); err != nil {
		return err
	}
	var nodeID int64
	if err := binary.Read(r, binary.LittleEndian, &nodeID); err != nil {
		return err
	}
	out.NodeID = osm.NodeID(nodeID)
	roads, err := readRoadIDs(r)
	if err != nil {
		return err
	}
	out.Roads = roads
	return nil
}

func writeNodeIDs(w io.Writer, ids []osm.NodeID) error {
	if err := binary.Write(w, binary.LittleEndian, uint32(len(ids))); err != nil {
		return err
	}
	for _, id := range ids {
		if err := binary.Write(w, binary.LittleEndian, int64(id)); err != nil {
			return err
		}
	}
	return nil
}

func readNodeIDs(r io.Reader) ([]osm.NodeID, error) {
	var n uint32
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return nil, err
	}
	out := make([]osm.NodeID, n)
	for i := range out {
		var id int64
		if err := binary.Read(r, binary.LittleEndian, &id); err != nil {
			return nil, err
		}
		out[i] = osm.NodeID(id)
	}
	return out, nil
}

func writeRoadIDs(w io.Writer, ids []RoadID) error {
	if err := binary.Write(w, binary.LittleEndian, uint32(len(ids))); err != nil {
		return err
	}
	if len(ids) == 0 {
		return nil
	}
	b := unsafe.Slice((*byte)(unsafe.Pointer(&ids[0])), len(ids)*4)
	_, err := w.Write(b)
	return err
}

func readRoadIDs(r io.Reader) ([]RoadID, error) {
	var n uint32
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, nil
	}
	out := make([]RoadID, n)
	b := unsafe.Slice((*byte)(unsafe.Pointer(&out[0])), int(n)*4)
	if _, err := io.ReadFull(r, b); err != nil {
		return nil, err
	}
	return out, nil
}

func writePoints(w io.Writer, ls orb.LineString) error {
	if err := binary.Write(w, binary.LittleEndian, uint32(len(ls))); err != nil {
		return err
	}
	for _, pt := range ls {
		if err := binary.Write(w, binary.LittleEndian, pt); err != nil {
			return err
		}
	}
	return nil
}

func readPoints(r io.Reader) ([]orb.Point, error) {
	var n uint32
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return nil, err
	}
	out := make([]orb.Point, n)
	for i := range out {
		if err := binary.Read(r, binary.LittleEndian, &out[i]); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func writeRing(w io.Writer, ring orb.Ring) error {
	return writePoints(w, orb.LineString(ring))
}

func readRing(r io.Reader) (orb.Ring, error) {
	pts, err := readPoints(r)
	if err != nil {
		return nil, err
	}
	return orb.Ring(pts), nil
}

func writeTags(w io.Writer, m map[string]string) error {
	if err := binary.Write(w, binary.LittleEndian, uint32(len(m))); err != nil {
		return err
	}
	for k, v := range m {
		if err := writeString(w, k); err != nil {
			return err
		}
		if err := writeString(w, v); err != nil {
			return err
		}
	}
	return nil
}

func readTags(r io.Reader) (map[string]string, error) {
	var n uint32
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return nil, err
	}
	m := make(map[string]string, n)
	for i := uint32(0); i < n; i++ {
		k, err := readString(r)
		if err != nil {
			return nil, err
		}
		v, err := readString(r)
		if err != nil {
			return nil, err
		}
		m[k] = v
	}
	return m, nil
}

func writeString(w io.Writer, s string) error {
	if err := binary.Write(w, binary.LittleEndian, uint32(len(s))); err != nil {
		return err
	}
	_, err := io.WriteString(w, s)
	return err
}

func readString(r io.Reader) (string, error) {
	var n uint32
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return "", err
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", err
	}
	return string(buf), nil
}

// hashingWriter feeds every byte written through to an xxhash64 digest
// before forwarding it, mirroring the CRC32-wrapped writer the teacher
// snapshot format used.
type hashingWriter struct {
	w io.Writer
	h hash.Hash64
}

func (hw *hashingWriter) Write(p []byte) (int, error) {
	hw.h.Write(p)
	return hw.w.Write(p)
}

type hashingReader struct {
	r io.Reader
	h hash.Hash64
}

func (hr *hashingReader) Read(p []byte) (int, error) {
	n, err := hr.r.Read(p)
	if n > 0 {
		hr.h.Write(p[:n])
	}
	return n, err
}
