// Package osmread streams OSM elements from a raw byte buffer, auto-detecting
// PBF vs XML encoding, and exposes them through a push-style visitor.
package osmread

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"github.com/paulmach/osm/osmxml"
)

// Visitor receives each OSM element exactly once, in OSM order: all nodes,
// then all ways, then all relations.
type Visitor struct {
	Node     func(*osm.Node)
	Way      func(*osm.Way)
	Relation func(*osm.Relation)
}

// ErrMalformed wraps any decode failure, regardless of detected format.
type ErrMalformed struct {
	Format string
	Err    error
}

func (e *ErrMalformed) Error() string {
	return fmt.Sprintf("osmread: malformed %s input: %v", e.Format, e.Err)
}

func (e *ErrMalformed) Unwrap() error { return e.Err }

// detect sniffs the first 5 bytes of r, case-insensitively, for "<?xml".
// Everything else is assumed to be PBF.
func detect(data []byte) string {
	if len(data) >= 5 && strings.EqualFold(string(data[:5]), "<?xml") {
		return "xml"
	}
	return "pbf"
}

// Read decodes buf and calls v's callbacks for every node, way, and
// relation encountered, in a single pass. buf is taken whole in memory
// rather than streamed from an io.Reader, so detect can sniff its header
// before the decoder is chosen.
func Read(ctx context.Context, buf []byte, v Visitor) error {
	format := detect(buf)
	switch format {
	case "xml":
		return readXML(buf, v)
	default:
		return readPBF(ctx, buf, v)
	}
}

func readPBF(ctx context.Context, buf []byte, v Visitor) error {
	scanner := osmpbf.New(ctx, bytes.NewReader(buf), 1)
	defer scanner.Close()

	for scanner.Scan() {
		dispatch(scanner.Object(), v)
	}
	if err := scanner.Err(); err != nil {
		return &ErrMalformed{Format: "pbf", Err: err}
	}
	return nil
}

func readXML(buf []byte, v Visitor) error {
	scanner := osmxml.New(context.Background(), bytes.NewReader(buf))
	defer scanner.Close()

	for scanner.Scan() {
		dispatch(scanner.Object(), v)
	}
	if err := scanner.Err(); err != nil && err != io.EOF {
		return &ErrMalformed{Format: "xml", Err: err}
	}
	return nil
}

func dispatch(obj osm.Object, v Visitor) {
	switch o := obj.(type) {
	case *osm.Node:
		if v.Node != nil {
			v.Node(o)
		}
	case *osm.Way:
		if v.Way != nil {
			v.Way(o)
		}
	case *osm.Relation:
		if v.Relation != nil {
			v.Relation(o)
		}
	}
}
