package graph

import (
	"bytes"
	"context"
	"testing"

	"github.com/lowtide-maps/severance/pkg/classify"
)

func TestWriteToReadFromRoundTrip(t *testing.T) {
	g, err := Build(context.Background(), []byte(tinyOSM), BuildOptions{Profile: classify.USA})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	g.PostProcessSeverances()

	var buf bytes.Buffer
	if err := WriteTo(&buf, g); err != nil {
		t.Fatalf("WriteTo: %v", err)
	}

	got, err := ReadFrom(&buf)
	if err != nil {
		t.Fatalf("ReadFrom: %v", err)
	}

	if len(got.Roads) != len(g.Roads) {
		t.Fatalf("len(Roads) = %d, want %d", len(got.Roads), len(g.Roads))
	}
	if len(got.Intersections) != len(g.Intersections) {
		t.Fatalf("len(Intersections) = %d, want %d", len(got.Intersections), len(g.Intersections))
	}

	for i := range g.Roads {
		want, have := g.Roads[i], got.Roads[i]
		if have.ID != want.ID || have.Src != want.Src || have.Dst != want.Dst {
			t.Errorf("road %d: got {ID:%d Src:%d Dst:%d}, want {ID:%d Src:%d Dst:%d}",
				i, have.ID, have.Src, have.Dst, want.ID, want.Src, want.Dst)
		}
		if have.Kind.Tag != want.Kind.Tag {
			t.Errorf("road %d: Kind.Tag = %v, want %v", i, have.Kind.Tag, want.Kind.Tag)
		}
		if len(have.Line) != len(want.Line) {
			t.Errorf("road %d: len(Line) = %d, want %d", i, len(have.Line), len(want.Line))
		}
	}

	ox, oy, w, h := got.Frame.Extents()
	wox, woy, ww, wh := g.Frame.Extents()
	if ox != wox || oy != woy || w != ww || h != wh {
		t.Errorf("Frame extents = (%v,%v,%v,%v), want (%v,%v,%v,%v)", ox, oy, w, h, wox, woy, ww, wh)
	}
}

func TestReadFromRejectsBadMagic(t *testing.T) {
	_, err := ReadFrom(bytes.NewReader([]byte("not a snapshot at all, way too short")))
	if err == nil {
		t.Fatal("ReadFrom on garbage input succeeded, want an error")
	}
}

func TestReadFromDetectsChecksumMismatch(t *testing.T) {
	g, err := Build(context.Background(), []byte(tinyOSM), BuildOptions{Profile: classify.USA})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	var buf bytes.Buffer
	if err := WriteTo(&buf, g); err != nil {
		t.Fatalf("WriteTo: %v", err)
	}
	corrupted := buf.Bytes()
	corrupted[len(corrupted)-1] ^= 0xFF

	if _, err := ReadFrom(bytes.NewReader(corrupted)); err == nil {
		t.Fatal("ReadFrom on corrupted checksum succeeded, want an error")
	}
}

// ReadFrom must stop exactly at its own checksum trailer so further
// sections can follow in the same stream (pkg/mapmodel's snapshot format
// relies on this).
func TestReadFromLeavesTrailingDataUntouched(t *testing.T) {
	g, err := Build(context.Background(), []byte(tinyOSM), BuildOptions{Profile: classify.USA})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	var buf bytes.Buffer
	if err := WriteTo(&buf, g); err != nil {
		t.Fatalf("WriteTo: %v", err)
	}
	buf.WriteString("trailing-metadata")

	if _, err := ReadFrom(&buf); err != nil {
		t.Fatalf("ReadFrom: %v", err)
	}
	if buf.String() != "trailing-metadata" {
		t.Errorf("remaining buffer = %q, want %q", buf.String(), "trailing-metadata")
	}
}
