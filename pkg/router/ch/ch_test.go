package ch

import "testing"

// linePath builds a directed path CSR 0->1->...->n-1, each edge weight w.
func linePath(n int, w uint32) *CSR {
	firstOut := make([]uint32, n+1)
	var head, weight []uint32
	for i := 0; i < n-1; i++ {
		firstOut[i] = uint32(len(head))
		head = append(head, uint32(i+1))
		weight = append(weight, w)
	}
	for i := n - 1; i <= n; i++ {
		firstOut[i] = uint32(len(head))
	}
	return &CSR{NumNodes: uint32(n), FirstOut: firstOut, Head: head, Weight: weight}
}

func TestCSREdgesFrom(t *testing.T) {
	g := linePath(4, 10)
	start, end := g.EdgesFrom(1)
	if end-start != 1 {
		t.Fatalf("EdgesFrom(1) range = [%d,%d), want exactly one edge", start, end)
	}
	if g.Head[start] != 2 {
		t.Errorf("Head[start] = %d, want 2", g.Head[start])
	}
}

func TestContractEmptyGraph(t *testing.T) {
	g := Contract(&CSR{NumNodes: 0})
	if g.NumNodes != 0 {
		t.Errorf("NumNodes = %d, want 0", g.NumNodes)
	}
}

func TestContractAssignsDistinctRanks(t *testing.T) {
	n := 20
	csr := linePath(n, 5)
	chg := Contract(csr)

	if chg.NumNodes != uint32(n) {
		t.Fatalf("NumNodes = %d, want %d", chg.NumNodes, n)
	}
	seen := make([]bool, n)
	for _, rank := range chg.Rank {
		if rank >= uint32(n) {
			t.Fatalf("rank %d out of range [0,%d)", rank, n)
		}
		if seen[rank] {
			t.Fatalf("duplicate rank %d", rank)
		}
		seen[rank] = true
	}
}

func TestContractPreservesOriginalCSR(t *testing.T) {
	csr := linePath(5, 7)
	chg := Contract(csr)
	if chg.Orig.NumNodes != csr.NumNodes {
		t.Errorf("Orig.NumNodes = %d, want %d", chg.Orig.NumNodes, csr.NumNodes)
	}
	if len(chg.Orig.Head) != len(csr.Head) {
		t.Errorf("Orig.Head len = %d, want %d", len(chg.Orig.Head), len(csr.Head))
	}
}

func TestUnpackPathNoOverlayNodes(t *testing.T) {
	if got := UnpackPath(&Graph{}, nil); got != nil {
		t.Errorf("UnpackPath(nil) = %v, want nil", got)
	}
}

func TestUnpackPathDirectEdgeNoShortcut(t *testing.T) {
	// A two-node graph where 0->1 is a plain original edge (middle -1) in
	// both overlays, so unpacking adds no intermediate nodes.
	g := &Graph{
		NumNodes:    2,
		Rank:        []uint32{0, 1},
		FwdFirstOut: []uint32{0, 1, 1},
		FwdHead:     []uint32{1},
		FwdWeight:   []uint32{1},
		FwdMiddle:   []int32{-1},
		BwdFirstOut: []uint32{0, 0, 0},
	}
	got := UnpackPath(g, []uint32{0, 1})
	want := []uint32{0, 1}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("UnpackPath = %v, want %v", got, want)
	}
}

func TestUnpackPathExpandsShortcut(t *testing.T) {
	// 0->2 is a shortcut over middle node 1; 0->1 and 1->2 are the
	// original edges it represents, both stored in the forward overlay.
	g := &Graph{
		NumNodes:    3,
		Rank:        []uint32{0, 1, 2},
		FwdFirstOut: []uint32{0, 2, 3, 3},
		FwdHead:     []uint32{1, 2, 2},
		FwdWeight:   []uint32{1, 1, 2},
		FwdMiddle:   []int32{-1, 1, -1},
		BwdFirstOut: []uint32{0, 0, 0, 0},
	}
	got := UnpackPath(g, []uint32{0, 2})
	want := []uint32{0, 1, 2}
	if len(got) != len(want) {
		t.Fatalf("UnpackPath = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("UnpackPath[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestFindCSRSource(t *testing.T) {
	firstOut := []uint32{0, 2, 2, 5}
	if got := FindCSRSource(firstOut, 0); got != 0 {
		t.Errorf("FindCSRSource(0) = %d, want 0", got)
	}
	if got := FindCSRSource(firstOut, 1); got != 0 {
		t.Errorf("FindCSRSource(1) = %d, want 0", got)
	}
	if got := FindCSRSource(firstOut, 2); got != 2 {
		t.Errorf("FindCSRSource(2) = %d, want 2", got)
	}
	if got := FindCSRSource(firstOut, 4); got != 2 {
		t.Errorf("FindCSRSource(4) = %d, want 2", got)
	}
}
