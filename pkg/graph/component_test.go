package graph

import "testing"

func TestUnionFindMergesAndReportsRepresentative(t *testing.T) {
	uf := NewUnionFind(5)
	if !uf.Union(0, 1) {
		t.Fatal("Union(0, 1) = false on fresh sets, want true")
	}
	if uf.Union(0, 1) {
		t.Error("Union(0, 1) = true on already-joined sets, want false")
	}
	if uf.Find(0) != uf.Find(1) {
		t.Error("Find(0) != Find(1) after union")
	}
	if uf.Find(2) == uf.Find(0) {
		t.Error("Find(2) == Find(0), want distinct singleton")
	}

	uf.Union(2, 3)
	uf.Union(1, 3)
	if uf.Find(0) != uf.Find(2) {
		t.Error("chained unions did not merge {0,1} and {2,3} into one set")
	}
}

func TestFindComponentsEmptyGraph(t *testing.T) {
	g := &Graph{}
	if got := g.FindComponents(); got != nil {
		t.Errorf("FindComponents on empty graph = %v, want nil", got)
	}
}

func TestFindComponentsIndexesByDescendingSize(t *testing.T) {
	g := starGraph(true)
	components := g.FindComponents()
	for i := 1; i < len(components); i++ {
		if len(components[i].Roads) > len(components[i-1].Roads) {
			t.Fatalf("components not sorted by descending size at index %d", i)
		}
	}
	for i, c := range components {
		if c.Index != i {
			t.Errorf("components[%d].Index = %d, want %d", i, c.Index, i)
		}
	}
}
