package analytics

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
)

func TestCollapseDegree2_SimpleChain(t *testing.T) {
	lines := []KeyedLine[int]{
		{Line: orb.LineString{{0, 0}, {10, 0}}, IDs: []int{1}, Forward: []bool{true}},
		{Line: orb.LineString{{10, 0}, {20, 0}}, IDs: []int{2}, Forward: []bool{true}},
		{Line: orb.LineString{{20, 0}, {30, 0}}, IDs: []int{3}, Forward: []bool{true}},
	}

	joined := CollapseDegree2(lines)
	assert.Len(t, joined, 1)
	assert.Equal(t, orb.LineString{{0, 0}, {10, 0}, {20, 0}, {30, 0}}, joined[0].Line)
	assert.Equal(t, []int{1, 2, 3}, joined[0].IDs)
	assert.Equal(t, []bool{true, true, true}, joined[0].Forward)
}

func TestCollapseDegree2_ReversedSegment(t *testing.T) {
	// The second segment is stored reversed (20,0)->(10,0) relative to the
	// first, but its end still touches the first segment's end.
	lines := []KeyedLine[int]{
		{Line: orb.LineString{{0, 0}, {10, 0}}, IDs: []int{1}, Forward: []bool{true}},
		{Line: orb.LineString{{20, 0}, {10, 0}}, IDs: []int{2}, Forward: []bool{true}},
	}

	joined := CollapseDegree2(lines)
	assert.Len(t, joined, 1)
	assert.Equal(t, orb.LineString{{0, 0}, {10, 0}, {20, 0}}, joined[0].Line)
	assert.Equal(t, []int{1, 2}, joined[0].IDs)
	// segment 2 had to flip to make the polyline contiguous
	assert.Equal(t, []bool{true, false}, joined[0].Forward)
}

func TestCollapseDegree2_LoopPreserved(t *testing.T) {
	// A closed loop: its two ends coincide, but it's a single line, not two.
	loop := KeyedLine[int]{
		Line:    orb.LineString{{0, 0}, {10, 0}, {10, 10}, {0, 10}, {0, 0}},
		IDs:     []int{1},
		Forward: []bool{true},
	}

	joined := CollapseDegree2([]KeyedLine[int]{loop})
	assert.Len(t, joined, 1)
	assert.Equal(t, loop.Line, joined[0].Line)
}

func TestCollapseDegree2_Idempotent(t *testing.T) {
	lines := []KeyedLine[int]{
		{Line: orb.LineString{{0, 0}, {10, 0}}, IDs: []int{1}, Forward: []bool{true}},
		{Line: orb.LineString{{10, 0}, {20, 0}}, IDs: []int{2}, Forward: []bool{true}},
	}

	once := CollapseDegree2(lines)
	twice := CollapseDegree2(once)
	assert.Equal(t, once, twice)
}

func TestCollapseDegree2_KeyScopesMerging(t *testing.T) {
	lines := []KeyedLine[int]{
		{Line: orb.LineString{{0, 0}, {10, 0}}, IDs: []int{1}, Forward: []bool{true}, Key: "a"},
		{Line: orb.LineString{{10, 0}, {20, 0}}, IDs: []int{2}, Forward: []bool{true}, Key: "b"},
	}

	joined := CollapseDegree2(lines)
	assert.Len(t, joined, 2, "lines with different keys must not merge even if endpoints coincide")
}
