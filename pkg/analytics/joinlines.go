package analytics

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
)

// KeyedLine pairs a planar polyline with the per-segment IDs it was built
// from and a direction flag per segment, so a chain of merges can still
// answer "which original road, and which way, does position i come from".
// Key scopes merging: two lines with different Key never join, even if
// their endpoints coincide.
type KeyedLine[T any] struct {
	Line    orb.LineString
	IDs     []T
	Forward []bool
	Key     string
}

// endpointPrecisionCM is the rounding grid used to decide whether two
// endpoints are "the same point": coordinates within a centimeter collapse
// to one key, which absorbs floating-point noise from repeated projection
// without merging genuinely distinct junctions.
const endpointPrecisionCM = 100.0

func endpointKey(key string, p orb.Point) string {
	x := int64(math.Round(p[0] * endpointPrecisionCM))
	y := int64(math.Round(p[1] * endpointPrecisionCM))
	return fmt.Sprintf("%s|%d|%d", key, x, y)
}

type occurrence struct {
	lineIdx int
	atEnd   bool // true if this is the line's last point, false if its first
}

// CollapseDegree2 repeatedly merges pairs of lines that share a unique
// endpoint (a degree-2 junction) into one continuous line, until no such
// pair remains. Loops are preserved: a line is never merged with itself.
// The id-sequence and direction flags of a merged line record the
// traversal order of the original segments, reversed where a segment had
// to flip to keep the merged polyline's points contiguous.
func CollapseDegree2[T any](lines []KeyedLine[T]) []KeyedLine[T] {
	active := make([]*KeyedLine[T], len(lines))
	for i := range lines {
		l := lines[i]
		active[i] = &l
	}

	for {
		idx := buildEndpointIndex(active)
		mergedAny := false
		for _, occ := range idx {
			if len(occ) != 2 {
				continue
			}
			a, b := occ[0], occ[1]
			if a.lineIdx == b.lineIdx {
				continue // a loop's two ends meeting itself: preserve it
			}
			la, lb := active[a.lineIdx], active[b.lineIdx]
			if la == nil || lb == nil {
				continue
			}
			merged := mergeKeyedLines(la, a.atEnd, lb, b.atEnd)
			active[a.lineIdx] = merged
			active[b.lineIdx] = nil
			mergedAny = true
		}
		if !mergedAny {
			break
		}
	}

	out := make([]KeyedLine[T], 0, len(active))
	for _, l := range active {
		if l != nil {
			out = append(out, *l)
		}
	}
	return out
}

func buildEndpointIndex[T any](active []*KeyedLine[T]) map[string][]occurrence {
	idx := make(map[string][]occurrence)
	for i, l := range active {
		if l == nil || len(l.Line) < 2 {
			continue
		}
		startKey := endpointKey(l.Key, l.Line[0])
		endKey := endpointKey(l.Key, l.Line[len(l.Line)-1])
		idx[startKey] = append(idx[startKey], occurrence{lineIdx: i, atEnd: false})
		idx[endKey] = append(idx[endKey], occurrence{lineIdx: i, atEnd: true})
	}
	return idx
}

// mergeKeyedLines joins a and b at the endpoint identified by aAtEnd/bAtEnd,
// reorienting each line (via reverseKeyedLine) as needed so the shared
// point ends up in the middle of the result exactly once.
func mergeKeyedLines[T any](a *KeyedLine[T], aAtEnd bool, b *KeyedLine[T], bAtEnd bool) *KeyedLine[T] {
	switch {
	case aAtEnd && !bAtEnd:
		// a's end meets b's start: a followed by b.
		return concatKeyedLines(a, b)
	case aAtEnd && bAtEnd:
		// a's end meets b's end: a followed by reverse(b).
		return concatKeyedLines(a, reverseKeyedLine(b))
	case !aAtEnd && !bAtEnd:
		// a's start meets b's start: reverse(a) followed by b.
		return concatKeyedLines(reverseKeyedLine(a), b)
	default:
		// a's start meets b's end: b followed by a.
		return concatKeyedLines(b, a)
	}
}

func concatKeyedLines[T any](first, second *KeyedLine[T]) *KeyedLine[T] {
	line := make(orb.LineString, 0, len(first.Line)+len(second.Line)-1)
	line = append(line, first.Line...)
	line = append(line, second.Line[1:]...) // drop the shared duplicate point

	ids := make([]T, 0, len(first.IDs)+len(second.IDs))
	ids = append(ids, first.IDs...)
	ids = append(ids, second.IDs...)

	forward := make([]bool, 0, len(first.Forward)+len(second.Forward))
	forward = append(forward, first.Forward...)
	forward = append(forward, second.Forward...)

	return &KeyedLine[T]{Line: line, IDs: ids, Forward: forward, Key: first.Key}
}

func reverseKeyedLine[T any](l *KeyedLine[T]) *KeyedLine[T] {
	line := make(orb.LineString, len(l.Line))
	for i, pt := range l.Line {
		line[len(l.Line)-1-i] = pt
	}
	ids := make([]T, len(l.IDs))
	forward := make([]bool, len(l.Forward))
	for i := range l.IDs {
		j := len(l.IDs) - 1 - i
		ids[j] = l.IDs[i]
		forward[j] = !l.Forward[i]
	}
	return &KeyedLine[T]{Line: line, IDs: ids, Forward: forward, Key: l.Key}
}
