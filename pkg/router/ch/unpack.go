package ch

const maxUnpackDepth = 64
const noEdge = ^uint32(0)

// UnpackPath expands a path of overlay-graph nodes into the full sequence
// of original-graph nodes the shortest path actually visits, including
// every node skipped over by a contraction shortcut. The input path must
// be node-adjacent in the overlay (as produced by tracing bidirectional CH
// Dijkstra predecessors); UnpackPath looks at each consecutive pair once
// and recurses into sub-edges using whichever overlay (forward or
// backward) the rank ordering says holds that original directed edge —
// unlike unpacking by a single fixed direction, a shortcut's two halves
// can straddle both overlays since its middle node always has a strictly
// lower rank than both of its ends.
func UnpackPath(g *Graph, overlayNodes []uint32) []uint32 {
	if len(overlayNodes) == 0 {
		return nil
	}
	out := []uint32{overlayNodes[0]}
	for i := 0; i+1 < len(overlayNodes); i++ {
		unpackEdge(g, overlayNodes[i], overlayNodes[i+1], &out)
	}
	return out
}

type unpackFrame struct {
	from, to uint32
	depth    int
}

// unpackEdge expands the single original directed edge from->to (which may
// be a multi-hop shortcut) and appends every intermediate and final node
// to out, using an explicit stack to avoid recursion depth blowing up on
// pathological long shortcut chains.
func unpackEdge(g *Graph, from, to uint32, out *[]uint32) {
	stack := []unpackFrame{{from, to, 0}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if f.depth > maxUnpackDepth {
			*out = append(*out, f.to)
			continue
		}

		middle, ok := middleOf(g, f.from, f.to)
		if !ok || middle < 0 {
			*out = append(*out, f.to)
			continue
		}
		mid := uint32(middle)

		// Push mid->to first so from->mid pops and is processed first,
		// preserving original edge order in the output.
		stack = append(stack, unpackFrame{mid, f.to, f.depth + 1})
		stack = append(stack, unpackFrame{f.from, mid, f.depth + 1})
	}
}

// middleOf looks up the contracted middle node (if any) of the original
// directed edge from->to. Rank ordering tells us which overlay stores it:
// forward if rank[from] < rank[to] (stored as from->to directly), else
// backward (stored as to->from, representing the reverse direction).
func middleOf(g *Graph, from, to uint32) (int32, bool) {
	if g.Rank[from] < g.Rank[to] {
		ei := findEdge(g.FwdFirstOut, g.FwdHead, from, to)
		if ei == noEdge {
			return 0, false
		}
		return g.FwdMiddle[ei], true
	}
	ei := findEdge(g.BwdFirstOut, g.BwdHead, to, from)
	if ei == noEdge {
		return 0, false
	}
	return g.BwdMiddle[ei], true
}

// findEdge finds the edge index from source to target in a CSR graph, or
// noEdge if absent.
func findEdge(firstOut, head []uint32, source, target uint32) uint32 {
	start, end := firstOut[source], firstOut[source+1]
	for e := start; e < end; e++ {
		if head[e] == target {
			return e
		}
	}
	return noEdge
}

// FindCSRSource binary-searches firstOut for the source node owning edgeIdx.
func FindCSRSource(firstOut []uint32, edgeIdx uint32) uint32 {
	n := uint32(len(firstOut) - 1)
	lo, hi := uint32(0), n
	for lo < hi {
		mid := (lo + hi) / 2
		if firstOut[mid+1] <= edgeIdx {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo
}
