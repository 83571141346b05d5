package router

import "github.com/lowtide-maps/severance/pkg/router/ch"

const chInfinity = ^uint32(0)

type pqItem struct {
	node uint32
	dist uint32
}

// minHeap is a concrete-typed binary min-heap over pqItem, avoiding the
// interface boxing container/heap would impose on a per-query hot path.
type minHeap struct {
	items []pqItem
}

func (h *minHeap) Len() int { return len(h.items) }

func (h *minHeap) push(node, dist uint32) {
	h.items = append(h.items, pqItem{node, dist})
	i := len(h.items) - 1
	for i > 0 {
		parent := (i - 1) / 2
		if h.items[i].dist >= h.items[parent].dist {
			break
		}
		h.items[i], h.items[parent] = h.items[parent], h.items[i]
		i = parent
	}
}

func (h *minHeap) pop() pqItem {
	top := h.items[0]
	n := len(h.items) - 1
	h.items[0] = h.items[n]
	h.items = h.items[:n]
	i := 0
	for {
		child := 2*i + 1
		if child >= n {
			break
		}
		if right := child + 1; right < n && h.items[right].dist < h.items[child].dist {
			child = right
		}
		if h.items[i].dist <= h.items[child].dist {
			break
		}
		h.items[i], h.items[child] = h.items[child], h.items[i]
		i = child
	}
	return top
}

func (h *minHeap) reset() { h.items = h.items[:0] }

// queryState holds reusable per-query state for bidirectional CH Dijkstra,
// recycled across queries via a sync.Pool to avoid per-route allocation.
type queryState struct {
	distFwd, distBwd []uint32
	predFwd, predBwd []uint32
	touched          []uint32
	fwdPQ, bwdPQ     minHeap
}

func newQueryState(numNodes uint32) *queryState {
	distFwd := make([]uint32, numNodes)
	distBwd := make([]uint32, numNodes)
	predFwd := make([]uint32, numNodes)
	predBwd := make([]uint32, numNodes)
	for i := range distFwd {
		distFwd[i] = chInfinity
		distBwd[i] = chInfinity
		predFwd[i] = chInfinity
		predBwd[i] = chInfinity
	}
	return &queryState{distFwd: distFwd, distBwd: distBwd, predFwd: predFwd, predBwd: predBwd}
}

func (qs *queryState) reset() {
	for _, n := range qs.touched {
		qs.distFwd[n] = chInfinity
		qs.distBwd[n] = chInfinity
		qs.predFwd[n] = chInfinity
		qs.predBwd[n] = chInfinity
	}
	qs.touched = qs.touched[:0]
	qs.fwdPQ.reset()
	qs.bwdPQ.reset()
}

func (qs *queryState) touchFwd(node uint32) {
	if qs.distFwd[node] == chInfinity && qs.distBwd[node] == chInfinity {
		qs.touched = append(qs.touched, node)
	}
}

func (qs *queryState) touchBwd(node uint32) {
	if qs.distFwd[node] == chInfinity && qs.distBwd[node] == chInfinity {
		qs.touched = append(qs.touched, node)
	}
}

// runBidirectionalDijkstraFrom runs CH bidirectional search over an already
// seeded queryState (one or more nodes pushed onto fwdPQ/bwdPQ with their
// initial distances), returning the meeting node and total distance, or
// ok=false if no path exists. Seeding with more than one node per side lets
// the caller start a search from a point partway along a snapped road.
func runBidirectionalDijkstraFrom(g *ch.Graph, qs *queryState) (meet uint32, dist uint32, ok bool) {
	best := chInfinity
	bestMeet := chInfinity

	for qs.fwdPQ.Len() > 0 || qs.bwdPQ.Len() > 0 {
		if qs.fwdPQ.Len() > 0 {
			item := qs.fwdPQ.pop()
			if item.dist <= qs.distFwd[item.node] {
				if item.dist <= best {
					relaxForward(g, qs, item.node, item.dist)
				}
				if qs.distBwd[item.node] != chInfinity {
					if total := qs.distFwd[item.node] + qs.distBwd[item.node]; total < best {
						best = total
						bestMeet = item.node
					}
				}
			}
		}
		if qs.bwdPQ.Len() > 0 {
			item := qs.bwdPQ.pop()
			if item.dist <= qs.distBwd[item.node] {
				if item.dist <= best {
					relaxBackward(g, qs, item.node, item.dist)
				}
				if qs.distFwd[item.node] != chInfinity {
					if total := qs.distFwd[item.node] + qs.distBwd[item.node]; total < best {
						best = total
						bestMeet = item.node
					}
				}
			}
		}
		if qs.fwdPQ.Len() == 0 && qs.bwdPQ.Len() == 0 {
			break
		}
	}

	if bestMeet == chInfinity {
		return 0, 0, false
	}
	return bestMeet, best, true
}

func relaxForward(g *ch.Graph, qs *queryState, node uint32, dist uint32) {
	start, end := g.FwdFirstOut[node], g.FwdFirstOut[node+1]
	for e := start; e < end; e++ {
		to := g.FwdHead[e]
		nd := dist + g.FwdWeight[e]
		if nd < qs.distFwd[to] {
			qs.touchFwd(to)
			qs.distFwd[to] = nd
			qs.predFwd[to] = node
			qs.fwdPQ.push(to, nd)
		}
	}
}

func relaxBackward(g *ch.Graph, qs *queryState, node uint32, dist uint32) {
	start, end := g.BwdFirstOut[node], g.BwdFirstOut[node+1]
	for e := start; e < end; e++ {
		to := g.BwdHead[e]
		nd := dist + g.BwdWeight[e]
		if nd < qs.distBwd[to] {
			qs.touchBwd(to)
			qs.distBwd[to] = nd
			qs.predBwd[to] = node
			qs.bwdPQ.push(to, nd)
		}
	}
}

// reconstructOverlayPathFrom walks predFwd from meet back to whichever seed
// node fed it (identified by predFwd[n] still being chInfinity) and predBwd
// from meet forward to its seed, producing the full overlay node path.
func reconstructOverlayPathFrom(qs *queryState, meet uint32) []uint32 {
	var fwdHalf []uint32
	for n := meet; ; {
		fwdHalf = append(fwdHalf, n)
		if qs.predFwd[n] == chInfinity {
			break
		}
		n = qs.predFwd[n]
	}
	for i, j := 0, len(fwdHalf)-1; i < j; i, j = i+1, j-1 {
		fwdHalf[i], fwdHalf[j] = fwdHalf[j], fwdHalf[i]
	}

	var bwdHalf []uint32
	for n := meet; qs.predBwd[n] != chInfinity; {
		n = qs.predBwd[n]
		bwdHalf = append(bwdHalf, n)
	}

	return append(fwdHalf, bwdHalf...)
}
