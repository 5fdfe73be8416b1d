package dijkstra

import (
	"container/heap"
	"fmt"

	"github.com/katalvlaran/hydronet/core"
)

// Run searches g outward from start in order of increasing distance, where
// each edge costs weight(edge, distance so far). Hooks in opts observe and
// prune the search; see Options.
//
// Steps:
//  1. Validate inputs.
//  2. Seed the queue with start at distance 0.
//  3. Pop; drop entries rejected by VisitEdge or already settled.
//  4. Settle the node via VisitNode, then push every not-yet-used edge.
func Run[N any, E any](g *core.Graph[N, E], start N, weight WeightFunc[N, E], opts Options[N, E]) error {
	// 1) Validation
	if g == nil {
		return ErrNilGraph
	}
	if weight == nil {
		return ErrNilWeight
	}
	if !g.HasNode(start) {
		return fmt.Errorf("%w: %q", ErrStartNotFound, g.Key(start))
	}

	// 2) Runner state
	r := &runner[N, E]{
		g:       g,
		weight:  weight,
		opts:    opts,
		settled: g.KeySet(opts.ExcludedNodes...),
		usedUID: opts.ExcludedEdges,
	}
	if r.usedUID == nil {
		r.usedUID = make(map[string]struct{})
	}
	r.push(Item[N, E]{Node: start})

	// 3-4) Main loop
	return r.process()
}

// runner holds the mutable state of a single Run.
type runner[N any, E any] struct {
	g       *core.Graph[N, E]
	weight  WeightFunc[N, E]
	opts    Options[N, E]
	settled map[string]struct{}
	usedUID map[string]struct{}
	pq      nodePQ[N, E]
	seq     uint64
}

func (r *runner[N, E]) push(it Item[N, E]) {
	heap.Push(&r.pq, &nodeItem[N, E]{item: it, seq: r.seq})
	r.seq++
}

func (r *runner[N, E]) process() error {
	for r.pq.Len() > 0 {
		top := heap.Pop(&r.pq).(*nodeItem[N, E]).item

		if r.opts.VisitEdge != nil && top.Parent != nil && r.opts.VisitEdge(top.Parent) {
			continue
		}
		k := r.g.Key(top.Node)
		if _, ok := r.settled[k]; ok {
			continue
		}
		if r.opts.VisitNode != nil && r.opts.VisitNode(top) {
			continue
		}
		r.settled[k] = struct{}{}

		if err := r.relax(top); err != nil {
			return err
		}
	}

	return nil
}

// relax pushes each edge leaving top.Node whose uid has not been used yet.
func (r *runner[N, E]) relax(top Item[N, E]) error {
	nbs, err := r.g.Neighbors(top.Node, r.opts.Undirected, r.opts.Reversed)
	if err != nil {
		return fmt.Errorf("dijkstra: relax %q: %w", r.g.Key(top.Node), err)
	}
	for _, e := range nbs {
		if _, ok := r.usedUID[e.UID]; ok {
			continue
		}
		r.usedUID[e.UID] = struct{}{}
		r.push(Item[N, E]{
			Node:   e.To,
			Dist:   top.Dist + r.weight(e, top.Dist),
			Parent: e,
		})
	}

	return nil
}

// ShortestPath returns the cheapest path found from `from` to the first
// target settled, with its distance. found is false when no target is
// reachable. An empty path with found == true means from is a target.
func ShortestPath[N any, E any](
	g *core.Graph[N, E],
	from N,
	targets []N,
	weight WeightFunc[N, E],
	options ...Option[N, E],
) (path []*core.Edge[N, E], dist float64, found bool, err error) {
	var opts Options[N, E]
	for _, o := range options {
		o(&opts)
	}
	if g == nil {
		return nil, 0, false, ErrNilGraph
	}

	targetKeys := g.KeySet(targets...)
	parentOf := make(map[string]*core.Edge[N, E])
	var dest N

	opts.VisitNode = func(it Item[N, E]) bool {
		if found {
			return true
		}
		if it.Parent != nil {
			parentOf[g.Key(it.Node)] = it.Parent
		}
		if _, ok := targetKeys[g.Key(it.Node)]; ok {
			dest, dist, found = it.Node, it.Dist, true

			return true
		}

		return false
	}
	if err = Run(g, from, weight, opts); err != nil {
		return nil, 0, false, err
	}
	if !found {
		return nil, 0, false, nil
	}

	fk := g.Key(from)
	for curr := dest; g.Key(curr) != fk; {
		e := parentOf[g.Key(curr)]
		path = append(path, e)
		curr = e.From
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	return path, dist, true, nil
}

// nodeItem is a queued Item plus its push sequence.
type nodeItem[N any, E any] struct {
	item Item[N, E]
	seq  uint64
}

// nodePQ is a min-heap of *nodeItem ordered by distance, then push order.
type nodePQ[N any, E any] []*nodeItem[N, E]

// Len returns the number of items in the heap.
func (pq nodePQ[N, E]) Len() int { return len(pq) }

// Less orders by distance; equal distances pop first-in first-out.
func (pq nodePQ[N, E]) Less(i, j int) bool {
	if pq[i].item.Dist != pq[j].item.Dist {
		return pq[i].item.Dist < pq[j].item.Dist
	}

	return pq[i].seq < pq[j].seq
}

// Swap swaps two elements in the heap.
func (pq nodePQ[N, E]) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

// Push adds x, which must be a *nodeItem.
func (pq *nodePQ[N, E]) Push(x any) { *pq = append(*pq, x.(*nodeItem[N, E])) }

// Pop removes and returns the last element.
func (pq *nodePQ[N, E]) Pop() any {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]

	return item
}
