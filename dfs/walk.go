package dfs

import (
	"fmt"

	"github.com/katalvlaran/hydronet/core"
)

// frame is one level of the explicit traversal stack.
type frame[N any, E any] struct {
	node    N
	edges   []*core.Edge[N, E]
	next    int
	pending *core.Edge[N, E] // edge we descended through, awaiting LeaveEdge
}

// walker encapsulates state during a Walk.
type walker[N any, E any] struct {
	g     *core.Graph[N, E]
	opts  Options[N, E]
	stack []frame[N, E]
}

// Walk performs a depth-first traversal of g from start.
//
// Each edge uid is dispatched to VisitEdge at most once, however many times
// its endpoints are reached. A true return from VisitNode or VisitEdge
// prunes expansion through that node or edge, and LeaveEdge still fires for
// a pruned edge: path-building callers pop their stack there.
//
// SeenNodes and SeenEdges in opts, when non-nil, are updated in place so
// that several walks can share one visited state.
//
// Returns ErrStartNotFound if start is absent. Panics if the graph's
// adjacency index is inconsistent.
func Walk[N any, E any](g *core.Graph[N, E], start N, opts Options[N, E]) error {
	// 1) Validate start
	if !g.HasNode(start) {
		return fmt.Errorf("%w: %q", ErrStartNotFound, g.Key(start))
	}

	// 2) Shared or fresh visited sets
	if opts.SeenNodes == nil {
		opts.SeenNodes = make(map[string]struct{})
	}
	if opts.SeenEdges == nil {
		opts.SeenEdges = make(map[string]struct{})
	}

	w := &walker[N, E]{g: g, opts: opts}
	w.run(start)

	return nil
}

// enter marks n visited and pushes its frame, unless n was seen already or
// VisitNode pruned it.
func (w *walker[N, E]) enter(n N) {
	k := w.g.Key(n)
	if _, ok := w.opts.SeenNodes[k]; ok {
		return
	}
	w.opts.SeenNodes[k] = struct{}{}

	if w.opts.VisitNode != nil && w.opts.VisitNode(n) {
		w.leaveNode(n)

		return
	}

	nbs, err := w.g.Neighbors(n, w.opts.Undirected, w.opts.Reversed)
	if err != nil {
		panic(fmt.Errorf("dfs: %w", err))
	}
	w.stack = append(w.stack, frame[N, E]{node: n, edges: nbs})
}

func (w *walker[N, E]) run(start N) {
	w.enter(start)

	for len(w.stack) > 0 {
		top := &w.stack[len(w.stack)-1]

		// 1) Returning from a child subtree
		if top.pending != nil {
			e := top.pending
			top.pending = nil
			w.leaveEdge(e)
		}

		// 2) Frame exhausted
		if top.next == len(top.edges) {
			n := top.node
			w.stack = w.stack[:len(w.stack)-1]
			w.leaveNode(n)

			continue
		}

		// 3) Next edge, once per uid
		e := top.edges[top.next]
		top.next++
		if _, ok := w.opts.SeenEdges[e.UID]; ok {
			continue
		}
		w.opts.SeenEdges[e.UID] = struct{}{}

		if w.opts.VisitEdge != nil && w.opts.VisitEdge(e) {
			w.leaveEdge(e)

			continue
		}

		// 4) Descend, or close the edge right away if the target is known
		if _, ok := w.opts.SeenNodes[w.g.Key(e.To)]; ok {
			w.leaveEdge(e)

			continue
		}
		top.pending = e
		w.enter(e.To)
	}
}

func (w *walker[N, E]) leaveEdge(e *core.Edge[N, E]) {
	if w.opts.LeaveEdge != nil {
		w.opts.LeaveEdge(e)
	}
}

func (w *walker[N, E]) leaveNode(n N) {
	if w.opts.LeaveNode != nil {
		w.opts.LeaveNode(n)
	}
}
