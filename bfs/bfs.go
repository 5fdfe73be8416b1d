package bfs

import (
	"fmt"

	"github.com/katalvlaran/hydronet/core"
)

// queueItem pairs a node with its BFS depth.
type queueItem[N any] struct {
	node  N
	depth int
}

// walker encapsulates mutable BFS state.
type walker[N any, E any] struct {
	g     *core.Graph[N, E]
	opts  Options[N, E]
	queue []queueItem[N]
	res   *Result[N, E]
}

// BFS runs breadth-first search on g from every node in starts at once,
// so Depth is the distance to the nearest of them.
// Returns ErrGraphNil or ErrStartNotFound for invalid input,
// ErrOptionViolation for bad options, the context's error on
// cancellation, or any OnVisit error.
func BFS[N any, E any](g *core.Graph[N, E], starts []N, opts ...Option[N, E]) (*Result[N, E], error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	o := DefaultOptions[N, E]()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	for _, s := range starts {
		if !g.HasNode(s) {
			return nil, fmt.Errorf("%w: %q", ErrStartNotFound, g.Key(s))
		}
	}

	n := g.NodeCount()
	w := &walker[N, E]{
		g:     g,
		opts:  o,
		queue: make([]queueItem[N], 0, n),
		res: &Result[N, E]{
			Order:  make([]N, 0, n),
			Depth:  make(map[string]int, n),
			Parent: make(map[string]*core.Edge[N, E], n),
		},
	}
	for _, s := range starts {
		w.enqueue(s, 0, nil)
	}

	return w.res, w.loop()
}

// enqueue marks n visited at depth d and records the edge it came through.
func (w *walker[N, E]) enqueue(n N, d int, via *core.Edge[N, E]) {
	k := w.g.Key(n)
	if _, seen := w.res.Depth[k]; seen {
		return
	}
	w.res.Depth[k] = d
	if via != nil {
		w.res.Parent[k] = via
	}
	w.queue = append(w.queue, queueItem[N]{node: n, depth: d})
}

// loop processes the queue until empty, error, or cancellation.
func (w *walker[N, E]) loop() error {
	for len(w.queue) > 0 {
		select {
		case <-w.opts.Ctx.Done():
			return w.opts.Ctx.Err()
		default:
		}

		item := w.queue[0]
		w.queue = w.queue[1:]
		w.res.Order = append(w.res.Order, item.node)
		if err := w.opts.OnVisit(item.node, item.depth); err != nil {
			return fmt.Errorf("bfs: OnVisit error at %q: %w", w.g.Key(item.node), err)
		}
		if w.opts.MaxDepth > 0 && item.depth+1 > w.opts.MaxDepth {
			continue
		}

		edges, err := w.g.Neighbors(item.node, w.opts.Undirected, w.opts.Reversed)
		if err != nil {
			panic(err)
		}
		for _, e := range edges {
			if w.opts.FilterEdge(e) {
				w.enqueue(e.To, item.depth+1, e)
			}
		}
	}

	return nil
}
