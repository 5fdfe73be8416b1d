package bfs

import (
	"context"
	"errors"
	"fmt"

	"github.com/katalvlaran/hydronet/core"
)

// Sentinel errors for BFS execution.
var (
	// ErrStartNotFound is returned when a start node is absent.
	ErrStartNotFound = errors.New("bfs: start node not found")

	// ErrGraphNil is returned if a nil graph pointer is passed.
	ErrGraphNil = errors.New("bfs: graph is nil")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("bfs: invalid option supplied")
)

// Option configures BFS behavior via functional arguments.
// An invalid Option (e.g. negative depth) is recorded internally and
// surfaced as ErrOptionViolation when BFS is invoked.
type Option[N any, E any] func(*Options[N, E])

// Options holds parameters and callbacks to customize BFS execution.
type Options[N any, E any] struct {
	// Ctx allows cancellation and deadlines.
	Ctx context.Context

	// OnVisit is called when visiting a node. If it returns an error,
	// BFS aborts and propagates that error.
	OnVisit func(n N, depth int) error

	// MaxDepth, if > 0, stops exploring beyond this depth.
	MaxDepth int

	// FilterEdge can skip edges by returning false.
	FilterEdge func(e *core.Edge[N, E]) bool

	// Undirected follows forward and reverse adjacency; Reversed follows
	// reverse adjacency only.
	Undirected bool
	Reversed   bool

	err error
}

// DefaultOptions returns Options with a background context, no depth
// limit, no filtering and a no-op hook.
func DefaultOptions[N any, E any]() Options[N, E] {
	return Options[N, E]{
		Ctx:        context.Background(),
		OnVisit:    func(N, int) error { return nil },
		FilterEdge: func(*core.Edge[N, E]) bool { return true },
	}
}

// WithContext sets a custom context for cancellation.
func WithContext[N any, E any](ctx context.Context) Option[N, E] {
	return func(o *Options[N, E]) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithOnVisit registers a callback to run on visit; returning an error
// from this callback stops the BFS.
func WithOnVisit[N any, E any](fn func(n N, depth int) error) Option[N, E] {
	return func(o *Options[N, E]) {
		if fn != nil {
			o.OnVisit = fn
		}
	}
}

// WithMaxDepth stops the search at the given depth.
//
//	d > 0: limit to depth d
//	d == 0: no depth limit
//	d < 0: invalid option → ErrOptionViolation
func WithMaxDepth[N any, E any](d int) Option[N, E] {
	return func(o *Options[N, E]) {
		if d < 0 {
			o.err = fmt.Errorf("%w: MaxDepth cannot be negative (%d)", ErrOptionViolation, d)

			return
		}
		o.MaxDepth = d
	}
}

// WithFilterEdge skips edges for which fn returns false.
func WithFilterEdge[N any, E any](fn func(e *core.Edge[N, E]) bool) Option[N, E] {
	return func(o *Options[N, E]) {
		if fn != nil {
			o.FilterEdge = fn
		}
	}
}

// WithUndirected follows edges in both directions.
func WithUndirected[N any, E any]() Option[N, E] {
	return func(o *Options[N, E]) { o.Undirected = true }
}

// WithReversed follows edges against their direction.
func WithReversed[N any, E any]() Option[N, E] {
	return func(o *Options[N, E]) { o.Reversed = true }
}

// Result holds the outcome of a BFS traversal. Depth and Parent are keyed
// by node key.
type Result[N any, E any] struct {
	// Order lists the nodes in visit sequence.
	Order []N

	// Depth is the edge count from the nearest start node.
	Depth map[string]int

	// Parent is the edge each node was first reached through; start nodes
	// have none.
	Parent map[string]*core.Edge[N, E]
}

// Reached reports whether the node with key k was visited.
func (r *Result[N, E]) Reached(k string) bool {
	_, ok := r.Depth[k]

	return ok
}

// PathTo reconstructs the edges from a start node to the node with key k.
// A start node has an empty path.
func (r *Result[N, E]) PathTo(k string, key core.KeyFunc[N]) ([]*core.Edge[N, E], error) {
	if !r.Reached(k) {
		return nil, fmt.Errorf("bfs: no path to %q", k)
	}
	var path []*core.Edge[N, E]
	for cur := k; ; {
		e, ok := r.Parent[cur]
		if !ok {
			break
		}
		path = append(path, e)
		cur = key(e.From)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	return path, nil
}
