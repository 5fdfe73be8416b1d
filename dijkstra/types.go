package dijkstra

import (
	"errors"

	"github.com/katalvlaran/hydronet/core"
)

// Sentinel errors returned by Run and ShortestPath.
var (
	// ErrNilGraph indicates that a nil graph was passed in.
	ErrNilGraph = errors.New("dijkstra: graph is nil")

	// ErrStartNotFound indicates that the start node is not in the graph.
	ErrStartNotFound = errors.New("dijkstra: start node not found in graph")

	// ErrNilWeight indicates that no weight function was supplied.
	ErrNilWeight = errors.New("dijkstra: weight function is nil")
)

// WeightFunc returns the cost of crossing e when the walk has already
// accumulated dist at e.From. Costs may depend on dist (for example a
// pressure that falls along the way).
type WeightFunc[N any, E any] func(e *core.Edge[N, E], dist float64) float64

// Item is one settled entry: the node, its distance from the start and the
// edge it was reached through (nil for the start).
type Item[N any, E any] struct {
	Node   N
	Dist   float64
	Parent *core.Edge[N, E]
}

// Options configures a Run.
//
// VisitNode  – called when a popped node is not yet settled, in order of
//
//	distance. Returning true leaves the node unsettled and unexpanded, so a
//	later entry may offer it again.
//
// VisitEdge  – called with the edge that produced a popped entry, before the
//
//	node check. Returning true discards the entry.
//
// ExcludedNodes – nodes treated as already settled.
// ExcludedEdges – edge uids never relaxed. Updated in place when non-nil.
// Undirected    – relax along forward and reverse lists.
// Reversed      – relax along reverse lists only (ignored when Undirected).
type Options[N any, E any] struct {
	VisitNode     func(Item[N, E]) bool
	VisitEdge     func(*core.Edge[N, E]) bool
	ExcludedNodes []N
	ExcludedEdges map[string]struct{}
	Undirected    bool
	Reversed      bool
}

// Option mutates Options; ShortestPath accepts these.
type Option[N any, E any] func(*Options[N, E])

// WithUndirected relaxes edges in both directions.
func WithUndirected[N any, E any]() Option[N, E] {
	return func(o *Options[N, E]) { o.Undirected = true }
}

// WithReversed relaxes edges against their direction.
func WithReversed[N any, E any]() Option[N, E] {
	return func(o *Options[N, E]) { o.Reversed = true }
}

// WithExcludedEdges marks uids that must never be crossed.
func WithExcludedEdges[N any, E any](uids ...string) Option[N, E] {
	return func(o *Options[N, E]) {
		if o.ExcludedEdges == nil {
			o.ExcludedEdges = make(map[string]struct{}, len(uids))
		}
		for _, u := range uids {
			o.ExcludedEdges[u] = struct{}{}
		}
	}
}

// WithExcludedNodes marks nodes the search must not enter.
func WithExcludedNodes[N any, E any](nodes ...N) Option[N, E] {
	return func(o *Options[N, E]) { o.ExcludedNodes = append(o.ExcludedNodes, nodes...) }
}
