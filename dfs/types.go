package dfs

import (
	"errors"

	"github.com/katalvlaran/hydronet/core"
)

// ErrStartNotFound indicates that the start node does not exist in the graph.
var ErrStartNotFound = errors.New("dfs: start node not found")

// Options configures Walk. The zero value walks forward adjacency with
// fresh seen sets and no hooks.
type Options[N any, E any] struct {
	// VisitNode is called once per node on discovery. Returning true stops
	// expansion through the node; LeaveNode is still called.
	VisitNode func(n N) bool

	// LeaveNode is called after every edge of the node was handled.
	LeaveNode func(n N)

	// VisitEdge is called once per edge uid. Returning true prunes the edge.
	VisitEdge func(e *core.Edge[N, E]) bool

	// LeaveEdge is called after the subtree reached through e is finished,
	// and immediately for edges pruned by VisitEdge.
	LeaveEdge func(e *core.Edge[N, E])

	// SeenNodes, keyed by node key, is shared with the caller when non-nil.
	SeenNodes map[string]struct{}

	// SeenEdges, keyed by edge uid, is shared with the caller when non-nil.
	SeenEdges map[string]struct{}

	// Undirected follows forward and reverse adjacency.
	Undirected bool

	// Reversed follows reverse adjacency (ignored when Undirected).
	Reversed bool
}

// PathOptions configures AnyPath.
type PathOptions[N any, E any] struct {
	// SeenNodes are treated as already visited.
	SeenNodes []N

	// SeenEdges uids are never entered. The set is copied, not mutated.
	SeenEdges map[string]struct{}

	Undirected bool
	Reversed   bool

	// EdgeFilter, when non-nil, must return true for an edge to be used.
	EdgeFilter func(e *core.Edge[N, E]) bool
}

// Traversal is one DagTraversal entry: a node, the edge it was reached
// through (nil for roots) and its outgoing edges except the one leading
// straight back to the parent.
type Traversal[N any, E any] struct {
	Node     N
	Parent   *core.Edge[N, E]
	Children []*core.Edge[N, E]
}

// EdgeFilter decides whether an edge may be used by a path search.
type EdgeFilter[N any, E any] func(e *core.Edge[N, E]) bool

func uidSet(uids ...string) map[string]struct{} {
	out := make(map[string]struct{}, len(uids))
	for _, u := range uids {
		out[u] = struct{}{}
	}

	return out
}
