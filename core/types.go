package core

import (
	"errors"
	"sync"
)

// Sentinel errors for core graph operations.
var (
	// ErrNodeNotFound indicates an operation referenced a node that was never added.
	ErrNodeNotFound = errors.New("core: node not found")

	// ErrNilKeyFunc indicates New was called with a nil key function.
	ErrNilKeyFunc = errors.New("core: key function is nil")
)

// KeyFunc serializes a node into its identity key.
type KeyFunc[N any] func(N) string

// Edge is one directed copy of a graph edge.
//
// An undirected edge exists as two Edge values sharing UID. Reversed is set
// on the copy that runs against the orientation the edge was declared in.
type Edge[N any, E any] struct {
	// From is the node this copy leaves.
	From N

	// To is the node this copy enters.
	To N

	// Value is the caller payload.
	Value E

	// UID identifies the edge; both copies of an undirected edge share it.
	UID string

	// Directed is false for edges created by AddEdge.
	Directed bool

	// Reversed marks copies that run against the declared orientation.
	Reversed bool
}

// Flip returns the copy of e running in the opposite direction.
func (e *Edge[N, E]) Flip() *Edge[N, E] {
	return &Edge[N, E]{
		From:     e.To,
		To:       e.From,
		Value:    e.Value,
		UID:      e.UID,
		Directed: e.Directed,
		Reversed: !e.Reversed,
	}
}

// Subgraph is a loose bag of nodes and edges, as produced by traversals.
type Subgraph[N any, E any] struct {
	Nodes []N
	Edges []*Edge[N, E]
}

// EdgeOption configures a single AddDirectedEdge / AddEdge call.
type EdgeOption func(*edgeConfig)

type edgeConfig struct {
	uid      string
	directed bool
	reversed bool
}

// WithUID sets the uid of the new edge instead of generating one.
func WithUID(uid string) EdgeOption {
	return func(c *edgeConfig) { c.uid = uid }
}

// WithUndirected marks a directed copy as half of an undirected edge.
// AddEdge uses it for both copies; FromSubgraph uses it to rebuild
// undirected edges one copy at a time.
func WithUndirected() EdgeOption {
	return func(c *edgeConfig) { c.directed = false }
}

// withReversed flags the copy as running against its declared orientation.
func withReversed() EdgeOption {
	return func(c *edgeConfig) { c.reversed = true }
}

// Graph is a generic multigraph with forward and reverse adjacency.
//
// mu guards all maps. nodes maps key → node value; order keeps node keys in
// insertion order. edges maps uid → the first copy added under that uid.
type Graph[N any, E any] struct {
	mu sync.RWMutex

	key KeyFunc[N]

	nodes     map[string]N
	order     []string
	adj       map[string][]*Edge[N, E]
	rev       map[string][]*Edge[N, E]
	edges     map[string]*Edge[N, E]
	edgeOrder []string
}

// New creates an empty graph keyed by key. It panics with ErrNilKeyFunc if
// key is nil, since no operation could work without it.
// Complexity: O(1).
func New[N any, E any](key KeyFunc[N]) *Graph[N, E] {
	if key == nil {
		panic(ErrNilKeyFunc)
	}

	return &Graph[N, E]{
		key:   key,
		nodes: make(map[string]N),
		adj:   make(map[string][]*Edge[N, E]),
		rev:   make(map[string][]*Edge[N, E]),
		edges: make(map[string]*Edge[N, E]),
	}
}
