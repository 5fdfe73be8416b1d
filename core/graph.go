package core

import (
	"fmt"

	"github.com/google/uuid"
)

// Key returns the identity key of n.
func (g *Graph[N, E]) Key(n N) string { return g.key(n) }

// KeyFunc returns the key function the graph was built with.
func (g *Graph[N, E]) KeyFunc() KeyFunc[N] { return g.key }

// AddNode inserts n if no node with the same key exists. Re-adding is a no-op.
// Complexity: O(1) amortized.
func (g *Graph[N, E]) AddNode(n N) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.addNodeLocked(n)
}

func (g *Graph[N, E]) addNodeLocked(n N) string {
	k := g.key(n)
	if _, ok := g.nodes[k]; !ok {
		g.nodes[k] = n
		g.order = append(g.order, k)
		g.adj[k] = nil
		g.rev[k] = nil
	}

	return k
}

// AddDirectedEdge adds the edge from→to, creating both endpoints on demand,
// and returns the forward copy. The uid is generated unless WithUID is given.
//
// Steps:
//  1. Resolve options (uid, directedness, reversed flag).
//  2. Ensure endpoints exist.
//  3. Append the forward copy to adj[from] and its flip to rev[to].
//  4. Register the uid the first time it is seen.
//
// Complexity: O(1) amortized.
func (g *Graph[N, E]) AddDirectedEdge(from, to N, value E, opts ...EdgeOption) *Edge[N, E] {
	// 1) Options
	cfg := edgeConfig{directed: true}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.uid == "" {
		cfg.uid = uuid.NewString()
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	// 2) Endpoints
	fk := g.addNodeLocked(from)
	tk := g.addNodeLocked(to)

	// 3) Forward copy and its mirror in the reverse list
	forward := &Edge[N, E]{
		From:     from,
		To:       to,
		Value:    value,
		UID:      cfg.uid,
		Directed: cfg.directed,
		Reversed: cfg.reversed,
	}
	backward := forward.Flip()
	if cfg.directed {
		backward.Reversed = true
	}
	g.adj[fk] = append(g.adj[fk], forward)
	g.rev[tk] = append(g.rev[tk], backward)

	// 4) Edge catalog
	if _, ok := g.edges[cfg.uid]; !ok {
		g.edges[cfg.uid] = forward
		g.edgeOrder = append(g.edgeOrder, cfg.uid)
	}

	return forward
}

// AddEdge adds an undirected edge between a and b: two directed copies
// sharing one uid, the b→a copy flagged Reversed. It returns the uid.
// Complexity: O(1) amortized.
func (g *Graph[N, E]) AddEdge(a, b N, value E, opts ...EdgeOption) string {
	cfg := edgeConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	uid := cfg.uid
	if uid == "" {
		uid = uuid.NewString()
	}
	g.AddDirectedEdge(a, b, value, WithUID(uid), WithUndirected())
	g.AddDirectedEdge(b, a, value, WithUID(uid), WithUndirected(), withReversed())

	return uid
}

// HasNode reports whether a node with n's key exists.
func (g *Graph[N, E]) HasNode(n N) bool {
	return g.HasKey(g.key(n))
}

// HasKey reports whether a node with key k exists.
func (g *Graph[N, E]) HasKey(k string) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	_, ok := g.nodes[k]

	return ok
}

// Node returns the node stored under key k.
func (g *Graph[N, E]) Node(k string) (N, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	n, ok := g.nodes[k]

	return n, ok
}

// Nodes returns all nodes in insertion order.
// Complexity: O(V).
func (g *Graph[N, E]) Nodes() []N {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]N, 0, len(g.order))
	for _, k := range g.order {
		out = append(out, g.nodes[k])
	}

	return out
}

// NodeCount returns the number of nodes.
func (g *Graph[N, E]) NodeCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return len(g.order)
}

// Edges returns one copy per edge uid (the first one added), in insertion order.
// Complexity: O(E).
func (g *Graph[N, E]) Edges() []*Edge[N, E] {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]*Edge[N, E], 0, len(g.edgeOrder))
	for _, uid := range g.edgeOrder {
		out = append(out, g.edges[uid])
	}

	return out
}

// EdgeCount returns the number of distinct edge uids.
func (g *Graph[N, E]) EdgeCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return len(g.edgeOrder)
}

// Edge returns the catalog copy of the edge with the given uid.
func (g *Graph[N, E]) Edge(uid string) (*Edge[N, E], bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	e, ok := g.edges[uid]

	return e, ok
}

// Outgoing returns the forward adjacency of n.
func (g *Graph[N, E]) Outgoing(n N) ([]*Edge[N, E], error) {
	return g.list(g.adj, g.key(n))
}

// Incoming returns the reverse adjacency of n: flipped copies of the edges
// that enter n, so every returned edge has From == n.
func (g *Graph[N, E]) Incoming(n N) ([]*Edge[N, E], error) {
	return g.list(g.rev, g.key(n))
}

// Neighbors returns the edge list a traversal sees at n.
// undirected uses both lists; otherwise reversed selects reverse over forward.
func (g *Graph[N, E]) Neighbors(n N, undirected, reversed bool) ([]*Edge[N, E], error) {
	k := g.key(n)
	if !undirected {
		if reversed {
			return g.list(g.rev, k)
		}

		return g.list(g.adj, k)
	}

	g.mu.RLock()
	defer g.mu.RUnlock()
	fwd, ok := g.adj[k]
	if !ok {
		return nil, fmt.Errorf("core: neighbors of %q: %w", k, ErrNodeNotFound)
	}
	bwd := g.rev[k]
	out := make([]*Edge[N, E], 0, len(fwd)+len(bwd))
	out = append(out, fwd...)

	return append(out, bwd...), nil
}

func (g *Graph[N, E]) list(m map[string][]*Edge[N, E], k string) ([]*Edge[N, E], error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	l, ok := m[k]
	if !ok {
		return nil, fmt.Errorf("core: adjacency of %q: %w", k, ErrNodeNotFound)
	}

	return l, nil
}
