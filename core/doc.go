// Package core provides Graph[N, E], the generic multigraph every hydronet
// solver is built on.
//
// What:
//
//	Nodes are arbitrary values identified by a caller-supplied key function.
//	Two nodes with the same key are the same node; the key must be
//	injective and stable for the lifetime of the graph. Edges carry a
//	payload E and a uid. An undirected edge is stored as two directed
//	edges that share one uid, the second one flagged Reversed.
//
//	Every node owns a forward adjacency list (edges leaving it) and a
//	reverse adjacency list (copies of the edges entering it, flipped so
//	that From is the node itself). Traversals pick forward, reverse or
//	both lists depending on the direction mode they run in.
//
// Why:
//
//   - Flow networks need "which port did I arrive through" in the node
//     identity, so nodes are composite values rather than plain strings.
//   - Visited bookkeeping works on edge uids, so an undirected pipe is
//     entered at most once regardless of the direction it is approached.
//
// Determinism:
//
//	Nodes() and Edges() return insertion order. Adjacency lists keep the
//	order in which edges were added.
//
// Complexity:
//
//	AddNode, AddDirectedEdge, AddEdge: O(1) amortized.
//	Nodes, Edges: O(V) / O(E) copies.
//
// Errors:
//
//	ErrNodeNotFound  - a lookup referenced a node absent from the graph.
//	ErrNilKeyFunc    - New was called without a key function.
//
// Concurrency:
//
//	Mutations and reads are guarded by a sync.RWMutex, but adjacency
//	slices returned by Outgoing/Incoming/Neighbors are shared and must be
//	treated as read-only.
package core
