// Package dijkstra implements a hook-driven Dijkstra search over core.Graph.
//
// Unlike a textbook single-source shortest path, relaxation is per edge uid:
// every edge is pushed onto the priority queue at most once, the first time
// one of its endpoints is settled. Nodes are settled the first time they are
// popped. This mirrors how the network solver uses the search: to carry a
// quantity (distance, pressure) outward from a source along the cheapest
// route, with hooks deciding where to stop.
//
// Determinism:
//
//   - Entries with equal distance pop in push order (a sequence counter
//     breaks ties), so results only depend on graph insertion order.
//
// Complexity:
//
//   - Time:  O((V + E) log E); every edge is pushed at most once.
//   - Space: O(V + E).
//
// Errors (sentinel):
//
//   - ErrNilGraph, ErrNilWeight, ErrStartNotFound.
//
// Example:
//
//	path, dist, found, err := dijkstra.ShortestPath(g, src, []N{dst}, weight)
package dijkstra
