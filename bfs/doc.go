// Package bfs provides breadth-first search over a core.Graph, returning
// hop distances, parent edges and visit order.
//
// What
//
//   - Explore nodes in non-decreasing distance (edge count) from one or
//     more start nodes.
//   - Result holds Order (visit sequence), Depth (node key → hops from
//     the nearest start) and Parent (node key → edge it was reached by).
//   - OnVisit may abort the search with an error.
//   - WithFilterEdge skips individual edges; WithMaxDepth bounds the search.
//   - Follows forward adjacency by default; WithUndirected and
//     WithReversed change that.
//
// Determinism
//
//	Start nodes are enqueued in the order given and neighbors in the
//	graph's adjacency order, so the visit sequence is reproducible.
//
// Complexity (V = |Nodes|, E = |Edges|)
//
//   - Time:   O(V + E)
//   - Memory: O(V)
//
// Usage
//
//	res, err := bfs.BFS(g, []network.FlowNode{network.RootNode},
//	    bfs.WithContext[network.FlowNode, network.FlowEdge](ctx),
//	)
//
// Errors
//
//   - ErrGraphNil         if the graph pointer is nil.
//   - ErrStartNotFound    if a start node does not exist.
//   - ErrOptionViolation  if an Option is invalid (e.g. negative MaxDepth).
//   - the context's error on cancellation, or a wrapped OnVisit error.
package bfs
