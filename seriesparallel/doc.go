// Package seriesparallel recognises two-terminal series-parallel graphs and
// rebuilds them as a decomposition tree.
//
// What:
//
//   - Decompose reduces an undirected multigraph between a source and a
//     sink by two moves: series (contract a node of degree 2 that is not a
//     terminal) and parallel (drop one of several coincident edges). The
//     graph is series-parallel when exactly one source–sink edge is left.
//   - Replaying the reductions backwards gives every edge an origin (the
//     endpoint flow enters from when it runs source to sink) and builds a
//     tree of ParallelNode / SeriesNode / LeafNode.
//
// Determinism:
//
//   - Work queues are LIFO and series moves are preferred. The tree shape
//     depends on edge insertion order; aggregates over the tree do not.
//
// Complexity:
//
//   - Time:  O(V·d + E) where d is the largest degree (list splices).
//   - Space: O(V + E).
package seriesparallel
