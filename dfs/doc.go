// Package dfs implements depth-first traversal of core.Graph and the
// derived queries the flow solvers rely on.
//
// Key features:
//   - Walk(g, start, opts): hook-driven traversal with VisitNode, LeaveNode,
//     VisitEdge and LeaveEdge. Every edge uid reaches VisitEdge at most once.
//     Returning true from VisitNode or VisitEdge prunes expansion through
//     that node or edge; LeaveEdge still fires for a pruned edge.
//   - AnyPath / ReversePath: first path found to any target, and its flip.
//   - Reachable / Component / ConnectedComponents: subgraph collection.
//   - DagTraversal: post-order over a forest, for dynamic programming.
//   - EdgeCycleCover / CycleCovering: cycles covering edges (ring mains).
//   - SourceArcCover: paths joining two distinct sources through an edge.
//   - Bridges / BridgeSeparatedComponents: Tarjan bridges and the
//     2-edge-connected pieces left once they are removed.
//
// Direction modes:
//
//	Undirected=false, Reversed=false  follow forward adjacency.
//	Undirected=false, Reversed=true   follow reverse adjacency.
//	Undirected=true                   follow both lists.
//
// Walk is iterative: it keeps an explicit stack of frames, each holding the
// node, its edge list, the next index and the edge it descended through,
// so LeaveEdge fires only after the subtree below that edge is finished.
//
// Complexity:
//
//   - Walk: O(V + E) plus hook cost.
//   - AnyPath: O(V + E).
//   - EdgeCycleCover, SourceArcCover: O(E·(V + E)) worst case.
//   - Bridges: O(V + E).
//
// Errors:
//
//   - ErrStartNotFound if the start node is not in the graph.
//   - A node present in an edge but missing from the adjacency index is a
//     broken graph; traversal panics with core.ErrNodeNotFound wrapped.
package dfs
