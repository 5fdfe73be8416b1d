package dfs

import (
	"fmt"

	"github.com/katalvlaran/hydronet/core"
)

// AnyPath returns the first path found from `from` to any node of targets.
//
// The path is the sequence of edges walked, each leaving the node the
// previous one entered. found is false when no target is reachable; an
// empty path with found == true means from is itself a target.
//
// Implementation:
//   - Stage 1: push each visited edge onto a stack in VisitEdge, pop it in
//     LeaveEdge. Pruned edges are pushed too, so the pop stays balanced.
//   - Stage 2: on reaching a target, snapshot the stack and prune everything
//     that follows.
func AnyPath[N any, E any](
	g *core.Graph[N, E],
	from N,
	targets []N,
	opts PathOptions[N, E],
) ([]*core.Edge[N, E], bool, error) {
	targetKeys := g.KeySet(targets...)
	seenNodes := g.KeySet(opts.SeenNodes...)
	seenEdges := make(map[string]struct{}, len(opts.SeenEdges))
	for uid := range opts.SeenEdges {
		seenEdges[uid] = struct{}{}
	}

	var (
		stack  []*core.Edge[N, E]
		result []*core.Edge[N, E]
		found  bool
	)

	err := Walk(g, from, Options[N, E]{
		VisitNode: func(n N) bool {
			if _, ok := targetKeys[g.Key(n)]; ok && !found {
				found = true
				result = append(make([]*core.Edge[N, E], 0, len(stack)), stack...)
			}

			return found
		},
		VisitEdge: func(e *core.Edge[N, E]) bool {
			stack = append(stack, e)
			if found {
				return true
			}
			if opts.EdgeFilter != nil && !opts.EdgeFilter(e) {
				return true
			}

			return false
		},
		LeaveEdge: func(*core.Edge[N, E]) {
			stack = stack[:len(stack)-1]
		},
		SeenNodes:  seenNodes,
		SeenEdges:  seenEdges,
		Undirected: opts.Undirected,
		Reversed:   opts.Reversed,
	})
	if err != nil {
		return nil, false, err
	}

	return result, found, nil
}

// ReversePath returns path walked backwards, every edge flipped.
// The input is left untouched.
func ReversePath[N any, E any](path []*core.Edge[N, E]) []*core.Edge[N, E] {
	out := make([]*core.Edge[N, E], len(path))
	for i, e := range path {
		out[len(path)-1-i] = e.Flip()
	}

	return out
}

// Component collects the nodes and edges reachable from n along forward
// adjacency, skipping anything already in seen. seen is updated in place.
// A nil seen starts fresh.
func Component[N any, E any](g *core.Graph[N, E], n N, seen map[string]struct{}) (core.Subgraph[N, E], error) {
	var sub core.Subgraph[N, E]
	if seen == nil {
		seen = make(map[string]struct{})
	}
	if _, ok := seen[g.Key(n)]; ok {
		return sub, nil
	}

	err := Walk(g, n, Options[N, E]{
		VisitNode: func(v N) bool {
			sub.Nodes = append(sub.Nodes, v)

			return false
		},
		VisitEdge: func(e *core.Edge[N, E]) bool {
			sub.Edges = append(sub.Edges, e)

			return false
		},
		SeenNodes: seen,
	})

	return sub, err
}

// Reachable is Component with a fresh visited set.
func Reachable[N any, E any](g *core.Graph[N, E], root N) (core.Subgraph[N, E], error) {
	return Component(g, root, nil)
}

// ConnectedComponents partitions g by repeated forward walks in node
// insertion order. Each node lands in exactly one component; with directed
// edges the split depends on which roots come first.
func ConnectedComponents[N any, E any](g *core.Graph[N, E]) []core.Subgraph[N, E] {
	var comps []core.Subgraph[N, E]
	seen := make(map[string]struct{})
	for _, n := range g.Nodes() {
		if _, ok := seen[g.Key(n)]; ok {
			continue
		}
		sub, err := Component(g, n, seen)
		if err != nil {
			// n came from g itself.
			panic(err)
		}
		comps = append(comps, sub)
	}

	return comps
}

// DagTraversal returns a post-order of the forest below roots: every node
// appears after all of its children, and exactly once even when roots
// share descendants. Suitable for dynamic programming over trees.
func DagTraversal[N any, E any](g *core.Graph[N, E], roots []N) []Traversal[N, E] {
	var out []Traversal[N, E]
	seen := make(map[string]struct{})
	for _, r := range roots {
		dagVisit(g, r, nil, seen, &out)
	}

	return out
}

func dagVisit[N any, E any](
	g *core.Graph[N, E],
	curr N,
	parent *core.Edge[N, E],
	seen map[string]struct{},
	out *[]Traversal[N, E],
) {
	ck := g.Key(curr)
	if _, ok := seen[ck]; ok {
		return
	}
	seen[ck] = struct{}{}

	nbs, err := g.Outgoing(curr)
	if err != nil {
		panic(fmt.Errorf("dfs: dag traversal: %w", err))
	}

	t := Traversal[N, E]{Node: curr, Parent: parent}
	for _, next := range nbs {
		if parent == nil || g.Key(parent.From) != g.Key(next.To) {
			t.Children = append(t.Children, next)
		}
		if _, ok := seen[g.Key(next.To)]; !ok {
			dagVisit(g, next.To, next, seen, out)
		}
	}

	*out = append(*out, t)
}
