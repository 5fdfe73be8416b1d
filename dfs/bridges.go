package dfs

import (
	"fmt"

	"github.com/katalvlaran/hydronet/core"
)

// bridgeFinder holds Tarjan discovery/low-link state.
type bridgeFinder[N any, E any] struct {
	g       *core.Graph[N, E]
	tick    int
	disc    map[string]int
	low     map[string]int
	bridges []*core.Edge[N, E]
}

// Bridges returns the edges whose removal disconnects their endpoints,
// treating every edge as undirected. The edge back to the DFS parent is
// skipped by uid rather than by node, so a pair of parallel edges is never
// reported as a bridge.
// Complexity: O(V + E).
func Bridges[N any, E any](g *core.Graph[N, E]) []*core.Edge[N, E] {
	bf := &bridgeFinder[N, E]{
		g:    g,
		disc: make(map[string]int),
		low:  make(map[string]int),
	}
	for _, n := range g.Nodes() {
		if _, ok := bf.disc[g.Key(n)]; !ok {
			bf.visit(n, "")
		}
	}

	return bf.bridges
}

func (bf *bridgeFinder[N, E]) visit(u N, parentUID string) {
	uk := bf.g.Key(u)
	bf.tick++
	bf.disc[uk] = bf.tick
	bf.low[uk] = bf.tick

	nbs, err := bf.g.Neighbors(u, true, false)
	if err != nil {
		panic(fmt.Errorf("dfs: bridges: %w", err))
	}
	for _, e := range nbs {
		if e.UID == parentUID {
			continue
		}
		vk := bf.g.Key(e.To)
		if _, seen := bf.disc[vk]; !seen {
			bf.visit(e.To, e.UID)
			bf.low[uk] = min(bf.low[uk], bf.low[vk])
			if bf.low[vk] > bf.disc[uk] {
				bf.bridges = append(bf.bridges, e)
			}
		} else {
			bf.low[uk] = min(bf.low[uk], bf.disc[vk])
		}
	}
}

// BridgeSeparatedComponents removes the bridges of g and returns them with
// the pieces left behind. Each bridge also forms its own two-node
// component. Non-bridge components are found by undirected walks, in edge
// insertion order.
func BridgeSeparatedComponents[N any, E any](g *core.Graph[N, E]) ([]*core.Edge[N, E], []core.Subgraph[N, E]) {
	bridges := Bridges(g)

	visited := make(map[string]struct{})
	visitedEdges := make(map[string]struct{})
	isBridge := make(map[string]struct{}, len(bridges))
	for _, b := range bridges {
		visitedEdges[b.UID] = struct{}{}
		isBridge[b.UID] = struct{}{}
	}

	var comps []core.Subgraph[N, E]
	for _, e := range g.Edges() {
		_, bridge := isBridge[e.UID]
		_, done := visitedEdges[e.UID]
		if done && !bridge {
			continue
		}

		var comp core.Subgraph[N, E]
		if bridge {
			comp.Nodes = []N{e.From, e.To}
			comp.Edges = []*core.Edge[N, E]{e}
		} else {
			err := Walk(g, e.To, Options[N, E]{
				VisitNode: func(n N) bool {
					comp.Nodes = append(comp.Nodes, n)

					return false
				},
				VisitEdge: func(x *core.Edge[N, E]) bool {
					comp.Edges = append(comp.Edges, x)

					return false
				},
				SeenNodes:  visited,
				SeenEdges:  visitedEdges,
				Undirected: true,
			})
			if err != nil {
				panic(err)
			}
			if len(comp.Edges) == 0 {
				continue
			}
		}
		comps = append(comps, comp)
	}

	return bridges, comps
}
