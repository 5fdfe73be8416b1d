package dfs

import (
	"fmt"

	"github.com/katalvlaran/hydronet/core"
)

// EdgeCycleCover walks every forward edge of g and, for each one not yet
// covered, looks for a path from its head back to its tail that avoids it.
// Each path found, closed by the edge itself, is one returned cycle.
// Edges on no cycle are simply not covered.
func EdgeCycleCover[N any, E any](g *core.Graph[N, E], undirected bool) [][]*core.Edge[N, E] {
	var cycles [][]*core.Edge[N, E]
	seen := make(map[string]struct{})
	for _, n := range g.Nodes() {
		out, err := g.Outgoing(n)
		if err != nil {
			panic(fmt.Errorf("dfs: cycle cover: %w", err))
		}
		for _, e := range out {
			if c, ok := CycleCovering(g, seen, e, undirected, nil); ok {
				cycles = append(cycles, c)
			}
		}
	}

	return cycles
}

// CycleCovering finds one cycle through e using only edges accepted by
// filter (nil accepts all), skipping e if seen already holds it. The cycle
// starts at e.To and ends with e. Every edge of a found cycle is added to
// seen.
func CycleCovering[N any, E any](
	g *core.Graph[N, E],
	seen map[string]struct{},
	e *core.Edge[N, E],
	undirected bool,
	filter EdgeFilter[N, E],
) ([]*core.Edge[N, E], bool) {
	if _, ok := seen[e.UID]; ok {
		return nil, false
	}

	path, found, err := AnyPath(g, e.To, []N{e.From}, PathOptions[N, E]{
		SeenEdges:  uidSet(e.UID),
		Undirected: undirected,
		EdgeFilter: filter,
	})
	if err != nil {
		panic(fmt.Errorf("dfs: cycle covering: %w", err))
	}
	if !found {
		return nil, false
	}

	cycle := append(path, e)
	for _, c := range cycle {
		seen[c.UID] = struct{}{}
	}

	return cycle, true
}

// SourceArcCover finds, for every edge not in accountedFor, a path joining
// two distinct sources through that edge: the first source reached from
// its tail, walked backwards, then the edge, then the path from its head to
// the second source. Paths are searched ignoring direction.
//
// Edges already placed on an earlier arc are skipped. Edges that cannot
// reach a source on both sides, or only reach the same source, are
// returned in notAccountedFor by uid.
func SourceArcCover[N any, E any](
	g *core.Graph[N, E],
	sources []N,
	accountedFor map[string]struct{},
) (arcs [][]*core.Edge[N, E], notAccountedFor []string) {
	done := make(map[string]struct{})

	for _, e := range g.Edges() {
		if _, ok := accountedFor[e.UID]; ok {
			continue
		}
		if _, ok := done[e.UID]; ok {
			continue
		}

		opts := PathOptions[N, E]{SeenEdges: uidSet(e.UID), Undirected: true}
		tail, ok1, err := AnyPath(g, e.From, sources, opts)
		if err != nil {
			panic(fmt.Errorf("dfs: source arc cover: %w", err))
		}
		if !ok1 {
			notAccountedFor = append(notAccountedFor, e.UID)

			continue
		}
		head, ok2, err := AnyPath(g, e.To, sources, opts)
		if err != nil {
			panic(fmt.Errorf("dfs: source arc cover: %w", err))
		}
		if !ok2 || g.Key(pathEnd(tail, e.From)) == g.Key(pathEnd(head, e.To)) {
			notAccountedFor = append(notAccountedFor, e.UID)

			continue
		}

		arc := append(ReversePath(tail), e)
		arc = append(arc, head...)
		for _, a := range arc {
			done[a.UID] = struct{}{}
		}
		arcs = append(arcs, arc)
	}

	return arcs, notAccountedFor
}

// pathEnd is the node a path finishes on, or start for an empty path.
func pathEnd[N any, E any](path []*core.Edge[N, E], start N) N {
	if len(path) == 0 {
		return start
	}

	return path[len(path)-1].To
}
