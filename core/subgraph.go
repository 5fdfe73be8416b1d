package core

// FromSubgraph builds a new graph over the nodes and edges of sub.
//
// Undirected edges are rebuilt with both copies the first time their uid is
// met; the captured copy becomes the declared orientation. Directed edges
// are re-added in their declared orientation, so a flipped copy taken from
// a reverse adjacency list is turned back around.
// Complexity: O(V + E).
func FromSubgraph[N any, E any](sub Subgraph[N, E], key KeyFunc[N]) *Graph[N, E] {
	g := New[N, E](key)
	for _, n := range sub.Nodes {
		g.AddNode(n)
	}
	seen := make(map[string]struct{}, len(sub.Edges))
	for _, e := range sub.Edges {
		if _, dup := seen[e.UID]; dup {
			continue
		}
		seen[e.UID] = struct{}{}

		switch {
		case !e.Directed:
			g.AddEdge(e.From, e.To, e.Value, WithUID(e.UID))
		case e.Reversed:
			g.AddDirectedEdge(e.To, e.From, e.Value, WithUID(e.UID))
		default:
			g.AddDirectedEdge(e.From, e.To, e.Value, WithUID(e.UID))
		}
	}

	return g
}

// KeySet collects the keys of nodes into a set.
func (g *Graph[N, E]) KeySet(nodes ...N) map[string]struct{} {
	out := make(map[string]struct{}, len(nodes))
	for _, n := range nodes {
		out[g.key(n)] = struct{}{}
	}

	return out
}
