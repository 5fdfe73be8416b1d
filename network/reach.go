package network

import (
	"context"
	"sort"

	"github.com/katalvlaran/hydronet/bfs"
)

// Unreached lists, in uid order, the connectables that no flow source can
// feed: no node of theirs lies downstream of the root once check valves,
// regulators and plants are only crossed forwards.
func Unreached(ctx context.Context, s Store, g *FlowGraph) ([]string, error) {
	res, err := bfs.BFS(g, []FlowNode{RootNode}, bfs.WithContext[FlowNode, FlowEdge](ctx))
	if err != nil {
		return nil, err
	}

	reached := make(map[string]struct{})
	present := make(map[string]struct{})
	for _, n := range g.Nodes() {
		present[n.Connectable] = struct{}{}
		if res.Reached(n.Key()) {
			reached[n.Connectable] = struct{}{}
		}
	}

	var out []string
	for _, e := range s.Entities() {
		if e.Kind() == KindPipe {
			continue
		}
		uid := e.UID()
		if _, ok := present[uid]; !ok {
			continue
		}
		if _, ok := reached[uid]; !ok {
			out = append(out, uid)
		}
	}
	sort.Strings(out)

	return out, nil
}
