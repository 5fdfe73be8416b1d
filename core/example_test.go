package core_test

import (
	"fmt"

	"github.com/katalvlaran/hydronet/core"
)

// ExampleGraph builds a small network where a fitting is reached through
// two different pipes, so it appears as two distinct nodes.
func ExampleGraph() {
	type node struct{ Connectable, Connection string }
	g := core.New[node, string](func(n node) string { return n.Connection + " " + n.Connectable })

	// 1) Two pipes meeting at fitting F.
	g.AddEdge(node{"S", "p1"}, node{"F", "p1"}, "PIPE", core.WithUID("p1"))
	g.AddEdge(node{"F", "p2"}, node{"T", "p2"}, "PIPE", core.WithUID("p2"))

	// 2) The fitting joins its two ports.
	g.AddEdge(node{"F", "p1"}, node{"F", "p2"}, "FITTING_FLOW", core.WithUID("f"))

	fmt.Println("nodes:", g.NodeCount())
	fmt.Println("edges:", g.EdgeCount())
	out, _ := g.Outgoing(node{"F", "p1"})
	for _, e := range out {
		fmt.Printf("%s -> %s (%s)\n", g.Key(e.From), g.Key(e.To), e.Value)
	}

	// Output:
	// nodes: 4
	// edges: 3
	// p1 F -> p1 S (PIPE)
	// p1 F -> p2 F (FITTING_FLOW)
}
