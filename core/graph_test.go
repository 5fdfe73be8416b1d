package core_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/hydronet/core"
)

// port is a composite node used across core tests: same Name through a
// different Via is a different node.
type port struct {
	Name string
	Via  string
}

func portKey(p port) string { return p.Via + " " + p.Name }

func newPortGraph() *core.Graph[port, string] {
	return core.New[port, string](portKey)
}

func TestNew_NilKeyPanics(t *testing.T) {
	assert.PanicsWithValue(t, core.ErrNilKeyFunc, func() {
		core.New[string, int](nil)
	})
}

func TestAddNode_Idempotent(t *testing.T) {
	g := newPortGraph()
	g.AddNode(port{"A", "p1"})
	g.AddNode(port{"A", "p1"})
	g.AddNode(port{"A", "p2"})

	assert.Equal(t, 2, g.NodeCount())
	assert.True(t, g.HasNode(port{"A", "p2"}))
	assert.False(t, g.HasNode(port{"B", "p1"}))
	assert.Equal(t, []port{{"A", "p1"}, {"A", "p2"}}, g.Nodes())
}

func TestAddDirectedEdge_ForwardAndReverse(t *testing.T) {
	g := newPortGraph()
	a, b := port{"A", "x"}, port{"B", "x"}
	e := g.AddDirectedEdge(a, b, "pipe", core.WithUID("e1"))

	assert.Equal(t, "e1", e.UID)
	assert.True(t, e.Directed)
	assert.False(t, e.Reversed)

	out, err := g.Outgoing(a)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, b, out[0].To)

	in, err := g.Incoming(b)
	require.NoError(t, err)
	require.Len(t, in, 1)
	assert.Equal(t, b, in[0].From, "reverse copies leave the node they are stored at")
	assert.Equal(t, a, in[0].To)
	assert.True(t, in[0].Reversed)

	none, err := g.Outgoing(b)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestAddEdge_SharesUID(t *testing.T) {
	g := newPortGraph()
	a, b := port{"A", "x"}, port{"B", "x"}
	uid := g.AddEdge(a, b, "pipe")

	assert.NotEmpty(t, uid)
	assert.Equal(t, 1, g.EdgeCount())

	fromA, _ := g.Outgoing(a)
	fromB, _ := g.Outgoing(b)
	require.Len(t, fromA, 1)
	require.Len(t, fromB, 1)
	assert.Equal(t, uid, fromA[0].UID)
	assert.Equal(t, uid, fromB[0].UID)
	assert.False(t, fromA[0].Directed)
	assert.False(t, fromA[0].Reversed)
	assert.True(t, fromB[0].Reversed)

	both, err := g.Neighbors(a, true, false)
	require.NoError(t, err)
	assert.Len(t, both, 2, "forward copy plus the flipped b→a copy")
	for _, e := range both {
		assert.Equal(t, a, e.From)
	}
}

func TestNeighbors_MissingNode(t *testing.T) {
	g := newPortGraph()
	_, err := g.Neighbors(port{"ghost", ""}, false, false)
	assert.True(t, errors.Is(err, core.ErrNodeNotFound))
	_, err = g.Neighbors(port{"ghost", ""}, true, false)
	assert.True(t, errors.Is(err, core.ErrNodeNotFound))
	_, err = g.Incoming(port{"ghost", ""})
	assert.True(t, errors.Is(err, core.ErrNodeNotFound))
}

func TestEdges_InsertionOrder(t *testing.T) {
	g := core.New[string, int](func(s string) string { return s })
	g.AddEdge("A", "B", 1, core.WithUID("u1"))
	g.AddDirectedEdge("B", "C", 2, core.WithUID("u2"))
	g.AddEdge("C", "A", 3, core.WithUID("u3"))

	var uids []string
	for _, e := range g.Edges() {
		uids = append(uids, e.UID)
	}
	assert.Equal(t, []string{"u1", "u2", "u3"}, uids)

	e, ok := g.Edge("u2")
	require.True(t, ok)
	assert.Equal(t, 2, e.Value)
	_, ok = g.Edge("nope")
	assert.False(t, ok)
}

func TestFlip(t *testing.T) {
	e := &core.Edge[string, int]{From: "A", To: "B", UID: "u", Value: 7}
	f := e.Flip()
	assert.Equal(t, "B", f.From)
	assert.Equal(t, "A", f.To)
	assert.True(t, f.Reversed)
	assert.Equal(t, e.UID, f.UID)
	assert.False(t, f.Flip().Reversed)
}

func TestFromSubgraph(t *testing.T) {
	g := core.New[string, string](func(s string) string { return s })
	g.AddEdge("A", "B", "ab", core.WithUID("ab"))
	g.AddDirectedEdge("B", "C", "bc", core.WithUID("bc"))

	in, err := g.Incoming("C")
	require.NoError(t, err)
	sub := core.Subgraph[string, string]{
		Nodes: []string{"A", "B", "C", "D"},
		Edges: append(g.Edges()[:1:1], in[0]),
	}
	h := core.FromSubgraph(sub, g.KeyFunc())

	assert.Equal(t, 4, h.NodeCount())
	assert.Equal(t, 2, h.EdgeCount())

	fromB, err := h.Outgoing("B")
	require.NoError(t, err)
	var targets []string
	for _, e := range fromB {
		targets = append(targets, e.To)
	}
	assert.ElementsMatch(t, []string{"A", "C"}, targets, "undirected rebuilt both ways, directed restored")

	fromC, err := h.Outgoing("C")
	require.NoError(t, err)
	assert.Empty(t, fromC)
}

func TestKeySet(t *testing.T) {
	g := newPortGraph()
	set := g.KeySet(port{"A", "1"}, port{"B", "2"})
	assert.Contains(t, set, "1 A")
	assert.Contains(t, set, "2 B")
	assert.Len(t, set, 2)
}
