package dfs_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/hydronet/core"
	"github.com/katalvlaran/hydronet/dfs"
)

func uids[N any, E any](path []*core.Edge[N, E]) []string {
	out := make([]string, 0, len(path))
	for _, e := range path {
		out = append(out, e.UID)
	}

	return out
}

func TestAnyPath_Found(t *testing.T) {
	g := buildChain(5)
	path, found, err := dfs.AnyPath(g, "N0", []string{"N3"}, dfs.PathOptions[string, int]{})
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, []string{"e0", "e1", "e2"}, uids(path))
	for i := 1; i < len(path); i++ {
		assert.Equal(t, path[i-1].To, path[i].From, "path edges chain head to tail")
	}
}

func TestAnyPath_FromIsTarget(t *testing.T) {
	g := buildChain(3)
	path, found, err := dfs.AnyPath(g, "N1", []string{"N1"}, dfs.PathOptions[string, int]{})
	require.NoError(t, err)
	assert.True(t, found)
	assert.Empty(t, path)
}

func TestAnyPath_NotFound(t *testing.T) {
	g := buildChain(4)
	_, found, err := dfs.AnyPath(g, "N0", []string{"N3"}, dfs.PathOptions[string, int]{
		SeenEdges: map[string]struct{}{"e1": {}},
	})
	require.NoError(t, err)
	assert.False(t, found)
}

func TestAnyPath_FilterAndBacktrack(t *testing.T) {
	// A has two routes to D; the first one explored is filtered out midway.
	g := core.New[string, string](ident)
	g.AddEdge("A", "B", "ok", core.WithUID("ab"))
	g.AddEdge("B", "D", "blocked", core.WithUID("bd"))
	g.AddEdge("A", "C", "ok", core.WithUID("ac"))
	g.AddEdge("C", "D", "ok", core.WithUID("cd"))

	seen := map[string]struct{}{}
	path, found, err := dfs.AnyPath(g, "A", []string{"D"}, dfs.PathOptions[string, string]{
		SeenEdges:  seen,
		EdgeFilter: func(e *core.Edge[string, string]) bool { return e.Value != "blocked" },
	})
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, []string{"ac", "cd"}, uids(path))
	assert.Empty(t, seen, "caller set is copied")
}

func TestAnyPath_SeenNodes(t *testing.T) {
	g := buildSquare()
	_, found, err := dfs.AnyPath(g, "A", []string{"C"}, dfs.PathOptions[string, string]{
		SeenNodes: []string{"B", "D"},
		SeenEdges: map[string]struct{}{"ac": {}},
	})
	require.NoError(t, err)
	assert.False(t, found)
}

func TestAnyPath_MissingStart(t *testing.T) {
	g := buildChain(2)
	_, _, err := dfs.AnyPath(g, "ghost", []string{"N1"}, dfs.PathOptions[string, int]{})
	assert.ErrorIs(t, err, dfs.ErrStartNotFound)
}

func TestReversePath(t *testing.T) {
	g := buildChain(4)
	path, _, err := dfs.AnyPath(g, "N0", []string{"N3"}, dfs.PathOptions[string, int]{})
	require.NoError(t, err)

	rev := dfs.ReversePath(path)
	assert.Equal(t, []string{"e2", "e1", "e0"}, uids(rev))
	assert.Equal(t, "N3", rev[0].From)
	assert.Equal(t, "N0", rev[2].To)
	assert.True(t, rev[0].Reversed)
	assert.Equal(t, "N0", path[0].From, "input untouched")
}

func TestReachableAndComponents(t *testing.T) {
	g := buildChain(3)
	g.AddEdge("X", "Y", 9, core.WithUID("xy"))
	g.AddNode("Z")

	sub, err := dfs.Reachable(g, "N1")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"N0", "N1", "N2"}, sub.Nodes)
	assert.ElementsMatch(t, []string{"e0", "e1"}, uids(sub.Edges))

	comps := dfs.ConnectedComponents(g)
	require.Len(t, comps, 3)
	assert.Len(t, comps[0].Nodes, 3)
	assert.Equal(t, []string{"X", "Y"}, comps[1].Nodes)
	assert.Equal(t, []string{"Z"}, comps[2].Nodes)
	assert.Empty(t, comps[2].Edges)
}

func TestComponent_SkipsSeen(t *testing.T) {
	g := buildChain(3)
	seen := map[string]struct{}{"N0": {}}
	sub, err := dfs.Component(g, "N0", seen)
	require.NoError(t, err)
	assert.Empty(t, sub.Nodes)
}

func TestDagTraversal_PostOrder(t *testing.T) {
	// Two roots sharing the subtree under S.
	g := core.New[string, string](ident)
	g.AddDirectedEdge("R1", "S", "")
	g.AddDirectedEdge("R2", "S", "")
	g.AddDirectedEdge("S", "L1", "")
	g.AddDirectedEdge("S", "L2", "")

	order := dfs.DagTraversal(g, []string{"R1", "R2"})
	var nodes []string
	pos := map[string]int{}
	for i, tr := range order {
		nodes = append(nodes, tr.Node)
		pos[tr.Node] = i
	}
	assert.Len(t, nodes, 5, "each node exactly once")
	assert.Less(t, pos["L1"], pos["S"])
	assert.Less(t, pos["L2"], pos["S"])
	assert.Less(t, pos["S"], pos["R1"])
	assert.Nil(t, order[pos["R1"]].Parent)
	assert.Len(t, order[pos["S"]].Children, 2)
	assert.Nil(t, order[pos["R2"]].Parent)
}

func TestDagTraversal_ExcludesParentBackEdge(t *testing.T) {
	g := buildChain(3)
	order := dfs.DagTraversal(g, []string{"N0"})
	require.Len(t, order, 3)
	mid := order[1]
	assert.Equal(t, "N1", mid.Node)
	require.Len(t, mid.Children, 1)
	assert.Equal(t, "N2", mid.Children[0].To)
	assert.Equal(t, "e0", mid.Parent.UID)
}
