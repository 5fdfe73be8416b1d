package bfs_test

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/hydronet/bfs"
	"github.com/katalvlaran/hydronet/core"
)

func ident(s string) string { return s }

func from(starts ...string) []string { return starts }

// cycle is the undirected square A–B–C–D–A.
func cycle() *core.Graph[string, string] {
	g := core.New[string, string](ident)
	g.AddEdge("A", "B", "ab", core.WithUID("ab"))
	g.AddEdge("B", "C", "bc", core.WithUID("bc"))
	g.AddEdge("C", "D", "cd", core.WithUID("cd"))
	g.AddEdge("D", "A", "da", core.WithUID("da"))

	return g
}

func TestBFS_Errors(t *testing.T) {
	_, err := bfs.BFS[string, string](nil, from("A"))
	assert.ErrorIs(t, err, bfs.ErrGraphNil)

	g := core.New[string, string](ident)
	_, err = bfs.BFS(g, from("missing"))
	assert.ErrorIs(t, err, bfs.ErrStartNotFound)

	g.AddNode("A")
	_, err = bfs.BFS(g, from("A"), bfs.WithMaxDepth[string, string](-1))
	assert.ErrorIs(t, err, bfs.ErrOptionViolation)
}

func TestBFS_CycleDepths(t *testing.T) {
	res, err := bfs.BFS(cycle(), from("A"))
	require.NoError(t, err)

	assert.Equal(t, "A", res.Order[0])
	assert.ElementsMatch(t, []string{"B", "D"}, res.Order[1:3])
	assert.Equal(t, "C", res.Order[3])
	assert.Equal(t, map[string]int{"A": 0, "B": 1, "D": 1, "C": 2}, res.Depth)
}

func TestBFS_Directed(t *testing.T) {
	g := core.New[string, string](ident)
	g.AddDirectedEdge("A", "B", "ab")
	g.AddDirectedEdge("C", "B", "cb")

	res, err := bfs.BFS(g, from("A"))
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, res.Order)

	res, err = bfs.BFS(g, from("B"), bfs.WithReversed[string, string]())
	require.NoError(t, err)
	assert.Equal(t, []string{"B", "A", "C"}, res.Order)

	res, err = bfs.BFS(g, from("A"), bfs.WithUndirected[string, string]())
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "C"}, res.Order)
}

func TestBFS_MultipleStarts(t *testing.T) {
	g := core.New[string, string](ident)
	for i := 0; i < 6; i++ {
		g.AddEdge("v"+strconv.Itoa(i), "v"+strconv.Itoa(i+1), "")
	}

	res, err := bfs.BFS(g, from("v0", "v6"))
	require.NoError(t, err)
	assert.Equal(t, 3, res.Depth["v3"])
	assert.Equal(t, 1, res.Depth["v5"])
	assert.Len(t, res.Order, 7)
}

func TestBFS_MaxDepthAndFilter(t *testing.T) {
	res, err := bfs.BFS(cycle(), from("A"), bfs.WithMaxDepth[string, string](1))
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"A", "B", "D"}, res.Order)

	res, err = bfs.BFS(cycle(), from("A"), bfs.WithFilterEdge(func(e *core.Edge[string, string]) bool {
		return e.UID != "da"
	}))
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "C", "D"}, res.Order)
	assert.Equal(t, 3, res.Depth["D"])
}

func TestBFS_PathTo(t *testing.T) {
	res, err := bfs.BFS(cycle(), from("A"), bfs.WithFilterEdge(func(e *core.Edge[string, string]) bool {
		return e.UID != "da"
	}))
	require.NoError(t, err)

	path, err := res.PathTo("D", ident)
	require.NoError(t, err)
	var uids []string
	for _, e := range path {
		uids = append(uids, e.UID)
	}
	assert.Equal(t, []string{"ab", "bc", "cd"}, uids)

	path, err = res.PathTo("A", ident)
	require.NoError(t, err)
	assert.Empty(t, path)

	_, err = res.PathTo("Z", ident)
	assert.ErrorContains(t, err, "no path")
}

func TestBFS_OnVisitAborts(t *testing.T) {
	stop := errors.New("stop")
	var seen []string
	_, err := bfs.BFS(cycle(), from("A"), bfs.WithOnVisit[string, string](func(n string, _ int) error {
		seen = append(seen, n)
		if n == "C" {
			return stop
		}

		return nil
	}))
	assert.ErrorIs(t, err, stop)
	assert.Equal(t, "C", seen[len(seen)-1])
}

func TestBFS_Cancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := bfs.BFS(cycle(), from("A"), bfs.WithContext[string, string](ctx))
	assert.ErrorIs(t, err, context.Canceled)
}
