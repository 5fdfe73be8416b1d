package dijkstra_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/hydronet/core"
	"github.com/katalvlaran/hydronet/dijkstra"
)

func ident(s string) string { return s }

// byValue weighs each edge by its payload.
func byValue(e *core.Edge[string, float64], _ float64) float64 { return e.Value }

// triangle: A-B(1), B-C(2), A-C(5), all undirected.
func triangle() *core.Graph[string, float64] {
	g := core.New[string, float64](ident)
	g.AddEdge("A", "B", 1, core.WithUID("ab"))
	g.AddEdge("B", "C", 2, core.WithUID("bc"))
	g.AddEdge("A", "C", 5, core.WithUID("ac"))

	return g
}

func TestRun_Validation(t *testing.T) {
	g := triangle()
	assert.ErrorIs(t, dijkstra.Run[string, float64](nil, "A", byValue, dijkstra.Options[string, float64]{}), dijkstra.ErrNilGraph)
	assert.ErrorIs(t, dijkstra.Run(g, "A", nil, dijkstra.Options[string, float64]{}), dijkstra.ErrNilWeight)
	assert.ErrorIs(t, dijkstra.Run(g, "Z", byValue, dijkstra.Options[string, float64]{}), dijkstra.ErrStartNotFound)
}

func TestRun_SettlesInDistanceOrder(t *testing.T) {
	var order []string
	dist := map[string]float64{}
	err := dijkstra.Run(triangle(), "A", byValue, dijkstra.Options[string, float64]{
		VisitNode: func(it dijkstra.Item[string, float64]) bool {
			order = append(order, it.Node)
			dist[it.Node] = it.Dist

			return false
		},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "C"}, order)
	assert.Equal(t, map[string]float64{"A": 0, "B": 1, "C": 3}, dist)
}

func TestRun_PruneAndExclusions(t *testing.T) {
	g := triangle()

	var seen []string
	visit := func(it dijkstra.Item[string, float64]) bool {
		seen = append(seen, it.Node)

		return it.Node == "B"
	}
	require.NoError(t, dijkstra.Run(g, "A", byValue, dijkstra.Options[string, float64]{VisitNode: visit}))
	assert.Equal(t, []string{"A", "B", "C", "B"}, seen, "a pruned node is offered again through C")

	seen = nil
	excluded := map[string]struct{}{"ac": {}}
	require.NoError(t, dijkstra.Run(g, "A", byValue, dijkstra.Options[string, float64]{
		VisitNode:     visit,
		ExcludedEdges: excluded,
	}))
	assert.Equal(t, []string{"A", "B"}, seen)
	assert.Contains(t, excluded, "ab", "used uids are recorded in the caller set")

	seen = nil
	require.NoError(t, dijkstra.Run(g, "A", byValue, dijkstra.Options[string, float64]{
		VisitNode:     visit,
		ExcludedNodes: []string{"C"},
	}))
	assert.Equal(t, []string{"A", "B"}, seen)
}

func TestRun_VisitEdgeRejects(t *testing.T) {
	var seen []string
	require.NoError(t, dijkstra.Run(triangle(), "A", byValue, dijkstra.Options[string, float64]{
		VisitNode: func(it dijkstra.Item[string, float64]) bool { seen = append(seen, it.Node); return false },
		VisitEdge: func(e *core.Edge[string, float64]) bool { return e.UID == "bc" },
	}))
	assert.Equal(t, []string{"A", "B", "C"}, seen)
}

func TestRun_DirectionAndTies(t *testing.T) {
	g := core.New[string, float64](ident)
	g.AddDirectedEdge("S", "X", 1, core.WithUID("sx"))
	g.AddDirectedEdge("S", "Y", 1, core.WithUID("sy"))
	g.AddDirectedEdge("Z", "S", 1, core.WithUID("zs"))

	collect := func(opts dijkstra.Options[string, float64]) []string {
		var out []string
		opts.VisitNode = func(it dijkstra.Item[string, float64]) bool { out = append(out, it.Node); return false }
		require.NoError(t, dijkstra.Run(g, "S", byValue, opts))

		return out
	}
	assert.Equal(t, []string{"S", "X", "Y"}, collect(dijkstra.Options[string, float64]{}))
	assert.Equal(t, []string{"S", "Z"}, collect(dijkstra.Options[string, float64]{Reversed: true}))
	assert.Equal(t, []string{"S", "X", "Y", "Z"}, collect(dijkstra.Options[string, float64]{Undirected: true}))
}

func TestRun_DistanceDependentWeight(t *testing.T) {
	// Each hop costs the distance so far plus one: 1, 2, 4.
	g := core.New[string, float64](ident)
	g.AddDirectedEdge("a", "b", 0)
	g.AddDirectedEdge("b", "c", 0)
	g.AddDirectedEdge("c", "d", 0)

	var last float64
	require.NoError(t, dijkstra.Run(g, "a",
		func(_ *core.Edge[string, float64], d float64) float64 { return d + 1 },
		dijkstra.Options[string, float64]{
			VisitNode: func(it dijkstra.Item[string, float64]) bool { last = it.Dist; return false },
		}))
	assert.InDelta(t, 7.0, last, 1e-12)
}

func TestShortestPath(t *testing.T) {
	g := triangle()
	path, dist, found, err := dijkstra.ShortestPath(g, "A", []string{"C"}, byValue)
	require.NoError(t, err)
	require.True(t, found)
	assert.InDelta(t, 3.0, dist, 1e-12)
	require.Len(t, path, 2)
	assert.Equal(t, "ab", path[0].UID)
	assert.Equal(t, "bc", path[1].UID)

	path, dist, found, err = dijkstra.ShortestPath(g, "A", []string{"C"}, byValue,
		dijkstra.WithExcludedEdges[string, float64]("bc"))
	require.NoError(t, err)
	require.True(t, found)
	assert.InDelta(t, 5.0, dist, 1e-12)
	assert.Equal(t, "ac", path[0].UID)

	path, _, found, err = dijkstra.ShortestPath(g, "B", []string{"B"}, byValue)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Empty(t, path)

	g.AddNode("island")
	_, _, found, err = dijkstra.ShortestPath(g, "A", []string{"island"}, byValue)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestShortestPath_InfiniteWallsStillSettle(t *testing.T) {
	g := core.New[string, float64](ident)
	g.AddEdge("A", "B", math.Inf(1), core.WithUID("ab"))
	_, dist, found, err := dijkstra.ShortestPath(g, "A", []string{"B"}, byValue,
		dijkstra.WithExcludedNodes[string, float64]())
	require.NoError(t, err)
	assert.True(t, found)
	assert.True(t, math.IsInf(dist, 1))
}
