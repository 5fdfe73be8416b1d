package seriesparallel

import (
	"fmt"

	"github.com/katalvlaran/hydronet/core"
)

// ipair is an unordered pair of node indices, stored smaller first.
type ipair [2]int

func mkpair(x, y int) ipair {
	if y < x {
		x, y = y, x
	}

	return ipair{x, y}
}

func (p ipair) has(i int) bool { return p[0] == i || p[1] == i }

func (p ipair) other(i int) int {
	if p[0] == i {
		return p[1]
	}

	return p[0]
}

type move struct {
	kind  ReductionKind
	old   [2]ipair
	merge ipair
}

// reducer owns the index-based adjacency the reduction mutates.
type reducer struct {
	keys   []string
	index  map[string]int
	adj    [][]int
	count  map[ipair]int
	alive  []bool
	s, t   int
	nodesQ []int
	edgesQ []ipair
	log    []move
}

func (r *reducer) node(k string) int {
	if i, ok := r.index[k]; ok {
		return i
	}
	i := len(r.keys)
	r.keys = append(r.keys, k)
	r.index[k] = i
	r.adj = append(r.adj, nil)
	r.alive = append(r.alive, true)

	return i
}

func (r *reducer) seriesCandidate(n int) bool {
	return r.alive[n] && len(r.adj[n]) == 2 && n != r.s && n != r.t
}

// replaceOne swaps the first occurrence of old in l for nw.
func replaceOne(l []int, old, nw int) {
	for i, v := range l {
		if v == old {
			l[i] = nw

			return
		}
	}
}

// removeOne deletes the first occurrence of v from l.
func removeOne(l []int, v int) []int {
	for i, x := range l {
		if x == v {
			return append(l[:i], l[i+1:]...)
		}
	}

	return l
}

// series contracts n into an edge between its two neighbours.
func (r *reducer) series(n int) bool {
	if !r.seriesCandidate(n) {
		return false
	}
	a, b := r.adj[n][0], r.adj[n][1]
	if a == b {
		// A double edge to one neighbour; the parallel move handles it.
		return false
	}
	replaceOne(r.adj[a], n, b)
	replaceOne(r.adj[b], n, a)
	r.adj[n] = nil
	r.alive[n] = false

	ea, eb, eab := mkpair(a, n), mkpair(b, n), mkpair(a, b)
	r.count[ea]--
	r.count[eb]--
	r.count[eab]++
	if r.count[eab] > 1 {
		r.edgesQ = append(r.edgesQ, eab)
	}
	r.log = append(r.log, move{kind: Series, old: [2]ipair{ea, eb}, merge: eab})

	return true
}

// parallel drops one of the coincident edges of p.
func (r *reducer) parallel(p ipair) bool {
	if r.count[p] <= 1 {
		return false
	}
	a, b := p[0], p[1]
	r.adj[a] = removeOne(r.adj[a], b)
	r.adj[b] = removeOne(r.adj[b], a)
	for _, x := range []int{a, b} {
		if r.seriesCandidate(x) {
			r.nodesQ = append(r.nodesQ, x)
		}
	}
	r.count[p]--
	r.log = append(r.log, move{kind: Parallel, merge: p})

	return true
}

// run drains both queues, series first, and returns the number of edges removed.
func (r *reducer) run() int {
	removed := 0
	for {
		if n := len(r.nodesQ); n > 0 {
			v := r.nodesQ[n-1]
			r.nodesQ = r.nodesQ[:n-1]
			if r.series(v) {
				removed++
			}
		} else if n := len(r.edgesQ); n > 0 {
			p := r.edgesQ[n-1]
			r.edgesQ = r.edgesQ[:n-1]
			if r.parallel(p) {
				removed++
			}
		} else {
			return removed
		}
	}
}

func (r *reducer) pairKey(p ipair) PairKey { return MakePair(r.keys[p[0]], r.keys[p[1]]) }

// Decompose checks whether g, read as undirected, is series-parallel
// between source and sink. It returns a nil Result and a nil error when it
// is not; errors are only returned for terminals missing from g.
//
// Steps:
//  1. Index adjacency and parallel-edge counts by unordered endpoint pair.
//  2. Seed the node queue with non-terminal degree-2 nodes and the edge
//     queue with every surplus coincident edge.
//  3. Reduce, series moves first, until both queues are empty.
//  4. Succeed when |E|−1 edges were removed and the survivor is source–sink.
//  5. Replay the log backwards to derive origins and build the tree.
func Decompose[N any, E any](g *core.Graph[N, E], source, sink N) (*Result[N, E], error) {
	if !g.HasNode(source) {
		return nil, fmt.Errorf("%w: %q", ErrSourceNotFound, g.Key(source))
	}
	if !g.HasNode(sink) {
		return nil, fmt.Errorf("%w: %q", ErrSinkNotFound, g.Key(sink))
	}
	sk, tk := g.Key(source), g.Key(sink)
	edges := g.Edges()
	if sk == tk || len(edges) == 0 {
		return nil, nil
	}

	// 1) Index
	r := &reducer{index: make(map[string]int), count: make(map[ipair]int)}
	r.s, r.t = r.node(sk), r.node(tk)
	var pairOrder []ipair
	for _, e := range edges {
		a, b := r.node(g.Key(e.From)), r.node(g.Key(e.To))
		if a == b {
			return nil, nil
		}
		r.adj[a] = append(r.adj[a], b)
		r.adj[b] = append(r.adj[b], a)
		p := mkpair(a, b)
		if r.count[p] == 0 {
			pairOrder = append(pairOrder, p)
		}
		r.count[p]++
	}

	// 2) Seed
	for n := range r.keys {
		if r.seriesCandidate(n) {
			r.nodesQ = append(r.nodesQ, n)
		}
	}
	for _, p := range pairOrder {
		for i := 1; i < r.count[p]; i++ {
			r.edgesQ = append(r.edgesQ, p)
		}
	}

	// 3-4) Reduce and check
	root := mkpair(r.s, r.t)
	if removed := r.run(); removed != len(edges)-1 || r.count[root] != 1 {
		return nil, nil
	}

	// 5) Replay
	return rebuild(r, g, edges, root), nil
}

// rebuild walks the log backwards. Each series move splits a span of its
// merged pair into two fresh ParallelNodes; the origin of the merged pair
// fixes the origins of the two halves.
func rebuild[N any, E any](r *reducer, g *core.Graph[N, E], edges []*core.Edge[N, E], root ipair) *Result[N, E] {
	tree := &ParallelNode[N, E]{Edge: r.pairKey(root)}
	slots := map[ipair]*ParallelNode[N, E]{root: tree}
	origin := map[ipair]int{root: r.s}

	for i := len(r.log) - 1; i >= 0; i-- {
		m := r.log[i]
		if m.kind != Series {
			continue
		}
		src, ok := origin[m.merge]
		parent := slots[m.merge]
		if !ok || parent == nil {
			panic(fmt.Sprintf("seriesparallel: no span recorded for %s", r.pairKey(m.merge)))
		}
		dst := m.merge.other(src)

		var halves [2]*ParallelNode[N, E]
		for j, e := range m.old {
			switch {
			case e[0] == src, e[1] == src:
				origin[e] = src
			case e[0] == dst:
				origin[e] = e[1]
			case e[1] == dst:
				origin[e] = e[0]
			default:
				panic("seriesparallel: inconsistent reduction log")
			}
			halves[j] = &ParallelNode[N, E]{Edge: r.pairKey(e)}
			slots[e] = halves[j]
		}
		if !m.old[0].has(src) {
			halves[0], halves[1] = halves[1], halves[0]
		}
		parent.Siblings = append(parent.Siblings, &SeriesNode[N, E]{Edge: r.pairKey(m.merge), Children: halves})
	}

	res := &Result[N, E]{
		Origins:    make(map[string]N, len(edges)),
		Tree:       tree,
		Reductions: make([]Reduction, 0, len(r.log)),
	}
	for _, m := range r.log {
		red := Reduction{Kind: m.kind, New: r.pairKey(m.merge)}
		if m.kind == Series {
			red.Old = [2]PairKey{r.pairKey(m.old[0]), r.pairKey(m.old[1])}
		}
		res.Reductions = append(res.Reductions, red)
	}
	for _, e := range edges {
		p := mkpair(r.index[g.Key(e.From)], r.index[g.Key(e.To)])
		slot := slots[p]
		if slot == nil {
			panic(fmt.Sprintf("seriesparallel: edge %s missing from the tree", e.UID))
		}
		slot.Siblings = append(slot.Siblings, &LeafNode[N, E]{Edge: e, pair: r.pairKey(p)})
		n, _ := g.Node(r.keys[origin[p]])
		res.Origins[e.UID] = n
	}

	return res
}
