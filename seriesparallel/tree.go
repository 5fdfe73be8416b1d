package seriesparallel

import "github.com/katalvlaran/hydronet/core"

// Walk visits the tree in pre-order. Returning false from fn skips the
// children of that node.
func Walk[N any, E any](n Node[N, E], fn func(Node[N, E]) bool) {
	if !fn(n) {
		return
	}
	switch t := n.(type) {
	case *ParallelNode[N, E]:
		for _, s := range t.Siblings {
			Walk(s, fn)
		}
	case *SeriesNode[N, E]:
		Walk[N, E](t.Children[0], fn)
		Walk[N, E](t.Children[1], fn)
	case *LeafNode[N, E]:
	default:
		panic("seriesparallel: unknown tree node")
	}
}

// Leaves returns the graph edges of the tree in pre-order.
func Leaves[N any, E any](n Node[N, E]) []*core.Edge[N, E] {
	var out []*core.Edge[N, E]
	Walk(n, func(x Node[N, E]) bool {
		if l, ok := x.(*LeafNode[N, E]); ok {
			out = append(out, l.Edge)
		}

		return true
	})

	return out
}

// Fold evaluates the tree bottom-up: leaf maps a graph edge, series
// combines the two halves of a SeriesNode and parallel combines the
// siblings of a ParallelNode.
func Fold[N any, E any, T any](
	n Node[N, E],
	leaf func(*core.Edge[N, E]) T,
	series func(up, down T) T,
	parallel func(siblings []T) T,
) T {
	switch t := n.(type) {
	case *ParallelNode[N, E]:
		vals := make([]T, 0, len(t.Siblings))
		for _, s := range t.Siblings {
			vals = append(vals, Fold(s, leaf, series, parallel))
		}

		return parallel(vals)
	case *SeriesNode[N, E]:
		return series(
			Fold[N, E, T](t.Children[0], leaf, series, parallel),
			Fold[N, E, T](t.Children[1], leaf, series, parallel),
		)
	case *LeafNode[N, E]:
		return leaf(t.Edge)
	}
	panic("seriesparallel: unknown tree node")
}
