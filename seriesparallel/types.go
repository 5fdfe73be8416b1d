package seriesparallel

import (
	"errors"

	"github.com/katalvlaran/hydronet/core"
)

var (
	// ErrSourceNotFound indicates the source is not a node of the graph.
	ErrSourceNotFound = errors.New("seriesparallel: source not found")

	// ErrSinkNotFound indicates the sink is not a node of the graph.
	ErrSinkNotFound = errors.New("seriesparallel: sink not found")
)

// PairKey is an unordered pair of node keys, stored with A <= B.
type PairKey struct {
	A, B string
}

// MakePair returns the PairKey of x and y in canonical order.
func MakePair(x, y string) PairKey {
	if y < x {
		x, y = y, x
	}

	return PairKey{A: x, B: y}
}

// Other returns the endpoint of p that is not k.
func (p PairKey) Other(k string) string {
	if p.A == k {
		return p.B
	}

	return p.A
}

// Has reports whether k is an endpoint of p.
func (p PairKey) Has(k string) bool { return p.A == k || p.B == k }

func (p PairKey) String() string { return "[" + p.A + "," + p.B + "]" }

// Node is one vertex of the decomposition tree. The set of implementations
// is closed: *ParallelNode, *SeriesNode and *LeafNode.
type Node[N any, E any] interface {
	// Pair is the endpoint pair this subtree spans.
	Pair() PairKey
	isNode()
}

// ParallelNode groups the alternatives running between the same two nodes.
// Every pair has its own ParallelNode, even with a single sibling.
type ParallelNode[N any, E any] struct {
	Edge     PairKey
	Siblings []Node[N, E]
}

// SeriesNode joins two consecutive spans. Children[0] is the upstream one.
type SeriesNode[N any, E any] struct {
	Edge     PairKey
	Children [2]*ParallelNode[N, E]
}

// LeafNode wraps one concrete graph edge.
type LeafNode[N any, E any] struct {
	Edge *core.Edge[N, E]
	pair PairKey
}

func (p *ParallelNode[N, E]) Pair() PairKey { return p.Edge }
func (s *SeriesNode[N, E]) Pair() PairKey   { return s.Edge }
func (l *LeafNode[N, E]) Pair() PairKey     { return l.pair }

func (*ParallelNode[N, E]) isNode() {}
func (*SeriesNode[N, E]) isNode()   {}
func (*LeafNode[N, E]) isNode()     {}

// ReductionKind tells series and parallel moves apart.
type ReductionKind int

const (
	// Series contracted a degree-2 node.
	Series ReductionKind = iota
	// Parallel dropped one of several coincident edges.
	Parallel
)

func (k ReductionKind) String() string {
	switch k {
	case Series:
		return "series"
	case Parallel:
		return "parallel"
	}
	panic("seriesparallel: unknown reduction kind")
}

// Reduction is one logged move. Old is only set for series moves.
type Reduction struct {
	Kind ReductionKind
	Old  [2]PairKey
	New  PairKey
}

// Result of a successful decomposition.
type Result[N any, E any] struct {
	// Origins maps each edge uid to the endpoint flow enters it from.
	Origins map[string]N

	// Tree is rooted at the source–sink pair.
	Tree *ParallelNode[N, E]

	// Reductions in the order they were applied.
	Reductions []Reduction
}
