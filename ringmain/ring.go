package ringmain

import (
	"fmt"

	"github.com/katalvlaran/hydronet/core"
	"github.com/katalvlaran/hydronet/dfs"
	"github.com/katalvlaran/hydronet/network"
	"github.com/katalvlaran/hydronet/psd"
)

// Edge is one edge of the flow graph, oriented along the ring.
type Edge = core.Edge[network.FlowNode, network.FlowEdge]

// Ring is a closed walk of the flow graph: every edge leaves the node the
// previous one entered, and the last edge enters the node the first one
// leaves.
type Ring []*Edge

// Pipes returns the uids of the pipes on r, in ring order.
func (r Ring) Pipes() []string {
	var out []string
	for _, e := range r {
		if e.Value.Type == network.EdgePipe {
			out = append(out, e.Value.UID)
		}
	}

	return out
}

// pipeSet is Pipes as a set.
func (r Ring) pipeSet() map[string]struct{} {
	out := make(map[string]struct{})
	for _, uid := range r.Pipes() {
		out[uid] = struct{}{}
	}

	return out
}

// Sink is a ring node some demand leaves from, with the demand it serves.
type Sink struct {
	Node    network.FlowNode
	Profile psd.Profile
}

// FindRingMains returns one ring through every pipe the demand pass left
// without a peak flow, as long as such a ring exists. Rings are made of
// unsized, non-return pipes joined through fittings, isolation valves and
// balancing valves; no edge is used by two rings.
func FindRingMains(s network.Store, g *network.FlowGraph) []Ring {
	eligible := func(e *Edge) bool {
		switch e.Value.Type {
		case network.EdgePipe:
			c := s.PipeCalc(e.Value.UID)

			return (c.Configuration == "" || c.Configuration == network.ConfigNormal) && c.PeakFlowRateLS == nil
		case network.EdgeFittingFlow, network.EdgeIsolationThrough, network.EdgeBalancingThrough:
			return true
		case network.EdgeCheckThrough, network.EdgeFlowSource, network.EdgePlantThrough, network.EdgeReturnPump,
			network.EdgeBigValveHotHot, network.EdgeBigValveHotWarm,
			network.EdgeBigValveColdWarm, network.EdgeBigValveColdCold:
			return false
		}
		panic(fmt.Sprintf("ringmain: unknown edge type %d", e.Value.Type))
	}

	var rings []Ring
	seen := make(map[string]struct{})
	for _, e := range g.Edges() {
		if e.Value.Type != network.EdgePipe {
			continue
		}
		if _, ok := seen[e.UID]; ok || !eligible(e) {
			continue
		}
		if c, ok := dfs.CycleCovering(g, seen, e, true, eligible); ok {
			rings = append(rings, Ring(c))
		}
	}

	return rings
}
