package network

import (
	"math"

	"github.com/katalvlaran/hydronet/core"
	"github.com/katalvlaran/hydronet/dijkstra"
)

// EdgeDropKPA is the pressure lost crossing e with the calculations
// currently recorded in s. A pump never adds pressure here; Dijkstra
// weights must not be negative.
func EdgeDropKPA(s Store, e *core.Edge[FlowNode, FlowEdge]) float64 {
	if !e.Value.Type.HasPressureDrop() {
		return 0
	}
	switch e.Value.Type {
	case EdgePipe:
		return math.Max(0, Value(s.PipeCalc(e.Value.UID).PressureDropKPA))
	case EdgeIsolationThrough, EdgeCheckThrough, EdgeBalancingThrough:
		if c := s.ValveCalc(e.Value.UID); c.PressureDropKPA != nil {
			return *c.PressureDropKPA
		}
		if v, ok := Lookup[*DirectedValve](s, e.Value.UID); ok {
			return v.PressureDropKPA
		}
	case EdgeBigValveHotHot, EdgeBigValveHotWarm, EdgeBigValveColdWarm, EdgeBigValveColdCold:
		if v, ok := Lookup[*BigValve](s, e.Value.UID); ok {
			return v.PressureDropKPA
		}
	case EdgePlantThrough:
		if p, ok := Lookup[*Plant](s, e.Value.UID); ok {
			return math.Max(0, p.PressureLossKPA-p.PumpPressureKPA)
		}
	}

	return 0
}

// PeakPressures runs Dijkstra from src over the flow graph, weighting each
// edge by its recorded pressure drop, and returns the lowest-loss
// pressure at every reachable node key.
func PeakPressures(s Store, g *FlowGraph, src *FlowSource) (map[string]float64, error) {
	out := make(map[string]float64)
	err := dijkstra.Run(g, SourceNode(src.ID),
		func(e *core.Edge[FlowNode, FlowEdge], _ float64) float64 { return EdgeDropKPA(s, e) },
		dijkstra.Options[FlowNode, FlowEdge]{
			VisitNode: func(it dijkstra.Item[FlowNode, FlowEdge]) bool {
				out[it.Node.Key()] = src.PressureKPA - it.Dist

				return false
			},
		})
	if err != nil {
		return nil, err
	}

	return out, nil
}
