package returns

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/hydronet/core"
	"github.com/katalvlaran/hydronet/dfs"
	"github.com/katalvlaran/hydronet/logging"
	"github.com/katalvlaran/hydronet/network"
	"github.com/katalvlaran/hydronet/seriesparallel"
)

type (
	// LoopGraph is a return loop with every connectable collapsed to one
	// node.
	LoopGraph = core.Graph[string, network.FlowEdge]
	// TreeNode is a node of a loop's decomposition tree.
	TreeNode = seriesparallel.Node[string, network.FlowEdge]
	// Tree is the root of a loop's decomposition tree.
	Tree = seriesparallel.ParallelNode[string, network.FlowEdge]
)

// Record is a valid return loop found by IdentifyReturns.
type Record struct {
	Plant *network.Plant
	Tree  *Tree

	// Origins maps each loop edge uid to the connectable flow enters from.
	Origins map[string]string

	Graph *LoopGraph

	// Reductions is the number of series and parallel moves it took.
	Reductions int
}

// IdentifyReturns finds the return loop of every RETURN_SYSTEM plant whose
// outlet and return each have exactly one pipe.
//
// Steps:
//  1. Take the forward component of the outlet and close it with a
//     RETURN_PUMP edge from the return back to the outlet.
//  2. Keep the bridge-separated piece that holds that edge.
//  3. Collapse it to a graph over connectables, keeping only PIPE and
//     BIG_VALVE_* edges.
//  4. Decompose between outlet and return. On success every loop pipe
//     becomes RETURN with its flow direction; otherwise every loop pipe is
//     tagged INVALID_RETURN_NETWORK.
func IdentifyReturns(ctx context.Context, s network.Store, g *network.FlowGraph) []*Record {
	log := logging.Logger(ctx)
	var out []*Record

	for _, e := range s.Entities() {
		plant, ok := e.(*network.Plant)
		if !ok || plant.Type != network.ReturnSystem {
			continue
		}
		if len(s.Connections(plant.OutletUID)) != 1 || len(s.Connections(plant.ReturnUID)) != 1 {
			continue
		}
		outlet := network.FlowNode{Connectable: plant.OutletUID, Connection: plant.ID}
		ret := network.FlowNode{Connectable: plant.ReturnUID, Connection: plant.ID}
		if !g.HasNode(outlet) {
			continue
		}
		plog := log.WithField("plant", plant.ID)

		// 1) Forward component plus the pump
		comp, err := dfs.Component(g, outlet, nil)
		if err != nil {
			panic(err)
		}
		loop := core.FromSubgraph(comp, network.NodeKey)
		pumpUID := "pump:" + plant.ID
		loop.AddDirectedEdge(ret, outlet, network.FlowEdge{Type: network.EdgeReturnPump, UID: plant.ID}, core.WithUID(pumpUID))

		// 2) The piece holding the pump
		_, pieces := dfs.BridgeSeparatedComponents(loop)
		var piece *core.Subgraph[network.FlowNode, network.FlowEdge]
		for i := range pieces {
			for _, pe := range pieces[i].Edges {
				if pe.UID == pumpUID {
					piece = &pieces[i]
				}
			}
		}
		if piece == nil {
			panic("returns: no component holds the return pump")
		}

		// 3) Simple graph
		simple := simplify(piece.Edges)

		// 4) Decompose
		var res *seriesparallel.Result[string, network.FlowEdge]
		if simple.HasKey(plant.OutletUID) && simple.HasKey(plant.ReturnUID) {
			res, err = seriesparallel.Decompose(simple, plant.OutletUID, plant.ReturnUID)
			if err != nil {
				panic(err)
			}
		}
		if res == nil {
			plog.Warn("return loop is not series-parallel")
			for _, pe := range piece.Edges {
				if pe.Value.Type == network.EdgePipe {
					calc := s.PipeCalc(pe.Value.UID)
					calc.Configuration = network.ConfigReturn
					calc.NoFlowAvailableReason = network.InvalidReturnNetwork
				}
			}
			continue
		}

		for _, le := range simple.Edges() {
			if le.Value.Type == network.EdgePipe {
				calc := s.PipeCalc(le.Value.UID)
				calc.Configuration = network.ConfigReturn
				calc.FlowFrom = network.String(res.Origins[le.UID])
			}
		}
		plog.WithFields(logrus.Fields{
			"pipes":      len(simple.Edges()),
			"reductions": len(res.Reductions),
		}).Debug("return loop identified")
		out = append(out, &Record{
			Plant:      plant,
			Tree:       res.Tree,
			Origins:    res.Origins,
			Graph:      simple,
			Reductions: len(res.Reductions),
		})
	}

	return out
}

func simplify(edges []*core.Edge[network.FlowNode, network.FlowEdge]) *LoopGraph {
	sg := core.New[string, network.FlowEdge](func(s string) string { return s })
	seen := make(map[string]struct{})
	for _, e := range edges {
		if _, dup := seen[e.UID]; dup {
			continue
		}
		seen[e.UID] = struct{}{}
		switch e.Value.Type {
		case network.EdgePipe, network.EdgeBigValveHotHot, network.EdgeBigValveHotWarm,
			network.EdgeBigValveColdWarm, network.EdgeBigValveColdCold:
			sg.AddEdge(e.From.Connectable, e.To.Connectable, e.Value, core.WithUID(e.UID))
		case network.EdgeFittingFlow, network.EdgeFlowSource, network.EdgeCheckThrough,
			network.EdgeIsolationThrough, network.EdgeBalancingThrough, network.EdgePlantThrough,
			network.EdgeReturnPump:
			// Passages inside one connectable; they vanish once
			// connectables are single nodes.
		default:
			panic("returns: unknown edge type " + e.Value.Type.String())
		}
	}

	return sg
}
