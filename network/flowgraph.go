package network

import (
	"fmt"

	"github.com/katalvlaran/hydronet/core"
)

// FlowGraph is the graph a solve pass runs on. Nodes are entities seen
// through one of their connections; edges are pipes and the passages
// inside fittings, valves and plants.
type FlowGraph = core.Graph[FlowNode, FlowEdge]

// NewFlowGraph returns an empty flow graph.
func NewFlowGraph() *FlowGraph { return core.New[FlowNode, FlowEdge](NodeKey) }

// BuildFlowGraph builds the flow graph of every entity in s.
//
// Rules:
//   - a pipe is an undirected PIPE edge between its endpoints, seen
//     through the pipe;
//   - a fitting, load node, flow source or system node joins every pair
//     of its connections with an undirected FITTING_FLOW edge; a flow
//     source also gets its own port, fed by a directed edge from the root,
//     and a system node counts its parent as a connection;
//   - a plant is a directed PLANT_THROUGH edge from inlet to outlet;
//   - a big valve is one directed edge per supply it passes through;
//   - an inline valve with two connections is directed from its source
//     pipe when it only lets flow one way, undirected otherwise, and
//     absent when it is a closed isolation valve.
func BuildFlowGraph(s Store) *FlowGraph {
	g := NewFlowGraph()
	g.AddNode(RootNode)

	for _, e := range s.Entities() {
		switch x := e.(type) {
		case *Pipe:
			g.AddEdge(
				FlowNode{Connectable: x.Endpoints[0], Connection: x.ID},
				FlowNode{Connectable: x.Endpoints[1], Connection: x.ID},
				FlowEdge{Type: EdgePipe, UID: x.ID},
				core.WithUID(x.ID),
			)
		case *FlowSource:
			conns := append(s.Connections(x.ID), FlowSourceConnection)
			addFittingFlows(g, x.ID, conns)
			g.AddDirectedEdge(RootNode, SourceNode(x.ID),
				FlowEdge{Type: EdgeFlowSource, UID: x.ID},
				core.WithUID("source:"+x.ID))
		case *SystemNode:
			addFittingFlows(g, x.ID, append(s.Connections(x.ID), x.ParentUID))
		case *Fitting, *LoadNode:
			addFittingFlows(g, x.UID(), s.Connections(x.UID()))
		case *Plant:
			g.AddDirectedEdge(
				FlowNode{Connectable: x.InletUID, Connection: x.ID},
				FlowNode{Connectable: x.OutletUID, Connection: x.ID},
				FlowEdge{Type: EdgePlantThrough, UID: x.ID},
				core.WithUID("plant:"+x.ID))
		case *BigValve:
			addBigValve(g, x)
		case *DirectedValve:
			addValve(g, x, s.Connections(x.ID))
		default:
			panic(fmt.Sprintf("network: unknown entity type %T", e))
		}
	}

	return g
}

func addFittingFlows(g *FlowGraph, uid string, conns []string) {
	for _, c := range conns {
		g.AddNode(FlowNode{Connectable: uid, Connection: c})
	}
	for i := 0; i < len(conns); i++ {
		for j := i + 1; j < len(conns); j++ {
			g.AddEdge(
				FlowNode{Connectable: uid, Connection: conns[i]},
				FlowNode{Connectable: uid, Connection: conns[j]},
				FlowEdge{Type: EdgeFittingFlow, UID: uid},
				core.WithUID(fmt.Sprintf("fitting:%s:%d:%d", uid, i, j)),
			)
		}
	}
}

func addBigValve(g *FlowGraph, v *BigValve) {
	through := func(t EdgeType, from, to string) {
		if from == "" || to == "" {
			return
		}
		g.AddDirectedEdge(
			FlowNode{Connectable: from, Connection: v.ID},
			FlowNode{Connectable: to, Connection: v.ID},
			FlowEdge{Type: t, UID: v.ID},
			core.WithUID("bigValve:"+v.ID+":"+t.String()))
	}

	switch v.Type {
	case TMV:
		through(EdgeBigValveColdCold, v.ColdInUID, v.ColdOutUID)
		through(EdgeBigValveHotWarm, v.HotInUID, v.WarmOutUID)
	case Tempering:
		through(EdgeBigValveHotWarm, v.HotInUID, v.WarmOutUID)
	case RPZDHotCold:
		through(EdgeBigValveColdCold, v.ColdInUID, v.ColdOutUID)
		through(EdgeBigValveHotHot, v.HotInUID, v.HotOutUID)
	default:
		panic("network: unknown big valve type " + string(v.Type))
	}
}

func addValve(g *FlowGraph, v *DirectedValve, conns []string) {
	for _, c := range conns {
		g.AddNode(FlowNode{Connectable: v.ID, Connection: c})
	}
	if len(conns) != 2 {
		return
	}
	a := FlowNode{Connectable: v.ID, Connection: conns[0]}
	b := FlowNode{Connectable: v.ID, Connection: conns[1]}
	if v.SourceUID == conns[1] {
		a, b = b, a
	}
	uid := core.WithUID("valve:" + v.ID)

	switch v.Valve {
	case CheckValve, RPZD, PRV, GasRegulator:
		g.AddDirectedEdge(a, b, FlowEdge{Type: EdgeCheckThrough, UID: v.ID}, uid)
	case IsolationValve:
		if !v.IsClosed {
			g.AddEdge(a, b, FlowEdge{Type: EdgeIsolationThrough, UID: v.ID}, uid)
		}
	case BalancingValve:
		g.AddEdge(a, b, FlowEdge{Type: EdgeBalancingThrough, UID: v.ID}, uid)
	case WaterMeter, Strainer:
		g.AddEdge(a, b, FlowEdge{Type: EdgeCheckThrough, UID: v.ID}, uid)
	default:
		panic("network: unknown valve type " + string(v.Valve))
	}
}
