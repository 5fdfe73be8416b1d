package network

import "fmt"

// EdgeType classifies flow-graph edges.
type EdgeType int

const (
	EdgePipe EdgeType = iota
	EdgeFittingFlow
	EdgeIsolationThrough
	EdgeCheckThrough
	EdgeBalancingThrough
	EdgeBigValveHotHot
	EdgeBigValveHotWarm
	EdgeBigValveColdWarm
	EdgeBigValveColdCold
	EdgeFlowSource
	EdgePlantThrough
	EdgeReturnPump
)

var edgeTypeNames = [...]string{
	EdgePipe:             "PIPE",
	EdgeFittingFlow:      "FITTING_FLOW",
	EdgeIsolationThrough: "ISOLATION_THROUGH",
	EdgeCheckThrough:     "CHECK_THROUGH",
	EdgeBalancingThrough: "BALANCING_THROUGH",
	EdgeBigValveHotHot:   "BIG_VALVE_HOT_HOT",
	EdgeBigValveHotWarm:  "BIG_VALVE_HOT_WARM",
	EdgeBigValveColdWarm: "BIG_VALVE_COLD_WARM",
	EdgeBigValveColdCold: "BIG_VALVE_COLD_COLD",
	EdgeFlowSource:       "FLOW_SOURCE_EDGE",
	EdgePlantThrough:     "PLANT_THROUGH",
	EdgeReturnPump:       "RETURN_PUMP",
}

func (t EdgeType) String() string {
	if t < 0 || int(t) >= len(edgeTypeNames) {
		panic(fmt.Sprintf("network: unknown edge type %d", int(t)))
	}

	return edgeTypeNames[t]
}

// IsPhysicalLength reports whether the edge is a run of pipe.
func (t EdgeType) IsPhysicalLength() bool {
	switch t {
	case EdgePipe:
		return true
	case EdgeFittingFlow, EdgeIsolationThrough, EdgeCheckThrough, EdgeBalancingThrough,
		EdgeBigValveHotHot, EdgeBigValveHotWarm, EdgeBigValveColdWarm, EdgeBigValveColdCold,
		EdgeFlowSource, EdgePlantThrough, EdgeReturnPump:
		return false
	}
	panic(fmt.Sprintf("network: unknown edge type %d", int(t)))
}

// RingEligible reports whether the edge may lie on a ring main. Only
// undirected edges qualify.
func (t EdgeType) RingEligible() bool {
	switch t {
	case EdgePipe, EdgeFittingFlow, EdgeIsolationThrough, EdgeBalancingThrough:
		return true
	case EdgeCheckThrough, EdgeBigValveHotHot, EdgeBigValveHotWarm, EdgeBigValveColdWarm,
		EdgeBigValveColdCold, EdgeFlowSource, EdgePlantThrough, EdgeReturnPump:
		return false
	}
	panic(fmt.Sprintf("network: unknown edge type %d", int(t)))
}

// HasPressureDrop reports whether crossing the edge costs pressure.
func (t EdgeType) HasPressureDrop() bool {
	switch t {
	case EdgePipe, EdgeIsolationThrough, EdgeCheckThrough, EdgeBalancingThrough,
		EdgeBigValveHotHot, EdgeBigValveHotWarm, EdgeBigValveColdWarm, EdgeBigValveColdCold,
		EdgePlantThrough:
		return true
	case EdgeFittingFlow, EdgeFlowSource, EdgeReturnPump:
		return false
	}
	panic(fmt.Sprintf("network: unknown edge type %d", int(t)))
}

// IsBigValve reports whether the edge runs through a big valve.
func (t EdgeType) IsBigValve() bool {
	switch t {
	case EdgeBigValveHotHot, EdgeBigValveHotWarm, EdgeBigValveColdWarm, EdgeBigValveColdCold:
		return true
	case EdgePipe, EdgeFittingFlow, EdgeIsolationThrough, EdgeCheckThrough, EdgeBalancingThrough,
		EdgeFlowSource, EdgePlantThrough, EdgeReturnPump:
		return false
	}
	panic(fmt.Sprintf("network: unknown edge type %d", int(t)))
}

// FlowEdge is the payload of a flow-graph edge: what kind of passage it
// is and which entity owns it.
type FlowEdge struct {
	Type EdgeType
	UID  string
}

// FlowNode is an entity seen through one of its connections.
type FlowNode struct {
	Connectable string
	Connection  string
}

// Key is the node identity: connection, a space, then connectable.
func (n FlowNode) Key() string { return n.Connection + " " + n.Connectable }

// NodeKey is FlowNode.Key as a core.KeyFunc.
func NodeKey(n FlowNode) string { return n.Key() }

const (
	// FlowSourceConnection is the connection name of a source's own port.
	FlowSourceConnection = "FLOW_SOURCE_EDGE"

	flowSourceRoot = "FLOW_SOURCE_ROOT"
)

// RootNode is the synthetic node every flow source hangs off.
var RootNode = FlowNode{Connectable: flowSourceRoot, Connection: FlowSourceConnection}

// SourceNode is the node a flow source is entered through from the root.
func SourceNode(uid string) FlowNode {
	return FlowNode{Connectable: uid, Connection: FlowSourceConnection}
}
