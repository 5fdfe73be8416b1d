package returns

import (
	"math"
	"sort"

	"github.com/katalvlaran/hydronet/hydraulics"
	"github.com/katalvlaran/hydronet/network"
	"github.com/katalvlaran/hydronet/seriesparallel"
)

type (
	leafNode     = seriesparallel.LeafNode[string, network.FlowEdge]
	seriesNode   = seriesparallel.SeriesNode[string, network.FlowEdge]
	parallelNode = seriesparallel.ParallelNode[string, network.FlowEdge]
)

// junction is the connectable two consecutive spans share.
func junction(up, down seriesparallel.PairKey) string {
	if down.Has(up.A) {
		return up.A
	}

	return up.B
}

// spine collects the connectables and pipes of n that are reachable
// without entering a parallel group of two or more branches.
func spine(n TreeNode) (nodes, pipes []string) {
	var visit func(TreeNode)
	visit = func(n TreeNode) {
		switch t := n.(type) {
		case *leafNode:
			if t.Edge.Value.Type == network.EdgePipe {
				pipes = append(pipes, t.Edge.Value.UID)
			}
		case *seriesNode:
			visit(t.Children[0])
			nodes = append(nodes, junction(t.Children[0].Edge, t.Children[1].Edge))
			visit(t.Children[1])
		case *parallelNode:
			if len(t.Siblings) == 1 {
				visit(t.Siblings[0])
			}
		default:
			panic("returns: unknown tree node")
		}
	}
	visit(n)

	return nodes, pipes
}

// branches calls fn for every sibling of every parallel group of two or
// more branches under n.
func branches(n TreeNode, fn func(group *parallelNode, sibling TreeNode)) {
	seriesparallel.Walk(n, func(x TreeNode) bool {
		if p, ok := x.(*parallelNode); ok && len(p.Siblings) > 1 {
			for _, s := range p.Siblings {
				fn(p, s)
			}
		}

		return true
	})
}

func (sv *Solver) balancingValve(nodes []string) string {
	for _, uid := range nodes {
		if v, ok := network.Lookup[*network.DirectedValve](sv.store, uid); ok && v.Valve == network.BalancingValve {
			return uid
		}
	}

	return ""
}

// WarnMissingBalancingValves flags every parallel branch of the loop that
// has no balancing valve on its spine. It returns the number of such
// branches.
func (sv *Solver) WarnMissingBalancingValves(rec *Record) int {
	missing := 0
	branches(rec.Tree, func(_ *parallelNode, sib TreeNode) {
		nodes, pipes := spine(sib)
		if sv.balancingValve(nodes) != "" {
			return
		}
		missing++
		for _, uid := range pipes {
			sv.store.PipeCalc(uid).Warnings.Add(network.WarnMissingBalancingValve)
		}
		sv.store.PlantCalc(rec.Plant.ID).Warnings.Add(network.WarnMissingBalancingValve)
	})

	return missing
}

// dropper computes static pressure drops under circulation flow only.
type dropper struct {
	sv   *Solver
	rec  *Record
	memo map[TreeNode]float64
}

func (d *dropper) drop(n TreeNode) float64 {
	if v, ok := d.memo[n]; ok {
		return v
	}
	var v float64
	switch t := n.(type) {
	case *leafNode:
		v = d.leafDrop(t)
	case *seriesNode:
		v = d.drop(t.Children[0]) + d.drop(t.Children[1]) +
			d.fixedValveDrop(junction(t.Children[0].Edge, t.Children[1].Edge))
	case *parallelNode:
		for _, s := range t.Siblings {
			v = math.Max(v, d.drop(s))
		}
	default:
		panic("returns: unknown tree node")
	}
	d.memo[n] = v

	return v
}

func (d *dropper) leafDrop(l *leafNode) float64 {
	s := d.sv.store
	if l.Edge.Value.Type != network.EdgePipe {
		if bv, ok := network.Lookup[*network.BigValve](s, l.Edge.Value.UID); ok {
			return bv.PressureDropKPA
		}

		return 0
	}
	p, ok := network.Lookup[*network.Pipe](s, l.Edge.Value.UID)
	if !ok {
		return 0
	}
	size, ok := network.CurrentSize(s, p)
	if !ok {
		return 0
	}
	ps, err := network.ResolvePipe(s, p)
	if err != nil {
		return 0
	}
	params := s.Params()
	kpa, err := hydraulics.PressureDropKPA(
		network.HydraulicPipe(p, size),
		hydraulics.Fluid{DensityKGM3: ps.Fluid.DensityKGM3, ViscosityPAS: ps.Fluid.Viscosity(d.rec.Plant.OutletTempC)},
		network.Value(s.PipeCalc(p.ID).ReturnFlowRateLS),
		params.GravitationalAcceleration,
	)
	if err != nil {
		return 0
	}

	return math.Abs(kpa) * (1 + params.PipePressureLossAddOnPCT/100)
}

// fixedValveDrop is the drop of a non-balancing valve sitting at uid.
func (d *dropper) fixedValveDrop(uid string) float64 {
	v, ok := network.Lookup[*network.DirectedValve](d.sv.store, uid)
	if !ok || v.Valve == network.BalancingValve {
		return 0
	}

	return v.PressureDropKPA
}

// FindValveImbalances works out how much extra drop each balancing valve
// must add so that every branch of a parallel group loses as much as the
// worst one. A branch without a valve passes its deficit on to the
// branches nested inside it. It returns the deficits by valve uid and the
// static drop of the whole loop.
func (sv *Solver) FindValveImbalances(rec *Record) (map[string]float64, float64) {
	d := &dropper{sv: sv, rec: rec, memo: make(map[TreeNode]float64)}
	deficits := make(map[string]float64)

	var assign func(n TreeNode, inherited float64) bool
	assign = func(n TreeNode, inherited float64) bool {
		switch t := n.(type) {
		case *leafNode:
			return false
		case *seriesNode:
			if assign(t.Children[0], inherited) {
				assign(t.Children[1], 0)

				return true
			}

			return assign(t.Children[1], inherited)
		case *parallelNode:
			if len(t.Siblings) == 1 {
				return assign(t.Siblings[0], inherited)
			}
			worst := d.drop(t)
			for _, s := range t.Siblings {
				deficit := inherited + worst - d.drop(s)
				nodes, _ := spine(s)
				if v := sv.balancingValve(nodes); v != "" {
					deficits[v] = deficit
					assign(s, 0)
				} else {
					assign(s, deficit)
				}
			}

			return true
		}
		panic("returns: unknown tree node")
	}
	assign(rec.Tree, 0)

	return deficits, d.drop(rec.Tree)
}

// SetValveBalances writes each valve's setting: its deficit plus
// MinBalancingDropKPA, the circulation flow through it and the Kv that
// gives that drop at that flow.
func (sv *Solver) SetValveBalances(rec *Record, deficits map[string]float64) {
	uids := make([]string, 0, len(deficits))
	for uid := range deficits {
		uids = append(uids, uid)
	}
	sort.Strings(uids)

	for _, uid := range uids {
		var flow float64
		for _, pipe := range sv.store.Connections(uid) {
			flow = math.Max(flow, network.Value(sv.store.PipeCalc(pipe).ReturnFlowRateLS))
		}
		drop := deficits[uid] + MinBalancingDropKPA
		vc := sv.store.ValveCalc(uid)
		vc.FlowRateLS = network.Float(flow)
		vc.PressureDropKPA = network.Float(drop)
		vc.KvValue = network.Float(hydraulics.Kv(flow, drop))
	}
}
