package gas

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/hydronet/catalog"
	"github.com/katalvlaran/hydronet/config"
	"github.com/katalvlaran/hydronet/core"
	"github.com/katalvlaran/hydronet/dfs"
	"github.com/katalvlaran/hydronet/network"
	"github.com/katalvlaran/hydronet/psd"
)

var (
	// ErrNotEntry indicates a uid that is neither a flow source nor a gas
	// regulator with two connections.
	ErrNotEntry = errors.New("gas: not a gas entry point")

	// ErrNotGas indicates an entry point on a system that carries no gas.
	ErrNotGas = errors.New("gas: system carries no gas")
)

// Terminal is a point the component must deliver pressure to.
type Terminal struct {
	UID string

	// DistanceM is the pipe length from the entry point.
	DistanceM float64

	// RequiredKPA is the terminal's own inlet pressure plus every fixed
	// drop between it and the entry point.
	RequiredKPA float64
}

// Component is the part of a gas network one entry point feeds.
type Component struct {
	Entry     string
	System    *config.FlowSystem
	Gas       Type
	SupplyKPA float64

	// LengthM is the longest run from the entry to a terminal.
	LengthM float64

	// MaxRequiredKPA is the highest pressure any terminal needs at the
	// entry.
	MaxRequiredKPA float64

	Pipes     []string
	Terminals []Terminal
}

// GetAndFillInGasComponent walks the network downstream of entry and
// returns its component. Every pipe reached gets its diversified gas load
// recorded as GasFlowRateMJH.
//
// The walk follows flow direction, so it never passes back out through the
// entry. It stops at the inlet of the next regulator, which becomes a
// terminal needing its outlet pressure. Load nodes with a gas demand are
// terminals needing their appliance pressure.
func GetAndFillInGasComponent(s network.Store, g *network.FlowGraph, entry string) (*Component, error) {
	comp := &Component{Entry: entry}
	var (
		start   network.FlowNode
		blocked []network.FlowNode
		sysUID  string
	)
	switch ent, _ := s.Get(entry); x := ent.(type) {
	case *network.FlowSource:
		start, sysUID, comp.SupplyKPA = network.SourceNode(x.ID), x.SystemUID, x.PressureKPA
	case *network.DirectedValve:
		through, ok := g.Edge("valve:" + x.ID)
		if x.Valve != network.GasRegulator || !ok {
			return nil, fmt.Errorf("%w: %q", ErrNotEntry, entry)
		}
		start, sysUID, comp.SupplyKPA = through.To, x.SystemUID, x.OutletPressureKPA
		blocked = append(blocked, through.From)
	default:
		return nil, fmt.Errorf("%w: %q", ErrNotEntry, entry)
	}

	sys, err := s.FlowSystem(sysUID)
	if err != nil {
		return nil, fmt.Errorf("gas: component %q: %w", entry, err)
	}
	gas, ok := SystemGas(sys)
	if !ok {
		return nil, fmt.Errorf("%w: %q on %q", ErrNotGas, entry, sys.UID)
	}
	comp.System, comp.Gas = sys, gas

	var (
		distance, dropKPA float64
		counted           = make(map[string]struct{})
	)
	terminal := func(uid string, requiredKPA float64) {
		if _, ok := counted[uid]; ok {
			return
		}
		counted[uid] = struct{}{}
		t := Terminal{UID: uid, DistanceM: distance, RequiredKPA: requiredKPA + dropKPA}
		comp.Terminals = append(comp.Terminals, t)
		comp.LengthM = math.Max(comp.LengthM, t.DistanceM)
		comp.MaxRequiredKPA = math.Max(comp.MaxRequiredKPA, t.RequiredKPA)
	}

	err = dfs.Walk(g, start, dfs.Options[network.FlowNode, network.FlowEdge]{
		SeenNodes: g.KeySet(blocked...),
		VisitNode: func(n network.FlowNode) bool {
			switch ent, _ := s.Get(n.Connectable); x := ent.(type) {
			case *network.LoadNode:
				if x.GasMJH > 0 {
					terminal(x.ID, x.GasPressureKPA)
				}
			case *network.DirectedValve:
				if x.Valve == network.GasRegulator && x.ID != entry {
					terminal(x.ID, x.OutletPressureKPA+x.PressureDropKPA)

					return true
				}
			}

			return false
		},
		VisitEdge: func(e *core.Edge[network.FlowNode, network.FlowEdge]) bool {
			distance += edgeLengthM(s, e.Value)
			dropKPA += fixedDropKPA(s, e.Value)
			if e.Value.Type == network.EdgePipe {
				if _, ok := counted["pipe:"+e.Value.UID]; !ok {
					counted["pipe:"+e.Value.UID] = struct{}{}
					comp.Pipes = append(comp.Pipes, e.Value.UID)
				}
			}

			return false
		},
		LeaveEdge: func(e *core.Edge[network.FlowNode, network.FlowEdge]) {
			distance -= edgeLengthM(s, e.Value)
			dropKPA -= fixedDropKPA(s, e.Value)
		},
	})
	if err != nil {
		return nil, fmt.Errorf("gas: component %q: %w", entry, err)
	}

	cat := s.Catalog()
	for _, uid := range comp.Pipes {
		calc := s.PipeCalc(uid)
		if calc.PsdProfile == nil {
			continue
		}
		calc.GasFlowRateMJH = network.Float(DiversifiedMJH(cat, *calc.PsdProfile))
	}

	return comp, nil
}

// DiversifiedMJH is the gas load of p scaled by the catalog's
// diversification for its dwelling count.
func DiversifiedMJH(cat *catalog.Catalog, p psd.Profile) float64 {
	pct, ok := catalog.Interpolate(cat.GasDiversification, p.Dwellings, false)
	if !ok {
		pct = 100
	}

	return p.GasMJH * pct / 100
}

func edgeLengthM(s network.Store, e network.FlowEdge) float64 {
	if !e.Type.IsPhysicalLength() {
		return 0
	}
	if p, ok := network.Lookup[*network.Pipe](s, e.UID); ok {
		return p.LengthM
	}

	return 0
}

// fixedDropKPA is the set drop of an inline valve such as a meter.
func fixedDropKPA(s network.Store, e network.FlowEdge) float64 {
	switch e.Type {
	case network.EdgeCheckThrough, network.EdgeIsolationThrough, network.EdgeBalancingThrough:
		if v, ok := network.Lookup[*network.DirectedValve](s, e.UID); ok {
			return v.PressureDropKPA
		}
	}

	return 0
}
