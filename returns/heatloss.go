package returns

import (
	"fmt"

	"github.com/katalvlaran/hydronet/core"
	"github.com/katalvlaran/hydronet/network"
	"github.com/katalvlaran/hydronet/seriesparallel"
	"github.com/katalvlaran/hydronet/thermal"
)

// bareEmissivity is used when a system names no jacket.
const bareEmissivity = 0.9

// HeatLossOfPipeWATTPerM is the steady heat loss of one metre of p at its
// current size, carrying fluid at fluidC in still or moving room air. ok
// is false when p has not been sized or the iteration did not converge.
func (sv *Solver) HeatLossOfPipeWATTPerM(p *network.Pipe, fluidC, windSpeedMS float64) (float64, bool) {
	size, ok := network.CurrentSize(sv.store, p)
	if !ok {
		return 0, false
	}
	ps, err := network.ResolvePipe(sv.store, p)
	if err != nil {
		return 0, false
	}
	cat := sv.store.Catalog()

	in := thermal.Input{
		InternalMM:          size.InternalMM,
		OutsideMM:           size.OutsideMM,
		WallConductivityWMK: ps.Material.ConductivityWMK,
		Emissivity:          bareEmissivity,
		Air:                 cat.Air,
		FluidC:              fluidC,
		AmbientC:            sv.store.Params().RoomTemperatureC,
		WindSpeedMS:         windSpeedMS,
	}
	if ins := cat.Insulation[ps.System.Insulation]; ins != nil {
		in.Insulation = ins
		in.ThicknessMM = ps.System.InsulationThicknessMM
	}
	if j := cat.Jackets[ps.System.Jacket]; j != nil {
		in.Emissivity = j.Emissivity
	}

	res, err := thermal.HeatLossPerMetre(in)
	if err != nil {
		return 0, false
	}
	sv.metrics.ObserveHeatLoss(res.Passes)
	if !res.Converged {
		return 0, false
	}

	return res.WattPerM, true
}

// HeatMemo caches subtree heat losses by tree node. A nil entry marks a
// subtree with an unknown loss.
type HeatMemo map[TreeNode]*float64

// NodeHeatLossWATT sums the heat loss of every pipe under n. Big-valve
// leaves lose nothing. ok is false when any pipe below has no heat loss.
// Results are cached in memo, which must be discarded once a pipe is
// resized.
func (sv *Solver) NodeHeatLossWATT(rec *Record, n TreeNode, memo HeatMemo) (float64, bool) {
	if v, ok := memo[n]; ok {
		if v == nil {
			return 0, false
		}

		return *v, true
	}

	var (
		total float64
		ok    = true
	)
	switch t := n.(type) {
	case *seriesparallel.LeafNode[string, network.FlowEdge]:
		total, ok = sv.leafHeatLoss(rec, t.Edge)
	case *seriesparallel.SeriesNode[string, network.FlowEdge]:
		for _, c := range t.Children {
			w, cok := sv.NodeHeatLossWATT(rec, c, memo)
			total += w
			ok = ok && cok
		}
	case *seriesparallel.ParallelNode[string, network.FlowEdge]:
		for _, c := range t.Siblings {
			w, cok := sv.NodeHeatLossWATT(rec, c, memo)
			total += w
			ok = ok && cok
		}
	default:
		panic("returns: unknown tree node")
	}

	if !ok {
		memo[n] = nil

		return 0, false
	}
	memo[n] = &total

	return total, true
}

func (sv *Solver) leafHeatLoss(rec *Record, e *core.Edge[string, network.FlowEdge]) (float64, bool) {
	if e.Value.Type != network.EdgePipe {
		return 0, true
	}
	p, ok := network.Lookup[*network.Pipe](sv.store, e.Value.UID)
	if !ok {
		panic(fmt.Sprintf("returns: pipe %q missing from store", e.Value.UID))
	}
	perM, ok := sv.HeatLossOfPipeWATTPerM(p, rec.Plant.OutletTempC, sv.store.Params().WindSpeedForHeatLossMS)
	if !ok {
		return 0, false
	}
	w := perM * p.LengthM
	sv.store.PipeCalc(p.ID).HeatLossWATT = network.Float(w)

	return w, true
}
