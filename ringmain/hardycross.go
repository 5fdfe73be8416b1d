package ringmain

import (
	"fmt"
	"math"

	"github.com/katalvlaran/hydronet/hydraulics"
	"github.com/katalvlaran/hydronet/network"
)

// AdjustPathHardyCross adds one correction to the flow on every edge of
// path so that the head lost along it comes as close as possible to
// expectedHeadM; zero closes a loop. Head loss is monotone in the
// correction, so its distance from the target is unimodal and a ternary
// search finds the minimum. flows is updated in place and the correction
// is returned.
//
// Pipes lose head by Darcy–Weisbach at their current size; every other
// edge is lossless.
func (sv *Solver) AdjustPathHardyCross(flows network.FlowAssignment, path Ring, expectedHeadM float64) (float64, error) {
	var scale float64
	for _, e := range path {
		scale = math.Max(scale, math.Abs(flows.Flow(e.UID, e.From.Key())))
	}
	lo, hi := hydraulics.Bracket(scale, minBracketLS)

	var firstErr error
	residual := func(x float64) float64 {
		var h float64
		for _, e := range path {
			d, err := sv.edgeHeadLossMH(e, flows.Flow(e.UID, e.From.Key())+x)
			if err != nil && firstErr == nil {
				firstErr = err
			}
			h += d
		}

		return math.Abs(-expectedHeadM - h)
	}
	best := hydraulics.TernarySearchMin(residual, lo, hi, searchToleranceLS)
	if firstErr != nil {
		return 0, fmt.Errorf("ringmain: adjust path: %w", firstErr)
	}

	for _, e := range path {
		flows.AddFlow(e.UID, e.From.Key(), best)
	}

	return best, nil
}

// edgeHeadLossMH is the signed head lost by flowLS running along e.
func (sv *Solver) edgeHeadLossMH(e *Edge, flowLS float64) (float64, error) {
	if e.Value.Type != network.EdgePipe {
		return 0, nil
	}
	p := sv.pipe(e.Value.UID)
	size, ok := network.CurrentSize(sv.store, p)
	if !ok {
		return 0, nil
	}
	ps, err := network.ResolvePipe(sv.store, p)
	if err != nil {
		return 0, err
	}
	fluid := hydraulics.Fluid{
		DensityKGM3:  ps.Fluid.DensityKGM3,
		ViscosityPAS: ps.Fluid.Viscosity(ps.System.TemperatureC),
	}

	return hydraulics.HeadLossMH(network.HydraulicPipe(p, size), fluid, flowLS, sv.store.Params().GravitationalAcceleration)
}
