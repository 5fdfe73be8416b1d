package returns

import (
	"context"
	"fmt"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/hydronet/catalog"
	"github.com/katalvlaran/hydronet/logging"
	"github.com/katalvlaran/hydronet/metrics"
	"github.com/katalvlaran/hydronet/network"
	"github.com/katalvlaran/hydronet/seriesparallel"
)

const (
	// MaxResizePasses bounds the flow/resize fixed point.
	MaxResizePasses = 10

	// MinBalancingDropKPA is added to every balancing valve setting.
	MinBalancingDropKPA = 10

	resizeEpsilonMM = 1e-9
)

// Solver balances return loops against one store.
type Solver struct {
	store   network.Store
	sizer   network.PipeSizer
	metrics *metrics.Registry
}

// Option configures a Solver.
type Option func(*Solver)

// WithMetrics records heat-loss iterations in m.
func WithMetrics(m *metrics.Registry) Option { return func(sv *Solver) { sv.metrics = m } }

// NewSolver returns a Solver writing to s and resizing through sizer.
func NewSolver(s network.Store, sizer network.PipeSizer, opts ...Option) *Solver {
	sv := &Solver{store: s, sizer: sizer}
	for _, o := range opts {
		o(sv)
	}

	return sv
}

// CirculationFlowLS is the flow that carries heatLossW while the water
// cools by deltaC, for a fluid of the given specific heat and density.
func CirculationFlowLS(heatLossW, specificHeatKJKGK, densityKGM3, deltaC float64) float64 {
	kgs := heatLossW / 1000 / (specificHeatKJKGK * deltaC)

	return kgs / densityKGM3 * 1000
}

// SetFlowRatesForReturn computes the loop's circulation flow from its
// current heat loss and distributes it down the tree, resizing pipes as
// it goes. It returns the largest diameter change in mm; ok is false when
// the loop's heat loss or the plant's temperatures are unusable.
func (sv *Solver) SetFlowRatesForReturn(ctx context.Context, rec *Record) (float64, bool) {
	log := logging.Logger(ctx).WithField("plant", rec.Plant.ID)

	memo := HeatMemo{}
	heat, ok := sv.NodeHeatLossWATT(rec, rec.Tree, memo)
	if !ok {
		log.Warn("return loop has pipes without heat loss")

		return 0, false
	}
	fluid, ok := sv.loopFluid(rec)
	if !ok {
		return 0, false
	}
	cp, ok := fluid.SpecificHeat(rec.Plant.OutletTempC)
	delta := rec.Plant.OutletTempC - rec.Plant.ReturnMinTempC
	if !ok || delta <= 0 || cp <= 0 {
		log.WithField("deltaC", delta).Warn("cannot derive circulation flow")

		return 0, false
	}

	flow := CirculationFlowLS(heat, cp, fluid.DensityKGM3, delta)
	pc := sv.store.PlantCalc(rec.Plant.ID)
	pc.CirculationFlowRateLS = network.Float(flow)
	pc.HeatLossKW = network.Float(heat / 1000)
	log.WithFields(logrus.Fields{"heatW": heat, "flowLS": flow}).Debug("circulation flow")

	return sv.setFlowRatesNode(rec, rec.Tree, flow, memo), true
}

// setFlowRatesNode gives n the flow flowLS: series halves carry all of
// it, parallel siblings share it by heat loss, and pipes are resized for
// it. It returns the largest diameter change below n.
func (sv *Solver) setFlowRatesNode(rec *Record, n TreeNode, flowLS float64, memo HeatMemo) float64 {
	switch t := n.(type) {
	case *seriesparallel.LeafNode[string, network.FlowEdge]:
		if t.Edge.Value.Type != network.EdgePipe {
			return 0
		}

		return sv.resizePipe(t.Edge.Value.UID, flowLS)
	case *seriesparallel.SeriesNode[string, network.FlowEdge]:
		return math.Max(
			sv.setFlowRatesNode(rec, t.Children[0], flowLS, memo),
			sv.setFlowRatesNode(rec, t.Children[1], flowLS, memo),
		)
	case *seriesparallel.ParallelNode[string, network.FlowEdge]:
		var change float64
		for i, f := range sv.splitFlow(rec, t, flowLS, memo) {
			change = math.Max(change, sv.setFlowRatesNode(rec, t.Siblings[i], f, memo))
		}

		return change
	}
	panic("returns: unknown tree node")
}

// splitFlow shares flowLS between the siblings of p by heat loss. With no
// heat loss at all the siblings share equally.
func (sv *Solver) splitFlow(rec *Record, p *Tree, flowLS float64, memo HeatMemo) []float64 {
	shares := make([]float64, len(p.Siblings))
	var total float64
	for i, c := range p.Siblings {
		w, _ := sv.NodeHeatLossWATT(rec, c, memo)
		shares[i] = w
		total += w
	}
	for i := range shares {
		if total > 0 {
			shares[i] = flowLS * shares[i] / total
		} else {
			shares[i] = flowLS / float64(len(shares))
		}
	}

	return shares
}

func (sv *Solver) resizePipe(uid string, flowLS float64) float64 {
	p, ok := network.Lookup[*network.Pipe](sv.store, uid)
	if !ok {
		panic(fmt.Sprintf("returns: pipe %q missing from store", uid))
	}
	sys, err := sv.store.FlowSystem(p.SystemUID)
	if err != nil {
		return 0
	}
	calc := sv.store.PipeCalc(uid)
	calc.ReturnFlowRateLS = network.Float(flowLS)

	before := network.Value(calc.RealInternalDiameterMM)
	design := math.Max(network.Value(calc.PeakFlowRateLS), flowLS)
	sv.sizer.SizePipeForFlowRate(p, network.FlowRequirement{FlowLS: design, MaxVelocityMS: sys.ReturnVelocityMS()})

	return math.Abs(network.Value(calc.RealInternalDiameterMM) - before)
}

func (sv *Solver) loopFluid(rec *Record) (*catalog.Fluid, bool) {
	for _, e := range rec.Graph.Edges() {
		if e.Value.Type != network.EdgePipe {
			continue
		}
		p, ok := network.Lookup[*network.Pipe](sv.store, e.Value.UID)
		if !ok {
			continue
		}
		ps, err := network.ResolvePipe(sv.store, p)
		if err != nil {
			return nil, false
		}

		return ps.Fluid, true
	}

	return nil, false
}

// Balance resizes the loop to a fixed point, then sets its balancing
// valves and records the plant's circulation figures.
func (sv *Solver) Balance(ctx context.Context, rec *Record) bool {
	log := logging.Logger(ctx).WithField("plant", rec.Plant.ID)

	// Every loop pipe needs a size before it has a heat loss.
	for _, e := range rec.Graph.Edges() {
		if e.Value.Type != network.EdgePipe {
			continue
		}
		if p, ok := network.Lookup[*network.Pipe](sv.store, e.Value.UID); ok {
			if _, sized := network.CurrentSize(sv.store, p); !sized {
				sv.resizePipe(p.ID, 0)
			}
		}
	}

	pass := 0
	for ; pass < MaxResizePasses; pass++ {
		change, ok := sv.SetFlowRatesForReturn(ctx, rec)
		if !ok {
			return false
		}
		if change < resizeEpsilonMM {
			break
		}
	}
	log.WithField("passes", pass+1).Debug("return loop sized")

	sv.WarnMissingBalancingValves(rec)
	deficits, loopDrop := sv.FindValveImbalances(rec)
	sv.SetValveBalances(rec, deficits)
	sv.store.PlantCalc(rec.Plant.ID).CirculationPressureLossKPA = network.Float(loopDrop)

	return true
}
