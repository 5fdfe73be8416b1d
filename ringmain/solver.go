package ringmain

import (
	"context"
	"fmt"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/hydronet/config"
	"github.com/katalvlaran/hydronet/logging"
	"github.com/katalvlaran/hydronet/metrics"
	"github.com/katalvlaran/hydronet/network"
	"github.com/katalvlaran/hydronet/psd"
)

const (
	// MaxRelaxPasses bounds the Hardy Cross iteration on one ring.
	MaxRelaxPasses = 10

	// FlowEpsilonLS is the loop correction below which a ring counts as
	// balanced, and the slack allowed when closing the initial flows.
	FlowEpsilonLS = 1e-4

	searchToleranceLS = 1e-7
	minBracketLS      = 1
)

// Solver sizes ring mains against one store.
type Solver struct {
	store   network.Store
	sizer   network.PipeSizer
	metrics *metrics.Registry
}

// Option configures a Solver.
type Option func(*Solver)

// WithMetrics records ring outcomes and sized pipes in m.
func WithMetrics(m *metrics.Registry) Option { return func(sv *Solver) { sv.metrics = m } }

// NewSolver returns a Solver writing to s and sizing through sizer.
func NewSolver(s network.Store, sizer network.PipeSizer, opts ...Option) *Solver {
	sv := &Solver{store: s, sizer: sizer}
	for _, o := range opts {
		o(sv)
	}

	return sv
}

// CalculateAllRings finds every unsized ring main of g and sizes it. It
// returns the number of rings sized.
func (sv *Solver) CalculateAllRings(ctx context.Context, g *network.FlowGraph) int {
	sized := 0
	for _, r := range FindRingMains(sv.store, g) {
		if _, ok := sv.SizeSingleRing(ctx, r); ok {
			sized++
		}
	}

	return sized
}

// SizeSingleRing sizes the pipes of ring by the document's ring-main
// method and returns the flows it sized them for. ok is false when the
// ring was skipped; its pipes then carry the reason.
//
// Steps:
//  1. Classify every branch leaving the ring: a branch flowing in is the
//     source, one flowing out is a sink. A branch without a peak flow, or
//     a second source, aborts the ring.
//  2. Share the ring's total design flow between the sinks.
//  3. Seed a flow that runs one way round from the source, dropping each
//     sink's share as it passes.
//  4. Size by isolation cases, by Hardy Cross relaxation of the seed, or
//     by the larger of both.
func (sv *Solver) SizeSingleRing(ctx context.Context, ring Ring) (network.FlowAssignment, bool) {
	pipes := ring.Pipes()
	if len(pipes) == 0 {
		return nil, false
	}
	log := logging.Logger(ctx).WithField("ring", pipes[0])

	first, ok := network.Lookup[*network.Pipe](sv.store, pipes[0])
	if !ok {
		panic(fmt.Sprintf("ringmain: pipe %q missing from store", pipes[0]))
	}
	sys, err := sv.store.FlowSystem(first.SystemUID)
	if err != nil {
		log.WithError(err).Warn("ring has no flow system")
		sv.metrics.RecordPass(metrics.SolverRings, "skipped")

		return nil, false
	}

	source, sinks, reason := sv.classifyBranches(ring)
	if reason != "" {
		log.WithField("reason", reason).Info("ring not sized")
		sv.setNoFlowReason(ring, reason)
		sv.metrics.RecordPass(metrics.SolverRings, string(reason))

		return nil, false
	}

	var total psd.Profile
	for _, sk := range sinks {
		total = total.Merge(sk.Profile)
	}
	totalFR, ok, err := network.PeakFlow(sv.store, sys.UID, total)
	if err != nil {
		// No PSD standard: nothing to size against.
		log.WithError(err).Debug("ring system has no PSD standard")
		sv.metrics.RecordPass(metrics.SolverRings, "skipped")

		return nil, false
	}
	if !ok {
		sv.setNoFlowReason(ring, network.NoSuitablePipeSize)
		sv.metrics.RecordPass(metrics.SolverRings, string(network.NoSuitablePipeSize))

		return nil, false
	}

	shares := SinkFlows(totalFR, total, sinks)
	assignment := seedAssignment(ring, source, shares)
	sv.setInitialSizes(ring)

	method := sv.store.Params().RingMainCalculationMethod
	var (
		isolation = network.FlowAssignment{}
		worst     map[string]psd.Profile
	)
	if method.UsesIsolationCases() {
		var found bool
		isolation, worst, found = sv.SizeRingWithIsolationScenarios(ctx, ring, source, sinks, sys)
		if !found && !method.UsesDistribution() {
			sv.setNoFlowReason(ring, network.NoIsolationValvesOnMain)
			for _, uid := range pipes {
				sv.store.PipeCalc(uid).Configuration = network.ConfigRingMain
			}
			sv.metrics.RecordPass(metrics.SolverRings, string(network.NoIsolationValvesOnMain))

			return nil, false
		}
	}

	if !method.UsesDistribution() {
		for _, uid := range pipes {
			p := sv.pipe(uid)
			calc := sv.store.PipeCalc(uid)
			if isolation.Has(uid) {
				sv.setRingFlow(p, isolation.Flow(uid, ""), sys)
				calc.FlowFrom = network.String(isolation.Origin(uid))
			}
			if prof, ok := worst[uid]; ok {
				calc.PsdProfile = &prof
			}
			calc.Configuration = network.ConfigRingMain
		}
		sv.finish(log, ring, isolation, totalFR.FlowRateLS)

		return isolation, true
	}

	for pass := 0; pass < MaxRelaxPasses; pass++ {
		adjust, err := sv.AdjustPathHardyCross(assignment, ring, 0)
		if err != nil {
			log.WithError(err).Warn("ring relaxation failed")
			adjust = 0
		}
		for _, e := range ring {
			if e.Value.Type != network.EdgePipe {
				continue
			}
			flow := math.Max(isolation.Flow(e.Value.UID, ""), assignment.Flow(e.UID, ""))
			sv.setRingFlow(sv.pipe(e.Value.UID), flow, sys)
			calc := sv.store.PipeCalc(e.Value.UID)
			calc.Configuration = network.ConfigRingMain
			if assignment.Flow(e.UID, e.From.Key()) >= 0 {
				calc.FlowFrom = network.String(e.From.Connectable)
			} else {
				calc.FlowFrom = network.String(e.To.Connectable)
			}
		}
		log.WithFields(logrus.Fields{"pass": pass, "adjustLS": adjust}).Debug("ring relaxed")
		if math.Abs(adjust) < FlowEpsilonLS {
			break
		}
	}
	sv.finish(log, ring, assignment, totalFR.FlowRateLS)

	return assignment, true
}

func (sv *Solver) finish(log logrus.FieldLogger, ring Ring, flows network.FlowAssignment, totalLS float64) {
	for range ring.Pipes() {
		sv.metrics.PipeSized(metrics.SolverRings)
	}
	sv.metrics.RecordPass(metrics.SolverRings, "sized")
	log.WithFields(logrus.Fields{"pipes": len(ring.Pipes()), "flowLS": totalLS, "edges": len(flows)}).Info("ring sized")
}

// classifyBranches finds the ring's source and sinks, or the reason the
// ring cannot be sized. A flow source standing on the ring is a source in
// its own right.
func (sv *Solver) classifyBranches(ring Ring) (string, []Sink, network.NoFlowReason) {
	onRing := ring.pipeSet()
	var (
		source string
		sinks  []Sink
	)
	for _, e := range ring {
		if e.Value.Type != network.EdgePipe {
			continue
		}
		nuid := e.To.Connectable
		if _, ok := network.Lookup[*network.FlowSource](sv.store, nuid); ok {
			if source != "" {
				return "", nil, network.TooManyFlowSources
			}
			source = nuid
		}

		var demand psd.Profile
		hasDemand := false
		for _, cuid := range sv.store.Connections(nuid) {
			if _, ok := onRing[cuid]; ok {
				continue
			}
			c := sv.store.PipeCalc(cuid)
			if c.PeakFlowRateLS == nil {
				return "", nil, network.UnusualConfiguration
			}
			if c.FlowFrom == nil {
				if *c.PeakFlowRateLS != 0 {
					panic(fmt.Sprintf("ringmain: branch %q has flow but no direction", cuid))
				}

				continue
			}
			if *c.FlowFrom != nuid {
				if source != "" {
					return "", nil, network.TooManyFlowSources
				}
				source = nuid

				continue
			}
			if c.PsdProfile != nil {
				demand = demand.Merge(*c.PsdProfile)
				hasDemand = true
			}
		}
		if hasDemand && !demand.IsZero() {
			sinks = append(sinks, Sink{Node: e.To, Profile: demand})
		}
	}
	if source == "" {
		return "", nil, network.NoSource
	}

	return source, sinks, ""
}

// SinkFlows shares the ring's design flow total between sinks: by dwelling
// count when the total came from dwellings, otherwise by loading units with
// each sink's continuous flow added back. The shares are keyed by sink
// connectable and may add up to more than total.
func SinkFlows(total psd.FlowRate, profile psd.Profile, sinks []Sink) map[string]float64 {
	out := make(map[string]float64, len(sinks))
	for _, sk := range sinks {
		var f float64
		if total.FromDwellings {
			if profile.Dwellings > 0 {
				f = total.FlowRateLS * sk.Profile.Dwellings / profile.Dwellings
			}
		} else {
			fromUnits := total.FlowRateLS - profile.ContinuousFlowLS
			if fromUnits != 0 && profile.Units > 0 {
				f = fromUnits * sk.Profile.Units / profile.Units
			}
			f += sk.Profile.ContinuousFlowLS
		}
		out[sk.Node.Connectable] += f
	}

	return out
}

// seedAssignment walks the ring once from its first edge. The flow picks
// up everything the sinks take when it leaves the source and drops each
// sink's share on the way round, so it closes back to zero.
func seedAssignment(ring Ring, source string, shares map[string]float64) network.FlowAssignment {
	var total float64
	for _, f := range shares {
		total += f
	}

	flows := network.FlowAssignment{}
	var curr float64
	for _, e := range ring {
		if e.Value.Type == network.EdgePipe {
			curr -= shares[e.From.Connectable]
			if e.From.Connectable == source {
				curr += total
			}
		}
		flows.AddFlow(e.UID, e.From.Key(), curr)
	}
	if math.Abs(curr) > FlowEpsilonLS {
		panic(fmt.Sprintf("ringmain: seed flow does not close, %g L/s left", curr))
	}

	return flows
}

// setInitialSizes gives every ring pipe the smallest size of its
// material, or its pinned size, so head losses exist before relaxation.
func (sv *Solver) setInitialSizes(ring Ring) {
	for _, uid := range ring.Pipes() {
		p := sv.pipe(uid)
		ps, err := network.ResolvePipe(sv.store, p)
		if err != nil {
			continue
		}
		size := ps.Material.Smallest()
		if p.DiameterMM != nil {
			if pinned, ok := ps.Material.ByNominal(*p.DiameterMM); ok {
				size = pinned
			}
		}
		calc := sv.store.PipeCalc(uid)
		calc.RealNominalDiameterMM = network.Float(size.NominalMM)
		calc.RealInternalDiameterMM = network.Float(size.InternalMM)
		calc.RealOutsideDiameterMM = network.Float(size.OutsideMM)
	}
}

func (sv *Solver) setRingFlow(p *network.Pipe, flowLS float64, sys *config.FlowSystem) {
	sv.store.PipeCalc(p.ID).PeakFlowRateLS = network.Float(flowLS)
	sv.sizer.SizePipeForFlowRate(p, network.FlowRequirement{FlowLS: flowLS, MaxVelocityMS: sys.MaxVelocityMS})
}

func (sv *Solver) setNoFlowReason(ring Ring, reason network.NoFlowReason) {
	for _, uid := range ring.Pipes() {
		sv.store.PipeCalc(uid).NoFlowAvailableReason = reason
	}
}

func (sv *Solver) pipe(uid string) *network.Pipe {
	p, ok := network.Lookup[*network.Pipe](sv.store, uid)
	if !ok {
		panic(fmt.Sprintf("ringmain: pipe %q missing from store", uid))
	}

	return p
}
