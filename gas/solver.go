package gas

import (
	"context"
	"errors"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/hydronet/catalog"
	"github.com/katalvlaran/hydronet/hydraulics"
	"github.com/katalvlaran/hydronet/logging"
	"github.com/katalvlaran/hydronet/metrics"
	"github.com/katalvlaran/hydronet/network"
)

// Solver sizes gas components against one store.
type Solver struct {
	store   network.Store
	metrics *metrics.Registry
}

// Option configures a Solver.
type Option func(*Solver)

// WithMetrics records component outcomes and sized pipes in m.
func WithMetrics(m *metrics.Registry) Option { return func(sv *Solver) { sv.metrics = m } }

// NewSolver returns a Solver writing to s.
func NewSolver(s network.Store, opts ...Option) *Solver {
	sv := &Solver{store: s}
	for _, o := range opts {
		o(sv)
	}

	return sv
}

// CalculateAll sizes the component of every gas flow source and gas
// regulator in g. It returns the number of components found.
func (sv *Solver) CalculateAll(ctx context.Context, g *network.FlowGraph) int {
	log := logging.Logger(ctx)
	n := 0
	for _, e := range sv.store.Entities() {
		switch x := e.(type) {
		case *network.FlowSource:
		case *network.DirectedValve:
			if x.Valve != network.GasRegulator {
				continue
			}
		default:
			continue
		}

		comp, err := GetAndFillInGasComponent(sv.store, g, e.UID())
		if errors.Is(err, ErrNotGas) {
			continue
		}
		if err != nil {
			log.WithError(err).Warn("gas component skipped")
			continue
		}
		sv.CalculateGas(ctx, comp)
		n++
	}

	return n
}

// CalculateGas sizes every pipe of comp. When the supply cannot cover the
// most demanding terminal every pipe is tagged GAS_SUPPLY_PRESSURE_TOO_LOW
// instead. It returns the number of pipes sized.
//
// Each pipe gets the Spitzglass diameter for its own load over the
// component's longest run and the whole pressure budget, rounded up to the
// catalog, then stepped up while the gas is faster than the system allows
// at the lowest pressure in the component.
func (sv *Solver) CalculateGas(ctx context.Context, comp *Component) int {
	log := logging.Logger(ctx).WithFields(logrus.Fields{
		"entry": comp.Entry, "supplyKPA": comp.SupplyKPA, "requiredKPA": comp.MaxRequiredKPA,
	})

	if comp.SupplyKPA <= comp.MaxRequiredKPA {
		for _, uid := range comp.Pipes {
			sv.store.PipeCalc(uid).NoFlowAvailableReason = network.GasSupplyPressureTooLow
		}
		log.Warn("gas supply pressure too low")
		sv.metrics.RecordPass(metrics.SolverGas, string(network.GasSupplyPressureTooLow))

		return 0
	}

	sized := 0
	for _, uid := range comp.Pipes {
		if sv.sizePipe(comp, uid) {
			sized++
			sv.metrics.PipeSized(metrics.SolverGas)
		}
	}
	log.WithFields(logrus.Fields{"lengthM": comp.LengthM, "pipes": sized}).Info("gas component sized")
	sv.metrics.RecordPass(metrics.SolverGas, "sized")

	return sized
}

func (sv *Solver) sizePipe(comp *Component, uid string) bool {
	p, ok := network.Lookup[*network.Pipe](sv.store, uid)
	if !ok {
		return false
	}
	calc := sv.store.PipeCalc(uid)
	if calc.GasFlowRateMJH == nil {
		// On a loop: no single downstream load to size for.
		calc.NoFlowAvailableReason = network.UnusualConfiguration

		return false
	}
	ps, err := network.ResolvePipe(sv.store, p)
	if err != nil {
		return false
	}

	mjh := *calc.GasFlowRateMJH
	optimal := SizeGasPipe(mjh, comp.LengthM, comp.SupplyKPA, comp.MaxRequiredKPA, comp.Gas)
	calc.OptimalInnerDiameterMM = network.Float(optimal)

	var size catalog.PipeSize
	if p.DiameterMM != nil {
		size, ok = ps.Material.ByNominal(*p.DiameterMM)
	} else {
		size, ok = ps.Material.AtLeast(optimal)
	}
	if !ok {
		calc.NoFlowAvailableReason = network.NoSuitablePipeSize

		return false
	}

	cv := ps.Fluid.CalorificValueMJM3
	velocity := VelocityMS(mjh, cv, comp.MaxRequiredKPA, size.InternalMM)
	for velocity > comp.System.MaxVelocityMS {
		if p.DiameterMM != nil {
			calc.Warnings.Add(network.WarnMaxVelocityExceeded)

			break
		}
		next, ok := ps.Material.Next(size)
		if !ok {
			calc.NoFlowAvailableReason = network.NoSuitablePipeSize

			return false
		}
		size = next
		velocity = VelocityMS(mjh, cv, comp.MaxRequiredKPA, size.InternalMM)
	}

	calc.RealNominalDiameterMM = network.Float(size.NominalMM)
	calc.RealInternalDiameterMM = network.Float(size.InternalMM)
	calc.RealOutsideDiameterMM = network.Float(size.OutsideMM)
	calc.VelocityMS = network.Float(velocity)

	// Friction drop at the actual volume flow, for pressure reporting.
	flowLS := velocity * hydraulicArea(size.InternalMM) * 1000
	params := sv.store.Params()
	drop, err := hydraulics.PressureDropKPA(
		network.HydraulicPipe(p, size),
		hydraulics.Fluid{DensityKGM3: ps.Fluid.DensityKGM3, ViscosityPAS: ps.Fluid.Viscosity(ps.System.TemperatureC)},
		flowLS, params.GravitationalAcceleration,
	)
	if err == nil {
		calc.PressureDropKPA = network.Float(drop * (1 + params.PipePressureLossAddOnPCT/100))
	}

	return true
}

func hydraulicArea(internalMM float64) float64 {
	d := internalMM / 1000

	return math.Pi * d * d / 4
}
