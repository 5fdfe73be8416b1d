package network

import (
	"math"

	"github.com/katalvlaran/hydronet/catalog"
	"github.com/katalvlaran/hydronet/hydraulics"
)

// FlowRequirement is one flow a pipe must carry within a velocity limit.
type FlowRequirement struct {
	FlowLS        float64
	MaxVelocityMS float64
}

// PipeSizer chooses a catalog size for a pipe that satisfies every
// requirement at once and records the result on the pipe's calculation.
// ok is false when no catalog size fits; the returned size is then the
// largest one available.
type PipeSizer interface {
	SizePipeForFlowRate(p *Pipe, reqs ...FlowRequirement) (catalog.PipeSize, bool)
}

// CatalogSizer sizes pipes against the store's catalog.
type CatalogSizer struct {
	store Store
}

// NewCatalogSizer returns a sizer over s.
func NewCatalogSizer(s Store) *CatalogSizer { return &CatalogSizer{store: s} }

// SizePipeForFlowRate picks the smallest size whose internal diameter
// keeps every requirement, scaled by the system's spare capacity, within
// its velocity limit. A pipe with a pinned diameter keeps it. It writes
// the diameters, velocity and pressure drop at the largest flow. When the
// catalog runs out the largest size is written and the pipe is tagged
// NO_SUITABLE_PIPE_SIZE unless it already carries a reason.
func (cs *CatalogSizer) SizePipeForFlowRate(p *Pipe, reqs ...FlowRequirement) (catalog.PipeSize, bool) {
	ps, err := ResolvePipe(cs.store, p)
	if err != nil || len(reqs) == 0 {
		return catalog.PipeSize{}, false
	}
	calc := cs.store.PipeCalc(p.ID)
	spare := 1 + ps.System.SpareCapacityPCT/100

	optimal, design := 0.0, 0.0
	for _, r := range reqs {
		flow := math.Abs(r.FlowLS) * spare
		optimal = math.Max(optimal, hydraulics.OptimalInternalMM(flow, r.MaxVelocityMS))
		design = math.Max(design, math.Abs(r.FlowLS))
	}
	calc.OptimalInnerDiameterMM = Float(optimal)

	var (
		size catalog.PipeSize
		ok   bool
	)
	if p.DiameterMM != nil {
		size, ok = ps.Material.ByNominal(*p.DiameterMM)
	} else {
		size, ok = ps.Material.AtLeast(optimal)
	}
	if !ok {
		size = ps.Material.Largest()
		calc.Warnings.Add(WarnNoSuitablePipeSize)
		if calc.NoFlowAvailableReason == "" {
			calc.NoFlowAvailableReason = NoSuitablePipeSize
		}
	}
	calc.RealNominalDiameterMM = Float(size.NominalMM)
	calc.RealInternalDiameterMM = Float(size.InternalMM)
	calc.RealOutsideDiameterMM = Float(size.OutsideMM)
	calc.VelocityMS = Float(hydraulics.VelocityMS(design, size.InternalMM))
	for _, r := range reqs {
		if hydraulics.VelocityMS(math.Abs(r.FlowLS), size.InternalMM) > r.MaxVelocityMS {
			calc.Warnings.Add(WarnMaxVelocityExceeded)
		}
	}

	params := cs.store.Params()
	drop, err := hydraulics.PressureDropKPA(
		HydraulicPipe(p, size),
		hydraulics.Fluid{DensityKGM3: ps.Fluid.DensityKGM3, ViscosityPAS: ps.Fluid.Viscosity(ps.System.TemperatureC)},
		design, params.GravitationalAcceleration,
	)
	if err == nil {
		calc.PressureDropKPA = Float(drop * (1 + params.PipePressureLossAddOnPCT/100))
	} else {
		calc.PressureDropKPA = nil
	}

	return size, ok
}

// HydraulicPipe is p at the given catalog size.
func HydraulicPipe(p *Pipe, size catalog.PipeSize) hydraulics.Pipe {
	return hydraulics.Pipe{InternalMM: size.InternalMM, RoughnessMM: size.RoughnessMM, LengthM: p.LengthM}
}

// CurrentSize is the catalog size last recorded on p, if any.
func CurrentSize(s Store, p *Pipe) (catalog.PipeSize, bool) {
	calc := s.PipeCalc(p.ID)
	if calc.RealInternalDiameterMM == nil {
		return catalog.PipeSize{}, false
	}
	ps, err := ResolvePipe(s, p)
	if err != nil {
		return catalog.PipeSize{}, false
	}

	return ps.Material.AtLeast(*calc.RealInternalDiameterMM)
}
