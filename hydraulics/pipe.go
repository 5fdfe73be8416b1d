package hydraulics

import "math"

// Pipe is the geometry a head-loss calculation needs.
type Pipe struct {
	InternalMM  float64
	RoughnessMM float64
	LengthM     float64
}

// Fluid is the state a head-loss calculation needs.
type Fluid struct {
	DensityKGM3  float64
	ViscosityPAS float64
}

// HeadLossMH returns the Darcy–Weisbach head loss of flowLS through p.
// The sign follows the flow: a negative flow gives a negative loss.
func HeadLossMH(p Pipe, f Fluid, flowLS, ga float64) (float64, error) {
	if flowLS == 0 || p.LengthM == 0 {
		return 0, nil
	}
	v := VelocityMS(math.Abs(flowLS), p.InternalMM)
	ff, err := FrictionFactor(p.InternalMM, p.RoughnessMM, Reynolds(f.DensityKGM3, v, p.InternalMM, f.ViscosityPAS))
	if err != nil {
		return 0, err
	}

	return math.Copysign(DarcyWeisbachMH(ff, p.LengthM, p.InternalMM, v, ga), flowLS), nil
}

// PressureDropKPA is HeadLossMH converted to kPa.
func PressureDropKPA(p Pipe, f Fluid, flowLS, ga float64) (float64, error) {
	h, err := HeadLossMH(p, f, flowLS, ga)
	if err != nil {
		return 0, err
	}

	return Head2KPa(h, f.DensityKGM3, ga), nil
}
