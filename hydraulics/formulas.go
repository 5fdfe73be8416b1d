package hydraulics

import (
	"errors"
	"fmt"
	"math"
)

// ErrNoConvergence indicates that the Colebrook iteration did not settle.
var ErrNoConvergence = errors.New("hydraulics: friction factor did not converge")

const (
	// Convergence thresholds of the Colebrook iteration.
	eps    = 1e-10
	epsRel = 1e-8

	maxFrictionIterations = 500
)

// Reynolds returns the Reynolds number of a full-bore flow.
func Reynolds(densityKGM3, velocityMS, internalMM, viscosityPAS float64) float64 {
	return densityKGM3 * velocityMS * (internalMM / 1000) / viscosityPAS
}

// FrictionFactor solves Colebrook–White for the Darcy friction factor by
// fixed-point iteration. Below Re = 10 it returns 0: the iteration is
// unstable there and such flows are negligible.
func FrictionFactor(internalMM, roughnessMM, re float64) (float64, error) {
	if re < 10 {
		return 0, nil
	}

	curr := math.Pow(1.14+2*math.Log10(internalMM/roughnessMM), -2)
	if roughnessMM == 0 {
		// Smooth pipe: seed with Blasius.
		curr = 0.316 / math.Pow(re, 0.25)
	}
	for i := 0; ; i++ {
		next := math.Pow(-2*math.Log10(roughnessMM/internalMM/3.7+2.51/(re*math.Sqrt(curr))), -2)
		if math.Abs(next-curr) < eps || math.Abs(next-curr)/curr < epsRel {
			return next, nil
		}
		curr = next
		if i >= maxFrictionIterations {
			return 0, fmt.Errorf("hydraulics: Re=%g D=%gmm: %w", re, internalMM, ErrNoConvergence)
		}
	}
}

// DarcyWeisbachMH is the friction head loss over lengthM.
func DarcyWeisbachMH(f, lengthM, internalMM, velocityMS, ga float64) float64 {
	return f * lengthM * velocityMS * velocityMS / ((internalMM / 1000) * ga * 2)
}

// HazenWilliamsMH is the head loss per metre for flowM3S through a pipe
// with Hazen–Williams coefficient c.
func HazenWilliamsMH(flowM3S, internalMM, c float64) float64 {
	return math.Pow((3.3*1e6*flowM3S)/(math.Pow(internalMM, 2.63)*c), 1.852)
}

// FittingLossMH is the minor loss k·v²/2g.
func FittingLossMH(velocityMS, k, ga float64) float64 {
	return k * velocityMS * velocityMS / (2 * ga)
}

// Head2KPa converts metres of fluid to kPa.
func Head2KPa(mh, densityKGM3, ga float64) float64 { return densityKGM3 * ga * mh / 1000 }

// KPa2Head converts kPa to metres of fluid.
func KPa2Head(kpa, densityKGM3, ga float64) float64 { return 1000 * kpa / (densityKGM3 * ga) }

// VelocityMS is the mean velocity of flowLS through internalMM.
func VelocityMS(flowLS, internalMM float64) float64 {
	return 4000 * flowLS / (math.Pi * internalMM * internalMM)
}

// OptimalInternalMM is the internal diameter at which flowLS runs at
// exactly maxVelocityMS.
func OptimalInternalMM(flowLS, maxVelocityMS float64) float64 {
	return math.Sqrt(4000 * flowLS / (math.Pi * maxVelocityMS))
}

// Kv returns the valve flow coefficient for flowLS at dropKPA:
// Q[m³/h]·sqrt(1/ΔP[bar]). A non-positive drop yields +Inf.
func Kv(flowLS, dropKPA float64) float64 {
	if dropKPA <= 0 {
		return math.Inf(1)
	}

	return flowLS * 3.6 * math.Sqrt(1/(dropKPA/100))
}
