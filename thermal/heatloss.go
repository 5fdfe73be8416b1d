package thermal

import (
	"errors"
	"math"

	"github.com/katalvlaran/hydronet/catalog"
)

// ErrBadGeometry indicates missing or inconsistent pipe dimensions.
var ErrBadGeometry = errors.New("thermal: bad pipe geometry")

const (
	stefanBoltzmann = 5.670374419e-8
	kelvin          = 273.15
	gravity         = 9.81

	// MaxPasses bounds the surface-temperature iteration.
	MaxPasses = 10
	// MinPasses is the number of passes required before convergence counts.
	MinPasses = 5
	// Tolerance on successive heat flows, W/m.
	Tolerance = 1e-7
)

// Input describes one pipe run and its surroundings.
type Input struct {
	InternalMM float64
	OutsideMM  float64

	// WallConductivityWMK of zero ignores the wall.
	WallConductivityWMK float64

	// Insulation may be nil for a bare pipe; ThicknessMM is then ignored.
	Insulation  *catalog.Insulation
	ThicknessMM float64

	// Emissivity of the outer surface.
	Emissivity float64

	Air catalog.AirProperties

	FluidC      float64
	AmbientC    float64
	WindSpeedMS float64
}

// Result of HeatLossPerMetre. WattPerM is positive when heat leaves the
// fluid.
type Result struct {
	WattPerM  float64
	SurfaceC  float64
	Passes    int
	Converged bool
}

type hilpert struct{ c, m float64 }

// hilpertRows are the cross-flow cylinder coefficients, keyed by Re.
var hilpertRows = catalog.Table[hilpert]{
	{Min: 0.4, Max: 4, Value: hilpert{0.989, 0.330}},
	{Min: 4, Max: 40, Value: hilpert{0.911, 0.385}},
	{Min: 40, Max: 4000, Value: hilpert{0.683, 0.466}},
	{Min: 4000, Max: 40000, Value: hilpert{0.193, 0.618}},
	{Min: 40000, Max: 400000, Value: hilpert{0.027, 0.805}},
}

// HeatLossPerMetre returns the heat flow out of one metre of pipe. The
// result is usable only when Converged is set.
func HeatLossPerMetre(in Input) (Result, error) {
	if in.InternalMM <= 0 || in.OutsideMM < in.InternalMM || in.ThicknessMM < 0 {
		return Result{}, ErrBadGeometry
	}

	r1 := in.InternalMM / 2000
	r2 := in.OutsideMM / 2000
	r3 := r2
	if in.Insulation != nil {
		r3 += in.ThicknessMM / 1000
	}

	var rWall float64
	if in.WallConductivityWMK > 0 {
		rWall = math.Log(r2/r1) / (2 * math.Pi * in.WallConductivityWMK)
	}

	lo, hi := math.Min(in.FluidC, in.AmbientC), math.Max(in.FluidC, in.AmbientC)
	clamp := func(t float64) float64 { return math.Max(lo, math.Min(hi, t)) }

	// eval returns q and the surface temperature implied by a guess ts.
	eval := func(ts float64) (float64, float64) {
		rIns := 0.0
		if in.Insulation != nil && r3 > r2 {
			k := in.Insulation.ConductivityW.Eval((in.FluidC + ts) / 2)
			rIns = math.Log(r3/r2) / (2 * math.Pi * k)
		}
		h := outerCoefficient(in, ts, 2*r3)
		rOut := 1 / (h * math.Pi * 2 * r3)
		q := (in.FluidC - in.AmbientC) / (rWall + rIns + rOut)

		return q, in.AmbientC + q*rOut
	}

	// 1) Two seeds: the midpoint guess and its fixed-point image.
	x0 := (in.FluidC + in.AmbientC) / 2
	q0, y0 := eval(x0)
	x1 := clamp(y0)
	res := Result{WattPerM: q0, SurfaceC: x0, Passes: 1}

	// 2) Secant on g(ts) = image(ts) − ts.
	g0 := y0 - x0
	for res.Passes < MaxPasses {
		q1, y1 := eval(x1)
		res.Passes++
		dq := math.Abs(q1 - res.WattPerM)
		res.WattPerM, res.SurfaceC = q1, x1
		if res.Passes >= MinPasses && dq < Tolerance {
			res.Converged = true

			break
		}

		g1 := y1 - x1
		next := y1
		if d := g1 - g0; d != 0 {
			next = x1 - g1*(x1-x0)/d
		}
		x0, g0 = x1, g1
		x1 = clamp(next)
	}

	return res, nil
}

// outerCoefficient is h_conv + h_rad at surface temperature ts for an
// outer diameter d in metres.
func outerCoefficient(in Input, ts, d float64) float64 {
	tsK, taK := ts+kelvin, in.AmbientC+kelvin
	film := (tsK + taK) / 2

	k := in.Air.ConductivityWMK.Eval(film)
	nu := in.Air.KinematicViscosityM2S.Eval(film)
	pr := in.Air.Prandtl.Eval(film)

	// Forced convection.
	var nuForced float64
	if in.WindSpeedMS > 0 {
		re := in.WindSpeedMS * d / nu
		row, ok := hilpertRows.UpperBound(re)
		if !ok {
			row = hilpertRows[0].Value
		}
		nuForced = row.c * math.Pow(re, row.m) * math.Cbrt(pr)
	}

	// Free convection, Churchill–Chu for a horizontal cylinder.
	alpha := nu / pr
	ra := gravity * (1 / film) * math.Abs(tsK-taK) * d * d * d / (nu * alpha)
	den := math.Pow(1+math.Pow(0.559/pr, 9.0/16), 8.0/27)
	nuFree := math.Pow(0.60+0.387*math.Pow(ra, 1.0/6)/den, 2)

	nuMixed := math.Cbrt(nuForced*nuForced*nuForced + nuFree*nuFree*nuFree)
	hConv := nuMixed * k / d
	hRad := in.Emissivity * stefanBoltzmann * (tsK*tsK + taK*taK) * (tsK + taK)

	return hConv + hRad
}
