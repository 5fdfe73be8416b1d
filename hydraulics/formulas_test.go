package hydraulics_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/hydronet/hydraulics"
)

const ga = 9.81

func TestFrictionFactor_Reference(t *testing.T) {
	// Moody chart: ε/D = 1e-4 at Re = 1e5 gives f ≈ 0.0185.
	f, err := hydraulics.FrictionFactor(100, 0.01, 1e5)
	require.NoError(t, err)
	assert.InDelta(t, 0.0185, f, 2e-4)

	// The solution satisfies Colebrook–White.
	rhs := -2 * math.Log10(0.01/100/3.7+2.51/(1e5*math.Sqrt(f)))
	assert.InDelta(t, 1/math.Sqrt(f), rhs, 1e-6)
}

func TestFrictionFactor_LowReynolds(t *testing.T) {
	f, err := hydraulics.FrictionFactor(20, 0.0015, 5)
	require.NoError(t, err)
	assert.Zero(t, f)
}

func TestFrictionFactor_SmoothPipe(t *testing.T) {
	f, err := hydraulics.FrictionFactor(20, 0, 4e4)
	require.NoError(t, err)
	assert.InDelta(t, 0.022, f, 1e-3)
}

func TestConversions(t *testing.T) {
	assert.InDelta(t, 9.81, hydraulics.Head2KPa(1, 1000, ga), 1e-12)
	assert.InDelta(t, 1.0, hydraulics.KPa2Head(9.81, 1000, ga), 1e-12)

	v := hydraulics.VelocityMS(1, 20)
	assert.InDelta(t, 3.1831, v, 1e-4)
	assert.InDelta(t, 20, hydraulics.OptimalInternalMM(1, v), 1e-9)

	assert.InDelta(t, 3.6, hydraulics.Kv(1, 100), 1e-12)
	assert.True(t, math.IsInf(hydraulics.Kv(1, 0), 1))

	assert.InDelta(t, 0.5*4/(2*ga), hydraulics.FittingLossMH(2, 0.5, ga), 1e-12)
}

func TestHeadLoss_SignAndScale(t *testing.T) {
	p := hydraulics.Pipe{InternalMM: 17.27, RoughnessMM: 0.0015, LengthM: 10}
	w := hydraulics.Fluid{DensityKGM3: 1000, ViscosityPAS: 0.001}

	fwd, err := hydraulics.HeadLossMH(p, w, 0.3, ga)
	require.NoError(t, err)
	back, err := hydraulics.HeadLossMH(p, w, -0.3, ga)
	require.NoError(t, err)
	assert.Greater(t, fwd, 0.0)
	assert.InDelta(t, -fwd, back, 1e-12)

	p.LengthM = 20
	double, err := hydraulics.HeadLossMH(p, w, 0.3, ga)
	require.NoError(t, err)
	assert.InDelta(t, 2*fwd, double, 1e-9)

	zero, err := hydraulics.PressureDropKPA(p, w, 0, ga)
	require.NoError(t, err)
	assert.Zero(t, zero)
}

func TestHazenWilliams_Monotone(t *testing.T) {
	a := hydraulics.HazenWilliamsMH(0.0005, 20, 140)
	b := hydraulics.HazenWilliamsMH(0.001, 20, 140)
	assert.Greater(t, b, a)
	assert.InDelta(t, math.Pow(2, 1.852), b/a, 1e-9)
}

func TestTernarySearchMin(t *testing.T) {
	x := hydraulics.TernarySearchMin(func(x float64) float64 { return math.Abs(x - 0.37) }, -2, 2, 1e-9)
	assert.InDelta(t, 0.37, x, 1e-6)

	x = hydraulics.TernarySearchMin(func(x float64) float64 { return (x + 1) * (x + 1) }, 3, -3, 1e-9)
	assert.InDelta(t, -1, x, 1e-6)

	lo, hi := hydraulics.Bracket(0.1, 1)
	assert.Equal(t, -1.0, lo)
	assert.Equal(t, 1.0, hi)
	lo, hi = hydraulics.Bracket(-3, 1)
	assert.Equal(t, -6.0, lo)
	assert.Equal(t, 6.0, hi)
}
