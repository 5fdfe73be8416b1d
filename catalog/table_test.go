package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/hydronet/catalog"
)

// ranges: [0,10]→"a", [20,30]→"b", 40→"c".
func ranges() catalog.Table[string] {
	return catalog.Table[string]{
		{Min: 20, Max: 30, Value: "b"},
		{Min: 0, Max: 10, Value: "a"},
		{Min: 40, Max: 40, Value: "c"},
	}
}

func TestTable_LowerBound(t *testing.T) {
	tbl := ranges()
	cases := []struct {
		x    float64
		want string
		ok   bool
	}{
		{5, "a", true},
		{10, "a", true},
		{15, "b", true},
		{35, "c", true},
		{40, "c", true},
		{-3, "a", true},
		{41, "", false},
	}
	for _, c := range cases {
		got, ok := tbl.LowerBound(c.x)
		assert.Equal(t, c.ok, ok, "x=%v", c.x)
		assert.Equal(t, c.want, got, "x=%v", c.x)
	}
}

func TestTable_UpperBound(t *testing.T) {
	tbl := ranges()
	cases := []struct {
		x    float64
		want string
		ok   bool
	}{
		{5, "a", true},
		{15, "a", true},
		{31, "b", true},
		{100, "c", true},
		{-1, "", false},
	}
	for _, c := range cases {
		got, ok := tbl.UpperBound(c.x)
		assert.Equal(t, c.ok, ok, "x=%v", c.x)
		assert.Equal(t, c.want, got, "x=%v", c.x)
	}
}

func TestInterpolate(t *testing.T) {
	curve := catalog.Curve{
		{Min: 0, Max: 0, Value: 0},
		{Min: 10, Max: 10, Value: 1},
		{Min: 20, Max: 30, Value: 3},
	}

	v, ok := catalog.Interpolate(curve, 5, false)
	require.True(t, ok)
	assert.InDelta(t, 0.5, v, 1e-12)

	v, _ = catalog.Interpolate(curve, 15, false)
	assert.InDelta(t, 2.0, v, 1e-12)

	v, _ = catalog.Interpolate(curve, 25, false)
	assert.InDelta(t, 3.0, v, 1e-12, "inside a range row")

	v, ok = catalog.Interpolate(curve, 50, false)
	assert.True(t, ok)
	assert.InDelta(t, 3.0, v, 1e-12, "clamped")

	_, ok = catalog.Interpolate(curve, 50, true)
	assert.False(t, ok, "strict refuses to extrapolate")

	_, ok = catalog.Interpolate(nil, 1, false)
	assert.False(t, ok)
}

func TestParseRange(t *testing.T) {
	lo, hi, err := catalog.ParseRange("10-20")
	require.NoError(t, err)
	assert.Equal(t, [2]float64{10, 20}, [2]float64{lo, hi})

	lo, hi, err = catalog.ParseRange(" 4.5 ")
	require.NoError(t, err)
	assert.Equal(t, [2]float64{4.5, 4.5}, [2]float64{lo, hi})

	lo, hi, err = catalog.ParseRange("-10--5")
	require.NoError(t, err)
	assert.Equal(t, [2]float64{-10, -5}, [2]float64{lo, hi})

	_, _, err = catalog.ParseRange("1-2-3")
	assert.Error(t, err)
	_, _, err = catalog.ParseRange("x")
	assert.Error(t, err)
}

func TestPolynomial_Eval(t *testing.T) {
	p := catalog.Polynomial{1, 2, 3}
	assert.InDelta(t, 1+4+12.0, p.Eval(2), 1e-12)
	assert.Zero(t, catalog.Polynomial(nil).Eval(7))
}
