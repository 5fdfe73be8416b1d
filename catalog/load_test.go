package catalog_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/hydronet/catalog"
)

func TestDefault(t *testing.T) {
	c := catalog.Default()

	cu, err := c.Material("copper")
	require.NoError(t, err)
	assert.Equal(t, 10.0, cu.Smallest().NominalMM)
	assert.Equal(t, 100.0, cu.Largest().NominalMM)

	s, ok := cu.AtLeast(15)
	require.True(t, ok)
	assert.Equal(t, 20.0, s.NominalMM, "17.27 mm is the first bore over 15 mm")

	s, ok = cu.ByNominal(22)
	require.True(t, ok)
	assert.Equal(t, 20.0, s.NominalMM)

	next, ok := cu.Next(s)
	require.True(t, ok)
	assert.Equal(t, 25.0, next.NominalMM)
	_, ok = cu.Next(cu.Largest())
	assert.False(t, ok)

	water, err := c.Fluid("water")
	require.NoError(t, err)
	assert.InDelta(t, 0.000467, water.Viscosity(60), 1e-12)
	cp, ok := water.SpecificHeat(70)
	require.True(t, ok)
	assert.InDelta(t, 4.191, cp, 1e-9)

	_, err = c.Material("unobtainium")
	assert.ErrorIs(t, err, catalog.ErrUnknownMaterial)
	_, err = c.Fluid("mercury")
	assert.ErrorIs(t, err, catalog.ErrUnknownFluid)

	assert.InDelta(t, 0.0262, c.Air.ConductivityWMK.Eval(300), 5e-4)
	assert.InDelta(t, 0.707, c.Air.Prandtl.Eval(300), 5e-3)
}

func TestDefault_IsFreshCopy(t *testing.T) {
	a := catalog.Default()
	a.Pipes["copper"].Sizes[0].InternalMM = 999
	b := catalog.Default()
	assert.NotEqual(t, 999.0, b.Pipes["copper"].Sizes[0].InternalMM)
}

func TestLoad_Validation(t *testing.T) {
	_, err := catalog.Load(strings.NewReader(`
pipes:
  bad:
    name: Bad
    sizes:
      - {nominalMM: 10, internalMM: 12, outsideMM: 11}
fluids:
  water:
    name: Water
    densityKGM3: 1000
    dynamicViscosityByTemperature: [{key: "20", value: 0.001}]
air: {conductivityWMK: [1], kinematicViscosityM2S: [1], prandtl: [1]}
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validate")

	_, err = catalog.Load(strings.NewReader("pipes: {x: {name: X, colour: red}}"))
	assert.Error(t, err, "unknown fields are rejected")

	_, err = catalog.Load(strings.NewReader(`
fluids:
  water:
    name: Water
    densityKGM3: 1
    dynamicViscosityByTemperature: [{key: "20-10", value: 0.001}]
`))
	assert.Error(t, err, "reversed range")
}

func TestEncodeRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, catalog.Encode(&buf, catalog.Default()))

	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.yaml")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o600))

	c, err := catalog.LoadFile(path)
	require.NoError(t, err)
	assert.Len(t, c.Pipes["copper"].Sizes, 11)
	assert.Len(t, c.GasDiversification, 9)
	assert.Equal(t, catalog.PSDEquation, c.PSD["din1988300Residential"].Kind)

	_, err = catalog.LoadFile(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}
