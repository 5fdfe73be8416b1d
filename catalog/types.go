package catalog

import (
	"errors"
	"sort"
)

var (
	// ErrUnknownMaterial indicates a pipe material missing from the catalog.
	ErrUnknownMaterial = errors.New("catalog: unknown pipe material")

	// ErrUnknownFluid indicates a fluid missing from the catalog.
	ErrUnknownFluid = errors.New("catalog: unknown fluid")
)

// Catalog is the read-only reference data the solvers size against.
type Catalog struct {
	Pipes              map[string]*PipeMaterial     `yaml:"pipes" validate:"required,min=1,dive"`
	Fluids             map[string]*Fluid            `yaml:"fluids" validate:"required,min=1,dive"`
	Insulation         map[string]*Insulation       `yaml:"insulation" validate:"dive"`
	Jackets            map[string]*Jacket           `yaml:"jackets" validate:"dive"`
	PSD                map[string]*PSDStandard      `yaml:"psdStandards" validate:"dive"`
	Dwellings          map[string]*DwellingStandard `yaml:"dwellingStandards" validate:"dive"`
	GasDiversification Curve                        `yaml:"gasDiversificationPCT" validate:"dive"`
	Air                AirProperties                `yaml:"air"`
}

// PipeMaterial is one pipe product line. Sizes are kept ordered by
// internal diameter.
type PipeMaterial struct {
	Name  string     `yaml:"name" validate:"required"`
	Sizes []PipeSize `yaml:"sizes" validate:"required,min=1,dive"`

	// HazenWilliamsC is optional; zero means Darcy–Weisbach only.
	HazenWilliamsC float64 `yaml:"hazenWilliamsC" validate:"gte=0"`

	// ConductivityWMK is the wall conductivity; zero drops the wall from
	// heat-loss calculations.
	ConductivityWMK float64 `yaml:"conductivityWMK" validate:"gte=0"`
}

// PipeSize is one row of a material's size table, dimensions in mm.
type PipeSize struct {
	NominalMM  float64 `yaml:"nominalMM" validate:"gt=0"`
	InternalMM float64 `yaml:"internalMM" validate:"gt=0,ltefield=OutsideMM"`
	OutsideMM  float64 `yaml:"outsideMM" validate:"gt=0"`

	// RoughnessMM is the Colebrook–White absolute roughness.
	RoughnessMM float64 `yaml:"roughnessMM" validate:"gte=0"`

	SafeWorkingPressureKPA float64 `yaml:"safeWorkingPressureKPA" validate:"gte=0"`
}

// Fluid properties. Tables are keyed by temperature in °C.
type Fluid struct {
	Name         string  `yaml:"name" validate:"required"`
	DensityKGM3  float64 `yaml:"densityKGM3" validate:"gt=0"`
	ViscosityPAS Curve   `yaml:"dynamicViscosityByTemperature" validate:"required,min=1,dive"`

	// SpecificHeatKJKGK is only needed for heated systems.
	SpecificHeatKJKGK Curve `yaml:"specificHeatByTemperature" validate:"dive"`

	// CalorificValueMJM3 is only set for fuel gases.
	CalorificValueMJM3 float64 `yaml:"calorificValueMJM3" validate:"gte=0"`
}

// Insulation is a lagging material; conductivity is in W/(m·K) as a
// polynomial of the mean temperature in °C.
type Insulation struct {
	Name          string     `yaml:"name" validate:"required"`
	ConductivityW Polynomial `yaml:"conductivityWMK" validate:"required,min=1"`
}

// Jacket is the outer finish of insulation.
type Jacket struct {
	Name       string  `yaml:"name" validate:"required"`
	Emissivity float64 `yaml:"emissivity" validate:"gte=0,lte=1"`
}

// PSDKind selects how a PSD standard turns demand units into flow.
type PSDKind string

const (
	// PSDTable interpolates a loading-unit table.
	PSDTable PSDKind = "table"
	// PSDEquation evaluates a·(ΣQ)^b − c.
	PSDEquation PSDKind = "equation"
)

// PSDStandard maps summed demand units to probable simultaneous flow in L/s.
type PSDStandard struct {
	Name  string  `yaml:"name" validate:"required"`
	Kind  PSDKind `yaml:"kind" validate:"oneof=table equation"`
	Table Curve   `yaml:"table" validate:"required_if=Kind table,dive"`
	A     float64 `yaml:"a"`
	B     float64 `yaml:"b"`
	C     float64 `yaml:"c"`
}

// DwellingStandard maps a dwelling count to flow in L/s.
type DwellingStandard struct {
	Name  string `yaml:"name" validate:"required"`
	Table Curve  `yaml:"table" validate:"required,min=1,dive"`
}

// AirProperties are polynomials in absolute temperature (K).
type AirProperties struct {
	// ConductivityWMK is thermal conductivity in W/(m·K).
	ConductivityWMK Polynomial `yaml:"conductivityWMK" validate:"required,min=1"`
	// KinematicViscosityM2S is in m²/s.
	KinematicViscosityM2S Polynomial `yaml:"kinematicViscosityM2S" validate:"required,min=1"`
	// Prandtl is dimensionless.
	Prandtl Polynomial `yaml:"prandtl" validate:"required,min=1"`
}

// Material returns the named pipe material.
func (c *Catalog) Material(name string) (*PipeMaterial, error) {
	m, ok := c.Pipes[name]
	if !ok {
		return nil, errorf(ErrUnknownMaterial, name)
	}

	return m, nil
}

// Fluid returns the named fluid.
func (c *Catalog) Fluid(name string) (*Fluid, error) {
	f, ok := c.Fluids[name]
	if !ok {
		return nil, errorf(ErrUnknownFluid, name)
	}

	return f, nil
}

// sortSizes orders sizes by internal diameter.
func (m *PipeMaterial) sortSizes() {
	sort.SliceStable(m.Sizes, func(i, j int) bool { return m.Sizes[i].InternalMM < m.Sizes[j].InternalMM })
}

func (m *PipeMaterial) byInternal() Table[PipeSize] {
	t := make(Table[PipeSize], 0, len(m.Sizes))
	for _, s := range m.Sizes {
		t = append(t, Row[PipeSize]{Min: s.InternalMM, Max: s.InternalMM, Value: s})
	}

	return t
}

// AtLeast returns the smallest size whose internal diameter is at least
// internalMM.
func (m *PipeMaterial) AtLeast(internalMM float64) (PipeSize, bool) {
	return m.byInternal().LowerBound(internalMM)
}

// ByNominal returns the size with the given nominal diameter, otherwise
// the largest one below it.
func (m *PipeMaterial) ByNominal(nominalMM float64) (PipeSize, bool) {
	t := make(Table[PipeSize], 0, len(m.Sizes))
	for _, s := range m.Sizes {
		t = append(t, Row[PipeSize]{Min: s.NominalMM, Max: s.NominalMM, Value: s})
	}

	return t.UpperBound(nominalMM)
}

// Smallest returns the size with the smallest internal diameter.
func (m *PipeMaterial) Smallest() PipeSize { return m.Sizes[0] }

// Largest returns the size with the largest internal diameter.
func (m *PipeMaterial) Largest() PipeSize { return m.Sizes[len(m.Sizes)-1] }

// Next returns the size after s in internal-diameter order.
func (m *PipeMaterial) Next(s PipeSize) (PipeSize, bool) {
	for _, c := range m.Sizes {
		if c.InternalMM > s.InternalMM {
			return c, true
		}
	}

	return PipeSize{}, false
}

// Viscosity returns the dynamic viscosity in Pa·s at tempC.
func (f *Fluid) Viscosity(tempC float64) float64 {
	v, _ := Interpolate(f.ViscosityPAS, tempC, false)

	return v
}

// SpecificHeat returns the specific heat in kJ/(kg·K) at tempC, or false
// when the fluid has no table.
func (f *Fluid) SpecificHeat(tempC float64) (float64, bool) {
	return Interpolate(f.SpecificHeatKJKGK, tempC, false)
}
