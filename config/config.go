package config

import (
	"io"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/hydronet/catalog"
)

// ErrUnknownSystem indicates a flow-system uid missing from the document.
var ErrUnknownSystem = errors.New("config: unknown flow system")

// RingMainMethod selects how ring mains are sized.
type RingMainMethod string

const (
	// IsolationCases sizes each ring pipe for the worst one-sided feed
	// across the flagged isolation valves.
	IsolationCases RingMainMethod = "ISOLATION_CASES"
	// PSDFlowRateDistributed relaxes the PSD flow around the ring.
	PSDFlowRateDistributed RingMainMethod = "PSD_FLOW_RATE_DISTRIBUTED"
	// MaxDistributedAndIsolationCases takes the larger of both.
	MaxDistributedAndIsolationCases RingMainMethod = "MAX_DISTRIBUTED_AND_ISOLATION_CASES"
)

// UsesIsolationCases reports whether m runs the isolation sweeps.
func (m RingMainMethod) UsesIsolationCases() bool {
	switch m {
	case IsolationCases, MaxDistributedAndIsolationCases:
		return true
	case PSDFlowRateDistributed:
		return false
	}
	panic("config: unknown ring main method " + string(m))
}

// UsesDistribution reports whether m runs the loop relaxation.
func (m RingMainMethod) UsesDistribution() bool {
	switch m {
	case PSDFlowRateDistributed, MaxDistributedAndIsolationCases:
		return true
	case IsolationCases:
		return false
	}
	panic("config: unknown ring main method " + string(m))
}

// CalculationParams are the document-wide calculation settings.
type CalculationParams struct {
	RingMainCalculationMethod RingMainMethod `yaml:"ringMainCalculationMethod" validate:"oneof=ISOLATION_CASES PSD_FLOW_RATE_DISTRIBUTED MAX_DISTRIBUTED_AND_ISOLATION_CASES"`
	RoomTemperatureC          float64        `yaml:"roomTemperatureC" validate:"gte=-50,lte=60"`
	WindSpeedForHeatLossMS    float64        `yaml:"windSpeedForHeatLossMS" validate:"gte=0"`
	GravitationalAcceleration float64        `yaml:"gravitationalAcceleration" validate:"gt=0"`
	PipePressureLossAddOnPCT  float64        `yaml:"pipePressureLossAddOnPCT" validate:"gte=0"`
}

// FlowSystem is one fluid network of the document.
type FlowSystem struct {
	UID           string  `yaml:"uid" validate:"required"`
	Name          string  `yaml:"name"`
	Fluid         string  `yaml:"fluid" validate:"required"`
	Material      string  `yaml:"material" validate:"required"`
	TemperatureC  float64 `yaml:"temperatureC"`
	MaxVelocityMS float64 `yaml:"maxVelocityMS" validate:"gt=0"`

	// ReturnMaxVelocityMS limits circulation-only flow; zero falls back to
	// MaxVelocityMS.
	ReturnMaxVelocityMS float64 `yaml:"returnMaxVelocityMS" validate:"gte=0"`

	SpareCapacityPCT float64 `yaml:"spareCapacityPCT" validate:"gte=0"`

	Insulation            string  `yaml:"insulation,omitempty"`
	InsulationThicknessMM float64 `yaml:"insulationThicknessMM" validate:"gte=0"`
	Jacket                string  `yaml:"jacket,omitempty"`

	PSDStandard      string `yaml:"psdStandard,omitempty"`
	DwellingStandard string `yaml:"dwellingStandard,omitempty"`
}

// ReturnVelocityMS is the tighter of the two velocity limits.
func (s *FlowSystem) ReturnVelocityMS() float64 {
	if s.ReturnMaxVelocityMS > 0 && s.ReturnMaxVelocityMS < s.MaxVelocityMS {
		return s.ReturnMaxVelocityMS
	}

	return s.MaxVelocityMS
}

// Document is the set of parameters one solve pass runs under.
type Document struct {
	FlowSystems []FlowSystem      `yaml:"flowSystems" validate:"dive"`
	Params      CalculationParams `yaml:"params"`
}

var validate = validator.New()

// Default returns the built-in flow systems and parameters.
func Default() Document {
	return Document{
		FlowSystems: []FlowSystem{
			{
				UID: "coldWater", Name: "Cold Water", Fluid: "water", Material: "copper",
				TemperatureC: 20, MaxVelocityMS: 1.5, PSDStandard: "loadingUnits", DwellingStandard: "dwellings",
			},
			{
				UID: "hotWater", Name: "Hot Water", Fluid: "water", Material: "copper",
				TemperatureC: 60, MaxVelocityMS: 1.5, ReturnMaxVelocityMS: 1.0,
				Insulation: "elastomericFoam", InsulationThicknessMM: 13, Jacket: "pvc",
				PSDStandard: "loadingUnits", DwellingStandard: "dwellings",
			},
			{
				UID: "naturalGas", Name: "Natural Gas", Fluid: "naturalGas", Material: "gasPE",
				TemperatureC: 20, MaxVelocityMS: 20,
			},
			{
				UID: "lpg", Name: "LPG", Fluid: "LPG", Material: "gasPE",
				TemperatureC: 20, MaxVelocityMS: 20,
			},
		},
		Params: CalculationParams{
			RingMainCalculationMethod: IsolationCases,
			RoomTemperatureC:          20,
			WindSpeedForHeatLossMS:    0,
			GravitationalAcceleration: 9.81,
			PipePressureLossAddOnPCT:  0,
		},
	}
}

// System returns the flow system with the given uid.
func (d *Document) System(uid string) (*FlowSystem, error) {
	for i := range d.FlowSystems {
		if d.FlowSystems[i].UID == uid {
			return &d.FlowSystems[i], nil
		}
	}

	return nil, errors.Wrap(ErrUnknownSystem, uid)
}

// Validate checks struct constraints and that every system is unique.
func (d *Document) Validate() error {
	if err := validate.Struct(d); err != nil {
		return errors.Wrap(err, "config: invalid document")
	}
	seen := make(map[string]struct{}, len(d.FlowSystems))
	for _, s := range d.FlowSystems {
		if _, dup := seen[s.UID]; dup {
			return errors.Errorf("config: duplicate flow system %q", s.UID)
		}
		seen[s.UID] = struct{}{}
	}

	return nil
}

// CheckCatalog verifies that every catalog key a system names exists.
func (d *Document) CheckCatalog(c *catalog.Catalog) error {
	for _, s := range d.FlowSystems {
		if _, err := c.Fluid(s.Fluid); err != nil {
			return errors.Wrapf(err, "config: system %q", s.UID)
		}
		if _, err := c.Material(s.Material); err != nil {
			return errors.Wrapf(err, "config: system %q", s.UID)
		}
		if s.Insulation != "" && c.Insulation[s.Insulation] == nil {
			return errors.Errorf("config: system %q: unknown insulation %q", s.UID, s.Insulation)
		}
		if s.Jacket != "" && c.Jackets[s.Jacket] == nil {
			return errors.Errorf("config: system %q: unknown jacket %q", s.UID, s.Jacket)
		}
		if s.PSDStandard != "" && c.PSD[s.PSDStandard] == nil {
			return errors.Errorf("config: system %q: unknown PSD standard %q", s.UID, s.PSDStandard)
		}
		if s.DwellingStandard != "" && c.Dwellings[s.DwellingStandard] == nil {
			return errors.Errorf("config: system %q: unknown dwelling standard %q", s.UID, s.DwellingStandard)
		}
	}

	return nil
}

// Load decodes a document from r over Default and validates it. A
// flowSystems list in r replaces the default list as a whole.
func Load(r io.Reader) (*Document, error) {
	d := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&d); err != nil && !errors.Is(err, io.EOF) {
		return nil, errors.Wrap(err, "config: decode")
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}

	return &d, nil
}

// LoadFile is Load on the named file.
func LoadFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "config: open %s", path)
	}
	defer f.Close()

	d, err := Load(f)
	if err != nil {
		return nil, errors.Wrapf(err, "config: %s", path)
	}

	return d, nil
}
