package network

import "github.com/katalvlaran/hydronet/psd"

// Configuration is the role a pipe was sized in.
type Configuration string

const (
	ConfigNormal   Configuration = "NORMAL"
	ConfigReturn   Configuration = "RETURN"
	ConfigRingMain Configuration = "RING_MAIN"
)

// NoFlowReason explains why a pipe carries no calculated flow.
type NoFlowReason string

const (
	InvalidReturnNetwork    NoFlowReason = "INVALID_RETURN_NETWORK"
	NoSuitablePipeSize      NoFlowReason = "NO_SUITABLE_PIPE_SIZE"
	GasSupplyPressureTooLow NoFlowReason = "GAS_SUPPLY_PRESSURE_TOO_LOW"
	TooManyFlowSources      NoFlowReason = "TOO_MANY_FLOW_SOURCES"
	UnusualConfiguration    NoFlowReason = "UNUSUAL_CONFIGURATION"
	NoIsolationValvesOnMain NoFlowReason = "NO_ISOLATION_VALVES_ON_MAIN"
	NoSource                NoFlowReason = "NO_SOURCE"
)

// Warning is a user-facing annotation that does not stop a calculation.
type Warning string

const (
	WarnMissingBalancingValve  Warning = "MISSING_BALANCING_VALVE_FOR_RETURN"
	WarnNoSuitablePipeSize     Warning = "NO_SUITABLE_PIPE_SIZE"
	WarnIsolationValveRequired Warning = "ISOLATION_VALVES_REQUIRED_ON_RING_MAIN"
	WarnMaxVelocityExceeded    Warning = "MAX_VELOCITY_EXCEEDED"
)

// Warnings is a set kept in insertion order.
type Warnings []Warning

// Add appends w unless present.
func (ws *Warnings) Add(w Warning) {
	for _, x := range *ws {
		if x == w {
			return
		}
	}
	*ws = append(*ws, w)
}

// Has reports whether w is present.
func (ws Warnings) Has(w Warning) bool {
	for _, x := range ws {
		if x == w {
			return true
		}
	}

	return false
}

// PipeCalculation is everything solvers record on a pipe.
type PipeCalculation struct {
	PeakFlowRateLS *float64     `yaml:"peakFlowRateLS,omitempty"`
	PsdProfile     *psd.Profile `yaml:"psdProfile,omitempty"`

	// FlowFrom is the connectable flow enters the pipe from.
	FlowFrom *string `yaml:"flowFrom,omitempty"`

	Configuration         Configuration `yaml:"configuration,omitempty"`
	NoFlowAvailableReason NoFlowReason  `yaml:"noFlowAvailableReason,omitempty"`

	OptimalInnerDiameterMM *float64 `yaml:"optimalInnerDiameterMM,omitempty"`
	RealNominalDiameterMM  *float64 `yaml:"realNominalDiameterMM,omitempty"`
	RealInternalDiameterMM *float64 `yaml:"realInternalDiameterMM,omitempty"`
	RealOutsideDiameterMM  *float64 `yaml:"realOutsideDiameterMM,omitempty"`
	VelocityMS             *float64 `yaml:"velocityMS,omitempty"`
	PressureDropKPA        *float64 `yaml:"pressureDropKPA,omitempty"`

	ReturnFlowRateLS *float64 `yaml:"returnFlowRateLS,omitempty"`
	HeatLossWATT     *float64 `yaml:"heatLossWATT,omitempty"`
	GasFlowRateMJH   *float64 `yaml:"gasFlowRateMJH,omitempty"`

	Warnings Warnings `yaml:"warnings,omitempty"`
}

// ValveCalculation is what solvers record on a valve.
type ValveCalculation struct {
	FlowRateLS      *float64 `yaml:"flowRateLS,omitempty"`
	PressureDropKPA *float64 `yaml:"pressureDropKPA,omitempty"`
	KvValue         *float64 `yaml:"kvValue,omitempty"`
	Warnings        Warnings `yaml:"warnings,omitempty"`
}

// PlantCalculation is what the return balancer records on a plant.
type PlantCalculation struct {
	CirculationFlowRateLS      *float64 `yaml:"circulationFlowRateLS,omitempty"`
	HeatLossKW                 *float64 `yaml:"heatLossKW,omitempty"`
	CirculationPressureLossKPA *float64 `yaml:"circulationPressureLossKPA,omitempty"`
	Warnings                   Warnings `yaml:"warnings,omitempty"`
}

// Float returns a pointer to v.
func Float(v float64) *float64 { return &v }

// String returns a pointer to v.
func String(v string) *string { return &v }

// Value dereferences p, with 0 for nil.
func Value(p *float64) float64 {
	if p == nil {
		return 0
	}

	return *p
}
