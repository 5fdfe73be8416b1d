package gas

import (
	"math"

	"github.com/katalvlaran/hydronet/config"
)

// Type is a fuel gas the sizing correlations know.
type Type string

const (
	NaturalGas Type = "naturalGas"
	LPG        Type = "LPG"
)

// SystemGas returns the gas a flow system carries, if any.
func SystemGas(sys *config.FlowSystem) (Type, bool) {
	switch Type(sys.Fluid) {
	case NaturalGas:
		return NaturalGas, true
	case LPG:
		return LPG, true
	}

	return "", false
}

// HighPressureKPA is the mean pressure from which the high-pressure form
// of the correlation applies.
const HighPressureKPA = 10.3

const (
	atmospherePSI = 14.7
	atmosphereKPA = 101.325
	kpaToPSI      = 0.145038
	kpaToInchesWC = 0.10199773339984054 * 39.3701
	metreToFeet   = 3.28084
	inchToMM      = 25.4
)

// relativeDensity and compressibility are the Spitzglass Cr and Y of t.
func (t Type) relativeDensity() float64 {
	if t == NaturalGas {
		return 0.6094
	}

	return 1.2462
}

func (t Type) compressibility() float64 {
	if t == NaturalGas {
		return 0.9992
	}

	return 0.9910
}

// cubicFeetPerHour converts an energy rate to standard gas volume.
func (t Type) cubicFeetPerHour(mjh float64) float64 {
	if t == NaturalGas {
		return mjh * 0.94782
	}

	return mjh / 2.620
}

// SizeGasPipe returns the internal diameter in mm that carries inputMJH
// over lengthM while the pressure falls from startKPA to endKPA (gauge).
// The high-pressure form is used when the mean of the two pressures is at
// least HighPressureKPA. endKPA must be below startKPA.
func SizeGasPipe(inputMJH, lengthM, startKPA, endKPA float64, t Type) float64 {
	cfh := t.cubicFeetPerHour(inputMJH)
	ft := lengthM * metreToFeet
	cr := t.relativeDensity()

	if (startKPA+endKPA)/2 >= HighPressureKPA {
		up := startKPA*kpaToPSI + atmospherePSI
		down := endKPA*kpaToPSI + atmospherePSI
		inches := math.Pow(cfh, 0.381) / (18.93 * math.Pow((up*up-down*down)*t.compressibility()/(cr*ft), 0.206))

		return inches * inchToMM
	}

	headIn := (startKPA - endKPA) * kpaToInchesWC
	inches := math.Pow(cfh, 0.381) / (19.17 * math.Pow(headIn/(cr*ft), 0.206))

	return inches * inchToMM
}

// VelocityMS is the speed of a gas flow of inputMJH through internalMM at
// gaugeKPA, for a gas of the given calorific value.
func VelocityMS(inputMJH, calorificMJM3, gaugeKPA, internalMM float64) float64 {
	if internalMM <= 0 || calorificMJM3 <= 0 {
		return 0
	}
	std := inputMJH / calorificMJM3 / 3600
	actual := std * atmosphereKPA / (atmosphereKPA + gaugeKPA)
	d := internalMM / 1000

	return actual / (math.Pi * d * d / 4)
}
