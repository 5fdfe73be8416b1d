package psd

import (
	"errors"
	"math"

	"github.com/katalvlaran/hydronet/catalog"
)

// ErrNoStandard indicates that a lookup was asked for without a PSD standard.
var ErrNoStandard = errors.New("psd: no PSD standard")

// Profile is a demand tally. Merging is field-wise addition, so the order in
// which branches are folded together never matters.
type Profile struct {
	Units            float64 `yaml:"units"`
	Dwellings        float64 `yaml:"dwellings"`
	ContinuousFlowLS float64 `yaml:"continuousFlowLS"`
	GasMJH           float64 `yaml:"gasMJH"`
}

// Merge returns p + o.
func (p Profile) Merge(o Profile) Profile {
	return Profile{
		Units:            p.Units + o.Units,
		Dwellings:        p.Dwellings + o.Dwellings,
		ContinuousFlowLS: p.ContinuousFlowLS + o.ContinuousFlowLS,
		GasMJH:           p.GasMJH + o.GasMJH,
	}
}

// Sum merges all profiles.
func Sum(ps ...Profile) Profile {
	var t Profile
	for _, p := range ps {
		t = t.Merge(p)
	}

	return t
}

// IsZero reports whether p carries no demand.
func (p Profile) IsZero() bool {
	return p.Units == 0 && p.Dwellings == 0 && p.ContinuousFlowLS == 0 && p.GasMJH == 0
}

// Less orders by units, then dwellings, then continuous flow.
func (p Profile) Less(o Profile) bool {
	if p.Units != o.Units {
		return p.Units < o.Units
	}
	if p.Dwellings != o.Dwellings {
		return p.Dwellings < o.Dwellings
	}

	return p.ContinuousFlowLS < o.ContinuousFlowLS
}

// FlowRate is the result of a lookup.
type FlowRate struct {
	FlowRateLS    float64
	FromDwellings bool
}

// Lookup converts p into a design flow rate. Units go through std; the
// dwelling count, when non-zero and a dwelling standard is given, adds the
// dwelling flow; continuous flow is added last. ok is false when the units
// fall outside a tabulated standard.
func Lookup(p Profile, std *catalog.PSDStandard, dwellings *catalog.DwellingStandard) (FlowRate, bool, error) {
	if std == nil {
		return FlowRate{}, false, ErrNoStandard
	}

	var fr FlowRate
	if p.Units > 0 {
		switch std.Kind {
		case catalog.PSDTable:
			v, ok := catalog.Interpolate(std.Table, p.Units, true)
			if !ok {
				return FlowRate{}, false, nil
			}
			fr.FlowRateLS = v
		case catalog.PSDEquation:
			fr.FlowRateLS = math.Max(0, std.A*math.Pow(p.Units, std.B)-std.C)
		default:
			panic("psd: unknown standard kind " + string(std.Kind))
		}
	}
	if p.Dwellings > 0 && dwellings != nil {
		v, _ := catalog.Interpolate(dwellings.Table, p.Dwellings, false)
		fr.FlowRateLS += v
		fr.FromDwellings = true
	}
	fr.FlowRateLS += p.ContinuousFlowLS

	return fr, true, nil
}
