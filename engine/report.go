package engine

import (
	"sort"
	"time"

	"github.com/katalvlaran/hydronet/network"
)

// Annotation is a no-flow reason or warning recorded on one entity.
type Annotation struct {
	UID      string               `yaml:"uid"`
	Kind     network.EntityKind   `yaml:"kind"`
	Reason   network.NoFlowReason `yaml:"reason,omitempty"`
	Warnings network.Warnings     `yaml:"warnings,omitempty"`
}

// Report summarises one solve pass.
type Report struct {
	ID       string        `yaml:"id"`
	Duration time.Duration `yaml:"duration"`

	BranchesSized   int `yaml:"branchesSized"`
	Returns         int `yaml:"returns"`
	ReturnsBalanced int `yaml:"returnsBalanced"`
	Rings           int `yaml:"rings"`
	GasComponents   int `yaml:"gasComponents"`

	// Pressures maps each flow source to the best-case pressure in kPa at
	// every node key it reaches.
	Pressures map[string]map[string]float64 `yaml:"pressures,omitempty"`

	Annotations []Annotation `yaml:"annotations,omitempty"`

	// Unreached lists the connectables no flow source can feed.
	Unreached []string `yaml:"unreached,omitempty"`

	Pipes  map[string]*network.PipeCalculation  `yaml:"pipes,omitempty"`
	Valves map[string]*network.ValveCalculation `yaml:"valves,omitempty"`
	Plants map[string]*network.PlantCalculation `yaml:"plants,omitempty"`
}

// collect copies the calculation records of s into r and lists every
// annotation, pipes first, each group in uid order.
func (r *Report) collect(s network.Store) {
	r.Pipes = make(map[string]*network.PipeCalculation)
	r.Valves = make(map[string]*network.ValveCalculation)
	r.Plants = make(map[string]*network.PlantCalculation)

	var pipes, others []Annotation
	for _, e := range s.Entities() {
		switch x := e.(type) {
		case *network.Pipe:
			calc := s.PipeCalc(x.ID)
			r.Pipes[x.ID] = calc
			if calc.NoFlowAvailableReason != "" || len(calc.Warnings) > 0 {
				pipes = append(pipes, Annotation{x.ID, e.Kind(), calc.NoFlowAvailableReason, calc.Warnings})
			}
		case *network.DirectedValve:
			calc := s.ValveCalc(x.ID)
			r.Valves[x.ID] = calc
			if len(calc.Warnings) > 0 {
				others = append(others, Annotation{UID: x.ID, Kind: e.Kind(), Warnings: calc.Warnings})
			}
		case *network.Plant:
			calc := s.PlantCalc(x.ID)
			r.Plants[x.ID] = calc
			if len(calc.Warnings) > 0 {
				others = append(others, Annotation{UID: x.ID, Kind: e.Kind(), Warnings: calc.Warnings})
			}
		}
	}
	byUID := func(as []Annotation) {
		sort.Slice(as, func(i, j int) bool { return as[i].UID < as[j].UID })
	}
	byUID(pipes)
	byUID(others)
	r.Annotations = append(pipes, others...)
}

// Annotated returns the annotations carrying reason.
func (r *Report) Annotated(reason network.NoFlowReason) []string {
	var out []string
	for _, a := range r.Annotations {
		if a.Reason == reason {
			out = append(out, a.UID)
		}
	}

	return out
}
