package network

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/hydronet/core"
	"github.com/katalvlaran/hydronet/dfs"
	"github.com/katalvlaran/hydronet/logging"
	"github.com/katalvlaran/hydronet/psd"
)

// side is what lies on one side of a bridge.
type side struct {
	connectables []string
	wet          bool
}

func bridgeSide(g *FlowGraph, start FlowNode, bridgeUID string) side {
	var out side
	seen := make(map[string]struct{})
	err := dfs.Walk(g, start, dfs.Options[FlowNode, FlowEdge]{
		VisitNode: func(n FlowNode) bool {
			if n == RootNode {
				out.wet = true
			}
			if _, ok := seen[n.Connectable]; !ok {
				seen[n.Connectable] = struct{}{}
				out.connectables = append(out.connectables, n.Connectable)
			}

			return false
		},
		SeenEdges:  map[string]struct{}{bridgeUID: {}},
		Undirected: true,
	})
	if err != nil {
		panic(err)
	}

	return out
}

// TerminalProfile sums the demand of every load node among uids. Each
// load node counts once.
func TerminalProfile(s Store, uids []string) psd.Profile {
	var total psd.Profile
	counted := make(map[string]struct{})
	for _, uid := range uids {
		l, ok := Lookup[*LoadNode](s, uid)
		if !ok {
			continue
		}
		if _, dup := counted[uid]; dup {
			continue
		}
		counted[uid] = struct{}{}
		total = total.Merge(LoadProfile(l))
	}

	return total
}

// LoadProfile is the demand of a single load node.
func LoadProfile(l *LoadNode) psd.Profile {
	return psd.Profile{
		Units:            l.LoadingUnits,
		Dwellings:        l.Dwellings,
		ContinuousFlowLS: l.ContinuousFlowLS,
		GasMJH:           l.GasMJH,
	}
}

// PeakFlow looks up the design flow of profile in the standards of sys.
func PeakFlow(s Store, systemUID string, profile psd.Profile) (psd.FlowRate, bool, error) {
	sys, err := s.FlowSystem(systemUID)
	if err != nil {
		return psd.FlowRate{}, false, err
	}
	cat := s.Catalog()

	return psd.Lookup(profile, cat.PSD[sys.PSDStandard], cat.Dwellings[sys.DwellingStandard])
}

// DemandPass gives every pipe that is a bridge of g its downstream demand.
// The side of the bridge that reaches the root is upstream; the load
// nodes on the other side make up the pipe's PSD profile, and the pipe is
// sized for the resulting peak flow. Pipes on cycles are left for the
// ring-main and return solvers. Systems without a PSD standard get a
// profile and direction only. It returns the number of pipes sized.
func DemandPass(ctx context.Context, s Store, g *FlowGraph, sizer PipeSizer) int {
	log := logging.Logger(ctx)
	sized := 0

	for _, b := range dfs.Bridges(g) {
		if b.Value.Type != EdgePipe {
			continue
		}
		pipe, ok := Lookup[*Pipe](s, b.Value.UID)
		if !ok {
			panic(core.ErrNodeNotFound)
		}
		calc := s.PipeCalc(pipe.ID)

		var wet, dry side
		var wetEnd string
		if from := bridgeSide(g, b.From, b.UID); from.wet {
			wet, dry, wetEnd = from, bridgeSide(g, b.To, b.UID), b.From.Connectable
		} else if to := bridgeSide(g, b.To, b.UID); to.wet {
			wet, dry, wetEnd = to, from, b.To.Connectable
		}
		if !wet.wet {
			calc.PeakFlowRateLS = nil
			calc.NoFlowAvailableReason = NoSource
			continue
		}

		profile := TerminalProfile(s, dry.connectables)
		calc.PsdProfile = &profile
		calc.FlowFrom = String(wetEnd)

		sys, err := s.FlowSystem(pipe.SystemUID)
		if err != nil || sys.PSDStandard == "" {
			continue
		}
		fr, ok, err := PeakFlow(s, pipe.SystemUID, profile)
		if err != nil {
			log.WithError(err).WithField("pipe", pipe.ID).Warn("demand lookup failed")
			continue
		}
		if !ok {
			calc.NoFlowAvailableReason = NoSuitablePipeSize
			continue
		}
		calc.PeakFlowRateLS = Float(fr.FlowRateLS)
		sizer.SizePipeForFlowRate(pipe, FlowRequirement{FlowLS: fr.FlowRateLS, MaxVelocityMS: sys.MaxVelocityMS})
		sized++
		log.WithFields(logrus.Fields{"pipe": pipe.ID, "flowLS": fr.FlowRateLS}).Debug("sized branch")
	}

	return sized
}
