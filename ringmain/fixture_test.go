package ringmain_test

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/hydronet/catalog"
	"github.com/katalvlaran/hydronet/config"
	"github.com/katalvlaran/hydronet/network"
	"github.com/katalvlaran/hydronet/ringmain"
)

func newStore(t *testing.T, method config.RingMainMethod, entities ...network.Entity) *network.MemoryStore {
	t.Helper()
	doc := config.Default()
	doc.Params.RingMainCalculationMethod = method
	s := network.NewMemoryStore(&doc, catalog.Default())
	require.NoError(t, s.Add(entities...))
	require.NoError(t, network.CheckReferences(s))

	return s
}

func cpipe(uid, a, b string, lengthM float64) *network.Pipe {
	return &network.Pipe{ID: uid, SystemUID: "coldWater", Endpoints: [2]string{a, b}, LengthM: lengthM}
}

// ringStore feeds fitting S from source SRC and runs a ring S → nodes… → S
// of 10 m pipes r1, r2, … in that order. Node names select what stands on
// the ring:
//
//	V…  an isolation valve flagged for isolation cases
//	U…  an isolation valve that is not flagged
//	…   anything else is a fitting
//
// Each entry of taps hangs a load drawing that continuous flow off the
// ring node of the same name, through pipe "l"+lower(name).
func ringStore(t *testing.T, method config.RingMainMethod, taps map[string]float64, nodes ...string) *network.MemoryStore {
	t.Helper()
	entities := []network.Entity{
		&network.FlowSource{ID: "SRC", SystemUID: "coldWater", PressureKPA: 500},
		&network.Fitting{ID: "S", SystemUID: "coldWater"},
		cpipe("feed", "SRC", "S", 5),
	}

	around := append(append([]string{"S"}, nodes...), "S")
	for i := 0; i+1 < len(around); i++ {
		entities = append(entities, cpipe(fmt.Sprintf("r%d", i+1), around[i], around[i+1], 10))
	}
	for i, n := range nodes {
		inlet := fmt.Sprintf("r%d", i+1)
		switch n[0] {
		case 'V', 'U':
			entities = append(entities, &network.DirectedValve{
				ID: n, SystemUID: "coldWater", Valve: network.IsolationValve,
				SourceUID: inlet, MakeIsolationCase: n[0] == 'V',
			})
		default:
			entities = append(entities, &network.Fitting{ID: n, SystemUID: "coldWater"})
		}
	}
	names := make([]string, 0, len(taps))
	for node := range taps {
		names = append(names, node)
	}
	sort.Strings(names)
	for _, node := range names {
		load := "L" + node
		entities = append(entities,
			&network.LoadNode{ID: load, SystemUID: "coldWater", ContinuousFlowLS: taps[node]},
			cpipe("l"+strings.ToLower(node), node, load, 2),
		)
	}

	return newStore(t, method, entities...)
}

// prepare builds the flow graph and sizes every branch, as a solve pass
// does before it reaches the rings.
func prepare(t *testing.T, s *network.MemoryStore) (*network.FlowGraph, *ringmain.Solver) {
	t.Helper()
	g := network.BuildFlowGraph(s)
	sizer := network.NewCatalogSizer(s)
	network.DemandPass(context.Background(), s, g, sizer)

	return g, ringmain.NewSolver(s, sizer)
}

func onlyRing(t *testing.T, s network.Store, g *network.FlowGraph) ringmain.Ring {
	t.Helper()
	rings := ringmain.FindRingMains(s, g)
	require.Len(t, rings, 1)

	return rings[0]
}

func peak(s *network.MemoryStore, uid string) float64 {
	return network.Value(s.PipeCalc(uid).PeakFlowRateLS)
}
