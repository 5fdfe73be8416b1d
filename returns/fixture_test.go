package returns_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/hydronet/catalog"
	"github.com/katalvlaran/hydronet/config"
	"github.com/katalvlaran/hydronet/network"
)

func hpipe(uid, a, b string, lengthM float64) *network.Pipe {
	return &network.Pipe{ID: uid, SystemUID: "hotWater", Endpoints: [2]string{a, b}, LengthM: lengthM}
}

func hfitting(uid string) *network.Fitting {
	return &network.Fitting{ID: uid, SystemUID: "hotWater"}
}

// plantEntities is a cold supply feeding return plant HW through "in";
// the loop runs from "out" back to "ret".
func plantEntities() []network.Entity {
	return []network.Entity{
		&network.FlowSource{ID: "CS", SystemUID: "coldWater", PressureKPA: 500},
		&network.Pipe{ID: "c1", SystemUID: "coldWater", Endpoints: [2]string{"CS", "in"}, LengthM: 5},
		&network.SystemNode{ID: "in", SystemUID: "coldWater", ParentUID: "HW"},
		&network.SystemNode{ID: "out", SystemUID: "hotWater", ParentUID: "HW"},
		&network.SystemNode{ID: "ret", SystemUID: "hotWater", ParentUID: "HW"},
		&network.Plant{
			ID: "HW", Type: network.ReturnSystem,
			InletUID: "in", OutletUID: "out", ReturnUID: "ret",
			OutletTempC: 60, ReturnMinTempC: 55,
		},
	}
}

// twoBranchLoop is out –h1– F1, two branches F1→F2 (A through tee TA and
// balancing valve BV, B through tee TB), then F2 –h2– ret. A basin hangs
// off TA.
func twoBranchLoop(t *testing.T) *network.MemoryStore {
	entities := append(plantEntities(),
		hfitting("F1"), hfitting("F2"), hfitting("TA"), hfitting("TB"),
		&network.DirectedValve{ID: "BV", SystemUID: "hotWater", Valve: network.BalancingValve},
		&network.LoadNode{ID: "basin", SystemUID: "hotWater", LoadingUnits: 3},
		hpipe("h1", "out", "F1", 10),
		hpipe("a1", "F1", "TA", 20),
		hpipe("a2", "TA", "BV", 5),
		hpipe("a3", "BV", "F2", 20),
		hpipe("b1", "F1", "TB", 8),
		hpipe("b2", "TB", "F2", 8),
		hpipe("h2", "F2", "ret", 10),
		hpipe("la", "TA", "basin", 2),
	)

	return newStore(t, entities...)
}

// bridgeLoop has a Wheatstone bridge F2–F3 between F1 and F4.
func bridgeLoop(t *testing.T) *network.MemoryStore {
	entities := append(plantEntities(),
		hfitting("F1"), hfitting("F2"), hfitting("F3"), hfitting("F4"),
		hpipe("h1", "out", "F1", 5),
		hpipe("x12", "F1", "F2", 5),
		hpipe("x13", "F1", "F3", 5),
		hpipe("x23", "F2", "F3", 5),
		hpipe("x24", "F2", "F4", 5),
		hpipe("x34", "F3", "F4", 5),
		hpipe("h2", "F4", "ret", 5),
	)

	return newStore(t, entities...)
}

func newStore(t *testing.T, entities ...network.Entity) *network.MemoryStore {
	t.Helper()
	doc := config.Default()
	s := network.NewMemoryStore(&doc, catalog.Default())
	require.NoError(t, s.Add(entities...))
	require.NoError(t, network.CheckReferences(s))

	return s
}
