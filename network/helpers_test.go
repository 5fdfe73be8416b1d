package network_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/hydronet/catalog"
	"github.com/katalvlaran/hydronet/config"
	"github.com/katalvlaran/hydronet/network"
)

func newStore(t *testing.T, entities ...network.Entity) *network.MemoryStore {
	t.Helper()
	doc := config.Default()
	s := network.NewMemoryStore(&doc, catalog.Default())
	require.NoError(t, s.Add(entities...))
	require.NoError(t, network.CheckReferences(s))

	return s
}

func pipe(uid, a, b string) *network.Pipe {
	return &network.Pipe{ID: uid, SystemUID: "coldWater", Endpoints: [2]string{a, b}, LengthM: 10}
}

func fitting(uid string) *network.Fitting {
	return &network.Fitting{ID: uid, SystemUID: "coldWater"}
}

func source(uid string) *network.FlowSource {
	return &network.FlowSource{ID: uid, SystemUID: "coldWater", PressureKPA: 500}
}

func load(uid string, units float64) *network.LoadNode {
	return &network.LoadNode{ID: uid, SystemUID: "coldWater", LoadingUnits: units}
}

// branchNetwork is S –p1– F, then F –p2– L1 (10 LU) and F –p3– L2 (5 LU).
func branchNetwork(t *testing.T) *network.MemoryStore {
	return newStore(t,
		source("S"), fitting("F"), load("L1", 10), load("L2", 5),
		pipe("p1", "S", "F"), pipe("p2", "F", "L1"), pipe("p3", "F", "L2"),
	)
}
