package network_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/hydronet/network"
)

func TestDemandPass_Branches(t *testing.T) {
	s := branchNetwork(t)
	g := network.BuildFlowGraph(s)

	n := network.DemandPass(context.Background(), s, g, network.NewCatalogSizer(s))
	assert.Equal(t, 3, n)

	p1 := s.PipeCalc("p1")
	require.NotNil(t, p1.PeakFlowRateLS)
	assert.InDelta(t, 0.45, *p1.PeakFlowRateLS, 1e-9)
	assert.Equal(t, "S", *p1.FlowFrom)
	assert.Equal(t, 15.0, p1.PsdProfile.Units)
	assert.Equal(t, 25.0, *p1.RealNominalDiameterMM)

	p2 := s.PipeCalc("p2")
	assert.InDelta(t, 0.38, *p2.PeakFlowRateLS, 1e-9)
	assert.Equal(t, "F", *p2.FlowFrom)

	p3 := s.PipeCalc("p3")
	assert.InDelta(t, 0.2+0.1*2/3, *p3.PeakFlowRateLS, 1e-9)
	assert.Equal(t, 20.0, *p3.RealNominalDiameterMM)
}

func TestDemandPass_CyclesAndDryBranches(t *testing.T) {
	s := newStore(t,
		source("S"), fitting("F"), fitting("G"), load("L", 6),
		fitting("X"), fitting("Y"),
		pipe("p1", "S", "F"),
		pipe("a", "F", "G"), pipe("b", "F", "G"),
		pipe("p2", "G", "L"),
		pipe("lost", "X", "Y"),
	)
	g := network.BuildFlowGraph(s)
	network.DemandPass(context.Background(), s, g, network.NewCatalogSizer(s))

	assert.Nil(t, s.PipeCalc("a").PeakFlowRateLS, "pipes on a cycle are left alone")
	assert.Nil(t, s.PipeCalc("b").PeakFlowRateLS)
	assert.InDelta(t, 0.3, *s.PipeCalc("p1").PeakFlowRateLS, 1e-9)
	assert.InDelta(t, 0.3, *s.PipeCalc("p2").PeakFlowRateLS, 1e-9)

	lost := s.PipeCalc("lost")
	assert.Nil(t, lost.PeakFlowRateLS)
	assert.Equal(t, network.NoSource, lost.NoFlowAvailableReason)
}

func TestDemandPass_GasProfileOnly(t *testing.T) {
	gasPipe := pipe("g1", "GS", "GL")
	gasPipe.SystemUID = "naturalGas"
	s := newStore(t,
		&network.FlowSource{ID: "GS", SystemUID: "naturalGas", PressureKPA: 2.75},
		&network.LoadNode{ID: "GL", SystemUID: "naturalGas", GasMJH: 100, GasPressureKPA: 1.1},
		gasPipe,
	)
	g := network.BuildFlowGraph(s)

	assert.Zero(t, network.DemandPass(context.Background(), s, g, network.NewCatalogSizer(s)))
	calc := s.PipeCalc("g1")
	assert.Nil(t, calc.PeakFlowRateLS)
	require.NotNil(t, calc.PsdProfile)
	assert.Equal(t, 100.0, calc.PsdProfile.GasMJH)
	assert.Equal(t, "GS", *calc.FlowFrom)
}

func TestPeakPressures(t *testing.T) {
	s := branchNetwork(t)
	g := network.BuildFlowGraph(s)
	network.DemandPass(context.Background(), s, g, network.NewCatalogSizer(s))

	src, _ := network.Lookup[*network.FlowSource](s, "S")
	kpa, err := network.PeakPressures(s, g, src)
	require.NoError(t, err)

	atSource := kpa[network.SourceNode("S").Key()]
	atF := kpa[network.FlowNode{Connectable: "F", Connection: "p1"}.Key()]
	atL1 := kpa[network.FlowNode{Connectable: "L1", Connection: "p2"}.Key()]
	assert.Equal(t, 500.0, atSource)
	assert.InDelta(t, 500-*s.PipeCalc("p1").PressureDropKPA, atF, 1e-9)
	assert.Less(t, atL1, atF)
}
